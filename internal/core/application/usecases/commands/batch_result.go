package commands

import (
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"
)

// OrderView is the serialized form of a repair order in a batch result.
// AuthorizedAmount is present once the order has an authorization; RealTotal
// is present only when it is strictly greater than zero.
type OrderView struct {
	OrderID           string  `json:"order_id"`
	Status            string  `json:"status"`
	Customer          string  `json:"customer"`
	Vehicle           string  `json:"vehicle"`
	SubtotalEstimated string  `json:"subtotal_estimated"`
	AuthorizedAmount  *string `json:"authorized_amount,omitempty"`
	RealTotal         *string `json:"real_total,omitempty"`
}

// EventView is the compact form of a domain event in a batch result: op and
// order id only, no metadata.
type EventView struct {
	OrderID string `json:"order_id"`
	Type    string `json:"type"`
}

// ErrorView is the serialized form of a domain failure in a batch result.
type ErrorView struct {
	Op      string `json:"op"`
	OrderID string `json:"order_id"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResult is the outcome of processing one batch: every stored order,
// every event from every order, and the errors accumulated along the way.
type BatchResult struct {
	Orders []OrderView `json:"orders"`
	Events []EventView `json:"events"`
	Errors []ErrorView `json:"errors"`
}

func newOrderView(aggregate *order.RepairOrder) OrderView {
	view := OrderView{
		OrderID:           aggregate.ID(),
		Status:            aggregate.Status().String(),
		Customer:          aggregate.Customer(),
		Vehicle:           aggregate.Vehicle(),
		SubtotalEstimated: aggregate.SubtotalEstimated().String(),
	}

	if amount, ok := aggregate.AuthorizedAmount(); ok {
		rendered := amount.String()
		view.AuthorizedAmount = &rendered
	}

	if realTotal := aggregate.RealTotal(); realTotal.IsPositive() {
		rendered := realTotal.String()
		view.RealTotal = &rendered
	}

	return view
}

func newEventView(event order.DomainEvent) EventView {
	return EventView{
		OrderID: event.OrderID(),
		Type:    event.Type(),
	}
}

func newErrorView(domainErr *errs.DomainError) ErrorView {
	return ErrorView{
		Op:      domainErr.Operation,
		OrderID: domainErr.OrderID,
		Code:    string(domainErr.Code),
		Message: domainErr.Message,
	}
}
