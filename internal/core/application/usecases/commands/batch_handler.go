package commands

import (
	"context"
	"errors"
	"fmt"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/core/ports"
	"repairshop/internal/pkg/errs"
)

// BatchCommandHandler dispatches a batch of commands against the repair-order
// repository. Each command resolves to one aggregate operation; a domain
// failure is recorded and the batch continues with the next command. Only
// infrastructure failures (a broken repository) abort the batch.
//
// Commands within one batch are applied strictly in input order, each fully
// completing, persistence included, before the next begins.
//
// Example:
//
//	handler, _ := NewBatchCommandHandler(repository)
//	result, err := handler.Handle(ctx, batch)
//	if err != nil {
//	    return fmt.Errorf("batch processing failed: %w", err)
//	}
//	fmt.Printf("%d orders, %d errors\n", len(result.Orders), len(result.Errors))
type BatchCommandHandler struct {
	repository ports.OrderRepository
	handlers   map[string]func(ctx context.Context, cmd Command) error
}

// NewBatchCommandHandler creates the dispatcher with its op-to-handler table.
func NewBatchCommandHandler(repository ports.OrderRepository) (*BatchCommandHandler, error) {
	if repository == nil {
		return nil, errs.NewValueIsRequiredError("repository")
	}

	h := &BatchCommandHandler{repository: repository}
	h.handlers = map[string]func(ctx context.Context, cmd Command) error{
		OpCreateOrder:        h.handleCreateOrder,
		OpAddService:         h.handleAddService,
		OpSetStateDiagnosed:  h.handleSetDiagnosed,
		OpAuthorize:          h.handleAuthorize,
		OpSetStateInProgress: h.handleSetInProgress,
		OpSetRealCost:        h.handleSetRealCost,
		OpTryComplete:        h.handleTryComplete,
		OpReauthorize:        h.handleReauthorize,
		OpDeliver:            h.handleDeliver,
		OpCancel:             h.handleCancel,
	}
	return h, nil
}

// Handle processes the batch in order and assembles the result: every stored
// order (serialized), every event from every order, and the accumulated
// domain errors. Partial-failure semantics: one failing command never
// prevents the rest of the batch from being applied.
func (h *BatchCommandHandler) Handle(ctx context.Context, batch []Command) (BatchResult, error) {
	errorViews := make([]ErrorView, 0)

	for _, cmd := range batch {
		if err := h.process(ctx, cmd); err != nil {
			var domainErr *errs.DomainError
			if !errors.As(err, &domainErr) {
				return BatchResult{}, err
			}
			errorViews = append(errorViews, newErrorView(domainErr))
		}
	}

	orders, err := h.repository.FindAll(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	orderViews := make([]OrderView, 0, len(orders))
	eventViews := make([]EventView, 0)
	for _, aggregate := range orders {
		orderViews = append(orderViews, newOrderView(aggregate))
		for _, event := range aggregate.Events() {
			eventViews = append(eventViews, newEventView(event))
		}
	}

	return BatchResult{
		Orders: orderViews,
		Events: eventViews,
		Errors: errorViews,
	}, nil
}

func (h *BatchCommandHandler) process(ctx context.Context, cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return errs.NewDomainError(cmd.Op(), orderIDOrUnknown(cmd.Data().OrderID),
			errs.CodeInvalidOperation, err.Error())
	}

	handler, ok := h.handlers[cmd.Op()]
	if !ok {
		return errs.NewDomainError(cmd.Op(), orderIDOrUnknown(cmd.Data().OrderID),
			errs.CodeInvalidOperation, fmt.Sprintf("unrecognized operation: %s", cmd.Op()))
	}

	return handler(ctx, cmd)
}

// getOrder loads the aggregate a command addresses, translating a missing
// order into the INVALID_OPERATION domain failure the batch result reports.
func (h *BatchCommandHandler) getOrder(ctx context.Context, orderID, operation string) (*order.RepairOrder, error) {
	aggregate, err := h.repository.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewDomainError(operation, orderID, errs.CodeInvalidOperation,
				fmt.Sprintf("order not found: %s", orderID))
		}
		return nil, err
	}
	return aggregate, nil
}

func (h *BatchCommandHandler) handleCreateOrder(ctx context.Context, cmd Command) error {
	data := cmd.Data()

	aggregate, err := order.NewRepairOrder(data.OrderID, data.Customer, data.Vehicle, cmd.TS())
	if err != nil {
		return errs.NewDomainError(cmd.Op(), orderIDOrUnknown(data.OrderID),
			errs.CodeInvalidOperation, err.Error())
	}

	return h.repository.Save(ctx, aggregate)
}

func (h *BatchCommandHandler) handleAddService(ctx context.Context, cmd Command) error {
	data := cmd.Data()

	aggregate, err := h.getOrder(ctx, data.OrderID, cmd.Op())
	if err != nil {
		return err
	}

	if data.Service == nil {
		return errs.NewDomainError(cmd.Op(), data.OrderID, errs.CodeInvalidOperation,
			"service payload is required")
	}

	service, err := h.buildService(cmd, *data.Service)
	if err != nil {
		return err
	}

	if err := aggregate.AddService(service, cmd.Op(), cmd.TS()); err != nil {
		return err
	}

	return h.repository.Save(ctx, aggregate)
}

func (h *BatchCommandHandler) buildService(cmd Command, data ServiceData) (*order.Service, error) {
	labor, err := h.parseMoney(data.LaborEstimatedCost, cmd)
	if err != nil {
		return nil, err
	}

	components := make([]*order.Component, 0, len(data.Components))
	for _, componentData := range data.Components {
		estimated, parseErr := h.parseMoney(componentData.EstimatedCost, cmd)
		if parseErr != nil {
			return nil, parseErr
		}

		component, componentErr := order.NewComponent(componentData.Description, estimated)
		if componentErr != nil {
			return nil, errs.NewDomainError(cmd.Op(), cmd.Data().OrderID,
				errs.CodeInvalidOperation, componentErr.Error())
		}
		components = append(components, component)
	}

	service, err := order.NewService(data.Description, labor, components)
	if err != nil {
		return nil, errs.NewDomainError(cmd.Op(), cmd.Data().OrderID,
			errs.CodeInvalidOperation, err.Error())
	}
	return service, nil
}

func (h *BatchCommandHandler) handleSetDiagnosed(ctx context.Context, cmd Command) error {
	aggregate, err := h.getOrder(ctx, cmd.Data().OrderID, cmd.Op())
	if err != nil {
		return err
	}

	if err := aggregate.SetDiagnosed(cmd.Op(), cmd.TS()); err != nil {
		return err
	}

	return h.repository.Save(ctx, aggregate)
}

func (h *BatchCommandHandler) handleAuthorize(ctx context.Context, cmd Command) error {
	aggregate, err := h.getOrder(ctx, cmd.Data().OrderID, cmd.Op())
	if err != nil {
		return err
	}

	if err := aggregate.Authorize(cmd.Op(), cmd.TS()); err != nil {
		return err
	}

	return h.repository.Save(ctx, aggregate)
}

func (h *BatchCommandHandler) handleSetInProgress(ctx context.Context, cmd Command) error {
	aggregate, err := h.getOrder(ctx, cmd.Data().OrderID, cmd.Op())
	if err != nil {
		return err
	}

	if err := aggregate.SetInProgress(cmd.Op(), cmd.TS()); err != nil {
		return err
	}

	return h.repository.Save(ctx, aggregate)
}

func (h *BatchCommandHandler) handleSetRealCost(ctx context.Context, cmd Command) error {
	data := cmd.Data()

	aggregate, err := h.getOrder(ctx, data.OrderID, cmd.Op())
	if err != nil {
		return err
	}

	cost, err := h.parseMoney(data.RealCost, cmd)
	if err != nil {
		return err
	}

	if err := aggregate.SetRealCost(data.ServiceIndex, cost, data.Completed,
		data.ComponentIndex, cmd.Op(), cmd.TS()); err != nil {
		return err
	}

	return h.repository.Save(ctx, aggregate)
}

func (h *BatchCommandHandler) handleTryComplete(ctx context.Context, cmd Command) error {
	aggregate, err := h.getOrder(ctx, cmd.Data().OrderID, cmd.Op())
	if err != nil {
		return err
	}

	completeErr := aggregate.TryComplete(cmd.Op(), cmd.TS())

	// A failed completion may still have moved the order to
	// WAITING_FOR_APPROVAL; persist before reporting the failure.
	if saveErr := h.repository.Save(ctx, aggregate); saveErr != nil {
		return saveErr
	}

	return completeErr
}

func (h *BatchCommandHandler) handleReauthorize(ctx context.Context, cmd Command) error {
	data := cmd.Data()

	aggregate, err := h.getOrder(ctx, data.OrderID, cmd.Op())
	if err != nil {
		return err
	}

	newAmount, err := h.parseMoney(data.NewAuthorizedAmount, cmd)
	if err != nil {
		return err
	}

	if err := aggregate.Reauthorize(newAmount, cmd.Op(), cmd.TS()); err != nil {
		return err
	}

	return h.repository.Save(ctx, aggregate)
}

func (h *BatchCommandHandler) handleDeliver(ctx context.Context, cmd Command) error {
	aggregate, err := h.getOrder(ctx, cmd.Data().OrderID, cmd.Op())
	if err != nil {
		return err
	}

	if err := aggregate.Deliver(cmd.Op(), cmd.TS()); err != nil {
		return err
	}

	return h.repository.Save(ctx, aggregate)
}

func (h *BatchCommandHandler) handleCancel(ctx context.Context, cmd Command) error {
	data := cmd.Data()

	aggregate, err := h.getOrder(ctx, data.OrderID, cmd.Op())
	if err != nil {
		return err
	}

	if err := aggregate.Cancel(data.Reason, cmd.Op(), cmd.TS()); err != nil {
		return err
	}

	return h.repository.Save(ctx, aggregate)
}

// parseMoney converts a wire decimal string into Money, mapping parse
// failures to the INVALID_OPERATION domain failure so a malformed amount
// never aborts the batch.
func (h *BatchCommandHandler) parseMoney(value string, cmd Command) (kernel.Money, error) {
	money, err := kernel.NewMoneyFromString(value)
	if err != nil {
		return kernel.ZeroMoney(), errs.NewDomainError(cmd.Op(), cmd.Data().OrderID,
			errs.CodeInvalidOperation, err.Error())
	}
	return money, nil
}

func orderIDOrUnknown(orderID string) string {
	if orderID == "" {
		return "UNKNOWN"
	}
	return orderID
}
