package order

import (
	"errors"
	"fmt"
	"time"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
)

// RepairOrder is the aggregate root tracking one vehicle's repair lifecycle.
// It exclusively owns its services, authorization, and event log, and is the
// only place allowed to mutate them.
//
// Every mutating method takes the name of the business operation that invoked
// it (the op of the command being processed) together with the command
// timestamp; both are carried into domain errors and recorded events. Each
// method validates the current status, applies the change, and appends at
// most one domain event.
//
// RepairOrder is not safe for concurrent mutation; callers must serialize
// access per order.
type RepairOrder struct {
	id            string
	customer      string
	vehicle       string
	status        Status
	services      []*Service
	authorization *Authorization
	events        []DomainEvent
	cancelReason  string
}

// NewRepairOrder creates an order in CREATED status and records the CREATED
// event. Order id, customer, and vehicle are all required.
func NewRepairOrder(id, customer, vehicle string, timestamp time.Time) (*RepairOrder, error) {
	if err := errors.Join(
		requireValue("order id", id),
		requireValue("customer", customer),
		requireValue("vehicle", vehicle),
	); err != nil {
		return nil, err
	}

	repairOrder := &RepairOrder{
		id:       id,
		customer: customer,
		vehicle:  vehicle,
		status:   Created,
	}
	repairOrder.recordEvent(EventCreated, timestamp, nil)

	return repairOrder, nil
}

// RestoreRepairOrder rebuilds an order from persistence without emitting
// events. The status must be a valid lifecycle state.
func RestoreRepairOrder(
	id, customer, vehicle string,
	status Status,
	services []*Service,
	authorization *Authorization,
	events []DomainEvent,
	cancelReason string,
) (*RepairOrder, error) {
	if err := errors.Join(
		requireValue("order id", id),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &RepairOrder{
		id:            id,
		customer:      customer,
		vehicle:       vehicle,
		status:        status,
		services:      services,
		authorization: authorization,
		events:        events,
		cancelReason:  cancelReason,
	}, nil
}

// ID returns the order's business identifier, e.g. "R001".
func (o *RepairOrder) ID() string {
	return o.id
}

// Customer returns the customer's name.
func (o *RepairOrder) Customer() string {
	return o.customer
}

// Vehicle returns the vehicle identifier, e.g. a plate number.
func (o *RepairOrder) Vehicle() string {
	return o.vehicle
}

// Status returns the order's current lifecycle status.
func (o *RepairOrder) Status() Status {
	return o.status
}

// Services returns the order's services in the order they were added.
func (o *RepairOrder) Services() []*Service {
	return o.services
}

// Authorization returns the current authorization, or nil before authorize.
func (o *RepairOrder) Authorization() *Authorization {
	return o.authorization
}

// Events returns the append-only event log in chronological order.
func (o *RepairOrder) Events() []DomainEvent {
	return o.events
}

// CancelReason returns the reason given on cancellation, empty otherwise.
func (o *RepairOrder) CancelReason() string {
	return o.cancelReason
}

// AddService appends a service to the order. Allowed only while the order is
// CREATED or DIAGNOSED; once the customer has authorized the estimate the
// service list is frozen. No event is emitted and the status does not change.
func (o *RepairOrder) AddService(service *Service, operation string, timestamp time.Time) error {
	if err := o.ensureNotCancelled(operation); err != nil {
		return err
	}

	if o.status != Created && o.status != Diagnosed {
		return errs.NewDomainError(operation, o.id, errs.CodeNotAllowedAfterAuthorization,
			"services cannot be modified after authorization")
	}

	o.services = append(o.services, service)
	return nil
}

// SetDiagnosed marks the vehicle as assessed. Valid only from CREATED.
func (o *RepairOrder) SetDiagnosed(operation string, timestamp time.Time) error {
	if err := o.ensureNotCancelled(operation); err != nil {
		return err
	}
	if err := o.ensureTransition(Diagnosed, operation); err != nil {
		return err
	}

	o.status = Diagnosed
	o.recordEvent(EventDiagnosed, timestamp, nil)
	return nil
}

// Authorize records the customer's approval of the estimated cost. It
// computes the subtotal across all services, creates the initial
// authorization (subtotal plus 16% tax), and emits AUTHORIZED with the
// subtotal and authorized amount as metadata.
//
// Fails with NO_SERVICES if no services have been added.
func (o *RepairOrder) Authorize(operation string, timestamp time.Time) error {
	if err := o.ensureNotCancelled(operation); err != nil {
		return err
	}
	if err := o.ensureTransition(Authorized, operation); err != nil {
		return err
	}

	if len(o.services) == 0 {
		return errs.NewDomainError(operation, o.id, errs.CodeNoServices,
			"no valid services to authorize")
	}

	subtotal := o.SubtotalEstimated()
	o.authorization = NewInitialAuthorization(subtotal, timestamp)
	o.status = Authorized
	o.recordEvent(EventAuthorized, timestamp, map[string]any{
		"subtotal":          subtotal.String(),
		"authorized_amount": o.authorization.AuthorizedAmount().String(),
	})
	return nil
}

// SetInProgress marks the start of repair work. The order must be exactly in
// AUTHORIZED status.
func (o *RepairOrder) SetInProgress(operation string, timestamp time.Time) error {
	if err := o.ensureNotCancelled(operation); err != nil {
		return err
	}

	if o.status != Authorized {
		return errs.NewDomainError(operation, o.id, errs.CodeSequenceError,
			"order must be authorized before work can start")
	}

	if err := o.ensureTransition(InProgress, operation); err != nil {
		return err
	}

	o.status = InProgress
	o.recordEvent(EventInProgress, timestamp, nil)
	return nil
}

// SetRealCost records a real cost while the order is IN_PROGRESS.
//
// serviceIndex is 1-based and must address an existing service. When
// componentIndex (also 1-based) is given, the cost is recorded on that
// component; an out-of-range component index is silently ignored. Otherwise
// the cost is recorded as the service's real labor cost together with the
// completed flag.
//
// After the mutation the real total is recomputed: if it exceeds the
// authorization's overrun limit the order moves to WAITING_FOR_APPROVAL and
// emits that event. No error is returned for the overrun here; it surfaces
// when completion is attempted.
func (o *RepairOrder) SetRealCost(
	serviceIndex int,
	cost kernel.Money,
	completed bool,
	componentIndex *int,
	operation string,
	timestamp time.Time,
) error {
	if err := o.ensureNotCancelled(operation); err != nil {
		return err
	}

	if o.status != InProgress {
		return errs.NewDomainError(operation, o.id, errs.CodeSequenceError,
			"real costs can only be recorded while the order is in progress")
	}

	if serviceIndex < 1 || serviceIndex > len(o.services) {
		return errs.NewDomainError(operation, o.id, errs.CodeInvalidOperation,
			fmt.Sprintf("invalid service index: %d", serviceIndex))
	}

	service := o.services[serviceIndex-1]
	if componentIndex != nil {
		service.SetComponentRealCost(*componentIndex-1, cost)
	} else {
		service.SetRealCost(cost, completed)
	}

	o.checkCostOverrun(timestamp)
	return nil
}

// TryComplete attempts to finish the order.
//
// If the order is already WAITING_FOR_APPROVAL it fails with REQUIRES_REAUTH
// without re-checking the limit. From IN_PROGRESS the real total is
// recomputed: if it exceeds the overrun limit the order moves to
// WAITING_FOR_APPROVAL, emits that event, and fails with REQUIRES_REAUTH.
// Otherwise the order becomes COMPLETED and emits COMPLETED.
func (o *RepairOrder) TryComplete(operation string, timestamp time.Time) error {
	if err := o.ensureNotCancelled(operation); err != nil {
		return err
	}

	if o.status == WaitingForApproval {
		return o.requiresReauthError(operation, o.RealTotal())
	}

	if o.status != InProgress {
		return errs.NewDomainError(operation, o.id, errs.CodeSequenceError,
			"order must be in progress to complete it")
	}

	realTotal := o.RealTotal()
	if o.authorization != nil && o.authorization.ExceedsLimit(realTotal) {
		o.status = WaitingForApproval
		o.recordEvent(EventWaitingForApproval, timestamp, map[string]any{
			"real_total": realTotal.String(),
			"limit":      o.authorization.Limit().String(),
		})
		return o.requiresReauthError(operation, realTotal)
	}

	o.status = Completed
	o.recordEvent(EventCompleted, timestamp, nil)
	return nil
}

// Reauthorize records a new customer-approved amount while the order waits
// for approval. The authorization version increments, the order returns to
// AUTHORIZED, and REAUTHORIZED is emitted with the new amount and version.
func (o *RepairOrder) Reauthorize(newAmount kernel.Money, operation string, timestamp time.Time) error {
	if err := o.ensureNotCancelled(operation); err != nil {
		return err
	}

	if o.status != WaitingForApproval {
		return errs.NewDomainError(operation, o.id, errs.CodeSequenceError,
			"reauthorization is only allowed while the order is waiting for approval")
	}

	previousVersion := 0
	if o.authorization != nil {
		previousVersion = o.authorization.Version()
	}

	o.authorization = NewReauthorization(newAmount, timestamp, previousVersion)
	o.status = Authorized
	o.recordEvent(EventReauthorized, timestamp, map[string]any{
		"new_authorized_amount": newAmount.String(),
		"version":               o.authorization.Version(),
	})
	return nil
}

// Deliver hands the vehicle back to the customer. Valid only from COMPLETED.
func (o *RepairOrder) Deliver(operation string, timestamp time.Time) error {
	if err := o.ensureNotCancelled(operation); err != nil {
		return err
	}
	if err := o.ensureTransition(Delivered, operation); err != nil {
		return err
	}

	o.status = Delivered
	o.recordEvent(EventDelivered, timestamp, nil)
	return nil
}

// Cancel cancels the order with a reason. Cancellation is allowed from every
// state except DELIVERED, bypassing the transition table. Cancelling an
// already-cancelled order is a no-op: no error, no duplicate event.
func (o *RepairOrder) Cancel(reason, operation string, timestamp time.Time) error {
	if o.status == Cancelled {
		return nil
	}

	if o.status == Delivered {
		return errs.NewDomainError(operation, o.id, errs.CodeInvalidOperation,
			"cannot cancel a delivered order")
	}

	o.cancelReason = reason
	o.status = Cancelled
	o.recordEvent(EventCancelled, timestamp, map[string]any{"reason": reason})
	return nil
}

// SubtotalEstimated is the sum of estimated totals across all services.
func (o *RepairOrder) SubtotalEstimated() kernel.Money {
	total := kernel.ZeroMoney()
	for _, service := range o.services {
		total = total.Add(service.EstimatedTotal())
	}
	return total
}

// RealTotal is the sum of real totals across all services.
func (o *RepairOrder) RealTotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, service := range o.services {
		total = total.Add(service.RealTotal())
	}
	return total
}

// AuthorizedAmount returns the current authorized amount. The second return
// value is false while the order has never been authorized.
func (o *RepairOrder) AuthorizedAmount() (kernel.Money, bool) {
	if o.authorization == nil {
		return kernel.ZeroMoney(), false
	}
	return o.authorization.AuthorizedAmount(), true
}

func (o *RepairOrder) recordEvent(eventType string, timestamp time.Time, metadata map[string]any) {
	o.events = append(o.events, NewDomainEvent(o.id, eventType, timestamp, metadata))
}

func (o *RepairOrder) ensureNotCancelled(operation string) error {
	if o.status == Cancelled {
		return errs.NewDomainError(operation, o.id, errs.CodeOrderCancelled,
			fmt.Sprintf("order %s is cancelled", o.id))
	}
	return nil
}

func (o *RepairOrder) ensureTransition(target Status, operation string) error {
	if !o.status.CanTransitionTo(target) {
		return errs.NewDomainError(operation, o.id, errs.CodeSequenceError,
			fmt.Sprintf("invalid transition from %s to %s", o.status, target))
	}
	return nil
}

// checkCostOverrun moves the order to WAITING_FOR_APPROVAL when the real
// total exceeds the overrun limit. Entering the state again re-emits the
// event with the current figures; re-evaluation is intentional.
func (o *RepairOrder) checkCostOverrun(timestamp time.Time) {
	if o.authorization == nil {
		return
	}

	realTotal := o.RealTotal()
	if o.authorization.ExceedsLimit(realTotal) {
		o.status = WaitingForApproval
		o.recordEvent(EventWaitingForApproval, timestamp, map[string]any{
			"real_total": realTotal.String(),
			"limit":      o.authorization.Limit().String(),
		})
	}
}

func (o *RepairOrder) requiresReauthError(operation string, realTotal kernel.Money) error {
	return errs.NewDomainError(operation, o.id, errs.CodeRequiresReauth,
		fmt.Sprintf("real cost (%s) exceeds 110%% of the authorized amount (%s), limit: %s",
			realTotal, o.authorization.AuthorizedAmount(), o.authorization.Limit()))
}

func requireValue(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
