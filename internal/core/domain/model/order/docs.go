// Package order provides the repair-order aggregate and its supporting
// entities. It implements the full lifecycle of a vehicle-repair work order:
// diagnosis, cost authorization, work in progress, real-cost tracking with
// overrun detection, completion, delivery, and cancellation.
//
// The package includes:
//   - RepairOrder: the aggregate root owning services, authorization, status,
//     and the append-only domain event log
//   - Status: a state machine enforcing valid lifecycle transitions through a
//     status-keyed transition table
//   - Service and Component: billable line items with estimated and real costs
//   - Authorization: the versioned, customer-approved spending ceiling
//   - DomainEvent: the immutable audit record appended on every state change
//
// Key business rules:
//   - Services can only be added before authorization (CREATED or DIAGNOSED)
//   - The initial authorized amount is the estimated subtotal plus 16% tax
//   - Real costs may exceed the authorized amount by up to 10%; past that
//     limit the order waits for a reauthorization before it can complete
//   - Cancellation is allowed from every state except DELIVERED and is
//     idempotent once the order is CANCELLED
//
// All mutation goes through aggregate methods, each of which validates the
// current status, applies the change, and appends at most one domain event.
package order
