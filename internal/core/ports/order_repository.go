package ports

import (
	"context"

	"repairshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for repair-order
// aggregates. The core depends only on this contract, never on a storage
// mechanism.
//
// Implementations must return the orders of FindAll in the order they were
// first saved, so batch responses stay deterministic.
type OrderRepository interface {
	// Save persists the aggregate, creating it or replacing the stored
	// version with the same id.
	Save(ctx context.Context, aggregate *order.RepairOrder) error

	// FindByID retrieves an order by its business id.
	// Returns an errs.ObjectNotFoundError when no order has that id.
	FindByID(ctx context.Context, id string) (*order.RepairOrder, error)

	// FindAll retrieves every stored order in insertion order.
	FindAll(ctx context.Context) ([]*order.RepairOrder, error)

	// Exists reports whether an order with the given id is stored.
	Exists(ctx context.Context, id string) (bool, error)
}
