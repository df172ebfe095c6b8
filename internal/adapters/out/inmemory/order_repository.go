// Package inmemory provides a process-local order repository. It is the
// default storage backend when no database is configured and backs the
// reset endpoint used between evaluation runs.
package inmemory

import (
	"context"
	"sync"

	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"
)

// OrderRepository stores repair orders in memory, preserving insertion
// order for FindAll. Safe for concurrent use.
type OrderRepository struct {
	mu     sync.RWMutex
	ids    []string
	orders map[string]*order.RepairOrder
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*order.RepairOrder),
	}
}

// Save stores the aggregate, overwriting any previous version under the
// same id. First-time ids keep their arrival position for FindAll.
func (r *OrderRepository) Save(_ context.Context, aggregate *order.RepairOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[aggregate.ID()]; !ok {
		r.ids = append(r.ids, aggregate.ID())
	}
	r.orders[aggregate.ID()] = aggregate
	return nil
}

// FindByID retrieves an order by id.
func (r *OrderRepository) FindByID(_ context.Context, id string) (*order.RepairOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aggregate, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return aggregate, nil
}

// FindAll returns all stored orders in the order they were first saved.
func (r *OrderRepository) FindAll(_ context.Context) ([]*order.RepairOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*order.RepairOrder, 0, len(r.ids))
	for _, id := range r.ids {
		result = append(result, r.orders[id])
	}
	return result, nil
}

// Exists reports whether an order with the given id is stored.
func (r *OrderRepository) Exists(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.orders[id]
	return ok, nil
}

// Clear removes every stored order.
func (r *OrderRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ids = nil
	r.orders = make(map[string]*order.RepairOrder)
	return nil
}
