package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) (*GormOrderRepository, error) {
	if db == nil {
		return nil, errs.NewValueIsRequiredError("db")
	}
	return &GormOrderRepository{db: db}, nil
}

// Save upserts the aggregate. The position column is assigned on the first
// insert only, so an overwrite keeps the order's original arrival slot.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.RepairOrder) error {
	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"customer", "vehicle", "status", "cancel_reason",
			"services", "authorization", "events",
		}),
	}).Create(&dto).Error
}

// FindByID retrieves an order by its business identifier.
func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*order.RepairOrder, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindAll retrieves all orders in the order they were first saved.
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]*order.RepairOrder, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("position").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.RepairOrder, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// Exists reports whether an order with the given id is stored.
func (r *GormOrderRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Clear removes every stored order.
func (r *GormOrderRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&OrderDTO{}).Error
}
