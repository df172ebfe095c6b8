package order

import (
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
)

// Service is a billable repair task composed of a labor cost and an ordered
// list of components. Estimated costs come from the diagnosis; real costs are
// recorded while the order is in progress.
type Service struct {
	description        string
	laborEstimatedCost kernel.Money
	components         []*Component
	realLaborCost      *kernel.Money
	completed          bool
}

// NewService creates a service with the given description, estimated labor
// cost, and components. The service owns the component slice exclusively.
func NewService(description string, laborEstimatedCost kernel.Money, components []*Component) (*Service, error) {
	if description == "" {
		return nil, errs.NewValueIsRequiredError("service description")
	}

	return &Service{
		description:        description,
		laborEstimatedCost: laborEstimatedCost,
		components:         components,
	}, nil
}

// RestoreService rebuilds a service from persistence.
func RestoreService(
	description string,
	laborEstimatedCost kernel.Money,
	components []*Component,
	realLaborCost *kernel.Money,
	completed bool,
) *Service {
	return &Service{
		description:        description,
		laborEstimatedCost: laborEstimatedCost,
		components:         components,
		realLaborCost:      realLaborCost,
		completed:          completed,
	}
}

// Description returns the service's description.
func (s *Service) Description() string {
	return s.description
}

// LaborEstimatedCost returns the labor cost estimated at diagnosis time.
func (s *Service) LaborEstimatedCost() kernel.Money {
	return s.laborEstimatedCost
}

// Components returns the service's components in order.
func (s *Service) Components() []*Component {
	return s.components
}

// RealLaborCost returns the recorded real labor cost, or zero while unset.
func (s *Service) RealLaborCost() kernel.Money {
	if s.realLaborCost == nil {
		return kernel.ZeroMoney()
	}
	return *s.realLaborCost
}

// HasRealLaborCost reports whether a real labor cost has been recorded.
func (s *Service) HasRealLaborCost() bool {
	return s.realLaborCost != nil
}

// IsCompleted reports whether the workshop marked the service done.
func (s *Service) IsCompleted() bool {
	return s.completed
}

// EstimatedTotal is the labor estimate plus the sum of component estimates.
func (s *Service) EstimatedTotal() kernel.Money {
	total := s.laborEstimatedCost
	for _, component := range s.components {
		total = total.Add(component.EstimatedCost())
	}
	return total
}

// RealTotal is the recorded real labor cost (zero while unset) plus the sum
// of component real costs (zero for components without one).
func (s *Service) RealTotal() kernel.Money {
	total := s.RealLaborCost()
	for _, component := range s.components {
		total = total.Add(component.RealCost())
	}
	return total
}

// SetRealCost records the real labor cost and the completed flag.
func (s *Service) SetRealCost(cost kernel.Money, completed bool) {
	s.realLaborCost = &cost
	s.completed = completed
}

// SetComponentRealCost records the real cost of the component at the given
// zero-based index. An out-of-range index is silently ignored.
func (s *Service) SetComponentRealCost(index int, cost kernel.Money) {
	if index < 0 || index >= len(s.components) {
		return
	}
	s.components[index].SetRealCost(cost)
}
