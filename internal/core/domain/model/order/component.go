package order

import (
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"
)

// Component is a part or material line item within a service. It carries an
// estimated cost from the diagnosis and, once the part is actually fitted,
// a real cost.
type Component struct {
	description   string
	estimatedCost kernel.Money
	realCost      *kernel.Money
}

// NewComponent creates a component with the given description and estimated
// cost. The real cost starts unset.
func NewComponent(description string, estimatedCost kernel.Money) (*Component, error) {
	if description == "" {
		return nil, errs.NewValueIsRequiredError("component description")
	}

	return &Component{
		description:   description,
		estimatedCost: estimatedCost,
	}, nil
}

// RestoreComponent rebuilds a component from persistence, including an
// already-recorded real cost when present.
func RestoreComponent(description string, estimatedCost kernel.Money, realCost *kernel.Money) *Component {
	return &Component{
		description:   description,
		estimatedCost: estimatedCost,
		realCost:      realCost,
	}
}

// Description returns the component's description.
func (c *Component) Description() string {
	return c.description
}

// EstimatedCost returns the cost estimated at diagnosis time.
func (c *Component) EstimatedCost() kernel.Money {
	return c.estimatedCost
}

// RealCost returns the recorded real cost, or zero while it is unset.
func (c *Component) RealCost() kernel.Money {
	if c.realCost == nil {
		return kernel.ZeroMoney()
	}
	return *c.realCost
}

// HasRealCost reports whether a real cost has been recorded.
func (c *Component) HasRealCost() bool {
	return c.realCost != nil
}

// SetRealCost records the component's real cost.
func (c *Component) SetRealCost(cost kernel.Money) {
	c.realCost = &cost
}
