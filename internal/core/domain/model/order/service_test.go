package order_test

import (
	"testing"

	"repairshop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComponent(t *testing.T) {
	t.Run("creates a component with unset real cost", func(t *testing.T) {
		c, err := order.NewComponent("Oil pump", money(t, "1500.00"))

		require.NoError(t, err)
		assert.Equal(t, "Oil pump", c.Description())
		assert.Equal(t, "1500.00", c.EstimatedCost().String())
		assert.False(t, c.HasRealCost())
		assert.Equal(t, "0.00", c.RealCost().String())
	})

	t.Run("requires a description", func(t *testing.T) {
		_, err := order.NewComponent("", money(t, "1500.00"))
		require.Error(t, err)
	})
}

func TestComponentSetRealCost(t *testing.T) {
	c, err := order.NewComponent("Oil pump", money(t, "1500.00"))
	require.NoError(t, err)

	c.SetRealCost(money(t, "1600.00"))

	assert.True(t, c.HasRealCost())
	assert.Equal(t, "1600.00", c.RealCost().String())
}

func TestNewService(t *testing.T) {
	t.Run("creates a service with components", func(t *testing.T) {
		component, err := order.NewComponent("Oil pump", money(t, "1500.00"))
		require.NoError(t, err)

		svc, err := order.NewService("Engine repair", money(t, "10000.00"), []*order.Component{component})

		require.NoError(t, err)
		assert.Equal(t, "Engine repair", svc.Description())
		assert.Len(t, svc.Components(), 1)
		assert.False(t, svc.IsCompleted())
		assert.False(t, svc.HasRealLaborCost())
	})

	t.Run("requires a description", func(t *testing.T) {
		_, err := order.NewService("", money(t, "10000.00"), nil)
		require.Error(t, err)
	})
}

func TestServiceEstimatedTotal(t *testing.T) {
	pump, err := order.NewComponent("Oil pump", money(t, "1500.00"))
	require.NoError(t, err)
	filter, err := order.NewComponent("Oil filter", money(t, "250.50"))
	require.NoError(t, err)

	svc, err := order.NewService("Engine repair", money(t, "10000.00"), []*order.Component{pump, filter})
	require.NoError(t, err)

	assert.Equal(t, "11750.50", svc.EstimatedTotal().String())
}

func TestServiceRealTotal(t *testing.T) {
	newService := func(t *testing.T) *order.Service {
		t.Helper()
		component, err := order.NewComponent("Oil pump", money(t, "1500.00"))
		require.NoError(t, err)
		svc, err := order.NewService("Engine repair", money(t, "10000.00"), []*order.Component{component})
		require.NoError(t, err)
		return svc
	}

	t.Run("zero while nothing is recorded", func(t *testing.T) {
		svc := newService(t)
		assert.Equal(t, "0.00", svc.RealTotal().String())
	})

	t.Run("labor plus recorded component costs", func(t *testing.T) {
		svc := newService(t)
		svc.SetRealCost(money(t, "11000.00"), true)
		svc.SetComponentRealCost(0, money(t, "1600.00"))

		assert.Equal(t, "12600.00", svc.RealTotal().String())
		assert.True(t, svc.IsCompleted())
	})

	t.Run("component costs count while labor is still unset", func(t *testing.T) {
		svc := newService(t)
		svc.SetComponentRealCost(0, money(t, "1600.00"))

		assert.Equal(t, "1600.00", svc.RealTotal().String())
	})
}

func TestServiceSetComponentRealCostOutOfRange(t *testing.T) {
	component, err := order.NewComponent("Oil pump", money(t, "1500.00"))
	require.NoError(t, err)
	svc, err := order.NewService("Engine repair", money(t, "10000.00"), []*order.Component{component})
	require.NoError(t, err)

	// Out-of-range indexes are ignored without error.
	svc.SetComponentRealCost(-1, money(t, "999.00"))
	svc.SetComponentRealCost(5, money(t, "999.00"))

	assert.False(t, svc.Components()[0].HasRealCost())
	assert.Equal(t, "0.00", svc.RealTotal().String())
}
