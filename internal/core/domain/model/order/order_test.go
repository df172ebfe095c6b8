package order_test

import (
	"testing"
	"time"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTS = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newBaseOrder(t *testing.T) *order.RepairOrder {
	t.Helper()
	o, err := order.NewRepairOrder("R001", "ACME", "ABC-123", testTS)
	require.NoError(t, err)
	return o
}

// engine repair: labor 10000.00 + oil pump 1500.00 (estimated subtotal 11500.00)
func addEngineService(t *testing.T, o *order.RepairOrder) {
	t.Helper()
	component, err := order.NewComponent("Oil pump", money(t, "1500.00"))
	require.NoError(t, err)
	svc, err := order.NewService("Engine repair", money(t, "10000.00"), []*order.Component{component})
	require.NoError(t, err)
	require.NoError(t, o.AddService(svc, "ADD_SERVICE", testTS))
}

func advanceToInProgress(t *testing.T, o *order.RepairOrder) {
	t.Helper()
	require.NoError(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS))
	require.NoError(t, o.Authorize("AUTHORIZE", testTS))
	require.NoError(t, o.SetInProgress("SET_STATE_IN_PROGRESS", testTS))
}

func eventTypes(o *order.RepairOrder) []string {
	types := make([]string, 0, len(o.Events()))
	for _, e := range o.Events() {
		types = append(types, e.Type())
	}
	return types
}

func TestNewRepairOrder(t *testing.T) {
	t.Run("starts in CREATED status with a CREATED event", func(t *testing.T) {
		o := newBaseOrder(t)

		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, "R001", o.ID())
		assert.Equal(t, "ACME", o.Customer())
		assert.Equal(t, "ABC-123", o.Vehicle())
		assert.Equal(t, []string{"CREATED"}, eventTypes(o))
		assert.Nil(t, o.Authorization())
		assert.Empty(t, o.Services())
	})

	t.Run("requires id, customer and vehicle", func(t *testing.T) {
		_, err := order.NewRepairOrder("", "ACME", "ABC-123", testTS)
		require.Error(t, err)

		_, err = order.NewRepairOrder("R001", "", "ABC-123", testTS)
		require.Error(t, err)

		_, err = order.NewRepairOrder("R001", "ACME", "", testTS)
		require.Error(t, err)
	})
}

func TestAuthorize(t *testing.T) {
	t.Run("creates the initial authorization from the estimated subtotal", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		require.NoError(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS))

		require.NoError(t, o.Authorize("AUTHORIZE", testTS))

		assert.Equal(t, order.Authorized, o.Status())
		require.NotNil(t, o.Authorization())
		assert.Equal(t, 1, o.Authorization().Version())
		assert.Equal(t, "13340.00", o.Authorization().AuthorizedAmount().String())
		assert.Equal(t, "14674.00", o.Authorization().Limit().String())

		authorized := o.Events()[len(o.Events())-1]
		assert.Equal(t, "AUTHORIZED", authorized.Type())
		assert.Equal(t, "11500.00", authorized.Metadata()["subtotal"])
		assert.Equal(t, "13340.00", authorized.Metadata()["authorized_amount"])
	})

	t.Run("fails with NO_SERVICES on an empty order", func(t *testing.T) {
		o := newBaseOrder(t)
		require.NoError(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS))

		err := o.Authorize("AUTHORIZE", testTS)

		require.ErrorIs(t, err, errs.ErrNoServices)
		assert.Equal(t, order.Diagnosed, o.Status())
	})

	t.Run("fails with SEQUENCE_ERROR before diagnosis", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)

		err := o.Authorize("AUTHORIZE", testTS)

		require.ErrorIs(t, err, errs.ErrSequenceError)
	})
}

func TestAddService(t *testing.T) {
	t.Run("allowed while CREATED and DIAGNOSED", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		require.NoError(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS))
		addEngineService(t, o)

		assert.Len(t, o.Services(), 2)
		assert.Equal(t, "23000.00", o.SubtotalEstimated().String())
	})

	t.Run("fails after authorization", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		require.NoError(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS))
		require.NoError(t, o.Authorize("AUTHORIZE", testTS))

		svc, err := order.NewService("Brake pads", money(t, "800.00"), nil)
		require.NoError(t, err)
		addErr := o.AddService(svc, "ADD_SERVICE", testTS)

		require.ErrorIs(t, addErr, errs.ErrNotAllowedAfterAuthorization)
		assert.Len(t, o.Services(), 1)
	})
}

func TestSetInProgress(t *testing.T) {
	t.Run("fails with SEQUENCE_ERROR when not authorized", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		require.NoError(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS))

		err := o.SetInProgress("SET_STATE_IN_PROGRESS", testTS)

		require.ErrorIs(t, err, errs.ErrSequenceError)

		var domainErr *errs.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "order must be authorized before work can start", domainErr.Message)
	})
}

func TestSetRealCost(t *testing.T) {
	t.Run("fails with SEQUENCE_ERROR outside IN_PROGRESS", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)

		err := o.SetRealCost(1, money(t, "100.00"), false, nil, "SET_REAL_COST", testTS)

		require.ErrorIs(t, err, errs.ErrSequenceError)
	})

	t.Run("fails with INVALID_OPERATION on an out-of-range service index", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		advanceToInProgress(t, o)

		require.ErrorIs(t,
			o.SetRealCost(0, money(t, "100.00"), false, nil, "SET_REAL_COST", testTS),
			errs.ErrInvalidOperation)
		require.ErrorIs(t,
			o.SetRealCost(2, money(t, "100.00"), false, nil, "SET_REAL_COST", testTS),
			errs.ErrInvalidOperation)
	})

	t.Run("records a component real cost via 1-based index", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		advanceToInProgress(t, o)

		componentIndex := 1
		require.NoError(t, o.SetRealCost(1, money(t, "1600.00"), false, &componentIndex, "SET_REAL_COST", testTS))

		assert.Equal(t, "1600.00", o.RealTotal().String())
		assert.False(t, o.Services()[0].HasRealLaborCost())
	})

	t.Run("silently ignores an out-of-range component index", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		advanceToInProgress(t, o)

		componentIndex := 7
		require.NoError(t, o.SetRealCost(1, money(t, "1600.00"), false, &componentIndex, "SET_REAL_COST", testTS))

		assert.Equal(t, "0.00", o.RealTotal().String())
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("moves to WAITING_FOR_APPROVAL when the limit is exceeded, without error", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		advanceToInProgress(t, o)

		require.NoError(t, o.SetRealCost(1, money(t, "15000.00"), true, nil, "SET_REAL_COST", testTS))

		assert.Equal(t, order.WaitingForApproval, o.Status())

		waiting := o.Events()[len(o.Events())-1]
		assert.Equal(t, "WAITING_FOR_APPROVAL", waiting.Type())
		assert.Equal(t, "15000.00", waiting.Metadata()["real_total"])
		assert.Equal(t, "14674.00", waiting.Metadata()["limit"])
	})
}

// Scenario: real costs stay within the overrun limit, the order completes
// and is delivered.
func TestCompleteFlowDelivered(t *testing.T) {
	o := newBaseOrder(t)
	addEngineService(t, o)
	advanceToInProgress(t, o)

	require.NoError(t, o.SetRealCost(1, money(t, "11500.00"), true, nil, "SET_REAL_COST", testTS))
	require.NoError(t, o.TryComplete("TRY_COMPLETE", testTS))
	assert.Equal(t, order.Completed, o.Status())

	require.NoError(t, o.Deliver("DELIVER", testTS))
	assert.Equal(t, order.Delivered, o.Status())

	assert.Equal(t, []string{
		"CREATED", "DIAGNOSED", "AUTHORIZED", "IN_PROGRESS", "COMPLETED", "DELIVERED",
	}, eventTypes(o))
}

// Scenario: overrun forces a reauthorization before the order can complete.
func TestOverrunReauthorizationFlow(t *testing.T) {
	o := newBaseOrder(t)
	addEngineService(t, o)
	advanceToInProgress(t, o)

	require.NoError(t, o.SetRealCost(1, money(t, "15000.00"), true, nil, "SET_REAL_COST", testTS))
	assert.Equal(t, order.WaitingForApproval, o.Status())

	err := o.TryComplete("TRY_COMPLETE", testTS)
	require.ErrorIs(t, err, errs.ErrRequiresReauth)

	require.NoError(t, o.Reauthorize(money(t, "20000.00"), "REAUTHORIZE", testTS))
	assert.Equal(t, order.Authorized, o.Status())
	assert.Equal(t, 2, o.Authorization().Version())
	assert.Equal(t, "20000.00", o.Authorization().AuthorizedAmount().String())
	assert.Equal(t, "0.00", o.Authorization().Subtotal().String())

	reauthorized := o.Events()[len(o.Events())-1]
	assert.Equal(t, "REAUTHORIZED", reauthorized.Type())
	assert.Equal(t, "20000.00", reauthorized.Metadata()["new_authorized_amount"])
	assert.Equal(t, 2, reauthorized.Metadata()["version"])

	require.NoError(t, o.SetInProgress("SET_STATE_IN_PROGRESS", testTS))
	require.NoError(t, o.TryComplete("TRY_COMPLETE", testTS))
	assert.Equal(t, order.Completed, o.Status())
}

// Scenario: a real total exactly at the 110% limit completes without
// reauthorization; the boundary is strict.
func TestOverrunBoundaryNotExceeded(t *testing.T) {
	o := newBaseOrder(t)
	addEngineService(t, o)
	advanceToInProgress(t, o)

	// limit is 13340.00 * 1.10 = 14674.00
	require.NoError(t, o.SetRealCost(1, money(t, "14674.00"), true, nil, "SET_REAL_COST", testTS))
	assert.Equal(t, order.InProgress, o.Status())

	require.NoError(t, o.TryComplete("TRY_COMPLETE", testTS))
	assert.Equal(t, order.Completed, o.Status())
}

func TestTryCompleteWhileWaitingForApproval(t *testing.T) {
	o := newBaseOrder(t)
	addEngineService(t, o)
	advanceToInProgress(t, o)

	require.NoError(t, o.SetRealCost(1, money(t, "15000.00"), true, nil, "SET_REAL_COST", testTS))
	require.Equal(t, order.WaitingForApproval, o.Status())

	// Already waiting: TryComplete fails immediately without re-evaluating
	// the limit, and the message carries the current figures.
	err := o.TryComplete("TRY_COMPLETE", testTS)
	require.ErrorIs(t, err, errs.ErrRequiresReauth)

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, errs.CodeRequiresReauth, domainErr.Code)
	assert.Contains(t, domainErr.Message, "15000.00")
	assert.Contains(t, domainErr.Message, "14674.00")
}

func TestWaitingForApprovalReentry(t *testing.T) {
	// Entering WAITING_FOR_APPROVAL from SetRealCost and again from
	// TryComplete re-emits the event; re-evaluation is not deduplicated.
	o := newBaseOrder(t)
	addEngineService(t, o)
	advanceToInProgress(t, o)

	componentIndex := 1
	require.NoError(t, o.SetRealCost(1, money(t, "20000.00"), false, &componentIndex, "SET_REAL_COST", testTS))
	assert.Equal(t, order.WaitingForApproval, o.Status())

	require.NoError(t, o.Reauthorize(money(t, "17000.00"), "REAUTHORIZE", testTS))
	require.NoError(t, o.SetInProgress("SET_STATE_IN_PROGRESS", testTS))

	// 20000.00 component real cost still exceeds 17000.00 * 1.10 = 18700.00.
	err := o.TryComplete("TRY_COMPLETE", testTS)
	require.ErrorIs(t, err, errs.ErrRequiresReauth)
	assert.Equal(t, order.WaitingForApproval, o.Status())

	waitingCount := 0
	for _, eventType := range eventTypes(o) {
		if eventType == "WAITING_FOR_APPROVAL" {
			waitingCount++
		}
	}
	assert.Equal(t, 2, waitingCount)
}

func TestCancel(t *testing.T) {
	t.Run("allowed from any non-delivered state", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		require.NoError(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS))

		require.NoError(t, o.Cancel("customer declined", "CANCEL", testTS))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "customer declined", o.CancelReason())

		cancelled := o.Events()[len(o.Events())-1]
		assert.Equal(t, "CANCELLED", cancelled.Type())
		assert.Equal(t, "customer declined", cancelled.Metadata()["reason"])
	})

	t.Run("idempotent once cancelled", func(t *testing.T) {
		o := newBaseOrder(t)
		require.NoError(t, o.Cancel("first", "CANCEL", testTS))
		eventsBefore := len(o.Events())

		require.NoError(t, o.Cancel("second", "CANCEL", testTS))

		assert.Equal(t, "first", o.CancelReason())
		assert.Len(t, o.Events(), eventsBefore)
	})

	t.Run("fails with INVALID_OPERATION after delivery", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		advanceToInProgress(t, o)
		require.NoError(t, o.SetRealCost(1, money(t, "11500.00"), true, nil, "SET_REAL_COST", testTS))
		require.NoError(t, o.TryComplete("TRY_COMPLETE", testTS))
		require.NoError(t, o.Deliver("DELIVER", testTS))

		err := o.Cancel("too late", "CANCEL", testTS)

		require.ErrorIs(t, err, errs.ErrInvalidOperation)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("every other mutation fails with ORDER_CANCELLED", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		require.NoError(t, o.Cancel("scrapped", "CANCEL", testTS))

		svc, err := order.NewService("Brake pads", money(t, "800.00"), nil)
		require.NoError(t, err)

		require.ErrorIs(t, o.AddService(svc, "ADD_SERVICE", testTS), errs.ErrOrderCancelled)
		require.ErrorIs(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS), errs.ErrOrderCancelled)
		require.ErrorIs(t, o.Authorize("AUTHORIZE", testTS), errs.ErrOrderCancelled)
		require.ErrorIs(t, o.SetInProgress("SET_STATE_IN_PROGRESS", testTS), errs.ErrOrderCancelled)
		require.ErrorIs(t,
			o.SetRealCost(1, money(t, "1.00"), false, nil, "SET_REAL_COST", testTS),
			errs.ErrOrderCancelled)
		require.ErrorIs(t, o.TryComplete("TRY_COMPLETE", testTS), errs.ErrOrderCancelled)
		require.ErrorIs(t,
			o.Reauthorize(money(t, "1.00"), "REAUTHORIZE", testTS),
			errs.ErrOrderCancelled)
		require.ErrorIs(t, o.Deliver("DELIVER", testTS), errs.ErrOrderCancelled)
	})
}

func TestInvalidTransitionsFailWithSequenceError(t *testing.T) {
	t.Run("deliver before completion", func(t *testing.T) {
		o := newBaseOrder(t)
		require.ErrorIs(t, o.Deliver("DELIVER", testTS), errs.ErrSequenceError)
	})

	t.Run("diagnose twice", func(t *testing.T) {
		o := newBaseOrder(t)
		require.NoError(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS))
		require.ErrorIs(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS), errs.ErrSequenceError)
	})

	t.Run("reauthorize while in progress", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		advanceToInProgress(t, o)
		require.ErrorIs(t,
			o.Reauthorize(money(t, "20000.00"), "REAUTHORIZE", testTS),
			errs.ErrSequenceError)
	})

	t.Run("complete before starting work", func(t *testing.T) {
		o := newBaseOrder(t)
		addEngineService(t, o)
		require.NoError(t, o.SetDiagnosed("SET_STATE_DIAGNOSED", testTS))
		require.NoError(t, o.Authorize("AUTHORIZE", testTS))
		require.ErrorIs(t, o.TryComplete("TRY_COMPLETE", testTS), errs.ErrSequenceError)
	})
}

func TestDomainErrorPayload(t *testing.T) {
	o := newBaseOrder(t)

	err := o.Deliver("DELIVER", testTS)

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DELIVER", domainErr.Operation)
	assert.Equal(t, "R001", domainErr.OrderID)
	assert.Equal(t, errs.CodeSequenceError, domainErr.Code)
	assert.Equal(t, "invalid transition from CREATED to DELIVERED", domainErr.Message)
}

func TestSubtotalIndependentOfCallOrder(t *testing.T) {
	o := newBaseOrder(t)
	addEngineService(t, o)

	first := o.SubtotalEstimated()
	_ = o.RealTotal()
	second := o.SubtotalEstimated()

	assert.True(t, first.IsEqual(second))
	assert.Equal(t, "11500.00", second.String())
}

func TestRestoreRepairOrder(t *testing.T) {
	t.Run("rebuilds an order without emitting events", func(t *testing.T) {
		auth := order.RestoreAuthorization(2, money(t, "20000.00"), kernel.ZeroMoney(), testTS)
		events := []order.DomainEvent{
			order.NewDomainEvent("R001", order.EventCreated, testTS, nil),
		}

		o, err := order.RestoreRepairOrder("R001", "ACME", "ABC-123",
			order.Authorized, nil, auth, events, "")

		require.NoError(t, err)
		assert.Equal(t, order.Authorized, o.Status())
		assert.Equal(t, 2, o.Authorization().Version())
		assert.Len(t, o.Events(), 1)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		_, err := order.RestoreRepairOrder("R001", "ACME", "ABC-123",
			order.Unknown, nil, nil, nil, "")
		require.Error(t, err)
	})
}
