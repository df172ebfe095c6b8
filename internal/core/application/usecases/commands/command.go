package commands

import (
	"errors"
	"time"

	"repairshop/internal/pkg/guard"
)

// Recognized op values for the command envelope.
const (
	OpCreateOrder        = "CREATE_ORDER"
	OpAddService         = "ADD_SERVICE"
	OpSetStateDiagnosed  = "SET_STATE_DIAGNOSED"
	OpAuthorize          = "AUTHORIZE"
	OpSetStateInProgress = "SET_STATE_IN_PROGRESS"
	OpSetRealCost        = "SET_REAL_COST"
	OpTryComplete        = "TRY_COMPLETE"
	OpReauthorize        = "REAUTHORIZE"
	OpDeliver            = "DELIVER"
	OpCancel             = "CANCEL"
)

var (
	ErrCommandIsNotConstructed = errors.New("Command must be created via NewCommand constructor")
	ErrOpIsRequired            = errors.New("op is required")
)

// ComponentData is the wire representation of a component within an
// ADD_SERVICE command. Monetary values travel as decimal strings.
type ComponentData struct {
	Description   string `json:"description"`
	EstimatedCost string `json:"estimated_cost"`
}

// ServiceData is the wire representation of a service in an ADD_SERVICE
// command.
type ServiceData struct {
	Description        string          `json:"description"`
	LaborEstimatedCost string          `json:"labor_estimated_cost"`
	Components         []ComponentData `json:"components"`
}

// CommandData carries the op-specific payload of a command. Which fields are
// consulted depends on the op; unneeded fields stay at their zero value.
type CommandData struct {
	OrderID             string       `json:"order_id,omitempty"`
	Customer            string       `json:"customer,omitempty"`
	Vehicle             string       `json:"vehicle,omitempty"`
	Service             *ServiceData `json:"service,omitempty"`
	ServiceIndex        int          `json:"service_index,omitempty"`
	ComponentIndex      *int         `json:"component_index,omitempty"`
	RealCost            string       `json:"real_cost,omitempty"`
	Completed           bool         `json:"completed,omitempty"`
	NewAuthorizedAmount string       `json:"new_authorized_amount,omitempty"`
	Reason              string       `json:"reason,omitempty"`
}

// Command is one entry of a batch: an operation name, the business timestamp
// it was issued at, and its payload.
type Command struct {
	op   string
	ts   time.Time
	data CommandData

	guard guard.ConstructorGuard
}

// NewCommand creates a command envelope. The op must be non-empty; it is not
// checked against the recognized set here. Unknown ops are reported by the
// dispatcher as part of the batch result, not rejected upfront.
func NewCommand(op string, ts time.Time, data CommandData) (Command, error) {
	if op == "" {
		return Command{}, ErrOpIsRequired
	}

	return Command{
		op:    op,
		ts:    ts,
		data:  data,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c Command) Validate() error {
	return c.guard.Validate(ErrCommandIsNotConstructed)
}

// Op returns the operation name, e.g. "SET_REAL_COST".
func (c Command) Op() string {
	return c.op
}

// TS returns the business timestamp of the command.
func (c Command) TS() time.Time {
	return c.ts
}

// Data returns the op-specific payload.
func (c Command) Data() CommandData {
	return c.data
}
