package order

import (
	"fmt"

	"repairshop/internal/pkg/errs"
)

// Status represents the lifecycle state of a repair order.
//
// State transitions:
//
//	CREATED ──> DIAGNOSED ──> AUTHORIZED ──> IN_PROGRESS ──> COMPLETED ──> DELIVERED
//	                              ^               │
//	                              └── WAITING_FOR_APPROVAL <──┘ (cost overrun)
//
// Every non-terminal state may additionally transition to CANCELLED.
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status right after intake.
	Created

	// Diagnosed means the workshop has assessed the vehicle.
	Diagnosed

	// Authorized means the customer approved the estimated cost.
	Authorized

	// InProgress means repair work has started.
	InProgress

	// WaitingForApproval means recorded real costs exceeded the overrun
	// limit and the order needs a reauthorization before completing.
	WaitingForApproval

	// Completed means all work is done within the authorized limit.
	Completed

	// Delivered means the vehicle was returned to the customer. Terminal.
	Delivered

	// Cancelled means the order was cancelled. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "UNKNOWN",
		Created:            "CREATED",
		Diagnosed:          "DIAGNOSED",
		Authorized:         "AUTHORIZED",
		InProgress:         "IN_PROGRESS",
		WaitingForApproval: "WAITING_FOR_APPROVAL",
		Completed:          "COMPLETED",
		Delivered:          "DELIVERED",
		Cancelled:          "CANCELLED",
	}
}

// validTransitions is the status-keyed transition table. A mutation that
// would move the order from s to t is legal iff t appears in
// validTransitions[s]. Cancel bypasses this table (see RepairOrder.Cancel).
var validTransitions = map[Status][]Status{
	Created:            {Diagnosed, Cancelled},
	Diagnosed:          {Authorized, Cancelled},
	Authorized:         {InProgress, Cancelled},
	InProgress:         {Completed, WaitingForApproval, Cancelled},
	WaitingForApproval: {Authorized, Cancelled},
	Completed:          {Delivered, Cancelled},
	Delivered:          {},
	Cancelled:          {},
}

// Validate checks that the Status is one of the defined lifecycle states.
// Used when restoring orders from persistence.
func (s Status) Validate() error {
	if _, ok := validTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// CanTransitionTo reports whether moving from s to target is allowed by the
// transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// String returns the serialized name of the status, e.g. "WAITING_FOR_APPROVAL".
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a serialized status name back into a Status.
// Returns an error for unrecognized names, including "UNKNOWN".
func StatusFromString(value string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == value && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", value))
}
