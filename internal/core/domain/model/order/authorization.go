package order

import (
	"time"

	"github.com/shopspring/decimal"

	"repairshop/internal/core/domain/model/kernel"
)

var (
	// taxRate is the tax-inclusive markup applied to the estimated subtotal
	// when the customer first authorizes the work.
	taxRate = decimal.RequireFromString("1.16")

	// overrunRate caps how far real costs may drift past the authorized
	// amount before completion is blocked.
	overrunRate = decimal.RequireFromString("1.10")
)

// Authorization is the customer-approved spending ceiling for an order.
// Versions start at 1 and increase with each reauthorization.
type Authorization struct {
	version          int
	authorizedAmount kernel.Money
	subtotal         kernel.Money
	timestamp        time.Time
}

// NewInitialAuthorization creates version 1 of an order's authorization.
// The authorized amount is the estimated subtotal times the 1.16 tax markup.
func NewInitialAuthorization(subtotal kernel.Money, timestamp time.Time) *Authorization {
	return &Authorization{
		version:          1,
		authorizedAmount: subtotal.Multiply(taxRate),
		subtotal:         subtotal,
		timestamp:        timestamp,
	}
}

// NewReauthorization creates the next version of an authorization with a
// customer-approved amount. The subtotal resets to zero: a reauthorization
// approves a figure, not an estimate.
func NewReauthorization(newAmount kernel.Money, timestamp time.Time, previousVersion int) *Authorization {
	return &Authorization{
		version:          previousVersion + 1,
		authorizedAmount: newAmount,
		subtotal:         kernel.ZeroMoney(),
		timestamp:        timestamp,
	}
}

// RestoreAuthorization rebuilds an authorization from persistence.
func RestoreAuthorization(version int, authorizedAmount, subtotal kernel.Money, timestamp time.Time) *Authorization {
	return &Authorization{
		version:          version,
		authorizedAmount: authorizedAmount,
		subtotal:         subtotal,
		timestamp:        timestamp,
	}
}

// Version returns the authorization version, starting at 1.
func (a *Authorization) Version() int {
	return a.version
}

// AuthorizedAmount returns the approved spending ceiling.
func (a *Authorization) AuthorizedAmount() kernel.Money {
	return a.authorizedAmount
}

// Subtotal returns the estimated subtotal this authorization was computed
// from, or zero for reauthorizations.
func (a *Authorization) Subtotal() kernel.Money {
	return a.subtotal
}

// Timestamp returns when the authorization was granted.
func (a *Authorization) Timestamp() time.Time {
	return a.timestamp
}

// Limit returns the overrun limit: 110% of the authorized amount.
func (a *Authorization) Limit() kernel.Money {
	return a.authorizedAmount.Multiply(overrunRate)
}

// ExceedsLimit reports whether realTotal is strictly greater than the
// overrun limit. A real total exactly equal to the limit does not exceed it.
func (a *Authorization) ExceedsLimit(realTotal kernel.Money) bool {
	return realTotal.GreaterThan(a.Limit())
}
