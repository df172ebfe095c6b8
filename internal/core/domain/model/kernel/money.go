package kernel

import (
	"github.com/shopspring/decimal"

	"repairshop/internal/pkg/errs"
)

// moneyScale is the number of fractional digits every Money value carries.
const moneyScale = 2

// Money is a value object representing a monetary amount with a fixed scale
// of two fractional digits. Every Money is normalized on construction and
// after each arithmetic operation using round-half-to-even (banker's
// rounding), so two Money values built from equivalent inputs are always
// identical.
//
// Money is immutable and safe for concurrent reads. The zero value is a
// valid representation of 0.00.
//
// Example usage:
//
//	labor, err := kernel.NewMoneyFromString("10000.00")
//	if err != nil {
//	    // handle parse error
//	}
//	total := labor.Add(kernel.NewMoney(decimal.NewFromInt(1500)))
//	fmt.Println(total) // "11500.00"
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal, normalizing it to two fractional
// digits with banker's rounding.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.RoundBank(moneyScale)}
}

// NewMoneyFromString parses a decimal string such as "11500.00" into a Money.
// The parsed value is normalized with banker's rounding.
//
// Returns a ValueIsInvalidError if the string is not a valid decimal.
func NewMoneyFromString(value string) (Money, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return NewMoney(amount), nil
}

// ZeroMoney returns a Money representing 0.00.
func ZeroMoney() Money {
	return Money{}
}

// Add returns the sum of two Money values, normalized.
func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

// Multiply returns the product of the amount and the given factor,
// normalized with banker's rounding.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(factor))
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// LessThanOrEqual reports whether m is less than or equal to other.
func (m Money) LessThanOrEqual(other Money) bool {
	return m.amount.LessThanOrEqual(other.amount)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual reports whether two Money values represent the same amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two fractional digits, e.g. "11500.00".
// Implements fmt.Stringer.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
