package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrAmountIsNegative is returned when constructing Money from a negative amount.
var ErrAmountIsNegative = errs.NewValueIsInvalidError("amount must not be negative")

// Money is a non-negative monetary amount stored as integer cents.
// The zero value is a valid zero amount, so Money needs no constructor guard.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromCents(1000) // $10.00
//	total, _ := price.MulQuantity(2)           // $20.00
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money value from integer cents.
// Returns ErrAmountIsNegative for negative input.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrAmountIsNegative
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// MulQuantity returns the amount multiplied by a positive item quantity.
func (m Money) MulQuantity(quantity int) (Money, error) {
	if quantity < 1 {
		return Money{}, errs.NewValueIsInvalidError("quantity must be at least 1")
	}
	return Money{cents: m.cents * int64(quantity)}, nil
}

// IsEqual reports whether two amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// String renders the amount as a decimal string, e.g. "20.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
