// Package moneypkg provides common currency amount functionality for apps.
//
// All amounts are fixed-point decimals at 2-decimal currency precision;
// general purpose floating point is never used for money.
package moneypkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Decimals is the currency precision of the platform wallet.
const Decimals = 2

// CommissionRate is the platform commission charged on lesson payments.
var CommissionRate = decimal.New(1, -1) // 10%

// Wallet top-up bounds, inclusive.
var (
	MinTopUp = decimal.NewFromInt(1)
	MaxTopUp = decimal.NewFromInt(1000)
)

// Valid reports whether d is a positive amount representable at currency precision.
func Valid(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(Decimals))
}

// Parse converts a string into a currency amount.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// Commission returns the platform commission for the given gross amount,
// rounded to currency precision.
func Commission(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(CommissionRate).Round(Decimals)
}

// InTopUpBounds reports whether d is within the allowed wallet top-up range.
func InTopUpBounds(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(MinTopUp) && d.LessThanOrEqual(MaxTopUp)
}

// ValidTopUpAmount is a gin binding validator for wallet top-up amounts.
var ValidTopUpAmount validator.Func = func(fieldLevel validator.FieldLevel) bool {
	s, ok := fieldLevel.Field().Interface().(string)
	if !ok {
		return false
	}

	d, err := Parse(s)
	if err != nil {
		return false
	}

	return Valid(d) && InTopUpBounds(d)
}
