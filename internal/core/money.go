// Package core holds the tracker's domain types and the pure computations
// over them.
//
// This file contains the fixed-point money type. Amounts are held as integer
// cents so sums never drift; conversion to and from decimal text goes through
// shopspring/decimal.
package core

import (
	"bytes"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxCents is the largest amount a single transaction may carry,
// one trillion currency units.
const MaxCents int64 = 100_000_000_000_000

var maxCentsDecimal = decimal.NewFromInt(MaxCents)

// NewMoney builds a Money from whole units and cents, e.g. NewMoney(12, 34).
func NewMoney(units, cents int64) Money {
	return Money{Cents: units*100 + cents}
}

// MoneyFromDecimal rounds d half-up to the nearest cent. Values whose
// magnitude exceeds MaxCents return ErrInvalidAmount.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(maxCentsDecimal) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// ParseAmount converts user-entered decimal text to Money.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half-up on the third decimal place. Signs are rejected and the result must
// be strictly positive.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,34")  -> 1234 cents
//	ParseAmount("12.345") -> 1235 cents
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return Money{}, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	m, err := MoneyFromDecimal(d)
	if err != nil {
		return Money{}, err
	}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// Validate requires a strictly positive amount no larger than MaxCents.
func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxCents {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m+o, saturating at the int64 range instead of wrapping.
func (m Money) Add(o Money) Money {
	switch {
	case o.Cents > 0 && m.Cents > math.MaxInt64-o.Cents:
		return Money{Cents: math.MaxInt64}
	case o.Cents < 0 && m.Cents < math.MinInt64-o.Cents:
		return Money{Cents: math.MinInt64}
	}
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m-o, saturating like Add.
func (m Money) Sub(o Money) Money {
	switch {
	case o.Cents < 0 && m.Cents > math.MaxInt64+o.Cents:
		return Money{Cents: math.MaxInt64}
	case o.Cents > 0 && m.Cents < math.MinInt64+o.Cents:
		return Money{Cents: math.MinInt64}
	}
	return Money{Cents: m.Cents - o.Cents}
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Float returns the amount in currency units for display and ratios.
// Use Cents for arithmetic.
func (m Money) Float() float64 {
	return m.Decimal().InexactFloat64()
}

// String formats the amount with exactly two decimals, e.g. "12.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a JSON number in currency units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

// UnmarshalJSON accepts only JSON numbers; quoted amounts are rejected.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '"' || bytes.Equal(data, []byte("null")) {
		return ErrInvalidAmount
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return ErrInvalidAmount
	}
	parsed, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
