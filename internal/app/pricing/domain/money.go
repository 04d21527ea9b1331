package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// It stores the value as a rational number (numerator/denominator) to avoid floating-point precision issues.
// Money values are immutable: every operation returns a new instance.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(249900, 100) represents 2499.00
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator <= 0 {
		return nil, fmt.Errorf("denominator must be positive, got %d", denominator)
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// MustMoney is NewMoney for constant inputs known to be valid.
func MustMoney(numerator, denominator int64) *Money {
	m, err := NewMoney(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero Money value.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// ParseMoney parses a decimal string such as "120.50".
func ParseMoney(value string) (*Money, error) {
	rat, ok := new(big.Rat).SetString(strings.TrimSpace(value))
	if !ok {
		return nil, fmt.Errorf("invalid monetary amount %q", value)
	}
	return &Money{rat: rat}, nil
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyByRat multiplies this Money value by a rational number and returns a new Money instance.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, rat)}
}

// MultiplyInt multiplies this Money value by an integer quantity.
func (m *Money) MultiplyInt(n int64) *Money {
	return m.MultiplyByRat(new(big.Rat).SetInt64(n))
}

// Negate returns the additive inverse.
func (m *Money) Negate() *Money {
	return &Money{rat: new(big.Rat).Neg(m.rat)}
}

// NonNegative clamps negative values to zero.
func (m *Money) NonNegative() *Money {
	if m.rat.Sign() < 0 {
		return Zero()
	}
	return m.Copy()
}

// Min returns the smaller of the two values.
func (m *Money) Min(other *Money) *Money {
	if other.LessThan(m) {
		return other.Copy()
	}
	return m.Copy()
}

// Round rounds to the given number of decimal places, half away from zero.
func (m *Money) Round(places int) *Money {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	scaled := new(big.Rat).Mul(m.rat, new(big.Rat).SetInt(scale))

	num := new(big.Int).Abs(scaled.Num())
	den := scaled.Denom()
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if new(big.Int).Mul(r, big.NewInt(2)).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if scaled.Sign() < 0 {
		q.Neg(q)
	}
	return &Money{rat: new(big.Rat).SetFrac(q, scale)}
}

// Fraction returns the normalized numerator and denominator for int64 column storage.
// 200/2 is returned as 100/1.
func (m *Money) Fraction() (num, den int64, err error) {
	if !m.rat.Num().IsInt64() || !m.rat.Denom().IsInt64() {
		return 0, 0, fmt.Errorf("%w: %s", ErrMoneyOverflow, m.rat.RatString())
	}
	return m.rat.Num().Int64(), m.rat.Denom().Int64(), nil
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns the value rounded to two decimals.
func (m *Money) String() string {
	return m.Round(2).rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (m *Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	m.rat = parsed.rat
	return nil
}

// ParseRat parses a decimal string into a rational, used for multipliers and percentages.
func ParseRat(value string) (*big.Rat, error) {
	rat, ok := new(big.Rat).SetString(strings.TrimSpace(value))
	if !ok {
		return nil, fmt.Errorf("invalid decimal %q", value)
	}
	return rat, nil
}

// MustRat is ParseRat for constant inputs known to be valid.
func MustRat(value string) *big.Rat {
	rat, err := ParseRat(value)
	if err != nil {
		panic(err)
	}
	return rat
}
