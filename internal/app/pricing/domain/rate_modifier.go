package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	minPercentageModifier = big.NewRat(-100, 1)
	maxPercentageModifier = big.NewRat(1000, 1)
	hundred               = big.NewRat(100, 1)
)

// ModifierParams carries the raw attributes of a new rate modifier.
type ModifierParams struct {
	Name      string
	Type      string
	Value     *big.Rat
	Condition string
}

// RateModifier is a named adjustment attached to a rate.
// Percentage values are percent of the stay's base price; fixed values are an amount per night.
type RateModifier struct {
	id        string
	rateID    string
	name      string
	modType   ModifierType
	value     *big.Rat
	condition string
	createdAt time.Time
}

// NewRateModifier validates params and creates a modifier for the given rate.
func NewRateModifier(id, rateID string, params ModifierParams, now time.Time) (*RateModifier, error) {
	name := strings.TrimSpace(params.Name)
	if n := utf8.RuneCountInString(name); n < 1 || n > maxNameLength {
		return nil, ErrInvalidModifierName
	}

	modType, err := ParseModifierType(params.Type)
	if err != nil {
		return nil, err
	}

	if params.Value == nil {
		return nil, fmt.Errorf("%w: value is required", ErrInvalidModifierValue)
	}
	if modType == ModifierPercentage &&
		(params.Value.Cmp(minPercentageModifier) < 0 || params.Value.Cmp(maxPercentageModifier) > 0) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidModifierValue, params.Value.FloatString(2))
	}

	return &RateModifier{
		id:        id,
		rateID:    rateID,
		name:      name,
		modType:   modType,
		value:     new(big.Rat).Set(params.Value),
		condition: strings.TrimSpace(params.Condition),
		createdAt: now,
	}, nil
}

// ReconstructRateModifier rebuilds a modifier from storage.
func ReconstructRateModifier(id, rateID, name string, modType ModifierType, value *big.Rat, condition string, createdAt time.Time) *RateModifier {
	return &RateModifier{
		id:        id,
		rateID:    rateID,
		name:      name,
		modType:   modType,
		value:     new(big.Rat).Set(value),
		condition: condition,
		createdAt: createdAt,
	}
}

func (m *RateModifier) ID() string           { return m.id }
func (m *RateModifier) RateID() string       { return m.rateID }
func (m *RateModifier) Name() string         { return m.name }
func (m *RateModifier) Type() ModifierType   { return m.modType }
func (m *RateModifier) Value() *big.Rat      { return new(big.Rat).Set(m.value) }
func (m *RateModifier) Condition() string    { return m.condition }
func (m *RateModifier) CreatedAt() time.Time { return m.createdAt }

// Contribution returns the amount this modifier adds to a stay whose base price is stayBase.
// It depends only on the base, never on other modifiers.
func (m *RateModifier) Contribution(stayBase *Money, nights int) *Money {
	switch m.modType {
	case ModifierPercentage:
		return stayBase.MultiplyByRat(new(big.Rat).Quo(m.value, hundred))
	case ModifierFixed:
		return NewMoneyFromRat(m.value).MultiplyInt(int64(nights))
	default:
		return Zero()
	}
}
