package domain

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := NewMoney(249900, 100)
		require.NoError(t, err)
		assert.Equal(t, "2499.00", m.String())
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})

	t.Run("negative denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, -1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})

	t.Run("negative numerator allowed", func(t *testing.T) {
		m, err := NewMoney(-100, 1)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	m1 := MustMoney(100, 1)
	m2 := MustMoney(30, 1)

	assert.Equal(t, 130.0, m1.Add(m2).Float64())
	assert.Equal(t, 70.0, m1.Subtract(m2).Float64())
	assert.Equal(t, 150.0, m1.MultiplyByRat(big.NewRat(3, 2)).Float64())
	assert.Equal(t, 300.0, m1.MultiplyInt(3).Float64())
	assert.Equal(t, -100.0, m1.Negate().Float64())

	// operands are not mutated
	assert.Equal(t, "100.00", m1.String())
}

func TestMoney_Comparisons(t *testing.T) {
	m1 := MustMoney(100, 1)
	m2 := MustMoney(50, 1)
	m3 := MustMoney(200, 2)

	assert.True(t, m1.GreaterThan(m2))
	assert.False(t, m2.GreaterThan(m1))

	assert.True(t, m2.LessThan(m1))
	assert.False(t, m1.LessThan(m2))

	assert.True(t, m1.Equals(m3))
	assert.False(t, m1.Equals(m2))

	assert.True(t, m2.Equals(m1.Min(m2)))
}

func TestMoney_NonNegative(t *testing.T) {
	assert.True(t, MustMoney(-5, 1).NonNegative().IsZero())
	assert.Equal(t, "5.00", MustMoney(5, 1).NonNegative().String())
}

func TestMoney_Round(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"rounds half up", "2.205", "2.21"},
		{"rounds down", "2.204", "2.20"},
		{"negative rounds away from zero", "-2.205", "-2.21"},
		{"exact value unchanged", "48.80", "48.80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMoney(tt.value)
			require.NoError(t, err)
			assert.True(t, mustParse(t, tt.want).Equals(m.Round(2)))
		})
	}
}

func TestMoney_Precision(t *testing.T) {
	// 2499.00 - (2499.00 * 0.20) = 1999.20 with no floating point drift
	m1 := MustMoney(249900, 100)
	discountAmount := m1.MultiplyByRat(MustRat("0.20"))
	assert.Equal(t, "1999.20", m1.Subtract(discountAmount).String())

	// 0.1 + 0.2 is exactly 0.3
	sum := mustParse(t, "0.1").Add(mustParse(t, "0.2"))
	assert.True(t, sum.Equals(mustParse(t, "0.3")))
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(MustMoney(1205, 10))
	require.NoError(t, err)
	assert.Equal(t, "120.50", string(data))

	var fromNumber, fromString Money
	require.NoError(t, json.Unmarshal([]byte("19.99"), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"19.99"`), &fromString))
	assert.True(t, fromNumber.Equals(&fromString))

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &fromNumber))
}

func TestParseMoney_Invalid(t *testing.T) {
	_, err := ParseMoney("twelve")
	assert.Error(t, err)
}

func mustParse(t *testing.T, value string) *Money {
	t.Helper()
	m, err := ParseMoney(value)
	require.NoError(t, err)
	return m
}

func TestMoney_Fraction(t *testing.T) {
	num, den, err := MustMoney(200, 2).Fraction()
	require.NoError(t, err)
	assert.Equal(t, int64(100), num)
	assert.Equal(t, int64(1), den)

	num, den, err = mustParse(t, "12.35").Fraction()
	require.NoError(t, err)
	assert.Equal(t, int64(247), num)
	assert.Equal(t, int64(20), den)

	_, _, err = mustParse(t, "123456789012345678901234567890").Fraction()
	assert.ErrorIs(t, err, ErrMoneyOverflow)
}
