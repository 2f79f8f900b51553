package unit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

func TestConvert_WithinFamily(t *testing.T) {
	cases := []struct {
		name string
		qty  string
		from unit.Unit
		to   unit.Unit
		want string
	}{
		{"kg to gm", "1.5", unit.Kilogram, unit.Gram, "1500"},
		{"gm to kg", "1500", unit.Gram, unit.Kilogram, "1.5"},
		{"mg to gm", "500", unit.Milligram, unit.Gram, "0.5"},
		{"litre to ml", "0.25", unit.Litre, unit.Millilitre, "250"},
		{"ml to litre", "330", unit.Millilitre, unit.Litre, "0.33"},
		{"same unit", "7.125", unit.Gram, unit.Gram, "7.13"},
		{"pcs to pcs", "4", unit.Piece, unit.Piece, "4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := unit.Convert(decimal.RequireFromString(tc.qty), tc.from, tc.to)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"got %s, want %s", got, tc.want)
		})
	}
}

func TestConvert_CrossFamilyRejected(t *testing.T) {
	cases := []struct {
		from, to unit.Unit
	}{
		{unit.Gram, unit.Millilitre},
		{unit.Kilogram, unit.Piece},
		{unit.Litre, unit.Milligram},
		{unit.Piece, unit.Litre},
	}
	for _, tc := range cases {
		_, err := unit.Convert(decimal.NewFromInt(1), tc.from, tc.to)
		assert.ErrorIs(t, err, domain.ErrIncompatibleUnit, "%s -> %s", tc.from, tc.to)
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	// convert(convert(x, A, B), B, A) ≈ x within 2-decimal tolerance
	tolerance := decimal.RequireFromString("0.01")
	pairs := []struct{ a, b unit.Unit }{
		{unit.Kilogram, unit.Gram},
		{unit.Gram, unit.Milligram},
		{unit.Litre, unit.Millilitre},
	}
	x := decimal.RequireFromString("3.17")
	for _, p := range pairs {
		there, err := unit.Convert(x, p.a, p.b)
		require.NoError(t, err)
		back, err := unit.Convert(there, p.b, p.a)
		require.NoError(t, err)
		assert.True(t, back.Sub(x).Abs().LessThanOrEqual(tolerance),
			"%s->%s->%s: %s != %s", p.a, p.b, p.a, back, x)
	}
}

func TestParse(t *testing.T) {
	u, err := unit.Parse("litre")
	require.NoError(t, err)
	assert.Equal(t, unit.Litre, u)

	_, err = unit.Parse("gallon")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRoundAfterOp(t *testing.T) {
	a := decimal.RequireFromString("0.105")
	b := decimal.RequireFromString("0.105")
	// rounding happens after the op, not on the inputs
	assert.Equal(t, "0.21", unit.Add(a, b).String())
	assert.Equal(t, "0.01", unit.Mul(a, b).String())
	assert.Equal(t, "0", unit.Sub(a, b).String())
}
