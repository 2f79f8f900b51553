// Package unit holds the measurement units recognized by the inventory and
// the conversion rules between them. Conversion is only defined within a
// family (weight, volume, count): a recipe measured in grams can never draw
// from stock tracked in litres, regardless of magnitude.
package unit

import (
	"github.com/shopspring/decimal"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
)

// Unit is one of the fixed measurement units an inventory item can use.
type Unit string

const (
	Milligram  Unit = "mg"
	Gram       Unit = "gm"
	Kilogram   Unit = "kg"
	Millilitre Unit = "ml"
	Litre      Unit = "litre"
	Piece      Unit = "pcs"
)

// Family groups units that convert into each other.
type Family string

const (
	Weight  Family = "weight"
	Volume  Family = "volume"
	Count   Family = "count"
	Unknown Family = "unknown"
)

// Precision is the fixed decimal precision for all stock and monetary
// arithmetic. Every add/multiply is rounded immediately so floating drift
// cannot compound across many small transactions.
const Precision = 2

// factors to the family base unit (gram, millilitre, piece).
var factors = map[Unit]decimal.Decimal{
	Milligram:  decimal.NewFromFloat(0.001),
	Gram:       decimal.NewFromInt(1),
	Kilogram:   decimal.NewFromInt(1000),
	Millilitre: decimal.NewFromInt(1),
	Litre:      decimal.NewFromInt(1000),
	Piece:      decimal.NewFromInt(1),
}

// Parse validates a raw unit string. An unrecognized unit is invalid input;
// ErrIncompatibleUnit is reserved for cross-family conversion attempts.
func Parse(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := factors[u]; !ok {
		return "", domain.ErrInvalidInput
	}
	return u, nil
}

// FamilyOf returns the unit's family.
func FamilyOf(u Unit) Family {
	switch u {
	case Milligram, Gram, Kilogram:
		return Weight
	case Millilitre, Litre:
		return Volume
	case Piece:
		return Count
	}
	return Unknown
}

// Compatible reports whether two units belong to the same family.
func Compatible(a, b Unit) bool {
	fa, fb := FamilyOf(a), FamilyOf(b)
	return fa != Unknown && fa == fb
}

// Convert converts qty from one unit to another within the same family,
// rounded to the fixed precision. Cross-family conversion returns
// domain.ErrIncompatibleUnit.
func Convert(qty decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	if !Compatible(from, to) {
		return decimal.Zero, domain.ErrIncompatibleUnit
	}
	if from == to {
		return Round(qty), nil
	}
	return Round(qty.Mul(factors[from]).Div(factors[to])), nil
}

// Round rounds to the fixed precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// Add returns a+b rounded. All stock and monetary accumulation goes through
// here rather than bare decimal arithmetic.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Add(b))
}

// Sub returns a-b rounded.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Sub(b))
}

// Mul returns a*b rounded.
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Mul(b))
}
