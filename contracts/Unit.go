package contracts

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

var UnknownUnitError = errors.New("unknown unit")

var UnitAlreadyDefinedError = errors.New("unit already defined")

var AffineCompositionError = errors.New("affine unit cannot be multiplied, divided or exponentiated")

var IncompatibleUnitsError = errors.New("incompatible units")

// Unit is a primitive named unit. Scale and Offset relate a value in this
// unit to the canonical base unit of its dimension: base = Scale*x + Offset.
type Unit struct {
	Symbol string
	Vector DimensionVector
	Scale  float64
	Offset float64
}

// IsAffine reports whether the unit relates to its base through an affine
// transform rather than a pure scale (temperature scales).
func (u *Unit) IsAffine() bool {
	return u.Offset != 0
}

type UnitFactor struct {
	Unit     *Unit
	Exponent int
}

// Compound is a canonicalized collection of primitive unit factors.
// A nil or empty Compound is dimensionless.
type Compound []UnitFactor

// NewCompound wraps a single primitive unit. A nil unit yields the
// dimensionless compound.
func NewCompound(u *Unit) Compound {
	if u == nil {
		return nil
	}
	return Compound{{Unit: u, Exponent: 1}}
}

// Mul combines two compounds algebraically. Any affine component makes
// the product physically ambiguous and is rejected.
func (c Compound) Mul(other Compound) (Compound, error) {
	if c.HasAffine() || other.HasAffine() {
		return nil, AffineCompositionError
	}
	merged := make(Compound, 0, len(c)+len(other))
	merged = append(merged, c...)
	merged = append(merged, other...)
	return merged.canonicalize(), nil
}

func (c Compound) Div(other Compound) (Compound, error) {
	if c.HasAffine() || other.HasAffine() {
		return nil, AffineCompositionError
	}
	merged := make(Compound, 0, len(c)+len(other))
	merged = append(merged, c...)
	for _, factor := range other {
		merged = append(merged, UnitFactor{Unit: factor.Unit, Exponent: -factor.Exponent})
	}
	return merged.canonicalize(), nil
}

func (c Compound) Pow(n int) (Compound, error) {
	if n == 1 {
		return c.canonicalize(), nil
	}
	if c.HasAffine() {
		return nil, AffineCompositionError
	}
	if n == 0 {
		return nil, nil
	}
	scaled := make(Compound, 0, len(c))
	for _, factor := range c {
		scaled = append(scaled, UnitFactor{Unit: factor.Unit, Exponent: factor.Exponent * n})
	}
	return scaled.canonicalize(), nil
}

// Vector sums the dimension vectors of every factor.
func (c Compound) Vector() DimensionVector {
	result := DimensionVector{}
	for _, factor := range c {
		result = result.Add(factor.Unit.Vector.Scale(factor.Exponent))
	}
	return result
}

// IsDimensionless reports whether the overall dimension vector is zero,
// independent of magnitude.
func (c Compound) IsDimensionless() bool {
	return c.Vector().IsZero()
}

func (c Compound) HasAffine() bool {
	for _, factor := range c {
		if factor.Unit.IsAffine() {
			return true
		}
	}
	return false
}

// Single returns the only factor when the compound consists of exactly
// one primitive unit.
func (c Compound) Single() (UnitFactor, bool) {
	if len(c) == 1 {
		return c[0], true
	}
	return UnitFactor{}, false
}

func (c Compound) Equal(other Compound) bool {
	left := c.exponents()
	right := other.exponents()
	if len(left) != len(right) {
		return false
	}
	for symbol, exponent := range left {
		if right[symbol] != exponent {
			return false
		}
	}
	return true
}

// String renders the canonical text form: positive factors joined by `*`,
// each negative factor behind its own `/` (e.g. "mi/hr", "kg*m/s^2",
// "usd/hr/kg"). A left-associative parse of the result reproduces the
// compound. The dimensionless compound renders as the empty string.
func (c Compound) String() string {
	canonical := c.canonicalize()
	if len(canonical) == 0 {
		return ""
	}

	numerator := make([]string, 0, len(canonical))
	denominator := make([]string, 0, len(canonical))
	for _, factor := range canonical {
		if factor.Exponent > 0 {
			numerator = append(numerator, formatFactor(factor.Unit.Symbol, factor.Exponent))
		} else {
			denominator = append(denominator, formatFactor(factor.Unit.Symbol, -factor.Exponent))
		}
	}

	result := strings.Join(numerator, "*")
	if result == "" {
		result = "1"
	}
	for _, part := range denominator {
		result += "/" + part
	}
	return result
}

// canonicalize merges duplicate primitives, drops zero exponents and
// orders factors deterministically (positive then negative, by symbol).
func (c Compound) canonicalize() Compound {
	merged := c.exponents()
	if len(merged) == 0 {
		return nil
	}

	units := make(map[string]*Unit, len(c))
	for _, factor := range c {
		units[factor.Unit.Symbol] = factor.Unit
	}

	symbols := make([]string, 0, len(merged))
	for symbol := range merged {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool {
		left, right := merged[symbols[i]] > 0, merged[symbols[j]] > 0
		if left != right {
			return left
		}
		return symbols[i] < symbols[j]
	})

	result := make(Compound, 0, len(symbols))
	for _, symbol := range symbols {
		result = append(result, UnitFactor{Unit: units[symbol], Exponent: merged[symbol]})
	}
	return result
}

func (c Compound) exponents() map[string]int {
	merged := make(map[string]int, len(c))
	for _, factor := range c {
		merged[factor.Unit.Symbol] += factor.Exponent
		if merged[factor.Unit.Symbol] == 0 {
			delete(merged, factor.Unit.Symbol)
		}
	}
	return merged
}

func formatFactor(symbol string, exponent int) string {
	if exponent == 1 {
		return symbol
	}
	return symbol + "^" + strconv.Itoa(exponent)
}
