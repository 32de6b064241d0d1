package contracts

import "errors"

var InvalidUnitExpressionError = errors.New("invalid unit expression")

// CustomUnit is a per-session unit definition merged into the library
// after the built-in table is seeded.
//
// Either Reference names an existing unit the new one relates to
// (base = Scale*x + Offset against that reference), or Dimension names
// the base dimension directly - possibly a brand-new custom tag, in
// which case the first registered unit becomes the canonical base and
// may not carry a scale other than 1 or a non-zero offset.
type CustomUnit struct {
	Symbol    string    `json:"symbol" binding:"required"`
	Dimension Dimension `json:"dimension,omitempty"`
	Reference string    `json:"reference,omitempty"`
	Scale     float64   `json:"scale"`
	Offset    float64   `json:"offset,omitempty"`
}

type UnitLibrary interface {
	// Resolve looks a primitive unit up by symbol, case-insensitively.
	Resolve(symbol string) (*Unit, error)

	// ParseCompound parses a unit expression such as "mi/hr" or
	// "kg*m/s^2" into a canonical compound. Empty text is dimensionless.
	ParseCompound(text string) (Compound, error)

	// BaseUnit returns the canonical base unit of a dimension.
	BaseUnit(dimension Dimension) (*Unit, bool)

	// RegisterCustomUnit merges a custom unit into the library and the
	// conversion graph, invalidating any affected cached paths.
	RegisterCustomUnit(definition CustomUnit) error
}
