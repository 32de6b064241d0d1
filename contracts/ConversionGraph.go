package contracts

import "errors"

var NoConversionPathError = errors.New("no conversion path")

// ConversionEdge is a direct conversion between two primitive units of
// the same dimension: to = Scale*from + Offset.
type ConversionEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Scale  float64 `json:"scale"`
	Offset float64 `json:"offset,omitempty"`
}

// ConversionPath is a composed sequence of edges. Offsets compose in
// sequence; the chain never collapses to a naive product when an affine
// edge is present.
type ConversionPath []*ConversionEdge

// Apply runs a value through every edge transform in order.
func (p ConversionPath) Apply(value float64) float64 {
	for _, edge := range p {
		value = edge.Scale*value + edge.Offset
	}
	return value
}

// Factor returns the combined linear factor of the path. The second
// return is false when any edge carries an offset, in which case the
// path has no meaningful scalar factor.
func (p ConversionPath) Factor() (float64, bool) {
	factor := 1.0
	for _, edge := range p {
		if edge.Offset != 0 {
			return 0, false
		}
		factor *= edge.Scale
	}
	return factor, true
}

type ConversionGraph interface {
	// AddEdge inserts a direct conversion and its composed inverse.
	AddEdge(from string, to string, scale float64, offset float64)

	// UpsertEdge updates the factor of an existing edge pair (a rate
	// refresh or manual override), invalidating exactly the cached
	// paths that traverse it; an unknown pair is added as a new edge.
	UpsertEdge(from string, to string, scale float64, offset float64)

	// FindPath returns the shortest-hop path between two primitive
	// units, ties broken by edge insertion order.
	FindPath(from string, to string) (ConversionPath, error)

	// Convert moves a value between two compounds sharing the same
	// dimension vector.
	Convert(value float64, from Compound, to Compound) (float64, error)
}
