package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"unicel/contracts"
)

// UnitLibrary is the catalog of named primitive units. It is explicitly
// constructed and passed by reference so independent sessions with
// different custom units can coexist. Registration and lookups may run
// from concurrent requests, guarded by the mutex.
type UnitLibrary struct {
	mutex sync.RWMutex
	units map[string]*contracts.Unit
	bases map[contracts.Dimension]*contracts.Unit
	graph contracts.ConversionGraph
}

type builtinUnit struct {
	symbol    string
	dimension contracts.Dimension
	scale     float64
	offset    float64
}

// builtinUnits relate every unit to the canonical base of its dimension
// (scale 1, listed first). Fahrenheit to kelvin is affine:
// k = 5/9*f + 255.3722...
var builtinUnits = []builtinUnit{
	{"m", contracts.Length, 1, 0},
	{"km", contracts.Length, 1000, 0},
	{"cm", contracts.Length, 0.01, 0},
	{"mm", contracts.Length, 0.001, 0},
	{"mi", contracts.Length, 1609.344, 0},
	{"yd", contracts.Length, 0.9144, 0},
	{"ft", contracts.Length, 0.3048, 0},
	{"in", contracts.Length, 0.0254, 0},

	{"kg", contracts.Mass, 1, 0},
	{"g", contracts.Mass, 0.001, 0},
	{"t", contracts.Mass, 1000, 0},
	{"lb", contracts.Mass, 0.45359237, 0},
	{"oz", contracts.Mass, 0.028349523125, 0},

	{"s", contracts.Time, 1, 0},
	{"ms", contracts.Time, 0.001, 0},
	{"min", contracts.Time, 60, 0},
	{"hr", contracts.Time, 3600, 0},
	{"day", contracts.Time, 86400, 0},
	{"wk", contracts.Time, 604800, 0},

	{"k", contracts.Temperature, 1, 0},
	{"c", contracts.Temperature, 1, 273.15},
	{"f", contracts.Temperature, 5.0 / 9.0, 255.37222222222223},

	{"usd", contracts.Currency, 1, 0},
	{"eur", contracts.Currency, 1.08, 0},
	{"gbp", contracts.Currency, 1.27, 0},
	{"uah", contracts.Currency, 0.027, 0},

	{"b", contracts.Storage, 1, 0},
	{"kb", contracts.Storage, 1e3, 0},
	{"mb", contracts.Storage, 1e6, 0},
	{"gb", contracts.Storage, 1e9, 0},
	{"tb", contracts.Storage, 1e12, 0},
	{"kib", contracts.Storage, 1024, 0},
	{"mib", contracts.Storage, 1 << 20, 0},
	{"gib", contracts.Storage, 1 << 30, 0},

	{"j", contracts.Energy, 1, 0},
	{"kj", contracts.Energy, 1000, 0},
	{"cal", contracts.Energy, 4.184, 0},
	{"kcal", contracts.Energy, 4184, 0},
	{"wh", contracts.Energy, 3600, 0},
	{"kwh", contracts.Energy, 3.6e6, 0},

	{"w", contracts.Power, 1, 0},
	{"kw", contracts.Power, 1000, 0},
	{"mw", contracts.Power, 1e6, 0},
	{"hp", contracts.Power, 745.699872, 0},
}

// NewUnitLibrary seeds the built-in table into a fresh library and wires
// every non-base unit to its dimension base through the conversion graph.
func NewUnitLibrary(graph contracts.ConversionGraph) *UnitLibrary {
	library := &UnitLibrary{
		units: make(map[string]*contracts.Unit, len(builtinUnits)),
		bases: make(map[contracts.Dimension]*contracts.Unit),
		graph: graph,
	}

	for _, seed := range builtinUnits {
		unit := &contracts.Unit{
			Symbol: seed.symbol,
			Vector: contracts.DimensionVector{seed.dimension: 1},
			Scale:  seed.scale,
			Offset: seed.offset,
		}
		library.units[seed.symbol] = unit

		base, hasBase := library.bases[seed.dimension]
		if !hasBase {
			library.bases[seed.dimension] = unit
			continue
		}
		library.graph.AddEdge(seed.symbol, base.Symbol, seed.scale, seed.offset)
	}

	return library
}

func (l *UnitLibrary) Resolve(symbol string) (*contracts.Unit, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.resolve(symbol)
}

func (l *UnitLibrary) resolve(symbol string) (*contracts.Unit, error) {
	unit, ok := l.units[strings.ToLower(strings.TrimSpace(symbol))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, contracts.UnknownUnitError)
	}
	return unit, nil
}

func (l *UnitLibrary) BaseUnit(dimension contracts.Dimension) (*contracts.Unit, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	base, ok := l.bases[dimension]
	return base, ok
}

func (l *UnitLibrary) RegisterCustomUnit(definition contracts.CustomUnit) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	symbol := strings.ToLower(strings.TrimSpace(definition.Symbol))
	if symbol == "" {
		return fmt.Errorf("empty symbol: %w", contracts.InvalidUnitExpressionError)
	}
	if _, exists := l.units[symbol]; exists {
		return fmt.Errorf("%s: %w", symbol, contracts.UnitAlreadyDefinedError)
	}

	if definition.Reference != "" {
		if definition.Scale == 0 {
			return fmt.Errorf("%s: zero scale: %w", symbol, contracts.InvalidUnitExpressionError)
		}
		reference, err := l.resolve(definition.Reference)
		if err != nil {
			return err
		}
		// compose through the reference: base = ref.Scale*(s*x + o) + ref.Offset
		unit := &contracts.Unit{
			Symbol: symbol,
			Vector: reference.Vector.Add(contracts.DimensionVector{}),
			Scale:  reference.Scale * definition.Scale,
			Offset: reference.Scale*definition.Offset + reference.Offset,
		}
		l.units[symbol] = unit
		l.graph.AddEdge(symbol, reference.Symbol, definition.Scale, definition.Offset)
		return nil
	}

	if definition.Dimension == "" {
		return fmt.Errorf("%s: dimension or reference is required: %w", symbol, contracts.InvalidUnitExpressionError)
	}

	base, hasBase := l.bases[definition.Dimension]
	if !hasBase {
		// the first unit of a new dimension becomes its canonical base,
		// so there is nothing its scale or offset could relate to
		if (definition.Scale != 0 && definition.Scale != 1) || definition.Offset != 0 {
			return fmt.Errorf(
				"%s: first unit of dimension %s is its base and cannot have a scale or offset: %w",
				symbol, definition.Dimension, contracts.InvalidUnitExpressionError,
			)
		}
		unit := &contracts.Unit{
			Symbol: symbol,
			Vector: contracts.DimensionVector{definition.Dimension: 1},
			Scale:  1,
		}
		l.units[symbol] = unit
		l.bases[definition.Dimension] = unit
		return nil
	}

	if definition.Scale == 0 {
		return fmt.Errorf("%s: zero scale: %w", symbol, contracts.InvalidUnitExpressionError)
	}
	unit := &contracts.Unit{
		Symbol: symbol,
		Vector: contracts.DimensionVector{definition.Dimension: 1},
		Scale:  definition.Scale,
		Offset: definition.Offset,
	}
	l.units[symbol] = unit
	l.graph.AddEdge(symbol, base.Symbol, definition.Scale, definition.Offset)
	return nil
}

// ParseCompound parses unit expressions like "mi/hr" or "kg*m/s^2" with
// the same parser that handles formulas. Empty text is dimensionless.
func (l *UnitLibrary) ParseCompound(text string) (contracts.Compound, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	tree, err := parser.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", text, contracts.InvalidUnitExpressionError)
	}

	return l.compoundFromNode(tree.Node, text)
}

func (l *UnitLibrary) compoundFromNode(node ast.Node, text string) (contracts.Compound, error) {
	switch typed := node.(type) {
	case *ast.IdentifierNode:
		unit, err := l.Resolve(typed.Value)
		if err != nil {
			return nil, err
		}
		return contracts.NewCompound(unit), nil

	case *ast.IntegerNode:
		// allows the "1/s" spelling
		if typed.Value == 1 {
			return nil, nil
		}

	case *ast.BinaryNode:
		switch typed.Operator {
		case "*", "/":
			left, err := l.compoundFromNode(typed.Left, text)
			if err != nil {
				return nil, err
			}
			right, err := l.compoundFromNode(typed.Right, text)
			if err != nil {
				return nil, err
			}
			if typed.Operator == "*" {
				return left.Mul(right)
			}
			return left.Div(right)

		case "^", "**":
			left, err := l.compoundFromNode(typed.Left, text)
			if err != nil {
				return nil, err
			}
			exponent, ok := integerExponent(typed.Right)
			if !ok {
				return nil, fmt.Errorf("%s: %w", text, contracts.InvalidUnitExpressionError)
			}
			return left.Pow(exponent)
		}
	}

	return nil, fmt.Errorf("%s: %w", text, contracts.InvalidUnitExpressionError)
}

func integerExponent(node ast.Node) (int, bool) {
	switch typed := node.(type) {
	case *ast.IntegerNode:
		return typed.Value, true
	case *ast.UnaryNode:
		if inner, ok := typed.Node.(*ast.IntegerNode); ok && typed.Operator == "-" {
			return -inner.Value, true
		}
	}
	return 0, false
}
