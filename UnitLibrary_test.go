package main

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"unicel/contracts"
)

func TestUnitLibrary_Resolve(t *testing.T) {
	library := NewUnitLibrary(NewConversionGraph())

	t.Run("known_symbol", func(t *testing.T) {
		unit, err := library.Resolve("mi")
		assert.NoError(t, err)
		assert.Equal(t, "mi", unit.Symbol)
		assert.Equal(t, 1609.344, unit.Scale)
		assert.Equal(t, contracts.DimensionVector{contracts.Length: 1}, unit.Vector)
	})

	t.Run("case_insensitive", func(t *testing.T) {
		unit, err := library.Resolve("KM")
		assert.NoError(t, err)
		assert.Equal(t, "km", unit.Symbol)

		unit, err = library.Resolve(" Hr ")
		assert.NoError(t, err)
		assert.Equal(t, "hr", unit.Symbol)
	})

	t.Run("unknown_symbol", func(t *testing.T) {
		_, err := library.Resolve("furlong")
		assert.ErrorIs(t, err, contracts.UnknownUnitError)
	})

	t.Run("affine_builtins", func(t *testing.T) {
		celsius, err := library.Resolve("c")
		assert.NoError(t, err)
		assert.True(t, celsius.IsAffine())
		assert.Equal(t, 273.15, celsius.Offset)

		fahrenheit, err := library.Resolve("f")
		assert.NoError(t, err)
		assert.True(t, fahrenheit.IsAffine())
		assert.InDelta(t, 5.0/9.0, fahrenheit.Scale, 1e-12)
	})
}

func TestUnitLibrary_BaseUnit(t *testing.T) {
	library := NewUnitLibrary(NewConversionGraph())

	base, ok := library.BaseUnit(contracts.Length)
	assert.True(t, ok)
	assert.Equal(t, "m", base.Symbol)

	base, ok = library.BaseUnit(contracts.Temperature)
	assert.True(t, ok)
	assert.Equal(t, "k", base.Symbol)

	_, ok = library.BaseUnit(contracts.Dimension("sound"))
	assert.False(t, ok)
}

func TestUnitLibrary_ParseCompound(t *testing.T) {
	library := NewUnitLibrary(NewConversionGraph())

	t.Run("empty_is_dimensionless", func(t *testing.T) {
		compound, err := library.ParseCompound("")
		assert.NoError(t, err)
		assert.True(t, compound.IsDimensionless())

		compound, err = library.ParseCompound("   ")
		assert.NoError(t, err)
		assert.True(t, compound.IsDimensionless())
	})

	t.Run("single_unit", func(t *testing.T) {
		compound, err := library.ParseCompound("m")
		assert.NoError(t, err)
		assert.Equal(t, "m", compound.String())
	})

	t.Run("ratio", func(t *testing.T) {
		compound, err := library.ParseCompound("mi/hr")
		assert.NoError(t, err)
		assert.Equal(t, "mi/hr", compound.String())
		assert.Equal(t, contracts.DimensionVector{contracts.Length: 1, contracts.Time: -1}, compound.Vector())
	})

	t.Run("product_with_power", func(t *testing.T) {
		compound, err := library.ParseCompound("kg*m/s^2")
		assert.NoError(t, err)
		assert.Equal(t, "kg*m/s^2", compound.String())
	})

	t.Run("reciprocal", func(t *testing.T) {
		compound, err := library.ParseCompound("1/s")
		assert.NoError(t, err)
		assert.Equal(t, "1/s", compound.String())
		assert.Equal(t, contracts.DimensionVector{contracts.Time: -1}, compound.Vector())
	})

	t.Run("negative_exponent", func(t *testing.T) {
		compound, err := library.ParseCompound("s^-1")
		assert.NoError(t, err)
		assert.Equal(t, "1/s", compound.String())
	})

	t.Run("non_canonical_input_canonicalizes", func(t *testing.T) {
		left, err := library.ParseCompound("m*kg/s/s")
		assert.NoError(t, err)
		right, err := library.ParseCompound("kg*m/s^2")
		assert.NoError(t, err)
		assert.True(t, left.Equal(right))
	})

	t.Run("unknown_unit", func(t *testing.T) {
		_, err := library.ParseCompound("furlong/hr")
		assert.ErrorIs(t, err, contracts.UnknownUnitError)
	})

	t.Run("invalid_expression", func(t *testing.T) {
		_, err := library.ParseCompound("m+s")
		assert.ErrorIs(t, err, contracts.InvalidUnitExpressionError)

		_, err = library.ParseCompound("m/")
		assert.ErrorIs(t, err, contracts.InvalidUnitExpressionError)

		_, err = library.ParseCompound("2*m")
		assert.ErrorIs(t, err, contracts.InvalidUnitExpressionError)
	})

	t.Run("affine_in_compound_rejected", func(t *testing.T) {
		_, err := library.ParseCompound("c/s")
		assert.ErrorIs(t, err, contracts.AffineCompositionError)
	})

	t.Run("string_round_trips", func(t *testing.T) {
		for _, text := range []string{
			"usd/(hr*kg)",
			"kg*m/s^2",
			"m^3/(s*kg^2)",
			"1/(s*kg)",
			"mi/hr",
		} {
			compound, err := library.ParseCompound(text)
			assert.NoError(t, err)

			reparsed, err := library.ParseCompound(compound.String())
			assert.NoError(t, err, compound.String())
			assert.Equal(t, compound.Vector(), reparsed.Vector(), compound.String())
		}
	})
}

func TestUnitLibrary_RegisterCustomUnit(t *testing.T) {
	t.Run("against_reference", func(t *testing.T) {
		graph := NewConversionGraph()
		library := NewUnitLibrary(graph)

		err := library.RegisterCustomUnit(contracts.CustomUnit{
			Symbol:    "furlong",
			Reference: "m",
			Scale:     201.168,
		})
		assert.NoError(t, err)

		unit, err := library.Resolve("furlong")
		assert.NoError(t, err)
		assert.Equal(t, contracts.DimensionVector{contracts.Length: 1}, unit.Vector)
		assert.InDelta(t, 201.168, unit.Scale, 1e-9)

		// the graph learns the edge too: furlongs convert against miles
		path, err := graph.FindPath("furlong", "mi")
		assert.NoError(t, err)
		factor, ok := path.Factor()
		assert.True(t, ok)
		assert.InDelta(t, 0.125, factor, 1e-9)
	})

	t.Run("reference_composes_scales", func(t *testing.T) {
		library := NewUnitLibrary(NewConversionGraph())

		// a unit defined against a non-base reference lands on the base
		// through the composed scale
		err := library.RegisterCustomUnit(contracts.CustomUnit{
			Symbol:    "league",
			Reference: "mi",
			Scale:     3,
		})
		assert.NoError(t, err)

		unit, err := library.Resolve("league")
		assert.NoError(t, err)
		assert.InDelta(t, 3*1609.344, unit.Scale, 1e-9)
	})

	t.Run("new_dimension_first_unit_becomes_base", func(t *testing.T) {
		library := NewUnitLibrary(NewConversionGraph())

		err := library.RegisterCustomUnit(contracts.CustomUnit{
			Symbol:    "req",
			Dimension: contracts.Dimension("requests"),
		})
		assert.NoError(t, err)

		base, ok := library.BaseUnit(contracts.Dimension("requests"))
		assert.True(t, ok)
		assert.Equal(t, "req", base.Symbol)
		assert.Equal(t, 1.0, base.Scale)

		err = library.RegisterCustomUnit(contracts.CustomUnit{
			Symbol:    "kreq",
			Dimension: contracts.Dimension("requests"),
			Scale:     1000,
		})
		assert.NoError(t, err)

		unit, err := library.Resolve("kreq")
		assert.NoError(t, err)
		assert.Equal(t, 1000.0, unit.Scale)
	})

	t.Run("duplicate_symbol", func(t *testing.T) {
		library := NewUnitLibrary(NewConversionGraph())

		err := library.RegisterCustomUnit(contracts.CustomUnit{
			Symbol:    "m",
			Reference: "km",
			Scale:     0.001,
		})
		assert.ErrorIs(t, err, contracts.UnitAlreadyDefinedError)
	})

	t.Run("invalid_definitions", func(t *testing.T) {
		library := NewUnitLibrary(NewConversionGraph())

		err := library.RegisterCustomUnit(contracts.CustomUnit{Symbol: ""})
		assert.ErrorIs(t, err, contracts.InvalidUnitExpressionError)

		err = library.RegisterCustomUnit(contracts.CustomUnit{Symbol: "x"})
		assert.ErrorIs(t, err, contracts.InvalidUnitExpressionError)

		err = library.RegisterCustomUnit(contracts.CustomUnit{Symbol: "x", Reference: "m"})
		assert.ErrorIs(t, err, contracts.InvalidUnitExpressionError)

		err = library.RegisterCustomUnit(contracts.CustomUnit{Symbol: "x", Reference: "nope", Scale: 2})
		assert.ErrorIs(t, err, contracts.UnknownUnitError)
	})

	t.Run("new_dimension_base_rejects_scale_and_offset", func(t *testing.T) {
		library := NewUnitLibrary(NewConversionGraph())

		err := library.RegisterCustomUnit(contracts.CustomUnit{
			Symbol:    "req",
			Dimension: contracts.Dimension("requests"),
			Scale:     1000,
		})
		assert.ErrorIs(t, err, contracts.InvalidUnitExpressionError)

		err = library.RegisterCustomUnit(contracts.CustomUnit{
			Symbol:    "req",
			Dimension: contracts.Dimension("requests"),
			Offset:    10,
		})
		assert.ErrorIs(t, err, contracts.InvalidUnitExpressionError)

		err = library.RegisterCustomUnit(contracts.CustomUnit{
			Symbol:    "req",
			Dimension: contracts.Dimension("requests"),
			Scale:     1,
		})
		assert.NoError(t, err)
	})
}

func TestUnitLibrary_ConcurrentAccess(t *testing.T) {
	library := NewUnitLibrary(NewConversionGraph())

	var group sync.WaitGroup
	for i := 0; i < 10; i++ {
		symbol := fmt.Sprintf("custom%d", i)

		group.Add(2)
		go func() {
			defer group.Done()
			assert.NoError(t, library.RegisterCustomUnit(contracts.CustomUnit{
				Symbol:    symbol,
				Reference: "m",
				Scale:     2,
			}))
		}()
		go func() {
			defer group.Done()
			for j := 0; j < 100; j++ {
				_, err := library.Resolve("km")
				assert.NoError(t, err)
				_, _ = library.ParseCompound("mi/hr")
			}
		}()
	}
	group.Wait()

	for i := 0; i < 10; i++ {
		unit, err := library.Resolve(fmt.Sprintf("custom%d", i))
		assert.NoError(t, err)
		assert.Equal(t, 2.0, unit.Scale)
	}
}
