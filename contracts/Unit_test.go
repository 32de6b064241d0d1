package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	testMeter  = &Unit{Symbol: "m", Vector: DimensionVector{Length: 1}, Scale: 1}
	testMile   = &Unit{Symbol: "mi", Vector: DimensionVector{Length: 1}, Scale: 1609.344}
	testSecond = &Unit{Symbol: "s", Vector: DimensionVector{Time: 1}, Scale: 1}
	testHour   = &Unit{Symbol: "hr", Vector: DimensionVector{Time: 1}, Scale: 3600}
	testKg     = &Unit{Symbol: "kg", Vector: DimensionVector{Mass: 1}, Scale: 1}
	testUsd    = &Unit{Symbol: "usd", Vector: DimensionVector{Currency: 1}, Scale: 1}
	testCelsius = &Unit{
		Symbol: "c", Vector: DimensionVector{Temperature: 1}, Scale: 1, Offset: 273.15,
	}
)

func TestCompound_Algebra(t *testing.T) {
	t.Run("mul_merges_exponents", func(t *testing.T) {
		meters := NewCompound(testMeter)

		area, err := meters.Mul(meters)
		assert.NoError(t, err)
		assert.Equal(t, "m^2", area.String())
		assert.Equal(t, DimensionVector{Length: 2}, area.Vector())
	})

	t.Run("div_builds_ratio", func(t *testing.T) {
		speed, err := NewCompound(testMile).Div(NewCompound(testHour))
		assert.NoError(t, err)
		assert.Equal(t, "mi/hr", speed.String())
		assert.Equal(t, DimensionVector{Length: 1, Time: -1}, speed.Vector())
	})

	t.Run("div_by_self_is_dimensionless", func(t *testing.T) {
		meters := NewCompound(testMeter)

		ratio, err := meters.Div(meters)
		assert.NoError(t, err)
		assert.True(t, ratio.IsDimensionless())
		assert.Equal(t, "", ratio.String())
	})

	t.Run("pow", func(t *testing.T) {
		cubed, err := NewCompound(testMeter).Pow(3)
		assert.NoError(t, err)
		assert.Equal(t, "m^3", cubed.String())

		identity, err := NewCompound(testMeter).Pow(1)
		assert.NoError(t, err)
		assert.Equal(t, "m", identity.String())

		dimensionless, err := NewCompound(testMeter).Pow(0)
		assert.NoError(t, err)
		assert.True(t, dimensionless.IsDimensionless())
	})

	t.Run("affine_composition_rejected", func(t *testing.T) {
		celsius := NewCompound(testCelsius)
		seconds := NewCompound(testSecond)

		_, err := celsius.Mul(seconds)
		assert.ErrorIs(t, err, AffineCompositionError)

		_, err = celsius.Div(seconds)
		assert.ErrorIs(t, err, AffineCompositionError)

		_, err = seconds.Div(celsius)
		assert.ErrorIs(t, err, AffineCompositionError)

		_, err = celsius.Pow(2)
		assert.ErrorIs(t, err, AffineCompositionError)

		// exponent 1 is the identity and stays legal
		same, err := celsius.Pow(1)
		assert.NoError(t, err)
		assert.Equal(t, "c", same.String())
	})
}

func TestCompound_String(t *testing.T) {
	t.Run("canonical_ordering", func(t *testing.T) {
		force := Compound{
			{Unit: testSecond, Exponent: -2},
			{Unit: testMeter, Exponent: 1},
			{Unit: testKg, Exponent: 1},
		}
		assert.Equal(t, "kg*m/s^2", force.String())
	})

	t.Run("pure_denominator", func(t *testing.T) {
		frequency := Compound{{Unit: testSecond, Exponent: -1}}
		assert.Equal(t, "1/s", frequency.String())
	})

	t.Run("each_denominator_factor_behind_own_slash", func(t *testing.T) {
		rate := Compound{
			{Unit: testUsd, Exponent: 1},
			{Unit: testHour, Exponent: -1},
			{Unit: testKg, Exponent: -1},
		}
		assert.Equal(t, "usd/hr/kg", rate.String())

		perSquare := Compound{
			{Unit: testSecond, Exponent: -2},
			{Unit: testKg, Exponent: -1},
		}
		assert.Equal(t, "1/kg/s^2", perSquare.String())
	})

	t.Run("dimensionless_is_empty", func(t *testing.T) {
		assert.Equal(t, "", Compound(nil).String())
		assert.Equal(t, "", Compound{}.String())
	})
}

func TestCompound_Equal(t *testing.T) {
	miles := NewCompound(testMile)
	meters := NewCompound(testMeter)

	assert.True(t, miles.Equal(NewCompound(testMile)))
	assert.False(t, miles.Equal(meters))
	assert.True(t, Compound(nil).Equal(Compound{}))

	speed, _ := miles.Div(NewCompound(testHour))
	reordered := Compound{
		{Unit: testHour, Exponent: -1},
		{Unit: testMile, Exponent: 1},
	}
	assert.True(t, speed.Equal(reordered))
}

func TestCompound_Single(t *testing.T) {
	factor, ok := NewCompound(testMeter).Single()
	assert.True(t, ok)
	assert.Equal(t, "m", factor.Unit.Symbol)

	speed, _ := NewCompound(testMile).Div(NewCompound(testHour))
	_, ok = speed.Single()
	assert.False(t, ok)

	_, ok = Compound(nil).Single()
	assert.False(t, ok)
}
