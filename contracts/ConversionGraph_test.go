package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversionPath_Apply(t *testing.T) {
	t.Run("linear_chain", func(t *testing.T) {
		path := ConversionPath{
			{From: "km", To: "m", Scale: 1000},
			{From: "m", To: "cm", Scale: 100},
		}
		assert.Equal(t, 200000.0, path.Apply(2))
	})

	t.Run("affine_step_composes_in_sequence", func(t *testing.T) {
		path := ConversionPath{
			{From: "c", To: "k", Scale: 1, Offset: 273.15},
		}
		assert.InDelta(t, 273.15, path.Apply(0), 1e-9)
		assert.InDelta(t, 373.15, path.Apply(100), 1e-9)
	})

	t.Run("empty_path_is_identity", func(t *testing.T) {
		assert.Equal(t, 42.0, ConversionPath{}.Apply(42))
	})
}

func TestConversionPath_Factor(t *testing.T) {
	t.Run("product_of_scales", func(t *testing.T) {
		path := ConversionPath{
			{From: "mi", To: "ft", Scale: 5280},
			{From: "ft", To: "m", Scale: 0.3048},
		}
		factor, ok := path.Factor()
		assert.True(t, ok)
		assert.InDelta(t, 1609.344, factor, 1e-9)
	})

	t.Run("offset_voids_the_factor", func(t *testing.T) {
		path := ConversionPath{
			{From: "f", To: "k", Scale: 5.0 / 9.0, Offset: 255.37222222222223},
		}
		_, ok := path.Factor()
		assert.False(t, ok)
	})
}
