package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unicel/contracts"
)

func TestNewRecalculatedCellsGetter(t *testing.T) {
	t.Run("known_and_unknown_ids", func(t *testing.T) {
		cells := map[string]*contracts.Cell{
			"A1": {CanonicalKey: "A1", Value: 10, Unit: "m"},
			"B1": {CanonicalKey: "B1", Value: 20},
		}

		getter := NewRecalculatedCellsGetter(cells)
		result := getter([]string{"A1", "MISSING", "B1"})

		assert.Len(t, result, 3)
		assert.Equal(t, 10.0, result[0].Value)
		assert.Nil(t, result[1])
		assert.Equal(t, 20.0, result[2].Value)
	})

	t.Run("sees_entries_added_after_construction", func(t *testing.T) {
		cells := map[string]*contracts.Cell{}
		getter := NewRecalculatedCellsGetter(cells)

		assert.Nil(t, getter([]string{"A1"})[0])

		cells["A1"] = &contracts.Cell{CanonicalKey: "A1", Value: 5}
		assert.Equal(t, 5.0, getter([]string{"A1"})[0].Value)
	})
}
