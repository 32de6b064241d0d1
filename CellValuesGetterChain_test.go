package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unicel/contracts"
	"unicel/mocks"
)

func TestNewCellValuesGetterChain(t *testing.T) {
	t.Run("only_second", func(t *testing.T) {
		cellIds := []string{"A1", "A2", "A3"}
		second := mocks.NewCellValuesGetter(t)
		second.On("Execute", cellIds).Return([]*contracts.Cell{nil, nil, nil})

		NewCellValuesGetterChain(nil, second.Execute)(cellIds)
	})

	t.Run("only_first", func(t *testing.T) {
		cellIds := []string{"A1", "A2", "A3"}
		first := mocks.NewCellValuesGetter(t)
		first.On("Execute", cellIds).Return([]*contracts.Cell{nil, nil, nil})

		NewCellValuesGetterChain(first.Execute, nil)(cellIds)
	})

	t.Run("first_shadows_second", func(t *testing.T) {
		recalculated := map[string]*contracts.Cell{
			"A1": {CanonicalKey: "A1", Value: 1},
			"A3": {CanonicalKey: "A3", Value: 3},
		}
		first := NewRecalculatedCellsGetter(recalculated)

		second := mocks.NewCellValuesGetter(t)
		second.On("Execute", []string{"A2", "A4"}).Return([]*contracts.Cell{
			{CanonicalKey: "A2", Value: 2},
			nil,
		})

		chain := NewCellValuesGetterChain(first, second.Execute)
		result := chain([]string{"A1", "A2", "A3", "A4"})

		assert.Len(t, result, 4)
		assert.Equal(t, 1.0, result[0].Value)
		assert.Equal(t, 2.0, result[1].Value)
		assert.Equal(t, 3.0, result[2].Value)
		assert.Nil(t, result[3])
	})

	t.Run("second_not_called_when_first_resolves_all", func(t *testing.T) {
		recalculated := map[string]*contracts.Cell{
			"A1": {CanonicalKey: "A1", Value: 1},
		}
		second := mocks.NewCellValuesGetter(t)

		chain := NewCellValuesGetterChain(NewRecalculatedCellsGetter(recalculated), second.Execute)
		result := chain([]string{"A1"})

		assert.Equal(t, 1.0, result[0].Value)
		second.AssertNotCalled(t, "Execute")
	})
}
