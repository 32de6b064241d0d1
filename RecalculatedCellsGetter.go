package main

import "unicel/contracts"

// NewRecalculatedCellsGetter reads from the in-progress results of one
// recalculation pass, keyed by canonical cell id.
func NewRecalculatedCellsGetter(cells map[string]*contracts.Cell) contracts.CellValuesGetter {
	return func(cellIds []string) []*contracts.Cell {
		values := make([]*contracts.Cell, len(cellIds))

		for index, cellId := range cellIds {
			if cell, ok := cells[cellId]; ok {
				values[index] = cell
			}
		}

		return values
	}
}
