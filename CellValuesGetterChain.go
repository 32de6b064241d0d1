package main

import "unicel/contracts"

// NewCellValuesGetterChain resolves cells from the first getter and
// falls back to the second for the ids the first did not know. Used
// during recalculation so freshly updated results shadow stored state.
func NewCellValuesGetterChain(first contracts.CellValuesGetter, second contracts.CellValuesGetter) contracts.CellValuesGetter {
	if second == nil {
		return first
	}

	if first == nil {
		return second
	}

	return func(cellIds []string) []*contracts.Cell {
		result := first(cellIds)

		secondCellIds := make([]string, 0, len(cellIds))
		for index, cell := range result {
			if cell == nil {
				secondCellIds = append(secondCellIds, cellIds[index])
			}
		}

		if len(secondCellIds) != 0 {
			secondResult := second(secondCellIds)

			searchInSecondsCellIdsIndex := 0
			for index, cell := range result {
				if cell == nil {
					result[index] = secondResult[searchInSecondsCellIdsIndex]
					searchInSecondsCellIdsIndex++
				}
			}
		}

		return result
	}
}
