package contracts

import "errors"

var SheetNotFoundError = errors.New("sheet not found")

var NotAFormulaError = errors.New("formula must start with =")

var ConvertFormulaCellError = errors.New("stored unit of a formula cell is derived and cannot be converted")

var EmptySetCellError = errors.New("either value or formula is required")

// SetCellRequest writes either a literal (Value, optionally Unit) or a
// Formula. RowUnit is carried through to count-style aggregates.
type SetCellRequest struct {
	Value   *float64 `json:"value,omitempty"`
	Unit    string   `json:"unit,omitempty"`
	Formula string   `json:"formula,omitempty"`
	RowUnit string   `json:"row_unit,omitempty"`
}

type SheetRepository interface {
	// SetCell runs one atomic edit transaction: dependency extraction,
	// cycle check, evaluation, commit and recalculation of the
	// dependants closure in topological order. A detected cycle or a
	// parse failure rejects the edit with no state change.
	SetCell(sheetId string, cellId string, request SetCellRequest) (*Cell, error)

	GetCell(sheetId string, cellId string) (*Cell, error)

	// GetCellConverted is a pure read: the stored value rendered in
	// targetUnit (or the cell's display unit when targetUnit is empty)
	// without mutating stored state.
	GetCellConverted(sheetId string, cellId string, targetUnit string) (*Cell, error)

	// SetDisplayUnit attaches a presentational unit override.
	SetDisplayUnit(sheetId string, cellId string, displayUnit string) (*Cell, error)

	// ConvertCell is the explicit, user-visible action that rewrites a
	// literal cell's value into targetUnit and makes it the new stored
	// unit.
	ConvertCell(sheetId string, cellId string, targetUnit string) (*Cell, error)

	DeleteCell(sheetId string, cellId string) error

	GetCellList(sheetId string) (*CellList, error)
}
