package contracts

import "errors"

var DivisionByZeroError = errors.New("division by zero")

var UnknownFunctionError = errors.New("unknown function")

var InvalidExponentError = errors.New("exponent must be a dimensionless integer")

var ReferencedCellError = errors.New("referenced cell has an evaluation error")

const WarningIncompatibleUnits = "IncompatibleUnits"

// Warning is a non-fatal evaluation diagnostic attached to a result.
type Warning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// EvalResult carries the outcome of one formula evaluation. Unit is the
// canonical compound text, empty for dimensionless results.
type EvalResult struct {
	Value    float64   `json:"value"`
	Unit     string    `json:"unit,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// EvalOptions carries per-evaluation collaborator input. RowUnit tags
// count-style aggregate results; it is supplied by the table
// collaborator, never derived here.
type EvalOptions struct {
	RowUnit string
}

// CellValuesGetter fetches current cells for a batch of canonical ids.
// Missing cells are returned as nil entries.
type CellValuesGetter func(cellIds []string) []*Cell

type ExpressionExecutor interface {
	IsFormula(expression string) bool

	Evaluate(expression string, getter CellValuesGetter, opts EvalOptions) (*EvalResult, error)

	// ExtractDependingOnList
	/**
	 * Example, for formula `cell1 = cell2 + cell3`:
	 * `cell1` depends on `cell2` and `cell3`
	 * ExtractDependingOnList("=CELL2 + CELL3") returns ["CELL2", "CELL3"]
	 *
	 * A parse failure is returned as an error so the edit can be
	 * rejected before any state change.
	 */
	ExtractDependingOnList(expression string) (dependingOnCellIds []string, err error)
}
