package contracts

import (
	"errors"
	"fmt"
	"strings"
)

type CellState string

const (
	// CellStateLiteral - no formula, value written directly.
	CellStateLiteral CellState = "literal"
	// CellStateFormula - formula committed, last evaluation succeeded.
	CellStateFormula CellState = "formula"
	// CellStateFormulaError - formula committed, last evaluation hit a
	// fatal condition.
	CellStateFormulaError CellState = "error"
)

// Cell owns a numeric value and the immutable stored unit it is expressed
// in. The stored unit changes only through the explicit convert action;
// DisplayUnit is purely presentational and never affects stored state or
// downstream formulas.
type Cell struct {
	CanonicalKey string    `json:"cell_id,omitempty"`
	Value        float64   `json:"value"`
	Unit         string    `json:"unit,omitempty"`
	Formula      string    `json:"formula,omitempty"`
	DisplayUnit  string    `json:"display_unit,omitempty"`
	RowUnit      string    `json:"row_unit,omitempty"`
	State        CellState `json:"state"`
	Error        string    `json:"error,omitempty"`
	Warnings     []Warning `json:"warnings,omitempty"`
}

type CellList map[string]*Cell

// CellIdBlacklist deny charset which associate with operators
const CellIdBlacklist = "+-*/%^()<>!=&|\"' \t\n\r\v\f"

var CellNotFoundError = errors.New("cell not found")

var CellIdBlacklistError = fmt.Errorf("cell id contains invalid characters (%s)", strings.Join(strings.Split(strings.TrimSpace(CellIdBlacklist), ""), ", "))
