package contracts

import (
	"errors"

	"go.etcd.io/bbolt"
)

var CircularReferenceError = errors.New("circular reference detected")

type CellDependencyTree interface {
	// SetDependsOn
	/**
	 * Example, for formula `cell1 = cell2 + cell3`:
	 * `cellId` depends on `dependingList`
	 * cell1 depends on cell2 and cell3
	 *  SetDependsOn(tx, sheetId, "cell1", []string{"cell2", "cell3"})
	 * `cell5 = cell1 * cell3`
	 * SetDependsOn(tx, sheetId, "cell5", []string{"cell1", "cell3"})
	 */
	SetDependsOn(tx *bbolt.Tx, sheetId []byte, dependantCellId string, dependingOnCellIds []string) error

	// GetDependants returns the transitive closure of cells that
	// directly or indirectly reference dependingOnCellId.
	/**
	 * Internally, it is stored as B+tree. It uses prefixed keys to store
	 * data in B-tree. So it is possible to get all direct dependants of
	 * cellId in O(log(n)) time.
	 */
	GetDependants(tx *bbolt.Tx, sheetId []byte, dependingOnCellId string) []string

	// WouldCycle reports whether committing dependingOnCellIds for
	// cellId would make cellId reachable from itself.
	WouldCycle(tx *bbolt.Tx, sheetId []byte, cellId string, dependingOnCellIds []string) bool

	// TopologicalOrder returns the dependants closure of cellId in an
	// order where every cell appears after all of its dependencies
	// within the closure. The order is deterministic for an unchanged
	// graph.
	TopologicalOrder(tx *bbolt.Tx, sheetId []byte, cellId string) []string

	// RemoveCell prunes every edge owned by cellId.
	RemoveCell(tx *bbolt.Tx, sheetId []byte, cellId string) error
}
