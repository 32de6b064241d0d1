package main

import (
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"unicel/contracts"
)

// SheetRepository owns the cell store and runs every edit as one atomic
// bbolt transaction: dependency extraction, cycle check, evaluation,
// commit, then recalculation of the dependants closure in topological
// order. A rejected edit (parse failure, cycle) rolls the transaction
// back and leaves every cell untouched.
type SheetRepository struct {
	db                *bbolt.DB
	executor          contracts.ExpressionExecutor
	serializer        contracts.CellSerializer
	canonicalizer     contracts.Canonicalizer
	library           contracts.UnitLibrary
	graph             contracts.ConversionGraph
	dependencyTree    contracts.CellDependencyTree
	webhookDispatcher contracts.WebhookDispatcher
}

func NewSheetRepository(
	db *bbolt.DB, executor contracts.ExpressionExecutor, serializer contracts.CellSerializer,
	canonicalizer contracts.Canonicalizer, library contracts.UnitLibrary,
	graph contracts.ConversionGraph, webhookDispatcher contracts.WebhookDispatcher,
) *SheetRepository {
	return &SheetRepository{
		db:                db,
		executor:          executor,
		serializer:        serializer,
		canonicalizer:     canonicalizer,
		library:           library,
		graph:             graph,
		dependencyTree:    &CellDependencyTree{},
		webhookDispatcher: webhookDispatcher,
	}
}

func (s *SheetRepository) SetCell(sheetId string, cellId string, request contracts.SetCellRequest) (cell *contracts.Cell, err error) {
	sheetId = strings.ToLower(sheetId)
	sheetIdByte := []byte(sheetId)

	if strings.ContainsAny(cellId, contracts.CellIdBlacklist) {
		return nil, fmt.Errorf("cell_id `%s`: %w", cellId, contracts.CellIdBlacklistError)
	}
	if request.Formula == "" && request.Value == nil {
		return nil, fmt.Errorf("cell_id `%s`: %w", cellId, contracts.EmptySetCellError)
	}
	if request.Formula != "" && !s.executor.IsFormula(request.Formula) {
		return nil, fmt.Errorf("%s: %w", request.Formula, contracts.NotAFormulaError)
	}

	canonicalKey := s.canonicalizer.Canonicalize(cellId)
	var changedCells []*contracts.Cell

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sheetIdByte)
		if err != nil {
			return err
		}

		previous, _ := s.loadCell(bucket, canonicalKey)

		cell = &contracts.Cell{
			CanonicalKey: canonicalKey,
			RowUnit:      request.RowUnit,
		}
		if previous != nil {
			// the display override is presentational and survives edits
			cell.DisplayUnit = previous.DisplayUnit
		}

		dependingOnCellIds := []string{}
		if request.Formula == "" {
			// writing a literal always succeeds and clears any formula
			storedUnit, err := s.library.ParseCompound(request.Unit)
			if err != nil {
				return err
			}
			cell.Value = *request.Value
			cell.Unit = storedUnit.String()
			cell.State = contracts.CellStateLiteral
		} else {
			dependingOnCellIds, err = s.executor.ExtractDependingOnList(request.Formula)
			if err != nil {
				return err
			}
			if s.dependencyTree.WouldCycle(tx, sheetIdByte, canonicalKey, dependingOnCellIds) {
				return fmt.Errorf("%s: %w", cellId, contracts.CircularReferenceError)
			}

			cell.Formula = request.Formula
			s.applyEvaluation(cell, s.makeValuesGetter(tx, sheetIdByte))
		}

		if err = s.dependencyTree.SetDependsOn(tx, sheetIdByte, canonicalKey, dependingOnCellIds); err != nil {
			return err
		}
		if err = s.storeCell(bucket, cellId, cell); err != nil {
			return err
		}

		changedCells, err = s.recalculateDependants(tx, sheetIdByte, canonicalKey, cell)
		return err
	})

	if err != nil {
		return nil, err
	}

	s.notify(sheetId, changedCells)
	return cell, nil
}

func (s *SheetRepository) GetCell(sheetId string, cellId string) (*contracts.Cell, error) {
	var cell *contracts.Cell

	err := s.view(sheetId, func(bucket *bbolt.Bucket) (err error) {
		cell, err = s.requireCell(bucket, cellId)
		return err
	})

	return cell, err
}

// GetCellConverted renders the stored value in targetUnit (or the cell's
// display unit when targetUnit is empty) without mutating stored state.
func (s *SheetRepository) GetCellConverted(sheetId string, cellId string, targetUnit string) (*contracts.Cell, error) {
	var converted *contracts.Cell

	err := s.view(sheetId, func(bucket *bbolt.Bucket) error {
		cell, err := s.requireCell(bucket, cellId)
		if err != nil {
			return err
		}

		if targetUnit == "" {
			targetUnit = cell.DisplayUnit
		}
		if targetUnit == "" {
			converted = cell
			return nil
		}

		from, err := s.library.ParseCompound(cell.Unit)
		if err != nil {
			return err
		}
		to, err := s.library.ParseCompound(targetUnit)
		if err != nil {
			return err
		}
		value, err := s.graph.Convert(cell.Value, from, to)
		if err != nil {
			return err
		}

		view := *cell
		view.Value = value
		view.Unit = to.String()
		converted = &view
		return nil
	})

	return converted, err
}

func (s *SheetRepository) SetDisplayUnit(sheetId string, cellId string, displayUnit string) (*contracts.Cell, error) {
	var cell *contracts.Cell

	err := s.update(sheetId, func(bucket *bbolt.Bucket) (err error) {
		cell, err = s.requireCell(bucket, cellId)
		if err != nil {
			return err
		}

		if displayUnit == "" {
			cell.DisplayUnit = ""
			return s.storeCell(bucket, cellId, cell)
		}

		target, err := s.library.ParseCompound(displayUnit)
		if err != nil {
			return err
		}
		stored, err := s.library.ParseCompound(cell.Unit)
		if err != nil {
			return err
		}
		if !target.Vector().Equal(stored.Vector()) {
			return fmt.Errorf("display unit %s vs stored %s: %w", displayUnit, cell.Unit, contracts.IncompatibleUnitsError)
		}

		cell.DisplayUnit = target.String()
		return s.storeCell(bucket, cellId, cell)
	})

	return cell, err
}

// ConvertCell is the explicit user-visible action that rewrites a
// literal cell into targetUnit, making it the new stored unit.
func (s *SheetRepository) ConvertCell(sheetId string, cellId string, targetUnit string) (*contracts.Cell, error) {
	sheetId = strings.ToLower(sheetId)
	sheetIdByte := []byte(sheetId)
	canonicalKey := s.canonicalizer.Canonicalize(cellId)

	var cell *contracts.Cell
	var changedCells []*contracts.Cell

	err := s.db.Update(func(tx *bbolt.Tx) (err error) {
		bucket := tx.Bucket(sheetIdByte)
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}

		cell, err = s.requireCell(bucket, cellId)
		if err != nil {
			return err
		}
		if cell.Formula != "" {
			return fmt.Errorf("%s: %w", cellId, contracts.ConvertFormulaCellError)
		}

		from, err := s.library.ParseCompound(cell.Unit)
		if err != nil {
			return err
		}
		to, err := s.library.ParseCompound(targetUnit)
		if err != nil {
			return err
		}
		value, err := s.graph.Convert(cell.Value, from, to)
		if err != nil {
			return err
		}

		cell.Value = value
		cell.Unit = to.String()
		if err = s.storeCell(bucket, cellId, cell); err != nil {
			return err
		}

		changedCells, err = s.recalculateDependants(tx, sheetIdByte, canonicalKey, cell)
		return err
	})

	if err != nil {
		return nil, err
	}

	s.notify(sheetId, changedCells)
	return cell, nil
}

func (s *SheetRepository) DeleteCell(sheetId string, cellId string) error {
	sheetId = strings.ToLower(sheetId)
	sheetIdByte := []byte(sheetId)
	canonicalKey := s.canonicalizer.Canonicalize(cellId)

	var changedCells []*contracts.Cell

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sheetIdByte)
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}
		if _, err := s.requireCell(bucket, cellId); err != nil {
			return err
		}

		if err := bucket.Delete([]byte(canonicalKey)); err != nil {
			return err
		}
		if err := s.dependencyTree.RemoveCell(tx, sheetIdByte, canonicalKey); err != nil {
			return err
		}

		// dependants now read the deleted cell as an empty zero
		changed, err := s.recalculateDependants(tx, sheetIdByte, canonicalKey, nil)
		changedCells = changed
		return err
	})

	if err != nil {
		return err
	}

	s.notify(sheetId, changedCells)
	return nil
}

func (s *SheetRepository) GetCellList(sheetId string) (*contracts.CellList, error) {
	cellList := contracts.CellList{}

	err := s.view(sheetId, func(bucket *bbolt.Bucket) error {
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			key, cell, err := s.serializer.Unmarshal(v)
			if err != nil {
				return err
			}
			cell.CanonicalKey = string(k)
			cellList[key] = cell
		}
		return nil
	})

	return &cellList, err
}

// recalculateDependants evaluates every transitive dependant of
// canonicalKey exactly once, in topological order; freshly recalculated
// results shadow stored state through the getter chain.
func (s *SheetRepository) recalculateDependants(tx *bbolt.Tx, sheetIdByte []byte, canonicalKey string, edited *contracts.Cell) ([]*contracts.Cell, error) {
	bucket := tx.Bucket(sheetIdByte)
	if bucket == nil {
		return nil, nil
	}

	recalculated := map[string]*contracts.Cell{}
	changed := make([]*contracts.Cell, 0)
	if edited != nil {
		recalculated[canonicalKey] = edited
		changed = append(changed, edited)
	}

	getter := NewCellValuesGetterChain(
		NewRecalculatedCellsGetter(recalculated),
		s.makeValuesGetter(tx, sheetIdByte),
	)

	for _, dependantCellId := range s.dependencyTree.TopologicalOrder(tx, sheetIdByte, canonicalKey) {
		if dependantCellId == canonicalKey {
			continue
		}

		data := bucket.Get([]byte(dependantCellId))
		if data == nil {
			// dangling edge of a deleted dependant
			continue
		}
		key, cell, err := s.serializer.Unmarshal(data)
		if err != nil {
			return nil, err
		}
		if cell.Formula == "" {
			continue
		}
		cell.CanonicalKey = dependantCellId

		s.applyEvaluation(cell, getter)
		if err = s.storeCell(bucket, key, cell); err != nil {
			return nil, err
		}

		recalculated[dependantCellId] = cell
		changed = append(changed, cell)
	}

	return changed, nil
}

// applyEvaluation runs the cell's formula and records the outcome. A
// fatal evaluation error marks only this cell; the edit itself commits.
func (s *SheetRepository) applyEvaluation(cell *contracts.Cell, getter contracts.CellValuesGetter) {
	result, err := s.executor.Evaluate(cell.Formula, getter, contracts.EvalOptions{RowUnit: cell.RowUnit})
	if err != nil {
		cell.State = contracts.CellStateFormulaError
		cell.Error = err.Error()
		cell.Value = 0
		cell.Unit = ""
		cell.Warnings = nil
		return
	}

	cell.State = contracts.CellStateFormula
	cell.Error = ""
	cell.Value = result.Value
	cell.Unit = result.Unit
	cell.Warnings = result.Warnings
}

func (s *SheetRepository) makeValuesGetter(tx *bbolt.Tx, sheetId []byte) contracts.CellValuesGetter {
	return func(cellIds []string) []*contracts.Cell {
		values := make([]*contracts.Cell, len(cellIds))

		bucket := tx.Bucket(sheetId)
		if bucket == nil {
			return values
		}

		for index, canonicalCellId := range cellIds {
			data := bucket.Get([]byte(canonicalCellId))
			if data == nil {
				continue
			}
			if _, cell, err := s.serializer.Unmarshal(data); err == nil {
				cell.CanonicalKey = canonicalCellId
				values[index] = cell
			}
		}

		return values
	}
}

func (s *SheetRepository) loadCell(bucket *bbolt.Bucket, canonicalKey string) (*contracts.Cell, error) {
	data := bucket.Get([]byte(canonicalKey))
	if data == nil {
		return nil, nil
	}

	_, cell, err := s.serializer.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	cell.CanonicalKey = canonicalKey
	return cell, nil
}

func (s *SheetRepository) requireCell(bucket *bbolt.Bucket, cellId string) (*contracts.Cell, error) {
	cell, err := s.loadCell(bucket, s.canonicalizer.Canonicalize(cellId))
	if err != nil {
		return nil, err
	}
	if cell == nil {
		return nil, fmt.Errorf("%s: %w", cellId, contracts.CellNotFoundError)
	}
	return cell, nil
}

func (s *SheetRepository) storeCell(bucket *bbolt.Bucket, key string, cell *contracts.Cell) error {
	data, err := s.serializer.Marshal(key, cell)
	if err != nil {
		return err
	}
	return bucket.Put([]byte(cell.CanonicalKey), data)
}

func (s *SheetRepository) view(sheetId string, fn func(bucket *bbolt.Bucket) error) error {
	sheetId = strings.ToLower(sheetId)

	return s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}
		return fn(bucket)
	})
}

func (s *SheetRepository) update(sheetId string, fn func(bucket *bbolt.Bucket) error) error {
	sheetId = strings.ToLower(sheetId)

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}
		return fn(bucket)
	})
}

func (s *SheetRepository) notify(canonicalSheetId string, changedCells []*contracts.Cell) {
	if s.webhookDispatcher != nil && len(changedCells) > 0 {
		s.webhookDispatcher.Notify(canonicalSheetId, changedCells)
	}
}
