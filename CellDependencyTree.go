package main

import (
	"bytes"
	"sort"

	"go.etcd.io/bbolt"
)

// CellDependencyTree stores the cell reference graph per sheet inside
// bbolt, both directions at once:
//   - a depending-list key per cell holding the cells it references;
//   - one reverse-index key per edge, so all direct dependants of a cell
//     come out of a single prefix scan.
type CellDependencyTree struct{}

const Delimiter = byte(0x00)

var bucketPrefix = [4]byte{'_', '_', 'd', '_'}

func (t *CellDependencyTree) SetDependsOn(tx *bbolt.Tx, sheetId []byte, dependantCellId string, dependingOnCellIds []string) (err error) {
	cellDependingListKey := t.makeDependingListKey(dependantCellId)

	var bucket *bbolt.Bucket
	bucket, err = tx.CreateBucketIfNotExists(t.makeBucketId(sheetId))
	if err != nil {
		return err
	}

	previousDependingListToDelete := map[string]bool{}
	previous := bucket.Get(cellDependingListKey)
	if previous != nil {
		for _, oldDependingOnCellId := range bytes.Split(previous, []byte{Delimiter}) {
			previousDependingListToDelete[string(oldDependingOnCellId)] = true
		}
	}

	addedRecords := false
	for _, dependingOnCellId := range dependingOnCellIds {
		if previousDependingListToDelete[dependingOnCellId] {
			// already stored, keep the edge
			delete(previousDependingListToDelete, dependingOnCellId)
		} else {
			addedRecords = true
			err = bucket.Put(t.makeDependantKey(dependantCellId, dependingOnCellId), []byte{})
			if err != nil {
				return err
			}
		}
	}

	if addedRecords == false && len(previousDependingListToDelete) == 0 {
		return nil
	}

	// delete edges which are not configured anymore
	for oldDependingOnCellId := range previousDependingListToDelete {
		err = bucket.Delete(t.makeDependantKey(dependantCellId, oldDependingOnCellId))
		if err != nil {
			return err
		}
	}

	if len(dependingOnCellIds) == 0 {
		return bucket.Delete(cellDependingListKey)
	}

	newDependingOnCellIds := make([][]byte, 0, len(dependingOnCellIds))
	for _, dependingOnCellId := range dependingOnCellIds {
		newDependingOnCellIds = append(newDependingOnCellIds, []byte(dependingOnCellId))
	}
	return bucket.Put(cellDependingListKey, bytes.Join(newDependingOnCellIds, []byte{Delimiter}))
}

// GetDependants returns the transitive closure of cells referencing
// dependingOnCellId, iteratively so deep chains cannot exhaust the call
// stack.
func (t *CellDependencyTree) GetDependants(tx *bbolt.Tx, sheetId []byte, dependingOnCellId string) []string {
	bucket := tx.Bucket(t.makeBucketId(sheetId))
	if bucket == nil {
		return []string{}
	}

	dependants := make([]string, 0)
	visited := map[string]bool{dependingOnCellId: true}
	worklist := []string{dependingOnCellId}

	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]

		for _, dependantCellId := range t.fetchCellDependants(bucket, current) {
			if !visited[dependantCellId] {
				visited[dependantCellId] = true
				dependants = append(dependants, dependantCellId)
				worklist = append(worklist, dependantCellId)
			}
		}
	}

	return dependants
}

// WouldCycle reports whether committing dependingOnCellIds for cellId
// would close a loop: some new dependency reaches cellId through the
// already-stored forward edges.
func (t *CellDependencyTree) WouldCycle(tx *bbolt.Tx, sheetId []byte, cellId string, dependingOnCellIds []string) bool {
	var bucket *bbolt.Bucket
	if tx != nil {
		bucket = tx.Bucket(t.makeBucketId(sheetId))
	}

	visited := map[string]bool{}
	stack := append([]string{}, dependingOnCellIds...)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == cellId {
			return true
		}
		if visited[current] || bucket == nil {
			continue
		}
		visited[current] = true
		stack = append(stack, t.fetchDependsOn(bucket, current)...)
	}

	return false
}

// TopologicalOrder returns the dependants closure of cellId ordered so
// every cell comes after all its dependencies within the closure. A
// Kahn worklist with a sorted ready set keeps the order deterministic
// for an unchanged graph.
func (t *CellDependencyTree) TopologicalOrder(tx *bbolt.Tx, sheetId []byte, cellId string) []string {
	bucket := tx.Bucket(t.makeBucketId(sheetId))
	if bucket == nil {
		return []string{}
	}

	closure := map[string]bool{}
	for _, dependantCellId := range t.GetDependants(tx, sheetId, cellId) {
		closure[dependantCellId] = true
	}
	if len(closure) == 0 {
		return []string{}
	}

	inDegree := make(map[string]int, len(closure))
	for member := range closure {
		for _, dependingOnCellId := range t.fetchDependsOn(bucket, member) {
			if closure[dependingOnCellId] {
				inDegree[member]++
			}
		}
	}

	ready := make([]string, 0, len(closure))
	for member := range closure {
		if inDegree[member] == 0 {
			ready = append(ready, member)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(closure))
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		order = append(order, current)

		for _, dependantCellId := range t.fetchCellDependants(bucket, current) {
			if !closure[dependantCellId] {
				continue
			}
			inDegree[dependantCellId]--
			if inDegree[dependantCellId] == 0 {
				position := sort.SearchStrings(ready, dependantCellId)
				ready = append(ready, "")
				copy(ready[position+1:], ready[position:])
				ready[position] = dependantCellId
			}
		}
	}

	return order
}

// RemoveCell prunes the edges the cell owns as a dependant. Edges of
// cells still referencing it stay: their formulas keep the reference.
func (t *CellDependencyTree) RemoveCell(tx *bbolt.Tx, sheetId []byte, cellId string) error {
	return t.SetDependsOn(tx, sheetId, cellId, []string{})
}

func (t *CellDependencyTree) makeBucketId(sheetId []byte) []byte {
	if len(sheetId) == 0 {
		return nil
	}

	return append(bucketPrefix[:], sheetId...)
}

func (t *CellDependencyTree) fetchDependsOn(bucket *bbolt.Bucket, dependantCellId string) []string {
	stored := bucket.Get(t.makeDependingListKey(dependantCellId))
	if stored == nil {
		return nil
	}

	dependingOnCellIds := make([]string, 0, 5)
	for _, dependingOnCellId := range bytes.Split(stored, []byte{Delimiter}) {
		dependingOnCellIds = append(dependingOnCellIds, string(dependingOnCellId))
	}
	return dependingOnCellIds
}

func (t *CellDependencyTree) fetchCellDependants(bucket *bbolt.Bucket, dependingOnCellId string) []string {
	dependantCellIds := make([]string, 0, 5)
	c := bucket.Cursor()

	prefix := t.makeDependingOnPrefixKey(dependingOnCellId)
	prefixLength := len(prefix)
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		dependantCellIds = append(dependantCellIds, string(k[prefixLength:]))
	}

	return dependantCellIds
}

func (t *CellDependencyTree) makeDependingListKey(dependantCellId string) []byte {
	return append(
		[]byte{Delimiter, Delimiter},
		[]byte(dependantCellId)...,
	)
}

func (t *CellDependencyTree) makeDependingOnPrefixKey(dependingOnCellId string) []byte {
	return append([]byte(dependingOnCellId), Delimiter)
}

func (t *CellDependencyTree) makeDependantKey(dependantCellId string, dependingOnCellId string) []byte {
	return append(t.makeDependingOnPrefixKey(dependingOnCellId), []byte(dependantCellId)...)
}
