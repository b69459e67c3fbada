// Package index adapts the generic masstree.Tree engine to the
// byte-slice-keyed tree.Tree/tree.Cursor interfaces the rest of this
// repository's storage layer expects (pkg/tree/interface.go), the way
// pkg/cowbtree.CowBTree satisfies the same interfaces alongside the
// page-based pkg/btree.BTree. It contains no algorithmic logic of its
// own, only type adaptation.
package index

import (
	"masstree/pkg/masstree"
	"masstree/pkg/tree"
)

// Index is a tree.Tree/tree.TreeWithStats backed by masstree.Tree[[]byte].
type Index struct {
	t *masstree.Tree[[]byte]
}

var (
	_ tree.Tree          = (*Index)(nil)
	_ tree.TreeWithStats = (*Index)(nil)
)

// New creates an empty Index with default tuning.
func New() *Index {
	return &Index{t: masstree.New[[]byte]()}
}

// NewWithConfig creates an empty Index with custom tuning.
func NewWithConfig(cfg masstree.Config) *Index {
	return &Index{t: masstree.NewWithConfig[[]byte](cfg)}
}

// Insert inserts or updates a key-value pair.
func (idx *Index) Insert(key, value []byte) error {
	return idx.t.Put(key, value)
}

// Get retrieves the value for a key, returning masstree.ErrKeyNotFound
// if absent, matching tree.Tree's error-return contract (the underlying
// engine instead reports absence via a boolean, per spec).
func (idx *Index) Get(key []byte) ([]byte, error) {
	v, ok := idx.t.Get(key)
	if !ok {
		return nil, masstree.ErrKeyNotFound
	}
	return v, nil
}

// Delete removes a key from the index. Deleting an absent key is not an
// error, matching cowbtree's Delete contract.
func (idx *Index) Delete(key []byte) error {
	idx.t.Remove(key)
	return nil
}

// KeyCount returns the number of live keys (tree.TreeWithStats).
func (idx *Index) KeyCount() int64 {
	return idx.t.Length()
}

// Stats exposes the engine's running operation counters.
func (idx *Index) Stats() masstree.Stats {
	return idx.t.Stats()
}

// Close releases the index's resources. Safe to call once.
func (idx *Index) Close() error {
	return idx.t.Close()
}

// Cursor creates a new cursor for iteration (tree.Tree).
func (idx *Index) Cursor() tree.Cursor {
	return &cursor{idx: idx}
}
