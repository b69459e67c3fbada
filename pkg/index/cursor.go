package index

import "masstree/pkg/masstree"

// cursor adapts masstree's single-direction range Iterator to
// tree.Cursor's bidirectional First/Last/Seek/Next/Prev contract,
// grounded on pkg/cowbtree/cursor.go's Cursor shape. Unlike that
// cursor's node/position stack, this one re-opens a fresh masstree
// iterator (scoped just past the current key) whenever the caller
// switches direction, since the underlying engine's iterator only ever
// walks one way.
type cursor struct {
	idx   *Index
	it    *masstree.Iterator[[]byte]
	dir   direction
	key   []byte
	value []byte
	valid bool
}

type direction int

const (
	dirNone direction = iota
	dirForward
	dirBackward
)

func (c *cursor) closeIter() {
	if c.it != nil {
		c.it.Close()
		c.it = nil
	}
}

// First moves the cursor to the smallest key.
func (c *cursor) First() {
	c.closeIter()
	c.it = c.idx.t.NewIterator(masstree.Bound{}, masstree.Bound{})
	c.dir = dirForward
	c.advance()
}

// Last moves the cursor to the largest key.
func (c *cursor) Last() {
	c.closeIter()
	c.it = c.idx.t.NewReverseIterator(masstree.Bound{}, masstree.Bound{})
	c.dir = dirBackward
	c.advance()
}

// Seek moves the cursor to the first entry >= key.
func (c *cursor) Seek(key []byte) {
	c.closeIter()
	lower := masstree.Bound{Kind: masstree.Included, Key: key}
	c.it = c.idx.t.NewIterator(lower, masstree.Bound{})
	c.dir = dirForward
	c.advance()
}

// Next moves the cursor to the next entry in ascending order.
func (c *cursor) Next() {
	if !c.valid {
		return
	}
	if c.dir != dirForward {
		c.closeIter()
		lower := masstree.Bound{Kind: masstree.Excluded, Key: c.key}
		c.it = c.idx.t.NewIterator(lower, masstree.Bound{})
		c.dir = dirForward
	}
	c.advance()
}

// Prev moves the cursor to the previous entry in ascending order.
func (c *cursor) Prev() {
	if !c.valid {
		return
	}
	if c.dir != dirBackward {
		c.closeIter()
		upper := masstree.Bound{Kind: masstree.Excluded, Key: c.key}
		c.it = c.idx.t.NewReverseIterator(masstree.Bound{}, upper)
		c.dir = dirBackward
	}
	c.advance()
}

func (c *cursor) advance() {
	if c.it != nil && c.it.Next() {
		// Copy out of the iterator's borrowed buffers: Key() is only
		// valid until the iterator's next Next()/Close(), but this
		// cursor's Key()/Value() must remain valid across direction
		// switches that reopen a new iterator.
		c.key = append([]byte(nil), c.it.Key()...)
		c.value = append([]byte(nil), c.it.Value()...)
		c.valid = true
		return
	}
	c.valid = false
	c.key = nil
	c.value = nil
}

func (c *cursor) Valid() bool   { return c.valid }
func (c *cursor) Key() []byte   { return c.key }
func (c *cursor) Value() []byte { return c.value }

// Close releases the cursor's iterator, if any. Safe to call more than once.
func (c *cursor) Close() {
	c.closeIter()
	c.valid = false
}
