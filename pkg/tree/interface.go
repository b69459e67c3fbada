// pkg/tree/interface.go
// Package tree defines the storage-layer interface an ordered
// key-value index must satisfy, independent of its internal
// implementation (pkg/index.Index, backed by the masstree engine,
// implements it today).
package tree

// Tree is the interface for ordered key-value index operations.
type Tree interface {
	// Insert inserts or updates a key-value pair
	Insert(key, value []byte) error

	// Get retrieves the value for a key
	Get(key []byte) ([]byte, error)

	// Delete removes a key from the tree
	Delete(key []byte) error

	// Cursor creates a new cursor for iteration
	Cursor() Cursor
}

// Cursor is the interface for ordered key-value iteration.
type Cursor interface {
	// First moves the cursor to the first entry
	First()

	// Last moves the cursor to the last entry
	Last()

	// Seek moves the cursor to the first entry >= key
	Seek(key []byte)

	// Next moves the cursor to the next entry
	Next()

	// Prev moves the cursor to the previous entry
	Prev()

	// Valid returns true if the cursor points to a valid entry
	Valid() bool

	// Key returns the current key (nil if not valid)
	Key() []byte

	// Value returns the current value (nil if not valid)
	Value() []byte

	// Close releases resources held by the cursor
	Close()
}

// TreeWithStats is an extension for trees that provide statistics.
type TreeWithStats interface {
	Tree
	KeyCount() int64
}
