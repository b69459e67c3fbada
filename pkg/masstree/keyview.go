// pkg/masstree/keyview.go
package masstree

import "encoding/binary"

// keyView presents a borrowed byte slice as a sequence of 8-byte
// big-endian integers ("ikeys") with a cursor at the current trie depth.
// Callers must not mutate data for the lifetime of the logical operation
// that constructed the view.
type keyView struct {
	data  []byte
	depth int
}

// newKeyView constructs a key view at the given starting trie depth.
func newKeyView(data []byte, depth int) keyView {
	if depth*KeySliceLen > MaxKeyLength {
		contractViolation("key view depth exceeds MaxKeyLength")
	}
	return keyView{data: data, depth: depth}
}

// ikey reads the big-endian 8-byte integer at the current depth,
// zero-padded on the right if fewer than 8 bytes remain.
func (k keyView) ikey() uint64 {
	start := k.depth * KeySliceLen
	if start >= len(k.data) {
		return 0
	}
	var buf [8]byte
	end := start + KeySliceLen
	if end > len(k.data) {
		end = len(k.data)
	}
	copy(buf[:], k.data[start:end])
	return binary.BigEndian.Uint64(buf[:])
}

// hasSuffix reports whether the key has bytes beyond the current 8-byte
// window, i.e. the full key is longer than (depth+1)*8 bytes.
func (k keyView) hasSuffix() bool {
	return len(k.data) > (k.depth+1)*KeySliceLen
}

// suffix returns the bytes beyond the current 8-byte window.
func (k keyView) suffix() []byte {
	start := (k.depth + 1) * KeySliceLen
	if start >= len(k.data) {
		return nil
	}
	return k.data[start:]
}

// currentLen returns max(0, len(data) - depth*8).
func (k keyView) currentLen() int {
	n := len(k.data) - k.depth*KeySliceLen
	if n < 0 {
		return 0
	}
	return n
}

// shift advances the cursor by one trie layer.
func (k keyView) shift() keyView {
	return keyView{data: k.data, depth: k.depth + 1}
}

// unshift reverses shift.
func (k keyView) unshift() keyView {
	return keyView{data: k.data, depth: k.depth - 1}
}

// keylenClass classifies how many key bytes live in the current 8-byte
// window, for comparison against a leaf slot's keylenx byte (see leaf.go):
// 0..8 is an exact in-window length, 64 marks "full window plus a suffix
// stored in the suffix bag".
func (k keyView) keylenClass() uint8 {
	n := k.currentLen()
	if n > KeySliceLen {
		return 64
	}
	return uint8(n)
}
