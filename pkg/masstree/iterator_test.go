// pkg/masstree/iterator_test.go
package masstree

import (
	"bytes"
	"fmt"
	"testing"
)

func TestIteratorAcrossSublayer(t *testing.T) {
	tr := New[string]()
	defer tr.Close()

	prefix := []byte("shareeee") // one 8-byte window, shared by every key below
	suffixes := []string{"alpha", "beta", "gamma", "delta"}
	for _, s := range suffixes {
		key := append(append([]byte{}, prefix...), []byte(s)...)
		tr.Put(key, s)
	}
	tr.Put([]byte("zzzzzzzzafter"), "after")
	tr.Put([]byte("aaaaaaaabefore"), "before")

	it := tr.NewIterator(Bound{}, Bound{})
	defer it.Close()
	var got []string
	for it.Next() {
		got = append(got, string(it.Key()))
	}
	if len(got) != len(suffixes)+2 {
		t.Fatalf("got %d entries, want %d", len(got), len(suffixes)+2)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("not strictly increasing at %d: %q then %q", i, got[i-1], got[i])
		}
	}
}

func TestIteratorBoundsExcludedEdges(t *testing.T) {
	tr := New[int]()
	defer tr.Close()
	for i := 0; i < 20; i++ {
		tr.Put([]byte(fmt.Sprintf("k%02d", i)), i)
	}

	lower := Bound{Kind: Excluded, Key: []byte("k05")}
	upper := Bound{Kind: Included, Key: []byte("k10")}
	it := tr.NewIterator(lower, upper)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	want := []string{"k06", "k07", "k08", "k09", "k10"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestIteratorEmptyTreeYieldsNothing(t *testing.T) {
	tr := New[int]()
	defer tr.Close()
	it := tr.NewIterator(Bound{}, Bound{})
	defer it.Close()
	if it.Next() {
		t.Errorf("expected no entries from an empty tree")
	}
}

func TestIteratorReverseWithBounds(t *testing.T) {
	tr := New[int]()
	defer tr.Close()
	for i := 0; i < 30; i++ {
		tr.Put([]byte(fmt.Sprintf("k%02d", i)), i)
	}
	lower := Bound{Kind: Included, Key: []byte("k10")}
	upper := Bound{Kind: Excluded, Key: []byte("k20")}
	it := tr.NewReverseIterator(lower, upper)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	if len(keys) != 10 {
		t.Fatalf("got %d entries, want 10", len(keys))
	}
	if keys[0] != "k19" || keys[len(keys)-1] != "k10" {
		t.Errorf("reverse range endpoints = [%q..%q], want [k19..k10]", keys[0], keys[len(keys)-1])
	}
}

func TestIteratorCloseIsIdempotentAndUnpinsEpoch(t *testing.T) {
	tr := New[int]()
	defer tr.Close()
	tr.Put([]byte("a"), 1)

	before := tr.epoch.activeReaderCount()
	it := tr.NewIterator(Bound{}, Bound{})
	if got := tr.epoch.activeReaderCount(); got != before+1 {
		t.Fatalf("activeReaderCount() = %d, want %d after opening an iterator", got, before+1)
	}
	it.Close()
	it.Close() // must not panic or double-decrement
	if got := tr.epoch.activeReaderCount(); got != before {
		t.Errorf("activeReaderCount() = %d, want %d after Close", got, before)
	}
}

func TestIteratorAutoClosesWhenExhausted(t *testing.T) {
	tr := New[int]()
	defer tr.Close()
	tr.Put([]byte("only"), 1)

	before := tr.epoch.activeReaderCount()
	it := tr.NewIterator(Bound{}, Bound{})
	for it.Next() {
		_ = it.Value()
	}
	if got := tr.epoch.activeReaderCount(); got != before {
		t.Errorf("activeReaderCount() = %d, want %d once Next drains to exhaustion", got, before)
	}
}

func TestIteratorKeyReconstructionMatchesPut(t *testing.T) {
	tr := New[int]()
	defer tr.Close()
	keys := [][]byte{
		[]byte("short"),
		[]byte("exactly8"),
		[]byte("this-key-is-longer-than-one-window"),
		bytes.Repeat([]byte("x"), 100),
	}
	for i, k := range keys {
		tr.Put(k, i)
	}

	it := tr.NewIterator(Bound{}, Bound{})
	defer it.Close()
	seen := map[string]bool{}
	for it.Next() {
		seen[string(it.Key())] = true
	}
	for _, k := range keys {
		if !seen[string(k)] {
			t.Errorf("reconstructed key set missing %q", k)
		}
	}
}
