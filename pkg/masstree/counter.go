// pkg/masstree/counter.go
package masstree

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// shardedCounter is a 16-way (Config.Shards-way) padded approximate
// counter for the element count (spec §4.11), grounded on
// pkg/cache/memory_budget.go's per-component usage accounting, but
// sharded instead of single-mutex to avoid a contended hot path on
// every insert/remove.
//
// Go hides OS-thread identity from user code (goroutines are
// M:N-scheduled), so the "hash the OS thread id, cache it per-thread"
// shard selection from the spec is realized instead as a sync.Pool-
// cached index: sync.Pool's per-P free lists mean a given P tends to
// Get back the same index it Put, which approximates the spec's
// per-thread caching closely enough for an approximate counter.
type counterShard struct {
	value atomic.Int64
	_     cpu.CacheLinePad
}

type shardedCounter struct {
	shards    []counterShard
	shardPool sync.Pool
	nextShard atomic.Uint64
}

func newShardedCounter(n int) *shardedCounter {
	if n <= 0 {
		n = 16
	}
	c := &shardedCounter{shards: make([]counterShard, n)}
	c.shardPool.New = func() any {
		idx := int(c.nextShard.Add(1) % uint64(len(c.shards)))
		return &idx
	}
	return c
}

func (c *shardedCounter) shardIndex() *int {
	return c.shardPool.Get().(*int)
}

func (c *shardedCounter) release(idx *int) {
	c.shardPool.Put(idx)
}

func (c *shardedCounter) increment() {
	idx := c.shardIndex()
	c.shards[*idx].value.Add(1)
	c.release(idx)
}

func (c *shardedCounter) decrement() {
	idx := c.shardIndex()
	c.shards[*idx].value.Add(-1)
	c.release(idx)
}

// load sums all shards with relaxed ordering and clamps negatives to
// zero: the reported length is eventually consistent but never negative.
func (c *shardedCounter) load() int64 {
	var total int64
	for i := range c.shards {
		total += c.shards[i].value.Load()
	}
	if total < 0 {
		return 0
	}
	return total
}
