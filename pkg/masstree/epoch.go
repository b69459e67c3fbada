// pkg/masstree/epoch.go
package masstree

import (
	"sync"
	"sync/atomic"
)

// collector is a process-local three-epoch reclaimer (spec §4.9),
// grounded on pkg/cowbtree/epoch.go's EpochManager: a monotone global
// epoch, a registry of active pins, and retire bins. Unlike
// EpochManager's free-form map-by-epoch, this follows the spec's
// explicit "three retire bins indexed by epoch mod 3" design so that
// draining only ever touches the bin retired two epochs ago, which by
// invariant no active pin can still be observing.
type collector struct {
	globalEpoch atomic.Uint64
	pins        sync.Map // id -> *pinState
	nextID      atomic.Uint64

	binMu sync.Mutex
	bins  [3][]retiredItem

	retiredSinceAdvance atomic.Int64
}

type pinState struct {
	epoch  atomic.Uint64
	active atomic.Bool
}

type retiredItem struct {
	reclaim func()
}

func newCollector() *collector {
	c := &collector{}
	c.globalEpoch.Store(1)
	return c
}

// guard is a held pin: readers must call unpin when their critical
// section ends. Any pointer read while pinned remains valid until the
// reader unpins plus at most two epoch advances (spec §4.9 property).
type guard struct {
	c     *collector
	id    uint64
	state *pinState
}

// pin publishes the current global epoch as this reader's local epoch
// before setting active, so a concurrent epoch advance cannot wrap past
// a reader without noticing it.
func (c *collector) pin() *guard {
	id := c.nextID.Add(1)
	st := &pinState{}
	st.epoch.Store(c.globalEpoch.Load())
	st.active.Store(true)
	c.pins.Store(id, st)
	return &guard{c: c, id: id, state: st}
}

func (g *guard) unpin() {
	if g == nil || g.state == nil {
		return
	}
	g.state.active.Store(false)
	g.c.pins.Delete(g.id)
}

// deferRetire pushes reclaim into the bin for the current epoch mod 3,
// and opportunistically attempts an advance once BATCH_THRESHOLD items
// have accumulated since the last one.
func (c *collector) deferRetire(cfg Config, reclaim func()) {
	epoch := c.globalEpoch.Load()
	c.binMu.Lock()
	c.bins[epoch%3] = append(c.bins[epoch%3], retiredItem{reclaim: reclaim})
	c.binMu.Unlock()

	if c.retiredSinceAdvance.Add(1) >= int64(cfg.BatchThreshold) {
		c.retiredSinceAdvance.Store(0)
		c.tryAdvance()
	}
}

// tryAdvance succeeds when every active pin's local epoch has caught up
// to the current global epoch; on success it bumps the epoch and drains
// the bin retired two epochs before the new epoch, which is now provably
// safe to free.
func (c *collector) tryAdvance() bool {
	current := c.globalEpoch.Load()

	safe := true
	c.pins.Range(func(_, v any) bool {
		st := v.(*pinState)
		if st.active.Load() && st.epoch.Load() < current {
			safe = false
			return false
		}
		return true
	})
	if !safe {
		return false
	}

	if !c.globalEpoch.CompareAndSwap(current, current+1) {
		return false
	}

	drainBin := (current + 2) % 3 // == (new_epoch - 2) % 3, the bin retired two epochs before new_epoch
	c.binMu.Lock()
	items := c.bins[drainBin]
	c.bins[drainBin] = nil
	c.binMu.Unlock()

	for _, it := range items {
		it.reclaim()
	}
	return true
}

// reclaimAll is used only at teardown, when no reader is pinned: it
// repeatedly advances and drains until every bin is empty.
func (c *collector) reclaimAll() {
	for i := 0; i < 3; i++ {
		c.tryAdvance()
	}
	c.binMu.Lock()
	defer c.binMu.Unlock()
	for i := range c.bins {
		for _, it := range c.bins[i] {
			it.reclaim()
		}
		c.bins[i] = nil
	}
}

func (c *collector) activeReaderCount() int {
	n := 0
	c.pins.Range(func(_, v any) bool {
		if v.(*pinState).active.Load() {
			n++
		}
		return true
	})
	return n
}
