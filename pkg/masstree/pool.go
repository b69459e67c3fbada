// pkg/masstree/pool.go
package masstree

import "sync"

// nodePool is the optional node-freelist layer (spec §4.12/C12): rather
// than returning every retired leaf to the Go allocator, a closed leaf
// is handed back to a kind-specific free list and reused by the next
// leaf allocation. Interior nodes are allocated from it but no caller
// returns them (putInterior is unused by the tree). This is the in-memory
// analogue of pkg/pager/freelist.go's trunk-page freelist (reuse
// released storage instead of growing the backing store indefinitely),
// realized with sync.Pool instead of a trunk/leaf page-number chain
// since Go nodes are live objects, not page numbers into a flat file.
//
// Nodes are allocated from it on splits and sublayer creation; they are
// returned to it only by deferRetire's reclaim callback (after the
// epoch collector has proven no reader can still observe the node),
// and it is bypassed entirely during Tree.Close/Destroy, where every node
// is unreachable anyway and letting the garbage collector reclaim the
// whole graph in bulk is cheaper than individually recycling it.
type nodePool[V any] struct {
	leaves    sync.Pool
	interiors sync.Pool
}

func newNodePool[V any]() *nodePool[V] {
	p := &nodePool[V]{}
	p.leaves.New = func() any { return new(leafNode[V]) }
	p.interiors.New = func() any { return new(interiorNode[V]) }
	return p
}

// getLeaf returns a zeroed, freshly-identity-permuted leaf, either reused
// from the pool or freshly allocated.
func (p *nodePool[V]) getLeaf() *leafNode[V] {
	l := p.leaves.Get().(*leafNode[V])
	*l = leafNode[V]{perm: newPermuter()}
	l.ver.setIsLeaf(true)
	return l
}

// putLeaf returns a fully-unlinked, fully-unreferenced leaf to the pool.
// Callers must only do this once the epoch collector has confirmed no
// reader can still hold a pointer to it.
func (p *nodePool[V]) putLeaf(l *leafNode[V]) {
	p.leaves.Put(l)
}

func (p *nodePool[V]) getInterior(height int) *interiorNode[V] {
	n := p.interiors.Get().(*interiorNode[V])
	*n = interiorNode[V]{height: height}
	n.ver.setIsLeaf(false)
	return n
}

func (p *nodePool[V]) putInterior(n *interiorNode[V]) {
	p.interiors.Put(n)
}
