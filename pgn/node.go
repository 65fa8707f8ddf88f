package pgn

import (
	"sync/atomic"

	"github.com/andrsv/chess"
)

// nodeIDCounter hands out the process-wide monotonic ids GUIs use to
// address a GameNode without holding a pointer to it (e.g. across a
// request/response boundary). It starts at 1 so the zero value of Id
// never collides with a real node.
var nodeIDCounter int64

func nextNodeID() int {
	return int(atomic.AddInt64(&nodeIDCounter, 1))
}

// GameNode is an element in a game tree, holding one move. The next move
// is found by following Next, the previous by following Parent. Variation
// points to an alternative list of moves replacing this one. Every
// variation, including the main line (Game.Root), starts with a special
// root node that repeats the Board of its parent and holds the zero Move;
// it exists to carry comments that precede the first move of the
// variation. Use IsRoot to identify it. Following Next never leads to a
// root node; following Variation always does.
type GameNode struct {
	Id        int
	Parent    *GameNode
	Next      *GameNode
	Variation *GameNode
	Move      chess.Move
	Board     *chess.Board
	Comment   []string
	Nags      []Nag
}

// Insert adds a node to the game tree as a child of n, playing move from
// n.Board. The new node is returned so calls can be chained:
//
//	n = n.Insert(m1)
//	n = n.Insert(m2)
func (n *GameNode) Insert(move chess.Move) *GameNode {
	board := n.Board.Clone()
	board.Apply(move)
	n.Next = &GameNode{Id: nextNodeID(), Parent: n, Move: move, Board: board}
	return n.Next
}

// NewVariation creates a new variation on n, returning the root node of
// that variation.
func (n *GameNode) NewVariation() *GameNode {
	v := n
	for v.Variation != nil {
		if v.Variation.Next == nil {
			break // empty variation slot
		}
		v = v.Variation.Next
	}
	v.Variation = &GameNode{Id: nextNodeID(), Parent: n.Parent, Board: n.Parent.Board}
	return v.Variation
}

// childSlots returns n's immediate children in display order: the
// mainline continuation first (if any), followed by the first move of
// each variation on it. This is the flat, index-addressable child list
// that MoveUp, MoveDown and DeleteVariation operate on.
func (n *GameNode) childSlots() []*GameNode {
	if n.Next == nil {
		return nil
	}
	slots := []*GameNode{n.Next}
	for _, v := range n.Next.Variations() {
		slots = append(slots, v.Next)
	}
	return slots
}

// setChildSlots rebuilds n's Next pointer and the Variation chain hanging
// off it from an ordered child list, as produced (and reordered) by
// childSlots. A slot
// that already had its own variation-root node (one being reordered,
// not promoted to the mainline) keeps that node, so any comment
// attached to it survives the reorder; a slot with none -- moving from
// the mainline into a variation -- gets a fresh one, mirroring
// NewVariation's construction.
func (n *GameNode) setChildSlots(slots []*GameNode) {
	if len(slots) == 0 {
		n.Next = nil
		return
	}
	n.Next = slots[0]
	n.Next.Parent = n
	prev := n.Next
	for _, c := range slots[1:] {
		root := c.Parent
		if root == nil || root == n || !root.IsRoot() {
			root = &GameNode{Id: nextNodeID(), Parent: n, Board: n.Board}
		}
		root.Parent = n
		root.Next = c
		c.Parent = root
		prev.Variation = root
		prev = c
	}
	prev.Variation = nil
}

// indexOfSlot returns the position of node within slots, or -1 if it's
// not present.
func indexOfSlot(slots []*GameNode, node *GameNode) int {
	for i, s := range slots {
		if s == node {
			return i
		}
	}
	return -1
}

// parentOfSlot returns the structural parent of a child-slot head node
// -- the node whose childSlots list node belongs to -- seeing through
// the variation-root sentinel that sits between a variation's first
// move and its logical parent.
func parentOfSlot(node *GameNode) *GameNode {
	p := node.Parent
	if p != nil && p.IsRoot() && p.Parent != nil {
		return p.Parent
	}
	return p
}

// Variations returns the alternatives to this node's move, as the root
// node of each variation.
func (n *GameNode) Variations() []*GameNode {
	if n.Parent != nil && n.Parent.IsRoot() && n.Parent.Parent != nil {
		// The variations of the first move in a variation were already
		// listed for the variation's root node; don't repeat them.
		return nil
	}
	var vs []*GameNode
	for v := n.Variation; v != nil; v = v.Next.Variation {
		if v.Next == nil {
			break
		}
		vs = append(vs, v)
	}
	return vs
}

// IsRoot reports whether n is the root node of a variation.
func (n *GameNode) IsRoot() bool {
	return n.Parent == nil || n.Parent.Next != n
}

// AddNag attaches nag to the move, ignoring duplicates.
func (n *GameNode) AddNag(nag Nag) {
	for _, x := range n.Nags {
		if nag == x {
			return
		}
	}
	n.Nags = append(n.Nags, nag)
}

// DropNag removes nag from the move, if present.
func (n *GameNode) DropNag(nag Nag) {
	for i, x := range n.Nags {
		if nag == x {
			n.Nags[i] = n.Nags[len(n.Nags)-1]
			n.Nags = n.Nags[:len(n.Nags)-1]
			return
		}
	}
}

// NodePool is an arena allocator for GameNode values, amortizing the
// per-node allocation cost of loading large PGN databases. It is not
// thread-safe: callers confine one pool to one goroutine or serialize
// access externally.
type NodePool struct {
	slab []GameNode
	next int
}

// Reserve grows the pool's backing slab so the next n MakeNode calls
// don't trigger further allocation.
func (p *NodePool) Reserve(n int) {
	if p.next+n <= len(p.slab) {
		return
	}
	fresh := make([]GameNode, n)
	p.slab = fresh
	p.next = 0
}

// MakeNode returns a zeroed GameNode backed by the pool's current slab,
// allocating a new slab if the current one is exhausted.
func (p *NodePool) MakeNode() *GameNode {
	if p.next >= len(p.slab) {
		p.slab = make([]GameNode, 4096)
		p.next = 0
	}
	n := &p.slab[p.next]
	p.next++
	n.Id = nextNodeID()
	return n
}

// ReleaseSubtree detaches n from its parent and next-move chain so the
// nodes under n become eligible for garbage collection, without
// requiring the whole pool's slab to be freed.
func (p *NodePool) ReleaseSubtree(n *GameNode) {
	if n.Parent != nil {
		if n.Parent.Next == n {
			n.Parent.Next = nil
		}
		if n.Parent.Variation == n {
			n.Parent.Variation = nil
		}
	}
	n.Parent = nil
	n.Next = nil
	n.Variation = nil
}
