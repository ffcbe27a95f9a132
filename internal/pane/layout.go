package pane

import (
	"github.com/go-errors/errors"
)

// Orientation is the split axis of a Split node.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Rect is a screen-space rectangle assigned to a node during layout.
type Rect struct {
	X, Y, W, H int
}

// Node is the tagged-variant layout tree node: exactly one of Leaf or
// Split is populated, selected by Kind.
type Node struct {
	Kind NodeKind

	// Leaf fields
	Pane *Pane

	// Split fields
	Orientation Orientation
	Ratio       float32
	ChildA      *Node
	ChildB      *Node

	Rect   Rect
	Parent *Node // weak back-pointer; never owning
}

// NodeKind tags which variant a Node is.
type NodeKind int

const (
	KindLeaf NodeKind = iota
	KindSplit
)

// NewLeaf creates a Leaf node owning p.
func NewLeaf(p *Pane) *Node {
	return &Node{Kind: KindLeaf, Pane: p}
}

// Tree owns the layout's root node and the background pane stash.
type Tree struct {
	Root   *Node
	Active *Node

	stash []*Pane // FIFO of detached panes not in the tree
}

// NewTree creates a tree with a single root Leaf.
func NewTree(root *Pane) *Tree {
	leaf := NewLeaf(root)
	return &Tree{Root: leaf, Active: leaf}
}

// LeafCount returns the number of Leaf nodes in the tree.
func (t *Tree) LeafCount() int {
	return countLeaves(t.Root)
}

func countLeaves(n *Node) int {
	if n == nil {
		return 0
	}
	if n.Kind == KindLeaf {
		return 1
	}
	return countLeaves(n.ChildA) + countLeaves(n.ChildB)
}

// StashLen returns the number of detached panes awaiting re-attachment.
func (t *Tree) StashLen() int {
	return len(t.stash)
}

// Stash returns a copy of the background stash in FIFO order, indexed
// the same way Reattach(i) expects.
func (t *Tree) Stash() []*Pane {
	out := make([]*Pane, len(t.stash))
	copy(out, t.stash)
	return out
}

// splitOrientation picks a split axis from the leaf's current shape:
// wide leaves split vertically (side by side), tall/narrow leaves
// split horizontally (stacked).
func splitOrientation(r Rect) Orientation {
	if r.W > 3*r.H {
		return Vertical
	}
	return Horizontal
}

// Add splits the active Leaf, moving its pane into childA and a freshly
// created pane (via newPane) into childB, which becomes the new active
// leaf.
func (t *Tree) Add(newPane func() *Pane) {
	leaf := t.Active
	if leaf == nil || leaf.Kind != KindLeaf {
		return
	}

	orientation := splitOrientation(leaf.Rect)

	childA := &Node{Kind: KindLeaf, Pane: leaf.Pane, Parent: leaf}
	childB := &Node{Kind: KindLeaf, Pane: newPane(), Parent: leaf}

	leaf.Kind = KindSplit
	leaf.Pane = nil
	leaf.Orientation = orientation
	leaf.Ratio = 0.5
	leaf.ChildA = childA
	leaf.ChildB = childB

	t.Active = childB
	t.Recompute(leaf.Rect)
}

// Detach moves the active Leaf's pane into the background stash and
// removes the Leaf from the tree, promoting its sibling in place. Fails
// if the active Leaf is the tree's sole root.
func (t *Tree) Detach() error {
	leaf := t.Active
	if leaf == nil || leaf.Kind != KindLeaf {
		return errors.Errorf("cannot detach: no active leaf")
	}
	parent := leaf.Parent
	if parent == nil {
		return errors.Errorf("cannot detach last pane")
	}

	t.stash = append(t.stash, leaf.Pane)

	var sibling *Node
	if parent.ChildA == leaf {
		sibling = parent.ChildB
	} else {
		sibling = parent.ChildA
	}

	// The sibling replaces parent in place.
	grandparent := parent.Parent
	sibling.Parent = grandparent
	if grandparent == nil {
		t.Root = sibling
	} else if grandparent.ChildA == parent {
		grandparent.ChildA = sibling
	} else {
		grandparent.ChildB = sibling
	}

	t.Active = firstLeaf(sibling)
	t.Recompute(t.Root.Rect)
	return nil
}

// firstLeaf descends always via ChildA until a Leaf is found, the
// tie-break rule for which leaf gets focus after a detach.
func firstLeaf(n *Node) *Node {
	for n.Kind == KindSplit {
		n = n.ChildA
	}
	return n
}

// Reattach pops stash[i], then splits the active Leaf exactly as Add
// would, placing the current pane in childA and the popped pane (the new
// focus) in childB.
func (t *Tree) Reattach(i int) error {
	if i < 0 || i >= len(t.stash) {
		return errors.Errorf("reattach: index %d out of range (stash has %d)", i, len(t.stash))
	}
	popped := t.stash[i]
	t.stash = append(t.stash[:i], t.stash[i+1:]...)

	t.Add(func() *Pane { return popped })
	return nil
}

// Switch cycles focus through Leaves in in-order traversal.
func (t *Tree) Switch() {
	leaves := t.leavesInOrder()
	if len(leaves) == 0 {
		return
	}
	for i, l := range leaves {
		if l == t.Active {
			t.Active = leaves[(i+1)%len(leaves)]
			return
		}
	}
	t.Active = leaves[0]
}

// SwitchTo focuses the pane with the given 1-based index among leaves in
// in-order traversal (1 is the leftmost/topmost leaf).
func (t *Tree) SwitchTo(n int) error {
	leaves := t.leavesInOrder()
	if n < 1 || n > len(leaves) {
		return errors.Errorf("switch: pane %d out of range (1-%d)", n, len(leaves))
	}
	t.Active = leaves[n-1]
	return nil
}

func (t *Tree) leavesInOrder() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Kind == KindLeaf {
			out = append(out, n)
			return
		}
		walk(n.ChildA)
		walk(n.ChildB)
	}
	walk(t.Root)
	return out
}

// Leaves exposes the current in-order leaf list, e.g. for the coordinator
// to pump every pane's session each tick.
func (t *Tree) Leaves() []*Node {
	return t.leavesInOrder()
}

// SplitAt returns the Split node whose divider line covers screen
// position (x, y), or nil if no divider is there. Used by the
// coordinator to detect a mouse-down on a divider and begin a drag.
func (t *Tree) SplitAt(x, y int) *Node {
	return splitAt(t.Root, x, y)
}

func splitAt(n *Node, x, y int) *Node {
	if n == nil || n.Kind != KindSplit {
		return nil
	}
	r := n.Rect
	if n.Orientation == Vertical {
		col := n.ChildA.Rect.X + n.ChildA.Rect.W
		if x == col && y >= r.Y && y < r.Y+r.H {
			return n
		}
	} else {
		row := n.ChildA.Rect.Y + n.ChildA.Rect.H
		if y == row && x >= r.X && x < r.X+r.W {
			return n
		}
	}
	if found := splitAt(n.ChildA, x, y); found != nil {
		return found
	}
	return splitAt(n.ChildB, x, y)
}

// AllPanes returns every Pane the tree owns, both the ones occupying a
// Leaf and the ones parked in the background stash. The coordinator
// uses this on shutdown to broadcast an interrupt to every child process,
// not just the ones currently visible.
func (t *Tree) AllPanes() []*Pane {
	leaves := t.leavesInOrder()
	out := make([]*Pane, 0, len(leaves)+len(t.stash))
	for _, leaf := range leaves {
		out = append(out, leaf.Pane)
	}
	out = append(out, t.stash...)
	return out
}

// Recompute assigns rectangles root-down from rect and resizes every
// Leaf's Pane grid to match, the resize cascade that runs on every
// split, detach, and terminal resize.
func (t *Tree) Recompute(rect Rect) {
	recompute(t.Root, rect)
}

func recompute(n *Node, r Rect) {
	if n == nil {
		return
	}
	n.Rect = r
	switch n.Kind {
	case KindLeaf:
		if n.Pane != nil {
			innerW, innerH := innerSize(r)
			n.Pane.Resize(innerW, innerH)
		}
	case KindSplit:
		ratio := n.Ratio
		if ratio <= 0 || ratio >= 1 {
			ratio = 0.5
		}
		if n.Orientation == Vertical {
			aw := int(float32(r.W) * ratio)
			if aw < 1 {
				aw = 1
			}
			bx := r.X + aw + 1
			bw := r.W - aw - 1
			if bw < 1 {
				bw = 1
			}
			recompute(n.ChildA, Rect{X: r.X, Y: r.Y, W: aw, H: r.H})
			recompute(n.ChildB, Rect{X: bx, Y: r.Y, W: bw, H: r.H})
		} else {
			ah := int(float32(r.H) * ratio)
			if ah < 1 {
				ah = 1
			}
			by := r.Y + ah + 1
			bh := r.H - ah - 1
			if bh < 1 {
				bh = 1
			}
			recompute(n.ChildA, Rect{X: r.X, Y: r.Y, W: r.W, H: ah})
			recompute(n.ChildB, Rect{X: r.X, Y: by, W: r.W, H: bh})
		}
	}
}

// innerSize is the cell area available to a Leaf's pane, reserving no
// border by default (dividers live between Leaves, not around them).
func innerSize(r Rect) (w, h int) {
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	return r.W, r.H
}

// SetRatio clamps and sets a Split's ratio, then re-cascades the resize —
// used by the mouse-drag divider feature.
func (t *Tree) SetRatio(n *Node, ratio float32) {
	if n == nil || n.Kind != KindSplit {
		return
	}
	if ratio < 0.1 {
		ratio = 0.1
	}
	if ratio > 0.9 {
		ratio = 0.9
	}
	n.Ratio = ratio
	t.Recompute(t.Root.Rect)
}
