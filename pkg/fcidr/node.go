package fcidr

import "github.com/cidrctl/fcidr/pkg/cidr"

// node is one trie node, covering a fixed block and owning its two
// children by value-like exclusive pointers. There is exactly one parent
// per node and no shared interior mutability: the trie is a plain tree,
// recursed into with the call stack, never deeper than 33 levels.
type node struct {
	block       cidr.Cidr
	state       label
	left, right *node
}

func newLeaf(block cidr.Cidr, state label) *node {
	return &node{block: block, state: state}
}

// setLabel is the single recursive procedure shared by union (target =
// included) and difference (target = excluded): it writes target over
// the portion of the trie covered by x, splitting pure leaves into
// children only where the write doesn't cover a whole node.
func setLabel(n *node, x cidr.Cidr, target label) {
	c := n.block

	// Outside: n and x disjoint. Descent never produces this in practice
	// (each recursive call picks the child whose block contains x), but
	// it is handled here so the function is total and never panics on a
	// valid Cidr.
	if !overlaps(c, x) {
		return
	}

	// Exact match or x strictly contains c: the whole node becomes target,
	// discarding any subtree.
	if c.Equal(x) || x.Contains(c) {
		n.state = target
		n.left, n.right = nil, nil
		return
	}

	// x is strictly contained in c from here on.
	if n.state == target {
		return // already entirely target; nothing to change
	}

	if n.state != split {
		// Materialize: a pure leaf holding the non-target label must be
		// split into two children inheriting that former label before we
		// can narrow the write to the half that contains x.
		left, right, _ := c.Split()
		n.left = newLeaf(left, n.state)
		n.right = newLeaf(right, n.state)
		n.state = split
	}

	// Bit at position 31 - c.Prefix() of x.Network() selects which half
	// of c contains x.
	shift := 31 - uint32(c.Prefix())
	if (x.Network()>>shift)&1 == 0 {
		setLabel(n.left, x, target)
	} else {
		setLabel(n.right, x, target)
	}

	collapse(n)
}

// collapse enforces the canonicalization invariant: a Split node whose
// two children are both the same pure label replaces itself with that
// label. Applied bottom-up on every return from setLabel, this keeps the
// trie canonical after every mutation.
func collapse(n *node) {
	if n.state != split {
		return
	}
	if n.left.state != split && n.left.state == n.right.state {
		n.state = n.left.state
		n.left, n.right = nil, nil
	}
}

// complement is a structural involution: every pure label flips, Split
// recurses. No collapse pass is needed — a pre-complement Split already
// satisfied the canonicalization invariant (unequal pure children, or
// itself Split), and flipping labels pointwise preserves "unequal".
func complement(n *node) {
	switch n.state {
	case excluded:
		n.state = included
	case included:
		n.state = excluded
	case split:
		complement(n.left)
		complement(n.right)
	}
}

// isSuperset reports whether every address in x is included, given that
// n.block is known (by the caller) to contain x or equal x.
func isSuperset(n *node, x cidr.Cidr) bool {
	c := n.block

	if x.Contains(c) {
		// x reaches past both of n's children (or equals c exactly): the
		// whole subtree rooted at n must be included.
		return allIncluded(n)
	}

	switch n.state {
	case excluded:
		return false
	case included:
		return true
	default: // split; x is strictly contained in c, so it fits in exactly one child
		_, right, _ := c.Split()
		if right.Contains(x) {
			return isSuperset(n.right, x)
		}
		return isSuperset(n.left, x)
	}
}

// allIncluded reports whether every address under n is included. Used
// whenever a superset query reaches past both of a node's children, at
// which point there is no common x left to test against — only whether
// the whole subtree is included.
func allIncluded(n *node) bool {
	switch n.state {
	case excluded:
		return false
	case included:
		return true
	default:
		return allIncluded(n.left) && allIncluded(n.right)
	}
}

// walk performs the canonical ascending in-order traversal, yielding the
// block of each Included node. It stops early if yield returns false.
func walk(n *node, yield func(cidr.Cidr) bool) bool {
	switch n.state {
	case excluded:
		return true
	case included:
		return yield(n.block)
	default:
		if !walk(n.left, yield) {
			return false
		}
		return walk(n.right, yield)
	}
}

func overlaps(a, b cidr.Cidr) bool {
	return a.First() <= b.Last() && b.First() <= a.Last()
}
