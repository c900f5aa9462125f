// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avltree/fault"
)

// height of a sub-tree, -1 if absent
func (tree *Tree[T]) height(h Handle) int {
	if none == h {
		return -1
	}
	return tree.nodes[h].height
}

// refresh the cached height and balance factor of a node from its
// children, which must already be up to date
func (tree *Tree[T]) update(h Handle) {
	n := &tree.nodes[h]
	lh := tree.height(n.left)
	rh := tree.height(n.right)

	// a tie counts as the right side
	if rh >= lh {
		n.height = rh + 1
	} else {
		n.height = lh + 1
	}
	n.balance = rh - lh
}

// unstack a path of nodes, deepest first, updating and balancing each
//
// a rotation replaces the node at a position, but the parent of that
// position is the next entry on the stack so the walk just continues
func (tree *Tree[T]) rebalance(path []Handle) {
	for top := len(path) - 1; top >= 0; top -= 1 {
		tree.balance(path[top])
	}
}

// update a node and rotate if it has become unbalanced
func (tree *Tree[T]) balance(h Handle) {
	tree.update(h)

	switch tree.nodes[h].balance {
	case -2: // left heavy
		l := tree.nodes[h].left
		if +1 == tree.nodes[l].balance {
			tree.rotateLeft(l) // left-right case
		}
		tree.rotateRight(h)

	case +2: // right heavy
		r := tree.nodes[h].right
		if -1 == tree.nodes[r].balance {
			tree.rotateRight(r) // right-left case
		}
		tree.rotateLeft(h)
	}
}

// rotate right on node a with left child b
//
//	    a            b
//	   / \          / \
//	  b   z   →    x   a
//	 / \              / \
//	x   y            y   z
func (tree *Tree[T]) rotateRight(a Handle) {
	b := tree.nodes[a].left
	if none == b {
		fault.Panicf("avl: right rotation at node: %d without left child", a)
	}

	tree.replaceChild(tree.nodes[a].up, a, b)

	y := tree.nodes[b].right
	tree.nodes[a].left = y
	if none != y {
		tree.nodes[y].up = a
	}

	tree.nodes[b].right = a
	tree.nodes[a].up = b

	// b's height depends on a's
	tree.update(a)
	tree.update(b)
}

// rotate left on node a with right child b, mirror of rotateRight
func (tree *Tree[T]) rotateLeft(a Handle) {
	b := tree.nodes[a].right
	if none == b {
		fault.Panicf("avl: left rotation at node: %d without right child", a)
	}

	tree.replaceChild(tree.nodes[a].up, a, b)

	y := tree.nodes[b].left
	tree.nodes[a].right = y
	if none != y {
		tree.nodes[y].up = a
	}

	tree.nodes[b].left = a
	tree.nodes[a].up = b

	tree.update(a)
	tree.update(b)
}

// make child take the place of old below parent, or at the root when
// parent is none.  child may be none.
func (tree *Tree[T]) replaceChild(parent Handle, old Handle, child Handle) {
	if none != child {
		tree.nodes[child].up = parent
	}
	if none == parent {
		tree.root = child
		return
	}
	p := &tree.nodes[parent]
	switch old {
	case p.left:
		p.left = child
	case p.right:
		p.right = child
	default:
		fault.Panicf("avl: node: %d is not a child of: %d", old, parent)
	}
}
