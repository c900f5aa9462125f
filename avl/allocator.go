// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avltree/fault"
)

// Handle - identifies a node within its tree's arena
type Handle uint32

// the absent node
const none Handle = 0

// a node in the tree
type node[T any] struct {
	value   T      // must be comparable by the tree's compare function
	up      Handle // parent node, none for the root
	left    Handle // left sub-tree
	right   Handle // right sub-tree
	height  int    // 0 for a leaf
	balance int    // height(right) - height(left): -1, 0, +1 when balanced
	inUse   bool   // false while on the free list
}

// allocate a new leaf node, reuses released slots if any are available
func (tree *Tree[T]) newNode(value T, up Handle) Handle {
	h := tree.free
	if none == h {
		h = Handle(len(tree.nodes))
		if int(h) != len(tree.nodes) { // Handle overflow
			fault.Panicf("avl: arena exhausted at %d nodes", len(tree.nodes))
		}
		tree.nodes = append(tree.nodes, node[T]{})
	} else {
		if tree.nodes[h].inUse {
			fault.Panicf("avl: free list corrupt at node: %d", h)
		}
		tree.free = tree.nodes[h].up
	}
	tree.nodes[h] = node[T]{
		value:   value,
		up:      up,
		left:    none,
		right:   none,
		height:  0,
		balance: 0,
		inUse:   true,
	}
	return h
}

// release a node and keep its slot on the free list
func (tree *Tree[T]) freeNode(h Handle) {
	if !tree.valid(h) {
		fault.Panicf("avl: release of invalid node: %d", h)
	}
	tree.nodes[h] = node[T]{
		up: tree.free, // use as free list pointer
	}
	tree.free = h
}

// check that a handle names a node currently in the tree
func (tree *Tree[T]) valid(h Handle) bool {
	return none != h && int(h) < len(tree.nodes) && tree.nodes[h].inUse
}

// Stats - number of arena slots allocated and how many are released
func (tree *Tree[T]) Stats() (total int, free int) {
	for h := tree.free; none != h; h = tree.nodes[h].up {
		free += 1
	}
	return len(tree.nodes) - 1, free
}

// Clear - release every node, leaving an empty tree
//
// nodes are visited breadth first, each exactly once, before being
// released.  Returns the number of nodes released.
func (tree *Tree[T]) Clear() int {
	released := 0
	if none != tree.root {
		queue := []Handle{tree.root}
		for len(queue) > 0 {
			h := queue[0]
			queue = queue[1:]

			n := &tree.nodes[h]
			if none != n.left {
				queue = append(queue, n.left)
			}
			if none != n.right {
				queue = append(queue, n.right)
			}
			tree.freeNode(h)
			released += 1
		}
	}
	if released != tree.count {
		fault.Panicf("avl: clear released: %d nodes  expected: %d", released, tree.count)
	}

	// all slots are free so the arena can restart
	tree.nodes = tree.nodes[:1]
	tree.free = none
	tree.root = none
	tree.count = 0
	return released
}
