// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"golang.org/x/exp/constraints"

	"github.com/bitmark-inc/avltree/fault"
)

// CompareFunc - three-way comparison giving a total order
//
// negative if a < b, zero if a == b, positive if a > b
type CompareFunc[T any] func(a T, b T) int

// Tree - type to hold the root node of a tree
type Tree[T any] struct {
	nodes   []node[T] // arena, slot 0 is never used
	free    Handle    // head of the list of released slots
	root    Handle
	count   int
	compare CompareFunc[T]
}

// New - create an initially empty tree ordered by < on the values
func New[T constraints.Ordered]() *Tree[T] {
	return NewWithCompare(func(a T, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return +1
		default:
			return 0
		}
	})
}

// NewWithCompare - create an initially empty tree ordered by compare
func NewWithCompare[T any](compare CompareFunc[T]) *Tree[T] {
	if nil == compare {
		fault.Panic("avl: nil compare function")
	}
	return &Tree[T]{
		nodes:   make([]node[T], 1, 16),
		free:    none,
		root:    none,
		count:   0,
		compare: compare,
	}
}

// IsEmpty - true if tree contains no data
func (tree *Tree[T]) IsEmpty() bool {
	return none == tree.root
}

// Count - number of nodes currently in the tree
func (tree *Tree[T]) Count() int {
	return tree.count
}

// Height - height of the root node, -1 for an empty tree
func (tree *Tree[T]) Height() int {
	return tree.height(tree.root)
}

// Root - handle of the root node
func (tree *Tree[T]) Root() (Handle, bool) {
	return tree.root, none != tree.root
}

// RootValue - copy of the value held in the root node
func (tree *Tree[T]) RootValue() (T, bool) {
	return tree.Get(tree.root)
}

// Value - pointer to the value held in a node for in-place update
//
// the ordering of the value must not be changed.  The pointer is only
// valid until the next Insert, which may grow the arena.  Returns nil
// for an invalid handle.
func (tree *Tree[T]) Value(h Handle) *T {
	if !tree.valid(h) {
		return nil
	}
	return &tree.nodes[h].value
}

// Get - copy of the value held in a node
func (tree *Tree[T]) Get(h Handle) (T, bool) {
	if !tree.valid(h) {
		var zero T
		return zero, false
	}
	return tree.nodes[h].value, true
}

// Clone - deep copy of the tree
//
// node handles are preserved, so a handle from the original names the
// same value in the copy; values themselves are copied by assignment
func (tree *Tree[T]) Clone() *Tree[T] {
	nodes := make([]node[T], len(tree.nodes), cap(tree.nodes))
	copy(nodes, tree.nodes)
	return &Tree[T]{
		nodes:   nodes,
		free:    tree.free,
		root:    tree.root,
		count:   tree.count,
		compare: tree.compare,
	}
}
