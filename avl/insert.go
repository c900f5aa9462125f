// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Insert - insert a new value into the tree
//
// returns the handle of the new node and true, or if an equal value is
// already present the handle of that node and false with the tree left
// unchanged
func (tree *Tree[T]) Insert(value T) (Handle, bool) {
	if none == tree.root {
		tree.root = tree.newNode(value, none)
		tree.count = 1
		return tree.root, true
	}

	path, found := tree.locate(value)
	top := len(path) - 1
	if found {
		return path[top], false
	}

	// newNode may grow the arena, so index again afterwards
	parent := path[top]
	h := tree.newNode(value, parent)
	if tree.compare(tree.nodes[parent].value, value) > 0 {
		tree.nodes[parent].left = h
	} else {
		tree.nodes[parent].right = h
	}
	tree.count += 1

	tree.rebalance(path)
	return h, true
}
