// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"github.com/bitmark-inc/avltree/fault"
)

// Remove - removes a specific value from the tree
//
// returns the stored value that was removed, or
// fault.ErrElementNotFound with the tree unchanged
func (tree *Tree[T]) Remove(value T) (T, error) {
	path, found := tree.locate(value)
	if !found {
		var zero T
		return zero, fault.ErrElementNotFound
	}

	top := len(path) - 1
	q := path[top]
	removed := tree.nodes[q].value // preserve the value part

	n := &tree.nodes[q]
	switch {
	case none == n.left && none == n.right:
		path = tree.removeLeaf(path)
	case none == n.left || none == n.right:
		path = tree.removeOneSubtree(path)
	default:
		path = tree.removeTwoSubtrees(path)
	}
	tree.count -= 1

	tree.rebalance(path)
	return removed, nil
}

// remove the leaf at the top of path
//
// returns the ancestors that need rebalancing
func (tree *Tree[T]) removeLeaf(path []Handle) []Handle {
	top := len(path) - 1
	q := path[top]
	tree.replaceChild(tree.nodes[q].up, q, none)
	tree.freeNode(q)
	return path[:top]
}

// remove the node at the top of path, which has exactly one sub-tree,
// splicing that sub-tree into its place
//
// returns the ancestors that need rebalancing
func (tree *Tree[T]) removeOneSubtree(path []Handle) []Handle {
	top := len(path) - 1
	q := path[top]
	child := tree.nodes[q].left
	if none == child {
		child = tree.nodes[q].right
	}
	tree.replaceChild(tree.nodes[q].up, q, child)
	tree.freeNode(q)
	return path[:top]
}

// remove the value at the top of path, which has two sub-trees
//
// the in-order successor (leftmost node of the right sub-tree) has its
// value moved into the node and the successor's node is removed in its
// place; it has no left sub-tree so only the leaf or one sub-tree case
// applies.  Returns the ancestors of the successor's former position.
func (tree *Tree[T]) removeTwoSubtrees(path []Handle) []Handle {
	q := path[len(path)-1]

	s := tree.nodes[q].right
	path = append(path, s)
	for l := tree.nodes[s].left; none != l; l = tree.nodes[s].left {
		s = l
		path = append(path, s)
	}

	tree.nodes[q].value = tree.nodes[s].value
	if none == tree.nodes[s].right {
		return tree.removeLeaf(path)
	}
	return tree.removeOneSubtree(path)
}
