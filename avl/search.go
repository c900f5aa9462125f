// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Find - handle of the node holding a value equal to value
func (tree *Tree[T]) Find(value T) (Handle, bool) {
	path, found := tree.locate(value)
	if !found {
		return none, false
	}
	return path[len(path)-1], true
}

// Lookup - copy of the stored value equal to value
func (tree *Tree[T]) Lookup(value T) (T, bool) {
	h, found := tree.Find(value)
	if !found {
		var zero T
		return zero, false
	}
	return tree.nodes[h].value, true
}

// Contains - true if a value equal to value is stored
func (tree *Tree[T]) Contains(value T) bool {
	_, found := tree.Find(value)
	return found
}

// walk from the root toward value recording every node visited
//
// if found the last element of the path holds value, otherwise it is
// the node that would become the parent of value.  An empty tree
// gives an empty path.
func (tree *Tree[T]) locate(value T) ([]Handle, bool) {
	path := make([]Handle, 0, tree.Height()+1)
	p := tree.root
	for none != p {
		path = append(path, p)
		switch c := tree.compare(tree.nodes[p].value, value); {
		case c > 0: // p.value > value
			p = tree.nodes[p].left
		case c < 0: // p.value < value
			p = tree.nodes[p].right
		default:
			return path, true
		}
	}
	return path, false
}
