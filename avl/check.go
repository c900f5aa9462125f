// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"

	"github.com/bitmark-inc/avltree/fault"
)

// Check - run all the consistency checks
//
// returns an error wrapping fault.ErrInconsistentTree describing the
// first failure found
func (tree *Tree[T]) Check() error {
	if err := tree.checkCount(); nil != err {
		return err
	}
	if err := tree.checkUp(); nil != err {
		return err
	}
	if err := tree.checkOrder(); nil != err {
		return err
	}
	return tree.checkHeights()
}

// CheckUp - check the up links for consistency
func (tree *Tree[T]) CheckUp() bool {
	return nil == tree.checkUp()
}

// CheckHeights - check the cached heights and balance factors and
// that every node is balanced
func (tree *Tree[T]) CheckHeights() bool {
	return nil == tree.checkHeights()
}

// CheckOrder - check each value is between those of its ancestors
func (tree *Tree[T]) CheckOrder() bool {
	return nil == tree.checkOrder()
}

// CheckCount - check the count matches the reachable nodes
func (tree *Tree[T]) CheckCount() bool {
	return nil == tree.checkCount()
}

func inconsistent(format string, arguments ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{fault.ErrInconsistentTree}, arguments...)...)
}

// post-order list of the reachable nodes
func (tree *Tree[T]) postOrder() []Handle {
	nodes := make([]Handle, 0, tree.count)
	if none == tree.root {
		return nodes
	}

	// reversed (node, right, left) pre-order is post-order
	stack := []Handle{tree.root}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes = append(nodes, h)
		if l := tree.nodes[h].left; none != l {
			stack = append(stack, l)
		}
		if r := tree.nodes[h].right; none != r {
			stack = append(stack, r)
		}
		if len(nodes) > len(tree.nodes) {
			break // cycle
		}
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

func (tree *Tree[T]) checkCount() error {
	if (none == tree.root) != (0 == tree.count) {
		return inconsistent("root: %d with count: %d", tree.root, tree.count)
	}
	reachable := len(tree.postOrder())
	if reachable != tree.count {
		return inconsistent("reachable nodes: %d  count: %d", reachable, tree.count)
	}
	return nil
}

func (tree *Tree[T]) checkUp() error {
	if none != tree.root && none != tree.nodes[tree.root].up {
		return inconsistent("root: %d has parent: %d", tree.root, tree.nodes[tree.root].up)
	}
	for _, h := range tree.postOrder() {
		n := &tree.nodes[h]
		if !n.inUse {
			return inconsistent("released node: %d is reachable", h)
		}
		for _, child := range []Handle{n.left, n.right} {
			if none != child && tree.nodes[child].up != h {
				return inconsistent("fail at node: %v  actual parent: %d  expected: %d", tree.nodes[child].value, tree.nodes[child].up, h)
			}
		}
	}
	return nil
}

func (tree *Tree[T]) checkOrder() error {
	for _, h := range tree.postOrder() {
		n := &tree.nodes[h]
		// it is enough to compare against the nearest neighbours in
		// each sub-tree: rightmost of left, leftmost of right
		if none != n.left {
			p := n.left
			for none != tree.nodes[p].right {
				p = tree.nodes[p].right
			}
			if tree.compare(tree.nodes[p].value, n.value) >= 0 {
				return inconsistent("left sub-tree value: %v not less than: %v", tree.nodes[p].value, n.value)
			}
		}
		if none != n.right {
			p := n.right
			for none != tree.nodes[p].left {
				p = tree.nodes[p].left
			}
			if tree.compare(tree.nodes[p].value, n.value) <= 0 {
				return inconsistent("right sub-tree value: %v not greater than: %v", tree.nodes[p].value, n.value)
			}
		}
	}
	return nil
}

func (tree *Tree[T]) checkHeights() error {
	// children before parents so heights can be compared directly
	for _, h := range tree.postOrder() {
		n := &tree.nodes[h]
		lh := tree.height(n.left)
		rh := tree.height(n.right)
		height := lh + 1
		if rh >= lh {
			height = rh + 1
		}
		if n.height != height {
			return inconsistent("node: %v  height: %d  expected: %d", n.value, n.height, height)
		}
		if n.balance != rh-lh {
			return inconsistent("node: %v  balance: %d  expected: %d", n.value, n.balance, rh-lh)
		}
		if n.balance < -1 || n.balance > +1 {
			return inconsistent("node: %v  unbalanced: %+d", n.value, n.balance)
		}
	}
	return nil
}
