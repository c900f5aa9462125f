// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

import (
	"fmt"
	"io"
)

// to control the print routine
type branch int

const (
	root  branch = iota
	left  branch = iota
	right branch = iota
)

// Print - display an ASCII graphic representation of the tree
//
// the tree is drawn sideways, right sub-trees above left ones.  With
// printData each node also shows its height and balance factor.
// Returns the maximum depth of the tree.
func (tree *Tree[T]) Print(w io.Writer, printData bool) int {
	return tree.printTree(w, tree.root, "", root, printData)
}

// internal print - returns the maximum depth of the tree
func (tree *Tree[T]) printTree(w io.Writer, h Handle, prefix string, br branch, printData bool) int {
	if none == h {
		return 0
	}
	n := &tree.nodes[h]
	rd := 0
	ld := 0
	if none != n.right {
		t := "       "
		if left == br {
			t = "|      "
		}
		rd = tree.printTree(w, n.right, prefix+t, right, printData)
	}
	switch br {
	case root:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case left:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case right:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	up := interface{}(nil)
	if none != n.up {
		up = tree.nodes[n.up].value
	}
	if printData {
		fmt.Fprintf(w, "%v ^%v h:%d %+2d\n", n.value, up, n.height, n.balance)
	} else {
		fmt.Fprintf(w, "%v ^%v\n", n.value, up)
	}
	if none != n.left {
		t := "       "
		if right == br {
			t = "|      "
		}
		ld = tree.printTree(w, n.left, prefix+t, left, printData)
	}
	if rd > ld {
		return 1 + rd
	}
	return 1 + ld
}
