// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package avl - an AVL balanced tree of unique values with parent
// links, held in a per-tree arena of nodes
//
// Note: an individual tree is not thread safe, so either access only
//       in a single go routine or use mutex/rwmutex to restrict
//       access.
//
// Nodes are addressed by Handle, an index into the arena, rather than
// by pointer.  A node never moves while it is in the tree, rotations
// only rewrite links, so a handle stays valid until its value is
// removed.  Removing a value that has two sub-trees copies the in-order
// successor into the removed value's node and releases the successor's
// node instead, so the successor's old handle is invalidated too.
//
// Every node caches its height (0 for a leaf, -1 for an absent child)
// and its balance factor, height(right) - height(left).  After each
// insert or remove the ancestors of the changed position are refreshed
// from the bottom up, rotating where the balance factor reaches ±2.
// The walk uses an explicit path stack rather than recursion.
package avl
