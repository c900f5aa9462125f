// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package script - drive an AVL tree from text commands
//
// each line holds one command followed by its arguments, split as a
// shell would so that string values may be quoted:
//
//   insert 10 20 30        add values
//   remove 20              remove values
//   find 10 40             report whether values are present
//   root | size | empty | height
//   print [data]           draw the tree
//   check                  run the tree consistency checks
//   clear                  release every node
//   stats | help | quit
//
// blank lines and lines starting with # are ignored.
package script
