// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"fmt"
	"io"

	"github.com/bitmark-inc/avltree/counter"
)

// Stats - operation counters for a session
//
// safe to read from a signal handler while the session runs
type Stats struct {
	Commands   counter.Counter
	Errors     counter.Counter
	Inserted   counter.Counter
	Duplicates counter.Counter
	Removed    counter.Counter
	NotFound   counter.Counter
	Found      counter.Counter
	Absent     counter.Counter
}

// Write - one "name: value" line per counter
func (s *Stats) Write(w io.Writer) {
	items := []struct {
		name  string
		value *counter.Counter
	}{
		{"commands", &s.Commands},
		{"errors", &s.Errors},
		{"inserted", &s.Inserted},
		{"duplicates", &s.Duplicates},
		{"removed", &s.Removed},
		{"not found", &s.NotFound},
		{"found", &s.Found},
		{"absent", &s.Absent},
	}
	for _, item := range items {
		fmt.Fprintf(w, "%s: %d\n", item.name, item.value.Uint64())
	}
}
