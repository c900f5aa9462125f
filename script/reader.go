// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"bufio"
	"io"
)

// LineReader - source of command lines
//
// returns io.EOF when no more lines are available; satisfied by
// golang.org/x/crypto/ssh/terminal.Terminal for interactive use
type LineReader interface {
	ReadLine() (string, error)
}

type scanner struct {
	s *bufio.Scanner
}

// NewScanner - line reader over a stream such as a script file
func NewScanner(r io.Reader) LineReader {
	return &scanner{
		s: bufio.NewScanner(r),
	}
}

// ReadLine - next line without its terminator
func (s *scanner) ReadLine() (string, error) {
	if s.s.Scan() {
		return s.s.Text(), nil
	}
	if err := s.s.Err(); nil != err {
		return "", err
	}
	return "", io.EOF
}
