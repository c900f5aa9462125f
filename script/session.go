// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/mattn/go-shellwords"

	"github.com/bitmark-inc/avltree/avl"
	"github.com/bitmark-inc/avltree/fault"
)

// ParseFunc - convert one command argument to a tree value
type ParseFunc[T any] func(string) (T, error)

// Session - a tree together with the state needed to drive it
type Session[T any] struct {
	tree  *avl.Tree[T]
	parse ParseFunc[T]
	out   io.Writer
	log   *logger.L
	stats Stats

	// StopOnError - make Run return at the first failing line
	StopOnError bool
}

// NewSession - session over an existing tree
func NewSession[T any](tree *avl.Tree[T], parse ParseFunc[T], out io.Writer, log *logger.L) *Session[T] {
	if nil == log {
		fault.Panic("script: nil logger")
	}
	return &Session[T]{
		tree:  tree,
		parse: parse,
		out:   out,
		log:   log,
	}
}

// NewIntSession - session over a new tree of 64 bit integers
func NewIntSession(out io.Writer, log *logger.L) *Session[int64] {
	parse := func(s string) (int64, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if nil != err {
			return 0, fmt.Errorf("%w: %q", fault.ErrInvalidValue, s)
		}
		return n, nil
	}
	return NewSession(avl.New[int64](), parse, out, log)
}

// NewStringSession - session over a new tree of strings
func NewStringSession(out io.Writer, log *logger.L) *Session[string] {
	parse := func(s string) (string, error) {
		return s, nil
	}
	return NewSession(avl.New[string](), parse, out, log)
}

// Tree - the tree being driven
func (s *Session[T]) Tree() *avl.Tree[T] {
	return s.tree
}

// SetOutput - direct command output to out, returns the previous writer
func (s *Session[T]) SetOutput(out io.Writer) io.Writer {
	previous := s.out
	s.out = out
	return previous
}

// Stats - counters for this session
func (s *Session[T]) Stats() *Stats {
	return &s.stats
}

// Preload - insert values without producing any output
func (s *Session[T]) Preload(values []string) error {
	for _, arg := range values {
		value, err := s.parse(arg)
		if nil != err {
			return err
		}
		if _, inserted := s.tree.Insert(value); inserted {
			s.stats.Inserted.Increment()
		} else {
			s.stats.Duplicates.Increment()
		}
	}
	s.log.Infof("preloaded: %d values  count: %d", len(values), s.tree.Count())
	return nil
}

// Run - execute lines until end of input or a quit command
//
// a failing line is reported and counted; Run only returns its error
// when StopOnError is set
func (s *Session[T]) Run(reader LineReader) error {
	for lineNumber := 1; ; lineNumber += 1 {
		line, err := reader.ReadLine()
		if io.EOF == err {
			return nil
		}
		if nil != err {
			return err
		}

		more, err := s.Execute(line)
		if nil != err {
			s.stats.Errors.Increment()
			s.log.Warnf("line: %d  error: %s", lineNumber, err)
			fmt.Fprintf(s.out, "error: %s\n", err)
			if s.StopOnError {
				return fmt.Errorf("%w: line: %d: %v", fault.ErrScriptFailed, lineNumber, err)
			}
		}
		if !more {
			return nil
		}
	}
}

// Execute - run a single command line
//
// returns false when the line asks to stop
func (s *Session[T]) Execute(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if "" == line || strings.HasPrefix(line, "#") {
		return true, nil
	}

	words, err := shellwords.Parse(line)
	if nil != err {
		return true, fmt.Errorf("%w: %s", fault.ErrInvalidValue, err)
	}
	if 0 == len(words) {
		return true, nil
	}
	s.stats.Commands.Increment()

	command := strings.ToLower(words[0])
	arguments := words[1:]
	s.log.Debugf("command: %s  arguments: %q", command, arguments)

	switch command {
	case "insert", "add":
		return true, s.eachValue(arguments, s.insert)

	case "remove", "delete":
		return true, s.eachValue(arguments, s.remove)

	case "find", "search":
		return true, s.eachValue(arguments, s.find)

	case "root":
		if value, ok := s.tree.RootValue(); ok {
			fmt.Fprintf(s.out, "root: %v\n", value)
		} else {
			fmt.Fprintf(s.out, "root: empty\n")
		}

	case "size", "count":
		fmt.Fprintf(s.out, "size: %d\n", s.tree.Count())

	case "empty":
		fmt.Fprintf(s.out, "empty: %t\n", s.tree.IsEmpty())

	case "height":
		fmt.Fprintf(s.out, "height: %d\n", s.tree.Height())

	case "print":
		printData := len(arguments) > 0 && "data" == arguments[0]
		depth := s.tree.Print(s.out, printData)
		fmt.Fprintf(s.out, "depth: %d\n", depth)

	case "check":
		if err := s.tree.Check(); nil != err {
			s.log.Errorf("check failed: %s", err)
			return true, err
		}
		fmt.Fprintf(s.out, "check: ok\n")

	case "clear":
		released := s.tree.Clear()
		s.log.Infof("cleared: %d nodes", released)
		fmt.Fprintf(s.out, "cleared: %d\n", released)

	case "stats":
		s.stats.Write(s.out)

	case "help", "?":
		fmt.Fprint(s.out, help)

	case "quit", "exit":
		return false, nil

	default:
		return true, fmt.Errorf("%w: %q", fault.ErrUnknownCommand, command)
	}
	return true, nil
}

const help = `commands:
  insert VALUE...   add values
  remove VALUE...   remove values
  find VALUE...     report whether values are present
  root              show the root value
  size              number of values
  empty             true if there are no values
  height            height of the tree, -1 if empty
  print [data]      draw the tree, with heights and balance factors
  check             run the consistency checks
  clear             remove all values
  stats             show the operation counters
  quit              stop
`

// apply an operation to each argument in turn
//
// every argument is attempted; the first error is returned
func (s *Session[T]) eachValue(arguments []string, operation func(T) error) error {
	if 0 == len(arguments) {
		return fault.ErrMissingArgument
	}
	var first error
	for _, arg := range arguments {
		value, err := s.parse(arg)
		if nil == err {
			err = operation(value)
		}
		if nil != err && nil == first {
			first = err
		}
	}
	return first
}

func (s *Session[T]) insert(value T) error {
	if _, inserted := s.tree.Insert(value); !inserted {
		s.stats.Duplicates.Increment()
		fmt.Fprintf(s.out, "exists: %v\n", value)
		return nil
	}
	s.stats.Inserted.Increment()
	s.log.Debugf("inserted: %v  count: %d", value, s.tree.Count())
	fmt.Fprintf(s.out, "added: %v\n", value)
	return nil
}

func (s *Session[T]) remove(value T) error {
	removed, err := s.tree.Remove(value)
	if nil != err {
		s.stats.NotFound.Increment()
		return fmt.Errorf("%w: %v", err, value)
	}
	s.stats.Removed.Increment()
	s.log.Debugf("removed: %v  count: %d", removed, s.tree.Count())
	fmt.Fprintf(s.out, "removed: %v\n", removed)
	return nil
}

func (s *Session[T]) find(value T) error {
	if stored, ok := s.tree.Lookup(value); ok {
		s.stats.Found.Increment()
		fmt.Fprintf(s.out, "found: %v\n", stored)
	} else {
		s.stats.Absent.Increment()
		fmt.Fprintf(s.out, "absent: %v\n", value)
	}
	return nil
}
