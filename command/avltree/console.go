// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/avltree/script"
)

const consolePrompt = "avl> "

// run a session from the controlling terminal in raw mode
func interact[T any](session *script.Session[T], log *logger.L) error {
	ttyFd, err := os.OpenFile("/dev/tty", os.O_RDWR, os.ModePerm)
	if err != nil {
		return err
	}
	defer ttyFd.Close()

	oldState, err := terminal.MakeRaw(int(ttyFd.Fd()))
	if err != nil {
		return err
	}
	defer terminal.Restore(int(ttyFd.Fd()), oldState)

	console := terminal.NewTerminal(ttyFd, consolePrompt)
	log.Info("interactive session")

	// terminal output translates newlines for raw mode
	previous := session.SetOutput(console)
	defer session.SetOutput(previous)

	return session.Run(console)
}
