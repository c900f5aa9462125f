// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avltree/fault"
	"github.com/bitmark-inc/avltree/script"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "interactive", HasArg: getoptions.NO_ARGUMENT, Short: 'i'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "key-type", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'k'},
		{Long: "script", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if err != nil {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] [--interactive] [--config-file=FILE] [--key-type=int|string] [--script=FILE] [command...]", program)
	}

	for _, name := range []string{"config-file", "key-type", "script"} {
		if len(options[name]) > 1 {
			exitwithstatus.Message("%s: only one %s option is allowed, %d were detected", program, name, len(options[name]))
		}
	}

	// read options and parse the configuration file
	configurationFile := ""
	if len(options["config-file"]) > 0 {
		configurationFile = options["config-file"][0]
	}
	theConfiguration, err := getConfiguration(configurationFile)
	if err != nil {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// command line overrides
	if len(options["key-type"]) > 0 {
		theConfiguration.KeyType, err = validKeyType(options["key-type"][0])
		if nil != err {
			exitwithstatus.Message("%s: %s", program, err)
		}
	}
	if len(options["script"]) > 0 {
		theConfiguration.Script = options["script"][0]
	}
	if len(options["verbose"]) > 0 {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); err != nil {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); err != nil {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	r := runner{
		configuration: theConfiguration,
		commands:      arguments,
		interactive:   len(options["interactive"]) > 0,
		quiet:         len(options["quiet"]) > 0,
		log:           log,
	}

	switch theConfiguration.KeyType {
	case keyTypeInt:
		err = run(r, script.NewIntSession(os.Stdout, logger.New("script")))
	case keyTypeString:
		err = run(r, script.NewStringSession(os.Stdout, logger.New("script")))
	default:
		err = fault.ErrInvalidKeyType
	}
	if nil != err {
		log.Criticalf("run error: %s", err)
		exitwithstatus.Message("%s: error: %s", program, err)
	}
}

// everything needed to drive a session
type runner struct {
	configuration *Configuration
	commands      []string
	interactive   bool
	quiet         bool
	log           *logger.L
}

// preload the tree then run commands from the command line, the
// script file, the console, or failing those standard input
func run[T any](r runner, session *script.Session[T]) error {
	session.StopOnError = r.configuration.StopOnError

	stopSignals := reportOnSignal(session.Stats(), r.log)
	defer stopSignals()

	if err := session.Preload(r.configuration.Preload); nil != err {
		return err
	}

	ranSomething := false
	for _, command := range r.commands {
		more, err := session.Execute(command)
		if nil != err {
			r.log.Errorf("command: %q  error: %s", command, err)
			return err
		}
		ranSomething = true
		if !more {
			return nil
		}
	}

	if "" != r.configuration.Script {
		f, err := os.Open(r.configuration.Script)
		if nil != err {
			return err
		}
		defer f.Close()

		r.log.Infof("script: %q", r.configuration.Script)
		if err := session.Run(script.NewScanner(f)); nil != err {
			return err
		}
		ranSomething = true
	}

	if r.interactive {
		return interact(session, r.log)
	}

	if !ranSomething {
		if err := session.Run(script.NewScanner(os.Stdin)); nil != err {
			return err
		}
	}

	if !r.quiet {
		session.Stats().Write(os.Stderr)
	}
	r.log.Infof("final count: %d  height: %d", session.Tree().Count(), session.Tree().Height())
	return nil
}

// print the counters and exit on SIGINT or SIGTERM
//
// returns a function to stop watching
func reportOnSignal(stats *script.Stats, log *logger.L) func() {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-ch:
			log.Infof("received signal: %v", sig)
			fmt.Fprintf(os.Stderr, "\nreceived signal: %v\n", sig)
			stats.Write(os.Stderr)
			logger.Finalise()
			os.Exit(1)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
