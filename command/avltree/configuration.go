// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/avltree/configuration"
	"github.com/bitmark-inc/avltree/fault"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "." // same directory as the config file, or the current directory
	defaultKeyType       = keyTypeInt

	defaultLogDirectory = "log"
	defaultLogFile      = "avltree.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// supported value types
const (
	keyTypeInt    = "int"
	keyTypeString = "string"
)

// to hold log levels
type LoglevelMap map[string]string

// fresh copy of the default levels, the configuration file may add to it
func defaultLogLevels() LoglevelMap {
	return LoglevelMap{
		logger.DefaultTag: "error",
	}
}

// Configuration - settings read from the Lua configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	KeyType       string               `gluamapper:"key_type" json:"key_type"`
	Preload       []string             `gluamapper:"preload" json:"preload"`
	Script        string               `gluamapper:"script" json:"script"`
	StopOnError   bool                 `gluamapper:"stop_on_error" json:"stop_on_error"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
//
// an empty file name gives the defaults relative to the current directory
func getConfiguration(configurationFileName string) (*Configuration, error) {

	// absolute path to the main directory
	dataDirectory, err := os.Getwd()
	if nil != err {
		return nil, err
	}

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		KeyType:       defaultKeyType,
		Preload:       nil,
		Script:        "",
		StopOnError:   false,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Console:   false,
			Levels:    defaultLogLevels(),
		},
	}

	if "" != configurationFileName {
		configurationFileName, err = filepath.Abs(filepath.Clean(configurationFileName))
		if nil != err {
			return nil, err
		}
		dataDirectory, _ = filepath.Split(configurationFileName)

		if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
			return nil, err
		}
	}

	options.KeyType, err = validKeyType(options.KeyType)
	if nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("%w: %q", fault.ErrNotFoundDirectory, options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = configuration.EnsureAbsolute(dataDirectory, options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if !configuration.EnsureDirectoryExists(options.DataDirectory) {
		return nil, fmt.Errorf("%w: %q", fault.ErrNotFoundDirectory, options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.Script,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// log file must be a simple file name
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("Files: %q is not plain name", options.Logging.File)
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Logging.Directory,
	} {
		*d = configuration.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// normalise a key type name
func validKeyType(keyType string) (string, error) {
	switch k := strings.ToLower(strings.TrimSpace(keyType)); k {
	case keyTypeInt, "integer", "int64":
		return keyTypeInt, nil
	case keyTypeString, "str":
		return keyTypeString, nil
	default:
		return "", fmt.Errorf("%w: %q", fault.ErrInvalidKeyType, keyType)
	}
}
