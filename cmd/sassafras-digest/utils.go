// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	ctoml "github.com/ChainSafe/sassafras/dot/config/toml"
	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/ChainSafe/sassafras/internal/log"
	"github.com/ChainSafe/sassafras/lib/common"
	"github.com/urfave/cli"
)

var errNoInput = errors.New("no hex input given")

// setup loads the configuration, patches the global logger and
// returns the digest codec of the configured protocol.
func setup(ctx *cli.Context) (*types.DigestCodec, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	level, err := setupLogger(ctx, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	logger.Debugf("log level set to %s", level)

	protocol, err := cfg.Protocol.ToProtocolConfig()
	if err != nil {
		return nil, err
	}
	logger.Debugf("protocol configuration: %+v", protocol)

	return types.NewDigestCodec(protocol)
}

// loadConfig loads the toml configuration file given by the --config flag.
// An empty configuration is returned if the flag is not set.
func loadConfig(ctx *cli.Context) (cfg ctoml.Config, err error) {
	path := ctx.GlobalString(ConfigFlag.Name)
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("opening configuration file: %w", err)
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("closing configuration file: %w", closeErr)
		}
	}()

	return ctoml.Decode(f)
}

// setupLogger sets up the global logger from the log configuration.
// The --log flag takes precedence over the configured level.
func setupLogger(ctx *cli.Context, cfg ctoml.LogConfig) (level log.Level, err error) {
	level = log.Info
	levelString := cfg.Level
	if flagLevel := ctx.GlobalString(LogFlag.Name); flagLevel != "" {
		levelString = flagLevel
	}
	if levelString != "" {
		level, err = log.ParseLevel(levelString)
		if err != nil {
			return 0, err
		}
	}

	format := log.FormatConsole
	if cfg.Format != "" {
		format, err = log.ParseFormat(cfg.Format)
		if err != nil {
			return 0, err
		}
	}

	var writer io.Writer = os.Stderr
	if ctx.App != nil && ctx.App.ErrWriter != nil {
		writer = ctx.App.ErrWriter
	}

	log.Patch(
		log.SetWriter(writer),
		log.SetFormat(format),
		log.SetCallerFile(cfg.CallerFile),
		log.SetCallerLine(cfg.CallerLine),
		log.SetLevel(level),
	)

	return level, nil
}

// hexInput returns the bytes of the 0x prefixed hex first argument.
func hexInput(ctx *cli.Context) ([]byte, error) {
	arg := ctx.Args().First()
	if arg == "" {
		return nil, errNoInput
	}
	return common.HexToBytes(arg)
}

// hexFlag returns the bytes of a 0x prefixed hex flag, or nil if the flag is not set.
func hexFlag(ctx *cli.Context, name string) ([]byte, error) {
	value := ctx.String(name)
	if value == "" {
		return nil, nil
	}

	b, err := common.HexToBytes(value)
	if err != nil {
		return nil, fmt.Errorf("flag --%s: %w", name, err)
	}
	return b, nil
}
