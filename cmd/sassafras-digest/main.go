// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"os"

	"github.com/ChainSafe/sassafras/internal/log"
	"github.com/urfave/cli"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sassafras-digest"
	app.Usage = "Decode, validate and encode Sassafras consensus header digests"
	app.Flags = []cli.Flag{
		ConfigFlag,
		LogFlag,
	}
	app.Commands = []cli.Command{
		decodeCommand,
		validateCommand,
		encodePreDigestCommand,
	}
	return app
}
