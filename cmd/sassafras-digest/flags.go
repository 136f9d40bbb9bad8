// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"github.com/urfave/cli"
)

// Global flags
var (
	// ConfigFlag TOML configuration file
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file holding the [log] and [protocol] sections",
	}
	// LogFlag cli service settings
	LogFlag = cli.StringFlag{
		Name:  "log",
		Usage: "Global log level. Supports levels critical (silent), error, warn, info, debug and trace",
	}
)

// Command flags
var (
	// KindFlag selects the record type of the hex input
	KindFlag = cli.StringFlag{
		Name:  "kind",
		Usage: "Record type of the input: pre-digest, next-epoch, post-block or digest",
		Value: kindDigest,
	}
	// AuthoritiesFlag is the size of the authority set a pre-digest is checked against
	AuthoritiesFlag = cli.IntFlag{
		Name:  "authorities",
		Usage: "Number of authorities in the active set, checked against the pre-digest authority index",
	}

	TicketIndexFlag = cli.UintFlag{
		Name:  "ticket-index",
		Usage: "Index of the ticket VRF claimed by the block author",
	}
	TicketOutputFlag = cli.StringFlag{
		Name:  "ticket-output",
		Usage: "0x prefixed ticket VRF output",
	}
	AuthorityIndexFlag = cli.UintFlag{
		Name:  "authority-index",
		Usage: "Index of the block author in the active authority set",
	}
	SlotFlag = cli.Uint64Flag{
		Name:  "slot",
		Usage: "Slot number of the block",
	}
	EpochFlag = cli.Uint64Flag{
		Name:  "epoch",
		Usage: "Epoch index of the slot, used to make the post block VRF transcript",
	}
	RandomnessFlag = cli.StringFlag{
		Name:  "randomness",
		Usage: "0x prefixed epoch randomness, used to make the post block VRF transcript",
	}
	MnemonicFlag = cli.StringFlag{
		Name:  "mnemonic",
		Usage: "bip39 mnemonic of the sr25519 author key signing the post block VRF",
	}
	PostOutputFlag = cli.StringFlag{
		Name:  "post-output",
		Usage: "0x prefixed post block VRF output, used when --mnemonic is not set",
	}
	PostProofFlag = cli.StringFlag{
		Name:  "post-proof",
		Usage: "0x prefixed post block VRF proof, used when --mnemonic is not set",
	}
	WrapFlag = cli.BoolFlag{
		Name:  "wrap",
		Usage: "Output a pre-runtime digest item instead of the bare pre-digest",
	}
)
