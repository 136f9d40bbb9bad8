// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/urfave/cli"
)

const (
	kindPreDigest = "pre-digest"
	kindNextEpoch = "next-epoch"
	kindPostBlock = "post-block"
	kindDigest    = "digest"
)

var errUnknownKind = errors.New("unknown record kind")

var decodeCommand = cli.Command{
	Name:      "decode",
	Usage:     "Decode a hex encoded sassafras record and print it",
	ArgsUsage: "<0x prefixed hex>",
	Flags:     []cli.Flag{KindFlag},
	Action:    decodeAction,
}

func decodeAction(ctx *cli.Context) error {
	codec, err := setup(ctx)
	if err != nil {
		return err
	}

	input, err := hexInput(ctx)
	if err != nil {
		return err
	}

	digests, err := decodeInput(codec, ctx.String(KindFlag.Name), input)
	if err != nil {
		return err
	}

	printDigests(ctx.App.Writer, digests)
	return nil
}

// decodeInput decodes input as a record of the given kind. A header
// digest is decoded into all the sassafras records it carries.
func decodeInput(codec *types.DigestCodec, kind string, input []byte) (
	digests types.SassafrasDigests, err error) {
	switch kind {
	case kindPreDigest:
		preDigest, err := codec.DecodePreDigest(input)
		if err != nil {
			return digests, err
		}
		digests.PreDigest = &preDigest
	case kindNextEpoch:
		descriptor, err := codec.DecodeNextEpochDescriptor(input)
		if err != nil {
			return digests, err
		}
		digests.NextEpoch = &descriptor
	case kindPostBlock:
		descriptor, err := codec.DecodePostBlockDescriptor(input)
		if err != nil {
			return digests, err
		}
		digests.PostBlock = &descriptor
	case kindDigest:
		digest, err := codec.DecodeDigest(input)
		if err != nil {
			return digests, err
		}
		logger.Debugf("decoded digest with %d items", len(digest))
		return codec.SassafrasDigests(digest)
	default:
		return digests, fmt.Errorf("%w: %s", errUnknownKind, kind)
	}
	return digests, nil
}

func printDigests(w io.Writer, digests types.SassafrasDigests) {
	if digests.PreDigest != nil {
		fmt.Fprintln(w, digests.PreDigest)
	}
	if digests.NextEpoch != nil {
		fmt.Fprintln(w, digests.NextEpoch)
	}
	if digests.PostBlock != nil {
		fmt.Fprintln(w, digests.PostBlock)
	}
	if len(digests.Disabled) > 0 {
		fmt.Fprintf(w, "Disabled authorities: %v\n", digests.Disabled)
	}
}
