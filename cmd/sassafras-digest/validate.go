// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"fmt"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/urfave/cli"
)

var validateCommand = cli.Command{
	Name:      "validate",
	Usage:     "Decode a hex encoded sassafras record and check its semantic rules",
	ArgsUsage: "<0x prefixed hex>",
	Flags:     []cli.Flag{KindFlag, AuthoritiesFlag},
	Action:    validateAction,
}

func validateAction(ctx *cli.Context) error {
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

	err = validateDigests(codec.Config(), digests, ctx.Int(AuthoritiesFlag.Name))
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "valid")
	return nil
}

// validateDigests validates each record of digests. The pre-digest authority
// index is only checked if setSize is positive.
func validateDigests(cfg types.ProtocolConfig, digests types.SassafrasDigests, setSize int) error {
	if digests.PreDigest != nil {
		err := types.ValidatePreDigest(cfg, *digests.PreDigest)
		if err != nil {
			return fmt.Errorf("pre-digest: %w", err)
		}

		if setSize > 0 && !types.ValidateAuthorityIndex(*digests.PreDigest, setSize) {
			return fmt.Errorf("pre-digest: %w", &types.ValidationError{
				Reason: types.ErrAuthorityOutOfRange,
				Detail: fmt.Sprintf("index %d, %d authorities", digests.PreDigest.AuthorityIndex, setSize),
			})
		}
	}

	if digests.NextEpoch != nil {
		err := types.ValidateNextEpochDescriptor(cfg, *digests.NextEpoch)
		if err != nil {
			return fmt.Errorf("next epoch descriptor: %w", err)
		}
	}

	if digests.PostBlock != nil {
		err := types.ValidatePostBlockDescriptor(cfg, *digests.PostBlock)
		if err != nil {
			return fmt.Errorf("post block descriptor: %w", err)
		}
	}
	return nil
}
