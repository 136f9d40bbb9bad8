// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/ChainSafe/sassafras/lib/common"
	"github.com/ChainSafe/sassafras/lib/crypto/sr25519"
	"github.com/ChainSafe/sassafras/lib/sassafras"
	"github.com/urfave/cli"
)

var (
	errMissingRandomness = errors.New("--randomness is required with --mnemonic")
	errValueOutOfRange   = errors.New("value out of range")
)

var encodePreDigestCommand = cli.Command{
	Name:  "encode-pre-digest",
	Usage: "Encode a sassafras pre-digest from its fields",
	Description: "The post block VRF is signed with the sr25519 key of --mnemonic over the\n" +
		"   --randomness, --slot and --epoch transcript, or taken from --post-output and --post-proof.\n" +
		"   Unset fixed width fields are zero filled.",
	Flags: []cli.Flag{
		TicketIndexFlag,
		TicketOutputFlag,
		AuthorityIndexFlag,
		SlotFlag,
		EpochFlag,
		RandomnessFlag,
		MnemonicFlag,
		PostOutputFlag,
		PostProofFlag,
		WrapFlag,
	},
	Action: encodePreDigestAction,
}

func encodePreDigestAction(ctx *cli.Context) error {
	codec, err := setup(ctx)
	if err != nil {
		return err
	}
	cfg := codec.Config()

	ticketOutput, err := hexFlag(ctx, TicketOutputFlag.Name)
	if err != nil {
		return err
	}
	if ticketOutput == nil {
		ticketOutput = make([]byte, cfg.VRFOutputLength)
	}

	ticketIndex, err := uint32Flag(ctx, TicketIndexFlag.Name)
	if err != nil {
		return err
	}
	authorityIndex, err := uint32Flag(ctx, AuthorityIndexFlag.Name)
	if err != nil {
		return err
	}

	slot := types.SlotNumber(ctx.Uint64(SlotFlag.Name))
	postOutput, postProof, err := postVRF(ctx, cfg, slot)
	if err != nil {
		return err
	}

	preDigest, err := types.NewPreDigest(cfg,
		types.VRFIndex(ticketIndex),
		ticketOutput,
		types.AuthorityIndex(authorityIndex),
		slot,
		postProof,
		postOutput,
	)
	if err != nil {
		return err
	}

	var enc []byte
	if ctx.Bool(WrapFlag.Name) {
		enc, err = encodeWrapped(codec, preDigest)
	} else {
		enc, err = codec.EncodePreDigest(preDigest)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, common.BytesToHex(enc))
	return nil
}

// uint32Flag returns the value of an unsigned flag which must fit in 32 bits.
func uint32Flag(ctx *cli.Context, name string) (uint32, error) {
	value := uint64(ctx.Uint(name))
	if value > math.MaxUint32 {
		return 0, fmt.Errorf("flag --%s: %w: %d is above %d",
			name, errValueOutOfRange, value, uint64(math.MaxUint32))
	}
	return uint32(value), nil
}

// postVRF returns the post block VRF output and proof from the flags.
func postVRF(ctx *cli.Context, cfg types.ProtocolConfig, slot types.SlotNumber) (
	output types.VRFOutput, proof types.VRFProof, err error) {
	mnemonic := ctx.String(MnemonicFlag.Name)
	if mnemonic == "" {
		output, err = hexFlag(ctx, PostOutputFlag.Name)
		if err != nil {
			return nil, nil, err
		}
		if output == nil {
			output = make([]byte, cfg.VRFOutputLength)
		}

		proof, err = hexFlag(ctx, PostProofFlag.Name)
		if err != nil {
			return nil, nil, err
		}
		if proof == nil {
			proof = make([]byte, cfg.VRFProofLength)
		}
		return output, proof, nil
	}

	randomness, err := hexFlag(ctx, RandomnessFlag.Name)
	if err != nil {
		return nil, nil, err
	}
	if randomness == nil {
		return nil, nil, errMissingRandomness
	}

	keypair, err := sr25519.NewKeypairFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, nil, err
	}
	logger.Debugf("signing post block VRF with key %s", keypair.Public().Hex())

	return sassafras.ClaimPostVRF(keypair, randomness, slot, ctx.Uint64(EpochFlag.Name))
}

// encodeWrapped encodes a header digest holding the pre-digest as its only item.
func encodeWrapped(codec *types.DigestCodec, preDigest types.PreDigest) ([]byte, error) {
	item, err := codec.PreRuntimeDigest(preDigest)
	if err != nil {
		return nil, err
	}
	return codec.EncodeDigest(types.NewDigest(types.NewDigestItem(item)))
}
