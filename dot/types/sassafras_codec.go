// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/ChainSafe/sassafras/pkg/scale"
)

// DigestCodec encodes and decodes Sassafras digests for one ProtocolConfig.
// It holds no mutable state and is safe for concurrent use.
//
// Encoding a record built by one of the New constructors never fails; encoding
// a record assembled by hand fails if a fixed width field has the wrong length
// or a sequence is longer than the protocol maximum.
type DigestCodec struct {
	cfg   ProtocolConfig
	codec *scale.Codec
}

// NewDigestCodec returns a DigestCodec for the given protocol parameters.
func NewDigestCodec(cfg ProtocolConfig) (*DigestCodec, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &DigestCodec{
		cfg: cfg,
		codec: scale.NewCodec(
			scale.FixedLength[Randomness](cfg.RandomnessLength),
			scale.FixedLength[VRFOutput](cfg.VRFOutputLength),
			scale.FixedLength[VRFProof](cfg.VRFProofLength),
			scale.FixedLength[AuthorityID](cfg.AuthorityIDLength),
			scale.MaxLength[[]Authority](uint64(cfg.MaxAuthorities)),
			scale.MaxLength[[]VRFProof](uint64(cfg.MaxCommitments)),
		),
	}, nil
}

// Config returns the protocol parameters of the codec.
func (c *DigestCodec) Config() ProtocolConfig {
	return c.cfg
}

// EncodePreDigest returns the encoding of d.
func (c *DigestCodec) EncodePreDigest(d PreDigest) ([]byte, error) {
	enc, err := c.codec.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding pre-digest: %w", err)
	}
	return enc, nil
}

// DecodePreDigest decodes a PreDigest, which must span the whole input.
func (c *DigestCodec) DecodePreDigest(in []byte) (PreDigest, error) {
	var d PreDigest
	err := c.codec.Unmarshal(in, &d)
	if err != nil {
		return PreDigest{}, fmt.Errorf("decoding pre-digest: %w", err)
	}
	return d, nil
}

// EncodeNextEpochDescriptor returns the encoding of d.
func (c *DigestCodec) EncodeNextEpochDescriptor(d NextEpochDescriptor) ([]byte, error) {
	enc, err := c.codec.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding next epoch descriptor: %w", err)
	}
	return enc, nil
}

// DecodeNextEpochDescriptor decodes a NextEpochDescriptor, which must span the
// whole input. A declared authority count above the protocol maximum or larger
// than the input can hold fails with scale.ErrOversizedSequence.
func (c *DigestCodec) DecodeNextEpochDescriptor(in []byte) (NextEpochDescriptor, error) {
	var d NextEpochDescriptor
	err := c.codec.Unmarshal(in, &d)
	if err != nil {
		return NextEpochDescriptor{}, fmt.Errorf("decoding next epoch descriptor: %w", err)
	}
	return d, nil
}

// EncodePostBlockDescriptor returns the encoding of d.
func (c *DigestCodec) EncodePostBlockDescriptor(d PostBlockDescriptor) ([]byte, error) {
	enc, err := c.codec.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding post block descriptor: %w", err)
	}
	return enc, nil
}

// DecodePostBlockDescriptor decodes a PostBlockDescriptor, which must span the
// whole input. A declared commitment count above the protocol maximum fails with
// scale.ErrOversizedSequence.
func (c *DigestCodec) DecodePostBlockDescriptor(in []byte) (PostBlockDescriptor, error) {
	var d PostBlockDescriptor
	err := c.codec.Unmarshal(in, &d)
	if err != nil {
		return PostBlockDescriptor{}, fmt.Errorf("decoding post block descriptor: %w", err)
	}
	return d, nil
}
