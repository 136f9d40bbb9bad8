// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/sassafras/pkg/scale"
)

var (
	// ErrMultiplePreDigests is returned when a header digest holds two sassafras pre-digests
	ErrMultiplePreDigests = errors.New("multiple sassafras pre-runtime digests")
	// ErrMultipleNextEpochDescriptors is returned when a header digest announces two next epochs
	ErrMultipleNextEpochDescriptors = errors.New("multiple next epoch descriptors")
	// ErrMultiplePostBlockDescriptors is returned when a header digest holds two post block descriptors
	ErrMultiplePostBlockDescriptors = errors.New("multiple post block descriptors")
	// ErrUnexpectedConsensusEngineID is returned when decoding a consensus digest of another engine
	ErrUnexpectedConsensusEngineID = errors.New("unexpected consensus engine id")

	errUnsupportedConsensusLogValueType = errors.New("unsupported consensus log value type")
)

// NextEpochData is the consensus log announcing the next epoch descriptor.
type NextEpochData NextEpochDescriptor

// OnDisabled is the consensus log signalling an authority of the current set is disabled.
type OnDisabled struct {
	ID AuthorityIndex
}

// PostBlockData is the consensus log carrying ticket commitments.
type PostBlockData PostBlockDescriptor

// ConsensusLogValues is the interface constraint of ConsensusLog values.
type ConsensusLogValues interface {
	NextEpochData | OnDisabled | PostBlockData
}

// ConsensusLog is the varying data type carried in a sassafras ConsensusDigest.
type ConsensusLog struct {
	inner any
}

func setConsensusLog[Value ConsensusLogValues](mvdt *ConsensusLog, value Value) {
	mvdt.inner = value
}

// NewConsensusLog returns a ConsensusLog holding value.
func NewConsensusLog[Value ConsensusLogValues](value Value) ConsensusLog {
	log := ConsensusLog{}
	setConsensusLog(&log, value)
	return log
}

// SetValue implements scale.VaryingDataType.
func (mvdt *ConsensusLog) SetValue(value any) (err error) {
	switch value := value.(type) {
	case NextEpochData:
		setConsensusLog(mvdt, value)
		return

	case OnDisabled:
		setConsensusLog(mvdt, value)
		return

	case PostBlockData:
		setConsensusLog(mvdt, value)
		return

	default:
		return fmt.Errorf("%w: %T", errUnsupportedConsensusLogValueType, value)
	}
}

// IndexValue implements scale.VaryingDataType.
func (mvdt ConsensusLog) IndexValue() (index uint, value any, err error) {
	switch mvdt.inner.(type) {
	case NextEpochData:
		return 1, mvdt.inner, nil

	case OnDisabled:
		return 2, mvdt.inner, nil

	case PostBlockData:
		return 3, mvdt.inner, nil

	}
	return 0, nil, scale.ErrUnsupportedVaryingDataTypeValue
}

// Value returns the consensus log value.
func (mvdt ConsensusLog) Value() (value any, err error) {
	_, value, err = mvdt.IndexValue()
	return
}

// ValueAt implements scale.VaryingDataType.
func (mvdt ConsensusLog) ValueAt(index uint) (value any, err error) {
	switch index {
	case 1:
		return *new(NextEpochData), nil

	case 2:
		return *new(OnDisabled), nil

	case 3:
		return *new(PostBlockData), nil

	}
	return nil, scale.ErrUnknownVaryingDataTypeValue
}

// PreRuntimeDigest returns d encoded in a sassafras PreRuntimeDigest.
func (c *DigestCodec) PreRuntimeDigest(d PreDigest) (PreRuntimeDigest, error) {
	enc, err := c.EncodePreDigest(d)
	if err != nil {
		return PreRuntimeDigest{}, err
	}
	return PreRuntimeDigest{
		ConsensusEngineID: SassafrasEngineID,
		Data:              enc,
	}, nil
}

// ConsensusDigest returns log encoded in a sassafras ConsensusDigest.
func (c *DigestCodec) ConsensusDigest(log ConsensusLog) (ConsensusDigest, error) {
	enc, err := c.codec.Marshal(log)
	if err != nil {
		return ConsensusDigest{}, fmt.Errorf("encoding consensus log: %w", err)
	}
	return ConsensusDigest{
		ConsensusEngineID: SassafrasEngineID,
		Data:              enc,
	}, nil
}

// DecodeConsensusLog decodes the data of a sassafras ConsensusDigest.
func (c *DigestCodec) DecodeConsensusLog(digest ConsensusDigest) (log ConsensusLog, err error) {
	if digest.ConsensusEngineID != SassafrasEngineID {
		return log, fmt.Errorf("%w: %s", ErrUnexpectedConsensusEngineID, digest.ConsensusEngineID)
	}

	err = c.codec.Unmarshal(digest.Data, &log)
	if err != nil {
		return log, fmt.Errorf("decoding consensus log: %w", err)
	}
	return log, nil
}

// EncodeDigest returns the encoding of a header digest.
func (c *DigestCodec) EncodeDigest(digest Digest) ([]byte, error) {
	enc, err := c.codec.Marshal(digest)
	if err != nil {
		return nil, fmt.Errorf("encoding digest: %w", err)
	}
	return enc, nil
}

// DecodeDigest decodes a header digest, which must span the whole input.
func (c *DigestCodec) DecodeDigest(in []byte) (Digest, error) {
	var digest Digest
	err := c.codec.Unmarshal(in, &digest)
	if err != nil {
		return nil, fmt.Errorf("decoding digest: %w", err)
	}
	return digest, nil
}

// SassafrasDigests holds the sassafras items found in a header digest.
type SassafrasDigests struct {
	PreDigest *PreDigest
	NextEpoch *NextEpochDescriptor
	PostBlock *PostBlockDescriptor
	Disabled  []AuthorityIndex
}

// SassafrasDigests decodes the sassafras pre-runtime and consensus items of digest.
// Items of other consensus engines are ignored. It fails if the pre-digest,
// the next epoch descriptor or the post block descriptor appears more than once.
func (c *DigestCodec) SassafrasDigests(digest Digest) (digests SassafrasDigests, err error) {
	for i, item := range digest {
		value, err := item.Value()
		if err != nil {
			return digests, fmt.Errorf("digest item %d: %w", i, err)
		}

		switch value := value.(type) {
		case PreRuntimeDigest:
			if value.ConsensusEngineID != SassafrasEngineID {
				continue
			}
			if digests.PreDigest != nil {
				return digests, fmt.Errorf("digest item %d: %w", i, ErrMultiplePreDigests)
			}
			preDigest, err := c.DecodePreDigest(value.Data)
			if err != nil {
				return digests, fmt.Errorf("digest item %d: %w", i, err)
			}
			digests.PreDigest = &preDigest

		case ConsensusDigest:
			if value.ConsensusEngineID != SassafrasEngineID {
				continue
			}
			err = digests.addConsensusLog(c, value)
			if err != nil {
				return digests, fmt.Errorf("digest item %d: %w", i, err)
			}
		}
	}
	return digests, nil
}

func (digests *SassafrasDigests) addConsensusLog(c *DigestCodec, digest ConsensusDigest) error {
	log, err := c.DecodeConsensusLog(digest)
	if err != nil {
		return err
	}

	value, err := log.Value()
	if err != nil {
		return err
	}

	switch value := value.(type) {
	case NextEpochData:
		if digests.NextEpoch != nil {
			return ErrMultipleNextEpochDescriptors
		}
		descriptor := NextEpochDescriptor(value)
		digests.NextEpoch = &descriptor
	case PostBlockData:
		if digests.PostBlock != nil {
			return ErrMultiplePostBlockDescriptors
		}
		descriptor := PostBlockDescriptor(value)
		digests.PostBlock = &descriptor
	case OnDisabled:
		digests.Disabled = append(digests.Disabled, value.ID)
	}
	return nil
}
