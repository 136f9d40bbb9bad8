// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/ChainSafe/sassafras/pkg/scale"
)

// ConsensusEngineID is a 4-character identifier of the consensus engine that produced the digest.
type ConsensusEngineID [4]byte

// NewConsensusEngineID casts a byte slice to ConsensusEngineID
// if the input is longer than 4 bytes, it takes the first 4 bytes
func NewConsensusEngineID(in []byte) (res ConsensusEngineID) {
	copy(res[:], in)
	return res
}

// ToBytes turns ConsensusEngineID to a byte slice
func (h ConsensusEngineID) ToBytes() []byte {
	return h[:]
}

func (h ConsensusEngineID) String() string {
	return string(h[:])
}

// SassafrasEngineID is the hard-coded sassafras ID
var SassafrasEngineID = ConsensusEngineID{'S', 'A', 'S', 'S'}

// DigestItemTypes is the interface constraint of DigestItem values.
type DigestItemTypes interface {
	OtherDigest | ConsensusDigest | SealDigest | PreRuntimeDigest | RuntimeEnvironmentUpdated
}

// DigestItem is a varying data type holding one header digest item.
type DigestItem struct {
	inner any
}

func setDigestItem[Value DigestItemTypes](mvdt *DigestItem, value Value) {
	mvdt.inner = value
}

// SetValue implements scale.VaryingDataType.
func (mvdt *DigestItem) SetValue(value any) (err error) {
	switch value := value.(type) {
	case OtherDigest:
		setDigestItem(mvdt, value)
		return

	case ConsensusDigest:
		setDigestItem(mvdt, value)
		return

	case SealDigest:
		setDigestItem(mvdt, value)
		return

	case PreRuntimeDigest:
		setDigestItem(mvdt, value)
		return

	case RuntimeEnvironmentUpdated:
		setDigestItem(mvdt, value)
		return

	default:
		return fmt.Errorf("%w: %T", scale.ErrUnsupportedVaryingDataTypeValue, value)
	}
}

// IndexValue implements scale.VaryingDataType.
func (mvdt DigestItem) IndexValue() (index uint, value any, err error) {
	switch mvdt.inner.(type) {
	case OtherDigest:
		return 0, mvdt.inner, nil

	case ConsensusDigest:
		return 4, mvdt.inner, nil

	case SealDigest:
		return 5, mvdt.inner, nil

	case PreRuntimeDigest:
		return 6, mvdt.inner, nil

	case RuntimeEnvironmentUpdated:
		return 8, mvdt.inner, nil

	}
	return 0, nil, scale.ErrUnsupportedVaryingDataTypeValue
}

// Value returns the digest item value.
func (mvdt DigestItem) Value() (value any, err error) {
	_, value, err = mvdt.IndexValue()
	return
}

// ValueAt implements scale.VaryingDataType.
func (mvdt DigestItem) ValueAt(index uint) (value any, err error) {
	switch index {
	case 0:
		return *new(OtherDigest), nil

	case 4:
		return *new(ConsensusDigest), nil

	case 5:
		return *new(SealDigest), nil

	case 6:
		return *new(PreRuntimeDigest), nil

	case 8:
		return *new(RuntimeEnvironmentUpdated), nil

	}
	return nil, scale.ErrUnknownVaryingDataTypeValue
}

func (mvdt DigestItem) String() string {
	if mvdt.inner == nil {
		return "DigestItem(nil)"
	}
	return fmt.Sprintf("%s", mvdt.inner)
}

// NewDigestItem returns a DigestItem holding value.
func NewDigestItem[Value DigestItemTypes](value Value) DigestItem {
	item := DigestItem{}
	setDigestItem(&item, value)
	return item
}

// Digest is the list of digest items of a block header.
type Digest []DigestItem

// NewDigest returns a new Digest from the given DigestItems
func NewDigest(items ...DigestItem) Digest {
	return items
}

// Add appends all of the given values as digest items.
func (d *Digest) Add(values ...any) (err error) {
	for _, value := range values {
		var item DigestItem
		err = item.SetValue(value)
		if err != nil {
			return err
		}
		*d = append(*d, item)
	}
	return nil
}

// OtherDigest is an opaque digest item.
type OtherDigest []byte

func (d OtherDigest) String() string {
	return fmt.Sprintf("OtherDigest Data=0x%x", []byte(d))
}

// ConsensusDigest contains messages from the runtime to the consensus engine.
type ConsensusDigest struct {
	ConsensusEngineID ConsensusEngineID
	Data              []byte
}

func (d ConsensusDigest) String() string {
	return fmt.Sprintf("ConsensusDigest ConsensusEngineID=%s Data=0x%x", d.ConsensusEngineID, d.Data)
}

// SealDigest contains the seal or signature. This is only used by native code.
type SealDigest struct {
	ConsensusEngineID ConsensusEngineID
	Data              []byte
}

func (d SealDigest) String() string {
	return fmt.Sprintf("SealDigest ConsensusEngineID=%s Data=0x%x", d.ConsensusEngineID, d.Data)
}

// PreRuntimeDigest contains messages from the consensus engine to the runtime.
type PreRuntimeDigest struct {
	ConsensusEngineID ConsensusEngineID
	Data              []byte
}

func (d PreRuntimeDigest) String() string {
	return fmt.Sprintf("PreRuntimeDigest ConsensusEngineID=%s Data=0x%x", d.ConsensusEngineID, d.Data)
}

// RuntimeEnvironmentUpdated signals the runtime code or heap pages changed.
type RuntimeEnvironmentUpdated struct{}

func (RuntimeEnvironmentUpdated) String() string {
	return "RuntimeEnvironmentUpdated"
}
