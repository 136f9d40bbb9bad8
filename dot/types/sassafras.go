// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"bytes"
	"fmt"
)

// Randomness is the randomness seed of an epoch. Its width is set by ProtocolConfig.
type Randomness []byte

// VRFOutput is a VRF output. Its width is set by ProtocolConfig.
type VRFOutput []byte

// VRFProof is a VRF proof. Its width is set by ProtocolConfig.
type VRFProof []byte

// AuthorityID is the public key of an authority. Its width is set by ProtocolConfig.
type AuthorityID []byte

// AuthorityIndex is the position of an authority in its epoch authority set.
type AuthorityIndex uint32

// SlotNumber is the number of a slot since genesis.
type SlotNumber uint64

// VRFIndex is the index of a committed ticket.
type VRFIndex uint32

// AuthorityWeight is the weight of an authority.
type AuthorityWeight uint64

// Equal returns true if both randomness values hold the same bytes.
func (r Randomness) Equal(other Randomness) bool { return bytes.Equal(r, other) }

// Compare compares the raw bytes of r and other.
func (r Randomness) Compare(other Randomness) int { return bytes.Compare(r, other) }

// Equal returns true if both outputs hold the same bytes.
func (o VRFOutput) Equal(other VRFOutput) bool { return bytes.Equal(o, other) }

// Compare compares the raw bytes of o and other.
func (o VRFOutput) Compare(other VRFOutput) int { return bytes.Compare(o, other) }

// Equal returns true if both proofs hold the same bytes.
func (p VRFProof) Equal(other VRFProof) bool { return bytes.Equal(p, other) }

// Compare compares the raw bytes of p and other.
func (p VRFProof) Compare(other VRFProof) int { return bytes.Compare(p, other) }

// Equal returns true if both ids hold the same bytes.
func (id AuthorityID) Equal(other AuthorityID) bool { return bytes.Equal(id, other) }

// Compare compares the raw bytes of id and other.
func (id AuthorityID) Compare(other AuthorityID) int { return bytes.Compare(id, other) }

// Authority is an entry of an epoch authority set.
type Authority struct {
	ID     AuthorityID
	Weight AuthorityWeight
}

// Equal returns true if both authorities have the same id and weight.
func (a Authority) Equal(other Authority) bool {
	return a.ID.Equal(other.ID) && a.Weight == other.Weight
}

func (a Authority) String() string {
	return fmt.Sprintf("Authority{ID=%s, Weight=%d}", bytesToString(a.ID), a.Weight)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}

func bytesToString(b []byte) (s string) {
	switch {
	case b == nil:
		return "nil"
	case len(b) <= 20:
		return fmt.Sprintf("0x%x", b)
	default:
		return fmt.Sprintf("0x%x...%x", b[:8], b[len(b)-8:])
	}
}
