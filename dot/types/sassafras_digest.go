// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"errors"
	"fmt"

	"github.com/qdm12/gotree"
)

var (
	// ErrFieldTooLarge is returned when constructing a record with a sequence
	// longer than the protocol maximum.
	ErrFieldTooLarge = errors.New("field too large")
	// ErrInvalidFieldLength is returned when a fixed width field has the wrong length.
	ErrInvalidFieldLength = errors.New("invalid field length")
)

// PreDigest is the Sassafras pre-runtime digest included in every block.
// The author reveals the output of the ticket previously committed at
// TicketVRFIndex, and attaches a second "post block" VRF proof and output.
// Records are immutable once constructed.
type PreDigest struct {
	TicketVRFIndex  VRFIndex
	TicketVRFOutput VRFOutput
	AuthorityIndex  AuthorityIndex
	SlotNumber      SlotNumber
	PostVRFProof    VRFProof
	PostVRFOutput   VRFOutput
}

// NewPreDigest returns a PreDigest holding copies of the given values.
func NewPreDigest(cfg ProtocolConfig,
	ticketVRFIndex VRFIndex,
	ticketVRFOutput VRFOutput,
	authorityIndex AuthorityIndex,
	slotNumber SlotNumber,
	postVRFProof VRFProof,
	postVRFOutput VRFOutput,
) (PreDigest, error) {
	d := PreDigest{
		TicketVRFIndex:  ticketVRFIndex,
		TicketVRFOutput: cloneBytes(ticketVRFOutput),
		AuthorityIndex:  authorityIndex,
		SlotNumber:      slotNumber,
		PostVRFProof:    cloneBytes(postVRFProof),
		PostVRFOutput:   cloneBytes(postVRFOutput),
	}
	err := d.checkLengths(cfg)
	if err != nil {
		return PreDigest{}, err
	}
	return d, nil
}

func (d PreDigest) checkLengths(cfg ProtocolConfig) error {
	if err := checkLength("ticket VRF output", len(d.TicketVRFOutput), cfg.VRFOutputLength); err != nil {
		return err
	}
	if err := checkLength("post VRF proof", len(d.PostVRFProof), cfg.VRFProofLength); err != nil {
		return err
	}
	return checkLength("post VRF output", len(d.PostVRFOutput), cfg.VRFOutputLength)
}

// Equal returns true if both pre-digests have identical fields.
func (d PreDigest) Equal(other PreDigest) bool {
	return d.TicketVRFIndex == other.TicketVRFIndex &&
		d.TicketVRFOutput.Equal(other.TicketVRFOutput) &&
		d.AuthorityIndex == other.AuthorityIndex &&
		d.SlotNumber == other.SlotNumber &&
		d.PostVRFProof.Equal(other.PostVRFProof) &&
		d.PostVRFOutput.Equal(other.PostVRFOutput)
}

func (d PreDigest) String() string {
	return d.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (d PreDigest) StringNode() *gotree.Node {
	node := gotree.New("PreDigest")
	node.Appendf("Ticket VRF index: %d", d.TicketVRFIndex)
	node.Appendf("Ticket VRF output: %s", bytesToString(d.TicketVRFOutput))
	node.Appendf("Authority index: %d", d.AuthorityIndex)
	node.Appendf("Slot number: %d", d.SlotNumber)
	node.Appendf("Post VRF proof: %s", bytesToString(d.PostVRFProof))
	node.Appendf("Post VRF output: %s", bytesToString(d.PostVRFOutput))
	return node
}

// NextEpochDescriptor is generated by the runtime at the beginning of every epoch.
// Authorities only start producing blocks two epochs later; their order is the
// order AuthorityIndex refers to.
type NextEpochDescriptor struct {
	Authorities []Authority
	Randomness  Randomness
}

// NewNextEpochDescriptor returns a NextEpochDescriptor holding copies of the given values.
// It does not check the authority set is non empty and duplicate free, see
// ValidateNextEpochDescriptor.
func NewNextEpochDescriptor(cfg ProtocolConfig, authorities []Authority, randomness Randomness,
) (NextEpochDescriptor, error) {
	if exceedsMax(len(authorities), cfg.MaxAuthorities) {
		return NextEpochDescriptor{}, fmt.Errorf("%w: %d authorities, maximum is %d",
			ErrFieldTooLarge, len(authorities), cfg.MaxAuthorities)
	}

	d := NextEpochDescriptor{
		Authorities: make([]Authority, len(authorities)),
		Randomness:  cloneBytes(randomness),
	}
	for i, authority := range authorities {
		err := checkLength(fmt.Sprintf("authority %d id", i), len(authority.ID), cfg.AuthorityIDLength)
		if err != nil {
			return NextEpochDescriptor{}, err
		}
		d.Authorities[i] = Authority{
			ID:     cloneBytes(authority.ID),
			Weight: authority.Weight,
		}
	}

	err := checkLength("randomness", len(d.Randomness), cfg.RandomnessLength)
	if err != nil {
		return NextEpochDescriptor{}, err
	}
	return d, nil
}

// Clone returns a deep copy of d.
func (d NextEpochDescriptor) Clone() NextEpochDescriptor {
	clone := NextEpochDescriptor{
		Randomness: cloneBytes(d.Randomness),
	}
	if d.Authorities != nil {
		clone.Authorities = make([]Authority, len(d.Authorities))
		for i, authority := range d.Authorities {
			clone.Authorities[i] = Authority{
				ID:     cloneBytes(authority.ID),
				Weight: authority.Weight,
			}
		}
	}
	return clone
}

// Equal returns true if both descriptors hold the same authorities in the same
// order and the same randomness.
func (d NextEpochDescriptor) Equal(other NextEpochDescriptor) bool {
	if len(d.Authorities) != len(other.Authorities) {
		return false
	}
	for i := range d.Authorities {
		if !d.Authorities[i].Equal(other.Authorities[i]) {
			return false
		}
	}
	return d.Randomness.Equal(other.Randomness)
}

func (d NextEpochDescriptor) String() string {
	return d.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (d NextEpochDescriptor) StringNode() *gotree.Node {
	node := gotree.New("NextEpochDescriptor")
	authorities := node.Appendf("Authorities: %d", len(d.Authorities))
	for i, authority := range d.Authorities {
		authorities.Appendf("%d: %s", i, authority)
	}
	node.Appendf("Randomness: %s", bytesToString(d.Randomness))
	return node
}

// PostBlockDescriptor is an optional digest carrying ticket commitments.
// The order of Commitments is the submission order.
type PostBlockDescriptor struct {
	Commitments []VRFProof
}

// NewPostBlockDescriptor returns a PostBlockDescriptor holding copies of the given commitments.
func NewPostBlockDescriptor(cfg ProtocolConfig, commitments []VRFProof) (PostBlockDescriptor, error) {
	if exceedsMax(len(commitments), cfg.MaxCommitments) {
		return PostBlockDescriptor{}, fmt.Errorf("%w: %d commitments, maximum is %d",
			ErrFieldTooLarge, len(commitments), cfg.MaxCommitments)
	}

	d := PostBlockDescriptor{
		Commitments: make([]VRFProof, len(commitments)),
	}
	for i, commitment := range commitments {
		err := checkLength(fmt.Sprintf("commitment %d", i), len(commitment), cfg.VRFProofLength)
		if err != nil {
			return PostBlockDescriptor{}, err
		}
		d.Commitments[i] = cloneBytes(commitment)
	}
	return d, nil
}

// Equal returns true if both descriptors hold the same commitments in the same order.
func (d PostBlockDescriptor) Equal(other PostBlockDescriptor) bool {
	if len(d.Commitments) != len(other.Commitments) {
		return false
	}
	for i := range d.Commitments {
		if !d.Commitments[i].Equal(other.Commitments[i]) {
			return false
		}
	}
	return true
}

func (d PostBlockDescriptor) String() string {
	return d.StringNode().String()
}

// StringNode returns a gotree compatible node for String methods.
func (d PostBlockDescriptor) StringNode() *gotree.Node {
	node := gotree.New("PostBlockDescriptor")
	for i, commitment := range d.Commitments {
		node.Appendf("Commitment %d: %s", i, bytesToString(commitment))
	}
	return node
}

func checkLength(field string, length, expected int) error {
	if length != expected {
		return fmt.Errorf("%w: %s has %d bytes, expected %d",
			ErrInvalidFieldLength, field, length, expected)
	}
	return nil
}

// exceedsMax reports whether length is above maximum, both widened to 64 bits.
func exceedsMax(length int, maximum uint32) bool {
	return uint64(length) > uint64(maximum)
}
