// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sassafras

import (
	"errors"
)

var (
	// ErrMissingPreDigest is returned when a block header has no sassafras pre-runtime digest
	ErrMissingPreDigest = errors.New("block header has no sassafras pre-digest")

	// ErrSlotMismatch is returned when the pre-digest slot is not the slot of the block
	ErrSlotMismatch = errors.New("pre-digest slot does not match block slot")

	// ErrInvalidBlockProducerIndex is returned when the producer of a block isn't in the authority set
	ErrInvalidBlockProducerIndex = errors.New("block producer is not in authority set")

	// ErrAuthorityDisabled is returned when verifying a block produced by a disabled authority
	ErrAuthorityDisabled = errors.New("authority has been disabled for the remaining slots in the epoch")

	// ErrBadPostVRF is returned when the post block VRF proof is invalid
	ErrBadPostVRF = errors.New("could not verify post block VRF proof")

	// ErrNoDescriptor is returned when no epoch descriptor is known for an epoch
	ErrNoDescriptor = errors.New("no epoch descriptor for epoch")

	// ErrConflictingDescriptor is returned when importing a descriptor for an epoch
	// which already announced a different one
	ErrConflictingDescriptor = errors.New("conflicting next epoch descriptor")

	errVRFInputLength = errors.New("VRF input has the wrong length")
)
