// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sassafras

import (
	"fmt"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/ChainSafe/sassafras/internal/log"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "sassafras"))

// Verifier checks the sassafras digests of block headers against the
// epoch descriptors it knows about.
type Verifier struct {
	codec       *types.DigestCodec
	descriptors *EpochDescriptors
	vrfVerifier VRFVerifier
	logger      log.LeveledLogger
}

// NewVerifier returns a Verifier using the given VRF verifier.
func NewVerifier(codec *types.DigestCodec, descriptors *EpochDescriptors, vrfVerifier VRFVerifier) *Verifier {
	return &Verifier{
		codec:       codec,
		descriptors: descriptors,
		vrfVerifier: vrfVerifier,
		logger:      logger,
	}
}

// VerifyAuthorship verifies the block with the given header digest was produced in
// slot of epoch by an authority of the epoch, and that the sassafras descriptors it
// carries are valid. It returns the decoded sassafras digests.
func (v *Verifier) VerifyAuthorship(epoch uint64, slot types.SlotNumber, digest types.Digest) (
	digests types.SassafrasDigests, err error) {
	digests, err = v.codec.SassafrasDigests(digest)
	if err != nil {
		v.logger.Debugf("cannot decode sassafras digests for slot %d: %s", slot, err)
		return digests, err
	}

	err = v.verifyPreDigest(epoch, slot, digests.PreDigest)
	if err != nil {
		v.logger.Debugf("rejecting block for slot %d of epoch %d: %s", slot, epoch, err)
		return digests, err
	}

	cfg := v.codec.Config()
	if digests.NextEpoch != nil {
		err = types.ValidateNextEpochDescriptor(cfg, *digests.NextEpoch)
		if err != nil {
			return digests, fmt.Errorf("next epoch descriptor: %w", err)
		}
	}

	if digests.PostBlock != nil {
		err = types.ValidatePostBlockDescriptor(cfg, *digests.PostBlock)
		if err != nil {
			return digests, fmt.Errorf("post block descriptor: %w", err)
		}
	}

	v.logger.Tracef("verified authorship of block for slot %d by authority %d",
		slot, digests.PreDigest.AuthorityIndex)
	return digests, nil
}

func (v *Verifier) verifyPreDigest(epoch uint64, slot types.SlotNumber, preDigest *types.PreDigest) error {
	if preDigest == nil {
		return ErrMissingPreDigest
	}

	if preDigest.SlotNumber != slot {
		return fmt.Errorf("%w: pre-digest has slot %d, block has slot %d",
			ErrSlotMismatch, preDigest.SlotNumber, slot)
	}

	active, err := v.descriptors.Active(epoch)
	if err != nil {
		return err
	}

	if !types.ValidateAuthorityIndex(*preDigest, len(active.Authorities)) {
		return fmt.Errorf("%w: index %d, %d authorities",
			ErrInvalidBlockProducerIndex, preDigest.AuthorityIndex, len(active.Authorities))
	}

	if v.descriptors.IsDisabled(epoch, preDigest.AuthorityIndex) {
		return fmt.Errorf("%w: index %d", ErrAuthorityDisabled, preDigest.AuthorityIndex)
	}

	authority := active.Authorities[preDigest.AuthorityIndex]
	transcript := makeTranscript(active.Randomness, slot, epoch)
	ok, err := v.vrfVerifier.VerifyVRF(authority.ID, transcript, preDigest.PostVRFOutput, preDigest.PostVRFProof)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadPostVRF, err)
	}
	if !ok {
		return ErrBadPostVRF
	}
	return nil
}

// ImportDigests records the next epoch descriptor and the disabled authorities
// carried by a verified block of epoch.
func (v *Verifier) ImportDigests(epoch uint64, digests types.SassafrasDigests) error {
	if digests.NextEpoch != nil {
		err := v.descriptors.Import(epoch, *digests.NextEpoch)
		if err != nil {
			return fmt.Errorf("importing next epoch descriptor: %w", err)
		}
	}

	for _, index := range digests.Disabled {
		v.descriptors.Disable(epoch, index)
		v.logger.Infof("authority %d disabled in epoch %d", index, epoch)
	}
	return nil
}
