// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sassafras

import (
	"fmt"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/ChainSafe/sassafras/lib/crypto"
	"github.com/ChainSafe/sassafras/lib/crypto/sr25519"
	"github.com/gtank/merlin"
)

// VRFVerifier verifies a VRF output and proof made by an authority over a transcript.
type VRFVerifier interface {
	VerifyVRF(authority types.AuthorityID, transcript *merlin.Transcript,
		output types.VRFOutput, proof types.VRFProof) (bool, error)
}

// Sr25519VRFVerifier verifies VRF proofs made with sr25519 authority keys.
type Sr25519VRFVerifier struct{}

// VerifyVRF implements VRFVerifier.
func (Sr25519VRFVerifier) VerifyVRF(authority types.AuthorityID, transcript *merlin.Transcript,
	output types.VRFOutput, proof types.VRFProof) (bool, error) {
	pub, err := sr25519.NewPublicKey(authority)
	if err != nil {
		return false, err
	}

	if len(output) != sr25519.VRFOutputLength {
		return false, fmt.Errorf("%w: output has %d bytes, expected %d",
			errVRFInputLength, len(output), sr25519.VRFOutputLength)
	}
	if len(proof) != sr25519.VRFProofLength {
		return false, fmt.Errorf("%w: proof has %d bytes, expected %d",
			errVRFInputLength, len(proof), sr25519.VRFProofLength)
	}

	var out [sr25519.VRFOutputLength]byte
	copy(out[:], output)
	var p [sr25519.VRFProofLength]byte
	copy(p[:], proof)
	return pub.VrfVerify(transcript, out, p)
}

// makeTranscript returns the transcript the post block VRF of a slot is made over.
func makeTranscript(randomness types.Randomness, slot types.SlotNumber, epoch uint64) *merlin.Transcript {
	t := merlin.NewTranscript(types.SassafrasEngineID.String())
	crypto.AppendUint64(t, []byte("slot number"), uint64(slot))
	crypto.AppendUint64(t, []byte("current epoch"), epoch)
	t.AppendMessage([]byte("chain randomness"), randomness)
	return t
}

// ClaimPostVRF returns the post block VRF output and proof of keypair for a slot.
func ClaimPostVRF(keypair *sr25519.Keypair, randomness types.Randomness,
	slot types.SlotNumber, epoch uint64) (types.VRFOutput, types.VRFProof, error) {
	transcript := makeTranscript(randomness, slot, epoch)

	out, proof, err := keypair.VrfSign(transcript)
	if err != nil {
		return nil, nil, fmt.Errorf("signing post block VRF: %w", err)
	}

	logger.Tracef("claimed post block VRF pub=%s slot=%d epoch=%d output=0x%x",
		keypair.Public().Hex(), slot, epoch, out)
	return out[:], proof[:], nil
}
