// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sassafras

import (
	"bytes"
	"testing"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/ChainSafe/sassafras/lib/crypto/sr25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Sr25519VRFVerifier_VerifyVRF(t *testing.T) {
	t.Parallel()

	keypairs, ids := newTestKeypairs(t, 2)
	randomness := types.Randomness(bytes.Repeat([]byte{7}, 32))

	output, proof, err := ClaimPostVRF(keypairs[0], randomness, 42, 3)
	require.NoError(t, err)
	require.Len(t, output, sr25519.VRFOutputLength)
	require.Len(t, proof, sr25519.VRFProofLength)

	verifier := Sr25519VRFVerifier{}

	ok, err := verifier.VerifyVRF(ids[0], makeTranscript(randomness, 42, 3), output, proof)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = verifier.VerifyVRF(ids[1], makeTranscript(randomness, 42, 3), output, proof)
	assert.False(t, ok)

	ok, _ = verifier.VerifyVRF(ids[0], makeTranscript(randomness, 43, 3), output, proof)
	assert.False(t, ok)

	_, err = verifier.VerifyVRF(ids[0][:31], makeTranscript(randomness, 42, 3), output, proof)
	assert.ErrorIs(t, err, sr25519.ErrInvalidPublicKeyLength)

	_, err = verifier.VerifyVRF(ids[0], makeTranscript(randomness, 42, 3), output, proof[:63])
	assert.ErrorIs(t, err, errVRFInputLength)
}

func Test_Verifier_sr25519(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	keypairs, ids := newTestKeypairs(t, 3)
	genesis := newTestDescriptor(t, 0x42, ids...)

	descriptors, err := NewEpochDescriptors(codec, genesis)
	require.NoError(t, err)
	verifier := NewVerifier(codec, descriptors, Sr25519VRFVerifier{})

	const epoch, slot = 1, types.SlotNumber(77)
	output, proof, err := ClaimPostVRF(keypairs[1], genesis.Randomness, slot, epoch)
	require.NoError(t, err)

	preDigest := newTestPreDigest(t, 1, slot, output, proof)
	digest := newTestDigest(t, codec, &preDigest)

	digests, err := verifier.VerifyAuthorship(epoch, slot, digest)
	require.NoError(t, err)
	assert.True(t, preDigest.Equal(*digests.PreDigest))

	// same proof claimed for another authority
	stolen := newTestPreDigest(t, 2, slot, output, proof)
	_, err = verifier.VerifyAuthorship(epoch, slot, newTestDigest(t, codec, &stolen))
	assert.ErrorIs(t, err, ErrBadPostVRF)

	// same proof replayed in another epoch
	_, err = verifier.VerifyAuthorship(epoch-1, slot, digest)
	assert.ErrorIs(t, err, ErrBadPostVRF)
}
