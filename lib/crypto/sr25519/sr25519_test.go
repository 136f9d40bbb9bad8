// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sr25519

import (
	"crypto/rand"
	"testing"

	bip39 "github.com/cosmos/go-bip39"
	"github.com/gtank/merlin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeypairFromSeed(t *testing.T) {
	t.Parallel()

	seed := make([]byte, 32)
	_, err := rand.Read(seed)
	require.NoError(t, err)

	kp, err := NewKeypairFromSeed(seed)
	require.NoError(t, err)
	require.NotNil(t, kp.public)
	require.NotNil(t, kp.private)

	again, err := NewKeypairFromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, kp.Public().Encode(), again.Public().Encode())

	seed = make([]byte, 20)
	kp, err = NewKeypairFromSeed(seed)
	require.Nil(t, kp)
	require.ErrorIs(t, err, ErrInvalidSeedLength)
	require.EqualError(t, err, "cannot generate key from seed: seed is not 32 bytes long")
}

func TestNewKeypairFromMnemonic(t *testing.T) {
	t.Parallel()

	entropy, err := bip39.NewEntropy(128)
	require.NoError(t, err)

	mnemonic, err := bip39.NewMnemonic(entropy)
	require.NoError(t, err)

	kp, err := NewKeypairFromMnemonic(mnemonic, "")
	require.NoError(t, err)

	again, err := NewKeypairFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, kp.Public().Encode(), again.Public().Encode())

	_, err = NewKeypairFromMnemonic("not a mnemonic", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestNewPublicKey(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeypair()
	require.NoError(t, err)

	enc := kp.Public().Encode()
	require.Len(t, enc, PublicKeyLength)

	pub, err := NewPublicKey(enc)
	require.NoError(t, err)
	assert.Equal(t, enc, pub.Encode())
	assert.Equal(t, kp.Public().Hex(), pub.Hex())

	_, err = NewPublicKey(enc[:31])
	assert.ErrorIs(t, err, ErrInvalidPublicKeyLength)
}

func TestVrfSignAndVerify(t *testing.T) {
	t.Parallel()

	kp, err := GenerateKeypair()
	require.NoError(t, err)

	transcript := merlin.NewTranscript("helloworld")
	out, proof, err := kp.VrfSign(transcript)
	require.NoError(t, err)

	pub := kp.Public()
	transcript2 := merlin.NewTranscript("helloworld")
	ok, err := pub.VrfVerify(transcript2, out, proof)
	require.NoError(t, err)
	require.True(t, ok)

	other, err := GenerateKeypair()
	require.NoError(t, err)
	transcript3 := merlin.NewTranscript("helloworld")
	ok, _ = other.Public().VrfVerify(transcript3, out, proof)
	require.False(t, ok)

	transcript4 := merlin.NewTranscript("goodbyeworld")
	ok, _ = pub.VrfVerify(transcript4, out, proof)
	require.False(t, ok)
}
