// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sassafras

import (
	"bytes"
	"testing"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/ChainSafe/sassafras/lib/crypto/sr25519"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *types.DigestCodec {
	t.Helper()
	codec, err := types.NewDigestCodec(types.DefaultProtocolConfig())
	require.NoError(t, err)
	return codec
}

func newTestDescriptor(t *testing.T, randomness byte, ids ...types.AuthorityID) types.NextEpochDescriptor {
	t.Helper()
	authorities := make([]types.Authority, len(ids))
	for i, id := range ids {
		authorities[i] = types.Authority{ID: id, Weight: 1}
	}
	descriptor, err := types.NewNextEpochDescriptor(types.DefaultProtocolConfig(),
		authorities, bytes.Repeat([]byte{randomness}, 32))
	require.NoError(t, err)
	return descriptor
}

func newTestAuthorityIDs(n int) []types.AuthorityID {
	ids := make([]types.AuthorityID, n)
	for i := range ids {
		ids[i] = bytes.Repeat([]byte{byte(i + 1)}, 32)
	}
	return ids
}

func newTestKeypairs(t *testing.T, n int) (keypairs []*sr25519.Keypair, ids []types.AuthorityID) {
	t.Helper()
	keypairs = make([]*sr25519.Keypair, n)
	ids = make([]types.AuthorityID, n)
	for i := range keypairs {
		kp, err := sr25519.GenerateKeypair()
		require.NoError(t, err)
		keypairs[i] = kp
		ids[i] = kp.Public().Encode()
	}
	return keypairs, ids
}

func newTestPreDigest(t *testing.T, authorityIndex types.AuthorityIndex, slot types.SlotNumber,
	output types.VRFOutput, proof types.VRFProof) types.PreDigest {
	t.Helper()
	preDigest, err := types.NewPreDigest(types.DefaultProtocolConfig(),
		1, bytes.Repeat([]byte{0x11}, 32), authorityIndex, slot, proof, output)
	require.NoError(t, err)
	return preDigest
}

func newTestDigest(t *testing.T, codec *types.DigestCodec, preDigest *types.PreDigest,
	logs ...types.ConsensusLog) types.Digest {
	t.Helper()
	digest := types.Digest{}
	if preDigest != nil {
		preRuntime, err := codec.PreRuntimeDigest(*preDigest)
		require.NoError(t, err)
		require.NoError(t, digest.Add(preRuntime))
	}
	for _, log := range logs {
		consensus, err := codec.ConsensusDigest(log)
		require.NoError(t, err)
		require.NoError(t, digest.Add(consensus))
	}
	return digest
}
