// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package sassafras

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ChainSafe/sassafras/dot/types"
	"github.com/ChainSafe/sassafras/pkg/scale"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Verifier_VerifyAuthorship(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	ids := newTestAuthorityIDs(3)
	genesis := newTestDescriptor(t, 0xaa, ids...)

	output := types.VRFOutput(bytes.Repeat([]byte{0x22}, 32))
	proof := types.VRFProof(bytes.Repeat([]byte{0x33}, 64))
	validPreDigest := newTestPreDigest(t, 2, 10, output, proof)
	outOfRangePreDigest := newTestPreDigest(t, 3, 10, output, proof)

	emptyNextEpoch := types.NextEpochData(types.NextEpochDescriptor{
		Authorities: []types.Authority{},
		Randomness:  bytes.Repeat([]byte{1}, 32),
	})

	testCases := map[string]struct {
		epoch           uint64
		slot            types.SlotNumber
		digest          types.Digest
		disabled        []types.AuthorityIndex
		vrfVerifierOk   bool
		vrfVerifierErr  error
		expectVRFCall   bool
		errWrapped      error
		errMessage      string
		expectPreDigest bool
	}{
		"valid block": {
			slot:            10,
			digest:          newTestDigest(t, codec, &validPreDigest),
			vrfVerifierOk:   true,
			expectVRFCall:   true,
			expectPreDigest: true,
		},
		"valid block with descriptors": {
			epoch: 1,
			slot:  10,
			digest: newTestDigest(t, codec, &validPreDigest,
				types.NewConsensusLog(types.NextEpochData(newTestDescriptor(t, 1, ids[0]))),
				types.NewConsensusLog(types.PostBlockData(types.PostBlockDescriptor{
					Commitments: []types.VRFProof{proof},
				})),
			),
			vrfVerifierOk:   true,
			expectVRFCall:   true,
			expectPreDigest: true,
		},
		"missing pre-digest": {
			slot:       10,
			digest:     newTestDigest(t, codec, nil),
			errWrapped: ErrMissingPreDigest,
			errMessage: "block header has no sassafras pre-digest",
		},
		"undecodable digest": {
			slot: 10,
			digest: types.NewDigest(types.NewDigestItem(types.PreRuntimeDigest{
				ConsensusEngineID: types.SassafrasEngineID,
				Data:              []byte{1, 2, 3},
			})),
			errWrapped: scale.ErrTruncatedInput,
		},
		"slot mismatch": {
			slot:            11,
			digest:          newTestDigest(t, codec, &validPreDigest),
			errWrapped:      ErrSlotMismatch,
			errMessage:      "pre-digest slot does not match block slot: pre-digest has slot 10, block has slot 11",
			expectPreDigest: true,
		},
		"no descriptor for epoch": {
			epoch:           2,
			slot:            10,
			digest:          newTestDigest(t, codec, &validPreDigest),
			errWrapped:      ErrNoDescriptor,
			expectPreDigest: true,
		},
		"authority index out of range": {
			slot:            10,
			digest:          newTestDigest(t, codec, &outOfRangePreDigest),
			errWrapped:      ErrInvalidBlockProducerIndex,
			errMessage:      "block producer is not in authority set: index 3, 3 authorities",
			expectPreDigest: true,
		},
		"disabled authority": {
			slot:            10,
			digest:          newTestDigest(t, codec, &validPreDigest),
			disabled:        []types.AuthorityIndex{2},
			errWrapped:      ErrAuthorityDisabled,
			expectPreDigest: true,
		},
		"bad post VRF": {
			slot:            10,
			digest:          newTestDigest(t, codec, &validPreDigest),
			expectVRFCall:   true,
			errWrapped:      ErrBadPostVRF,
			errMessage:      "could not verify post block VRF proof",
			expectPreDigest: true,
		},
		"post VRF error": {
			slot:            10,
			digest:          newTestDigest(t, codec, &validPreDigest),
			expectVRFCall:   true,
			vrfVerifierErr:  errors.New("test error"),
			errWrapped:      ErrBadPostVRF,
			errMessage:      "could not verify post block VRF proof: test error",
			expectPreDigest: true,
		},
		"invalid next epoch descriptor": {
			slot: 10,
			digest: newTestDigest(t, codec, &validPreDigest,
				types.NewConsensusLog(emptyNextEpoch)),
			vrfVerifierOk:   true,
			expectVRFCall:   true,
			errWrapped:      types.ErrEmptyAuthoritySet,
			expectPreDigest: true,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			descriptors, err := NewEpochDescriptors(codec, genesis)
			require.NoError(t, err)
			for _, index := range testCase.disabled {
				descriptors.Disable(testCase.epoch, index)
			}

			vrfVerifier := NewMockVRFVerifier(ctrl)
			if testCase.expectVRFCall {
				vrfVerifier.EXPECT().
					VerifyVRF(ids[2], gomock.Any(), output, proof).
					Return(testCase.vrfVerifierOk, testCase.vrfVerifierErr)
			}

			verifier := NewVerifier(codec, descriptors, vrfVerifier)

			digests, err := verifier.VerifyAuthorship(testCase.epoch, testCase.slot, testCase.digest)

			if testCase.errWrapped == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, testCase.errWrapped)
			}
			if testCase.errMessage != "" {
				assert.EqualError(t, err, testCase.errMessage)
			}
			if testCase.expectPreDigest {
				require.NotNil(t, digests.PreDigest)
				assert.Equal(t, types.SlotNumber(10), digests.PreDigest.SlotNumber)
			} else {
				assert.Nil(t, digests.PreDigest)
			}
		})
	}
}

func Test_Verifier_ImportDigests(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	ids := newTestAuthorityIDs(3)
	descriptors, err := NewEpochDescriptors(codec, newTestDescriptor(t, 0, ids[0]))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	verifier := NewVerifier(codec, descriptors, NewMockVRFVerifier(ctrl))

	next := newTestDescriptor(t, 1, ids[1], ids[2])
	err = verifier.ImportDigests(3, types.SassafrasDigests{
		NextEpoch: &next,
		Disabled:  []types.AuthorityIndex{0},
	})
	require.NoError(t, err)

	active, err := descriptors.Active(5)
	require.NoError(t, err)
	assert.True(t, next.Equal(active))
	assert.True(t, descriptors.IsDisabled(3, 0))

	conflicting := newTestDescriptor(t, 2, ids[1])
	err = verifier.ImportDigests(3, types.SassafrasDigests{NextEpoch: &conflicting})
	assert.ErrorIs(t, err, ErrConflictingDescriptor)
}
