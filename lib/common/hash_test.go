// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlake2bHash_EmptyHash(t *testing.T) {
	t.Parallel()

	// test case from https://github.com/noot/blake2b_test which uses the blake2-rfp rust crate
	h, err := Blake2bHash([]byte{})
	require.NoError(t, err)

	expected, err := HexToHash("0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8")
	require.NoError(t, err)
	require.Equal(t, expected, h)
	assert.Equal(t, h, MustBlake2bHash(nil))
}

func Test_Hash(t *testing.T) {
	t.Parallel()

	h := NewHash([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
		17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33})

	assert.Equal(t, byte(32), h[31])
	assert.False(t, h.IsEmpty())
	assert.True(t, Hash{}.IsEmpty())
	assert.Equal(t, "0x01020304...1d1e1f20", h.Short())
	assert.Equal(t, "0x0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20", h.String())

	parsed, err := HexToHash(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)

	_, err = HexToHash("0x0102")
	assert.ErrorIs(t, err, ErrInvalidHashLength)
}
