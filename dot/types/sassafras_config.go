// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidProtocolConfig is returned when a ProtocolConfig fails validation.
var ErrInvalidProtocolConfig = errors.New("invalid protocol configuration")

var configValidator = validator.New()

// ProtocolConfig holds the protocol parameters the digest wire format depends on.
// It is fixed at genesis and passed explicitly to the codec and validation
// functions, so several chains can be handled in one process.
type ProtocolConfig struct {
	RandomnessLength  int `validate:"gt=0"`
	VRFOutputLength   int `validate:"gt=0"`
	VRFProofLength    int `validate:"gt=0"`
	AuthorityIDLength int `validate:"gt=0"`
	// MaxAuthorities bounds NextEpochDescriptor.Authorities.
	MaxAuthorities uint32 `validate:"gt=0"`
	// MaxCommitments bounds PostBlockDescriptor.Commitments.
	MaxCommitments uint32 `validate:"gt=0"`
}

// DefaultProtocolConfig returns the parameters used with sr25519 authorities.
func DefaultProtocolConfig() ProtocolConfig {
	return ProtocolConfig{
		RandomnessLength:  32,
		VRFOutputLength:   32,
		VRFProofLength:    64,
		AuthorityIDLength: 32,
		MaxAuthorities:    100_000,
		MaxCommitments:    1_024,
	}
}

// Validate returns an error wrapping ErrInvalidProtocolConfig if any parameter is not set.
func (c ProtocolConfig) Validate() error {
	err := configValidator.Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProtocolConfig, err)
	}
	return nil
}
