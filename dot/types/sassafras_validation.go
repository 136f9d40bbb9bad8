// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrEmptyAuthoritySet is the reason for a next epoch descriptor without authorities.
	ErrEmptyAuthoritySet = errors.New("authority set is empty")
	// ErrDuplicateAuthority is the reason for an authority id listed twice in one set.
	ErrDuplicateAuthority = errors.New("duplicate authority")
	// ErrTooManyAuthorities is the reason for an authority set above MaxAuthorities.
	ErrTooManyAuthorities = errors.New("too many authorities")
	// ErrTooManyCommitments is the reason for a post block descriptor above MaxCommitments.
	ErrTooManyCommitments = errors.New("too many ticket commitments")
	// ErrInvalidFixedWidth is the reason for a fixed width field of the wrong length.
	ErrInvalidFixedWidth = errors.New("fixed width field has the wrong length")
	// ErrAuthorityOutOfRange is the reason for an authority index outside the active set.
	ErrAuthorityOutOfRange = errors.New("authority index out of range")
)

// ValidationError reports a well formed record that is semantically invalid.
// Reason is one of the sentinel errors of this file.
type ValidationError struct {
	Reason error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrValidationFailed, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidationFailed, e.Reason, e.Detail)
}

// Is implements errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Unwrap returns the reason.
func (e *ValidationError) Unwrap() error {
	return e.Reason
}

func newValidationError(reason error, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Reason: reason,
		Detail: fmt.Sprintf(format, args...),
	}
}

// ValidateAuthorityIndex returns true if the authority index of d is within
// an authority set of setSize entries.
func ValidateAuthorityIndex(d PreDigest, setSize int) bool {
	return setSize > 0 && uint64(d.AuthorityIndex) < uint64(setSize)
}

// ValidatePreDigest checks the fixed width fields of d.
func ValidatePreDigest(cfg ProtocolConfig, d PreDigest) error {
	err := d.checkLengths(cfg)
	if err != nil {
		return newValidationError(ErrInvalidFixedWidth, "%s", err)
	}
	return nil
}

// ValidateNextEpochDescriptor checks the authority set of d is non empty,
// within the protocol maximum and has no duplicate authority id.
func ValidateNextEpochDescriptor(cfg ProtocolConfig, d NextEpochDescriptor) error {
	if len(d.Authorities) == 0 {
		return newValidationError(ErrEmptyAuthoritySet, "next epoch descriptor has no authority")
	}

	if exceedsMax(len(d.Authorities), cfg.MaxAuthorities) {
		return newValidationError(ErrTooManyAuthorities, "%d authorities, maximum is %d",
			len(d.Authorities), cfg.MaxAuthorities)
	}

	seen := make(map[string]int, len(d.Authorities))
	for i, authority := range d.Authorities {
		if len(authority.ID) != cfg.AuthorityIDLength {
			return newValidationError(ErrInvalidFixedWidth, "authority %d id has %d bytes, expected %d",
				i, len(authority.ID), cfg.AuthorityIDLength)
		}

		key := string(authority.ID)
		if first, ok := seen[key]; ok {
			return newValidationError(ErrDuplicateAuthority, "authority %s at indexes %d and %d",
				bytesToString(authority.ID), first, i)
		}
		seen[key] = i
	}

	if len(d.Randomness) != cfg.RandomnessLength {
		return newValidationError(ErrInvalidFixedWidth, "randomness has %d bytes, expected %d",
			len(d.Randomness), cfg.RandomnessLength)
	}
	return nil
}

// ValidatePostBlockDescriptor checks the number and width of the commitments of d.
func ValidatePostBlockDescriptor(cfg ProtocolConfig, d PostBlockDescriptor) error {
	if exceedsMax(len(d.Commitments), cfg.MaxCommitments) {
		return newValidationError(ErrTooManyCommitments, "%d commitments, maximum is %d",
			len(d.Commitments), cfg.MaxCommitments)
	}

	for i, commitment := range d.Commitments {
		if len(commitment) != cfg.VRFProofLength {
			return newValidationError(ErrInvalidFixedWidth, "commitment %d has %d bytes, expected %d",
				i, len(commitment), cfg.VRFProofLength)
		}
	}
	return nil
}
