// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrTruncatedInput is returned when the input ends in the middle of a value.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrTrailingBytes is returned when bytes remain after a top level value is decoded.
	ErrTrailingBytes = errors.New("trailing bytes")
	// ErrOversizedSequence is returned when a sequence length exceeds its maximum or
	// cannot possibly fit in the remaining input.
	ErrOversizedSequence = errors.New("oversized sequence")
	// ErrNonCanonicalCompact is returned when a compact integer is not encoded in its
	// shortest form.
	ErrNonCanonicalCompact = errors.New("non-canonical compact integer")
	// ErrInvalidFixedLength is returned when encoding a fixed width value of the wrong length.
	ErrInvalidFixedLength = errors.New("invalid fixed length")
	// ErrUnsupportedType is returned for values the codec cannot encode or decode.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedVaryingDataTypeValue is returned for a value a varying data type
	// cannot hold or encode.
	ErrUnsupportedVaryingDataTypeValue = errors.New("unsupported varying data type value")
	// ErrUnknownVaryingDataTypeValue is returned for an index a varying data type does not define.
	ErrUnknownVaryingDataTypeValue = errors.New("unknown varying data type value")

	errInvalidOptionByte = errors.New("invalid option byte")
	errInvalidBoolByte   = errors.New("invalid bool byte")
)

// SequenceLengthError is returned when a declared sequence length is rejected.
// It matches ErrOversizedSequence, and also ErrTruncatedInput when the declared
// length needs more bytes than the input has left.
type SequenceLengthError struct {
	Type      reflect.Type
	Length    uint64
	Max       uint64
	Remaining int

	exceedsInput bool
}

func (e *SequenceLengthError) Error() string {
	if e.exceedsInput {
		return fmt.Sprintf("%s: %s of length %d cannot fit in %d remaining byte(s)",
			ErrOversizedSequence, e.Type, e.Length, e.Remaining)
	}
	return fmt.Sprintf("%s: %s of length %d exceeds maximum %d",
		ErrOversizedSequence, e.Type, e.Length, e.Max)
}

// Is implements errors.Is.
func (e *SequenceLengthError) Is(target error) bool {
	switch target {
	case ErrOversizedSequence:
		return true
	case ErrTruncatedInput:
		return e.exceedsInput
	default:
		return false
	}
}
