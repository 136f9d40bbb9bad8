// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

// VaryingDataType is analogous to a rust enum.
// It is encoded as a single index byte followed by the encoding of the value.
// Implementations use pointer receivers; the zero value has no value set.
type VaryingDataType interface {
	// IndexValue returns the index and the value currently set.
	IndexValue() (index uint, value any, err error)
	// SetValue sets the value, which must be one of the supported types.
	SetValue(value any) (err error)
	// ValueAt returns the zero value of the type stored at index.
	ValueAt(index uint) (value any, err error)
}
