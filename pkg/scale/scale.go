// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// package level cache for fieldScaleIndices
var cache = &fieldScaleIndicesCache{
	cache: make(map[reflect.Type]fieldScaleIndices),
}

// fieldScaleIndex is used to map field index to scale index
type fieldScaleIndex struct {
	fieldIndex int
	scaleIndex *int
}
type fieldScaleIndices []fieldScaleIndex

// fieldScaleIndicesCache stores the order of the fields per struct
type fieldScaleIndicesCache struct {
	cache map[reflect.Type]fieldScaleIndices
	sync.RWMutex
}

// fieldScaleIndices returns the exported fields of t in encoding order. Fields
// tagged `scale:"-"` are skipped, fields tagged with a number are encoded first
// in ascending tag order, the rest follow in declaration order.
func (fsic *fieldScaleIndicesCache) fieldScaleIndices(t reflect.Type) (indices fieldScaleIndices, err error) {
	fsic.RLock()
	indices, ok := fsic.cache[t]
	fsic.RUnlock()
	if ok {
		return indices, nil
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := strings.TrimSpace(field.Tag.Get("scale"))
		switch tag {
		case "":
			indices = append(indices, fieldScaleIndex{
				fieldIndex: i,
			})
		case "-":
			// ignore this field
			continue
		default:
			scaleIndex, err := strconv.Atoi(tag)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid scale tag %q on field %s.%s",
					ErrUnsupportedType, tag, t.Name(), field.Name)
			}
			indices = append(indices, fieldScaleIndex{
				fieldIndex: i,
				scaleIndex: &scaleIndex,
			})
		}
	}

	sort.SliceStable(indices, func(i, j int) bool {
		switch {
		case indices[i].scaleIndex != nil && indices[j].scaleIndex != nil:
			return *indices[i].scaleIndex < *indices[j].scaleIndex
		case indices[i].scaleIndex != nil:
			return true
		case indices[j].scaleIndex != nil:
			return false
		default:
			return indices[i].fieldIndex < indices[j].fieldIndex
		}
	})

	fsic.Lock()
	fsic.cache[t] = indices
	fsic.Unlock()
	return indices, nil
}

// Codec encodes and decodes values in the SCALE format. A Codec is immutable once
// constructed and safe for concurrent use.
type Codec struct {
	fixedLengths map[reflect.Type]int
	maxLengths   map[reflect.Type]uint64
	*fieldScaleIndicesCache
}

// Option configures a Codec.
type Option func(c *Codec)

// FixedLength makes the codec treat values of the byte slice type T as a fixed
// width field of length bytes: no length prefix is written and exactly length
// bytes are read back.
func FixedLength[T ~[]byte](length int) Option {
	return func(c *Codec) {
		c.fixedLengths[typeOf[T]()] = length
	}
}

// MaxLength bounds the number of elements a sequence of type T may hold.
// Encoding or decoding a longer sequence fails with ErrOversizedSequence.
func MaxLength[T any](max uint64) Option {
	return func(c *Codec) {
		c.maxLengths[typeOf[T]()] = max
	}
}

// NewCodec creates a codec with the given per type rules.
func NewCodec(options ...Option) *Codec {
	c := &Codec{
		fixedLengths:           make(map[reflect.Type]int),
		maxLengths:             make(map[reflect.Type]uint64),
		fieldScaleIndicesCache: cache,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var defaultCodec = NewCodec()

// Marshal encodes v using a codec without any per type rules.
func Marshal(v interface{}) ([]byte, error) {
	return defaultCodec.Marshal(v)
}

// Unmarshal decodes data into dst using a codec without any per type rules.
// The whole of data must be consumed.
func Unmarshal(data []byte, dst interface{}) error {
	return defaultCodec.Unmarshal(data, dst)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

var varyingDataTypeType = typeOf[VaryingDataType]()

// minEncodedSize returns the smallest number of bytes a value of type t can be
// encoded to. It bounds declared sequence lengths before any allocation.
func (c *Codec) minEncodedSize(t reflect.Type) (size uint64) {
	if n, ok := c.fixedLengths[t]; ok {
		return uint64(n)
	}
	if t.Kind() != reflect.Ptr && reflect.PtrTo(t).Implements(varyingDataTypeType) {
		return 1
	}

	switch t.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32:
		return 4
	case reflect.Int, reflect.Uint, reflect.Int64, reflect.Uint64:
		return 8
	case reflect.Array:
		return uint64(t.Len()) * c.minEncodedSize(t.Elem())
	case reflect.Struct:
		indices, err := c.fieldScaleIndices(t)
		if err != nil {
			return 0
		}
		for _, i := range indices {
			size += c.minEncodedSize(t.Field(i.fieldIndex).Type)
		}
		return size
	default:
		// slices, strings and options start with at least one byte
		return 1
	}
}
