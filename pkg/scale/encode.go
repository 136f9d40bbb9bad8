// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
	"reflect"
)

// Marshal encodes v. The encoding of a given value is always the same.
func (c *Codec) Marshal(v interface{}) (b []byte, err error) {
	es := encodeState{codec: c}
	err = es.marshal(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return es.Bytes(), nil
}

// EncodeCompact returns the SCALE compact encoding of n.
func EncodeCompact(n uint64) []byte {
	var es encodeState
	es.encodeCompact(n)
	return es.Bytes()
}

type encodeState struct {
	bytes.Buffer
	codec *Codec
}

func (es *encodeState) marshal(v reflect.Value) (err error) {
	if !v.IsValid() {
		return fmt.Errorf("%w: nil value", ErrUnsupportedType)
	}

	if vdt, ok := varyingDataTypeOf(v); ok {
		return es.encodeVaryingDataType(vdt)
	}

	if length, ok := es.codec.fixedLengths[v.Type()]; ok {
		return es.encodeFixedBytes(v, length)
	}

	switch v.Kind() {
	case reflect.Bool:
		es.encodeBool(v.Bool())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		es.encodeFixedWidthUint(v.Uint(), v.Type().Size())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		es.encodeFixedWidthUint(uint64(v.Int()), v.Type().Size())
	case reflect.String:
		es.encodeBytes([]byte(v.String()))
	case reflect.Ptr:
		// Assuming that anything that is a pointer is an Option to capture {nil, T}
		if v.IsNil() {
			return es.WriteByte(0)
		}
		_ = es.WriteByte(1)
		err = es.marshal(v.Elem())
	case reflect.Interface:
		err = es.marshal(v.Elem())
	case reflect.Struct:
		err = es.encodeStruct(v)
	case reflect.Array:
		err = es.encodeArray(v)
	case reflect.Slice:
		err = es.encodeSlice(v)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
	return err
}

// varyingDataTypeOf returns v as a VaryingDataType if its pointer type implements it.
// Non addressable values are copied so the pointer receiver methods can be used.
func varyingDataTypeOf(v reflect.Value) (vdt VaryingDataType, ok bool) {
	if v.Kind() == reflect.Ptr || !reflect.PtrTo(v.Type()).Implements(varyingDataTypeType) {
		return nil, false
	}
	if !v.CanAddr() {
		copied := reflect.New(v.Type())
		copied.Elem().Set(v)
		return copied.Interface().(VaryingDataType), true
	}
	return v.Addr().Interface().(VaryingDataType), true
}

func (es *encodeState) encodeVaryingDataType(vdt VaryingDataType) (err error) {
	index, value, err := vdt.IndexValue()
	if err != nil {
		return err
	}
	if index > 255 {
		return fmt.Errorf("%w: index %d does not fit in a byte", ErrUnsupportedVaryingDataTypeValue, index)
	}
	_ = es.WriteByte(byte(index))
	return es.marshal(reflect.ValueOf(value))
}

// encodeFixedBytes writes a byte slice of a known width without length prefix.
func (es *encodeState) encodeFixedBytes(v reflect.Value, length int) (err error) {
	if v.Len() != length {
		return fmt.Errorf("%w: %s has %d bytes, expected %d",
			ErrInvalidFixedLength, v.Type(), v.Len(), length)
	}
	_, err = es.Write(v.Bytes())
	return err
}

// encodeSlice writes the compact encoded length followed by each element.
func (es *encodeState) encodeSlice(v reflect.Value) (err error) {
	length := uint64(v.Len())
	if max, ok := es.codec.maxLengths[v.Type()]; ok && length > max {
		return &SequenceLengthError{Type: v.Type(), Length: length, Max: max}
	}

	if v.Type().Elem().Kind() == reflect.Uint8 {
		es.encodeBytes(v.Bytes())
		return nil
	}

	es.encodeCompact(length)
	for i := 0; i < v.Len(); i++ {
		err = es.marshal(v.Index(i))
		if err != nil {
			return err
		}
	}
	return nil
}

// encodeArray encodes each element of the array in order, without length prefix.
func (es *encodeState) encodeArray(v reflect.Value) (err error) {
	if v.Type().Elem() == reflect.TypeOf(byte(0)) {
		for i := 0; i < v.Len(); i++ {
			_ = es.WriteByte(byte(v.Index(i).Uint()))
		}
		return nil
	}

	for i := 0; i < v.Len(); i++ {
		err = es.marshal(v.Index(i))
		if err != nil {
			return err
		}
	}
	return nil
}

// encodeStruct writes each of the struct fields in scale index order
func (es *encodeState) encodeStruct(v reflect.Value) (err error) {
	indices, err := es.codec.fieldScaleIndices(v.Type())
	if err != nil {
		return err
	}
	for _, i := range indices {
		err = es.marshal(v.Field(i.fieldIndex))
		if err != nil {
			return fmt.Errorf("encoding field %s.%s: %w",
				v.Type().Name(), v.Type().Field(i.fieldIndex).Name, err)
		}
	}
	return nil
}

// encodeBool performs the following:
// l = true -> write [1]
// l = false -> write [0]
func (es *encodeState) encodeBool(l bool) {
	if l {
		_ = es.WriteByte(0x01)
		return
	}
	_ = es.WriteByte(0x00)
}

// encodeBytes performs the following:
// b -> [encodeCompact(len(b)) b]
func (es *encodeState) encodeBytes(b []byte) {
	es.encodeCompact(uint64(len(b)))
	_, _ = es.Write(b)
}

// encodeFixedWidthUint writes the size low bytes of i in little endian order.
func (es *encodeState) encodeFixedWidthUint(i uint64, size uintptr) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, i)
	_, _ = es.Write(buf[:size])
}

// encodeCompact performs the following on integer i:
// if i < 2^6 write [00 i^2...i^8 ] [ 8 bits = 1 byte encoded ]
// if 2^6 <= i < 2^14 write [01 i^2...i^16] [ 16 bits = 2 byte encoded ]
// if 2^14 <= i < 2^30 write [10 i^2...i^32] [ 32 bits = 4 byte encoded ]
// if i >= 2^30 write [lower 2 bits of first byte = 11] [upper 6 bits of first byte = # of bytes following less 4]
// [append i as a byte array to the first byte]
func (es *encodeState) encodeCompact(i uint64) {
	switch {
	case i < 1<<6:
		_ = es.WriteByte(byte(i) << 2)
	case i < 1<<14:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(i<<2)+1)
		_, _ = es.Write(buf)
	case i < 1<<30:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(i<<2)+2)
		_, _ = es.Write(buf)
	default:
		// the most significant byte cannot be zero
		numBytes := (bits.Len64(i) + 7) / 8
		topSixBits := uint8(numBytes - 4)
		_ = es.WriteByte(topSixBits<<2 + 3)

		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, i)
		_, _ = es.Write(buf[:numBytes])
	}
}
