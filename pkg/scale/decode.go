// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scale

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"
)

// Unmarshal decodes data into dst, which must be a non nil pointer.
// The whole of data must be consumed, otherwise ErrTrailingBytes is returned.
func (c *Codec) Unmarshal(data []byte, dst interface{}) (err error) {
	d := c.NewDecoder(data)
	err = d.Decode(dst)
	if err != nil {
		return err
	}
	if d.Remaining() > 0 {
		return fmt.Errorf("%w: %d byte(s) left after decoding %T",
			ErrTrailingBytes, d.Remaining(), dst)
	}
	return nil
}

// Decoder decodes consecutive values from a single input.
type Decoder struct {
	ds decodeState
}

// NewDecoder returns a decoder reading from data.
func (c *Codec) NewDecoder(data []byte) *Decoder {
	return &Decoder{
		ds: decodeState{
			Reader: bytes.NewReader(data),
			codec:  c,
		},
	}
}

// Decode decodes the next value into dst. Unlike Unmarshal it does not require
// the input to be exhausted afterwards.
func (d *Decoder) Decode(dst interface{}) (err error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: destination %T is not a non nil pointer", ErrUnsupportedType, dst)
	}
	return d.ds.decode(rv.Elem())
}

// Remaining returns the number of bytes not yet consumed.
func (d *Decoder) Remaining() int {
	return d.ds.Len()
}

// DecodeCompact decodes a compact integer at the start of data and returns it
// with the number of bytes it occupied.
func DecodeCompact(data []byte) (n uint64, read int, err error) {
	ds := decodeState{Reader: bytes.NewReader(data)}
	n, err = ds.decodeCompact()
	if err != nil {
		return 0, 0, err
	}
	return n, len(data) - ds.Len(), nil
}

type decodeState struct {
	*bytes.Reader
	codec *Codec
}

// read returns the next n bytes or ErrTruncatedInput.
func (ds *decodeState) read(n int) ([]byte, error) {
	if ds.Len() < n {
		return nil, fmt.Errorf("%w: need %d byte(s), %d left", ErrTruncatedInput, n, ds.Len())
	}
	buf := make([]byte, n)
	_, err := io.ReadFull(ds, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTruncatedInput, err)
	}
	return buf, nil
}

func (ds *decodeState) readByte() (byte, error) {
	b, err := ds.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: need 1 byte, 0 left", ErrTruncatedInput)
	}
	return b, nil
}

// decode decodes into the settable value v.
func (ds *decodeState) decode(v reflect.Value) (err error) {
	if v.Kind() != reflect.Ptr && reflect.PtrTo(v.Type()).Implements(varyingDataTypeType) {
		return ds.decodeVaryingDataType(v.Addr().Interface().(VaryingDataType))
	}

	if length, ok := ds.codec.fixedLengths[v.Type()]; ok {
		buf, err := ds.read(length)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", v.Type(), err)
		}
		v.SetBytes(buf)
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		err = ds.decodeBool(v)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		var u uint64
		u, err = ds.decodeFixedWidthUint(v.Type().Size())
		v.SetUint(u)
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		var u uint64
		u, err = ds.decodeFixedWidthUint(v.Type().Size())
		v.SetInt(signExtend(u, v.Type().Size()))
	case reflect.String:
		var b []byte
		b, err = ds.decodeBytes(v.Type())
		v.SetString(string(b))
	case reflect.Ptr:
		err = ds.decodeOption(v)
	case reflect.Struct:
		err = ds.decodeStruct(v)
	case reflect.Array:
		err = ds.decodeArray(v)
	case reflect.Slice:
		err = ds.decodeSlice(v)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())
	}
	return err
}

func (ds *decodeState) decodeVaryingDataType(vdt VaryingDataType) (err error) {
	index, err := ds.readByte()
	if err != nil {
		return err
	}
	value, err := vdt.ValueAt(uint(index))
	if err != nil {
		return fmt.Errorf("decoding %T at index %d: %w", vdt, index, err)
	}

	elem := reflect.New(reflect.TypeOf(value)).Elem()
	err = ds.decode(elem)
	if err != nil {
		return fmt.Errorf("decoding %T value %T: %w", vdt, value, err)
	}
	return vdt.SetValue(elem.Interface())
}

func (ds *decodeState) decodeBool(v reflect.Value) (err error) {
	b, err := ds.readByte()
	if err != nil {
		return err
	}
	switch b {
	case 0x00:
		v.SetBool(false)
	case 0x01:
		v.SetBool(true)
	default:
		return fmt.Errorf("%w: 0x%02x", errInvalidBoolByte, b)
	}
	return nil
}

func (ds *decodeState) decodeOption(v reflect.Value) (err error) {
	b, err := ds.readByte()
	if err != nil {
		return err
	}
	switch b {
	case 0x00:
		v.Set(reflect.Zero(v.Type()))
		return nil
	case 0x01:
		elem := reflect.New(v.Type().Elem())
		err = ds.decode(elem.Elem())
		if err != nil {
			return err
		}
		v.Set(elem)
		return nil
	default:
		return fmt.Errorf("%w: 0x%02x", errInvalidOptionByte, b)
	}
}

func (ds *decodeState) decodeStruct(v reflect.Value) (err error) {
	indices, err := ds.codec.fieldScaleIndices(v.Type())
	if err != nil {
		return err
	}
	for _, i := range indices {
		err = ds.decode(v.Field(i.fieldIndex))
		if err != nil {
			return fmt.Errorf("decoding field %s.%s: %w",
				v.Type().Name(), v.Type().Field(i.fieldIndex).Name, err)
		}
	}
	return nil
}

func (ds *decodeState) decodeArray(v reflect.Value) (err error) {
	if v.Type().Elem() == reflect.TypeOf(byte(0)) {
		buf, err := ds.read(v.Len())
		if err != nil {
			return err
		}
		reflect.Copy(v, reflect.ValueOf(buf))
		return nil
	}

	for i := 0; i < v.Len(); i++ {
		err = ds.decode(v.Index(i))
		if err != nil {
			return err
		}
	}
	return nil
}

// decodeLength decodes a compact sequence length and checks it against the
// configured maximum for t and against the input left.
func (ds *decodeState) decodeLength(t reflect.Type) (length int, err error) {
	n, err := ds.decodeCompact()
	if err != nil {
		return 0, err
	}

	if max, ok := ds.codec.maxLengths[t]; ok && n > max {
		return 0, &SequenceLengthError{Type: t, Length: n, Max: max, Remaining: ds.Len()}
	}

	minSize := uint64(1)
	if t.Kind() == reflect.Slice {
		if size := ds.codec.minEncodedSize(t.Elem()); size > minSize {
			minSize = size
		}
	}
	if n > uint64(ds.Len())/minSize {
		return 0, &SequenceLengthError{Type: t, Length: n, Remaining: ds.Len(), exceedsInput: true}
	}
	return int(n), nil
}

func (ds *decodeState) decodeBytes(t reflect.Type) ([]byte, error) {
	length, err := ds.decodeLength(t)
	if err != nil {
		return nil, err
	}
	return ds.read(length)
}

func (ds *decodeState) decodeSlice(v reflect.Value) (err error) {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		b, err := ds.decodeBytes(v.Type())
		if err != nil {
			return err
		}
		v.SetBytes(b)
		return nil
	}

	length, err := ds.decodeLength(v.Type())
	if err != nil {
		return err
	}

	slice := reflect.MakeSlice(v.Type(), length, length)
	for i := 0; i < length; i++ {
		err = ds.decode(slice.Index(i))
		if err != nil {
			return fmt.Errorf("decoding element %d of %s: %w", i, v.Type(), err)
		}
	}
	v.Set(slice)
	return nil
}

// decodeFixedWidthUint reads size bytes in little endian order.
func (ds *decodeState) decodeFixedWidthUint(size uintptr) (uint64, error) {
	buf, err := ds.read(int(size))
	if err != nil {
		return 0, err
	}
	padded := make([]byte, 8)
	copy(padded, buf)
	return binary.LittleEndian.Uint64(padded), nil
}

func signExtend(u uint64, size uintptr) int64 {
	shift := 64 - 8*size
	return int64(u<<shift) >> shift
}

// decodeCompact decodes a SCALE compact integer, rejecting any encoding that
// is not the shortest one for its value.
func (ds *decodeState) decodeCompact() (uint64, error) {
	prefix, err := ds.readByte()
	if err != nil {
		return 0, err
	}

	switch prefix & 0b11 {
	case 0b00:
		return uint64(prefix >> 2), nil
	case 0b01:
		next, err := ds.readByte()
		if err != nil {
			return 0, err
		}
		n := uint64(binary.LittleEndian.Uint16([]byte{prefix, next}) >> 2)
		if n < 1<<6 {
			return 0, fmt.Errorf("%w: %d in two byte mode", ErrNonCanonicalCompact, n)
		}
		return n, nil
	case 0b10:
		rest, err := ds.read(3)
		if err != nil {
			return 0, err
		}
		n := uint64(binary.LittleEndian.Uint32(append([]byte{prefix}, rest...)) >> 2)
		if n < 1<<14 {
			return 0, fmt.Errorf("%w: %d in four byte mode", ErrNonCanonicalCompact, n)
		}
		return n, nil
	default:
		numBytes := int(prefix>>2) + 4
		if numBytes > 8 {
			return 0, fmt.Errorf("%w: compact integer of %d bytes overflows 64 bits",
				ErrOversizedSequence, numBytes)
		}
		buf, err := ds.read(numBytes)
		if err != nil {
			return 0, err
		}
		padded := make([]byte, 8)
		copy(padded, buf)
		n := binary.LittleEndian.Uint64(padded)
		if n < 1<<30 || buf[numBytes-1] == 0 {
			return 0, fmt.Errorf("%w: %d in %d byte big integer mode", ErrNonCanonicalCompact, n, numBytes)
		}
		return n, nil
	}
}
