// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

type TypeTag rune

const (
	TypeInt32   TypeTag = 'i'
	TypeFloat32 TypeTag = 'f'
	TypeString  TypeTag = 's'
	TypeTrue    TypeTag = 'T'
	TypeFalse   TypeTag = 'F'
	TypeInvalid TypeTag = 0
)

// Value is the single typed payload of a Message. Exactly one concrete type
// exists per supported tag: Int32, Float32, Bool, String. The set is sealed;
// consumers type-switch over it.
type Value interface {
	// Tag returns the type tag the value encodes as. Bool yields TypeTrue
	// or TypeFalse depending on its value.
	Tag() TypeTag

	// payloadSize is the wire length of the payload after the type tag
	// block: 4 for int32/float32, 0 for bool, padded length for string.
	payloadSize() int

	// putPayload writes the payload into b and returns the bytes written.
	// The caller has already checked capacity.
	putPayload(b []byte) int
}

type (
	Int32   int32
	Float32 float32
	Bool    bool
	String  string
)

func (v Int32) Tag() TypeTag { return TypeInt32 }
func (v Int32) payloadSize() int { return bit32Size }
func (v Int32) String() string { return strconv.FormatInt(int64(v), 10) }

func (v Int32) putPayload(b []byte) int {
	binary.BigEndian.PutUint32(b, uint32(v))
	return bit32Size
}

func (v Float32) Tag() TypeTag { return TypeFloat32 }
func (v Float32) payloadSize() int { return bit32Size }
func (v Float32) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

func (v Float32) putPayload(b []byte) int {
	binary.BigEndian.PutUint32(b, math.Float32bits(float32(v)))
	return bit32Size
}

// Bool carries no payload bytes; its value lives in the type tag itself.
func (v Bool) Tag() TypeTag {
	if v {
		return TypeTrue
	}
	return TypeFalse
}

func (v Bool) payloadSize() int { return 0 }
func (v Bool) putPayload(_ []byte) int { return 0 }

func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

func (v String) Tag() TypeTag { return TypeString }
func (v String) payloadSize() int { return paddedLength(string(v)) }
func (v String) String() string { return string(v) }

func (v String) putPayload(b []byte) int {
	return writePaddedString(string(v), b)
}

// parseValue reads the fixed 4-byte type tag block at ix and the payload
// behind it. Only a single tag per message is supported, so the block is
// always ',' + tag + two zero bytes.
func parseValue(data []byte, ix int) (Value, int, error) {
	if ix >= len(data) {
		return nil, ix, fmt.Errorf("parseValue: %w", ErrTruncated)
	}
	if data[ix] != ',' {
		return nil, ix, fmt.Errorf("parseValue: missing ',' at %d: %w", ix, ErrInvalidType)
	}
	if ix+1 >= len(data) {
		return nil, ix, fmt.Errorf("parseValue: %w", ErrTruncated)
	}

	tag := data[ix+1]
	ix += bit32Size

	switch tag {
	case 'i':
		if ix+bit32Size > len(data) {
			return nil, ix, fmt.Errorf("parseValue: short int32 payload: %w", ErrTruncated)
		}
		v := Int32(binary.BigEndian.Uint32(data[ix:]))
		return v, ix + bit32Size, nil

	case 'f':
		if ix+bit32Size > len(data) {
			return nil, ix, fmt.Errorf("parseValue: short float32 payload: %w", ErrTruncated)
		}
		v := Float32(math.Float32frombits(binary.BigEndian.Uint32(data[ix:])))
		return v, ix + bit32Size, nil

	case 'T':
		return Bool(true), ix, nil

	case 'F':
		return Bool(false), ix, nil

	case 's':
		s, ix, err := parsePaddedString(data, ix)
		if err != nil {
			return nil, ix, fmt.Errorf("parseValue: %w", err)
		}
		return String(s), ix, nil

	default:
		return nil, ix, fmt.Errorf("parseValue: unsupported type tag %q: %w", tag, ErrInvalidType)
	}
}
