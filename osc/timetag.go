// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"encoding/binary"
	"time"
)

// Timetag is the 64-bit fixed point timestamp prefixing a bundle.
//
// This is an approximation of an NTP timetag, not the real thing: the high
// 32 bits hold seconds since the Unix epoch (not 1900), and the low 32 bits
// hold the raw nanosecond remainder rather than a fraction scaled to 2^32
// units. Both ends of the wire must agree on this representation.
type Timetag uint64

// NewTimetag returns a Timetag for the current wall-clock time.
func NewTimetag() Timetag {
	return NewTimetagFromTime(time.Now())
}

// NewTimetagFromTime returns the Timetag for the given time.
func NewTimetagFromTime(t time.Time) Timetag {
	return Timetag(uint64(t.Unix())<<32 | uint64(t.Nanosecond()))
}

// Time returns the time the tag represents. It inverts NewTimetagFromTime
// exactly.
func (t Timetag) Time() time.Time {
	return time.Unix(int64(t>>32), int64(t&0xffffffff))
}

// SecondsSinceEpoch returns the high 32 bits: seconds since the Unix epoch.
func (t Timetag) SecondsSinceEpoch() uint32 {
	return uint32(t >> 32)
}

// FractionalSecond returns the low 32 bits: the nanosecond remainder.
func (t Timetag) FractionalSecond() uint32 {
	return uint32(t)
}

// TimeTag returns the raw time tag value.
func (t Timetag) TimeTag() uint64 {
	return uint64(t)
}

// MarshalBinary converts the time tag to its 8 big-endian wire bytes.
func (t Timetag) MarshalBinary() ([]byte, error) {
	b := make([]byte, bit64Size)
	binary.BigEndian.PutUint64(b, uint64(t))
	return b, nil
}
