// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"encoding/binary"
	"fmt"
	"time"
)

const bundleTagString = "#bundle"

// bundleHeaderSize is the "#bundle\0" literal plus the 8-byte timetag.
const bundleHeaderSize = 8 + bit64Size

// Bundle packages messages for atomic delivery: the OSC-string "#bundle"
// followed by a Timetag, followed by zero or more length-prefixed encoded
// messages. Bundles are encode-only in this package; there is no bundle
// decoder.
type Bundle struct {
	Timetag  Timetag
	Messages []*Message
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns a Bundle holding the given messages, stamped with the
// current wall-clock time. The stamp is taken once here so chunks of one
// bundle encoded across several buffers all carry the same timetag.
func NewBundle(msgs ...*Message) *Bundle {
	return &Bundle{Timetag: NewTimetag(), Messages: msgs}
}

// NewBundleWithTime returns a Bundle stamped with the given time.
func NewBundleWithTime(t time.Time, msgs ...*Message) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(t), Messages: msgs}
}

// Append appends a message to the bundle.
func (b *Bundle) Append(msg *Message) {
	b.Messages = append(b.Messages, msg)
}

// Encode serializes the bundle into buf, beginning with Messages[start],
// and returns the bytes written and the index of the first message that did
// not fit. It writes the 16-byte header, then length-prefixed messages until
// one would overflow buf; that message is left for the next call. next equals
// len(b.Messages) when everything fit. Encode never writes past len(buf).
//
// Resuming is the caller's loop: keep calling with start = next and a fresh
// buffer until next reaches len(b.Messages). A buffer too small for the
// header alone fails with ErrBufferTooSmall, since no call could ever make
// progress on it.
func (b *Bundle) Encode(buf []byte, start int) (n, next int, err error) {
	if len(buf) < bundleHeaderSize {
		return 0, start, fmt.Errorf("Encode: bundle header needs %d bytes, have %d: %w",
			bundleHeaderSize, len(buf), ErrBufferTooSmall)
	}

	n = writePaddedString(bundleTagString, buf)
	binary.BigEndian.PutUint64(buf[n:], uint64(b.Timetag))
	n += bit64Size

	for next = start; next < len(b.Messages); next++ {
		msg := b.Messages[next]
		if n+bit32Size+msg.EncodedSize() > len(buf) {
			return n, next, nil
		}

		written, err := msg.Encode(buf[n+bit32Size:])
		if err != nil {
			return n, next, fmt.Errorf("Encode: message %d: %w", next, err)
		}

		binary.BigEndian.PutUint32(buf[n:], uint32(written))
		n += bit32Size + written
	}

	return n, next, nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. It is the
// single-buffer convenience: if the bundle does not fit MaxPacketSize it
// fails with ErrBufferTooSmall, and the caller should chunk with Encode
// instead.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	buf := bPool.Get().(*[]byte)
	defer bPool.Put(buf)

	n, next, err := b.Encode(*buf, 0)
	if err != nil {
		return nil, err
	}
	if next < len(b.Messages) {
		return nil, fmt.Errorf("MarshalBinary: bundle exceeds %d bytes at message %d: %w",
			MaxPacketSize, next, ErrBufferTooSmall)
	}

	bb := make([]byte, n)
	copy(bb, *buf)

	return bb, nil
}
