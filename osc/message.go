// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
)

// Packet is the interface for Message and Bundle.
type Packet interface {
	encoding.BinaryMarshaler
}

// Message represents a single OSC message: an OSC address and one typed
// value. The wire format this package speaks carries exactly one value per
// message, so the type tag block is always the fixed 4 bytes ',' + tag + two
// zero bytes.
type Message struct {
	Address string
	Value   Value
}

// Verify that Message implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, v Value) *Message {
	return &Message{Address: addr, Value: v}
}

// Equals returns true if the given OSC Message `m` is equal to the current
// OSC Message. It checks if the OSC address and the value are equal.
func (msg *Message) Equals(m *Message) bool {
	return reflect.DeepEqual(msg, m)
}

// String implements the fmt.Stringer interface.
func (msg *Message) String() string {
	if msg == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(msg.Address)
	if msg.Value == nil {
		return b.String()
	}

	b.WriteString(" ,")
	b.WriteRune(rune(msg.Value.Tag()))
	fmt.Fprintf(&b, " %v", msg.Value)

	return b.String()
}

// EncodedSize returns the exact number of bytes Encode will write: the
// padded address block, the 4-byte type tag block, and the payload.
func (msg *Message) EncodedSize() int {
	return paddedLength(msg.Address) + bit32Size + msg.Value.payloadSize()
}

// Encode serializes the message into buf and returns the number of bytes
// written. If buf is too small for the full message, it fails with
// ErrBufferTooSmall and writes nothing. Padding bytes are written
// explicitly, so a dirty (pooled) buffer is fine.
func (msg *Message) Encode(buf []byte) (int, error) {
	if msg.Address == "" || msg.Address[0] != '/' {
		return 0, fmt.Errorf("Encode: address %q: %w", msg.Address, ErrInvalidAddress)
	}
	if msg.Value == nil {
		return 0, fmt.Errorf("Encode: message has no value: %w", ErrInvalidValue)
	}
	if msg.EncodedSize() > len(buf) {
		return 0, fmt.Errorf("Encode: need %d bytes, have %d: %w", msg.EncodedSize(), len(buf), ErrBufferTooSmall)
	}

	n := writePaddedString(msg.Address, buf)

	// The fixed single-tag type block.
	buf[n] = ','
	buf[n+1] = byte(msg.Value.Tag())
	buf[n+2] = 0
	buf[n+3] = 0
	n += bit32Size

	n += msg.Value.putPayload(buf[n:])

	return n, nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (msg *Message) MarshalBinary() ([]byte, error) {
	buf := bPool.Get().(*[]byte)
	defer bPool.Put(buf)

	n, err := msg.Encode(*buf)
	if err != nil {
		return nil, err
	}

	b := make([]byte, n)
	copy(b, *buf)

	return b, nil
}

// ParseMessage parses a single OSC message from data. On failure no partial
// Message is returned. Trailing bytes after the value are ignored; the input
// need not be 32-bit aligned.
func ParseMessage(data []byte) (*Message, error) {
	msg := &Message{}
	if err := msg.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
// String payloads are copied out of data; the Message does not alias it.
func (msg *Message) UnmarshalBinary(data []byte) error {
	addr, ix, err := parseAddress(data, 0)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	v, _, err := parseValue(data, ix)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	msg.Address = addr
	msg.Value = v

	return nil
}

// parseAddress reads the padded address block starting at ix. The first byte
// of the buffer must be '/'.
func parseAddress(data []byte, ix int) (string, int, error) {
	if len(data) == 0 {
		return "", ix, fmt.Errorf("parseAddress: empty buffer: %w", ErrTruncated)
	}
	if data[0] != '/' {
		return "", ix, fmt.Errorf("parseAddress: %w", ErrInvalidAddress)
	}

	addr, ix, err := parsePaddedString(data, ix)
	if err != nil {
		return "", ix, fmt.Errorf("parseAddress: %w", err)
	}

	return addr, ix, nil
}
