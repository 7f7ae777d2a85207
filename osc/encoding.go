// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"bytes"
	"fmt"
	"sync"
)

////
// De/Encoding helpers
////

const (
	// MaxPacketSize is the fixed capacity assumed by the encode path and
	// the receive loop. Encoding a packet larger than this fails.
	MaxPacketSize = 4096

	bit32Size = 4
	bit64Size = 8
)

var bPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, MaxPacketSize)
		return &b
	},
}

// parsePaddedString reads a null-terminated, 4-byte-padded string starting at
// ix and returns the string and the cursor advanced past the padding.
func parsePaddedString(data []byte, ix int) (string, int, error) {
	if ix >= len(data) {
		return "", ix, fmt.Errorf("parsePaddedString: %w", ErrTruncated)
	}

	pos := bytes.IndexByte(data[ix:], 0)
	if pos == -1 {
		return "", ix, fmt.Errorf("parsePaddedString: missing terminator: %w", ErrTruncated)
	}

	s := string(data[ix : ix+pos])

	// Consume the terminator, then align up. The padding may run past the
	// end of the buffer; that only matters if a later read lands there.
	ix += pos + 1
	ix += padBytesNeeded(ix)

	return s, ix, nil
}

// writePaddedString writes str, a null terminator, and zero padding to the
// next 4-byte boundary. The padding is written explicitly: b may be pooled
// and carry bytes from a previous packet. Returns the number of bytes
// written. The caller checks capacity.
func writePaddedString(str string, b []byte) int {
	n := copy(b, str)
	b[n] = 0
	n++
	for ; n%4 != 0; n++ {
		b[n] = 0
	}
	return n
}

// paddedLength returns the wire length of a null-terminated, padded string.
func paddedLength(str string) int {
	n := len(str) + 1
	return n + padBytesNeeded(n)
}

// padBytesNeeded determines how many bytes are needed to fill up to the next
// 4 byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
