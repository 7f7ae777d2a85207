// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import "errors"

// Error kinds returned by the codec. Match them with errors.Is; decode
// errors are usually wrapped with the failing stage for context.
var (
	// ErrInvalidAddress indicates an address that does not start with '/',
	// or an empty address on the encode side.
	ErrInvalidAddress = errors.New("osc: invalid address")

	// ErrInvalidType indicates a missing ',' before the type tag, or a
	// type tag outside the supported set (i, f, T, F, s).
	ErrInvalidType = errors.New("osc: invalid type tag")

	// ErrInvalidValue indicates a message with no value to encode.
	ErrInvalidValue = errors.New("osc: invalid value")

	// ErrTruncated indicates input that ends before the format says it
	// should: a missing string terminator, a short numeric payload, or a
	// cursor landing past the end of the buffer.
	ErrTruncated = errors.New("osc: truncated packet")

	// ErrBufferTooSmall indicates an encode buffer with too little
	// capacity for the packet. Bundles never return it for content
	// overflow; they stop early and report a resume index instead.
	ErrBufferTooSmall = errors.New("osc: buffer too small")
)
