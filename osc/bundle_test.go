package osc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

var bundleMessages = []*Message{
	NewMessage("/synth/freq", Float32(440.0)),
	NewMessage("/synth/amp", Float32(0.5)),
	NewMessage("/synth/gate", Bool(true)),
}

func TestBundle_Encode(t *testing.T) {
	b := NewBundleWithTime(time.Unix(1700000000, 500), bundleMessages...)

	buf := make([]byte, MaxPacketSize)
	n, next, err := b.Encode(buf, 0)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if next != len(b.Messages) {
		t.Fatalf("Encode() next = %d, want %d", next, len(b.Messages))
	}

	if !bytes.Equal(buf[:8], []byte("#bundle\x00")) {
		t.Errorf("header = %v, want #bundle\\0", buf[:8])
	}
	if tag := Timetag(binary.BigEndian.Uint64(buf[8:16])); tag != b.Timetag {
		t.Errorf("timetag = %d, want %d", tag, b.Timetag)
	}

	// Each element is a length prefix plus a decodable message.
	ix := bundleHeaderSize
	for i, want := range b.Messages {
		length := int(binary.BigEndian.Uint32(buf[ix:]))
		ix += bit32Size

		got, err := ParseMessage(buf[ix : ix+length])
		if err != nil {
			t.Fatalf("element %d: ParseMessage() error = %v", i, err)
		}
		if !got.Equals(want) {
			t.Errorf("element %d = %v, want %v", i, got, want)
		}
		ix += length
	}
	if ix != n {
		t.Errorf("elements end at %d, Encode() wrote %d", ix, n)
	}
}

// Starting one message later must never produce more payload than starting
// earlier with the same buffer.
func TestBundle_EncodeResumeMonotonic(t *testing.T) {
	b := NewBundle(bundleMessages...)
	buf := make([]byte, MaxPacketSize)

	n0, _, err := b.Encode(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	n1, _, err := b.Encode(buf, 1)
	if err != nil {
		t.Fatal(err)
	}

	if n1 >= n0 {
		t.Errorf("Encode(start=1) wrote %d bytes, want fewer than Encode(start=0) = %d", n1, n0)
	}
}

// Across any buffer capacity the encoder must stay inside the buffer and the
// resumed chunks must carry every message exactly once.
func TestBundle_EncodeChunked(t *testing.T) {
	msgs := make([]*Message, 16)
	for i := range msgs {
		msgs[i] = NewMessage("/chunk/stress/message", Int32(int32(i)))
	}
	b := NewBundle(msgs...)

	for capacity := bundleHeaderSize; capacity <= 256; capacity += 4 {
		buf := make([]byte, capacity)

		var got []*Message
		start := 0
		for round := 0; ; round++ {
			if round > len(msgs) {
				t.Fatalf("capacity %d: no progress after %d rounds", capacity, round)
			}

			n, next, err := b.Encode(buf, start)
			if err != nil {
				t.Fatalf("capacity %d: Encode() error = %v", capacity, err)
			}
			if n > capacity {
				t.Fatalf("capacity %d: wrote %d bytes past the buffer", capacity, n)
			}
			if next < start {
				t.Fatalf("capacity %d: resume index went backwards: %d -> %d", capacity, start, next)
			}

			got = append(got, decodeBundleElements(t, buf[:n])...)

			if next == len(msgs) {
				break
			}
			if next == start {
				// This capacity can't fit a single message; nothing to resume.
				if capacity >= bundleHeaderSize+bit32Size+msgs[0].EncodedSize() {
					t.Fatalf("capacity %d: stuck at %d despite room", capacity, start)
				}
				got = nil
				break
			}
			start = next
		}

		if got != nil {
			if len(got) != len(msgs) {
				t.Fatalf("capacity %d: %d messages across chunks, want %d", capacity, len(got), len(msgs))
			}
			for i := range msgs {
				if !got[i].Equals(msgs[i]) {
					t.Errorf("capacity %d: message %d = %v, want %v", capacity, i, got[i], msgs[i])
				}
			}
		}
	}
}

// decodeBundleElements walks the length-prefixed elements after the header.
func decodeBundleElements(t *testing.T, data []byte) []*Message {
	t.Helper()

	var msgs []*Message
	ix := bundleHeaderSize
	for ix < len(data) {
		length := int(binary.BigEndian.Uint32(data[ix:]))
		ix += bit32Size

		m, err := ParseMessage(data[ix : ix+length])
		if err != nil {
			t.Fatalf("bundle element at %d: %v", ix, err)
		}
		msgs = append(msgs, m)
		ix += length
	}
	return msgs
}

func TestBundle_EncodeHeaderTooSmall(t *testing.T) {
	b := NewBundle(bundleMessages...)
	for _, size := range []int{0, 8, bundleHeaderSize - 1} {
		if _, _, err := b.Encode(make([]byte, size), 0); !errors.Is(err, ErrBufferTooSmall) {
			t.Errorf("Encode() into %d bytes error = %v, want ErrBufferTooSmall", size, err)
		}
	}
}

func TestBundle_EncodeBadMessage(t *testing.T) {
	b := NewBundle(NewMessage("no-slash", Int32(1)))
	if _, _, err := b.Encode(make([]byte, MaxPacketSize), 0); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("Encode() error = %v, want ErrInvalidAddress", err)
	}
}

func TestBundle_EncodeEmpty(t *testing.T) {
	b := NewBundle()
	n, next, err := b.Encode(make([]byte, MaxPacketSize), 0)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if n != bundleHeaderSize || next != 0 {
		t.Errorf("Encode() = (%d, %d), want (%d, 0)", n, next, bundleHeaderSize)
	}
}

func TestBundle_MarshalBinary(t *testing.T) {
	b := NewBundle(bundleMessages...)
	data, err := b.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	got := decodeBundleElements(t, data)
	if len(got) != len(b.Messages) {
		t.Fatalf("MarshalBinary() holds %d messages, want %d", len(got), len(b.Messages))
	}
}

func TestBundle_MarshalBinaryTooLarge(t *testing.T) {
	b := NewBundle()
	for i := 0; i < 300; i++ {
		b.Append(NewMessage("/much/too/long/for/one/packet", Int32(int32(i))))
	}

	if _, err := b.MarshalBinary(); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("MarshalBinary() error = %v, want ErrBufferTooSmall", err)
	}
}

func BenchmarkBundleEncode(b *testing.B) {
	bundle := NewBundle(bundleMessages...)
	buf := make([]byte, MaxPacketSize)
	b.ReportAllocs()
	b.ResetTimer()
	var n int
	for i := 0; i < b.N; i++ {
		n, _, _ = bundle.Encode(buf, 0)
	}
	result = n
}
