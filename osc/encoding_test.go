package osc

import (
	"errors"
	"testing"
)

func TestParsePaddedString(t *testing.T) {
	for _, tt := range []struct {
		buf  []byte
		want string // resulting string
		next int    // cursor after the read
		err  error
	}{
		{[]byte{'t', 'e', 's', 't', 's', 't', 'r', 'i', 'n', 'g', 0, 0}, "teststring", 12, nil},
		{[]byte{'t', 'e', 's', 't', 'e', 'r', 's', 0}, "testers", 8, nil},
		{[]byte{'t', 'e', 's', 't', 's', 0, 0, 0}, "tests", 8, nil},
		{[]byte{'t', 'e', 's', 0, 0, 0, 0, 0}, "tes", 4, nil}, // OSC uses null terminated strings
		{[]byte{'t', 'e', 's', 't'}, "", 0, ErrTruncated},     // no terminator anywhere
		{[]byte{}, "", 0, ErrTruncated},
	} {
		got, next, err := parsePaddedString(tt.buf, 0)
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: parsePaddedString() error = %v, want %v", tt.want, err, tt.err)
		}
		if err != nil {
			continue
		}
		if got != tt.want {
			t.Errorf("parsePaddedString() = %q, want %q", got, tt.want)
		}
		if next != tt.next {
			t.Errorf("%s: cursor = %d, want %d", tt.want, next, tt.next)
		}
	}
}

func TestParsePaddedStringOffset(t *testing.T) {
	buf := []byte{'x', 'x', 'x', 'x', 'a', 'b', 0, 0}
	got, next, err := parsePaddedString(buf, 4)
	if err != nil {
		t.Fatalf("parsePaddedString() error = %v", err)
	}
	if got != "ab" {
		t.Errorf("parsePaddedString() = %q, want %q", got, "ab")
	}
	if next != 8 {
		t.Errorf("cursor = %d, want 8", next)
	}

	if _, _, err := parsePaddedString(buf, 8); !errors.Is(err, ErrTruncated) {
		t.Errorf("parsePaddedString() past end error = %v, want ErrTruncated", err)
	}
}

func TestWritePaddedString(t *testing.T) {
	// A dirty buffer: every pad byte must be written over.
	buf := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	n := writePaddedString("/test", buf)
	if n != 8 {
		t.Fatalf("writePaddedString() = %d, want 8", n)
	}
	want := []byte{'/', 't', 'e', 's', 't', 0, 0, 0}
	for i, b := range want {
		if buf[i] != b {
			t.Errorf("buf[%d] = %#x, want %#x", i, buf[i], b)
		}
	}
}

func TestPaddedLength(t *testing.T) {
	for _, tt := range []struct {
		s    string
		want int
	}{
		{"", 4},
		{"/ab", 4},
		{"/abc", 8},
		{"/test", 8},
		{"tes", 4},
		{"teststring", 12},
	} {
		if got := paddedLength(tt.s); got != tt.want {
			t.Errorf("paddedLength(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestPadBytesNeeded(t *testing.T) {
	for _, tt := range []struct{ n, want int }{
		{0, 0}, {1, 3}, {3, 1}, {4, 0}, {10, 2}, {32, 0}, {63, 1},
	} {
		if got := padBytesNeeded(tt.n); got != tt.want {
			t.Errorf("padBytesNeeded(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
