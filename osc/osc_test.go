package osc

import (
	"encoding/binary"
	"math"
)

type testCase struct {
	name    string
	obj     *Message
	raw     []byte
	wantErr bool
}

// be32 returns the 4 big-endian bytes of v.
func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func floatBytes(f float32) []byte {
	return be32(math.Float32bits(f))
}

var messageTestCases = []testCase{
	{
		"bool_true",
		NewMessage("/test", Bool(true)),
		[]byte{'/', 't', 'e', 's', 't', 0, 0, 0, ',', 'T', 0, 0},
		false,
	},
	{
		"bool_false",
		NewMessage("/test", Bool(false)),
		[]byte{'/', 't', 'e', 's', 't', 0, 0, 0, ',', 'F', 0, 0},
		false,
	},
	{
		"int",
		NewMessage("/test", Int32(9)),
		[]byte{'/', 't', 'e', 's', 't', 0, 0, 0, ',', 'i', 0, 0, 0, 0, 0, 9},
		false,
	},
	{
		"float",
		NewMessage("/test", Float32(69.42)),
		append([]byte{'/', 't', 'e', 's', 't', 0, 0, 0, ',', 'f', 0, 0}, floatBytes(69.42)...),
		false,
	},
	{
		"string",
		NewMessage("/test", String("hello")),
		[]byte{'/', 't', 'e', 's', 't', 0, 0, 0, ',', 's', 0, 0, 'h', 'e', 'l', 'l', 'o', 0, 0, 0},
		false,
	},
	{
		"aligned_address",
		NewMessage("/osc", Int32(-1)),
		[]byte{'/', 'o', 's', 'c', 0, 0, 0, 0, ',', 'i', 0, 0, 0xff, 0xff, 0xff, 0xff},
		false,
	},
	{
		"empty_string_value",
		NewMessage("/s", String("")),
		[]byte{'/', 's', 0, 0, ',', 's', 0, 0, 0, 0, 0, 0},
		false,
	},
}
