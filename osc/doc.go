// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

//Package osc encodes and decodes single-value OpenSoundControl messages, and
//packs them into timestamped bundles for sending over UDP.
//
//Open Sound Control (OSC) is an open, transport-independent, message-based
//protocol developed for communication among computers, sound synthesizers,
//and other multimedia devices. This package speaks a deliberately narrow
//dialect of the OSC 1.0 wire format
//(http://opensoundcontrol.org/spec-1_0.html):
//
//	'i' (int32)
//	'f' (float32)
//	's' (string)
//	'T' (true)
//	'F' (false)
//
//Every message carries exactly one value, so the type tag block on the wire
//is always the fixed 4 bytes ',' + tag + two zeros. Callers may depend on
//that block size; this package will not silently grow it into a tag string.
//Address pattern matching and dispatch are out of scope, as are TCP framing
//variants.
//
//Bundles are encode-only: NewBundle packages messages behind a "#bundle"
//header and a Timetag, and Bundle.Encode packs them into fixed-size buffers,
//reporting a resume index when the content does not fit one buffer. A
//received "#bundle" datagram does not decode; the server logs and drops it.
//
//The Timetag is an approximation of an NTP timestamp, documented on the
//type.
//
//All decoding is bounds-checked: truncated or malformed input yields a typed
//error (ErrInvalidAddress, ErrInvalidType, ErrTruncated), never a panic.
//
//Usage
//
//Client:
//  client, _ := osc.Dial("localhost:8765")
//  client.Send(osc.NewMessage("/synth/freq", osc.Float32(440)))
//
//Server:
//  osc.ListenAndServe("127.0.0.1:8765", func(msg *osc.Message, addr net.Addr) {
//      fmt.Println(msg)
//  })
package osc
