// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"context"
	"net"

	"golang.org/x/time/rate"
)

// Client enables you to send OSC packets to a server.
type Client struct {
	// Limiter, when set, paces Send: each call waits for a token before
	// writing. OSC endpoints are routinely rate-sensitive.
	Limiter *rate.Limiter

	conn *net.UDPConn
}

// Dial creates a new Client with a connection to the specified server.
func Dial(addr string) (*Client, error) {
	a, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}

	conn, err := net.DialUDP("udp", nil, a)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Send sends an OSC packet to the server as a single datagram.
func (c *Client) Send(packet Packet) error {
	data, err := packet.MarshalBinary()
	if err != nil {
		return err
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(context.Background()); err != nil {
			return err
		}
	}

	_, err = c.conn.Write(data)
	return err
}

// SendBundleChunked sends the bundle as one or more datagrams, driving
// Bundle.Encode with its resume index until every message has gone out. Each
// chunk is a complete bundle packet carrying the same timetag. Returns the
// number of datagrams sent.
func (c *Client) SendBundleChunked(b *Bundle) (int, error) {
	buf := bPool.Get().(*[]byte)
	defer bPool.Put(buf)

	sent := 0
	for start := 0; ; {
		n, next, err := b.Encode(*buf, start)
		if err != nil {
			return sent, err
		}
		if next == start && next < len(b.Messages) {
			// A message too large for an empty buffer can never be sent.
			return sent, ErrBufferTooSmall
		}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(context.Background()); err != nil {
				return sent, err
			}
		}

		if _, err := c.conn.Write((*buf)[:n]); err != nil {
			return sent, err
		}
		sent++

		if next == len(b.Messages) {
			return sent, nil
		}
		start = next
	}
}

// Close closes the connection to the server.
func (c *Client) Close() error {
	return c.conn.Close()
}
