// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

package osc

import (
	"errors"
	"fmt"
	"net"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// HandlerFunc is called for every successfully decoded message, with the
// source address of the datagram it arrived in.
type HandlerFunc func(msg *Message, addr net.Addr)

// Server receives OSC messages on a UDP socket. The receive loop holds one
// outstanding read at a time and runs the handler synchronously before the
// next read, so deliveries are serialized. Malformed datagrams (including
// "#bundle" ones, which this package does not decode) are logged and
// dropped.
type Server struct {
	Addr        string
	Handler     HandlerFunc
	ReadTimeout time.Duration

	conn net.PacketConn
}

// ListenAndServe binds Addr and serves until Close. A shutdown via Close is
// reported as nil.
func (s *Server) ListenAndServe() error {
	ln, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	s.conn = ln

	err = s.Serve()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Serve runs the receive loop on the bound socket. It returns when the read
// fails with a non-temporary error; Close triggers that by closing the
// socket under the blocked read.
func (s *Server) Serve() error {
	if s.conn == nil {
		return fmt.Errorf("Serve: no connection, call ListenAndServe")
	}

	var tempDelay time.Duration
	for {
		msg, addr, err := s.readFromConnection(s.conn)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := 1 * time.Second; tempDelay > max {
					tempDelay = max
				}
				time.Sleep(tempDelay)
				continue
			} else if !ok {
				// Decode failure, not a socket failure.
				Logger().Warn("osc: dropping malformed packet",
					zap.Stringer("from", addr), zap.Error(err))
				continue
			}
			return err
		}
		tempDelay = 0
		s.serve(msg, addr)
	}
}

func (s *Server) serve(m *Message, a net.Addr) {
	defer func() {
		if err := recover(); err != nil {
			buf := make([]byte, MaxPacketSize)
			buf = buf[:runtime.Stack(buf, false)]
			Logger().Error("osc: panic in handler",
				zap.Stringer("from", a), zap.Any("panic", err),
				zap.ByteString("stack", buf))
		}
	}()
	if s.Handler != nil {
		s.Handler(m, a)
	}
}

// Close closes the socket. The outstanding read unblocks with net.ErrClosed,
// which ends Serve.
func (s *Server) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// LocalAddr returns the bound address, or nil before ListenAndServe.
func (s *Server) LocalAddr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// WriteTo encodes p and sends it from the server's socket to addr. It is the
// reply path for handlers.
func (s *Server) WriteTo(p Packet, addr string) (int, error) {
	if s.conn == nil {
		return 0, fmt.Errorf("WriteTo: no connection")
	}

	a, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return 0, err
	}

	data, err := p.MarshalBinary()
	if err != nil {
		return 0, err
	}

	return s.conn.WriteTo(data, a)
}

// ReceivePacket reads one datagram from the given connection and decodes it.
// It is the one-shot entry for callers running their own loop.
func (s *Server) ReceivePacket(c net.PacketConn) (*Message, net.Addr, error) {
	return s.readFromConnection(c)
}

// readFromConnection retrieves one message.
func (s *Server) readFromConnection(c net.PacketConn) (*Message, net.Addr, error) {
	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	b := bPool.Get().(*[]byte)
	defer bPool.Put(b)

	n, a, err := c.ReadFrom(*b)
	if err != nil {
		return nil, a, err
	}

	msg, err := ParseMessage((*b)[:n])
	return msg, a, err
}

// ListenAndServe binds addr and delivers every received message to h.
func ListenAndServe(addr string, h HandlerFunc) error {
	s := &Server{Addr: addr, Handler: h}
	return s.ListenAndServe()
}
