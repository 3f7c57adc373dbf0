package control

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ironsheep/robot-goalie/internal/protocol"
)

// DefaultWriteTimeout bounds a single packet write on a ConnSender.
const DefaultWriteTimeout = 250 * time.Millisecond

// Sender delivers packets to the actuator.
type Sender interface {
	Send(p protocol.Packet) error
}

// ConnSender writes packets over one persistent stream connection.
//
// There is no reconnect: once the connection breaks every Send fails until
// the process is restarted. ConnSender is safe for concurrent use.
type ConnSender struct {
	mu           sync.Mutex
	conn         net.Conn
	writeTimeout time.Duration
	w            *protocol.Writer
}

// NewConnSender wraps an established connection.
func NewConnSender(conn net.Conn) *ConnSender {
	return &ConnSender{conn: conn, writeTimeout: DefaultWriteTimeout, w: protocol.NewWriter(conn)}
}

// Dial connects to the actuator at addr over TCP.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*ConnSender, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to actuator at %s: %w", addr, err)
	}
	return NewConnSender(conn), nil
}

// Send writes p as a single line. A write that cannot complete within the
// write timeout fails instead of stalling the caller.
//
// A timed out write may leave part of a line on the stream; the next Send
// terminates it first (see protocol.Writer), so only the torn packet is
// lost.
func (s *ConnSender) Send(p protocol.Packet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}
	}
	return s.w.Write(p)
}

// Close closes the connection.
func (s *ConnSender) Close() error {
	return s.conn.Close()
}
