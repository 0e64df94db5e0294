package robot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Transport is the byte stream the arm is reachable over. Production code
// uses a serial port; tests substitute an in-memory script.
type Transport interface {
	io.ReadWriteCloser
}

// portReadTimeout is the per-read timeout on the serial port. It only
// bounds a single read; the reply deadline lives in Conn.
const portReadTimeout = 50 * time.Millisecond

// openPort opens the arm's serial port with the TeachMover's fixed framing
// (8 data bits, one stop bit, no parity).
func openPort(name string, baud int) (Transport, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, &ConnectionError{Port: name, Err: err}
	}
	if err := port.SetReadTimeout(portReadTimeout); err != nil {
		port.Close()
		return nil, &ConnectionError{Port: name, Err: err}
	}
	return port, nil
}

// Conn frames commands onto a Transport and reads back one reply frame per
// command. The protocol is half-duplex: a mutex keeps at most one command
// in flight.
type Conn struct {
	mu      sync.Mutex
	t       Transport
	timeout time.Duration

	// bytes received past the last terminator, kept for the next reply
	pending []byte
}

// DefaultReplyTimeout bounds how long Send waits for a complete reply.
const DefaultReplyTimeout = 5 * time.Second

// NewConn wraps a transport. A zero timeout selects DefaultReplyTimeout.
func NewConn(t Transport, timeout time.Duration) *Conn {
	if timeout <= 0 {
		timeout = DefaultReplyTimeout
	}
	return &Conn{t: t, timeout: timeout}
}

// Close closes the underlying transport.
func (c *Conn) Close() error {
	return c.t.Close()
}

// Send writes one command frame and blocks until the arm's reply frame has
// arrived in full, then returns it parsed. The CR terminator is appended if
// the caller left it off. A missing or incomplete reply fails with
// ErrTimeout once the deadline passes; ctx cancels earlier.
func (c *Conn) Send(ctx context.Context, cmd string) (Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := strings.TrimSuffix(cmd, "\r")
	if !strings.HasSuffix(cmd, "\r") {
		cmd += "\r"
	}

	if _, err := c.t.Write([]byte(cmd)); err != nil {
		return nil, fmt.Errorf("%s: write: %w", name, err)
	}

	raw, err := c.readFrame(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	reply, err := parseReply(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return reply, nil
}

// readFrame reads until a CR arrives, buffering partial frames across
// reads. Bytes following the terminator are kept for the next frame.
func (c *Conn) readFrame(ctx context.Context) (string, error) {
	deadline := time.Now().Add(c.timeout)
	buf := make([]byte, 64)

	for {
		if i := bytes.IndexByte(c.pending, '\r'); i >= 0 {
			frame := string(c.pending[:i+1])
			c.pending = append(c.pending[:0], c.pending[i+1:]...)
			return frame, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		if time.Now().After(deadline) {
			return "", ErrTimeout
		}

		n, err := c.t.Read(buf)
		if err != nil {
			return "", fmt.Errorf("read reply: %w", err)
		}
		c.pending = append(c.pending, buf[:n]...)
	}
}
