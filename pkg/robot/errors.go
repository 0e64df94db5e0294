package robot

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when the arm produces no complete reply frame
// within the configured deadline.
var ErrTimeout = errors.New("reply timeout")

// ErrUnreachable is returned by Solve when the requested position lies
// outside the arm's work envelope.
var ErrUnreachable = errors.New("position out of reach")

// ConnectionError reports a transport that could not be opened or
// configured. It is returned from construction only; the arm is never
// left half-connected.
type ConnectionError struct {
	Port string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ParseError reports a reply token that is not a valid integer. The raw
// frame is kept so the offending byte sequence can be inspected.
type ParseError struct {
	Raw   string
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad token %q in reply %q", e.Token, e.Raw)
}

// ProtocolError reports a reply that parsed as integers but does not match
// the shape the command requires, or a status/key code outside the
// firmware's tables.
type ProtocolError struct {
	Command string
	Reason  string
	Reply   Reply
}

func (e *ProtocolError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("protocol error: %s (reply %v)", e.Reason, e.Reply)
	}
	return fmt.Sprintf("%s: %s (reply %v)", e.Command, e.Reason, e.Reply)
}
