package robot

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptTransport is an in-memory Transport. Each Write dequeues the next
// scripted reply into the read buffer; Read hands it back in chunks to
// exercise partial-frame buffering. A drained buffer reads as (0, nil),
// like a serial port hitting its read timeout.
type scriptTransport struct {
	writes  []string
	replies []string
	pending []byte
	chunk   int
	closed  bool
}

func (t *scriptTransport) Write(p []byte) (int, error) {
	t.writes = append(t.writes, string(p))
	if len(t.replies) > 0 {
		t.pending = append(t.pending, t.replies[0]...)
		t.replies = t.replies[1:]
	}
	return len(p), nil
}

func (t *scriptTransport) Read(p []byte) (int, error) {
	if len(t.pending) == 0 {
		return 0, nil
	}
	n := len(t.pending)
	if t.chunk > 0 && n > t.chunk {
		n = t.chunk
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, t.pending[:n])
	t.pending = t.pending[n:]
	return n, nil
}

func (t *scriptTransport) Close() error {
	t.closed = true
	return nil
}

func TestConn_SendAppendsTerminator(t *testing.T) {
	tr := &scriptTransport{replies: []string{"1\r"}}
	conn := NewConn(tr, time.Second)

	reply, err := conn.Send(context.Background(), "@RESET")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(tr.writes) != 1 || tr.writes[0] != "@RESET\r" {
		t.Errorf("wrote %q, want %q", tr.writes, "@RESET\r")
	}
	if reply.Status() != 1 {
		t.Errorf("status = %d, want 1", reply.Status())
	}
}

func TestConn_ReassemblesSplitFrames(t *testing.T) {
	// Two-byte reads force the reply to arrive in fragments.
	tr := &scriptTransport{replies: []string{"1,200,-300,40,5,6,7,3589\r"}, chunk: 2}
	conn := NewConn(tr, time.Second)

	reply, err := conn.Send(context.Background(), "@READ")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	want := Reply{1, 200, -300, 40, 5, 6, 7, 3589}
	if len(reply) != len(want) {
		t.Fatalf("reply = %v, want %v", reply, want)
	}
	for i := range want {
		if reply[i] != want[i] {
			t.Fatalf("reply = %v, want %v", reply, want)
		}
	}
}

func TestConn_BuffersBeyondTerminator(t *testing.T) {
	// A reply and the start of the next one arrive in one burst. The
	// second frame must survive until the next Send.
	tr := &scriptTransport{replies: []string{"1\r99\r"}}
	conn := NewConn(tr, time.Second)

	ctx := context.Background()
	first, err := conn.Send(ctx, "@CLOSE")
	if err != nil {
		t.Fatalf("first Send: %v", err)
	}
	if first.Status() != 1 {
		t.Errorf("first status = %d, want 1", first.Status())
	}

	second, err := conn.Send(ctx, "@CLOSE")
	if err != nil {
		t.Fatalf("second Send: %v", err)
	}
	if second.Status() != 99 {
		t.Errorf("second status = %d, want 99", second.Status())
	}
}

func TestConn_Timeout(t *testing.T) {
	tr := &scriptTransport{} // never replies
	conn := NewConn(tr, 50*time.Millisecond)

	_, err := conn.Send(context.Background(), "@READ")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestConn_ContextCancel(t *testing.T) {
	tr := &scriptTransport{} // never replies
	conn := NewConn(tr, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := conn.Send(ctx, "@READ")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestConn_ParseErrorSurfaced(t *testing.T) {
	tr := &scriptTransport{replies: []string{"1,oops,3\r"}}
	conn := NewConn(tr, time.Second)

	_, err := conn.Send(context.Background(), "@READ")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if perr.Token != "oops" {
		t.Errorf("token = %q, want %q", perr.Token, "oops")
	}
}
