package robot

import (
	"fmt"
	"strconv"
	"strings"
)

// Reply is one parsed response frame: the ordered integers the firmware
// sent back for a single command. Element 0 is always a status code; the
// meaning of the rest depends on the command that produced the reply.
type Reply []int

// Reply layout for @READ: status, five joint registers, gripper register,
// packed pendant-key/input register.
const (
	replyStatus   = 0
	replyGripper  = 6
	replyKeyInput = 7
	replyLen      = 8
)

// StatusOK is the firmware's acknowledgement code: 1 for a completed
// command, 0 for a syntax error, 2 for a move stopped short.
const StatusOK = 1

// parseReply tokenizes a raw reply frame. Commas, spaces and line
// terminators all delimit tokens, so the trailing empty token produced by
// the final CR drops out before conversion.
func parseReply(raw string) (Reply, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, &ProtocolError{Reason: "empty reply"}
	}

	reply := make(Reply, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ParseError{Raw: raw, Token: f}
		}
		reply[i] = v
	}
	return reply, nil
}

// Status returns the reply's status code.
func (r Reply) Status() int {
	if len(r) == 0 {
		return -1
	}
	return r[replyStatus]
}

// Positions returns the five joint position registers of a @READ reply, in
// wire order base..wristB.
func (r Reply) Positions() ([5]int, error) {
	var pos [5]int
	if len(r) < 6 {
		return pos, &ProtocolError{Reason: fmt.Sprintf("want 6 values, got %d", len(r)), Reply: r}
	}
	for i := range pos {
		pos[i] = r[i+1]
	}
	return pos, nil
}

// GripperRegister returns the gripper position register of a @READ reply.
func (r Reply) GripperRegister() (int, error) {
	if len(r) <= replyGripper {
		return 0, &ProtocolError{Reason: fmt.Sprintf("want %d values, got %d", replyGripper+1, len(r)), Reply: r}
	}
	return r[replyGripper], nil
}

// Inputs returns the input port bits packed into the low byte of the last
// @READ register.
func (r Reply) Inputs() (int, error) {
	if len(r) < replyLen {
		return 0, &ProtocolError{Reason: fmt.Sprintf("want %d values, got %d", replyLen, len(r)), Reply: r}
	}
	return r[replyKeyInput] % 256, nil
}

// LastKey returns the last pendant key pressed, packed into the high byte
// of the last @READ register.
func (r Reply) LastKey() (Key, error) {
	inputs, err := r.Inputs()
	if err != nil {
		return KeyNone, err
	}
	code := (r[replyKeyInput] - inputs) / 256
	if code < 0 || code >= len(keyNames) {
		return KeyNone, &ProtocolError{Reason: fmt.Sprintf("key code %d out of range", code), Reply: r}
	}
	return Key(code), nil
}

// Key is a button on the handheld teach pendant.
type Key int

const (
	KeyNone Key = iota
	KeyTrain
	KeyPause
	KeyGrip
	KeyOut
	KeyFree
	KeyMove
	KeyStop
	KeyStep
	KeyPoint
	KeyJump
	KeyClear
	KeyZero
	KeySpeed
	KeyRun
)

var keyNames = [...]string{
	"None",
	"Train",
	"Pause",
	"Grip",
	"Out",
	"Free",
	"Move",
	"Stop",
	"Step",
	"Point",
	"Jump",
	"Clear",
	"Zero",
	"Speed",
	"Run",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}
