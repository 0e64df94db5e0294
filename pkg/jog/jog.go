// Package jog provides an interactive jog controller for the TeachMover.
package jog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/teachmover/pkg/robot"
)

// Axis is a logical jog direction. Pitch and roll map onto the two wrist
// motors through the differential coupling.
type Axis int

const (
	AxisBase Axis = iota
	AxisShoulder
	AxisElbow
	AxisPitch
	AxisRoll
	AxisGripper
)

var axisNames = [...]string{"base", "shoulder", "elbow", "pitch", "roll", "gripper"}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// State is one snapshot of the arm, published after every poll.
type State struct {
	Registers [5]int
	Gripper   int
	Key       robot.Key
	Inputs    int
	Timestamp time.Time
	Error     error
}

// Config holds controller settings.
type Config struct {
	Hz       int // poll frequency, default 4
	Speed    int // step speed for jog moves, default from the arm config
	StepSize int // steps per jog request, default 20
}

// request is one queued operation, executed between polls so the serial
// line never carries two commands at once.
type request struct {
	name string
	run  func(ctx context.Context, a *robot.Arm) error
}

// Controller polls the arm's registers at a fixed rate and interleaves
// queued jog commands on the same connection.
type Controller struct {
	arm      *robot.Arm
	hz       int
	speed    int
	stepSize int

	mu      sync.Mutex
	running bool

	stateCh chan State
	logCh   chan string
	reqCh   chan request
}

// NewController wraps a connected arm.
func NewController(arm *robot.Arm, cfg Config) *Controller {
	if cfg.Hz <= 0 {
		cfg.Hz = 4
	}
	if cfg.Speed <= 0 {
		cfg.Speed = arm.Speed()
	}
	if cfg.StepSize <= 0 {
		cfg.StepSize = 20
	}
	return &Controller{
		arm:      arm,
		hz:       cfg.Hz,
		speed:    cfg.Speed,
		stepSize: cfg.StepSize,
		stateCh:  make(chan State, 1),
		logCh:    make(chan string, 10),
		reqCh:    make(chan request, 8),
	}
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Hz returns the poll frequency.
func (c *Controller) Hz() int {
	return c.hz
}

// StepSize returns the number of steps per jog request.
func (c *Controller) StepSize() int {
	return c.stepSize
}

func (c *Controller) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Jog queues a relative move of steps on one axis. Direction follows the
// sign of steps.
func (c *Controller) Jog(axis Axis, steps int) {
	var base, shoulder, elbow, pitch, roll, gripper int
	switch axis {
	case AxisBase:
		base = steps
	case AxisShoulder:
		shoulder = steps
	case AxisElbow:
		elbow = steps
	case AxisPitch:
		pitch = steps
	case AxisRoll:
		roll = steps
	case AxisGripper:
		gripper = steps
	}
	speed := c.speed
	c.enqueue(request{
		name: fmt.Sprintf("jog %s %+d", axis, steps),
		run: func(ctx context.Context, a *robot.Arm) error {
			return a.MoveSteps(ctx, speed, base, shoulder, elbow, pitch, roll, gripper)
		},
	})
}

// Grip queues a firm gripper close.
func (c *Controller) Grip() {
	c.enqueue(request{name: "grip", run: func(ctx context.Context, a *robot.Arm) error {
		return a.Grip(ctx)
	}})
}

// Release queues a gripper open.
func (c *Controller) Release() {
	c.enqueue(request{name: "release", run: func(ctx context.Context, a *robot.Arm) error {
		return a.Release(ctx)
	}})
}

// Zero queues a return to the last reset position.
func (c *Controller) Zero() {
	c.enqueue(request{name: "return to zero", run: func(ctx context.Context, a *robot.Arm) error {
		return a.ReturnToZero(ctx)
	}})
}

func (c *Controller) enqueue(r request) {
	select {
	case c.reqCh <- r:
	default:
		c.log("Busy, dropped: %s", r.name)
	}
}

// Start begins the poll loop and blocks until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.mu.Unlock()

	c.log("Jog started at %d Hz, %d steps per jog", c.hz, c.stepSize)

	ticker := time.NewTicker(time.Second / time.Duration(c.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		case <-ticker.C:
			c.step(ctx)
		}
	}
}

func (c *Controller) step(ctx context.Context) {
	// Run queued commands first so jogs are never delayed behind a poll.
	for {
		select {
		case req := <-c.reqCh:
			if err := req.run(ctx, c.arm); err != nil {
				c.log("%s: %v", req.name, err)
			} else {
				c.log("%s", req.name)
			}
			continue
		default:
		}
		break
	}

	reply, err := c.arm.ReadRegisters(ctx)
	if err != nil {
		c.log("Read error: %v", err)
		c.sendState(State{Error: err, Timestamp: time.Now()})
		return
	}

	state := State{Timestamp: time.Now()}
	state.Registers, err = reply.Positions()
	if err == nil {
		state.Gripper, err = reply.GripperRegister()
	}
	if err == nil {
		state.Inputs, err = reply.Inputs()
	}
	if err == nil {
		state.Key, err = reply.LastKey()
	}
	state.Error = err
	c.sendState(state)
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		c.stateCh <- s
	}
}

func (c *Controller) shutdown() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()

	// Cut motor current so the arm is safe to touch.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.arm.Home(ctx); err != nil {
		c.log("Warning: failed to reset: %v", err)
	}
	c.log("Jog stopped")
}
