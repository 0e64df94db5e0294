package robot

import (
	"context"
	"fmt"
)

// Fixed motion constants from the firmware manual.
const (
	gripSpeed         = 220  // speed used for gripper-only moves
	gripForceSteps    = 32   // extra closing steps, roughly one pound of force
	releaseSteps      = 500  // opening steps for Release
	gripperStepsPerMM = 14.6 // gripper register counts per millimeter of jaw opening
)

// Arm is a connected TeachMover. All methods block for the duration of the
// serial exchange; the underlying Conn serializes concurrent callers.
type Arm struct {
	conn *Conn
	cfg  Config
	geom Geometry
}

// NewArm opens the configured serial port and returns a connected arm. An
// unopenable port fails here; the arm is never half-initialized.
func NewArm(cfg Config) (*Arm, error) {
	cfg.normalize()
	t, err := openPort(cfg.Port, cfg.Baud)
	if err != nil {
		return nil, err
	}
	return NewArmWithTransport(t, cfg), nil
}

// NewArmWithTransport wires an arm over an existing transport. Used by
// tests and emulators; NewArm is the production path.
func NewArmWithTransport(t Transport, cfg Config) *Arm {
	cfg.normalize()
	return &Arm{
		conn: NewConn(t, cfg.replyTimeout()),
		cfg:  cfg,
		geom: cfg.geometry(),
	}
}

// Close closes the serial connection.
func (a *Arm) Close() error {
	return a.conn.Close()
}

// send issues one command and checks the firmware's status code.
func (a *Arm) send(ctx context.Context, cmd string) (Reply, error) {
	reply, err := a.conn.Send(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if reply.Status() != StatusOK {
		return reply, &ProtocolError{
			Command: cmd,
			Reason:  fmt.Sprintf("status %d", reply.Status()),
			Reply:   reply,
		}
	}
	return reply, nil
}

// Step sends one @STEP command.
func (a *Arm) Step(ctx context.Context, cmd StepCommand) error {
	_, err := a.send(ctx, cmd.encode())
	return err
}

// MoveSteps moves by logical step deltas, applying the wrist and gripper
// couplings.
func (a *Arm) MoveSteps(ctx context.Context, speed, base, shoulder, elbow, pitch, roll, gripper int, output ...int) error {
	return a.Step(ctx, ComposeSteps(speed, base, shoulder, elbow, pitch, roll, gripper, output...))
}

// MoveAngles moves by joint angle deltas in degrees.
func (a *Arm) MoveAngles(ctx context.Context, speed int, baseDeg, shoulderDeg, elbowDeg, pitchDeg, rollDeg float64) error {
	return a.Step(ctx, ComposeAngles(speed, baseDeg, shoulderDeg, elbowDeg, pitchDeg, rollDeg))
}

// MoveTo drives the gripper to a Cartesian pose. The current position
// registers are read first so the solve can emit relative deltas.
func (a *Arm) MoveTo(ctx context.Context, pose Pose) error {
	pos, err := a.ReadPosition(ctx)
	if err != nil {
		return err
	}
	cmd, err := a.geom.Solve(pose, pos)
	if err != nil {
		return err
	}
	cmd.Speed = a.cfg.Speed
	return a.Step(ctx, cmd)
}

// Home resets the internal position registers and cuts motor current.
func (a *Arm) Home(ctx context.Context) error {
	_, err := a.send(ctx, "@RESET")
	return err
}

// CloseGripper closes the gripper with light force.
func (a *Arm) CloseGripper(ctx context.Context) error {
	_, err := a.send(ctx, "@CLOSE")
	return err
}

// Grip closes the gripper and squeezes an extra fixed offset to hold an
// object firmly.
func (a *Arm) Grip(ctx context.Context) error {
	if err := a.CloseGripper(ctx); err != nil {
		return err
	}
	return a.MoveSteps(ctx, gripSpeed, 0, 0, 0, 0, 0, -gripForceSteps)
}

// Release opens the gripper by a fixed number of steps.
func (a *Arm) Release(ctx context.Context) error {
	return a.MoveSteps(ctx, gripSpeed, 0, 0, 0, 0, 0, releaseSteps)
}

// ReadPosition reads the five joint position registers.
func (a *Arm) ReadPosition(ctx context.Context) ([5]int, error) {
	reply, err := a.send(ctx, "@READ")
	if err != nil {
		return [5]int{}, err
	}
	return reply.Positions()
}

// ReadRegisters reads the full register reply, including the gripper
// register and the packed pendant-key/input register.
func (a *Arm) ReadRegisters(ctx context.Context) (Reply, error) {
	return a.send(ctx, "@READ")
}

// ReturnToZero drives every motor back by its register count, returning
// the arm to the position of the last reset, then cuts motor current.
func (a *Arm) ReturnToZero(ctx context.Context) error {
	reply, err := a.send(ctx, "@READ")
	if err != nil {
		return err
	}
	pos, err := reply.Positions()
	if err != nil {
		return err
	}
	grip, err := reply.GripperRegister()
	if err != nil {
		return err
	}

	// The registers are wire-level motor counts, so they are negated and
	// sent raw; the logical couplings are already baked in.
	back := StepCommand{
		Speed:    a.cfg.Speed,
		Base:     -pos[0],
		Shoulder: -pos[1],
		Elbow:    -pos[2],
		WristA:   -pos[3],
		WristB:   -pos[4],
		Gripper:  -grip,
	}
	if err := a.Step(ctx, back); err != nil {
		return err
	}
	return a.Home(ctx)
}

// Measure closes the gripper on an object and reports the jaw opening in
// millimeters, derived from the gripper register.
func (a *Arm) Measure(ctx context.Context) (float64, error) {
	if err := a.CloseGripper(ctx); err != nil {
		return 0, err
	}
	reply, err := a.send(ctx, "@READ")
	if err != nil {
		return 0, err
	}
	grip, err := reply.GripperRegister()
	if err != nil {
		return 0, err
	}
	return float64(grip) / gripperStepsPerMM, nil
}

// Teach hands control to the handheld teach pendant.
func (a *Arm) Teach(ctx context.Context) error {
	_, err := a.send(ctx, "@SET")
	return err
}

// Run starts the program stored in the arm's memory. The reply does not
// arrive until the program halts, so callers should pass a generous ctx.
func (a *Arm) Run(ctx context.Context) error {
	_, err := a.send(ctx, "@RUN")
	return err
}

// DumpProgram downloads the program stored in the arm's memory.
func (a *Arm) DumpProgram(ctx context.Context) (Program, error) {
	reply, err := a.send(ctx, "@QDUMP")
	if err != nil {
		return nil, err
	}
	// Strip the status code; the rest is the raw register list.
	return Program(reply[1:]), nil
}

// LoadProgram uploads a previously dumped program, one acknowledged
// @QWRITE line per group of eight registers.
func (a *Arm) LoadProgram(ctx context.Context, p Program) error {
	for _, line := range p.lines() {
		if _, err := a.send(ctx, "@QWRITE "+line); err != nil {
			return err
		}
	}
	return nil
}

// Speed returns the configured default speed.
func (a *Arm) Speed() int {
	return a.cfg.Speed
}

// Geometry returns the arm's link geometry.
func (a *Arm) Geometry() Geometry {
	return a.geom
}
