package robot

import "fmt"

// StepCommand holds the relative step deltas for one @STEP command, in
// wire-level motor units. All fields are signed; positive base steps turn
// the arm counterclockwise seen from above.
type StepCommand struct {
	Speed    int
	Base     int
	Shoulder int
	Elbow    int
	WristA   int
	WristB   int
	Gripper  int

	// Output is sent as the optional 8th argument when HasOutput is set,
	// driving the auxiliary output port.
	Output    int
	HasOutput bool
}

// encode renders the command as a wire frame, without the terminator.
func (s StepCommand) encode() string {
	cmd := fmt.Sprintf("@STEP %d,%d,%d,%d,%d,%d,%d",
		s.Speed, s.Base, s.Shoulder, s.Elbow, s.WristA, s.WristB, s.Gripper)
	if s.HasOutput {
		cmd += fmt.Sprintf(",%d", s.Output)
	}
	return cmd
}

// ComposeSteps builds the wire command for logical step deltas. Two
// mechanical couplings are applied here and nowhere else:
//
//   - the wrist is a differential, so the two wrist motors move
//     pitch-roll and pitch+roll;
//   - elbow motion back-drives the gripper axis, so the wire gripper
//     argument is gripper+elbow.
//
// An optional output value becomes the 8th @STEP argument.
func ComposeSteps(speed, base, shoulder, elbow, pitch, roll, gripper int, output ...int) StepCommand {
	cmd := StepCommand{
		Speed:    speed,
		Base:     base,
		Shoulder: shoulder,
		Elbow:    elbow,
		WristA:   pitch - roll,
		WristB:   pitch + roll,
		Gripper:  gripper + elbow,
	}
	if len(output) > 0 {
		cmd.Output = output[0]
		cmd.HasOutput = true
	}
	return cmd
}

// ComposeAngles builds the wire command for joint angle deltas in degrees.
// Each angle converts through its motor's StepsPerDeg, truncated toward
// zero, before the step couplings apply.
func ComposeAngles(speed int, baseDeg, shoulderDeg, elbowDeg, pitchDeg, rollDeg float64) StepCommand {
	return ComposeSteps(speed,
		degSteps(Base, baseDeg),
		degSteps(Shoulder, shoulderDeg),
		degSteps(Elbow, elbowDeg),
		degSteps(WristA, pitchDeg),
		degSteps(WristB, rollDeg),
		0)
}

func degSteps(j Joint, deg float64) int {
	return int(deg * motorSpecs[j].StepsPerDeg)
}

// DecoupleWrist recovers the logical pitch and roll deltas from wire-level
// wrist motor values. It is the inverse of the coupling in ComposeSteps.
func DecoupleWrist(wristA, wristB int) (pitch, roll int) {
	return (wristA + wristB) / 2, (wristB - wristA) / 2
}
