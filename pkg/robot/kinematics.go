package robot

import "math"

// Pose is a Cartesian target for the gripper: position in millimeters from
// the base axis, hand pitch and roll in degrees. Roll1 selects how much of
// the base rotation is fed into the wrist roll to keep the hand orientation
// fixed in world coordinates (1) or relative to the arm (0).
type Pose struct {
	X, Y, Z float64
	Pitch   float64
	Roll    float64
	Roll1   float64
}

// Geometry holds the arm's link lengths in millimeters: shoulder height H,
// effective upper/forearm link L, and wrist-to-fingertip offset LL.
type Geometry struct {
	H  float64 `json:"h"`
	L  float64 `json:"l"`
	LL float64 `json:"ll"`
}

// DefaultGeometry returns the stock TeachMover dimensions.
func DefaultGeometry() Geometry {
	return Geometry{H: 193.7, L: 177.8, LL: 96.5}
}

// Steps per radian used by the coordinate equations. The elbow's 672
// differs from its gearing constant because the firmware manual's
// equations fold in the elbow linkage ratio.
var solveStepsPerRad = [5]float64{1125, 1125, 672, 241, 241}

// Solve computes the relative step deltas that bring the gripper to pose,
// given the current position registers from a prior @READ. It is pure: the
// caller reads the registers and dispatches the resulting command.
func (g Geometry) Solve(pose Pose, current [5]int) (StepCommand, error) {
	pitch := pose.Pitch * math.Pi / 180
	roll := pose.Roll * math.Pi / 180

	// Base azimuth. The x==0 column would divide by zero; the firmware
	// manual resolves it as a quarter turn toward y, with sign(0)=0 so the
	// origin column leaves the base where it is.
	var t1 float64
	if pose.X == 0 {
		t1 = sign(pose.Y) * math.Pi / 2
	} else {
		t1 = math.Atan(pose.Y / pose.X)
	}

	// Reduce to the vertical plane through the base axis: project out the
	// hand so r0/z0 locate the wrist pivot relative to the shoulder.
	rr := math.Sqrt(pose.X*pose.X + pose.Y*pose.Y)
	r0 := rr - g.LL*math.Cos(pitch)
	z0 := pose.Z - g.LL*math.Sin(pitch) - g.H

	var b float64
	if r0 == 0 {
		b = sign(z0) * math.Pi / 2
	} else {
		b = math.Atan(z0 / r0)
	}

	reach := 4*g.L*g.L/(r0*r0+z0*z0) - 1
	if reach < 0 {
		return StepCommand{}, ErrUnreachable
	}
	a := math.Atan(math.Sqrt(reach))

	t2 := math.Pi/2 - (a + b)
	t3 := b - a
	t4 := pitch - roll - pose.Roll1*t1
	t5 := pitch + roll + pose.Roll1*t1

	angles := [5]float64{t1, t2, t3, t4, t5}
	var delta [5]int
	for i, th := range angles {
		delta[i] = int(th*solveStepsPerRad[i]) - current[i]
	}

	// @STEP moves by deltas, so the registers are subtracted above. The
	// gripper argument repeats the elbow delta: with no net gripper motion
	// requested, the wire value must still compensate the elbow coupling.
	return StepCommand{
		Base:     delta[0],
		Shoulder: delta[1],
		Elbow:    delta[2],
		WristA:   delta[3],
		WristB:   delta[4],
		Gripper:  delta[2],
	}, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
