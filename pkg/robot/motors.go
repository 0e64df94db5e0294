// Package robot implements the TeachMover serial command protocol and the
// motion and kinematics layers on top of it.
package robot

// Joint identifies one motorized axis of the arm.
type Joint string

// Joints in wire order (the argument order of @STEP).
const (
	Base     Joint = "base"
	Shoulder Joint = "shoulder"
	Elbow    Joint = "elbow"
	WristA   Joint = "wrist_a" // right wrist motor
	WristB   Joint = "wrist_b" // left wrist motor
	Gripper  Joint = "gripper"
)

// AllJoints returns all joints in wire order.
func AllJoints() []Joint {
	return []Joint{
		Base,
		Shoulder,
		Elbow,
		WristA,
		WristB,
		Gripper,
	}
}

// ArmJoints returns the five angular joints, excluding the gripper.
func ArmJoints() []Joint {
	return []Joint{
		Base,
		Shoulder,
		Elbow,
		WristA,
		WristB,
	}
}

// MotorSpec holds the step conversion constants for one joint. The values
// come from the TeachMover's stepper gearing and never change.
type MotorSpec struct {
	StepsPerRev float64
	StepsPerRad float64
	StepsPerDeg float64
}

var motorSpecs = map[Joint]MotorSpec{
	Base:     {StepsPerRev: 7072, StepsPerRad: 1125, StepsPerDeg: 19.64},
	Shoulder: {StepsPerRev: 7072, StepsPerRad: 1125, StepsPerDeg: 19.64},
	Elbow:    {StepsPerRev: 4158, StepsPerRad: 661.2, StepsPerDeg: 11.55},
	WristA:   {StepsPerRev: 1536, StepsPerRad: 241, StepsPerDeg: 4.27},
	WristB:   {StepsPerRev: 1536, StepsPerRad: 241, StepsPerDeg: 4.27},
}

// SpecFor returns the conversion constants for a joint. The gripper has no
// angular spec; the zero value is returned for it.
func SpecFor(j Joint) MotorSpec {
	return motorSpecs[j]
}
