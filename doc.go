// Package teachmover provides host-side control of the Microbot TeachMover
// robotic arm over its serial command protocol.
//
// The TeachMover speaks a line-oriented ASCII protocol at 9600 baud: each
// command starts with "@" and ends with a carriage return, and every command
// is answered with a single reply frame of comma-separated integers. This
// module implements the eight firmware commands (@STEP, @CLOSE, @SET, @RESET,
// @READ, @QDUMP, @QWRITE, @RUN), the wrist-differential motion coupling, and
// the geometric inverse kinematics needed to drive the gripper to Cartesian
// coordinates.
//
// # Usage
//
// First, run setup to find the arm's serial port:
//
//	teachmover setup
//
// Then jog it interactively:
//
//	teachmover jog
//
// or move it to a position:
//
//	teachmover move 150 0 200
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/teachmover: CLI with setup, jog and one-shot motion commands
//   - cmd/arm-info: dump position registers and pendant key state
//   - pkg/robot: wire protocol, motion composition, kinematics, configuration
//   - pkg/jog: polling jog controller
package teachmover
