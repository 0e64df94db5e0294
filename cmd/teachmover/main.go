package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Setup   SetupCommand   `command:"setup" description:"Find the arm's serial port and save configuration"`
	Jog     JogCommand     `command:"jog" description:"Jog the arm interactively"`
	Move    MoveCommand    `command:"move" description:"Move the gripper to x y z coordinates"`
	Step    StepCommand    `command:"step" description:"Move joints by step deltas"`
	Angle   AngleCommand   `command:"angle" description:"Move joints by angle deltas in degrees"`
	Read    ReadCommand    `command:"read" description:"Print the position registers"`
	Home    HomeCommand    `command:"home" description:"Reset position registers and cut motor current"`
	Zero    ZeroCommand    `command:"zero" description:"Return all joints to the last reset position"`
	Grip    GripCommand    `command:"grip" description:"Grip an object firmly"`
	Release ReleaseCommand `command:"release" description:"Open the gripper"`
	Measure MeasureCommand `command:"measure" description:"Measure a gripped object in millimeters"`
	Teach   TeachCommand   `command:"teach" description:"Hand control to the teach pendant"`
	Program ProgramCommand `command:"program" description:"Dump, load or run the stored program"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "TeachMover - serial control CLI for the Microbot TeachMover arm"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
