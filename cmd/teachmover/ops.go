package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/teachmover/pkg/robot"
)

// openArm connects using the saved configuration, with optional overrides
// applied before the port opens.
func openArm(modify ...func(*robot.Config)) (*robot.Arm, *robot.Config, error) {
	cfg, err := robot.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("no configuration found, run 'teachmover setup' first")
	}
	for _, m := range modify {
		m(cfg)
	}
	arm, err := robot.NewArm(*cfg)
	if err != nil {
		return nil, nil, err
	}
	return arm, cfg, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

type MoveCommand struct {
	Speed int     `long:"speed" description:"Step speed override"`
	Pitch float64 `long:"pitch" description:"Hand pitch in degrees"`
	Roll  float64 `long:"roll" description:"Hand roll in degrees"`
	Roll1 float64 `long:"roll1" description:"Base-rotation share fed into the wrist roll (0 or 1)"`
	Args  struct {
		X float64 `positional-arg-name:"x"`
		Y float64 `positional-arg-name:"y"`
		Z float64 `positional-arg-name:"z"`
	} `positional-args:"yes" required:"yes"`
}

func (c *MoveCommand) Execute(args []string) error {
	arm, _, err := openArm(func(cfg *robot.Config) {
		if c.Speed > 0 {
			cfg.Speed = c.Speed
		}
	})
	if err != nil {
		fatal(err)
	}
	defer arm.Close()

	pose := robot.Pose{
		X: c.Args.X, Y: c.Args.Y, Z: c.Args.Z,
		Pitch: c.Pitch, Roll: c.Roll, Roll1: c.Roll1,
	}
	if err := arm.MoveTo(context.Background(), pose); err != nil {
		fatal(err)
	}
	fmt.Printf("Moved to (%.1f, %.1f, %.1f)\n", c.Args.X, c.Args.Y, c.Args.Z)
	return nil
}

type StepCommand struct {
	Speed  int  `long:"speed" description:"Step speed override"`
	Output *int `long:"output" description:"Value for the auxiliary output port"`
	Args   struct {
		Base     int `positional-arg-name:"base"`
		Shoulder int `positional-arg-name:"shoulder"`
		Elbow    int `positional-arg-name:"elbow"`
		Pitch    int `positional-arg-name:"pitch"`
		Roll     int `positional-arg-name:"roll"`
		Gripper  int `positional-arg-name:"gripper"`
	} `positional-args:"yes" required:"yes"`
}

func (c *StepCommand) Execute(args []string) error {
	arm, cfg, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()

	speed := cfg.Speed
	if c.Speed > 0 {
		speed = c.Speed
	}
	ctx := context.Background()
	a := c.Args
	if c.Output != nil {
		err = arm.MoveSteps(ctx, speed, a.Base, a.Shoulder, a.Elbow, a.Pitch, a.Roll, a.Gripper, *c.Output)
	} else {
		err = arm.MoveSteps(ctx, speed, a.Base, a.Shoulder, a.Elbow, a.Pitch, a.Roll, a.Gripper)
	}
	if err != nil {
		fatal(err)
	}
	return nil
}

type AngleCommand struct {
	Speed int `long:"speed" description:"Step speed override"`
	Args  struct {
		Base     float64 `positional-arg-name:"base"`
		Shoulder float64 `positional-arg-name:"shoulder"`
		Elbow    float64 `positional-arg-name:"elbow"`
		Pitch    float64 `positional-arg-name:"pitch"`
		Roll     float64 `positional-arg-name:"roll"`
	} `positional-args:"yes" required:"yes"`
}

func (c *AngleCommand) Execute(args []string) error {
	arm, cfg, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()

	speed := cfg.Speed
	if c.Speed > 0 {
		speed = c.Speed
	}
	a := c.Args
	if err := arm.MoveAngles(context.Background(), speed, a.Base, a.Shoulder, a.Elbow, a.Pitch, a.Roll); err != nil {
		fatal(err)
	}
	return nil
}

type ReadCommand struct{}

func (c *ReadCommand) Execute(args []string) error {
	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()

	reply, err := arm.ReadRegisters(context.Background())
	if err != nil {
		fatal(err)
	}
	pos, err := reply.Positions()
	if err != nil {
		fatal(err)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("JOINT", "STEPS")
	for i, j := range robot.ArmJoints() {
		t.Row(string(j), strconv.Itoa(pos[i]))
	}
	if grip, err := reply.GripperRegister(); err == nil {
		t.Row(string(robot.Gripper), strconv.Itoa(grip))
	}
	fmt.Println(t)

	if key, err := reply.LastKey(); err == nil {
		inputs, _ := reply.Inputs()
		fmt.Printf("Last pendant key: %s, inputs: %08b\n", key, inputs)
	}
	return nil
}

type HomeCommand struct{}

func (c *HomeCommand) Execute(args []string) error {
	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()
	if err := arm.Home(context.Background()); err != nil {
		fatal(err)
	}
	fmt.Println("Registers reset, motor current off.")
	return nil
}

type ZeroCommand struct{}

func (c *ZeroCommand) Execute(args []string) error {
	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()
	if err := arm.ReturnToZero(context.Background()); err != nil {
		fatal(err)
	}
	fmt.Println("Returned to zero.")
	return nil
}

type GripCommand struct{}

func (c *GripCommand) Execute(args []string) error {
	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()
	if err := arm.Grip(context.Background()); err != nil {
		fatal(err)
	}
	return nil
}

type ReleaseCommand struct{}

func (c *ReleaseCommand) Execute(args []string) error {
	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()
	if err := arm.Release(context.Background()); err != nil {
		fatal(err)
	}
	return nil
}

type MeasureCommand struct{}

func (c *MeasureCommand) Execute(args []string) error {
	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()
	mm, err := arm.Measure(context.Background())
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%.1f mm\n", mm)
	return nil
}

type TeachCommand struct{}

func (c *TeachCommand) Execute(args []string) error {
	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()
	if err := arm.Teach(context.Background()); err != nil {
		fatal(err)
	}
	fmt.Println("Teach pendant active.")
	return nil
}

type ProgramCommand struct {
	Dump ProgramDumpCommand `command:"dump" description:"Download the stored program to a file"`
	Load ProgramLoadCommand `command:"load" description:"Upload a program file to the arm"`
	Run  ProgramRunCommand  `command:"run" description:"Run the stored program"`
}

type ProgramDumpCommand struct {
	Args struct {
		File string `positional-arg-name:"file"`
	} `positional-args:"yes" required:"yes"`
}

func (c *ProgramDumpCommand) Execute(args []string) error {
	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()

	prog, err := arm.DumpProgram(context.Background())
	if err != nil {
		fatal(err)
	}
	if err := prog.Save(c.Args.File); err != nil {
		fatal(err)
	}
	fmt.Printf("Saved %d registers to %s\n", len(prog), c.Args.File)
	return nil
}

type ProgramLoadCommand struct {
	Args struct {
		File string `positional-arg-name:"file"`
	} `positional-args:"yes" required:"yes"`
}

func (c *ProgramLoadCommand) Execute(args []string) error {
	prog, err := robot.LoadProgramFile(c.Args.File)
	if err != nil {
		fatal(err)
	}

	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()

	if err := arm.LoadProgram(context.Background(), prog); err != nil {
		fatal(err)
	}
	fmt.Printf("Uploaded %d registers from %s\n", len(prog), c.Args.File)
	return nil
}

type ProgramRunCommand struct{}

func (c *ProgramRunCommand) Execute(args []string) error {
	// A stored program can run for minutes before the firmware replies.
	arm, _, err := openArm(func(cfg *robot.Config) {
		if cfg.ReplyTimeoutMS == 0 {
			cfg.ReplyTimeoutMS = int((10 * time.Minute).Milliseconds())
		}
	})
	if err != nil {
		fatal(err)
	}
	defer arm.Close()
	fmt.Println("Running stored program...")
	if err := arm.Run(context.Background()); err != nil {
		fatal(err)
	}
	fmt.Println("Program finished.")
	return nil
}
