// Command arm-info prints the TeachMover's position registers and pendant
// state, for quick cable checks without the full CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gwillem/teachmover/pkg/robot"
)

func main() {
	port := flag.String("port", "", "serial port (defaults to the saved configuration)")
	baud := flag.Int("baud", robot.DefaultBaud, "baud rate")
	flag.Parse()

	cfg := &robot.Config{Port: *port, Baud: *baud}
	if *port == "" {
		saved, err := robot.LoadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, "No port given and no saved configuration; use -port or run 'teachmover setup'.")
			os.Exit(1)
		}
		cfg = saved
	}

	arm, err := robot.NewArm(*cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer arm.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reply, err := arm.ReadRegisters(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("TeachMover on %s\n", cfg.Port)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━")

	pos, err := reply.Positions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for i, j := range robot.ArmJoints() {
		fmt.Printf("  %-10s %6d steps\n", j, pos[i])
	}
	if grip, err := reply.GripperRegister(); err == nil {
		fmt.Printf("  %-10s %6d steps\n", robot.Gripper, grip)
	}

	if key, err := reply.LastKey(); err == nil {
		inputs, _ := reply.Inputs()
		fmt.Println()
		fmt.Printf("  last pendant key: %s\n", key)
		fmt.Printf("  input port:       %08b\n", inputs)
	}
}
