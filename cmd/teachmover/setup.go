package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.bug.st/serial"

	"github.com/gwillem/teachmover/pkg/robot"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type SetupCommand struct {
	Baud int `long:"baud" default:"9600" description:"Serial baud rate"`
}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("TeachMover Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━"))
	fmt.Println()

	candidates := findArms(c.Baud)
	if len(candidates) == 0 {
		fmt.Println("No TeachMover found.")
		fmt.Println("Make sure the arm is connected and powered on.")
		os.Exit(1)
	}

	port := candidates[0]
	if len(candidates) > 1 {
		options := make([]huh.Option[string], len(candidates))
		for i, p := range candidates {
			options[i] = huh.NewOption(p, p)
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Which port is the TeachMover on?").
					Options(options...).
					Value(&port),
			),
		)
		if err := form.Run(); err != nil {
			os.Exit(1)
		}
	}

	cfg := &robot.Config{Port: port, Baud: c.Baud}
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", robot.DefaultConfigFile)
	fmt.Println()
	fmt.Println("Jog the arm with: " + headerStyle.Render("teachmover jog"))
	return nil
}

// findArms probes every serial port with @READ and keeps the ones that
// answer like a TeachMover.
func findArms(baud int) []string {
	ports, err := serial.GetPortsList()
	if err != nil {
		fmt.Printf("Error listing ports: %v\n", err)
		return nil
	}

	fmt.Println("Scanning for the arm...")
	fmt.Println()

	var found []string
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}

		arm, err := robot.NewArm(robot.Config{
			Port:           port,
			Baud:           baud,
			ReplyTimeoutMS: 2000,
		})
		if err != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_, err = arm.ReadPosition(ctx)
		cancel()
		arm.Close()

		if err == nil {
			fmt.Printf("  Found TeachMover on %s\n", port)
			found = append(found, port)
		}
	}
	return found
}
