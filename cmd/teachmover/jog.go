package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/teachmover/pkg/jog"
	"github.com/gwillem/teachmover/pkg/robot"
)

type JogCommand struct {
	Hz    int `long:"hz" default:"4" description:"Register poll frequency"`
	Steps int `long:"steps" default:"20" description:"Steps per jog keypress"`
	Speed int `long:"speed" description:"Jog step speed override"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	helpHeight   = 2 // key binding help
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Joint colors - distinct colors for each register trace
var jointColors = map[robot.Joint]string{
	robot.Base:     "196", // red
	robot.Shoulder: "208", // orange
	robot.Elbow:    "226", // yellow
	robot.WristA:   "46",  // green
	robot.WristB:   "51",  // cyan
	robot.Gripper:  "201", // magenta
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

type jogModel struct {
	ctrl     *jog.Controller
	chart    *streamlinechart.Model
	width    int
	height   int
	logs     []string
	lastKey  robot.Key
	inputs   int
	quitting bool
}

func (m *jogModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the controller
type stateMsg jog.State
type logMsg string

func waitForState(ctrl *jog.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *jog.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *jogModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 16 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - helpHeight - footerHeight - borderSize
	if height < 8 {
		height = 8
	}
	return width, height
}

func (m *jogModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialJogModel(ctrl *jog.Controller) jogModel {
	// Register counts span the full motor travel.
	chart := streamlinechart.New(80, 16,
		streamlinechart.WithYRange(-7200, 7200),
	)

	for _, j := range robot.AllJoints() {
		color := jointColors[j]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(string(j), runes.ThinLineStyle, style)
	}

	return jogModel{
		ctrl:  ctrl,
		chart: &chart,
	}
}

func (m jogModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m jogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		step := m.ctrl.StepSize()
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "left":
			m.ctrl.Jog(jog.AxisBase, -step)
		case "right":
			m.ctrl.Jog(jog.AxisBase, step)
		case "up":
			m.ctrl.Jog(jog.AxisShoulder, step)
		case "down":
			m.ctrl.Jog(jog.AxisShoulder, -step)
		case "w":
			m.ctrl.Jog(jog.AxisElbow, step)
		case "s":
			m.ctrl.Jog(jog.AxisElbow, -step)
		case "a":
			m.ctrl.Jog(jog.AxisPitch, -step)
		case "d":
			m.ctrl.Jog(jog.AxisPitch, step)
		case "z":
			m.ctrl.Jog(jog.AxisRoll, -step)
		case "x":
			m.ctrl.Jog(jog.AxisRoll, step)
		case "o":
			m.ctrl.Jog(jog.AxisGripper, step)
		case "c":
			m.ctrl.Jog(jog.AxisGripper, -step)
		case "g":
			m.ctrl.Grip()
		case "r":
			m.ctrl.Release()
		case "0":
			m.ctrl.Zero()
		}

	case stateMsg:
		state := jog.State(msg)
		if state.Error == nil {
			for i, j := range robot.ArmJoints() {
				m.chart.PushDataSet(string(j), float64(state.Registers[i]))
			}
			m.chart.PushDataSet(string(robot.Gripper), float64(state.Gripper))
			m.chart.DrawAll()
			m.lastKey = state.Key
			m.inputs = state.Inputs
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m jogModel) View() string {
	if m.quitting {
		return "Jog stopped, motor current off.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("TeachMover Jog"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.ctrl.Hz()))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  pendant: %s  inputs: %08b", m.lastKey, m.inputs)))
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Key bindings
	sb.WriteString(renderHelp())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9"))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, j := range robot.AllJoints() {
		color := jointColors[j]
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		item := colorStyle.Render("━━") + " " + string(j)
		items = append(items, item)
	}
	return strings.Join(items, "  ")
}

func renderHelp() string {
	bindings := []struct{ key, action string }{
		{"←/→", "base"},
		{"↑/↓", "shoulder"},
		{"w/s", "elbow"},
		{"a/d", "pitch"},
		{"z/x", "roll"},
		{"o/c", "gripper"},
		{"g", "grip"},
		{"r", "release"},
		{"0", "zero"},
	}
	var items []string
	for _, b := range bindings {
		items = append(items, keyStyle.Render(b.key)+" "+statusStyle.Render(b.action))
	}
	return strings.Join(items, "  ")
}

func (c *JogCommand) Execute(args []string) error {
	arm, _, err := openArm()
	if err != nil {
		fatal(err)
	}
	defer arm.Close()

	ctrl := jog.NewController(arm, jog.Config{
		Hz:       c.Hz,
		Speed:    c.Speed,
		StepSize: c.Steps,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ctrl.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Controller error: %v", err)
		}
	}()

	p := tea.NewProgram(initialJogModel(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
