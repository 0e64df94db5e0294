package robot

import (
	"context"
	"errors"
	"math"
	"testing"
)

func testArm(replies ...string) (*Arm, *scriptTransport) {
	tr := &scriptTransport{replies: replies}
	return NewArmWithTransport(tr, Config{Port: "test"}), tr
}

func TestArm_Grip(t *testing.T) {
	arm, tr := testArm("1\r", "1\r")

	if err := arm.Grip(context.Background()); err != nil {
		t.Fatalf("Grip: %v", err)
	}

	want := []string{"@CLOSE\r", "@STEP 220,0,0,0,0,0,-32\r"}
	if len(tr.writes) != len(want) {
		t.Fatalf("writes = %q, want %q", tr.writes, want)
	}
	for i := range want {
		if tr.writes[i] != want[i] {
			t.Errorf("write %d = %q, want %q", i, tr.writes[i], want[i])
		}
	}
}

func TestArm_GripMatchesManualSequence(t *testing.T) {
	// Grip is exactly CloseGripper followed by a -32 gripper step at
	// speed 220; composing the same sequence by hand must emit identical
	// frames.
	auto, autoTr := testArm("1\r", "1\r")
	manual, manualTr := testArm("1\r", "1\r")

	ctx := context.Background()
	if err := auto.Grip(ctx); err != nil {
		t.Fatalf("Grip: %v", err)
	}
	if err := manual.CloseGripper(ctx); err != nil {
		t.Fatalf("CloseGripper: %v", err)
	}
	if err := manual.MoveSteps(ctx, 220, 0, 0, 0, 0, 0, -32); err != nil {
		t.Fatalf("MoveSteps: %v", err)
	}

	if len(autoTr.writes) != len(manualTr.writes) {
		t.Fatalf("frame counts differ: %q vs %q", autoTr.writes, manualTr.writes)
	}
	for i := range autoTr.writes {
		if autoTr.writes[i] != manualTr.writes[i] {
			t.Errorf("frame %d: %q vs %q", i, autoTr.writes[i], manualTr.writes[i])
		}
	}
}

func TestArm_Release(t *testing.T) {
	arm, tr := testArm("1\r")
	if err := arm.Release(context.Background()); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if tr.writes[0] != "@STEP 220,0,0,0,0,0,500\r" {
		t.Errorf("wrote %q", tr.writes[0])
	}
}

func TestArm_ReadPosition(t *testing.T) {
	arm, tr := testArm("1,10,-20,30,-40,50,60,0\r")
	pos, err := arm.ReadPosition(context.Background())
	if err != nil {
		t.Fatalf("ReadPosition: %v", err)
	}
	if tr.writes[0] != "@READ\r" {
		t.Errorf("wrote %q, want @READ", tr.writes[0])
	}
	want := [5]int{10, -20, 30, -40, 50}
	if pos != want {
		t.Errorf("positions = %v, want %v", pos, want)
	}
}

func TestArm_ReturnToZero(t *testing.T) {
	arm, tr := testArm("1,10,-20,30,-40,50,60,0\r", "1\r", "1\r")

	if err := arm.ReturnToZero(context.Background()); err != nil {
		t.Fatalf("ReturnToZero: %v", err)
	}

	want := []string{
		"@READ\r",
		"@STEP 220,-10,20,-30,40,-50,-60\r",
		"@RESET\r",
	}
	if len(tr.writes) != len(want) {
		t.Fatalf("writes = %q, want %q", tr.writes, want)
	}
	for i := range want {
		if tr.writes[i] != want[i] {
			t.Errorf("write %d = %q, want %q", i, tr.writes[i], want[i])
		}
	}
}

func TestArm_Measure(t *testing.T) {
	arm, _ := testArm("1\r", "1,0,0,0,0,0,292,0\r")

	mm, err := arm.Measure(context.Background())
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if math.Abs(mm-292/14.6) > 1e-9 {
		t.Errorf("Measure() = %f, want %f", mm, 292/14.6)
	}
}

func TestArm_StatusErrorSurfaced(t *testing.T) {
	arm, _ := testArm("0\r")

	err := arm.CloseGripper(context.Background())
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ProtocolError", err)
	}
}

func TestArm_MoveTo(t *testing.T) {
	arm, tr := testArm("1,0,0,0,0,0,0,0\r", "1\r")

	if err := arm.MoveTo(context.Background(), Pose{X: 150, Y: 50, Z: 200}); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if len(tr.writes) != 2 {
		t.Fatalf("writes = %q, want @READ then @STEP", tr.writes)
	}
	if tr.writes[0] != "@READ\r" {
		t.Errorf("first write = %q, want @READ", tr.writes[0])
	}

	want, err := DefaultGeometry().Solve(Pose{X: 150, Y: 50, Z: 200}, [5]int{})
	if err != nil {
		t.Fatal(err)
	}
	want.Speed = DefaultSpeed
	if got := want.encode() + "\r"; tr.writes[1] != got {
		t.Errorf("second write = %q, want %q", tr.writes[1], got)
	}
}

func TestArm_DumpProgram(t *testing.T) {
	arm, tr := testArm("1,227,4,0,0,0,0,0,241,35\r")

	prog, err := arm.DumpProgram(context.Background())
	if err != nil {
		t.Fatalf("DumpProgram: %v", err)
	}
	if tr.writes[0] != "@QDUMP\r" {
		t.Errorf("wrote %q, want @QDUMP", tr.writes[0])
	}
	want := Program{227, 4, 0, 0, 0, 0, 0, 241, 35}
	if len(prog) != len(want) {
		t.Fatalf("program = %v, want %v", prog, want)
	}
	for i := range want {
		if prog[i] != want[i] {
			t.Fatalf("program = %v, want %v", prog, want)
		}
	}
}

func TestArm_LoadProgram(t *testing.T) {
	arm, tr := testArm("1\r", "1\r")

	prog := Program{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if err := arm.LoadProgram(context.Background(), prog); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}

	want := []string{
		"@QWRITE 1,2,3,4,5,6,7,8\r",
		"@QWRITE 9,10\r",
	}
	if len(tr.writes) != len(want) {
		t.Fatalf("writes = %q, want %q", tr.writes, want)
	}
	for i := range want {
		if tr.writes[i] != want[i] {
			t.Errorf("write %d = %q, want %q", i, tr.writes[i], want[i])
		}
	}
}

func TestArm_HomeAndTeach(t *testing.T) {
	tests := []struct {
		name string
		call func(*Arm, context.Context) error
		want string
	}{
		{"home", (*Arm).Home, "@RESET\r"},
		{"teach", (*Arm).Teach, "@SET\r"},
		{"run", (*Arm).Run, "@RUN\r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arm, tr := testArm("1\r")
			if err := tt.call(arm, context.Background()); err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			if tr.writes[0] != tt.want {
				t.Errorf("wrote %q, want %q", tr.writes[0], tt.want)
			}
		})
	}
}
