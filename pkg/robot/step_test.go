package robot

import "testing"

func TestComposeSteps_Couplings(t *testing.T) {
	cmd := ComposeSteps(220, 100, -50, 30, 40, 10, -5)

	if cmd.WristA != 30 { // pitch - roll
		t.Errorf("WristA = %d, want 30", cmd.WristA)
	}
	if cmd.WristB != 50 { // pitch + roll
		t.Errorf("WristB = %d, want 50", cmd.WristB)
	}
	if cmd.Gripper != 25 { // gripper + elbow
		t.Errorf("Gripper = %d, want 25", cmd.Gripper)
	}
	if cmd.Base != 100 || cmd.Shoulder != -50 || cmd.Elbow != 30 {
		t.Errorf("pass-through joints wrong: %+v", cmd)
	}
	if cmd.HasOutput {
		t.Error("HasOutput set without an output argument")
	}
}

func TestComposeSteps_Output(t *testing.T) {
	cmd := ComposeSteps(220, 0, 0, 0, 0, 0, 0, 3)
	if !cmd.HasOutput || cmd.Output != 3 {
		t.Errorf("output not carried: %+v", cmd)
	}
	if got, want := cmd.encode(), "@STEP 220,0,0,0,0,0,0,3"; got != want {
		t.Errorf("encode() = %q, want %q", got, want)
	}
}

func TestStepCommand_Encode(t *testing.T) {
	cmd := StepCommand{Speed: 220, Base: 1, Shoulder: -2, Elbow: 3, WristA: -4, WristB: 5, Gripper: -32}
	if got, want := cmd.encode(), "@STEP 220,1,-2,3,-4,5,-32"; got != want {
		t.Errorf("encode() = %q, want %q", got, want)
	}
}

func TestWristCoupling_Invertible(t *testing.T) {
	// Composing then decomposing must recover every pitch/roll pair.
	for pitch := -200; pitch <= 200; pitch += 25 {
		for roll := -200; roll <= 200; roll += 25 {
			cmd := ComposeSteps(220, 0, 0, 0, pitch, roll, 0)
			gotPitch, gotRoll := DecoupleWrist(cmd.WristA, cmd.WristB)
			if gotPitch != pitch || gotRoll != roll {
				t.Fatalf("pitch %d roll %d came back as %d %d", pitch, roll, gotPitch, gotRoll)
			}
		}
	}
}

func TestComposeAngles_MatchesTruncatedSteps(t *testing.T) {
	tests := []struct {
		name                               string
		base, shoulder, elbow, pitch, roll float64
		wantB, wantS, wantE, wantP, wantR  int
	}{
		{"positive", 10, 10, 10, 10, 10, 196, 196, 115, 42, 42},
		{"negative truncates toward zero", -10, -10, -10, -10, -10, -196, -196, -115, -42, -42},
		{"fractional", 0.5, 1.5, 33.3, 5, -5, 9, 29, 384, 21, -21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeAngles(220, tt.base, tt.shoulder, tt.elbow, tt.pitch, tt.roll)
			want := ComposeSteps(220, tt.wantB, tt.wantS, tt.wantE, tt.wantP, tt.wantR, 0)
			if got != want {
				t.Errorf("ComposeAngles = %+v, want %+v", got, want)
			}
		})
	}
}
