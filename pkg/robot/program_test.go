package robot

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestProgram_Format(t *testing.T) {
	prog := Program{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	got := prog.Format()
	want := "1,2,3,4,5,6,7,8\r9,10"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if strings.Contains(got, ",\r") {
		t.Error("group ends with a trailing comma")
	}
}

func TestProgram_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		prog Program
	}{
		{"empty", Program{}},
		{"single group", Program{10, -20, 30, 40, 50, 60, 70, 80}},
		{"partial tail", Program{1, 2, 3}},
		{"several groups", Program{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, -17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back, err := ParseProgram(tt.prog.Format())
			if err != nil {
				t.Fatalf("ParseProgram: %v", err)
			}
			if len(back) != len(tt.prog) {
				t.Fatalf("round trip = %v, want %v", back, tt.prog)
			}
			for i := range tt.prog {
				if back[i] != tt.prog[i] {
					t.Fatalf("round trip = %v, want %v", back, tt.prog)
				}
			}
		})
	}
}

func TestProgram_ParseBadToken(t *testing.T) {
	if _, err := ParseProgram("1,2,x"); err == nil {
		t.Fatal("want error for non-numeric register")
	}
}

func TestProgram_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.txt")
	prog := Program{227, 4, 0, 0, 0, 0, 0, 241, 35, -12}

	if err := prog.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := LoadProgramFile(path)
	if err != nil {
		t.Fatalf("LoadProgramFile: %v", err)
	}
	if len(back) != len(prog) {
		t.Fatalf("loaded %v, want %v", back, prog)
	}
	for i := range prog {
		if back[i] != prog[i] {
			t.Fatalf("loaded %v, want %v", back, prog)
		}
	}
}
