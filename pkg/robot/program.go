package robot

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Program is the register list of a trained program, as dumped by @QDUMP.
// The values are opaque to the host: they are stored and replayed verbatim.
type Program []int

// The firmware accepts program registers in groups of eight per @QWRITE
// line.
const programGroupSize = 8

// lines splits the program into @QWRITE-sized groups, comma-separated
// within a group with no trailing comma.
func (p Program) lines() []string {
	var lines []string
	for start := 0; start < len(p); start += programGroupSize {
		end := start + programGroupSize
		if end > len(p) {
			end = len(p)
		}
		vals := make([]string, end-start)
		for i, v := range p[start:end] {
			vals[i] = strconv.Itoa(v)
		}
		lines = append(lines, strings.Join(vals, ","))
	}
	return lines
}

// Format renders the program in the dump file layout: groups of eight
// values per line, CR as the line separator.
func (p Program) Format() string {
	return strings.Join(p.lines(), "\r")
}

// ParseProgram reads a program back from its dump file layout.
func ParseProgram(text string) (Program, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	prog := make(Program, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, &ParseError{Raw: text, Token: f}
		}
		prog = append(prog, v)
	}
	return prog, nil
}

// Save writes the program to a file in dump layout.
func (p Program) Save(path string) error {
	if err := os.WriteFile(path, []byte(p.Format()), 0644); err != nil {
		return fmt.Errorf("save program: %w", err)
	}
	return nil
}

// LoadProgramFile reads a previously saved program.
func LoadProgramFile(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load program: %w", err)
	}
	return ParseProgram(string(data))
}
