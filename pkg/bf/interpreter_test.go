package bf

import (
	"bytes"
	"strings"
	"testing"
)

func runProgram(t *testing.T, program, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := Run(program, strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run(%q) failed: %v", program, err)
	}
	return out.String()
}

func TestRunSimplePrograms(t *testing.T) {
	tests := []struct {
		name    string
		program string
		input   string
		want    string
	}{
		{"empty", "", "", ""},
		{"output zero", ".", "", "\x00"},
		{"increment and output", "+++.", "", "\x03"},
		{"echo one byte", ",.", "A", "A"},
		{"echo until eof", ",[.,]", "hi", "hi"},
		{"move and add", "++>+++<[->+<]>.", "", "\x05"},
		{"clear loop", "+++++[-].", "", "\x00"},
		{"nested loops", "++[>++[>++<-]<-].>.>.", "", "\x00\x00\x08"},
		{"ignores other characters", "+ + ; comment\n+.", "", "\x03"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := runProgram(t, tc.program, tc.input)
			if got != tc.want {
				t.Errorf("output = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestHelloWorld(t *testing.T) {
	program := "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]" +
		">>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."
	got := runProgram(t, program, "")
	if got != "Hello World!\n" {
		t.Errorf("output = %q; want %q", got, "Hello World!\n")
	}
}

func TestCellsWrapAround(t *testing.T) {
	if got := runProgram(t, "-.", ""); got != "\xff" {
		t.Errorf("decrement below zero: output = %q; want %q", got, "\xff")
	}
	program := strings.Repeat("+", 256) + "."
	if got := runProgram(t, program, ""); got != "\x00" {
		t.Errorf("increment past 255: output = %q; want %q", got, "\x00")
	}
}

func TestReadAtEOFGivesZero(t *testing.T) {
	if got := runProgram(t, "+++,.", ""); got != "\x00" {
		t.Errorf("output = %q; want %q", got, "\x00")
	}
}

func TestLoadRejectsUnbalancedBrackets(t *testing.T) {
	tests := []string{"[", "]", "][", "[[]", "[]]", "+[>+"}
	for _, program := range tests {
		ip := New(DefaultMemorySize)
		if err := ip.Load(program); err == nil {
			t.Errorf("Load(%q) succeeded; want error", program)
		}
	}
}

func TestPointerOutOfBounds(t *testing.T) {
	ip := New(4)
	if err := ip.Load("<"); err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(); err == nil {
		t.Error("moving left of cell 0 succeeded; want error")
	}

	ip = New(4)
	if err := ip.Load(">>>>"); err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(); err == nil {
		t.Error("moving past the last cell succeeded; want error")
	}
}

func TestStepAndHalted(t *testing.T) {
	ip := New(DefaultMemorySize)
	if err := ip.Load("++"); err != nil {
		t.Fatal(err)
	}
	if ip.Halted() {
		t.Fatal("halted before any steps")
	}
	if err := ip.Step(); err != nil {
		t.Fatal(err)
	}
	if ip.Halted() {
		t.Fatal("halted after one of two steps")
	}
	if err := ip.Step(); err != nil {
		t.Fatal(err)
	}
	if !ip.Halted() {
		t.Fatal("not halted at end of program")
	}
	// Stepping a halted interpreter is a no-op.
	if err := ip.Step(); err != nil {
		t.Fatal(err)
	}
	if got := ip.Tape()[0]; got != 2 {
		t.Errorf("cell 0 = %d; want 2", got)
	}
}

func TestTapeAndPointer(t *testing.T) {
	ip := New(DefaultMemorySize)
	if err := ip.Load(">>+++"); err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(); err != nil {
		t.Fatal(err)
	}
	if got := ip.Pointer(); got != 2 {
		t.Errorf("Pointer() = %d; want 2", got)
	}
	if got := ip.Tape()[2]; got != 3 {
		t.Errorf("cell 2 = %d; want 3", got)
	}
}

func TestLoadResetsState(t *testing.T) {
	ip := New(DefaultMemorySize)
	if err := ip.Load("+++>++"); err != nil {
		t.Fatal(err)
	}
	if err := ip.Run(); err != nil {
		t.Fatal(err)
	}
	if err := ip.Load("."); err != nil {
		t.Fatal(err)
	}
	if ip.Pointer() != 0 {
		t.Errorf("Pointer() = %d after reload; want 0", ip.Pointer())
	}
	var out bytes.Buffer
	ip.SetStreams(nil, &out)
	if err := ip.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\x00" {
		t.Errorf("output = %q after reload; want %q", out.String(), "\x00")
	}
}
