package bfal

import (
	"errors"
	"testing"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		input   string
		want    uint8
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"255", 255, false},
		{"0b101", 5, false},
		{"0b11111111", 255, false},
		{"0x2a", 42, false},
		{"0x2A", 42, false},
		{"0xff", 255, false},
		{"0B101", 5, false},
		{"0XFF", 255, false},

		{"256", 0, true},
		{"999", 0, true},
		{"0x100", 0, true},
		{"0b100000000", 0, true},
		{"-1", 0, true},
		{"", 0, true},
		{"0x", 0, true},
		{"0b", 0, true},
		{"abc", 0, true},
		{"0b102", 0, true},
		{"12a", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseLiteral(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseLiteral(%q) = %d; want error", tc.input, got)
				continue
			}
			var le *LiteralError
			if !errors.As(err, &le) {
				t.Errorf("ParseLiteral(%q) error = %T; want *LiteralError", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLiteral(%q) error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLiteral(%q) = %d; want %d", tc.input, got, tc.want)
		}
	}
}

// All encodings of the same value parse identically.
func TestParseLiteralEncodingsAgree(t *testing.T) {
	encodings := []struct{ dec, bin, hex string }{
		{"5", "0b101", "0x5"},
		{"65", "0b1000001", "0x41"},
		{"255", "0b11111111", "0xff"},
		{"0", "0b0", "0x0"},
	}
	for _, enc := range encodings {
		d, err := ParseLiteral(enc.dec)
		if err != nil {
			t.Fatalf("ParseLiteral(%q): %v", enc.dec, err)
		}
		for _, alt := range []string{enc.bin, enc.hex} {
			v, err := ParseLiteral(alt)
			if err != nil {
				t.Fatalf("ParseLiteral(%q): %v", alt, err)
			}
			if v != d {
				t.Errorf("ParseLiteral(%q) = %d; want %d (same as %q)", alt, v, d, enc.dec)
			}
		}
	}
}

func TestAliases(t *testing.T) {
	a := Aliases{}
	if got := a.Resolve("X"); got != "X" {
		t.Errorf("Resolve on empty table = %q; want %q", got, "X")
	}

	a.Define("X", "R1")
	if got := a.Resolve("X"); got != "R1" {
		t.Errorf("Resolve(X) = %q; want R1", got)
	}

	// Redefinition overwrites silently.
	a.Define("X", "42")
	if got := a.Resolve("X"); got != "42" {
		t.Errorf("Resolve(X) after redefinition = %q; want 42", got)
	}
}
