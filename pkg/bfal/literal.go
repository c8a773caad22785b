package bfal

import (
	"strconv"
	"strings"
)

// ParseLiteral converts numeric literal text to an 8-bit value.
// It accepts binary ("0b101"), hexadecimal ("0x2f") and decimal ("42")
// encodings; anything malformed or above 255 is a LiteralError.
func ParseLiteral(text string) (uint8, error) {
	base := 10
	digits := text
	switch {
	case strings.HasPrefix(text, "0B"), strings.HasPrefix(text, "0b"):
		base, digits = 2, text[2:]
	case strings.HasPrefix(text, "0X"), strings.HasPrefix(text, "0x"):
		base, digits = 16, text[2:]
	}
	if digits == "" {
		return 0, &LiteralError{Text: text}
	}
	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil || value > 255 {
		return 0, &LiteralError{Text: text}
	}
	return uint8(value), nil
}

// Aliases is the substitution table built up by ALIAS directives. Bindings
// take effect from their point of definition onward; redefining a name
// silently overwrites the older binding for later lines.
type Aliases map[string]string

func (a Aliases) Define(name, target string) { a[name] = target }

// Resolve returns the bound target for token, or token itself if no binding
// exists. A single substitution pass only: targets are registers or literal
// text, never further alias names.
func (a Aliases) Resolve(token string) string {
	if target, ok := a[token]; ok {
		return target
	}
	return token
}
