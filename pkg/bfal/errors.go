package bfal

import "fmt"

// LiteralError reports a numeric literal that is malformed or outside 0..255.
type LiteralError struct {
	Text string
	Line int
}

func (e *LiteralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid literal %q on line %d", e.Text, e.Line)
	}
	return fmt.Sprintf("invalid literal %q", e.Text)
}

// ParseError reports a malformed assembly line.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s on line %d", e.Reason, e.Line)
}

func parseErrf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// AliasError reports a name used where a register or value was expected and
// no ALIAS binding was in effect at that point in the source.
type AliasError struct {
	Name string
	Line int
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("unresolved alias %q on line %d", e.Name, e.Line)
}

// OverflowError reports a repeat expansion past the emitter's bound.
type OverflowError struct {
	Count int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("repeat count %d exceeds the emission bound %d", e.Count, emitBound)
}
