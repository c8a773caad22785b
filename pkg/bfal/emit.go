package bfal

import "strings"

// emitBound caps any single repeat expansion. 8-bit-bounded literals and
// the register block keep every legitimate count far below it.
const emitBound = 255

// Emit renders the low-level assembly program as Brainfuck text. The
// emitter tracks a cursor mirroring the runtime tape pointer and asks the
// layout for every movement delta; each primitive maps to a fixed opcode
// template with its repeat count expanded literally.
func Emit(prog *Program) (string, error) {
	e := &emitter{layout: prog.Layout}
	if err := e.seq(prog.Instrs); err != nil {
		return "", err
	}
	return e.out.String(), nil
}

type emitter struct {
	layout *Layout
	cursor int
	out    strings.Builder
}

func (e *emitter) seq(instrs []LLAInstr) error {
	for _, in := range instrs {
		if err := e.instr(in); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) instr(in LLAInstr) error {
	if err := e.moveTo(in.Cell); err != nil {
		return err
	}
	switch in.Op {
	case LLAZero:
		e.out.WriteString("[-]")
	case LLAInc:
		return e.rep('+', in.N)
	case LLADec:
		return e.rep('-', in.N)
	case LLAIn:
		e.out.WriteByte(',')
	case LLAOut:
		e.out.WriteByte('.')
	case LLALoop:
		e.out.WriteByte('[')
		if err := e.seq(in.Body); err != nil {
			return err
		}
		// The bracket test reads the current cell, so the cursor must sit
		// on the tested cell again before closing.
		if err := e.moveTo(in.Cell); err != nil {
			return err
		}
		e.out.WriteByte(']')
	}
	return nil
}

func (e *emitter) moveTo(cell int) error {
	d := e.layout.MoveDelta(e.cursor, cell)
	e.cursor = cell
	if d < 0 {
		return e.rep('<', -d)
	}
	return e.rep('>', d)
}

func (e *emitter) rep(op byte, n int) error {
	if n < 0 || n > emitBound {
		return &OverflowError{Count: n}
	}
	for i := 0; i < n; i++ {
		e.out.WriteByte(op)
	}
	return nil
}
