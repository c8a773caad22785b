package bfal

import (
	"fmt"
	"strings"
)

// LLAOp enumerates the primitive low-level assembly operations. Every
// primitive targets one tape cell; the emitter synthesizes the pointer
// movement between consecutive primitives.
type LLAOp int

const (
	LLAZero LLAOp = iota // [-]
	LLAInc               // +[n]
	LLADec               // -[n]
	LLAIn                // ,
	LLAOut               // .
	LLALoop              // [ body ] while the cell is nonzero
)

// LLAInstr is one primitive operation over a resolved tape cell. Inc and
// Dec carry a repeat count; Loop carries its flat body.
type LLAInstr struct {
	Op   LLAOp
	Cell int
	N    int
	Body []LLAInstr
}

func (in LLAInstr) String() string {
	switch in.Op {
	case LLAZero:
		return fmt.Sprintf("[-] @%d", in.Cell)
	case LLAInc:
		return fmt.Sprintf("+[%d] @%d", in.N, in.Cell)
	case LLADec:
		return fmt.Sprintf("-[%d] @%d", in.N, in.Cell)
	case LLAIn:
		return fmt.Sprintf(", @%d", in.Cell)
	case LLAOut:
		return fmt.Sprintf(". @%d", in.Cell)
	case LLALoop:
		body := make([]string, len(in.Body))
		for i, b := range in.Body {
			body[i] = b.String()
		}
		return fmt.Sprintf("loop @%d { %s }", in.Cell, strings.Join(body, "; "))
	}
	return "?"
}

// Program is the flat output of lowering, consumed once by the emitter.
type Program struct {
	Instrs []LLAInstr
	Layout *Layout
}

func (p *Program) String() string {
	lines := make([]string, len(p.Instrs))
	for i, in := range p.Instrs {
		lines[i] = in.String()
	}
	return strings.Join(lines, "\n")
}

func zero(cell int) LLAInstr { return LLAInstr{Op: LLAZero, Cell: cell} }

func inc(cell, n int) LLAInstr { return LLAInstr{Op: LLAInc, Cell: cell, N: n} }

func dec(cell, n int) LLAInstr { return LLAInstr{Op: LLADec, Cell: cell, N: n} }

func read(cell int) LLAInstr { return LLAInstr{Op: LLAIn, Cell: cell} }

func write(cell int) LLAInstr { return LLAInstr{Op: LLAOut, Cell: cell} }

func loop(cell int, body ...LLAInstr) LLAInstr {
	return LLAInstr{Op: LLALoop, Cell: cell, Body: body}
}
