package bfal

// Lower flattens the parsed tree into the low-level assembly program.
// Multi-operand arithmetic expands into primitive register operations,
// WHILE/IF blocks become loop-while-nonzero constructs over a condition
// cell, and every operand is pinned to its tape cell.
func Lower(nodes []Node) (*Program, error) {
	lw := &lowerer{layout: NewLayout()}
	instrs, err := lw.lowerSeq(nodes)
	if err != nil {
		return nil, err
	}
	return &Program{Instrs: instrs, Layout: lw.layout}, nil
}

type lowerer struct {
	layout *Layout
}

func (lw *lowerer) lowerSeq(nodes []Node) ([]LLAInstr, error) {
	var out []LLAInstr
	for _, n := range nodes {
		var (
			seq []LLAInstr
			err error
		)
		switch n := n.(type) {
		case *Instruction:
			seq, err = lw.lowerInstruction(n)
		case *Block:
			seq, err = lw.lowerBlock(n)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, seq...)
	}
	return out, nil
}

func (lw *lowerer) lowerInstruction(inst *Instruction) ([]LLAInstr, error) {
	// Aliases are resolved at parse time; a bare name surviving to this
	// stage means the parser let an unresolved one through.
	for _, a := range inst.Args {
		if a.Kind == KindText && inst.Op != OpPRT {
			return nil, &AliasError{Name: a.Text, Line: inst.Line}
		}
	}

	L := lw.layout
	switch inst.Op {
	case OpSET:
		if inst.Sig == "RV" {
			cell := L.Offset(inst.Args[0].Reg)
			return append([]LLAInstr{zero(cell)}, setFromTo(cell, 0, inst.Args[1].Val)...), nil
		}
		return lw.copyCell(L.Offset(inst.Args[0].Reg), L.Offset(inst.Args[1].Reg)), nil

	case OpSTO:
		return lw.copyCell(L.Offset(inst.Args[0].Reg), L.Offset(inst.Args[1].Reg)), nil

	case OpSTZ:
		return []LLAInstr{zero(L.Offset(inst.Args[0].Reg))}, nil

	case OpINP:
		return []LLAInstr{read(L.Offset(inst.Args[0].Reg))}, nil

	case OpOUT:
		return []LLAInstr{write(L.Offset(inst.Args[0].Reg))}, nil

	case OpINC, OpDEC:
		cell := L.Offset(inst.Args[0].Reg)
		step := inc
		if inst.Op == OpDEC {
			step = dec
		}
		switch inst.Sig {
		case "R":
			return []LLAInstr{step(cell, 1)}, nil
		case "RV":
			if inst.Args[1].Val == 0 {
				return nil, nil
			}
			return []LLAInstr{step(cell, int(inst.Args[1].Val))}, nil
		default: // RR
			src := L.Offset(inst.Args[1].Reg)
			if inst.Op == OpDEC {
				return lw.subCell(cell, src), nil
			}
			return lw.addCell(cell, src), nil
		}

	case OpADD, OpSUB:
		dst := L.Offset(inst.Args[0].Reg)
		out := lw.copyCell(dst, L.Offset(inst.Args[1].Reg))
		if inst.Sig == "RRV" {
			v := inst.Args[2].Val
			if v == 0 {
				return out, nil
			}
			if inst.Op == OpSUB {
				return append(out, dec(dst, int(v))), nil
			}
			return append(out, inc(dst, int(v))), nil
		}
		src2 := L.Offset(inst.Args[2].Reg)
		if inst.Op == OpSUB {
			return append(out, lw.subCell(dst, src2)...), nil
		}
		return append(out, lw.addCell(dst, src2)...), nil

	case OpPRT:
		return lw.printText(inst.Args[0].Text), nil
	}

	return nil, parseErrf(inst.Line, "cannot lower opcode %s", inst.Op)
}

func (lw *lowerer) lowerBlock(b *Block) ([]LLAInstr, error) {
	// IF must evaluate into a scratch cell: its body ends by zeroing the
	// condition cell, and that must never clobber a register.
	cell, setup, release := lw.lowerCond(b.Cond, b.Kind == OpIF)
	defer release()

	body, err := lw.lowerSeq(b.Body)
	if err != nil {
		return nil, err
	}

	var loopBody []LLAInstr
	loopBody = append(loopBody, body...)
	if b.Kind == OpWHILE {
		// Source registers may change inside the body, so the condition is
		// recomputed before every bracket test.
		loopBody = append(loopBody, setup...)
	} else {
		loopBody = append(loopBody, zero(cell))
	}

	out := make([]LLAInstr, 0, len(setup)+1)
	out = append(out, setup...)
	out = append(out, loop(cell, loopBody...))
	return out, nil
}

// lowerCond reduces a condition to a cell whose value is nonzero iff the
// condition holds, plus the setup that computes it. NZR over a register
// needs no setup at all unless a scratch cell is forced; every other form
// accumulates into a scratch cell so equal contributions cancel to zero.
func (lw *lowerer) lowerCond(c Cond, forceScratch bool) (cell int, setup []LLAInstr, release func()) {
	L := lw.layout

	if c.Kind == CondNZR && c.Sig == "R" && !forceScratch {
		return L.Offset(c.Args[0].Reg), nil, func() {}
	}

	rc := L.AllocScratch()
	release = func() { L.FreeScratch(rc) }
	setup = []LLAInstr{zero(rc)}

	switch {
	case c.Kind == CondNZR && c.Sig == "R":
		setup = append(setup, lw.addCell(rc, L.Offset(c.Args[0].Reg))...)

	case c.Kind == CondNZR: // V
		if c.Args[0].Val != 0 {
			setup = append(setup, inc(rc, 1))
		}

	case c.Sig == "RV":
		setup = append(setup, lw.addCell(rc, L.Offset(c.Args[0].Reg))...)
		if v := c.Args[1].Val; v != 0 {
			setup = append(setup, dec(rc, int(v)))
		}

	case c.Sig == "RR":
		a, b := c.Args[0].Reg, c.Args[1].Reg
		if a == b {
			break // same register, NEQ is constant false
		}
		setup = append(setup, lw.addCell(rc, L.Offset(a))...)
		setup = append(setup, lw.subCell(rc, L.Offset(b))...)

	default: // VV, folded at compile time
		if c.Args[0].Val != c.Args[1].Val {
			setup = append(setup, inc(rc, 1))
		}
	}
	return rc, setup, release
}

// setFromTo takes a cell from one known value to another with the shorter
// of the two inc/dec runs, exploiting 8-bit wraparound.
func setFromTo(cell int, from, to uint8) []LLAInstr {
	d := int(to) - int(from)
	if d == 0 {
		return nil
	}
	if d > 128 {
		d -= 256
	} else if d < -128 {
		d += 256
	}
	if d > 0 {
		return []LLAInstr{inc(cell, d)}
	}
	return []LLAInstr{dec(cell, -d)}
}

func (lw *lowerer) copyCell(dst, src int) []LLAInstr {
	if dst == src {
		return nil
	}
	return append([]LLAInstr{zero(dst)}, lw.addCell(dst, src)...)
}

// addCell accumulates src onto dst, preserving src. The primitive
// register-driven loop destroys its counter, so each count moved to dst is
// mirrored into a scratch cell and drained back into src afterwards.
func (lw *lowerer) addCell(dst, src int) []LLAInstr {
	t := lw.layout.AllocScratch()
	seq := []LLAInstr{
		loop(src, dec(src, 1), inc(dst, 1), inc(t, 1)),
		loop(t, dec(t, 1), inc(src, 1)),
	}
	lw.layout.FreeScratch(t)
	return seq
}

func (lw *lowerer) subCell(dst, src int) []LLAInstr {
	t := lw.layout.AllocScratch()
	seq := []LLAInstr{
		loop(src, dec(src, 1), dec(dst, 1), inc(t, 1)),
		loop(t, dec(t, 1), inc(src, 1)),
	}
	lw.layout.FreeScratch(t)
	return seq
}

// printText emits one character at a time from a scratch cell, delta-coding
// consecutive byte values, and leaves the cell at zero.
func (lw *lowerer) printText(text string) []LLAInstr {
	t := lw.layout.AllocScratch()
	var out []LLAInstr
	cur := uint8(0)
	for _, b := range []byte(text) {
		out = append(out, setFromTo(t, cur, b)...)
		out = append(out, write(t))
		cur = b
	}
	out = append(out, zero(t))
	lw.layout.FreeScratch(t)
	return out
}
