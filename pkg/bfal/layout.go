package bfal

// NumRegisters is the size of the register block at the start of the tape.
const NumRegisters = 8

// Layout assigns registers and scratch slots to tape cells. Registers own
// offsets 0..7; scratch cells are handed out beyond the register block and
// recycled through a free list. Every cell handed out by AllocScratch holds
// zero, and callers must leave it at zero again before freeing it.
type Layout struct {
	free []int
	next int
}

func NewLayout() *Layout {
	return &Layout{next: NumRegisters}
}

// Offset returns the fixed tape cell of a register.
func (l *Layout) Offset(r Register) int { return int(r) }

func (l *Layout) AllocScratch() int {
	if n := len(l.free); n > 0 {
		cell := l.free[n-1]
		l.free = l.free[:n-1]
		return cell
	}
	cell := l.next
	l.next++
	return cell
}

func (l *Layout) FreeScratch(cell int) {
	l.free = append(l.free, cell)
}

// MoveDelta returns the signed pointer-step count from one cell to another.
// All emitted movement must come from here; an ad-hoc delta that drifts by
// one silently corrupts unrelated cells.
func (l *Layout) MoveDelta(from, to int) int { return to - from }

// Cells returns the number of tape cells the layout has touched.
func (l *Layout) Cells() int { return l.next }
