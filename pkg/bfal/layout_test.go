package bfal

import "testing"

func TestRegisterOffsets(t *testing.T) {
	l := NewLayout()
	seen := map[int]bool{}
	for r := Register(0); r < NumRegisters; r++ {
		off := l.Offset(r)
		if off != int(r) {
			t.Errorf("Offset(%s) = %d; want %d", r, off, int(r))
		}
		if seen[off] {
			t.Errorf("offset %d assigned twice", off)
		}
		seen[off] = true
	}
}

func TestScratchAllocation(t *testing.T) {
	l := NewLayout()

	a := l.AllocScratch()
	b := l.AllocScratch()
	if a < NumRegisters || b < NumRegisters {
		t.Errorf("scratch cells %d, %d overlap the register block", a, b)
	}
	if a == b {
		t.Errorf("two live scratch cells share offset %d", a)
	}

	// Freed cells are reused before new ones are touched.
	l.FreeScratch(b)
	if c := l.AllocScratch(); c != b {
		t.Errorf("AllocScratch after free = %d; want reuse of %d", c, b)
	}

	l.FreeScratch(a)
	if cells := l.Cells(); cells != NumRegisters+2 {
		t.Errorf("Cells() = %d; want %d", cells, NumRegisters+2)
	}
}

func TestMoveDelta(t *testing.T) {
	l := NewLayout()
	tests := []struct {
		from, to, want int
	}{
		{0, 0, 0},
		{0, 5, 5},
		{5, 0, -5},
		{3, 8, 5},
		{8, 3, -5},
	}
	for _, tc := range tests {
		if got := l.MoveDelta(tc.from, tc.to); got != tc.want {
			t.Errorf("MoveDelta(%d, %d) = %d; want %d", tc.from, tc.to, got, tc.want)
		}
	}
}
