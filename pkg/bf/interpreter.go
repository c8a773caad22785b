// Package bf interprets Brainfuck programs over a fixed-size tape of 8-bit
// wrapping cells.
package bf

import (
	"bufio"
	"fmt"
	"io"
)

const DefaultMemorySize = 30000

// Interpreter executes one loaded program. Non-opcode characters are
// discarded at load time and bracket jumps are resolved in a prepass, so
// Step never scans for a matching bracket.
type Interpreter struct {
	code  []byte
	jumps []int
	pc    int

	tape []byte
	ptr  int

	in     *bufio.Reader
	out    io.Writer
	halted bool
}

func New(memorySize int) *Interpreter {
	if memorySize <= 0 {
		memorySize = DefaultMemorySize
	}
	return &Interpreter{tape: make([]byte, memorySize)}
}

// SetStreams attaches the input and output byte streams. Either may be nil,
// in which case ',' reads zero and '.' discards.
func (ip *Interpreter) SetStreams(in io.Reader, out io.Writer) {
	if in != nil {
		ip.in = bufio.NewReader(in)
	} else {
		ip.in = nil
	}
	ip.out = out
}

// Load filters source down to the eight opcodes, resolves bracket jumps and
// resets the machine state.
func (ip *Interpreter) Load(program string) error {
	ip.code = ip.code[:0]
	for i := 0; i < len(program); i++ {
		switch program[i] {
		case '+', '-', '<', '>', '[', ']', ',', '.':
			ip.code = append(ip.code, program[i])
		}
	}

	ip.jumps = make([]int, len(ip.code))
	var open []int
	for i, c := range ip.code {
		switch c {
		case '[':
			open = append(open, i)
		case ']':
			if len(open) == 0 {
				return fmt.Errorf("unbalanced ']' at opcode %d", i)
			}
			j := open[len(open)-1]
			open = open[:len(open)-1]
			ip.jumps[i] = j
			ip.jumps[j] = i
		}
	}
	if len(open) != 0 {
		return fmt.Errorf("unbalanced '[' at opcode %d", open[len(open)-1])
	}

	for i := range ip.tape {
		ip.tape[i] = 0
	}
	ip.pc = 0
	ip.ptr = 0
	ip.halted = false
	return nil
}

// Step executes one opcode. It is a no-op once the program has halted.
func (ip *Interpreter) Step() error {
	if ip.pc >= len(ip.code) {
		ip.halted = true
		return nil
	}

	switch ip.code[ip.pc] {
	case '>':
		ip.ptr++
		if ip.ptr >= len(ip.tape) {
			return fmt.Errorf("tape pointer moved past cell %d", len(ip.tape)-1)
		}
	case '<':
		ip.ptr--
		if ip.ptr < 0 {
			return fmt.Errorf("tape pointer moved below cell 0")
		}
	case '+':
		ip.tape[ip.ptr]++
	case '-':
		ip.tape[ip.ptr]--
	case '.':
		if ip.out != nil {
			if _, err := ip.out.Write([]byte{ip.tape[ip.ptr]}); err != nil {
				return err
			}
		}
	case ',':
		ip.tape[ip.ptr] = ip.readByte()
	case '[':
		if ip.tape[ip.ptr] == 0 {
			ip.pc = ip.jumps[ip.pc]
		}
	case ']':
		if ip.tape[ip.ptr] != 0 {
			ip.pc = ip.jumps[ip.pc]
		}
	}

	ip.pc++
	if ip.pc >= len(ip.code) {
		ip.halted = true
	}
	return nil
}

// readByte delivers the next input byte, or zero at end of input.
func (ip *Interpreter) readByte() byte {
	if ip.in == nil {
		return 0
	}
	b, err := ip.in.ReadByte()
	if err != nil {
		return 0
	}
	return b
}

func (ip *Interpreter) Run() error {
	for !ip.halted {
		if err := ip.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) Halted() bool { return ip.halted }

// Tape exposes the memory cells for inspection.
func (ip *Interpreter) Tape() []byte { return ip.tape }

// Pointer returns the current data pointer position.
func (ip *Interpreter) Pointer() int { return ip.ptr }

// Run loads and executes a program against the given streams.
func Run(program string, in io.Reader, out io.Writer) error {
	ip := New(DefaultMemorySize)
	ip.SetStreams(in, out)
	if err := ip.Load(program); err != nil {
		return err
	}
	return ip.Run()
}
