// Package bfal compiles a small register-based assembly language into
// Brainfuck. The pipeline runs in three stages: the parser turns source
// lines into an instruction/block tree, lowering flattens that tree into a
// primitive low-level assembly over tape cells, and the emitter renders the
// primitives as Brainfuck opcodes with explicit pointer movement.
package bfal

// Compile translates assembly source into a Brainfuck program. The result
// contains only the eight Brainfuck opcode characters.
func Compile(src string) (string, error) {
	nodes, err := Parse(src)
	if err != nil {
		return "", err
	}
	prog, err := Lower(nodes)
	if err != nil {
		return "", err
	}
	return Emit(prog)
}
