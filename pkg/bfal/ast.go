package bfal

import (
	"fmt"
	"strings"
)

// Register is one of the 8 named 8-bit storage locations R0..R7.
type Register int

func (r Register) String() string { return fmt.Sprintf("R%d", int(r)) }

// OperandKind matches the signature letters in the opcode table.
type OperandKind byte

const (
	KindRegister OperandKind = 'R'
	KindValue    OperandKind = 'V'
	KindText     OperandKind = 'T'
)

// Operand is a parsed, alias-resolved instruction argument.
type Operand struct {
	Kind OperandKind
	Reg  Register // valid when Kind == KindRegister
	Val  uint8    // valid when Kind == KindValue
	Text string   // valid when Kind == KindText
}

func (o Operand) String() string {
	switch o.Kind {
	case KindRegister:
		return o.Reg.String()
	case KindValue:
		return fmt.Sprintf("%d", o.Val)
	default:
		return fmt.Sprintf("%q", o.Text)
	}
}

// Node is implemented by every parsed assembly construct.
type Node interface {
	nodeTag()
	String() string
}

// Instruction is a straight-line operation: an opcode plus its operands.
//
//	ADD R0 R1 5
//	^^^ ^^^^^^^
//	Op  Args (Sig "RRV")
type Instruction struct {
	Op   Opcode
	Sig  string // matched operand signature, e.g. "RV"
	Args []Operand
	Line int
}

func (*Instruction) nodeTag() {}
func (i *Instruction) String() string {
	parts := []string{i.Op.String()}
	for _, a := range i.Args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}

// Cond is the predicate attached to a block header.
type Cond struct {
	Kind Condition
	Sig  string
	Args []Operand
}

func (c Cond) String() string {
	parts := []string{c.Kind.String()}
	for _, a := range c.Args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}

// Block is a WHILE or IF header with its strictly nested body.
type Block struct {
	Kind Opcode // OpWHILE or OpIF
	Cond Cond
	Body []Node
	Line int
}

func (*Block) nodeTag() {}
func (b *Block) String() string {
	return fmt.Sprintf("%s %s [%d nodes]", b.Kind, b.Cond, len(b.Body))
}
