package bfal

// Opcode identifies an assembly mnemonic.
type Opcode int

const (
	OpSET Opcode = iota
	OpSTO
	OpSTZ
	OpINP
	OpOUT
	OpINC
	OpDEC
	OpADD
	OpSUB

	OpWHILE
	OpIF

	OpENDWHILE
	OpENDIF

	OpALIAS
	OpPRT
)

var opcodeStrings = map[Opcode]string{
	OpSET:      "SET",
	OpSTO:      "STO",
	OpSTZ:      "STZ",
	OpINP:      "INP",
	OpOUT:      "OUT",
	OpINC:      "INC",
	OpDEC:      "DEC",
	OpADD:      "ADD",
	OpSUB:      "SUB",
	OpWHILE:    "WHILE",
	OpIF:       "IF",
	OpENDWHILE: "ENDWHILE",
	OpENDIF:    "ENDIF",
	OpALIAS:    "ALIAS",
	OpPRT:      "PRT",
}

func (op Opcode) String() string { return opcodeStrings[op] }

type opcodeClass int

const (
	classInstruction opcodeClass = iota
	classBlockStart
	classBlockEnd
	classSpecial
)

// Operand signatures use one letter per operand:
// 'R' register, 'V' value, 'T' text.
type opcodeEntry struct {
	class opcodeClass
	sigs  []string
}

var opcodeNames = map[string]Opcode{
	"SET": OpSET,
	"STO": OpSTO,
	"STZ": OpSTZ,
	"INP": OpINP,
	"OUT": OpOUT,
	"INC": OpINC,
	"DEC": OpDEC,
	"ADD": OpADD,
	"SUB": OpSUB,

	"WHILE": OpWHILE,
	"IF":    OpIF,

	"ENDWHILE": OpENDWHILE,
	"ENDIF":    OpENDIF,

	"ALIAS": OpALIAS,
	"PRT":   OpPRT,
}

var opcodeTable = map[Opcode]opcodeEntry{
	OpSET: {classInstruction, []string{"RV", "RR"}},
	OpSTO: {classInstruction, []string{"RR"}},
	OpSTZ: {classInstruction, []string{"R"}},
	OpINP: {classInstruction, []string{"R"}},
	OpOUT: {classInstruction, []string{"R"}},
	OpINC: {classInstruction, []string{"R", "RV", "RR"}},
	OpDEC: {classInstruction, []string{"R", "RV", "RR"}},
	OpADD: {classInstruction, []string{"RRV", "RRR"}},
	OpSUB: {classInstruction, []string{"RRV", "RRR"}},

	OpWHILE: {classBlockStart, nil},
	OpIF:    {classBlockStart, nil},

	OpENDWHILE: {classBlockEnd, []string{""}},
	OpENDIF:    {classBlockEnd, []string{""}},

	OpALIAS: {classSpecial, []string{"TV", "TR"}},
	OpPRT:   {classSpecial, []string{"T"}},
}

// Condition identifies a predicate attached to a WHILE or IF header.
type Condition int

const (
	CondNZR Condition = iota // operand is nonzero
	CondNEQ                  // operands differ
)

func (c Condition) String() string {
	if c == CondNZR {
		return "NZR"
	}
	return "NEQ"
}

var conditionNames = map[string]Condition{
	"NZR": CondNZR,
	"NEQ": CondNEQ,
}

var conditionSigs = map[Condition][]string{
	CondNZR: {"R", "V"},
	CondNEQ: {"RV", "RR", "VV"},
}
