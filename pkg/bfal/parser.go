package bfal

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse consumes the full source text and produces the instruction/block
// tree. Aliases are resolved here, in source order, so later stages only
// ever see registers, values and text.
func Parse(src string) ([]Node, error) {
	p := &parser{aliases: Aliases{}}

	var (
		top   []Node
		stack []*Block
	)
	appendNode := func(n Node) {
		if len(stack) > 0 {
			b := stack[len(stack)-1]
			b.Body = append(b.Body, n)
		} else {
			top = append(top, n)
		}
	}

	for i, raw := range strings.Split(src, "\n") {
		lineNo := i + 1
		parts, err := splitParts(raw, lineNo)
		if err != nil {
			return nil, err
		}
		if len(parts) == 0 {
			continue
		}

		op, ok := opcodeNames[parts[0]]
		if !ok {
			return nil, parseErrf(lineNo, "unknown opcode %s", parts[0])
		}

		switch opcodeTable[op].class {
		case classBlockStart:
			cond, err := p.parseCondition(op, parts[1:], lineNo)
			if err != nil {
				return nil, err
			}
			b := &Block{Kind: op, Cond: cond, Line: lineNo}
			appendNode(b)
			stack = append(stack, b)

		case classBlockEnd:
			if len(parts) != 1 {
				return nil, parseErrf(lineNo, "%s takes no operands", op)
			}
			if len(stack) == 0 {
				return nil, parseErrf(lineNo, "unmatched %s", op)
			}
			open := stack[len(stack)-1]
			want := OpENDWHILE
			if open.Kind == OpIF {
				want = OpENDIF
			}
			if op != want {
				return nil, parseErrf(lineNo, "%s closes %s block opened on line %d", op, open.Kind, open.Line)
			}
			stack = stack[:len(stack)-1]

		case classSpecial:
			if op == OpALIAS {
				if err := p.defineAlias(parts[1:], lineNo); err != nil {
					return nil, err
				}
				continue
			}
			inst, err := p.parseInstruction(op, parts[1:], lineNo)
			if err != nil {
				return nil, err
			}
			appendNode(inst)

		default:
			inst, err := p.parseInstruction(op, parts[1:], lineNo)
			if err != nil {
				return nil, err
			}
			appendNode(inst)
		}
	}

	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return nil, parseErrf(open.Line, "unclosed %s block", open.Kind)
	}
	return top, nil
}

type parser struct {
	aliases Aliases
}

func (p *parser) parseInstruction(op Opcode, parts []string, lineNo int) (*Instruction, error) {
	args, toks, sig, err := p.operands(op, parts, lineNo)
	if err != nil {
		return nil, err
	}

	sigs := opcodeTable[op].sigs
	if !containsSig(sigs, sig) {
		return nil, matchFailure(op.String(), sigs, sig, toks, lineNo)
	}

	inst := &Instruction{Op: op, Sig: sig, Args: args, Line: lineNo}
	if err := checkOperandReuse(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// checkOperandReuse rejects a destination register repeated as the driving
// source operand. The destination may alias the first source of ADD/SUB,
// never the second, and never the source of the register INC/DEC forms.
func checkOperandReuse(inst *Instruction) error {
	switch {
	case (inst.Op == OpINC || inst.Op == OpDEC) && inst.Sig == "RR":
		if inst.Args[0].Reg == inst.Args[1].Reg {
			return parseErrf(inst.Line, "%s: destination %s may not repeat the source register", inst.Op, inst.Args[0].Reg)
		}
	case (inst.Op == OpADD || inst.Op == OpSUB) && inst.Sig == "RRR":
		if inst.Args[0].Reg == inst.Args[2].Reg {
			return parseErrf(inst.Line, "%s: destination %s may not repeat the second source register", inst.Op, inst.Args[0].Reg)
		}
	}
	return nil
}

func (p *parser) parseCondition(op Opcode, parts []string, lineNo int) (Cond, error) {
	if len(parts) == 0 {
		return Cond{}, parseErrf(lineNo, "%s requires a condition", op)
	}
	kind, ok := conditionNames[parts[0]]
	if !ok {
		return Cond{}, parseErrf(lineNo, "unknown condition %s", parts[0])
	}

	args, toks, sig, err := p.operands(op, parts[1:], lineNo)
	if err != nil {
		return Cond{}, err
	}

	sigs := conditionSigs[kind]
	if !containsSig(sigs, sig) {
		return Cond{}, matchFailure(kind.String(), sigs, sig, toks, lineNo)
	}
	return Cond{Kind: kind, Sig: sig, Args: args}, nil
}

func (p *parser) defineAlias(parts []string, lineNo int) error {
	_, toks, sig, err := p.operands(OpALIAS, parts, lineNo)
	if err != nil {
		return err
	}

	sigs := opcodeTable[OpALIAS].sigs
	if !containsSig(sigs, sig) {
		return matchFailure("ALIAS", sigs, sig, toks, lineNo)
	}
	if !isIdentifier(toks[0]) {
		return parseErrf(lineNo, "ALIAS name %q is not a valid identifier", toks[0])
	}
	p.aliases.Define(toks[0], toks[1])
	return nil
}

// operands classifies each token, applying alias substitution for every
// opcode except ALIAS itself (or the table could never be overwritten).
// It returns the parsed operands, the resolved token texts and the
// signature string formed from the operand kinds.
func (p *parser) operands(op Opcode, parts []string, lineNo int) ([]Operand, []string, string, error) {
	var (
		args []Operand
		toks []string
		sig  []byte
	)
	for _, tok := range parts {
		arg, resolved, err := p.classify(op, tok, lineNo)
		if err != nil {
			return nil, nil, "", err
		}
		args = append(args, arg)
		toks = append(toks, resolved)
		sig = append(sig, byte(arg.Kind))
	}
	return args, toks, string(sig), nil
}

func (p *parser) classify(op Opcode, tok string, lineNo int) (Operand, string, error) {
	if strings.HasPrefix(tok, `"`) {
		text, err := unquoteText(tok, lineNo)
		if err != nil {
			return Operand{}, tok, err
		}
		return Operand{Kind: KindText, Text: text}, tok, nil
	}

	if op != OpALIAS {
		tok = p.aliases.Resolve(tok)
	}

	if r, ok := parseRegister(tok); ok {
		return Operand{Kind: KindRegister, Reg: r}, tok, nil
	}
	if len(tok) > 0 && tok[0] >= '0' && tok[0] <= '9' {
		v, err := ParseLiteral(tok)
		if err != nil {
			err.(*LiteralError).Line = lineNo
			return Operand{}, tok, err
		}
		return Operand{Kind: KindValue, Val: v}, tok, nil
	}
	return Operand{Kind: KindText, Text: tok}, tok, nil
}

// matchFailure turns a signature mismatch into the most specific error the
// operand list allows: wrong arity, an unresolved alias name where a
// register or value belongs, or a plain kind mismatch.
func matchFailure(name string, sigs []string, real string, toks []string, lineNo int) error {
	var lengths []int
	for _, s := range sigs {
		if !containsInt(lengths, len(s)) {
			lengths = append(lengths, len(s))
		}
	}
	if !containsInt(lengths, len(real)) {
		if len(lengths) == 1 {
			return parseErrf(lineNo, "%s expects %d operands, got %d", name, lengths[0], len(real))
		}
		return parseErrf(lineNo, "%s expects %s operands, got %d", name, joinInts(lengths), len(real))
	}

	var candidates []string
	for _, s := range sigs {
		if len(s) == len(real) {
			candidates = append(candidates, s)
		}
	}

	for pos := 0; pos < len(real); pos++ {
		possible := map[byte]bool{}
		for _, s := range candidates {
			possible[s[pos]] = true
		}
		if possible[real[pos]] {
			continue
		}

		tok := toks[pos]
		if (possible['R'] || possible['V']) && isIdentifier(tok) {
			return &AliasError{Name: tok, Line: lineNo}
		}
		switch {
		case len(possible) == 1 && possible['R']:
			return parseErrf(lineNo, "operand %d of %s: %q is not a register", pos+1, name, tok)
		case len(possible) == 1 && possible['V']:
			return parseErrf(lineNo, "operand %d of %s: %q is not a recognised value", pos+1, name, tok)
		case len(possible) == 1 && possible['T']:
			return parseErrf(lineNo, "operand %d of %s: %q must be text", pos+1, name, tok)
		default:
			return parseErrf(lineNo, "operand %d of %s: %q has the wrong kind", pos+1, name, tok)
		}
	}
	return parseErrf(lineNo, "operands of %s do not match any form", name)
}

// splitParts splits one source line into tokens. Splitting occurs at
// whitespace, except that quoted segments stay one token (quotes included).
// A // comment runs to end of line unless it sits inside quotes.
func splitParts(line string, lineNo int) ([]string, error) {
	inQuote := false
	for i := 0; i+1 < len(line); i++ {
		c := line[i]
		if inQuote && c == '\\' {
			i++
			continue
		}
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if !inQuote && c == '/' && line[i+1] == '/' {
			line = line[:i]
			break
		}
	}

	var parts []string
	for i := 0; i < len(line); {
		c := line[i]
		if c == ' ' || c == '\t' || c == '\r' {
			i++
			continue
		}
		if c == '"' {
			j := i + 1
			for j < len(line) && line[j] != '"' {
				if line[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(line) {
				return nil, parseErrf(lineNo, "unterminated quoted text")
			}
			parts = append(parts, line[i:j+1])
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' && line[j] != '\r' && line[j] != '"' {
			j++
		}
		parts = append(parts, strings.ToUpper(line[i:j]))
		i = j
	}
	return parts, nil
}

// unquoteText strips the surrounding quotes and decodes the escape
// sequences \" \\ \n \t \r \0.
func unquoteText(tok string, lineNo int) (string, error) {
	body := tok[1 : len(tok)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", parseErrf(lineNo, "dangling escape in quoted text")
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			return "", parseErrf(lineNo, `unknown escape \%c in quoted text`, body[i])
		}
	}
	return b.String(), nil
}

func parseRegister(tok string) (Register, bool) {
	if len(tok) == 2 && tok[0] == 'R' && tok[1] >= '0' && tok[1] <= '7' {
		return Register(tok[1] - '0'), true
	}
	return 0, false
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

func containsSig(sigs []string, sig string) bool {
	for _, s := range sigs {
		if s == sig {
			return true
		}
	}
	return false
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, v := range xs {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " or ")
}
