package asm

import (
	"fmt"
	"strings"

	"github.com/elsinore/hasm/internal/word"
)

// firstPass streams the macro-expanded lines, classifying each non-empty line as a directive or
// an instruction, advancing IC and DC, and emitting words -- opcode words and operand
// placeholders for instructions, raw values for .data/.string -- into the code and data arenas.
// A per-line failure is recorded and parsing continues; the pass itself fails at the end if any
// line failed.
func (a *Assembler) firstPass() error {
	for i, raw := range a.lines {
		lineNo := i + 1

		if isCommentLine(raw) {
			continue
		}

		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}

		line, err := parseLine(text)
		if err != nil {
			a.fail(lineNo, err)
			continue
		}

		if line.IsDirective() {
			if err := a.firstPassDirective(line); err != nil {
				a.fail(lineNo, err)
			}

			continue
		}

		if err := a.firstPassInstruction(line); err != nil {
			a.fail(lineNo, err)
		}
	}

	return a.err()
}

func (a *Assembler) firstPassDirective(line ParsedLine) error {
	switch line.Mnemonic {
	case "data", "string":
		if line.Label != "" {
			if err := a.symbols.Define(line.Label, a.dc, Data); err != nil {
				return err
			}
		}
	default:
		if line.Label != "" {
			return &SyntaxError{Message: "labels only allowed for .data or .string"}
		}
	}

	switch line.Mnemonic {
	case "data":
		return a.firstPassData(line.Operands)
	case "string":
		return a.firstPassString(line.Operands)
	case "extern":
		return a.firstPassExtern(line.Operands)
	case "entry":
		return nil // Deferred to the second pass.
	default:
		return &SyntaxError{Message: "unknown directive: ." + line.Mnemonic}
	}
}

func (a *Assembler) firstPassData(operands []string) error {
	if len(operands) == 0 {
		return &SyntaxError{Message: ".data requires at least one value"}
	}

	for _, tok := range operands {
		value, err := parseData(tok)
		if err != nil {
			return err
		}

		a.data = append(a.data, word.Word(uint16(value))&word.Mask)
		a.dc++
	}

	return nil
}

func (a *Assembler) firstPassString(operands []string) error {
	if len(operands) != 1 {
		return &SyntaxError{Message: ".string requires exactly one operand"}
	}

	lit := operands[0]
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return &SyntaxError{Message: "malformed string literal: " + lit}
	}

	payload := lit[1 : len(lit)-1]

	for _, b := range []byte(payload) {
		a.data = append(a.data, word.Word(b))
		a.dc++
	}

	a.data = append(a.data, word.Word(0))
	a.dc++

	return nil
}

func (a *Assembler) firstPassExtern(operands []string) error {
	if len(operands) != 1 {
		return &SyntaxError{Message: ".extern requires exactly one label"}
	}

	name := operands[0]
	if !validLabel(name) {
		return &SyntaxError{Message: "invalid label: " + name}
	}

	return a.symbols.DefineExtern(name)
}

// firstPassInstruction validates and emits one instruction line: the opcode word, then zero, one,
// or two operand words depending on arity and addressing-mode classification.
func (a *Assembler) firstPassInstruction(line ParsedLine) error {
	op, ok := lookupOpcode(line.Mnemonic)
	if !ok {
		return &SyntaxError{Message: "unknown opcode: " + line.Mnemonic}
	}

	if line.Label != "" {
		if err := a.symbols.Define(line.Label, a.ic, Code); err != nil {
			return err
		}
	}

	if len(line.Operands) != op.Operands {
		return &SyntaxError{
			Message: fmt.Sprintf("%s: expected %d operand(s), got %d", op.Name, op.Operands, len(line.Operands)),
		}
	}

	var srcMode, dstMode word.Mode

	var srcReg, dstReg word.Register

	var srcTok, dstTok string

	switch op.Operands {
	case 2:
		srcTok, dstTok = line.Operands[0], line.Operands[1]

		var ok bool

		srcMode, srcReg, ok = classifyOperand(srcTok)
		if !ok {
			return &RegisterError{Operand: srcTok}
		}

		dstMode, dstReg, ok = classifyOperand(dstTok)
		if !ok {
			return &RegisterError{Operand: dstTok}
		}

		if srcMode&op.AllowedSrc == 0 {
			return &AddressingError{Opcode: op.Name, Operand: srcTok}
		}

		if dstMode&op.AllowedDst == 0 {
			return &AddressingError{Opcode: op.Name, Operand: dstTok}
		}
	case 1:
		dstTok = line.Operands[0]

		var ok bool

		dstMode, dstReg, ok = classifyOperand(dstTok)
		if !ok {
			return &RegisterError{Operand: dstTok}
		}

		if dstMode&op.AllowedDst == 0 {
			return &AddressingError{Opcode: op.Name, Operand: dstTok}
		}
	}

	a.code = append(a.code, word.NewInstruction(op.Code, srcMode, dstMode).Encode())
	a.ic++

	switch op.Operands {
	case 2:
		bothRegisters := (srcMode == word.DirectReg || srcMode == word.IndirectReg) &&
			(dstMode == word.DirectReg || dstMode == word.IndirectReg)

		if bothRegisters {
			a.code = append(a.code, word.SharedRegisterOperand(srcReg, dstReg))
			a.ic++

			return nil
		}

		if err := a.emitOperand(srcMode, srcReg, srcTok, true); err != nil {
			return err
		}

		return a.emitOperand(dstMode, dstReg, dstTok, false)
	case 1:
		return a.emitOperand(dstMode, dstReg, dstTok, false)
	default:
		return nil
	}
}

// emitOperand appends one operand word, encoding immediates and registers fully and leaving a
// zero placeholder for Direct (symbol) references to be patched in the second pass. isSource
// distinguishes the two operand positions of a two-operand instruction when it is not emitted
// through the shared-register-word path: a register operand's bit position depends on whether it
// is the source or destination operand of the statement, not on the mode alone.
func (a *Assembler) emitOperand(mode word.Mode, reg word.Register, tok string, isSource bool) error {
	switch mode {
	case word.Immediate:
		value, err := parseImmediate(tok[1:])
		if err != nil {
			return err
		}

		a.code = append(a.code, word.ImmediateOperand(value))
	case word.DirectReg, word.IndirectReg:
		a.code = append(a.code, word.RegisterOperand(reg, isSource))
	case word.Direct:
		a.code = append(a.code, word.Word(0))
	}

	a.ic++

	return nil
}
