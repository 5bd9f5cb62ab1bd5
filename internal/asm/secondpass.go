package asm

import (
	"fmt"
	"strings"

	"github.com/elsinore/hasm/internal/word"
)

// secondPass records the first pass's final IC as codeSectionSize, resets IC to zero, keeps DC,
// and re-walks the same
// macro-expanded lines to resolve symbol operand words and to mark .entry symbols. IC after the
// second pass must equal codeSectionSize; a mismatch indicates an assembler bug, not a user error,
// and is reported as such.
func (a *Assembler) secondPass() error {
	a.codeSectionSize = a.ic
	a.ic = 0

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
			// Already reported in the first pass.
			continue
		}

		if line.IsDirective() {
			if line.Mnemonic == "entry" {
				if err := a.secondPassEntry(line.Operands); err != nil {
					a.fail(lineNo, err)
				}
			}

			continue
		}

		if err := a.secondPassInstruction(line); err != nil {
			a.fail(lineNo, err)
		}
	}

	if err := a.err(); err != nil {
		return err
	}

	if a.ic != a.codeSectionSize {
		return fmt.Errorf("internal error: ic=%d after second pass, want %d", a.ic, a.codeSectionSize)
	}

	return nil
}

func (a *Assembler) secondPassEntry(operands []string) error {
	if len(operands) != 1 {
		return &SyntaxError{Message: ".entry requires exactly one label"}
	}

	return a.symbols.MarkEntry(operands[0])
}

func (a *Assembler) secondPassInstruction(line ParsedLine) error {
	op, ok := lookupOpcode(line.Mnemonic)
	if !ok {
		// Already reported in the first pass.
		a.ic++
		return nil
	}

	a.ic++ // Step past the opcode word.

	switch op.Operands {
	case 2:
		srcTok, dstTok := line.Operands[0], line.Operands[1]

		srcMode, _, _ := classifyOperand(srcTok)
		dstMode, _, _ := classifyOperand(dstTok)

		bothRegisters := (srcMode == word.DirectReg || srcMode == word.IndirectReg) &&
			(dstMode == word.DirectReg || dstMode == word.IndirectReg)

		if bothRegisters {
			a.ic++ // Step past the shared operand word; nothing to resolve.
			return nil
		}

		if err := a.resolveOperand(srcMode, srcTok); err != nil {
			return err
		}

		return a.resolveOperand(dstMode, dstTok)
	case 1:
		dstTok := line.Operands[0]
		dstMode, _, _ := classifyOperand(dstTok)

		return a.resolveOperand(dstMode, dstTok)
	default:
		return nil
	}
}

// resolveOperand patches the word at code[ic] when the operand is a Direct (symbol) reference,
// and unconditionally steps IC past it.
func (a *Assembler) resolveOperand(mode word.Mode, tok string) error {
	defer func() { a.ic++ }()

	if mode != word.Direct {
		return nil
	}

	sym, ok := a.symbols.Lookup(tok)
	if !ok {
		return &SymbolError{Symbol: tok}
	}

	if sym.Kind == Extern {
		a.code[a.ic] = word.ExternOperand()
		a.externs.Add(sym.Name, a.ic+LoadingBase)

		return nil
	}

	address := sym.Address + LoadingBase
	if sym.Origin == Data {
		address += a.codeSectionSize
	}

	a.code[a.ic] = word.RelativeOperand(address)

	return nil
}
