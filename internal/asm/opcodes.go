package asm

import (
	"strconv"
	"strings"

	"github.com/elsinore/hasm/internal/word"
)

// Opcode describes one mnemonic's machine code and its addressing-mode capability: the set of
// modes it accepts for its source and destination operands, and its operand arity.
type Opcode struct {
	Name       string
	Code       uint8
	AllowedSrc word.Mode
	AllowedDst word.Mode
	Operands   int
}

// anyMode is the union of every addressing mode, used for opcodes that accept all of them.
const anyMode = word.Immediate | word.Direct | word.IndirectReg | word.DirectReg

// registerOrSymbol is the union of modes that name an addressable location rather than a literal:
// direct, indirect-register, and direct-register.
const registerOrSymbol = word.Direct | word.IndirectReg | word.DirectReg

// directOrJump is the destination set accepted by jmp, bne and jsr: a label or a register holding
// one.
const directOrJump = word.Direct | word.IndirectReg

// opcodeTable is the static catalog of the sixteen opcodes this machine supports, keyed by
// mnemonic. It mirrors the bit layout documented in internal/word.
var opcodeTable = map[string]Opcode{
	"mov":  {Name: "mov", Code: 0, AllowedSrc: anyMode, AllowedDst: registerOrSymbol, Operands: 2},
	"cmp":  {Name: "cmp", Code: 1, AllowedSrc: anyMode, AllowedDst: anyMode, Operands: 2},
	"add":  {Name: "add", Code: 2, AllowedSrc: anyMode, AllowedDst: registerOrSymbol, Operands: 2},
	"sub":  {Name: "sub", Code: 3, AllowedSrc: anyMode, AllowedDst: registerOrSymbol, Operands: 2},
	"lea":  {Name: "lea", Code: 4, AllowedSrc: word.Direct, AllowedDst: registerOrSymbol, Operands: 2},
	"clr":  {Name: "clr", Code: 5, AllowedSrc: word.NoOperand, AllowedDst: registerOrSymbol, Operands: 1},
	"not":  {Name: "not", Code: 6, AllowedSrc: word.NoOperand, AllowedDst: registerOrSymbol, Operands: 1},
	"inc":  {Name: "inc", Code: 7, AllowedSrc: word.NoOperand, AllowedDst: registerOrSymbol, Operands: 1},
	"dec":  {Name: "dec", Code: 8, AllowedSrc: word.NoOperand, AllowedDst: registerOrSymbol, Operands: 1},
	"jmp":  {Name: "jmp", Code: 9, AllowedSrc: word.NoOperand, AllowedDst: directOrJump, Operands: 1},
	"bne":  {Name: "bne", Code: 10, AllowedSrc: word.NoOperand, AllowedDst: directOrJump, Operands: 1},
	"red":  {Name: "red", Code: 11, AllowedSrc: word.NoOperand, AllowedDst: registerOrSymbol, Operands: 1},
	"prn":  {Name: "prn", Code: 12, AllowedSrc: word.NoOperand, AllowedDst: anyMode, Operands: 1},
	"jsr":  {Name: "jsr", Code: 13, AllowedSrc: word.NoOperand, AllowedDst: directOrJump, Operands: 1},
	"rts":  {Name: "rts", Code: 14, AllowedSrc: word.NoOperand, AllowedDst: word.NoOperand, Operands: 0},
	"stop": {Name: "stop", Code: 15, AllowedSrc: word.NoOperand, AllowedDst: word.NoOperand, Operands: 0},
}

// lookupOpcode returns the Opcode entry for name, if it names one of the sixteen mnemonics.
func lookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeTable[name]
	return op, ok
}

// isOpcodeName reports whether name is one of the sixteen reserved opcode mnemonics.
func isOpcodeName(name string) bool {
	_, ok := opcodeTable[name]
	return ok
}

// classifyOperand maps an operand token to its addressing mode, along with the parsed register
// number when the mode is register-class. It never validates the operand against an opcode's
// capability mask; that happens once both operands of a statement are classified.
func classifyOperand(tok string) (word.Mode, word.Register, bool) {
	switch {
	case strings.HasPrefix(tok, "#"):
		return word.Immediate, 0, true
	case strings.HasPrefix(tok, "*"):
		reg, ok := parseRegister(tok[1:])
		if !ok {
			return 0, word.BadRegister, false
		}

		return word.IndirectReg, reg, true
	default:
		if reg, ok := parseRegister(tok); ok {
			return word.DirectReg, reg, true
		}

		if validLabel(tok) {
			return word.Direct, 0, true
		}

		return 0, word.BadRegister, false
	}
}

// parseRegister recognizes the exact token r0..r7 and returns its register number.
func parseRegister(tok string) (word.Register, bool) {
	if len(tok) != 2 || tok[0] != 'r' {
		return 0, false
	}

	n := tok[1]
	if n < '0' || n > '7' {
		return 0, false
	}

	return word.Register(n - '0'), true
}

// parseImmediate parses the numeric suffix of an immediate operand (without the leading '#') and
// enforces the instruction-operand range of -2048..2047.
func parseImmediate(tok string) (int16, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &SyntaxError{Message: "invalid immediate value: " + tok}
	}

	if n < -2048 || n > 2047 {
		return 0, &LiteralRangeError{Value: n, Low: -2048, High: 2047}
	}

	return int16(n), nil
}

// parseData parses one .data parameter, enforcing the wider data range of -16384..16383.
func parseData(tok string) (int16, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &SyntaxError{Message: "invalid data value: " + tok}
	}

	if n < -16384 || n > 16383 {
		return 0, &LiteralRangeError{Value: n, Low: -16384, High: 16383}
	}

	return int16(n), nil
}
