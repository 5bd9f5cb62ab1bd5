package asm

import (
	"errors"
	"fmt"
)

// Sentinel errors that wrapped error types carry as their cause, for use with errors.Is.
var (
	// ErrSyntax causes a SyntaxError when a line cannot be parsed.
	ErrSyntax = errors.New("syntax error")

	// ErrAddressing causes an AddressingError when an operand's mode is not accepted by an
	// opcode.
	ErrAddressing = errors.New("unsupported addressing method")

	// ErrSymbol causes a SymbolError when a referenced label is not defined.
	ErrSymbol = errors.New("label not found")

	// ErrCapacity causes a CapacityError when the assembled program does not fit in memory.
	ErrCapacity = errors.New("code and data exceed memory limit")
)

// SyntaxError is returned when a source line fails to parse: a malformed label, a missing
// operand, an unknown mnemonic, or a badly formed operand list.
type SyntaxError struct {
	File    string
	Line    int
	Text    string
	Message string
}

func (se *SyntaxError) Error() string {
	if se.File == "" {
		return fmt.Sprintf("syntax error: %s", se.Message)
	}

	return fmt.Sprintf("%s:%d: %s", se.File, se.Line, se.Message)
}

func (se *SyntaxError) Unwrap() error { return ErrSyntax }

// AddressingError is returned when an operand's classified mode is not a member of the opcode's
// allowed set for that position.
type AddressingError struct {
	Opcode  string
	Operand string
}

func (ae *AddressingError) Error() string {
	return fmt.Sprintf("%s: unsupported addressing method: %s", ae.Opcode, ae.Operand)
}

func (ae *AddressingError) Unwrap() error { return ErrAddressing }

// RegisterError is returned when an operand cannot be classified into any addressing mode: an
// indirect operand other than *r0..*r7, or a token that is neither an immediate, a register, nor a
// valid label. A token such as r8 is a valid label and is classified as a direct reference.
type RegisterError struct {
	Operand string
}

func (re *RegisterError) Error() string {
	return fmt.Sprintf("invalid register: %q", re.Operand)
}

// SymbolError is returned when a label referenced by an operand cannot be found. Errors from
// .entry (an unknown, extern, or already-entry label) are reported by SymbolTable.MarkEntry as
// plain errors, not as SymbolError.
type SymbolError struct {
	Symbol  string
	Message string
}

func (se *SymbolError) Error() string {
	if se.Message != "" {
		return fmt.Sprintf("%q: %s", se.Symbol, se.Message)
	}

	return fmt.Sprintf("label not found: %q", se.Symbol)
}

func (se *SymbolError) Unwrap() error { return ErrSymbol }

// LiteralRangeError is returned when an immediate or .data value falls outside the width its
// field supports.
type LiteralRangeError struct {
	Value     int
	Low, High int
}

func (le *LiteralRangeError) Error() string {
	return fmt.Sprintf("value %d out of range [%d, %d]", le.Value, le.Low, le.High)
}

// CapacityError is returned when IC+DC+LOADING_BASE exceeds the machine's memory size.
type CapacityError struct {
	IC, DC, Base, Max int
}

func (ce *CapacityError) Error() string {
	return fmt.Sprintf("code and data exceed memory limit: ic=%d dc=%d base=%d max=%d",
		ce.IC, ce.DC, ce.Base, ce.Max)
}

func (ce *CapacityError) Unwrap() error { return ErrCapacity }
