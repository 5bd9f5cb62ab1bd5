package asm

import (
	"errors"
	"fmt"

	"github.com/elsinore/hasm/internal/log"
	"github.com/elsinore/hasm/internal/word"
)

// LoadingBase is the fixed word address at which the code section is loaded.
const LoadingBase = 100

// MaxMemorySize is the total addressable memory of the target machine, in words.
const MaxMemorySize = 4096

// State names the stage an Assembler has reached in assembling one file. Any failure transitions
// to Failed and short-circuits emission.
type State uint8

// Assembly states, in the order a successful assembly passes through them.
const (
	Start State = iota
	PreassembleOK
	Pass1OK
	CapacityOK
	Pass2OK
	Emitted
	Failed
)

func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case PreassembleOK:
		return "PreassembleOK"
	case Pass1OK:
		return "Pass1OK"
	case CapacityOK:
		return "CapacityOK"
	case Pass2OK:
		return "Pass2OK"
	case Emitted:
		return "Emitted"
	case Failed:
		return "Failed"
	default:
		return "?"
	}
}

// Result holds everything produced by assembling one file: the code and data words, the symbol
// and extern tables, and the sizes needed to write the object, entry and extern files.
type Result struct {
	Code            []word.Word
	Data            []word.Word
	Symbols         *SymbolTable
	Externs         *ExternTable
	CodeSectionSize int
}

// Assembler assembles one macro-expanded source file. All of its state -- the symbol table, the
// extern table, the code and data arenas, and the IC/DC counters -- is scoped to a single file and
// is not reused across assemblies.
type Assembler struct {
	Filename string

	state State
	log   *log.Logger

	lines []string // Macro-expanded source, one entry per logical line.

	code []word.Word
	data []word.Word

	ic int // Instruction counter: next free index in code.
	dc int // Data counter: next free index in data.

	codeSectionSize int

	symbols *SymbolTable
	externs *ExternTable

	errs []error
}

// NewAssembler creates an Assembler for the named file's macro-expanded lines.
func NewAssembler(filename string, lines []string, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	return &Assembler{
		Filename: filename,
		state:    PreassembleOK,
		log:      logger,
		lines:    lines,
		symbols:  NewSymbolTable(),
		externs:  &ExternTable{},
	}
}

// State returns the assembler's current position in the state machine.
func (a *Assembler) State() State {
	return a.state
}

// Assemble runs the first pass, the capacity check, and the second pass in sequence, stopping at
// the first failure. On success it returns a Result ready for the emitters in package objfmt.
func (a *Assembler) Assemble() (Result, error) {
	if err := a.firstPass(); err != nil {
		a.state = Failed
		return Result{}, err
	}

	a.state = Pass1OK

	if err := a.checkCapacity(); err != nil {
		a.state = Failed
		return Result{}, err
	}

	a.state = CapacityOK

	if err := a.secondPass(); err != nil {
		a.state = Failed
		return Result{}, err
	}

	a.state = Pass2OK

	result := Result{
		Code:            a.code,
		Data:            a.data,
		Symbols:         a.symbols,
		Externs:         a.externs,
		CodeSectionSize: a.codeSectionSize,
	}

	a.state = Emitted

	return result, nil
}

// checkCapacity enforces IC + DC + LoadingBase <= MaxMemorySize after the first pass.
func (a *Assembler) checkCapacity() error {
	if a.ic+a.dc+LoadingBase > MaxMemorySize {
		return &CapacityError{IC: a.ic, DC: a.dc, Base: LoadingBase, Max: MaxMemorySize}
	}

	return nil
}

// fail records a per-line error and lets the caller continue to the next line. A *SyntaxError is
// annotated with the assembler's filename and line number in place; any other error is wrapped so
// the position is still visible in the final diagnostic.
func (a *Assembler) fail(lineNo int, err error) {
	if se, ok := err.(*SyntaxError); ok {
		se.File = a.Filename
		se.Line = lineNo
		a.errs = append(a.errs, se)
	} else {
		a.errs = append(a.errs, fmt.Errorf("%s:%d: %w", a.Filename, lineNo, err))
	}

	a.log.Debug("line error", "file", a.Filename, "line", lineNo, "err", err)
}

// err joins the accumulated per-line errors into a single error, or returns nil if there were
// none.
func (a *Assembler) err() error {
	if len(a.errs) == 0 {
		return nil
	}

	return errors.Join(a.errs...)
}
