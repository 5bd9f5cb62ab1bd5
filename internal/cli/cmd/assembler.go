package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elsinore/hasm/internal/asm"
	"github.com/elsinore/hasm/internal/cli"
	"github.com/elsinore/hasm/internal/log"
	"github.com/elsinore/hasm/internal/objfmt"
	"github.com/elsinore/hasm/internal/pre"
)

func Assembler() cli.Command {
	return new(assembler)
}

type assembler struct {
	debug bool
}

func (assembler) Description() string {
	return "assemble source files into object code"
}

func (assembler) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `asm file...

Assembles one or more HASM source files. Each argument names a source file
with extension ".as"; successful assembly writes a ".ob" object file plus
".ent" and ".ext" side files when entry or extern symbols are present.`)

	return err
}

func (a *assembler) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	fs.BoolVar(&a.debug, "debug", false, "enable debug logging")

	return fs
}

func (a *assembler) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	if a.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) == 0 {
		fmt.Fprintln(out, "asm: no input files")
		return 1
	}

	failed := false

	for _, arg := range args {
		if err := a.assembleFile(arg, logger); err != nil {
			logger.Error("assembly failed", "file", arg, "err", err)

			failed = true
		}
	}

	if failed {
		return 1
	}

	return 0
}

// assembleFile runs the full pipeline -- preassemble, first pass, capacity check, second pass,
// emit -- for one source file.
func (a *assembler) assembleFile(arg string, logger *log.Logger) error {
	base := strings.TrimSuffix(arg, ".as")
	srcPath := base + ".as"

	source, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	rawLines := strings.Split(string(source), "\n")

	lines, err := pre.Expand(rawLines, isReservedName)
	if err != nil {
		return err
	}

	logger.Debug("preassembled", "file", srcPath, "lines", len(lines))

	assembler := asm.NewAssembler(base, lines, logger)

	result, err := assembler.Assemble()
	if err != nil {
		return err
	}

	if err := a.writeObjectFiles(base, result); err != nil {
		return err
	}

	logger.Info("assembled", "file", srcPath, "state", assembler.State())

	return nil
}

func (a *assembler) writeObjectFiles(base string, result asm.Result) error {
	obFile, err := os.Create(base + ".ob")
	if err != nil {
		return err
	}

	defer obFile.Close()

	if err := objfmt.WriteObject(obFile, result.CodeSectionSize, len(result.Data), result.Code, result.Data); err != nil {
		return err
	}

	if entries := result.Symbols.Entries(); len(entries) > 0 {
		entFile, err := os.Create(base + ".ent")
		if err != nil {
			return err
		}

		defer entFile.Close()

		if err := objfmt.WriteEntries(entFile, entries, result.CodeSectionSize); err != nil {
			return err
		}
	}

	if refs := result.Externs.Refs(); len(refs) > 0 {
		extFile, err := os.Create(base + ".ext")
		if err != nil {
			return err
		}

		defer extFile.Close()

		if err := objfmt.WriteExterns(extFile, refs); err != nil {
			return err
		}
	}

	return nil
}

// isReservedName reports whether a candidate macro name collides with a reserved word (an opcode
// mnemonic, a register name, a directive stem, or a macro keyword), which the preassembler also
// forbids as macro names.
func isReservedName(name string) bool {
	return asm.IsReservedWord(name)
}
