// Package objfmt writes the three text side-files produced by a successful assembly: the object
// file (.ob), the entry file (.ent), and the extern file (.ext).
package objfmt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/elsinore/hasm/internal/asm"
	"github.com/elsinore/hasm/internal/word"
)

// WriteObject writes the object file: a header line giving the code and data section sizes in
// decimal, followed by one line per word giving its loaded address (4 decimal digits, zero
// padded) and its value (5 octal digits, zero padded). Code words are addressed starting at
// LoadingBase; data words immediately follow the code section.
func WriteObject(out io.Writer, codeSectionSize, dataSize int, code, data []word.Word) error {
	w := bufio.NewWriter(out)

	if _, err := fmt.Fprintf(w, "%d %d\n", codeSectionSize, dataSize); err != nil {
		return err
	}

	addr := asm.LoadingBase

	for _, c := range code {
		if _, err := fmt.Fprintf(w, "%04d %05o\n", addr, uint16(c)); err != nil {
			return err
		}

		addr++
	}

	for _, d := range data {
		if _, err := fmt.Fprintf(w, "%04d %05o\n", addr, uint16(d)); err != nil {
			return err
		}

		addr++
	}

	return w.Flush()
}

// WriteEntries writes the entry file: one line per ENTRY symbol, giving its name and its loaded
// address in decimal. The caller should skip writing this file entirely when there are no
// entries.
func WriteEntries(out io.Writer, entries []asm.Symbol, codeSectionSize int) error {
	w := bufio.NewWriter(out)

	for _, sym := range entries {
		address := sym.Address + asm.LoadingBase
		if sym.Origin == asm.Data {
			address += codeSectionSize
		}

		if _, err := fmt.Fprintf(w, "%s %d\n", sym.Name, address); err != nil {
			return err
		}
	}

	return w.Flush()
}

// WriteExterns writes the extern file: one line per reference -- not per symbol -- giving the
// symbol's name and the loaded address of the use site. The caller should skip writing this file
// entirely when there are no references.
func WriteExterns(out io.Writer, refs []asm.ExternRef) error {
	w := bufio.NewWriter(out)

	for _, ref := range refs {
		if _, err := fmt.Fprintf(w, "%s %d\n", ref.Name, ref.UseAddress); err != nil {
			return err
		}
	}

	return w.Flush()
}
