package asm_test

import (
	"strings"
	"testing"

	. "github.com/elsinore/hasm/internal/asm"
	"github.com/elsinore/hasm/internal/word"
)

// gold_test.go contains end-to-end tests that assemble a literal source snippet and check the
// resulting words, symbols, and extern references directly, without going through the object-file
// text emitters in package objfmt.

func assembleLines(t *testing.T, source string) Result {
	t.Helper()

	lines := strings.Split(strings.TrimRight(source, "\n"), "\n")
	a := NewAssembler("gold.as", lines, nil)

	result, err := a.Assemble()
	if err != nil {
		t.Fatalf("Assemble(%q): unexpected error: %s", source, err)
	}

	return result
}

func TestGold_Rts(t *testing.T) {
	result := assembleLines(t, "rts\n")

	if len(result.Code) != 1 {
		t.Fatalf("len(Code) = %d, want 1", len(result.Code))
	}

	if want := word.Word(0x7004); result.Code[0] != want {
		t.Errorf("Code[0] = %#o, want %#o", result.Code[0], want)
	}
}

func TestGold_Stop(t *testing.T) {
	result := assembleLines(t, "stop\n")

	if want := word.Word(30724); result.Code[0] != want {
		t.Errorf("Code[0] = %d, want %d", result.Code[0], want)
	}
}

func TestGold_SharedRegisterWord(t *testing.T) {
	result := assembleLines(t, "mov r3, r5\n")

	if len(result.Code) != 2 {
		t.Fatalf("len(Code) = %d, want 2", len(result.Code))
	}

	if want := word.Word(1092); result.Code[0] != want {
		t.Errorf("Code[0] = %d, want %d", result.Code[0], want)
	}

	if want := word.Word(236); result.Code[1] != want {
		t.Errorf("Code[1] = %d, want %d", result.Code[1], want)
	}
}

func TestGold_ImmediateToRegister(t *testing.T) {
	result := assembleLines(t, "mov #-1, r2\n")

	if len(result.Code) != 3 {
		t.Fatalf("len(Code) = %d, want 3", len(result.Code))
	}

	if want := word.Word(0x7ffc); result.Code[1] != want {
		t.Errorf("Code[1] (source operand) = %#o, want %#o", result.Code[1], want)
	}

	if want := word.Word(20); result.Code[2] != want {
		t.Errorf("Code[2] (destination operand) = %d, want %d", result.Code[2], want)
	}
}

func TestGold_DataDirective(t *testing.T) {
	result := assembleLines(t, "arr: .data 7, -1, 16383\n")

	if len(result.Data) != 3 {
		t.Fatalf("len(Data) = %d, want 3", len(result.Data))
	}

	want := []word.Word{7, 0x7fff, 0x3fff}
	for i, w := range want {
		if result.Data[i] != w {
			t.Errorf("Data[%d] = %#o, want %#o", i, result.Data[i], w)
		}
	}

	sym, ok := result.Symbols.Lookup("arr")
	if !ok {
		t.Fatal("symbol arr: not found")
	}

	if sym.Origin != Data || sym.Address != 0 {
		t.Errorf("symbol arr = %+v, want origin=Data address=0", sym)
	}
}

func TestGold_ExternReference(t *testing.T) {
	result := assembleLines(t, ".extern EXT\njmp EXT\n")

	if len(result.Code) != 2 {
		t.Fatalf("len(Code) = %d, want 2", len(result.Code))
	}

	if want := word.Word(word.External); result.Code[1] != want {
		t.Errorf("Code[1] = %d, want %d", result.Code[1], want)
	}

	refs := result.Externs.Refs()
	if len(refs) != 1 || refs[0].Name != "EXT" || refs[0].UseAddress != 101 {
		t.Errorf("Externs = %+v, want [{EXT 101}]", refs)
	}
}

func TestGold_CapacityExceeded(t *testing.T) {
	var b strings.Builder

	for i := 0; i < 4090; i++ {
		b.WriteString("stop\n")
	}

	a := NewAssembler("huge.as", strings.Split(strings.TrimRight(b.String(), "\n"), "\n"), nil)

	if _, err := a.Assemble(); err == nil {
		t.Fatal("Assemble: expected a capacity error")
	}

	if got := a.State(); got != Failed {
		t.Errorf("State() = %s, want Failed", got)
	}
}
