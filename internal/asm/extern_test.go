package asm

import "testing"

func TestExternTable(t *testing.T) {
	var tab ExternTable

	if !tab.Empty() {
		t.Fatal("Empty() = false, want true for a fresh table")
	}

	tab.Add("PRINT", 103)
	tab.Add("PRINT", 107)

	if tab.Empty() {
		t.Fatal("Empty() = true after Add")
	}

	refs := tab.Refs()
	if len(refs) != 2 {
		t.Fatalf("len(Refs()) = %d, want 2", len(refs))
	}

	if refs[0] != (ExternRef{Name: "PRINT", UseAddress: 103}) {
		t.Errorf("Refs()[0] = %+v, want {PRINT 103}", refs[0])
	}
}
