package asm

// ExternRef records one use site of an external symbol: the symbol's name and the final loaded
// address -- including LOADING_BASE -- of the operand word that refers to it. A symbol with
// multiple use sites appears once per use, not once per symbol.
type ExternRef struct {
	Name       string
	UseAddress int
}

// ExternTable accumulates extern-reference entries during the second pass.
type ExternTable struct {
	refs []ExternRef
}

// Add records a reference to an external symbol at the given loaded address.
func (t *ExternTable) Add(name string, useAddress int) {
	t.refs = append(t.refs, ExternRef{Name: name, UseAddress: useAddress})
}

// Refs returns the accumulated references, in the order they were recorded.
func (t *ExternTable) Refs() []ExternRef {
	return t.refs
}

// Empty reports whether no external symbol was ever referenced.
func (t *ExternTable) Empty() bool {
	return len(t.refs) == 0
}
