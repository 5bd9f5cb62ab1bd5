package asm

import "fmt"

// Origin distinguishes where a symbol's address counts from: the code arena or the data arena.
type Origin uint8

// Origins a symbol may have.
const (
	Code Origin = iota
	Data
)

func (o Origin) String() string {
	if o == Data {
		return "data"
	}

	return "code"
}

// Kind is the disposition of a symbol: an ordinary label, one exported via .entry, or one
// imported via .extern.
type Kind uint8

// Symbol kinds.
const (
	Plain Kind = iota
	Entry
	Extern
)

func (k Kind) String() string {
	switch k {
	case Entry:
		return "entry"
	case Extern:
		return "extern"
	default:
		return "plain"
	}
}

// Symbol is one entry of the symbol table: a label's address, the arena it was defined in, and
// its disposition.
type Symbol struct {
	Name    string
	Address int
	Origin  Origin
	Kind    Kind
}

// SymbolTable maps label names to their definitions. It is built during the first pass and
// consulted (and selectively mutated, for .entry) during the second.
type SymbolTable struct {
	byName map[string]*Symbol
	order  []string // Preserves insertion order for deterministic iteration.
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

// Count returns the number of symbols defined.
func (s *SymbolTable) Count() int {
	return len(s.order)
}

// Lookup returns the symbol named name, if any.
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := s.byName[name]
	if !ok {
		return Symbol{}, false
	}

	return *sym, true
}

// Has reports whether a symbol named name has been defined.
func (s *SymbolTable) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Define adds a new plain symbol at the given address and origin. It is an error to redefine an
// existing name.
func (s *SymbolTable) Define(name string, address int, origin Origin) error {
	if s.Has(name) {
		return fmt.Errorf("duplicate label: %q", name)
	}

	s.byName[name] = &Symbol{Name: name, Address: address, Origin: origin, Kind: Plain}
	s.order = append(s.order, name)

	return nil
}

// DefineExtern registers name as an external symbol. By convention its address is zero and its
// origin is Code. It is an error if the name is already defined.
func (s *SymbolTable) DefineExtern(name string) error {
	if s.Has(name) {
		return fmt.Errorf("extern label already defined: %q", name)
	}

	s.byName[name] = &Symbol{Name: name, Address: 0, Origin: Code, Kind: Extern}
	s.order = append(s.order, name)

	return nil
}

// MarkEntry marks an existing plain symbol as an entry. It fails if the symbol is unknown,
// already an entry, or extern.
func (s *SymbolTable) MarkEntry(name string) error {
	sym, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("entry label not defined: %q", name)
	}

	switch sym.Kind {
	case Extern:
		return fmt.Errorf("cannot mark an extern label as entry: %q", name)
	case Entry:
		return fmt.Errorf("label already marked as entry: %q", name)
	}

	sym.Kind = Entry

	return nil
}

// Entries returns all symbols marked as entries, in the order they were defined.
func (s *SymbolTable) Entries() []Symbol {
	var entries []Symbol

	for _, name := range s.order {
		sym := s.byName[name]
		if sym.Kind == Entry {
			entries = append(entries, *sym)
		}
	}

	return entries
}
