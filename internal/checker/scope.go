package checker

import "sort"

// Symbol binds a name to a type. Each declaration gets its own Symbol, so
// a shadowing declaration is a different Symbol with the same name.
type Symbol struct {
	Name   string
	Type   Type
	Line   int
	Column int
	Uses   int // references resolved to this symbol
}

// Scope represents a lexical scope with a symbol table
type Scope struct {
	enclosing *Scope
	symbols   map[string]*Symbol
	prototype bool // parameter scope of a declaration without a body
}

// NewScope creates a new scope with an optional enclosing scope
func NewScope(enclosing *Scope) *Scope {
	return &Scope{
		enclosing: enclosing,
		symbols:   make(map[string]*Symbol),
	}
}

// Enclosing returns the scope this one is nested in
func (s *Scope) Enclosing() *Scope {
	return s.enclosing
}

// MarkPrototype flags s as the parameter scope of a function prototype
func (s *Scope) MarkPrototype() {
	s.prototype = true
}

// IsPrototype reports whether s holds the parameters of a prototype
func (s *Scope) IsPrototype() bool {
	return s.prototype
}

// Insert adds a symbol to this scope, replacing any symbol with the same name
func (s *Scope) Insert(sym *Symbol) {
	s.symbols[sym.Name] = sym
}

// Find looks up a symbol only in this scope (not enclosing scopes)
func (s *Scope) Find(name string) *Symbol {
	return s.symbols[name]
}

// Lookup looks up a symbol in this scope and then outward through the
// enclosing scopes. Returns nil if the symbol is not found.
func (s *Scope) Lookup(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.enclosing {
		if sym, ok := scope.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// Symbols returns the symbols of this scope sorted by name
func (s *Scope) Symbols() []*Symbol {
	syms := make([]*Symbol, 0, len(s.symbols))
	for _, sym := range s.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Name < syms[j].Name
	})
	return syms
}
