package compiler

import (
	"fmt"
	"strings"
)

// Type is the declared type of a symbol or the computed type of an expression.
type Type string

const (
	TypeInt        Type = "int"
	TypeFloat      Type = "float"
	TypeBoolean    Type = "boolean"
	TypeString     Type = "string"
	TypeVoid       Type = "void"
	TypeUnresolved Type = "unresolved" // seen before any type information
	TypeInvalid    Type = "error"      // expression that failed to parse
)

// Size returns the number of storage bytes a variable of type t occupies.
func (t Type) Size() int {
	switch t {
	case TypeInt, TypeBoolean:
		return 2
	case TypeFloat:
		return 4
	case TypeString:
		return 128
	}
	return 0
}

// TypeFromToken maps a type keyword to its Type.
func TypeFromToken(tt TokenType) (Type, bool) {
	switch tt {
	case INT:
		return TypeInt, true
	case FLOAT:
		return TypeFloat, true
	case BOOLEAN:
		return TypeBoolean, true
	case STRING:
		return TypeString, true
	case VOID:
		return TypeVoid, true
	}
	return "", false
}

type Category int

const (
	CategoryVariable Category = iota
	CategoryFunction
)

func (c Category) String() string {
	if c == CategoryFunction {
		return "Function"
	}
	return "Variable"
}

// Symbol is one declared name.
type Symbol struct {
	Index      int // position in the table-wide creation order
	Name       string
	Category   Category
	Type       Type // return type for functions
	Offset     int  // valid only when HasOffset
	HasOffset  bool
	ParamTypes []Type // functions only
	Line       int    // first line the name was seen on

	// Declared is set once the parser has seen the explicit declaration
	// (let, parameter or function header) for this entry.
	Declared bool
}

// Scope is a namespace for declarations: the global scope or the local
// scope of one function. Entries keep their insertion order.
type Scope struct {
	name    string
	table   *SymbolTable
	symbols map[string]*Symbol
	order   []*Symbol

	// Next free storage offset (monotonically increasing).
	nextOffset int
}

func (s *Scope) Name() string { return s.name }

func (s *Scope) Len() int { return len(s.order) }

// Symbols returns the entries of s in insertion order.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, len(s.order))
	copy(out, s.order)
	return out
}

// Lookup returns the symbol and whether it was found.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Insert adds name to the scope unless it is already present. The existing
// entry is returned untouched in that case and created is false.
func (s *Scope) Insert(name string, cat Category, typ Type, line int) (sym *Symbol, created bool) {
	if sym, ok := s.symbols[name]; ok {
		return sym, false
	}
	sym = &Symbol{
		Index:    s.table.nextIndex,
		Name:     name,
		Category: cat,
		Type:     TypeUnresolved,
		Line:     line,
	}
	s.table.nextIndex++
	s.symbols[name] = sym
	s.order = append(s.order, sym)
	s.SetType(sym, typ)
	return sym, true
}

// SetType fills in the type of sym. Variables get their storage offset the
// first time a sized type is known; later calls never move an offset.
func (s *Scope) SetType(sym *Symbol, typ Type) {
	if typ == "" {
		typ = TypeUnresolved
	}
	sym.Type = typ
	if sym.Category != CategoryVariable || sym.HasOffset || typ == TypeUnresolved || typ == TypeInvalid {
		return
	}
	sym.Offset = s.nextOffset
	sym.HasOffset = true
	s.nextOffset += typ.Size()
}

// SymbolTable holds the global scope plus one local scope per function.
// Function names live only in the global scope.
type SymbolTable struct {
	global *Scope
	locals map[string]*Scope
	order  []*Scope // local scopes in creation order

	nextIndex int
}

func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{}
	t.Reset()
	return t
}

// Reset discards every scope and restarts the symbol index at 0.
func (t *SymbolTable) Reset() {
	t.nextIndex = 0
	t.global = t.newScope("global")
	t.locals = make(map[string]*Scope)
	t.order = nil
}

func (t *SymbolTable) newScope(name string) *Scope {
	return &Scope{name: name, table: t, symbols: make(map[string]*Symbol)}
}

func (t *SymbolTable) Global() *Scope { return t.global }

// Local returns the local scope of function fn, creating it if needed.
func (t *SymbolTable) Local(fn string) *Scope {
	if s, ok := t.locals[fn]; ok {
		return s
	}
	s := t.newScope(fn)
	t.locals[fn] = s
	t.order = append(t.order, s)
	return s
}

func (t *SymbolTable) HasLocal(fn string) bool {
	_, ok := t.locals[fn]
	return ok
}

// Locals returns the local scopes in creation order.
func (t *SymbolTable) Locals() []*Scope {
	out := make([]*Scope, len(t.order))
	copy(out, t.order)
	return out
}

// Scope returns the scope new declarations go to while inside fn.
// An empty fn means the global scope.
func (t *SymbolTable) Scope(fn string) *Scope {
	if fn == "" {
		return t.global
	}
	return t.Local(fn)
}

// Resolve looks name up in the local scope of fn first and then in the
// global scope. Locals of other functions are never visible.
func (t *SymbolTable) Resolve(fn, name string) (*Symbol, bool) {
	if fn != "" {
		if s, ok := t.locals[fn]; ok {
			if sym, ok := s.Lookup(name); ok {
				return sym, true
			}
		}
	}
	return t.global.Lookup(name)
}

// ResolveOrDeclare is Resolve with implicit declaration: a name that is not
// visible is declared as an int variable in the enclosing scope, and a
// visible entry still waiting for a type is resolved to int. created reports
// whether either of those happened.
func (t *SymbolTable) ResolveOrDeclare(fn, name string, line int) (sym *Symbol, created bool) {
	if sym, ok := t.Resolve(fn, name); ok {
		if sym.Type == TypeUnresolved {
			t.owner(fn, sym).SetType(sym, TypeInt)
			return sym, true
		}
		return sym, false
	}
	return t.Scope(fn).Insert(name, CategoryVariable, TypeInt, line)
}

// owner returns the scope sym lives in, as seen from inside fn.
func (t *SymbolTable) owner(fn string, sym *Symbol) *Scope {
	if fn != "" {
		if s, ok := t.locals[fn]; ok {
			if found, ok := s.Lookup(sym.Name); ok && found == sym {
				return s
			}
		}
	}
	return t.global
}

// DeclareFunction registers a function in the global scope and makes sure
// its local scope exists. A global name that so far was only used, never
// typed, becomes the function; any other existing entry is returned as is.
func (t *SymbolTable) DeclareFunction(name string, ret Type, params []Type, line int) (*Symbol, bool) {
	t.Local(name)
	sym, created := t.global.Insert(name, CategoryFunction, ret, line)
	if !created && sym.Category == CategoryVariable && sym.Type == TypeUnresolved && !sym.Declared {
		sym.Category = CategoryFunction
		sym.Type = ret
		created = true
	}
	if created {
		sym.ParamTypes = append([]Type(nil), params...)
	}
	return sym, created
}

func (sym *Symbol) String() string {
	if sym.Category == CategoryFunction {
		types := make([]string, len(sym.ParamTypes))
		for i, p := range sym.ParamTypes {
			types[i] = string(p)
		}
		return fmt.Sprintf("(%d) [%s] lexeme='%s', type='%s', params=%d, paramTypes=[%s]",
			sym.Index, sym.Category, sym.Name, sym.Type, len(sym.ParamTypes), strings.Join(types, ", "))
	}
	off := "-"
	if sym.HasOffset {
		off = fmt.Sprint(sym.Offset)
	}
	return fmt.Sprintf("(%d) [%s] lexeme='%s', type='%s', offset=%s", sym.Index, sym.Category, sym.Name, sym.Type, off)
}

func writeScope(sb *strings.Builder, header string, s *Scope) {
	fmt.Fprintf(sb, "=== %s ===\n", header)
	if s.Len() == 0 {
		sb.WriteString("  (empty)\n")
		return
	}
	for _, sym := range s.order {
		fmt.Fprintf(sb, "  %s\n", sym)
	}
}

// String returns the symbol table dump: the global scope first, then each
// local scope in the order the functions were seen.
func (t *SymbolTable) String() string {
	var sb strings.Builder
	writeScope(&sb, "GLOBAL TABLE", t.global)
	for _, s := range t.order {
		sb.WriteByte('\n')
		writeScope(&sb, "LOCAL TABLE: "+s.name, s)
	}
	return sb.String()
}
