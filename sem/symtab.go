package sem

import "github.com/jounaidr/babycino-compiler/ast"

// SymbolTable is the output of the Symbol Builder stage: every declared
// class, keyed by name, plus a side table recording the static receiver
// type of each method-call parse node. The side table is write-only during
// type checking and read-only during lowering.
type SymbolTable struct {
	classOrder []string
	classes    map[string]*Class

	receivers map[ast.Node]Type
}

// NewSymbolTable creates an empty symbol table. The built-in Object root is
// added by BuildSymbolTable, not here, so that a bare SymbolTable used in a
// unit test can decide whether it wants one.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		classes:   make(map[string]*Class),
		receivers: make(map[ast.Node]Type),
	}
}

// AddClass registers a class. Classes is append-only: the symbol builder
// never removes or replaces an entry once a name is taken.
func (st *SymbolTable) AddClass(c *Class) {
	if _, ok := st.classes[c.Name]; !ok {
		st.classOrder = append(st.classOrder, c.Name)
	}
	st.classes[c.Name] = c
}

// Get looks up a class by name, returning nil if none exists.
func (st *SymbolTable) Get(name string) *Class {
	return st.classes[name]
}

// Classes returns every declared class in declaration order (Object first).
func (st *SymbolTable) Classes() []*Class {
	out := make([]*Class, len(st.classOrder))
	for i, name := range st.classOrder {
		out[i] = st.classes[name]
	}
	return out
}

// SetReceiverType records the static type of a method call's receiver,
// keyed by the call node's identity. Called by the type checker.
func (st *SymbolTable) SetReceiverType(call *ast.MethodCall, t Type) {
	st.receivers[call] = t
}

// ReceiverType retrieves the static receiver type recorded for a method
// call node. Called by the lowering stage, after type checking has
// succeeded, so the second return is always true for any call node that
// type-checked.
func (st *SymbolTable) ReceiverType(call *ast.MethodCall) (Type, bool) {
	t, ok := st.receivers[call]
	return t, ok
}
