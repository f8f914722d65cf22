package sem

// Method is a single method declaration: its name, owning class, ordered
// parameters, locals, and return type. Parameters and locals are kept in
// separate maps because the lowering stage assigns them to different
// register spaces, but hasVar/getVarType search both as one namespace —
// a parameter name can never collide with a local name because the symbol
// builder rejects that at declaration time.
type Method struct {
	Name   string
	Owner  *Class
	Return Type

	paramOrder []string
	params     map[string]Type

	localOrder []string
	locals     map[string]Type
}

// NewMethod creates an empty method declaration.
func NewMethod(name string, owner *Class, ret Type) *Method {
	return &Method{
		Name:   name,
		Owner:  owner,
		Return: ret,
		params: make(map[string]Type),
		locals: make(map[string]Type),
	}
}

// AddParam registers a parameter in declaration order.
func (m *Method) AddParam(name string, t Type) {
	m.paramOrder = append(m.paramOrder, name)
	m.params[name] = t
}

// AddLocal registers a local variable in declaration order.
func (m *Method) AddLocal(name string, t Type) {
	m.localOrder = append(m.localOrder, name)
	m.locals[name] = t
}

// Params returns parameter names in declaration order.
func (m *Method) Params() []string {
	return m.paramOrder
}

// Locals returns local variable names in declaration order.
func (m *Method) Locals() []string {
	return m.localOrder
}

// ParamType returns the declared type of a parameter.
func (m *Method) ParamType(name string) (Type, bool) {
	t, ok := m.params[name]
	return t, ok
}

// IsParam reports whether id names a parameter of m.
func (m *Method) IsParam(id string) bool {
	_, ok := m.params[id]
	return ok
}

// IsLocal reports whether id names a local of m.
func (m *Method) IsLocal(id string) bool {
	_, ok := m.locals[id]
	return ok
}

// HasVar reports whether id names a parameter or local of m.
func (m *Method) HasVar(id string) bool {
	if _, ok := m.params[id]; ok {
		return true
	}
	_, ok := m.locals[id]
	return ok
}

// GetVarType returns the declared type of a parameter or local, searching
// parameters first, then locals.
func (m *Method) GetVarType(id string) (Type, bool) {
	if t, ok := m.params[id]; ok {
		return t, true
	}
	t, ok := m.locals[id]
	return t, ok
}

// GetQualifiedName returns "OwnerName.MethodName".
func (m *Method) GetQualifiedName() string {
	owner := "<none>"
	if m.Owner != nil {
		owner = m.Owner.Name
	}
	return owner + "." + m.Name
}

// SameSignature reports whether m and other have identical parameter lists
// (names may differ, but count and positional types must match) — the
// requirement the symbol builder enforces on a method override.
func (m *Method) SameSignature(other *Method) bool {
	if len(m.paramOrder) != len(other.paramOrder) {
		return false
	}
	for i, name := range m.paramOrder {
		otherName := other.paramOrder[i]
		if !m.params[name].Equal(other.params[otherName]) {
			return false
		}
	}
	return true
}
