package sem

// Class is a single class declaration resolved by the symbol builder:
// its name, optional superclass, and its own (non-inherited) fields and
// methods, each kept in declaration order since that order determines
// object layout and vtable slot assignment (see the lower package).
type Class struct {
	Name  string
	Super *Class

	fieldOrder []string
	fields     map[string]Type

	methodOrder []string
	methods     map[string]*Method
}

// NewClass creates an empty class with the given name and superclass.
// Super is nil only for the built-in Object root.
func NewClass(name string, super *Class) *Class {
	return &Class{
		Name:   name,
		Super:  super,
		fields: make(map[string]Type),
		methods: make(map[string]*Method),
	}
}

// AddField registers an own field. Callers must ensure the name does not
// collide with an inherited field before calling this.
func (c *Class) AddField(name string, t Type) {
	if _, ok := c.fields[name]; !ok {
		c.fieldOrder = append(c.fieldOrder, name)
	}
	c.fields[name] = t
}

// AddMethod registers an own method, keyed by its unqualified name.
func (c *Class) AddMethod(m *Method) {
	if _, ok := c.methods[m.Name]; !ok {
		c.methodOrder = append(c.methodOrder, m.Name)
	}
	c.methods[m.Name] = m
}

// OwnFields returns this class's own fields in declaration order.
func (c *Class) OwnFields() []string {
	return c.fieldOrder
}

// OwnFieldType returns the declared type of an own field.
func (c *Class) OwnFieldType(name string) (Type, bool) {
	t, ok := c.fields[name]
	return t, ok
}

// OwnMethods returns this class's own methods in declaration order.
func (c *Class) OwnMethods() []*Method {
	out := make([]*Method, len(c.methodOrder))
	for i, name := range c.methodOrder {
		out[i] = c.methods[name]
	}
	return out
}

// GetOwnMethod returns a method declared directly on this class (not
// inherited), or nil if there is none by that name.
func (c *Class) GetOwnMethod(name string) *Method {
	return c.methods[name]
}

// HasAnyVar reports whether id names a field of this class or any ancestor.
func (c *Class) HasAnyVar(id string) bool {
	for cur := c; cur != nil; cur = cur.Super {
		if _, ok := cur.fields[id]; ok {
			return true
		}
	}
	return false
}

// GetVarType returns the declared type of field id, searching this class
// and then its ancestors. The second return is false if no such field
// exists anywhere in the chain.
func (c *Class) GetVarType(id string) (Type, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if t, ok := cur.fields[id]; ok {
			return t, true
		}
	}
	return Type{}, false
}

// GetAnyMethod resolves a method by name, searching this class and then
// its ancestors — the same order virtual dispatch would use, since an
// override in a subclass always shadows the ancestor's declaration of the
// same name.
func (c *Class) GetAnyMethod(name string) *Method {
	for cur := c; cur != nil; cur = cur.Super {
		if m, ok := cur.methods[name]; ok {
			return m
		}
	}
	return nil
}

// isOrExtends reports whether c is ancestor itself or a transitive
// subclass of it.
func (c *Class) isOrExtends(ancestor *Class) bool {
	for cur := c; cur != nil; cur = cur.Super {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// FieldLayout returns the full, ordered word-offset layout for instances of
// c: inherited fields (oldest ancestor first, in their own declaration
// order) followed by c's own fields in declaration order. Index i in the
// returned slice is word-offset i+1 of an instance (word 0 is the vtable
// pointer header).
func (c *Class) FieldLayout() []string {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.Super {
		chain = append(chain, cur)
	}

	var layout []string
	for i := len(chain) - 1; i >= 0; i-- {
		layout = append(layout, chain[i].fieldOrder...)
	}
	return layout
}

// MethodLayout returns the ordered vtable slot names for instances of c:
// one slot per distinct method name introduced anywhere in the chain from
// root to leaf, in the order each name was first introduced. An override
// reuses the slot of the method it overrides rather than appending a new
// one.
func (c *Class) MethodLayout() []string {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.Super {
		chain = append(chain, cur)
	}

	var layout []string
	seen := make(map[string]bool)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, name := range chain[i].methodOrder {
			if !seen[name] {
				seen[name] = true
				layout = append(layout, name)
			}
		}
	}
	return layout
}
