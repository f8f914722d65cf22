package sem

import (
	"github.com/jounaidr/babycino-compiler/ast"
	"github.com/jounaidr/babycino-compiler/report"
)

// ObjectClassName is the name of the built-in root class every class
// implicitly or explicitly extends.
const ObjectClassName = "Object"

// BuildSymbolTable walks prog once to populate a SymbolTable with every
// class, its inheritance link, its fields, and its methods, in a two-pass
// scan: pass 1 registers every class name so forward references resolve,
// pass 2 resolves extends clauses and field/parameter/local types.
//
// Structural problems (duplicate names, an unknown superclass, a cyclic
// extends chain, an unresolvable type name) are reported through the
// report package rather than returned as Go errors, using the same
// collect-and-continue recovery strategy the type checker uses: each
// problem is substituted with a conservative recovery value so that the
// rest of the class can still be built and later errors remain
// meaningful. Call report.Die() after BuildSymbolTable returns to learn
// whether anything went wrong.
func BuildSymbolTable(src *report.Source, prog *ast.Program) *SymbolTable {
	st := NewSymbolTable()
	object := NewClass(ObjectClassName, nil)
	st.AddClass(object)

	// Pass 1: register every class name, main class first, so that a
	// forward reference to a class declared later in the file still
	// resolves.
	registerName(st, src, prog.Main.Name, prog.Main.Span())
	for _, cd := range prog.Classes {
		registerName(st, src, cd.Name, cd.NamePos)
	}

	// Pass 2: resolve extends clauses, then fields and methods. Supers are
	// linked tentatively first and the whole graph is checked for cycles
	// afterward, rather than checking each class's ancestor chain as it is
	// resolved — a two-class cycle (A extends B, B extends A) isn't visible
	// while resolving A, since B's Super link doesn't exist yet.
	extendsPos := make(map[string]*report.Span)
	resolveSuperclass(st, src, prog.Main.Name, "", nil, extendsPos)
	for _, cd := range prog.Classes {
		resolveSuperclass(st, src, cd.Name, cd.Extends, cd.ExtendsPos, extendsPos)
	}
	repairCycles(st, src, extendsPos)

	// Main class declares no fields and a single method with no
	// parameters or locals worth modeling (its String[] parameter is not
	// a representable Type and is never referenced in a main body).
	mainMethod := NewMethod("main", st.Get(prog.Main.Name), NewType(INT)) // return type never checked; main has no return statement
	st.Get(prog.Main.Name).AddMethod(mainMethod)

	for _, cd := range prog.Classes {
		buildClassBody(st, src, cd)
	}

	return st
}

func registerName(st *SymbolTable, src *report.Source, name string, span *report.Span) {
	if name == ObjectClassName {
		report.ReportError(src, span, "class cannot be named %s: it is the built-in root class", ObjectClassName)
		return
	}
	if st.Get(name) != nil {
		report.ReportError(src, span, "duplicate class name: %s", name)
		return
	}
	st.AddClass(NewClass(name, nil))
}

// resolveSuperclass links c to its named superclass, or to Object if it
// has none or the name doesn't resolve. The link is tentative: it may still
// close a cycle with a class that hasn't been resolved yet, which
// repairCycles checks for once every class has a (tentative) Super.
func resolveSuperclass(st *SymbolTable, src *report.Source, name, extends string, extendsPos *report.Span, pos map[string]*report.Span) {
	c := st.Get(name)
	if c == nil {
		// The name was never registered; nothing to link.
		return
	}
	if extends == "" {
		c.Super = st.Get(ObjectClassName)
		return
	}
	pos[name] = extendsPos

	super := st.Get(extends)
	if super == nil {
		report.ReportError(src, extendsPos, "unknown superclass: %s", extends)
		c.Super = st.Get(ObjectClassName)
		return
	}
	c.Super = super
}

// repairCycles finds every class whose Super chain loops back on itself
// (self-extension counts as a one-class cycle) and corrects it to Object.
// Detection runs over every class's chain before any correction is applied,
// so a two-class cycle is judged from the original pair of links rather
// than from whichever link is still intact after the other has already
// been repaired.
func repairCycles(st *SymbolTable, src *report.Source, extendsPos map[string]*report.Span) {
	object := st.Get(ObjectClassName)

	var cyclic []*Class
	for _, c := range st.Classes() {
		if c == object {
			continue
		}
		seen := map[*Class]bool{c: true}
		for cur := c.Super; cur != nil && cur != object; cur = cur.Super {
			if seen[cur] {
				cyclic = append(cyclic, c)
				break
			}
			seen[cur] = true
		}
	}

	for _, c := range cyclic {
		report.ReportError(src, extendsPos[c.Name], "cyclic inheritance involving class %s", c.Name)
		c.Super = object
	}
}

func buildClassBody(st *SymbolTable, src *report.Source, cd *ast.ClassDecl) {
	c := st.Get(cd.Name)
	if c == nil {
		return
	}

	for _, field := range cd.Fields {
		t := resolveType(st, src, field.Type)
		if c.Super != nil && c.Super.HasAnyVar(field.Name) {
			report.ReportError(src, field.NamePos, "field %s collides with an inherited field of class %s", field.Name, cd.Name)
			continue
		}
		if _, dup := c.OwnFieldType(field.Name); dup {
			report.ReportError(src, field.NamePos, "duplicate field name: %s", field.Name)
			continue
		}
		c.AddField(field.Name, t)
	}

	for _, md := range cd.Methods {
		buildMethod(st, src, c, md)
	}
}

func buildMethod(st *SymbolTable, src *report.Source, c *Class, md *ast.MethodDecl) {
	ret := resolveType(st, src, md.ReturnType)
	m := NewMethod(md.Name, c, ret)

	seen := make(map[string]bool)
	for _, p := range md.Params {
		if seen[p.Name] {
			report.ReportError(src, p.NamePos, "duplicate parameter name: %s", p.Name)
			continue
		}
		seen[p.Name] = true
		m.AddParam(p.Name, resolveType(st, src, p.Type))
	}
	for _, l := range md.Locals {
		if seen[l.Name] {
			report.ReportError(src, l.NamePos, "local %s shadows a parameter or earlier local", l.Name)
			continue
		}
		seen[l.Name] = true
		m.AddLocal(l.Name, resolveType(st, src, l.Type))
	}

	if c.Super != nil {
		if overridden := c.Super.GetAnyMethod(md.Name); overridden != nil {
			if !m.SameSignature(overridden) {
				report.ReportError(src, md.NamePos, "method %s overrides %s with an incompatible parameter list", m.GetQualifiedName(), overridden.GetQualifiedName())
			} else if !overridden.Return.CompatibleWith(m.Return) {
				report.ReportError(src, md.NamePos, "method %s overrides %s with an incompatible return type: %s is not compatible with %s", m.GetQualifiedName(), overridden.GetQualifiedName(), m.Return, overridden.Return)
			}
		}
	}

	if c.GetOwnMethod(md.Name) != nil {
		report.ReportError(src, md.NamePos, "duplicate method name: %s", md.Name)
		return
	}
	c.AddMethod(m)
}

// resolveType is the Type Extractor: it turns a type parse node into a
// Type, reporting UnknownType and substituting Object as a recovery value
// when a named class does not exist.
func resolveType(st *SymbolTable, src *report.Source, tn ast.TypeNode) Type {
	switch t := tn.(type) {
	case *ast.IntType:
		return NewType(INT)
	case *ast.BooleanType:
		return NewType(BOOLEAN)
	case *ast.IntArrayType:
		return NewType(INTARRAY)
	case *ast.ObjectType:
		c := st.Get(t.Name)
		if c == nil {
			report.ReportError(src, t.Span(), "unknown type: %s", t.Name)
			return NewObjectType(st.Get(ObjectClassName))
		}
		return NewObjectType(c)
	default:
		report.ICE("unhandled type node %T", tn)
		panic("unreachable")
	}
}
