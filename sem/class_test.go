package sem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldLayout_inheritedFieldsComeFirst(t *testing.T) {
	object := NewClass("Object", nil)
	a := NewClass("A", object)
	a.AddField("x", NewType(INT))
	a.AddField("y", NewType(INT))
	b := NewClass("B", a)
	b.AddField("z", NewType(BOOLEAN))

	assert.Equal(t, []string{"x", "y", "z"}, b.FieldLayout())
}

func TestMethodLayout_overrideReusesSlot(t *testing.T) {
	object := NewClass("Object", nil)
	a := NewClass("A", object)
	f := NewMethod("f", a, NewType(INT))
	a.AddMethod(f)
	a.AddMethod(NewMethod("g", a, NewType(INT)))

	b := NewClass("B", a)
	override := NewMethod("f", b, NewType(INT))
	b.AddMethod(override)

	layout := b.MethodLayout()
	assert.Equal(t, []string{"f", "g"}, layout, "f keeps A's slot instead of appending a new one")
}

func TestMethodLayout_newMethodAppendsSlot(t *testing.T) {
	object := NewClass("Object", nil)
	a := NewClass("A", object)
	a.AddMethod(NewMethod("f", a, NewType(INT)))

	b := NewClass("B", a)
	b.AddMethod(NewMethod("h", b, NewType(INT)))

	assert.Equal(t, []string{"f", "h"}, b.MethodLayout())
}

func TestGetAnyMethod_searchesAncestors(t *testing.T) {
	object := NewClass("Object", nil)
	a := NewClass("A", object)
	f := NewMethod("f", a, NewType(INT))
	a.AddMethod(f)
	b := NewClass("B", a)

	assert.Same(t, f, b.GetAnyMethod("f"))
	assert.Nil(t, b.GetAnyMethod("nope"))
}

func TestHasAnyVarAndGetVarType_searchAncestors(t *testing.T) {
	object := NewClass("Object", nil)
	a := NewClass("A", object)
	a.AddField("count", NewType(INT))
	b := NewClass("B", a)

	assert.True(t, b.HasAnyVar("count"))
	typ, ok := b.GetVarType("count")
	assert.True(t, ok)
	assert.True(t, typ.IsInt())

	assert.False(t, b.HasAnyVar("missing"))
}

func TestIsOrExtends(t *testing.T) {
	object := NewClass("Object", nil)
	a := NewClass("A", object)
	b := NewClass("B", a)
	other := NewClass("Other", object)

	assert.True(t, b.isOrExtends(a))
	assert.True(t, b.isOrExtends(b))
	assert.False(t, b.isOrExtends(other))
}
