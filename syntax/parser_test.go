package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jounaidr/babycino-compiler/ast"
	"github.com/jounaidr/babycino-compiler/report"
)

func parseSource(text string) *ast.Program {
	src := report.NewSource("<test>", text)
	return Parse(src)
}

func TestParser_mainClassOnly(t *testing.T) {
	prog := parseSource(`
class Fac {
    public static void main(String[] a) {
        System.out.println(1);
    }
}
`)
	assert.Equal(t, "Fac", prog.Main.Name)
	assert.Equal(t, "a", prog.Main.ArgName)
	assert.Empty(t, prog.Classes)
}

func TestParser_classWithFieldsAndMethod(t *testing.T) {
	prog := parseSource(`
class Fac {
    public static void main(String[] a) {
        System.out.println(1);
    }
}
class Counter {
    int count;
    boolean active;

    public int increment(int by) {
        int result;
        result = count + by;
        return result;
    }
}
`)
	require.Len(t, prog.Classes, 1)
	c := prog.Classes[0]
	assert.Equal(t, "Counter", c.Name)
	require.Len(t, c.Fields, 2)
	assert.Equal(t, "count", c.Fields[0].Name)
	assert.IsType(t, &ast.IntType{}, c.Fields[0].Type)
	assert.Equal(t, "active", c.Fields[1].Name)
	assert.IsType(t, &ast.BooleanType{}, c.Fields[1].Type)

	require.Len(t, c.Methods, 1)
	m := c.Methods[0]
	assert.Equal(t, "increment", m.Name)
	require.Len(t, m.Params, 1)
	require.Len(t, m.Locals, 1)
	require.Len(t, m.Body, 1)
	assert.IsType(t, &ast.Assign{}, m.Body[0])
}

func TestParser_operatorPrecedence(t *testing.T) {
	prog := parseSource(`
class Fac {
    public static void main(String[] a) {
        System.out.println(1 + 2 * 3 < 10 && true);
    }
}
`)
	print := prog.Main.Body.(*ast.Print)
	top, ok := print.Value.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "&&", top.Op)

	lt, ok := top.Left.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "<", lt.Op)

	add, ok := lt.Left.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "+", add.Op)

	mul, ok := add.Right.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op, "* binds tighter than + so it nests on the right of the addition")
}

func TestParser_typeLedDeclarationVsIdentifierStatement(t *testing.T) {
	prog := parseSource(`
class Fac {
    public static void main(String[] a) {
        System.out.println(1);
    }
}
class Holder {
    public int use() {
        Fac f;
        f = new Fac();
        return 0;
    }
}
`)
	m := prog.Classes[0].Methods[0]
	require.Len(t, m.Locals, 1, "`Fac f;` must parse as a local declaration, not an expression statement")
	assert.Equal(t, "f", m.Locals[0].Name)
	require.Len(t, m.Body, 1)
	assign, ok := m.Body[0].(*ast.Assign)
	require.True(t, ok, "`f = new Fac();` must parse as an assignment statement")
	assert.Equal(t, "f", assign.Name)
}

func TestParser_postfixChain(t *testing.T) {
	prog := parseSource(`
class Fac {
    public static void main(String[] a) {
        System.out.println(a.length);
    }
}
`)
	print := prog.Main.Body.(*ast.Print)
	_, ok := print.Value.(*ast.ArrayLength)
	assert.True(t, ok)
}

func TestParser_methodCallWithArgs(t *testing.T) {
	prog := parseSource(`
class Main {
    public static void main(String[] a) {
        System.out.println(new Fac().compute(1, 2));
    }
}
class Fac {
    public int compute(int x, int y) {
        return x + y;
    }
}
`)
	print := prog.Main.Body.(*ast.Print)
	call, ok := print.Value.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "compute", call.Method)
	assert.Len(t, call.Args, 2)
}

func TestParser_arrayAssignment(t *testing.T) {
	prog := parseSource(`
class Fac {
    public static void main(String[] a) {
        System.out.println(new Runner().run());
    }
}
class Runner {
    public int run() {
        int[] arr;
        arr = new int[2];
        arr[0] = 42;
        return arr[0];
    }
}
`)
	method := prog.Classes[0].Methods[0]
	arrAssign, ok := method.Body[1].(*ast.ArrayAssign)
	require.True(t, ok)
	assert.Equal(t, "arr", arrAssign.Name)
}

func TestParser_unexpectedTokenReportsError(t *testing.T) {
	src := report.NewSource("<test>", `
class Fac {
    public static void main(String[] a) {
        System.out.println(
    }
}
`)
	p := NewParser(src)
	assert.Panics(t, func() { p.parseProgram() })
}
