package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jounaidr/babycino-compiler/backend"
	"github.com/jounaidr/babycino-compiler/check"
	"github.com/jounaidr/babycino-compiler/lower"
	"github.com/jounaidr/babycino-compiler/report"
	"github.com/jounaidr/babycino-compiler/sem"
	"github.com/jounaidr/babycino-compiler/syntax"
	"github.com/jounaidr/babycino-compiler/tac"
)

// compile runs every stage of the pipeline up to, but not including, the C
// backend, failing the test immediately if an earlier stage reports an
// error — lowering and codegen are only meaningful over a program that
// already type-checked.
func compile(t *testing.T, text string) []*tac.Block {
	t.Helper()
	report.InitReporter(report.LogLevelSilent)
	src := report.NewSource("<test>", text)
	prog := syntax.Parse(src)
	symtab := sem.BuildSymbolTable(src, prog)
	require.NoError(t, report.Die())
	check.Check(src, symtab, prog)
	require.NoError(t, report.Die())
	return lower.Lower(symtab, prog)
}

func blockNamed(t *testing.T, blocks []*tac.Block, name string) *tac.Block {
	t.Helper()
	for _, b := range blocks {
		if b.Label() == name {
			return b
		}
	}
	t.Fatalf("no block named %s in %d blocks", name, len(blocks))
	return nil
}

func TestLower_producesInitMainAndOneBlockPerMethod(t *testing.T) {
	blocks := compile(t, `
class Main {
    public static void main(String[] a) {
        System.out.println(1);
    }
}
class A {
    public int f() {
        return 1;
    }
}
`)
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Label()
	}
	assert.Equal(t, []string{"INIT", "MAIN", "A.f"}, names)
}

func TestLower_overriddenMethodCallEmitsOneVtableDispatch(t *testing.T) {
	blocks := compile(t, `
class Main {
    public static void main(String[] a) {
        System.out.println(new Runner().run());
    }
}
class Runner {
    public int run() {
        A x;
        x = new B();
        return x.f();
    }
}
class A {
    public int f() {
        return 1;
    }
}
class B extends A {
    public int f() {
        return 2;
    }
}
`)
	run := blockNamed(t, blocks, "Runner.run")

	var calls int
	for _, op := range run.Ops() {
		if op.Code == tac.CALL {
			calls++
		}
	}
	assert.Equal(t, 1, calls, "one dynamic dispatch through the vtable for x.f()")
}

func TestLower_logicalAndLowersToMultiplication(t *testing.T) {
	blocks := compile(t, `
class Main {
    public static void main(String[] a) {
        System.out.println(new Runner().run());
    }
}
class Runner {
    public int run() {
        boolean b;
        b = true && false;
        return 0;
    }
}
`)
	run := blockNamed(t, blocks, "Runner.run")

	var sawMul bool
	for _, op := range run.Ops() {
		if op.Code == tac.BINOP && op.BinOp == tac.Mul {
			sawMul = true
		}
	}
	assert.True(t, sawMul, "&& has no dedicated opcode; it lowers through BINOP Mul")
}

func TestLower_notLowersToOneMinusOperand(t *testing.T) {
	blocks := compile(t, `
class Main {
    public static void main(String[] a) {
        System.out.println(new Runner().run());
    }
}
class Runner {
    public int run() {
        boolean b;
        b = !true;
        return 0;
    }
}
`)
	run := blockNamed(t, blocks, "Runner.run")

	var sawSub bool
	for _, op := range run.Ops() {
		if op.Code == tac.BINOP && op.BinOp == tac.Sub {
			sawSub = true
		}
	}
	assert.True(t, sawSub, "! has no dedicated opcode; it lowers through BINOP Sub as 1 - operand")
}

func TestGenerate_arithmeticProgramCompilesToC(t *testing.T) {
	blocks := compile(t, `
class Main {
    public static void main(String[] a) {
        System.out.println(1 + 2 * 3);
    }
}
`)
	c := backend.Generate(blocks, false)
	assert.Contains(t, c, "union ilword")
	assert.Contains(t, c, "void INIT();")
	assert.Contains(t, c, "void MAIN();")
	assert.Contains(t, c, "printf(\"%d\\n\",")
	assert.Contains(t, c, "calloc(")
}

func TestGenerate_overrideDispatchEmitsVtableCall(t *testing.T) {
	blocks := compile(t, `
class Main {
    public static void main(String[] a) {
        System.out.println(new Runner().run());
    }
}
class Runner {
    public int run() {
        A x;
        x = new B();
        return x.f();
    }
}
class A {
    public int f() {
        return 1;
    }
}
class B extends A {
    public int f() {
        return 2;
    }
}
`)
	c := backend.Generate(blocks, false)
	assert.Contains(t, c, "(*(")
	assert.Contains(t, c, ".f))();")
	assert.Contains(t, c, "void A_f();")
	assert.Contains(t, c, "void B_f();")
}
