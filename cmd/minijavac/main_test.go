package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.java")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestRunCompile_writesGeneratedCToStdout(t *testing.T) {
	path := writeSource(t, `
class Fac {
    public static void main(String[] a) {
        System.out.println(1 + 2 * 3);
    }
}
`)
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--no-spinners", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "void MAIN();")
	assert.Contains(t, out.String(), "union ilword")
}

func TestRunCompile_dashOWritesToFile(t *testing.T) {
	path := writeSource(t, `
class Fac {
    public static void main(String[] a) {
        System.out.println(42);
    }
}
`)
	outPath := filepath.Join(filepath.Dir(path), "out.c")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--no-spinners", "-o", outPath, path})
	require.NoError(t, cmd.Execute())

	contents, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "void MAIN();")
}

func TestRunCompile_typeErrorIsReturnedAsError(t *testing.T) {
	path := writeSource(t, `
class Fac {
    public static void main(String[] a) {
        System.out.println(missing);
    }
}
`)
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--no-spinners", "--loglevel", "silent", path})

	assert.Error(t, cmd.Execute())
}

func TestRunCompile_dumpSymPrintsClassLayout(t *testing.T) {
	path := writeSource(t, `
class Fac {
    public static void main(String[] a) {
        System.out.println(1);
    }
}
class A {
    int x;
    public int f() {
        return x;
    }
}
`)
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-spinners", "--dump-sym", "-o", filepath.Join(filepath.Dir(path), "out.c"), path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "class A extends Object {")
}

func TestRunCompile_dumpTypesPrintsResolvedReceiverType(t *testing.T) {
	path := writeSource(t, `
class Fac {
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
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-spinners", "--dump-types", "-o", filepath.Join(filepath.Dir(path), "out.c"), path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "run(...) receiver type Runner")
	assert.Contains(t, out.String(), "f(...) receiver type A")
}

func TestRunCompile_projectConfigAnnotateFlagReachesGeneratedC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.java")
	require.NoError(t, os.WriteFile(path, []byte(`
class Fac {
    public static void main(String[] a) {
        System.out.println(1);
    }
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "minijavac.toml"), []byte(`
[output]
annotate = true
`), 0o644))

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--no-spinners", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "// IMMED")
}

func TestRunCompile_missingFileIsAnError(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--no-spinners", filepath.Join(t.TempDir(), "nope.java")})
	assert.Error(t, cmd.Execute())
}
