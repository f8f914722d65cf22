package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jounaidr/babycino-compiler/tac"
)

func TestMangle(t *testing.T) {
	assert.Equal(t, "A_f", mangle("A.f"))
	assert.Equal(t, "a__b", mangle("a_b"))
	assert.Equal(t, "INIT", mangle("INIT"))
}

func TestOpToC_binopOffsetUsesPointerArithmetic(t *testing.T) {
	op := tac.OpBinop(tac.Offset, tac.RReg(1), tac.RReg(2), tac.RReg(3))
	assert.Equal(t, "    r1.ptr = r2.ptr + r3.n;", opToC(op))
}

func TestOpToC_binopArithmeticUsesIntMember(t *testing.T) {
	op := tac.OpBinop(tac.Add, tac.RReg(1), tac.RReg(2), tac.RReg(3))
	assert.Equal(t, "    r1.n = r2.n + r3.n;", opToC(op))
}

func TestOpToC_mallocUsesCalloc(t *testing.T) {
	op := tac.OpMalloc(tac.RReg(1), tac.RReg(2))
	assert.Contains(t, opToC(op), "calloc(r2.n, sizeof(word))")
}

func TestOpToC_vlRegistersIndexIntoLocalsArray(t *testing.T) {
	op := tac.OpMov(tac.VLReg(3), tac.RReg(1))
	assert.Equal(t, "    vl[3] = r1;", opToC(op))
}

func TestGenerate_emitsOneWordGlobalPerGlobalRegister(t *testing.T) {
	b := tac.NewBlock("MAIN")
	b.Append(tac.OpMov(tac.VGReg(2), tac.RReg(0)))
	b.Append(tac.OpRet())

	c := Generate([]*tac.Block{b}, false)
	assert.Contains(t, c, "word vg0 = {0};")
	assert.Contains(t, c, "word vg1 = {0};")
	assert.Contains(t, c, "word vg2 = {0};")
}

func TestGenerate_paramArraySizedToLargestCallSite(t *testing.T) {
	b := tac.NewBlock("MAIN")
	b.Append(tac.OpParam(tac.RReg(1)))
	b.Append(tac.OpParam(tac.RReg(2)))
	b.Append(tac.OpParam(tac.RReg(3)))
	b.Append(tac.OpCall(tac.RReg(4)))
	b.Append(tac.OpRet())

	c := Generate([]*tac.Block{b}, false)
	assert.Contains(t, c, "word param[3];")
}

func TestGenerate_annotateInterleavesTACCommentsAboveCStatements(t *testing.T) {
	b := tac.NewBlock("MAIN")
	b.Append(tac.OpImmed(tac.RReg(1), 42))
	b.Append(tac.OpRet())

	annotated := Generate([]*tac.Block{b}, true)
	assert.Contains(t, annotated, "// IMMED r1, 42")

	plain := Generate([]*tac.Block{b}, false)
	assert.NotContains(t, plain, "// IMMED r1, 42")
}

func TestGenerate_skipsEmptyBlocks(t *testing.T) {
	empty := &tac.Block{}
	real := tac.NewBlock("MAIN")
	real.Append(tac.OpRet())

	c := Generate([]*tac.Block{empty, real}, false)
	assert.Contains(t, c, "void MAIN();")
}
