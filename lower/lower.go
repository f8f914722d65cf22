// Package lower implements the IR Lowering stage: it walks the parse tree
// and the symbol table built by sem and the receiver types recorded by
// check, and produces a flat list of TAC blocks — one per method, plus the
// synthetic INIT block that constructs every class's method table at
// program start and the MAIN block that is the main class's entry point.
package lower

import (
	"github.com/jounaidr/babycino-compiler/ast"
	"github.com/jounaidr/babycino-compiler/sem"
	"github.com/jounaidr/babycino-compiler/tac"
)

// ctx carries the per-block lowering state: the block being built, the
// register/label allocators for it, and the current method's local
// variable frame. A fresh ctx is created per block; vgFor and vgReturn are
// shared across every block in the program since they name global
// registers.
type ctx struct {
	sym   *sem.SymbolTable
	block *tac.Block

	class  *sem.Class // owning class of the method being lowered, nil for INIT
	locals map[string]tac.Reg

	vgFor    map[*sem.Class]tac.Reg
	vgReturn tac.Reg

	nextR     int
	nextLabel int
}

func (c *ctx) freshR() tac.Reg {
	c.nextR++
	return tac.RReg(c.nextR)
}

func (c *ctx) freshLabel() string {
	c.nextLabel++
	return "L" + itoa(c.nextLabel)
}

func (c *ctx) emit(op tac.Op) {
	c.block.Append(op)
}

// thisReg is the register convention for `this`: always vl[0], whether or
// not the current block is an instance method.
var thisReg = tac.VLReg(0)

// Lower produces the full TAC block list for prog.
func Lower(sym *sem.SymbolTable, prog *ast.Program) []*tac.Block {
	classes := sym.Classes()
	vgFor := make(map[*sem.Class]tac.Reg, len(classes))
	for i, c := range classes {
		vgFor[c] = tac.VGReg(i)
	}
	vgReturn := tac.VGReg(len(classes))

	var blocks []*tac.Block
	blocks = append(blocks, lowerInit(sym, classes, vgFor))
	blocks = append(blocks, lowerMain(sym, prog.Main, vgFor, vgReturn))

	for _, cd := range prog.Classes {
		c := sym.Get(cd.Name)
		for _, md := range cd.Methods {
			blocks = append(blocks, lowerMethod(sym, c, md, vgFor, vgReturn))
		}
	}

	return blocks
}

// lowerInit builds the INIT block: it allocates one method table per class
// (as a heap array of function pointers, one per vtable slot) and stores
// its address into that class's reserved global register, so that later
// `new C()` expressions can copy the table pointer straight out of vgFor[c]
// into the new instance's header word.
func lowerInit(sym *sem.SymbolTable, classes []*sem.Class, vgFor map[*sem.Class]tac.Reg) *tac.Block {
	c := &ctx{sym: sym, block: tac.NewBlock("INIT"), vgFor: vgFor}

	for _, class := range classes {
		slots := class.MethodLayout()

		rSize := c.freshR()
		c.emit(tac.OpImmed(rSize, len(slots)))
		rTable := c.freshR()
		c.emit(tac.OpMalloc(rTable, rSize))

		for i, name := range slots {
			impl := class.GetAnyMethod(name)
			rOff := c.freshR()
			c.emit(tac.OpImmed(rOff, i))
			rSlot := c.freshR()
			c.emit(tac.OpBinop(tac.Offset, rSlot, rTable, rOff))
			rFn := c.freshR()
			c.emit(tac.OpAddrof(rFn, methodLabel(impl)))
			c.emit(tac.OpStore(rSlot, rFn))
		}

		c.emit(tac.OpMov(vgFor[class], rTable))
	}

	c.emit(tac.OpRet())
	return c.block
}

func lowerMain(sym *sem.SymbolTable, main *ast.MainClass, vgFor map[*sem.Class]tac.Reg, vgReturn tac.Reg) *tac.Block {
	c := &ctx{
		sym:      sym,
		block:    tac.NewBlock("MAIN"),
		class:    sym.Get(main.Name),
		locals:   map[string]tac.Reg{},
		vgFor:    vgFor,
		vgReturn: vgReturn,
	}
	c.lowerStmt(main.Body)
	c.emit(tac.OpRet())
	return c.block
}

func lowerMethod(sym *sem.SymbolTable, class *sem.Class, md *ast.MethodDecl, vgFor map[*sem.Class]tac.Reg, vgReturn tac.Reg) *tac.Block {
	m := class.GetOwnMethod(md.Name)

	c := &ctx{
		sym:      sym,
		block:    tac.NewBlock(methodLabel(m)),
		class:    class,
		locals:   map[string]tac.Reg{},
		vgFor:    vgFor,
		vgReturn: vgReturn,
	}

	// vl[0] is always `this`; parameters follow at vl[1..], then locals.
	vl := 1
	for _, name := range m.Params() {
		c.locals[name] = tac.VLReg(vl)
		vl++
	}
	for _, name := range m.Locals() {
		c.locals[name] = tac.VLReg(vl)
		vl++
	}

	for _, stmt := range md.Body {
		c.lowerStmt(stmt)
	}

	rRet := c.lowerExpr(md.ReturnExpr)
	c.emit(tac.OpMov(vgReturn, rRet))
	c.emit(tac.OpRet())

	return c.block
}

// methodLabel is the callable block name for a method: "Owner.Name",
// matching the C backend's mangling of "." to "_".
func methodLabel(m *sem.Method) string {
	return m.Owner.Name + "." + m.Name
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
