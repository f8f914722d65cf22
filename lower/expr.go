package lower

import (
	"github.com/jounaidr/babycino-compiler/ast"
	"github.com/jounaidr/babycino-compiler/report"
	"github.com/jounaidr/babycino-compiler/tac"
)

// lowerExpr lowers e, leaving its value in the returned register. Most
// cases allocate a fresh scratch register; a few (identifier reads of a
// local/parameter, and `this`) return the vl slot directly since its value
// is already sitting where it needs to be.
func (c *ctx) lowerExpr(e ast.Expr) tac.Reg {
	switch e := e.(type) {
	case *ast.IntLit:
		r := c.freshR()
		c.emit(tac.OpImmed(r, e.Value))
		return r

	case *ast.BoolLit:
		r := c.freshR()
		n := 0
		if e.Value {
			n = 1
		}
		c.emit(tac.OpImmed(r, n))
		return r

	case *ast.This:
		return thisReg

	case *ast.NewIntArray:
		rSize := c.lowerExpr(e.Size)
		rOne := c.freshR()
		c.emit(tac.OpImmed(rOne, 1))
		rAlloc := c.freshR()
		c.emit(tac.OpBinop(tac.Add, rAlloc, rSize, rOne))
		rPtr := c.freshR()
		c.emit(tac.OpMalloc(rPtr, rAlloc))
		c.emit(tac.OpStore(rPtr, rSize)) // word 0 holds the array length
		return rPtr

	case *ast.NewObject:
		class := c.sym.Get(e.ClassName)
		size := 1 + len(class.FieldLayout())
		rSize := c.freshR()
		c.emit(tac.OpImmed(rSize, size))
		rPtr := c.freshR()
		c.emit(tac.OpMalloc(rPtr, rSize))
		c.emit(tac.OpStore(rPtr, c.vgFor[class])) // word 0 holds the vtable pointer
		return rPtr

	case *ast.Not:
		rOperand := c.lowerExpr(e.Operand)
		rOne := c.freshR()
		c.emit(tac.OpImmed(rOne, 1))
		rResult := c.freshR()
		c.emit(tac.OpBinop(tac.Sub, rResult, rOne, rOperand))
		return rResult

	case *ast.Paren:
		return c.lowerExpr(e.Inner)

	case *ast.ArrayLength:
		rArr := c.lowerExpr(e.Array)
		rLen := c.freshR()
		c.emit(tac.OpLoad(rLen, rArr))
		return rLen

	case *ast.ArrayIndex:
		rAddr := c.arrayElemAddr(e.Array, e.Index)
		rVal := c.freshR()
		c.emit(tac.OpLoad(rVal, rAddr))
		return rVal

	case *ast.BinOp:
		return c.lowerBinOp(e)

	case *ast.MethodCall:
		return c.lowerMethodCall(e)

	case *ast.IdentifierUse:
		return c.lowerIdentifierRead(e.Name)

	default:
		report.ICE("unhandled expression node %T during lowering", e)
		panic("unreachable")
	}
}

func (c *ctx) lowerBinOp(e *ast.BinOp) tac.Reg {
	rLeft := c.lowerExpr(e.Left)
	rRight := c.lowerExpr(e.Right)
	rResult := c.freshR()

	var op tac.BinOp
	switch e.Op {
	case "+":
		op = tac.Add
	case "-":
		op = tac.Sub
	case "*":
		op = tac.Mul
	case "<":
		op = tac.Lt
	case "&&":
		// Both operands are always evaluated (no short-circuiting); on
		// 0/1-valued booleans, multiplication is exactly logical AND.
		op = tac.Mul
	default:
		report.ICE("unhandled binary operator %q during lowering", e.Op)
	}

	c.emit(tac.OpBinop(op, rResult, rLeft, rRight))
	return rResult
}

// lowerMethodCall emits the calling sequence (this, then each argument, as
// PARAM ops) and dispatches through the static receiver class's vtable,
// loading the live vtable pointer from the receiver's own header word so
// that an overriding implementation in a more-derived runtime class is
// still the one invoked.
func (c *ctx) lowerMethodCall(e *ast.MethodCall) tac.Reg {
	rRecv := c.lowerExpr(e.Receiver)
	c.emit(tac.OpParam(rRecv))

	for _, arg := range e.Args {
		rArg := c.lowerExpr(arg)
		c.emit(tac.OpParam(rArg))
	}

	staticType, ok := c.sym.ReceiverType(e)
	if !ok {
		report.ICE("no static receiver type recorded for method call to %s", e.Method)
	}
	slot := indexOf(staticType.Object().MethodLayout(), e.Method)
	if slot < 0 {
		report.ICE("method %s not found in vtable layout of %s", e.Method, staticType.Object().Name)
	}

	rVtable := c.freshR()
	c.emit(tac.OpLoad(rVtable, rRecv))
	rOffset := c.freshR()
	c.emit(tac.OpImmed(rOffset, slot))
	rSlotAddr := c.freshR()
	c.emit(tac.OpBinop(tac.Offset, rSlotAddr, rVtable, rOffset))
	rFn := c.freshR()
	c.emit(tac.OpLoad(rFn, rSlotAddr))
	c.emit(tac.OpCall(rFn))

	rResult := c.freshR()
	c.emit(tac.OpMov(rResult, c.vgReturn))
	return rResult
}

func (c *ctx) lowerIdentifierRead(name string) tac.Reg {
	if reg, ok := c.locals[name]; ok {
		return reg
	}
	return c.loadField(name)
}

// loadField loads the value of a field of `this` into a fresh register.
func (c *ctx) loadField(name string) tac.Reg {
	rAddr := c.fieldAddr(name)
	rVal := c.freshR()
	c.emit(tac.OpLoad(rVal, rAddr))
	return rVal
}

// fieldAddr computes the address of field name on `this` into a fresh
// register, via pointer-offset arithmetic from the instance header.
func (c *ctx) fieldAddr(name string) tac.Reg {
	offset := 1 + indexOf(c.class.FieldLayout(), name)
	rOffset := c.freshR()
	c.emit(tac.OpImmed(rOffset, offset))
	rAddr := c.freshR()
	c.emit(tac.OpBinop(tac.Offset, rAddr, thisReg, rOffset))
	return rAddr
}

// arrayElemAddr computes the address of arrayExpr[indexExpr], accounting
// for the array's length header occupying word 0.
func (c *ctx) arrayElemAddr(arrayExpr, indexExpr ast.Expr) tac.Reg {
	rArr := c.lowerExpr(arrayExpr)
	rIdx := c.lowerExpr(indexExpr)
	rOne := c.freshR()
	c.emit(tac.OpImmed(rOne, 1))
	rRealIdx := c.freshR()
	c.emit(tac.OpBinop(tac.Add, rRealIdx, rIdx, rOne))
	rAddr := c.freshR()
	c.emit(tac.OpBinop(tac.Offset, rAddr, rArr, rRealIdx))
	return rAddr
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
