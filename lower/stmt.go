package lower

import (
	"github.com/jounaidr/babycino-compiler/ast"
	"github.com/jounaidr/babycino-compiler/report"
	"github.com/jounaidr/babycino-compiler/tac"
)

func (c *ctx) lowerStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Block:
		for _, inner := range s.Stmts {
			c.lowerStmt(inner)
		}

	case *ast.If:
		rCond := c.lowerExpr(s.Cond)
		lElse := c.freshLabel()
		lEnd := c.freshLabel()
		c.emit(tac.OpJz(rCond, lElse))
		c.lowerStmt(s.Then)
		c.emit(tac.OpJmp(lEnd))
		c.emit(tac.OpLabel(lElse))
		c.lowerStmt(s.Else)
		c.emit(tac.OpLabel(lEnd))

	case *ast.While:
		lTop := c.freshLabel()
		lEnd := c.freshLabel()
		c.emit(tac.OpLabel(lTop))
		rCond := c.lowerExpr(s.Cond)
		c.emit(tac.OpJz(rCond, lEnd))
		c.lowerStmt(s.Body)
		c.emit(tac.OpJmp(lTop))
		c.emit(tac.OpLabel(lEnd))

	case *ast.DoWhile:
		lTop := c.freshLabel()
		c.emit(tac.OpLabel(lTop))
		c.lowerStmt(s.Body)
		rCond := c.lowerExpr(s.Cond)
		lEnd := c.freshLabel()
		c.emit(tac.OpJz(rCond, lEnd))
		c.emit(tac.OpJmp(lTop))
		c.emit(tac.OpLabel(lEnd))

	case *ast.Print:
		rVal := c.lowerExpr(s.Value)
		c.emit(tac.OpWrite(rVal))

	case *ast.Assign:
		rVal := c.lowerExpr(s.Value)
		if reg, ok := c.locals[s.Name]; ok {
			c.emit(tac.OpMov(reg, rVal))
			return
		}
		rAddr := c.fieldAddr(s.Name)
		c.emit(tac.OpStore(rAddr, rVal))

	case *ast.ArrayAssign:
		rArrAddr := c.arrayAssignTarget(s.Name, s.Index)
		rVal := c.lowerExpr(s.Value)
		c.emit(tac.OpStore(rArrAddr, rVal))

	default:
		report.ICE("unhandled statement node %T during lowering", s)
	}
}

// arrayAssignTarget resolves the `id` of an `id[index] = value` statement
// (a local, parameter, or field holding an int[]) and computes the address
// of its index-th element.
func (c *ctx) arrayAssignTarget(name string, indexExpr ast.Expr) tac.Reg {
	var rArr tac.Reg
	if reg, ok := c.locals[name]; ok {
		rArr = reg
	} else {
		rArr = c.loadField(name)
	}

	rIdx := c.lowerExpr(indexExpr)
	rOne := c.freshR()
	c.emit(tac.OpImmed(rOne, 1))
	rRealIdx := c.freshR()
	c.emit(tac.OpBinop(tac.Add, rRealIdx, rIdx, rOne))
	rAddr := c.freshR()
	c.emit(tac.OpBinop(tac.Offset, rAddr, rArr, rRealIdx))
	return rAddr
}
