package tac

import (
	"fmt"
	"strings"
)

// Repr returns the full textual representation of a block list, one
// function-shaped section per block, for use by the compiler's debug
// dumping flags.
func Repr(blocks []*Block) string {
	sb := strings.Builder{}
	for _, b := range blocks {
		sb.WriteString(b.Repr())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Repr returns the textual representation of a single block.
func (b *Block) Repr() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%s: // maxVL=%d maxR=%d maxVG=%d maxParams=%d\n",
		b.Label(), b.maxVL, b.maxR, b.maxVG, b.maxParams)

	for i, op := range b.ops {
		if i == 0 {
			continue // already printed as the block header
		}
		sb.WriteString("    ")
		sb.WriteString(op.Repr())
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Repr returns the textual representation of a single operation.
func (op Op) Repr() string {
	switch op.Code {
	case MOV:
		return fmt.Sprintf("MOV %s, %s", op.R1, op.R2)
	case IMMED:
		return fmt.Sprintf("IMMED %s, %d", op.R1, op.N)
	case LOAD:
		return fmt.Sprintf("LOAD %s, %s", op.R1, op.R2)
	case STORE:
		return fmt.Sprintf("STORE %s, %s", op.R1, op.R2)
	case BINOP:
		return fmt.Sprintf("BINOP %s, %s, %s, %s", op.BinOp, op.R1, op.R2, op.R3)
	case PARAM:
		return fmt.Sprintf("PARAM %s", op.R1)
	case CALL:
		return fmt.Sprintf("CALL %s", op.R1)
	case RET:
		return "RET"
	case LABEL:
		return fmt.Sprintf("%s:", op.Label)
	case JMP:
		return fmt.Sprintf("JMP %s", op.Label)
	case JZ:
		return fmt.Sprintf("JZ %s, %s", op.R1, op.Label)
	case MALLOC:
		return fmt.Sprintf("MALLOC %s, %s", op.R1, op.R2)
	case READ:
		return fmt.Sprintf("READ %s", op.R1)
	case WRITE:
		return fmt.Sprintf("WRITE %s", op.R1)
	case ADDROF:
		return fmt.Sprintf("ADDROF %s, %s", op.R1, op.Label)
	case NOP:
		return "NOP"
	default:
		return "???"
	}
}
