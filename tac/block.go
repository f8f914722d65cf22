package tac

// Block is an ordered sequence of TAC operations corresponding to one
// method (or the synthetic INIT/MAIN entry points). The first op of every
// block is always a LABEL naming it. A block tracks the register-space
// maxima it uses so the backend can size the C locals it declares for
// that block, plus the largest contiguous run of PARAM ops so the backend
// can size the global param[] array across every block in the program.
type Block struct {
	ops []Op

	maxVL      int
	maxR       int
	maxVG      int
	maxParams  int
	curParams  int
}

// NewBlock creates a block and appends its leading label.
func NewBlock(label string) *Block {
	b := &Block{}
	b.Append(OpLabel(label))
	return b
}

// Label returns the name this block was created with, or "" if the block
// is empty or does not start with a LABEL (which should never happen for a
// block built through NewBlock).
func (b *Block) Label() string {
	if len(b.ops) == 0 || b.ops[0].Code != LABEL {
		return ""
	}
	return b.ops[0].Label
}

// Len returns the number of operations in the block.
func (b *Block) Len() int { return len(b.ops) }

// Ops returns the block's operations in order.
func (b *Block) Ops() []Op { return b.ops }

// Append adds an operation to the end of the block, folding its registers
// into the block's running maxima. A CALL op resets the contiguous PARAM
// run (matching the C runtime, which resets next_param to 0 on function
// entry, so a run only needs to cover the params pushed for one call).
func (b *Block) Append(op Op) {
	b.ops = append(b.ops, op)

	for _, r := range []struct {
		reg Reg
		has bool
	}{{op.R1, op.HasR1}, {op.R2, op.HasR2}, {op.R3, op.HasR3}} {
		if !r.has {
			continue
		}
		switch r.reg.Space {
		case VL:
			if r.reg.Index > b.maxVL {
				b.maxVL = r.reg.Index
			}
		case R:
			if r.reg.Index > b.maxR {
				b.maxR = r.reg.Index
			}
		case VG:
			if r.reg.Index > b.maxVG {
				b.maxVG = r.reg.Index
			}
		}
	}

	switch op.Code {
	case PARAM:
		b.curParams++
		if b.curParams > b.maxParams {
			b.maxParams = b.curParams
		}
	case CALL:
		b.curParams = 0
	}
}

// MaxVL returns the highest "vl" index referenced in the block.
func (b *Block) MaxVL() int { return b.maxVL }

// MaxR returns the highest scratch register index referenced in the block.
func (b *Block) MaxR() int { return b.maxR }

// MaxVG returns the highest global register index referenced in the block.
func (b *Block) MaxVG() int { return b.maxVG }

// CountParam returns the largest number of PARAM ops pushed for any single
// call within the block.
func (b *Block) CountParam() int { return b.maxParams }
