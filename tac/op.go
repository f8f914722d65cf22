// Package tac defines the three-address code intermediate representation
// the lowering stage produces and the C backend consumes: one tagged Op
// struct per operation (not SSA), whose opcode decides which of its
// register, constant and label fields are populated, kept organized into
// per-method Blocks so that the backend can emit one C
// function per block.
package tac

// Opcode is the closed set of TAC operations.
type Opcode int

const (
	MOV    Opcode = iota // r1 = r2
	IMMED                // r1.n = N
	LOAD                 // r1 = *(r2.ptr)
	STORE                // *(r1.ptr) = r2
	BINOP                // r1.n = r2.n <op> r3.n, or offset pointer arithmetic
	PARAM                // param[next_param++] = r1
	CALL                 // (*(r1.f))()
	RET                  // return
	LABEL                // L:
	JMP                  // goto L
	JZ                   // if (r1.n == 0) goto L
	MALLOC               // r1.ptr = calloc(r2.n, sizeof(word))
	READ                 // unused by this compiler; reserved for parity with the machine model
	WRITE                // printf("%d\n", r1)
	ADDROF               // r1.f = &L
	NOP
)

func (op Opcode) String() string {
	switch op {
	case MOV:
		return "MOV"
	case IMMED:
		return "IMMED"
	case LOAD:
		return "LOAD"
	case STORE:
		return "STORE"
	case BINOP:
		return "BINOP"
	case PARAM:
		return "PARAM"
	case CALL:
		return "CALL"
	case RET:
		return "RET"
	case LABEL:
		return "LABEL"
	case JMP:
		return "JMP"
	case JZ:
		return "JZ"
	case MALLOC:
		return "MALLOC"
	case READ:
		return "READ"
	case WRITE:
		return "WRITE"
	case ADDROF:
		return "ADDROF"
	case NOP:
		return "NOP"
	default:
		return "?"
	}
}

// BinOp is the sub-opcode BINOP carries, distinguishing arithmetic,
// comparison, and the pointer-offset operator used for array indexing and
// field access.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Lt
	Offset // r1.ptr = r2.ptr + r3.n — pointer arithmetic, not addition of words
)

func (b BinOp) String() string {
	switch b {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Lt:
		return "<"
	case Offset:
		return "offset"
	default:
		return "?"
	}
}

// Reg is a virtual register reference: a kind (local "vl", scratch "r", or
// global "vg") plus an index within that space. Reg is deliberately not a
// string — register-space arithmetic (tracking block maxima) reads the
// Kind/Index pair directly instead of parsing a name like "vl3".
type Reg struct {
	Space RegSpace
	Index int
}

type RegSpace int

const (
	VL RegSpace = iota // method-local "register", spilled to a per-block array in C
	R                  // scratch register, one per block, numbered from 1 (r0 is global)
	VG                 // global register, shared across every block
)

func (r Reg) String() string {
	switch r.Space {
	case VL:
		return regName("vl", r.Index)
	case R:
		if r.Index == 0 {
			return "r0"
		}
		return regName("r", r.Index)
	case VG:
		return regName("vg", r.Index)
	default:
		return "?"
	}
}

func regName(prefix string, index int) string {
	return prefix + itoa(index)
}

// itoa avoids importing strconv solely for this; kept here rather than in
// backend since Reg.String is used by the debug dumper too.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// VLReg, RReg and VGReg construct a register in the local, scratch and
// global spaces respectively.
func VLReg(i int) Reg { return Reg{Space: VL, Index: i} }
func RReg(i int) Reg  { return Reg{Space: R, Index: i} }
func VGReg(i int) Reg { return Reg{Space: VG, Index: i} }

// Op is a single TAC operation: a tagged record with fields populated
// according to Code. Unused fields for a given opcode are left at their
// zero value; the backend's switch over Code decides which fields it
// reads.
type Op struct {
	Code Opcode

	R1, R2, R3 Reg
	HasR1      bool
	HasR2      bool
	HasR3      bool

	N     int
	BinOp BinOp

	Label string
}

// OpLabel is a LABEL operation.
func OpLabel(label string) Op { return Op{Code: LABEL, Label: label} }

// OpMov is r1 = r2.
func OpMov(r1, r2 Reg) Op { return Op{Code: MOV, R1: r1, HasR1: true, R2: r2, HasR2: true} }

// OpImmed is r1.n = n.
func OpImmed(r1 Reg, n int) Op { return Op{Code: IMMED, R1: r1, HasR1: true, N: n} }

// OpLoad is r1 = *(r2.ptr).
func OpLoad(r1, r2 Reg) Op { return Op{Code: LOAD, R1: r1, HasR1: true, R2: r2, HasR2: true} }

// OpStore is *(r1.ptr) = r2.
func OpStore(r1, r2 Reg) Op { return Op{Code: STORE, R1: r1, HasR1: true, R2: r2, HasR2: true} }

// OpBinop is r1.n = r2.n <op> r3.n (or pointer offset, when op is Offset).
func OpBinop(op BinOp, r1, r2, r3 Reg) Op {
	return Op{Code: BINOP, BinOp: op, R1: r1, HasR1: true, R2: r2, HasR2: true, R3: r3, HasR3: true}
}

// OpParam is param[next_param++] = r1.
func OpParam(r1 Reg) Op { return Op{Code: PARAM, R1: r1, HasR1: true} }

// OpCall is (*(r1.f))().
func OpCall(r1 Reg) Op { return Op{Code: CALL, R1: r1, HasR1: true} }

// OpRet is return.
func OpRet() Op { return Op{Code: RET} }

// OpJmp is goto label.
func OpJmp(label string) Op { return Op{Code: JMP, Label: label} }

// OpJz is if (r1.n == 0) goto label.
func OpJz(r1 Reg, label string) Op { return Op{Code: JZ, R1: r1, HasR1: true, Label: label} }

// OpMalloc is r1.ptr = calloc(r2.n, sizeof(word)). calloc zero-fills the
// allocation, which is how fresh objects and arrays get their 0/false/null
// default field and element values.
func OpMalloc(r1, r2 Reg) Op { return Op{Code: MALLOC, R1: r1, HasR1: true, R2: r2, HasR2: true} }

// OpWrite is printf("%d\n", r1).
func OpWrite(r1 Reg) Op { return Op{Code: WRITE, R1: r1, HasR1: true} }

// OpAddrof is r1.f = &label.
func OpAddrof(r1 Reg, label string) Op { return Op{Code: ADDROF, R1: r1, HasR1: true, Label: label} }

// OpNop is a no-op; the backend renders it as an empty statement.
func OpNop() Op { return Op{Code: NOP} }
