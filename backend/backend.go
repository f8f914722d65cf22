// Package backend implements the C Backend stage: it emits a single,
// self-contained C translation unit from a TAC block list. It is a direct
// Go translation of the original compiler's CGenerator, down to the
// `union ilword` runtime word type and the calloc-based zero-initializing allocator
// that gives every fresh object and array its default field/element
// values for free.
package backend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jounaidr/babycino-compiler/report"
	"github.com/jounaidr/babycino-compiler/tac"
)

// Generate renders blocks as a complete C source file. When annotate is
// true, each C statement is preceded by a comment holding the TAC operation
// it was generated from, for debugging the generated code against the IR
// that produced it.
func Generate(blocks []*tac.Block, annotate bool) string {
	var sb strings.Builder

	maxParam := maxParams(blocks)
	maxVG := maxVGs(blocks)

	sb.WriteString("#include <stdio.h>\n")
	sb.WriteString("#include <stdlib.h>\n\n")

	sb.WriteString("union ilword {\n")
	sb.WriteString("    int n;\n")
	sb.WriteString("    union ilword* ptr;\n")
	sb.WriteString("    void(*f)();\n")
	sb.WriteString("};\n")
	sb.WriteString("typedef union ilword word;\n\n")

	fmt.Fprintf(&sb, "word param[%d];\n", maxParam)
	sb.WriteString("int next_param = 0;\n\n")

	sb.WriteString("word r0 = {0};\n\n")

	for n := 0; n <= maxVG; n++ {
		fmt.Fprintf(&sb, "word vg%d = {0};\n", n)
	}
	sb.WriteRune('\n')

	for _, block := range blocks {
		if block.Len() == 0 {
			continue
		}
		fmt.Fprintf(&sb, "void %s();\n", mangle(block.Label()))
	}
	sb.WriteRune('\n')

	sb.WriteString("int main() {\n")
	sb.WriteString("    INIT();\n")
	sb.WriteString("    MAIN();\n")
	sb.WriteString("    return 0;\n")
	sb.WriteString("}\n\n")

	for _, block := range blocks {
		if block.Len() == 0 {
			continue
		}
		writeBlock(&sb, block, maxParam, annotate)
	}

	return sb.String()
}

func writeBlock(sb *strings.Builder, block *tac.Block, maxParam int, annotate bool) {
	fmt.Fprintf(sb, "void %s() {\n", mangle(block.Label()))

	fmt.Fprintf(sb, "    word vl[%d];\n", block.MaxVL()+1)
	for n := block.MaxR(); n >= 1; n-- {
		fmt.Fprintf(sb, "    word r%d;\n", n)
	}
	sb.WriteString("    int p;\n")

	fmt.Fprintf(sb, "    for(p = 0; p <= %d && p < %d; p++) {\n", block.MaxVL(), maxParam)
	sb.WriteString("        vl[p] = param[p];\n")
	sb.WriteString("    }\n")
	sb.WriteString("    next_param = 0;\n")

	for i, op := range block.Ops() {
		if i == 0 {
			continue // the leading LABEL is the function name, already emitted above
		}
		if annotate {
			fmt.Fprintf(sb, "    // %s\n", op.Repr())
		}
		sb.WriteString(opToC(op))
		sb.WriteRune('\n')
	}

	sb.WriteString("}\n\n")
}

// mangle makes an identifier a valid, collision-free C identifier.
func mangle(id string) string {
	id = strings.ReplaceAll(id, "_", "__")
	id = strings.ReplaceAll(id, ".", "_")
	id = strings.ReplaceAll(id, "@", "_")
	return id
}

// maxParams finds the largest number of times PARAM is used in any
// contiguous call sequence across every block, which sizes the shared
// param[] global.
func maxParams(blocks []*tac.Block) int {
	params := 1
	for _, b := range blocks {
		if b.CountParam() > params {
			params = b.CountParam()
		}
	}
	return params
}

// maxVGs finds the highest "vg" index used in any block.
func maxVGs(blocks []*tac.Block) int {
	vgs := -1
	for _, b := range blocks {
		if b.MaxVG() > vgs {
			vgs = b.MaxVG()
		}
	}
	return vgs
}

// regToVar turns a register reference into its corresponding C variable
// expression: "r"/"vg" registers are plain globals, "vl" registers index
// into the function's local array.
func regToVar(r tac.Reg) string {
	switch r.Space {
	case tac.VL:
		return "vl[" + strconv.Itoa(r.Index) + "]"
	default:
		return r.String()
	}
}

// opToC translates a single TAC operation into one C statement. The main
// difficulty, as in the original generator, is using the correct member of
// the word union (n, ptr, or f) for each opcode's operands.
func opToC(op tac.Op) string {
	r1 := regToVar(op.R1)
	r2 := regToVar(op.R2)
	r3 := regToVar(op.R3)
	label := mangle(op.Label)

	switch op.Code {
	case tac.MOV:
		return "    " + r1 + " = " + r2 + ";"
	case tac.IMMED:
		return "    " + r1 + ".n = " + strconv.Itoa(op.N) + ";"
	case tac.LOAD:
		return "    " + r1 + " = *(" + r2 + ".ptr);"
	case tac.STORE:
		return "    *(" + r1 + ".ptr) = " + r2 + ";"
	case tac.BINOP:
		if op.BinOp == tac.Offset {
			return "    " + r1 + ".ptr = " + r2 + ".ptr + " + r3 + ".n;"
		}
		return "    " + r1 + ".n = " + r2 + ".n " + op.BinOp.String() + " " + r3 + ".n;"
	case tac.PARAM:
		return "    param[next_param++] = " + r1 + ";"
	case tac.CALL:
		return "    (*(" + r1 + ".f))();"
	case tac.RET:
		return "    return;"
	case tac.LABEL:
		return label + ":"
	case tac.JMP:
		return "    goto " + label + ";"
	case tac.JZ:
		return "    if (" + r1 + ".n == 0) goto " + label + ";"
	case tac.MALLOC:
		// calloc zero-fills the allocation, which is how fresh objects and
		// arrays get their 0/false/null default field and element values.
		return "    " + r1 + ".ptr = calloc(" + r2 + ".n, sizeof(word));"
	case tac.READ:
		return "    " // never generated for MiniJava programs
	case tac.WRITE:
		return "    printf(\"%d\\n\", " + r1 + ");"
	case tac.ADDROF:
		return "    " + r1 + ".f = &" + label + ";"
	case tac.NOP:
		return "    "
	default:
		report.ICE("unknown TAC opcode %s reached the C backend", op.Code)
		return ""
	}
}
