package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Colors used for the different classes of diagnostic message, following a
// foreground/background pairing convention per severity.
var (
	errorFG = pterm.NewStyle(pterm.FgRed)
	errorBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnFG  = pterm.NewStyle(pterm.FgYellow)
	warnBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoFG  = pterm.NewStyle(pterm.FgLightGreen)
)

// displayICE displays an internal compiler error.
func displayICE(message string) {
	errorBG.Println(" internal compiler error ")
	errorFG.Println(message)
	fmt.Println("this indicates a bug in the compiler, not in the input program")
}

// displayDiagnostic prints a labeled compile error or warning, followed by
// the offending source text with caret underlining, if a span is available.
func displayDiagnostic(label string, src *Source, span *Span, message string) {
	style, bg := errorFG, errorBG
	if label == "warning" {
		style, bg = warnFG, warnBG
	}

	path := "<unknown>"
	if src != nil {
		path = src.Path
	}

	if span == nil {
		bg.Print(" " + label + " ")
		fmt.Print(" ")
		infoFG.Print(path)
		fmt.Println(": " + message)
		return
	}

	bg.Print(" " + label + " ")
	fmt.Print(" ")
	infoFG.Print(fmt.Sprintf("%s:%d:%d", path, span.StartLine+1, span.StartCol+1))
	fmt.Println(": " + message)

	if src != nil {
		displaySourceText(src, span, style)
	}

	fmt.Println()
}

// displaySourceText prints the lines of src.Text covered by span with caret
// underlining beneath the erroneous range.
func displaySourceText(src *Source, span *Span, carets *pterm.Style) {
	allLines := strings.Split(src.Text, "\n")

	var lines []string
	for ln := span.StartLine; ln <= span.EndLine && ln < len(allLines); ln++ {
		lines = append(lines, strings.ReplaceAll(allLines[ln], "\t", "    "))
	}

	if len(lines) == 0 {
		return
	}

	minIndent := math.MaxInt32
	for _, line := range lines {
		indent := 0
		for _, c := range line {
			if c == ' ' {
				indent++
			} else {
				break
			}
		}
		if indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent == math.MaxInt32 {
		minIndent = 0
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmt := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmt, i+span.StartLine+1)

		trimmed := line
		if minIndent < len(line) {
			trimmed = line[minIndent:]
		}
		fmt.Println(trimmed)

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		var prefix int
		if i == 0 {
			prefix = span.StartCol - minIndent
			if prefix < 0 {
				prefix = 0
			}
		}

		var suffix int
		if i == len(lines)-1 {
			suffix = len(line) - span.EndCol
			if suffix < 0 {
				suffix = 0
			}
		}

		caretCount := len(line) - suffix - prefix - minIndent
		if caretCount < 1 {
			caretCount = 1
		}

		fmt.Print(strings.Repeat(" ", prefix))
		carets.Println(strings.Repeat("^", caretCount))
	}
}
