package report

import (
	"fmt"
	"os"
)

// CompileError is a user-facing compile error tied to a span of source text.
// Parser and lexer functions raise these with Raise and let them propagate
// as panics up to the nearest CatchErrors boundary, which converts them into
// a reported diagnostic. Stages that already have a clear recovery strategy
// (the type checker, the symbol builder) call ReportError directly instead
// of panicking, so that one bad class does not abort the whole pass.
type CompileError struct {
	Message string
	Span    *Span
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise creates a new CompileError. Callers that want parsing to unwind to
// the nearest recovery point should `panic(report.Raise(...))`.
func Raise(span *Span, format string, args ...interface{}) *CompileError {
	return &CompileError{Message: fmt.Sprintf(format, args...), Span: span}
}

// -----------------------------------------------------------------------------

// ReportError records a user compile error: undeclared variable, unknown
// class, arity mismatch, and so on. Compilation continues so that further
// errors in the same program can be collected and reported together.
func ReportError(src *Source, span *Span, format string, args ...interface{}) {
	rep.m.Lock()
	rep.isErr = true
	rep.errCount++
	logLevel := rep.logLevel
	rep.m.Unlock()

	if logLevel > LogLevelSilent {
		displayDiagnostic("error", src, span, fmt.Sprintf(format, args...))
	}
}

// ReportWarning records a non-fatal compile warning.
func ReportWarning(src *Source, span *Span, format string, args ...interface{}) {
	rep.m.Lock()
	rep.warnCount++
	rep.m.Unlock()

	if rep.logLevel >= LogLevelWarn {
		displayDiagnostic("warning", src, span, fmt.Sprintf(format, args...))
	}
}

// ICE reports an internal compiler error: a violated invariant such as an
// unknown TAC opcode reaching the backend, or a method the type checker
// accepted that the lowering stage cannot find. These are compiler bugs, not
// user errors, and always abort the process immediately.
func ICE(format string, args ...interface{}) {
	displayICE(fmt.Sprintf(format, args...))
	os.Exit(2)
}

// Die converts any recorded user errors into a terminating error, mirroring
// the source compiler's `die()` method: compilation collects errors across
// the symbol builder and type checker, then aborts here before lowering
// runs. Returns nil if no errors were recorded.
func Die() error {
	if AnyErrors() {
		errs, warns := Counts()
		return fmt.Errorf("compilation failed: %d error(s), %d warning(s)", errs, warns)
	}
	return nil
}

// -----------------------------------------------------------------------------

// CatchErrors recovers a panicked CompileError (raised via Raise) and
// reports it through the normal diagnostic sink instead of crashing the
// process. Any other panic value is treated as an internal compiler error.
// This must always be deferred, once per independently-recoverable unit of
// work (e.g. once per top-level class declaration).
func CatchErrors(src *Source) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			ReportError(src, cerr.Span, "%s", cerr.Message)
		} else if err, ok := x.(error); ok {
			ReportError(src, nil, "%s", err.Error())
		} else {
			ICE("%v", x)
		}
	}
}
