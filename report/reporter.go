package report

import "sync"

// Reporter collects and displays diagnostics produced while compiling a
// MiniJava program. It is synchronized so that it can be safely shared
// between the compiling goroutine and a CLI phase spinner.
type Reporter struct {
	m *sync.Mutex

	logLevel int
	isErr    bool
	errCount int
	warnCount int
}

// Enumeration of log levels.
const (
	LogLevelSilent  = iota // Display nothing.
	LogLevelError          // Errors only.
	LogLevelWarn           // Errors and warnings.
	LogLevelVerbose        // Everything (default).
)

// rep is the global reporter instance used by the package-level Report*
// functions. It must be initialized with InitReporter before use.
var rep *Reporter

// InitReporter (re)initializes the global reporter at the given log level.
// Safe to call multiple times — e.g. once per compiled file in a test suite.
func InitReporter(logLevel int) {
	rep = &Reporter{m: &sync.Mutex{}, logLevel: logLevel}
}

func init() {
	// Ensure there is always a usable reporter even if a caller forgets to
	// call InitReporter (e.g. in a unit test that only exercises one stage).
	InitReporter(LogLevelVerbose)
}

// AnyErrors reports whether any compile error has been recorded since the
// reporter was last initialized.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()
	return rep.isErr
}

// Counts returns the number of errors and warnings recorded so far.
func Counts() (errors, warnings int) {
	rep.m.Lock()
	defer rep.m.Unlock()
	return rep.errCount, rep.warnCount
}
