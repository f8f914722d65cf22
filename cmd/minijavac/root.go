// Command minijavac is the compiler driver: a cobra-based CLI that reads a
// MiniJava source file, runs it through the four-stage pipeline, and
// writes the generated C translation unit to stdout or a file, with
// colorized phase-timing output and optional stage dumps for debugging.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jounaidr/babycino-compiler/ast"
	"github.com/jounaidr/babycino-compiler/backend"
	"github.com/jounaidr/babycino-compiler/check"
	"github.com/jounaidr/babycino-compiler/config"
	"github.com/jounaidr/babycino-compiler/lower"
	"github.com/jounaidr/babycino-compiler/report"
	"github.com/jounaidr/babycino-compiler/sem"
	"github.com/jounaidr/babycino-compiler/syntax"
	"github.com/jounaidr/babycino-compiler/tac"
)

const version = "0.1.0"

var (
	outputPath string
	logLevel   string
	dumpSym    bool
	dumpTypes  bool
	dumpTAC    bool
	noSpinners bool
)

// NewRootCmd builds the minijavac root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "minijavac [file]",
		Short:   "minijavac compiles MiniJava source to C",
		Version: version,
		Args:    cobra.ExactArgs(1),

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: runCompile,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write generated C to this path instead of stdout")
	rootCmd.Flags().StringVar(&logLevel, "loglevel", "", "silent, error, warn, or verbose (default: project config, then verbose)")
	rootCmd.Flags().BoolVar(&dumpSym, "dump-sym", false, "dump the symbol table after the symbol builder runs")
	rootCmd.Flags().BoolVar(&dumpTypes, "dump-types", false, "note each method-call node's resolved static receiver type after type checking")
	rootCmd.Flags().BoolVar(&dumpTAC, "dump-tac", false, "dump the lowered TAC blocks before backend codegen")
	rootCmd.Flags().BoolVar(&noSpinners, "no-spinners", false, "disable colorized phase-timing output (e.g. when piping stderr)")

	return rootCmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	srcPath := args[0]

	cfg, err := config.Load(filepath.Dir(srcPath))
	if err != nil {
		return err
	}
	report.InitReporter(resolveLogLevel(cfg))

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}
	src := report.NewSource(srcPath, string(raw))

	ph := newPhaseRunner()

	var prog *ast.Program
	func() {
		defer report.CatchErrors(src)
		ph.run("parsing", func() {
			prog = syntax.Parse(src)
		})
	}()
	if err := report.Die(); err != nil {
		return err
	}

	var symtab *sem.SymbolTable
	ph.run("building symbol table", func() {
		symtab = sem.BuildSymbolTable(src, prog)
	})
	if err := report.Die(); err != nil {
		return err
	}
	if dumpSym {
		dumpSymbolTable(cmd.OutOrStdout(), prog, symtab)
	}

	ph.run("type checking", func() {
		check.Check(src, symtab, prog)
	})
	if err := report.Die(); err != nil {
		return err
	}
	if dumpTypes {
		dumpReceiverTypes(cmd.OutOrStdout(), prog, symtab)
	}

	var blocks []*tac.Block
	ph.run("lowering to TAC", func() {
		blocks = lower.Lower(symtab, prog)
	})
	if dumpTAC {
		fmt.Fprint(cmd.OutOrStdout(), tac.Repr(blocks))
	}

	var c string
	ph.run("generating C", func() {
		c = backend.Generate(blocks, cfg.AnnotateC)
	})

	out := cfg.OutputPath
	if outputPath != "" {
		out = outputPath
	}
	if out == "" {
		fmt.Fprint(cmd.OutOrStdout(), c)
		return nil
	}
	return os.WriteFile(out, []byte(c), 0o644)
}

func resolveLogLevel(cfg *config.Config) int {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	switch level {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}

// phaseRunner prints a colorized start/stop indicator around each pipeline
// phase, disabled by --no-spinners so non-interactive output (piped stderr,
// CI logs) stays clean.
type phaseRunner struct {
	enabled bool
}

func newPhaseRunner() *phaseRunner {
	return &phaseRunner{enabled: !noSpinners}
}

func (p *phaseRunner) run(label string, fn func()) {
	if !p.enabled {
		fn()
		return
	}
	spinner, _ := pterm.DefaultSpinner.Start(label)
	fn()
	spinner.Success(label)
}
