// Package config loads the compiler's optional project configuration file,
// minijavac.toml. Absence of the file is not an error: compilation proceeds
// with defaults, matching how a one-shot CLI compiler is normally invoked
// (with no project file at all, most of the time).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// FileName is the name of the project configuration file this package
// looks for in a given directory.
const FileName = "minijavac.toml"

// tomlConfig is the raw shape of minijavac.toml.
type tomlConfig struct {
	Output   *tomlOutput `toml:"output"`
	LogLevel string      `toml:"log-level"`
}

type tomlOutput struct {
	Path      string `toml:"path"`
	AnnotateC bool   `toml:"annotate"`
}

// Config is the resolved build configuration, after defaults have been
// applied to whatever minijavac.toml did (or did not) specify.
type Config struct {
	// OutputPath is where the generated C file is written. Empty means
	// stdout.
	OutputPath string

	// AnnotateC controls whether the backend interleaves TAC op comments
	// above the C statements they produced, for debugging generated code.
	AnnotateC bool

	// LogLevel is the default report.LogLevel* the CLI uses absent an
	// explicit --loglevel flag.
	LogLevel string
}

// Default returns the configuration a project with no minijavac.toml gets.
func Default() *Config {
	return &Config{LogLevel: "verbose"}
}

// Load looks for minijavac.toml in dir and merges it over Default(). A
// missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	tc := &tomlConfig{}
	if err := toml.Unmarshal(data, tc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if tc.Output != nil {
		cfg.OutputPath = tc.Output.Path
		cfg.AnnotateC = tc.Output.AnnotateC
	}
	if tc.LogLevel != "" {
		cfg.LogLevel = tc.LogLevel
	}

	return cfg, nil
}
