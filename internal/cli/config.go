package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds optional defaults loaded from a YAML config file.
// Flags always win over config values.
type Config struct {
	// LogDir is the default directory containing tape .log files.
	LogDir string `yaml:"log_dir"`

	// Archive is the default path of the SQLite tape archive.
	Archive string `yaml:"archive"`

	// Format is the default output format (json|text).
	Format string `yaml:"format"`
}

// LoadConfig reads a YAML config file. A missing file yields a zero
// config with no error, so the flag defaults apply; any other read or
// parse failure is surfaced.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
