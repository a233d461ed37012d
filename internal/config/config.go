// Package config loads dep-check settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/ethanolivertroy/dep-check/pkg/errors"
)

// Config holds configuration for the checker
type Config struct {
	// Project roots to check
	ProjectRoots []string `yaml:"project_roots,omitempty" toml:"project_roots" validate:"omitempty,dive,required"`

	// Ecosystems to check; empty means every ecosystem with a manifest present
	Ecosystems []string `yaml:"ecosystems,omitempty" toml:"ecosystems" validate:"omitempty,dive,ecosystem"`

	// InstallPaths lists alternate install directories per ecosystem, searched
	// after the conventional one (e.g. a sibling node_modules)
	InstallPaths map[string][]string `yaml:"install_paths,omitempty" toml:"install_paths" validate:"omitempty,dive,keys,ecosystem,endkeys,dive,required"`

	// Manifest settings
	IncludeDev      bool `yaml:"include_dev" toml:"include_dev"`
	IncludeIndirect bool `yaml:"include_indirect" toml:"include_indirect"`

	// Output settings
	OutputFormat string `yaml:"format,omitempty" toml:"format" validate:"oneof=terminal json sarif"`
	OutputFile   string `yaml:"output,omitempty" toml:"output"`
	ShowAll      bool   `yaml:"show_all" toml:"show_all"`

	// Behavior settings
	FailOnUnsatisfied bool   `yaml:"fail_on_unsatisfied" toml:"fail_on_unsatisfied"`
	LogLevel          string `yaml:"log_level,omitempty" toml:"log_level" validate:"oneof=trace debug info warn error"`
}

// DefaultFiles are looked up in the working directory when no config path is given
var DefaultFiles = []string{"dep-check.yaml", "dep-check.yml", ".dep-check.toml"}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		ProjectRoots:      []string{"."},
		IncludeDev:        true,
		IncludeIndirect:   false,
		OutputFormat:      "terminal",
		FailOnUnsatisfied: true,
		LogLevel:          "info",
	}
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads path over the defaults and validates the result. The format is
// chosen by extension: .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.NewValidationError(fieldForLine(path, yamlLine(err)), "invalid YAML", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			line := 0
			var perr toml.ParseError
			if errors.As(err, &perr) {
				line = perr.Position.Line
			}
			return nil, apperrors.NewValidationError(fieldForLine(path, line), "invalid TOML", err)
		}
	default:
		return nil, apperrors.NewValidationError(path, fmt.Sprintf("unsupported config file extension %q", ext), nil)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Discover returns the first default config file present in dir, or "".
func Discover(dir string) string {
	for _, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func yamlLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}

func fieldForLine(path string, line int) string {
	if line > 0 {
		return fmt.Sprintf("%s:%d", path, line)
	}
	return path
}
