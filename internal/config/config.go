package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/podhmo/literaleval"
	"github.com/podhmo/literaleval/parser"
)

// FileName is the config file looked up in the working directory.
const FileName = "literaleval.yaml"

// Output formats.
const (
	FormatRepr = "repr"
	FormatYAML = "yaml"
)

// Config holds the configuration for the literaleval command,
// filled from defaults, then a config file, then command-line flags.
type Config struct {
	Strategy     string `yaml:"strategy"`       // "stack" or "recursive"
	Format       string `yaml:"format"`         // output format of eval: "repr" or "yaml"
	MaxIntDigits int    `yaml:"max-int-digits"` // 0 disables the limit
	MaxFrames    int    `yaml:"max-frames"`     // 0 means unlimited
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Strategy:     literaleval.StrategyStack.String(),
		Format:       FormatRepr,
		MaxIntDigits: parser.DefaultMaxIntDigits,
	}
}

// Discover resolves the config file path. An explicit path must exist;
// otherwise FileName in cwd is used when present. found is false when no
// file applies.
func Discover(explicitPath, cwd string) (path string, found bool, err error) {
	candidate := filepath.Join(cwd, FileName)
	explicit := strings.TrimSpace(explicitPath)
	if explicit != "" {
		candidate = filepath.Clean(explicit)
	}

	info, err := os.Stat(candidate)
	switch {
	case err == nil && !info.IsDir():
		return candidate, true, nil
	case err == nil:
		return "", false, fmt.Errorf("config path %q is a directory", candidate)
	case errors.Is(err, os.ErrNotExist):
		if explicit != "" {
			return "", false, fmt.Errorf("config file %q not found", candidate)
		}
		return "", false, nil
	default:
		return "", false, fmt.Errorf("checking config path %q: %w", candidate, err)
	}
}

// Load returns Default() overridden by the fields present in the file at path.
func Load(path string) (Config, error) {
	// #nosec G304 -- path comes from Discover or the -config flag.
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r over Default(). Unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if _, err := literaleval.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	switch c.Format {
	case FormatRepr, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q (allowed: %s, %s)", c.Format, FormatRepr, FormatYAML)
	}
	if c.MaxIntDigits < 0 {
		return fmt.Errorf("max-int-digits must not be negative, got %d", c.MaxIntDigits)
	}
	if c.MaxFrames < 0 {
		return fmt.Errorf("max-frames must not be negative, got %d", c.MaxFrames)
	}
	return nil
}

// EvaluatorOptions converts the configuration into evaluator options.
func (c Config) EvaluatorOptions() ([]literaleval.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	strategy, _ := literaleval.ParseStrategy(c.Strategy)
	return []literaleval.Option{
		literaleval.WithStrategy(strategy),
		literaleval.WithMaxIntDigits(c.MaxIntDigits),
		literaleval.WithMaxFrames(c.MaxFrames),
	}, nil
}
