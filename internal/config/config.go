// Package config loads calculator settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/zephyrtronium/calc"
)

var (
	ErrInvalidNotation = errors.New("notation must be infix or postfix")
	ErrInvalidFormat   = errors.New("format must format one floating-point number")
	ErrInvalidLogLevel = errors.New("log level must be debug, info, warn, or error")
)

// Config is the configuration for the calculator.
type Config struct {
	// Notation is the initial notation, "infix" or "postfix".
	Notation string `yaml:"notation"`
	// Strict rejects expressions that leave extra values.
	Strict bool `yaml:"strict"`
	// RightAssocPow parses infix ^ as right-associative.
	RightAssocPow bool `yaml:"right_assoc_pow"`
	// Format is the fmt verb string used to print answers.
	Format string `yaml:"format"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level"`
	// Color enables colored output.
	Color bool `yaml:"color"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Notation: calc.Postfix.String(),
		Format:   "%.2f",
		LogLevel: "info",
		Color:    true,
	}
}

// Load reads a configuration file. Settings missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a configuration from YAML. Unknown fields are errors.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting has a usable value.
func (c Config) Validate() error {
	if _, err := ParseNotation(c.Notation); err != nil {
		return err
	}
	if s := fmt.Sprintf(c.Format, 1.0); strings.Contains(s, "%!") {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseNotation parses the name of a notation. Standard and reverse Polish
// are accepted as synonyms.
func ParseNotation(s string) (calc.Notation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "infix", "standard":
		return calc.Infix, nil
	case "postfix", "rpn", "reverse-polish":
		return calc.Postfix, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return l, nil
}

// StartNotation returns the configured notation. It assumes c is valid.
func (c Config) StartNotation() calc.Notation {
	n, _ := ParseNotation(c.Notation)
	return n
}

// ContextOptions returns the evaluation options for the configuration.
func (c Config) ContextOptions() []calc.ContextOption {
	var opts []calc.ContextOption
	if c.Strict {
		opts = append(opts, calc.Strict())
	}
	if c.RightAssocPow {
		opts = append(opts, calc.ParseOptions(calc.RightAssocPow()))
	}
	return opts
}

// Logger creates a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
