package commands

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Settings stores environment-driven defaults of the CLI itself.
type Settings struct {
	// LogLevel sets the logger level.
	LogLevel string `env:"TYPED_ENV_LOG_LEVEL" envDefault:"info"`
	// Output is the default output format of bind and describe.
	Output Format `env:"TYPED_ENV_OUTPUT" envDefault:"text"`
	// Dotenv turns on dotenv parsing of input files by default.
	Dotenv bool `env:"TYPED_ENV_DOTENV"`
}

// LoadSettings parses the CLI settings from the process environment.
func LoadSettings() (Settings, error) {
	s, err := env.ParseAs[Settings]()
	if err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}

	return s, nil
}

// Format selects how results are printed.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatDump Format = "dump"
)

var formats = []Format{FormatText, FormatYAML, FormatJSON, FormatDump}

var _ pflag.Value = (*Format)(nil)

// String implements pflag.Value.
func (f *Format) String() string {
	return string(*f)
}

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	for _, known := range formats {
		if strings.EqualFold(s, string(known)) {
			*f = known
			return nil
		}
	}

	names := make([]string, len(formats))
	for i, known := range formats {
		names[i] = string(known)
	}

	return fmt.Errorf("unknown output format %q, expected one of %s", s, strings.Join(names, ", "))
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

// UnmarshalText lets env parse TYPED_ENV_OUTPUT with the same validation as the flag.
func (f *Format) UnmarshalText(text []byte) error {
	return f.Set(string(text))
}
