package lib

import (
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when no config file is
// named explicitly. It is optional.
const DefaultConfigFile = "ph.yaml"

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	// Jobs is how many files are built at once. Zero means one per CPU.
	Jobs int `yaml:"jobs"`

	// Color is one of auto, always or never.
	Color string `yaml:"color"`

	// Extension selects the files built when a directory is given.
	Extension string `yaml:"extension"`

	// Format is a text/template applied to every successful build.
	Format string `yaml:"format"`

	// RecordDSN, if set, is a Postgres connection string; every build
	// outcome is inserted into RecordTable.
	RecordDSN   string `yaml:"record_dsn"`
	RecordTable string `yaml:"record_table"`
}

func DefaultConfig() Config {
	return Config{
		Jobs:        0,
		Color:       ColorAuto,
		Extension:   ".ph",
		Format:      DefaultReportFormat,
		RecordTable: "builds",
	}
}

// LoadConfig reads filename over the defaults. A missing file is only an
// error when required is set.
func LoadConfig(filename string, required bool) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return Config{}, errors.Wrapf(err, "opening config %s", filename)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrapf(err, "parsing config %s", filename)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", filename)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("color must be %s, %s or %s, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	if c.Extension == "" {
		return errors.New("extension must not be empty")
	}
	if c.RecordDSN != "" && c.RecordTable == "" {
		return errors.New("record_table must be set when record_dsn is")
	}
	return nil
}

// Workers resolves Jobs to a concrete worker count.
func (c Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.NumCPU()
}

// ColorEnabled resolves Color. auto defers to fatih/color's terminal check.
func (c Config) ColorEnabled() bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return !color.NoColor
	}
}
