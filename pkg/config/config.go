// Package config loads generator settings from defaults, a YAML file, a .env
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/TechXTT/cimgen/internal/model"
)

// DefaultFile is read when no config path is given and it exists.
const DefaultFile = "cimgen.yaml"

// Config holds all settings for generation and the database push.
type Config struct {
	SchemaDir   string   `yaml:"schema_dir"`
	Include     []string `yaml:"include,omitempty"`
	Version     string   `yaml:"version"`
	OutputDir   string   `yaml:"output_dir"`
	Languages   []string `yaml:"languages"`
	GoPackage   string   `yaml:"go_package"`
	LogLevel    string   `yaml:"log_level"`
	MetricsFile string   `yaml:"metrics_file,omitempty"`
	DSN         string   `yaml:"dsn,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		SchemaDir: "schemas",
		Version:   "cgmes_v3_0_0",
		OutputDir: "output",
		Languages: []string{"go"},
		GoPackage: "cim",
		LogLevel:  "info",
	}
}

// envRef matches a value of the form env("NAME").
var envRef = regexp.MustCompile(`^env\("([^"]+)"\)$`)

// Load builds a Config. An empty path falls back to DefaultFile when present;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	file := path
	if file == "" {
		file = DefaultFile
	}
	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
	case path == "" && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	// a missing .env is not an error
	_ = godotenv.Load()
	cfg.applyEnv()

	if m := envRef.FindStringSubmatch(cfg.DSN); m != nil {
		cfg.DSN = os.Getenv(m[1])
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString(&c.SchemaDir, "CIMGEN_SCHEMA_DIR")
	setString(&c.Version, "CIMGEN_VERSION")
	setString(&c.OutputDir, "CIMGEN_OUTPUT_DIR")
	setString(&c.LogLevel, "CIMGEN_LOG_LEVEL")
	setString(&c.MetricsFile, "CIMGEN_METRICS_FILE")
	setString(&c.DSN, "DATABASE_URL")
	if v := os.Getenv("CIMGEN_LANGUAGES"); v != "" {
		c.Languages = SplitList(v)
	}
}

// SplitList splits a comma separated flag or env value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.SchemaDir == "" {
		return errors.New("schema directory is required")
	}
	if _, err := c.Dialect(); err != nil {
		return err
	}
	if len(c.Languages) == 0 {
		return errors.New("at least one output language is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Dialect() (model.Dialect, error) {
	return model.ParseDialect(c.Version)
}

// Level parses LogLevel; an empty level means info.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
