package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"reqschema/internal/scan"
	"reqschema/internal/schema"
)

const defaultConfigRelPath = ".reqschema/config.yaml"

// Source kinds.
const (
	SourceJava  = "java"
	SourceGo    = "go"
	SourceModel = "model"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

type SourceConfig struct {
	Kind    string   `yaml:"kind"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

type ScanConfig struct {
	Workers int    `yaml:"workers"`
	Mode    string `yaml:"mode"`
	Limit   int    `yaml:"limit"`
}

type SchemaConfig struct {
	VisitPolicy string `yaml:"visit_policy"`
	MaxDepth    int    `yaml:"max_depth"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Source SourceConfig `yaml:"source"`
	Scan   ScanConfig   `yaml:"scan"`
	Schema SchemaConfig `yaml:"schema"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// Load loads the YAML config at configPath, or ~/.reqschema/config.yaml when
// empty, then applies env overrides. A missing file leaves the defaults.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		configPath = filepath.Join(home, defaultConfigRelPath)
	}

	cfg, err := LoadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = &Config{}
		cfg.SetDefaults()
	} else if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFile reads one YAML config file on top of the defaults. Unlike Load it
// fails when the file does not exist and ignores the environment.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	cfg.SetDefaults()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) SetDefaults() {
	if c.Source.Kind == "" {
		c.Source.Kind = SourceJava
	}
	if c.Scan.Mode == "" {
		c.Scan.Mode = scan.ModeAll.String()
	}
	if c.Schema.VisitPolicy == "" {
		c.Schema.VisitPolicy = schema.SharedVisited.String()
	}
	if c.Schema.MaxDepth == 0 {
		c.Schema.MaxDepth = schema.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatTable
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceJava, SourceGo, SourceModel:
	default:
		return fmt.Errorf("source.kind must be one of java, go, model; got %q", c.Source.Kind)
	}

	if c.Scan.Workers < 0 {
		return errors.New("scan.workers cannot be negative")
	}
	if c.Scan.Limit < 0 {
		return errors.New("scan.limit cannot be negative")
	}
	if _, err := scan.ParseMode(c.Scan.Mode); err != nil {
		return fmt.Errorf("scan.mode: %w", err)
	}

	if _, err := c.SchemaOptions(); err != nil {
		return err
	}

	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format must be one of table, json, yaml; got %q", c.Output.Format)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// SchemaOptions returns the schema builder options of the config.
func (c *Config) SchemaOptions() (schema.Options, error) {
	policy, err := schema.ParseVisitPolicy(c.Schema.VisitPolicy)
	if err != nil {
		return schema.Options{}, fmt.Errorf("schema.visit_policy: %w", err)
	}

	if c.Schema.MaxDepth < 0 {
		return schema.Options{}, errors.New("schema.max_depth cannot be negative")
	}

	return schema.Options{Policy: policy, MaxDepth: c.Schema.MaxDepth}, nil
}

// LogLevel parses log.level ("debug", "info", "warn", "error").
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}

	return level, nil
}

func applyEnvOverrides(c *Config) {
	setString(&c.Source.Kind, "REQSCHEMA_SOURCE_KIND")
	setList(&c.Source.Include, "REQSCHEMA_SOURCE_INCLUDE")
	setList(&c.Source.Exclude, "REQSCHEMA_SOURCE_EXCLUDE")
	setInt(&c.Scan.Workers, "REQSCHEMA_SCAN_WORKERS")
	setString(&c.Scan.Mode, "REQSCHEMA_SCAN_MODE")
	setInt(&c.Scan.Limit, "REQSCHEMA_SCAN_LIMIT")
	setString(&c.Schema.VisitPolicy, "REQSCHEMA_SCHEMA_VISIT_POLICY")
	setInt(&c.Schema.MaxDepth, "REQSCHEMA_SCHEMA_MAX_DEPTH")
	setString(&c.Output.Format, "REQSCHEMA_OUTPUT_FORMAT")
	setString(&c.Log.Level, "REQSCHEMA_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setList(dst *[]string, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
