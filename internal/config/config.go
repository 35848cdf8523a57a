// Package config resolves zfixture settings from defaults, environment
// variables and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/zarlcorp/zfixture/internal/export"
	"github.com/zarlcorp/zfixture/internal/logs"
)

// EnvPrefix is stripped from environment variable names before they are
// matched against config keys.
const EnvPrefix = "ZFIXTURE_"

// environment variable names
const (
	EnvWorkers   = EnvPrefix + "WORKERS"
	EnvFormat    = EnvPrefix + "FORMAT"
	EnvLogLevel  = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat = EnvPrefix + "LOG_FORMAT"
)

// config keys, shared by the env and flag layers
const (
	keyCount     = "count"
	keyWorkers   = "workers"
	keyFormat    = "format"
	keyOut       = "out"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
)

const defaultCount = 10

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings for one generate run.
type Config struct {
	Count     int           `koanf:"count"`
	Workers   int           `koanf:"workers"` // 0 selects one worker per CPU
	Format    export.Format `koanf:"format"`
	Output    string        `koanf:"out"` // empty means stdout
	LogLevel  string        `koanf:"log-level"`
	LogFormat string        `koanf:"log-format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Count:     defaultCount,
		Format:    export.JSON,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func (c Config) toMap() map[string]any {
	return map[string]any{
		keyCount:     c.Count,
		keyWorkers:   c.Workers,
		keyFormat:    string(c.Format),
		keyOut:       c.Output,
		keyLogLevel:  c.LogLevel,
		keyLogFormat: c.LogFormat,
	}
}

// Load layers environment variables and then flags from args on top of the
// defaults, normalizes names and validates the result. environ is usually
// os.Environ.
func Load(args []string, environ func() []string, stderr io.Writer) (Config, error) {
	def := Default()
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(def.toMap(), ""), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	var formatSet bool
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		EnvironFunc:   environ,
		TransformFunc: envKey(&formatSet),
	}), nil); err != nil {
		return Config{}, fmt.Errorf("%w: env: %w", ErrInvalid, err)
	}

	fs := newFlagSet(def, stderr)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("%w: unexpected argument %q", ErrInvalid, fs.Arg(0))
	}
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return Config{}, fmt.Errorf("%w: flags: %w", ErrInvalid, err)
	}
	formatSet = formatSet || fs.Changed(keyFormat)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	// infer the format from the output extension unless it was chosen
	if !formatSet && cfg.Output != "" {
		if f, ok := export.FormatFromPath(cfg.Output); ok {
			cfg.Format = f
		}
	}

	cfg, err := cfg.normalize()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps ZFIXTURE_LOG_LEVEL to log-level. Empty values are skipped so
// an exported but blank variable leaves the default in place.
func envKey(formatSet *bool) func(k, v string) (string, any) {
	return func(k, v string) (string, any) {
		if strings.TrimSpace(v) == "" {
			return "", nil
		}
		key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", "-")
		if key == keyFormat {
			*formatSet = true
		}
		return key, v
	}
}

func newFlagSet(def Config, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntP(keyCount, "n", def.Count, "number of users")
	fs.IntP(keyWorkers, "w", def.Workers, "worker count, 0 for one per CPU")
	fs.StringP(keyFormat, "f", string(def.Format), "output format: json, jsonl, csv")
	fs.StringP(keyOut, "o", def.Output, "output file, stdout when empty")
	fs.String(keyLogLevel, def.LogLevel, "debug, info, warn or error")
	fs.String(keyLogFormat, def.LogFormat, "text or json")
	return fs
}

// normalize lower-cases the enumerated names so later consumers can compare
// them exactly.
func (c Config) normalize() (Config, error) {
	f, err := export.ParseFormat(string(c.Format))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	c.Format = f
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	return c, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalid, c.Count)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalid, c.Workers)
	}
	if _, err := export.ParseFormat(string(c.Format)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := logs.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !strings.EqualFold(c.LogFormat, "text") && !strings.EqualFold(c.LogFormat, "json") {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}
