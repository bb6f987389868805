// Package config loads runtime settings for the airassist binary.
//
// Sources are applied in order, later ones winning: built-in defaults, an optional
// YAML or TOML file, a .env file in the working directory, then the process
// environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/shpitdev/air-assist/internal/generate"
	"github.com/shpitdev/air-assist/internal/logging"
)

// Generation transports.
const (
	TransportSDK  = "sdk"
	TransportREST = "rest"
)

// Duration is a time.Duration that decodes from strings such as "30s".
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Gemini struct {
	APIKey    string   `yaml:"api_key" toml:"api_key"`
	Model     string   `yaml:"model" toml:"model"`
	BaseURL   string   `yaml:"base_url" toml:"base_url"`
	Transport string   `yaml:"transport" toml:"transport"`
	Timeout   Duration `yaml:"timeout" toml:"timeout"`
}

type Server struct {
	Addr string `yaml:"addr" toml:"addr"`
}

type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Batch tunes the batch runner. RateLimitRPS <= 0 disables pacing.
type Batch struct {
	Workers      int     `yaml:"workers" toml:"workers"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" toml:"rate_limit_rps"`
	FailFast     bool    `yaml:"fail_fast" toml:"fail_fast"`
}

type Config struct {
	Gemini Gemini `yaml:"gemini" toml:"gemini"`
	Server Server `yaml:"server" toml:"server"`
	Log    Log    `yaml:"log" toml:"log"`
	Batch  Batch  `yaml:"batch" toml:"batch"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Gemini: Gemini{
			Model:     generate.DefaultModel,
			Transport: TransportREST,
			Timeout:   Duration(generate.DefaultTimeout),
		},
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "info", Format: logging.FormatConsole},
		Batch:  Batch{Workers: 4},
	}
}

// Load builds a Config from defaults, the file at path (skipped when path is
// empty), .env and the environment. It does not validate; call Validate once
// flags have been applied.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	// godotenv never overrides variables that are already set, so the real
	// environment still wins over .env.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, c); err != nil {
			return fmt.Errorf("parse config %s as YAML: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, c); err != nil {
			return fmt.Errorf("parse config %s as TOML: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension %q (want .yaml, .yml or .toml)", path, ext)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Gemini.APIKey = envString("GEMINI_API_KEY", c.Gemini.APIKey)
	c.Gemini.Model = envString("GEMINI_MODEL", c.Gemini.Model)
	c.Gemini.BaseURL = envString("GEMINI_BASE_URL", c.Gemini.BaseURL)
	c.Gemini.Transport = envString("GEMINI_TRANSPORT", c.Gemini.Transport)
	c.Server.Addr = envString("AIRASSIST_ADDR", c.Server.Addr)
	c.Log.Level = envString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envString("LOG_FORMAT", c.Log.Format)

	timeout, err := envDuration("GEMINI_TIMEOUT", time.Duration(c.Gemini.Timeout))
	if err != nil {
		return err
	}
	c.Gemini.Timeout = Duration(timeout)

	if c.Batch.Workers, err = envInt("WORKERS", c.Batch.Workers); err != nil {
		return err
	}
	if c.Batch.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", c.Batch.RateLimitRPS); err != nil {
		return err
	}
	if c.Batch.FailFast, err = envBool("FAIL_FAST", c.Batch.FailFast); err != nil {
		return err
	}
	return nil
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required"))
	}
	switch c.Gemini.Transport {
	case TransportSDK, TransportREST:
	default:
		errs = append(errs, fmt.Errorf("gemini transport must be %q or %q, got %q", TransportSDK, TransportREST, c.Gemini.Transport))
	}
	if c.Gemini.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("gemini timeout must be positive, got %s", time.Duration(c.Gemini.Timeout)))
	}
	if c.Batch.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Batch.Workers))
	}
	if c.Batch.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("rate limit must be >= 0, got %v", c.Batch.RateLimitRPS))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Generate returns the settings for a generation client.
func (c Config) Generate() generate.Config {
	return generate.Config{
		APIKey:  c.Gemini.APIKey,
		Model:   c.Gemini.Model,
		BaseURL: c.Gemini.BaseURL,
		Timeout: time.Duration(c.Gemini.Timeout),
	}.WithDefaults()
}
