package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "deskhand.yaml"

// Duration wraps time.Duration with YAML unmarshaling from strings like "45s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Config is the top-level deskhand configuration.
type Config struct {
	Language LanguageConfig `yaml:"language"`
	Actions  ActionsConfig  `yaml:"actions"`
	History  HistoryConfig  `yaml:"history"`
	Server   ServerConfig   `yaml:"server"`
}

// ProviderNone disables the language backend even when an API key is set.
const ProviderNone = "none"

// LanguageConfig selects the backend that answers general questions. An empty
// provider is inferred from GEMINI_API_KEY, then OPENAI_API_KEY.
type LanguageConfig struct {
	Provider     string   `yaml:"provider"`
	Model        string   `yaml:"model"`
	APIKey       string   `yaml:"api_key"`
	BaseURL      string   `yaml:"base_url"`
	Command      []string `yaml:"command"`
	SystemPrompt string   `yaml:"system_prompt"`
	Timeout      Duration `yaml:"timeout"`
	RateLimit    float64  `yaml:"rate_limit"`
	Burst        int      `yaml:"burst"`
	CacheTTL     Duration `yaml:"cache_ttl"`
}

// ActionsConfig tunes command dispatch and overrides per-platform backend argv.
// Every argv element is a Go template over {{.Percent}}, {{.Query}},
// {{.URL}} and {{.Path}}.
type ActionsConfig struct {
	Timeout       Duration      `yaml:"timeout"`
	WordBoundary  bool          `yaml:"word_boundary"`
	ScreenshotDir string        `yaml:"screenshot_dir"`
	Web           WebConfig     `yaml:"web"`
	Capture       CaptureConfig `yaml:"capture"`
	Process       ProcessConfig `yaml:"process"`
	Display       DisplayConfig `yaml:"display"`
	Audio         AudioConfig   `yaml:"audio"`
}

type WebConfig struct {
	Open []string `yaml:"open"`
}

type CaptureConfig struct {
	Command []string `yaml:"command"`
}

type ProcessConfig struct {
	Word []string `yaml:"word"`
}

type DisplayConfig struct {
	Get []string `yaml:"get"`
	Set []string `yaml:"set"`
}

type AudioConfig struct {
	Get    []string `yaml:"get"`
	Set    []string `yaml:"set"`
	Mute   []string `yaml:"mute"`
	Unmute []string `yaml:"unmute"`
}

type HistoryConfig struct {
	Dir       string   `yaml:"dir"`
	Enabled   *bool    `yaml:"enabled"` // default true
	Retention Duration `yaml:"retention"`
}

// IsEnabled reports whether handled utterances are journaled.
func (h HistoryConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

const (
	defaultLanguageTimeout = 60 * time.Second
	defaultActionTimeout   = 15 * time.Second
	defaultRetention       = 30 * 24 * time.Hour // 720h
	defaultHistoryDir      = ".deskhand/history"
	defaultAddr            = ":8080"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads, expands env vars, parses, and validates a deskhand config file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.Language.Provider = strings.ToLower(strings.TrimSpace(cfg.Language.Provider))
	switch cfg.Language.Provider {
	case "":
		// Pick up whichever API key the environment provides.
		switch {
		case os.Getenv("GEMINI_API_KEY") != "":
			cfg.Language.Provider = "gemini"
		case os.Getenv("OPENAI_API_KEY") != "":
			cfg.Language.Provider = "openai"
		}
	case ProviderNone:
		cfg.Language.Provider = ""
	}
	if cfg.Language.Timeout.Duration == 0 {
		cfg.Language.Timeout.Duration = defaultLanguageTimeout
	}
	if cfg.Language.APIKey == "" {
		switch cfg.Language.Provider {
		case "gemini":
			cfg.Language.APIKey = os.Getenv("GEMINI_API_KEY")
		case "openai":
			cfg.Language.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	if cfg.Actions.Timeout.Duration == 0 {
		cfg.Actions.Timeout.Duration = defaultActionTimeout
	}
	if cfg.Actions.ScreenshotDir == "" {
		cfg.Actions.ScreenshotDir = "."
	}

	if cfg.History.Dir == "" {
		cfg.History.Dir = defaultHistoryDir
	}
	if cfg.History.Retention.Duration == 0 {
		cfg.History.Retention.Duration = defaultRetention
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Language.Provider {
	case "", "gemini", "openai", "cli":
		// valid
	default:
		errs = append(errs, fmt.Errorf("language.provider must be \"gemini\", \"openai\" or \"cli\", got %q", cfg.Language.Provider))
	}
	if cfg.Language.Timeout.Duration <= 0 {
		errs = append(errs, errors.New("language.timeout must be positive"))
	}
	if cfg.Language.RateLimit < 0 {
		errs = append(errs, errors.New("language.rate_limit must not be negative"))
	}
	if cfg.Language.Burst < 0 {
		errs = append(errs, errors.New("language.burst must not be negative"))
	}
	if cfg.Language.CacheTTL.Duration < 0 {
		errs = append(errs, errors.New("language.cache_ttl must not be negative"))
	}

	if cfg.Actions.Timeout.Duration <= 0 {
		errs = append(errs, errors.New("actions.timeout must be positive"))
	}

	if cfg.History.Retention.Duration <= 0 {
		errs = append(errs, errors.New("history.retention must be positive"))
	}

	return errors.Join(errs...)
}
