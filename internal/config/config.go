package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/freight-cli/internal/cost"
)

// Providers accepted by the provider key.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config is the top-level application configuration.
type Config struct {
	Provider  string          `yaml:"provider" mapstructure:"provider"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Retry     RetryConfig     `yaml:"retry" mapstructure:"retry"`
	Fanout    FanoutConfig    `yaml:"fanout" mapstructure:"fanout"`
	Pricing   []PriceEntry    `yaml:"pricing" mapstructure:"pricing"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	Key               string `yaml:"key" mapstructure:"key"`
	ExtractionModel   string `yaml:"extraction_model" mapstructure:"extraction_model"`
	VerifyModel       string `yaml:"verify_model" mapstructure:"verify_model"`
	ThinkingBudget    int32  `yaml:"thinking_budget" mapstructure:"thinking_budget"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	BaseURL           string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
}

// GoogleConfig holds the optional Places API key used during verification.
type GoogleConfig struct {
	PlacesKey         string `yaml:"places_key" mapstructure:"places_key"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// RetryConfig configures the backoff of rate-limited model calls.
type RetryConfig struct {
	MaxAttempts      int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	Multiplier       float64 `yaml:"multiplier" mapstructure:"multiplier"`
	JitterMs         int     `yaml:"jitter_ms" mapstructure:"jitter_ms"`
}

// FanoutConfig configures the scope fan-out.
type FanoutConfig struct {
	PacingMs int `yaml:"pacing_ms" mapstructure:"pacing_ms"`
}

// PriceEntry overrides the token pricing of one model, in USD per million
// tokens. Pricing is a list rather than a map because model names contain
// dots, which viper treats as key separators.
type PriceEntry struct {
	Provider string  `yaml:"provider" mapstructure:"provider"`
	Model    string  `yaml:"model" mapstructure:"model"`
	Input    float64 `yaml:"input" mapstructure:"input"`
	Output   float64 `yaml:"output" mapstructure:"output"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FREIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for _, k := range []string{"gemini.key", "anthropic.key", "google.places_key", "gemini.base_url", "anthropic.base_url"} {
		_ = v.BindEnv(k)
	}

	// Defaults
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("gemini.extraction_model", "gemini-3-pro-preview")
	v.SetDefault("gemini.verify_model", "gemini-2.5-flash")
	v.SetDefault("gemini.thinking_budget", 32768)
	v.SetDefault("gemini.requests_per_minute", 60)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 16000)
	v.SetDefault("google.requests_per_minute", 120)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_ms", 2000)
	v.SetDefault("retry.max_backoff_ms", 30000)
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("retry.jitter_ms", 1000)
	v.SetDefault("fanout.pacing_ms", 500)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	return &cfg, nil
}

// Validate checks the configuration for a run mode. "query" needs the
// selected provider's credential; "serve" additionally needs a port.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "query", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.Key == "" {
			errs = append(errs, "gemini.key is required (FREIGHT_GEMINI_KEY)")
		}
		if c.Gemini.ExtractionModel == "" {
			errs = append(errs, "gemini.extraction_model is required")
		}
	case ProviderAnthropic:
		if c.Anthropic.Key == "" {
			errs = append(errs, "anthropic.key is required (FREIGHT_ANTHROPIC_KEY)")
		}
		if c.Anthropic.Model == "" {
			errs = append(errs, "anthropic.model is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("provider %q is not one of gemini, anthropic", c.Provider))
	}

	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, "retry.max_attempts must be >= 1")
	}
	if c.Fanout.PacingMs < 0 {
		errs = append(errs, "fanout.pacing_ms must be >= 0")
	}
	if mode == "serve" && c.Server.Port <= 0 {
		errs = append(errs, "server.port must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ExtractionModel returns the model used for extraction calls with the
// selected provider.
func (c *Config) ExtractionModel() string {
	if c.Provider == ProviderAnthropic {
		return c.Anthropic.Model
	}
	return c.Gemini.ExtractionModel
}

// VerifyModel returns the model used for verification calls with the
// selected provider.
func (c *Config) VerifyModel() string {
	if c.Provider == ProviderAnthropic {
		return c.Anthropic.Model
	}
	return c.Gemini.VerifyModel
}

// Rates returns the default pricing table with configured entries applied.
func (c *Config) Rates() cost.Rates {
	var over cost.Rates
	for _, p := range c.Pricing {
		rate := cost.ModelRate{Input: p.Input, Output: p.Output}
		switch strings.ToLower(p.Provider) {
		case ProviderGemini:
			if over.Gemini == nil {
				over.Gemini = map[string]cost.ModelRate{}
			}
			over.Gemini[p.Model] = rate
		case ProviderAnthropic:
			if over.Anthropic == nil {
				over.Anthropic = map[string]cost.ModelRate{}
			}
			over.Anthropic[p.Model] = rate
		}
	}
	return cost.DefaultRates().Merge(over)
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
