package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-3-pro-preview", cfg.Gemini.ExtractionModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.VerifyModel)
	assert.Equal(t, int32(32768), cfg.Gemini.ThinkingBudget)
	assert.Equal(t, 60, cfg.Gemini.RequestsPerMinute)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(16000), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 2000, cfg.Retry.InitialBackoffMs)
	assert.Equal(t, 30000, cfg.Retry.MaxBackoffMs)
	assert.InDelta(t, 2.0, cfg.Retry.Multiplier, 0.001)
	assert.Equal(t, 1000, cfg.Retry.JitterMs)
	assert.Equal(t, 500, cfg.Fanout.PacingMs)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Gemini.Key)
	assert.Empty(t, cfg.Pricing)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
provider: Anthropic
anthropic:
  key: sk-ant-test
  max_tokens: 8000
log:
  level: debug
  format: console
server:
  port: 9090
fanout:
  pacing_ms: 0
pricing:
  - provider: gemini
    model: gemini-2.5-flash
    input: 0.5
    output: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.Key)
	assert.Equal(t, int64(8000), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0, cfg.Fanout.PacingMs)
	require.Len(t, cfg.Pricing, 1)
	assert.Equal(t, "gemini-2.5-flash", cfg.Pricing[0].Model)
	// Defaults still apply for unset values
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
gemini:
  extraction_model: gemini-2.5-pro
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("FREIGHT_GEMINI_EXTRACTION_MODEL", "gemini-3-pro-preview")
	t.Setenv("FREIGHT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "gemini-3-pro-preview", cfg.Gemini.ExtractionModel)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvCredentials(t *testing.T) {
	chdirTemp(t)

	t.Setenv("FREIGHT_GEMINI_KEY", "g-key")
	t.Setenv("FREIGHT_GOOGLE_PLACES_KEY", "p-key")
	t.Setenv("FREIGHT_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.Gemini.Key)
	assert.Equal(t, "p-key", cfg.Google.PlacesKey)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.NoError(t, cfg.Validate("serve"))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{Provider: ProviderGemini}
	cfg.Gemini.Key = "g-key"
	cfg.Gemini.ExtractionModel = "gemini-3-pro-preview"
	cfg.Anthropic.Model = "claude-sonnet-4-5-20250929"
	cfg.Retry.MaxAttempts = 3
	cfg.Fanout.PacingMs = 500
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateQuery_Gemini(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("query"))
}

func TestValidateQuery_MissingGeminiKey(t *testing.T) {
	cfg := validDefaults()
	cfg.Gemini.Key = ""

	err := cfg.Validate("query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini.key is required")
}

func TestValidateQuery_AnthropicNeedsOwnKey(t *testing.T) {
	cfg := validDefaults()
	cfg.Provider = ProviderAnthropic

	err := cfg.Validate("query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")

	cfg.Anthropic.Key = "sk-ant"
	cfg.Gemini.Key = ""
	assert.NoError(t, cfg.Validate("query"))
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := validDefaults()
	cfg.Provider = "openai"

	err := cfg.Validate("query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `provider "openai"`)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := validDefaults()
	cfg.Gemini.Key = ""
	cfg.Retry.MaxAttempts = 0
	cfg.Fanout.PacingMs = -1

	err := cfg.Validate("query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini.key is required")
	assert.Contains(t, err.Error(), "retry.max_attempts must be >= 1")
	assert.Contains(t, err.Error(), "fanout.pacing_ms must be >= 0")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	assert.NoError(t, cfg.Validate("query"))
	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestModelSelection(t *testing.T) {
	cfg := validDefaults()
	cfg.Gemini.VerifyModel = "gemini-2.5-flash"
	assert.Equal(t, "gemini-3-pro-preview", cfg.ExtractionModel())
	assert.Equal(t, "gemini-2.5-flash", cfg.VerifyModel())

	cfg.Provider = ProviderAnthropic
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.ExtractionModel())
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.VerifyModel())
}

func TestRatesOverlay(t *testing.T) {
	cfg := validDefaults()
	cfg.Pricing = []PriceEntry{
		{Provider: "gemini", Model: "gemini-2.5-flash", Input: 0.5, Output: 3},
		{Provider: "Anthropic", Model: "claude-custom", Input: 1, Output: 2},
		{Provider: "openai", Model: "gpt", Input: 9, Output: 9},
	}

	rates := cfg.Rates()
	assert.InDelta(t, 0.5, rates.Gemini["gemini-2.5-flash"].Input, 0.0001)
	assert.InDelta(t, 3.0, rates.Gemini["gemini-2.5-flash"].Output, 0.0001)
	assert.InDelta(t, 2.0, rates.Gemini["gemini-3-pro-preview"].Input, 0.0001)
	assert.InDelta(t, 2.0, rates.Anthropic["claude-custom"].Output, 0.0001)
	_, ok := rates.Gemini["gpt"]
	assert.False(t, ok)
}
