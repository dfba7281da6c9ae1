package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"SERVER_PORT", "SERVER_HOST", "LLM_PROVIDER", "GEMINI_API_KEY", "API_KEY",
	"GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
	"DEEPSEEK_API_KEY", "DEEPSEEK_BASE_URL", "DEEPSEEK_MODEL", "LLM_TEMPERATURE",
	"LLM_TIMEOUT", "MAX_CONCURRENT_REQUESTS", "SESSION_IDLE_TTL", "LOG_LEVEL",
	"LOG_FORMAT", "LOG_FILE", "CORS_ALLOWED_ORIGINS",
}

// clearEnv blanks every variable Load reads so the host environment
// does not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
	// Run from an empty directory so a developer .env is not picked up.
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.GeminiModel)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 5, cfg.LLM.MaxConcurrentRequests)
	assert.Equal(t, time.Hour, cfg.Session.IdleTTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.LLM.APIKey(), "missing key must not fail Load")
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_TIMEOUT", "0")
	t.Setenv("SESSION_IDLE_TTL", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://prompttopage.co.uk, ,https://prompttoscript.co.uk")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey())
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, time.Duration(0), cfg.LLM.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, []string{"https://prompttopage.co.uk", "https://prompttoscript.co.uk"}, cfg.Server.AllowedOrigins)
}

func TestGeminiKeyFallsBackToAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-key", cfg.LLM.GeminiAPIKey)

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.LLM.GeminiAPIKey)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even empty ones.
	os.Unsetenv("DEEPSEEK_API_KEY")
	os.Unsetenv("LLM_PROVIDER")

	path := filepath.Join(t.TempDir(), "canvas.env")
	require.NoError(t, os.WriteFile(path, []byte("LLM_PROVIDER=deepseek\nDEEPSEEK_API_KEY=ds-key\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DEEPSEEK_API_KEY")
		os.Unsetenv("LLM_PROVIDER")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderDeepSeek, cfg.LLM.Provider)
	assert.Equal(t, "ds-key", cfg.LLM.APIKey())
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			LLM:     LLMConfig{Provider: ProviderGemini, Temperature: 0.7, MaxConcurrentRequests: 1},
			Session: SessionConfig{IdleTTL: time.Minute},
			Log:     LogConfig{Format: "console"},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "bard" }, "unknown LLM_PROVIDER"},
		{"empty port", func(c *Config) { c.Server.Port = "" }, "SERVER_PORT"},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 2.5 }, "LLM_TEMPERATURE"},
		{"no concurrency", func(c *Config) { c.LLM.MaxConcurrentRequests = 0 }, "MAX_CONCURRENT_REQUESTS"},
		{"negative timeout", func(c *Config) { c.LLM.Timeout = -time.Second }, "LLM_TIMEOUT"},
		{"zero ttl", func(c *Config) { c.Session.IdleTTL = 0 }, "SESSION_IDLE_TTL"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "LOG_FORMAT"},
		{"bare origin", func(c *Config) { c.Server.AllowedOrigins = []string{"prompttopage.co.uk"} }, "CORS_ALLOWED_ORIGINS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
