package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"HANZI_LLM_PROVIDER", "HANZI_ANTHROPIC_API_KEY", "HANZI_OPENAI_API_KEY",
		"HANZI_GEMINI_API_KEY", "HANZI_OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("HANZI_LLM_PROVIDER", "openai")
	t.Setenv("HANZI_OPENAI_API_KEY", "sk-env")
	t.Setenv("HANZI_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv(DefaultConfig())
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model)
}

func TestResolve_DiscoversVendorKey(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")

	cfg := Resolve(DefaultConfig())
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestResolve_KeepsConfiguredKey(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	base := DefaultConfig()
	base.Anthropic.APIKey = "from-file"
	cfg := Resolve(base)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "from-file", cfg.Anthropic.APIKey)
}

func TestResolve_NoKeys(t *testing.T) {
	clearKeyEnv(t)
	cfg := Resolve(DefaultConfig())
	assert.False(t, cfg.HasKey())
	assert.Error(t, cfg.Validate())
}
