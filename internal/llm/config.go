package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration. The koanf tags let the
// application config embed it under the "llm" key.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string `koanf:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`

	Anthropic  AnthropicConfig  `koanf:"anthropic"`
	OpenAI     OpenAIConfig     `koanf:"openai"`
	Gemini     GeminiConfig     `koanf:"gemini"`
	OpenRouter OpenRouterConfig `koanf:"openrouter"`
	Retry      RetryConfig      `koanf:"retry"`

	// Timeout bounds a single sentence request including retries.
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
}

type AnthropicConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

// OpenAIConfig also serves OpenAI-compatible gateways through BaseURL.
type OpenAIConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url"`
}

type GeminiConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url"`
}

// modelAliases maps the short names accepted in config to vendor model
// IDs. Unknown names are passed through untouched.
var modelAliases = map[string]map[string]string{
	"anthropic": {
		"claude-haiku":  "claude-haiku-4-5-20251001",
		"claude-sonnet": "claude-sonnet-4-5-20250929",
	},
	"openai": {
		"gpt-mini": "gpt-4.1-mini",
		"gpt":      "gpt-4.1",
	},
	"gemini": {
		"gemini-flash": "gemini-2.5-flash",
		"gemini-pro":   "gemini-2.5-pro",
	},
}

func resolveModel(vendor, name string) string {
	if id, ok := modelAliases[vendor][name]; ok {
		return id
	}
	return name
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts" validate:"gte=1"`
	InitialWait time.Duration `koanf:"initial_wait"`
	MaxWait     time.Duration `koanf:"max_wait"`
	Multiplier  float64       `koanf:"multiplier" validate:"gte=1"`
}

// DefaultConfig returns the provider defaults. Sentence generation wants
// some variety, so the cheap models of each vendor are preferred.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envOverrides lists the HANZI_* variables read by ConfigFromEnv.
var envOverrides = []struct {
	name string
	set  func(*Config, string)
}{
	{"HANZI_LLM_PROVIDER", func(c *Config, v string) { c.Provider = v }},
	{"HANZI_ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"HANZI_ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"HANZI_OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"HANZI_OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"HANZI_OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"HANZI_GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"HANZI_GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
	{"HANZI_OPENROUTER_API_KEY", func(c *Config, v string) { c.OpenRouter.APIKey = v }},
	{"HANZI_OPENROUTER_MODEL", func(c *Config, v string) { c.OpenRouter.Model = v }},
}

// ConfigFromEnv applies HANZI_* variables on top of base.
func ConfigFromEnv(base Config) Config {
	cfg := base
	for _, o := range envOverrides {
		if v := os.Getenv(o.name); v != "" {
			o.set(&cfg, v)
		}
	}
	return cfg
}

// HasKey reports whether the selected provider has credentials.
func (c Config) HasKey() bool {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "openai":
		return c.OpenAI.APIKey != ""
	case "gemini":
		return c.Gemini.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	case "mock":
		return true
	}
	return false
}

// DiscoverConfig probes the vendors' standard API key variables in order
// (Gemini, OpenAI, Anthropic, OpenRouter) and selects the first provider
// whose key is set. It returns false when none is found.
func DiscoverConfig(base Config) (Config, bool) {
	cfg := base
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	return cfg, false
}

// Resolve fills in credentials from the environment: HANZI_* variables
// first, then the vendor defaults when the selected provider has no key.
func Resolve(base Config) Config {
	cfg := ConfigFromEnv(base)
	if cfg.HasKey() {
		return cfg
	}
	if found, ok := DiscoverConfig(cfg); ok {
		return found
	}
	return cfg
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic", "openai", "gemini", "openrouter":
		if !c.HasKey() {
			return fmt.Errorf("an API key is required for the %s provider (set llm.%s.api_key or HANZI_%s_API_KEY)",
				c.Provider, c.Provider, strings.ToUpper(c.Provider))
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
