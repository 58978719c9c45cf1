package oracle

import (
	"slices"
	"time"

	"github.com/effective-security/x/configloader"
)

type Config struct {
	// Providers specifies the list of providers to use
	Providers []*ProviderConfig `json:"providers" yaml:"providers"`
	// DefaultProvider specifies the default provider to use
	DefaultProvider string `json:"default_provider,omitempty" yaml:"default_provider,omitempty"`
	// Retry specifies the backoff policy on rate-limited calls.
	Retry RetryConfig `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// ProviderConfig for a completion provider.
type ProviderConfig struct {
	Name string `json:"name" yaml:"name"`
	// APIType specifies the type of API to use:
	// OPENAI|AZURE|PERPLEXITY|ANTHROPIC
	APIType string `json:"api_type,omitempty" yaml:"api_type,omitempty"`
	// Token is the bearer credential; values like ${OPENAI_API_KEY} are
	// expanded from the environment on load.
	Token           string        `json:"token,omitempty" yaml:"token,omitempty"`
	BaseURL         string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	DefaultModel    string        `json:"default_model,omitempty" yaml:"default_model,omitempty"`
	AvailableModels []string      `json:"available_models,omitempty" yaml:"available_models,omitempty"`
	Timeout         time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// RetryConfig controls retries on ErrRateLimited.
// Zero MaxAttempts disables retries.
type RetryConfig struct {
	MaxAttempts int           `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
	BackoffBase time.Duration `json:"backoff_base,omitempty" yaml:"backoff_base,omitempty"`
}

func (c *ProviderConfig) FindModel(models ...string) string {
	for _, model := range models {
		if slices.Contains(c.AvailableModels, model) {
			return model
		}
	}
	return c.DefaultModel
}

// LoadConfig from file
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
