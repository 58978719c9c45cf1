package oracle

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// NewClient is a wrapper for CreateClient to allow for overriding the
// default implementation.
var NewClient = CreateClient

// Factory creates and caches oracle clients from configuration.
type Factory interface {
	// DefaultClient returns the client for the default provider.
	DefaultClient() (Client, error)
	// ClientByType returns a client by its API type, e.g.
	// OPENAI, AZURE, PERPLEXITY, ANTHROPIC
	ClientByType(apiType string) (Client, error)
	// ClientByName returns a client by provider name,
	// if the provider is not found, it returns the default client.
	ClientByName(name string) (Client, error)
}

// Load returns a Factory from a config file location.
func Load(location string) (Factory, error) {
	cfg, err := LoadConfig(location)
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

type factory struct {
	cfg *Config

	defaultProvider *ProviderConfig
	byName          map[string]Client
	lock            sync.Mutex
}

// New creates a new oracle client factory
func New(cfg *Config) Factory {
	f := &factory{
		cfg:    cfg,
		byName: make(map[string]Client),
	}

	if cfg.DefaultProvider != "" {
		for _, provider := range cfg.Providers {
			if provider.Name == cfg.DefaultProvider {
				f.defaultProvider = provider
				break
			}
		}
	}
	if f.defaultProvider == nil && len(cfg.Providers) > 0 {
		f.defaultProvider = cfg.Providers[0]
	}

	return f
}

func (f *factory) DefaultClient() (Client, error) {
	if f.defaultProvider == nil {
		return nil, errors.New("no providers configured")
	}
	return f.clientForProvider(f.defaultProvider)
}

func (f *factory) ClientByType(apiType string) (Client, error) {
	for _, provider := range f.cfg.Providers {
		if strings.EqualFold(provider.APIType, apiType) {
			return f.clientForProvider(provider)
		}
	}
	return nil, errors.Errorf("no provider configured for type: %s", apiType)
}

func (f *factory) ClientByName(name string) (Client, error) {
	for _, provider := range f.cfg.Providers {
		if provider.Name == name {
			return f.clientForProvider(provider)
		}
	}
	return f.DefaultClient()
}

func (f *factory) clientForProvider(cfg *ProviderConfig) (Client, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if c, ok := f.byName[cfg.Name]; ok {
		return c, nil
	}

	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if f.cfg.Retry.MaxAttempts > 0 {
		c = WithRetry(c, f.cfg.Retry)
	}
	f.byName[cfg.Name] = c
	return c, nil
}

// CreateClient creates an oracle client for the provider configuration.
func CreateClient(cfg *ProviderConfig) (Client, error) {
	provType := strings.ToUpper(cfg.APIType)
	switch provType {
	case "OPENAI", "OPEN_AI":
		return newOpenAIClient(cfg, ProviderOpenAI)
	case "AZURE":
		return newOpenAIClient(cfg, ProviderAzure)
	case "PERPLEXITY":
		return newOpenAIClient(cfg, ProviderPerplexity)
	case "ANTHROPIC":
		return newAnthropicClient(cfg)
	}
	return nil, errors.Errorf("unsupported provider type: %s", provType)
}

func newOpenAIClient(cfg *ProviderConfig, prov ProviderType) (Client, error) {
	opts := []OpenAIOption{
		WithProvider(prov),
	}
	if model := cfg.FindModel(); model != "" {
		opts = append(opts, WithModel(model))
	}
	if cfg.Token != "" {
		opts = append(opts, WithToken(cfg.Token))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	return NewOpenAI(opts...)
}

func newAnthropicClient(cfg *ProviderConfig) (Client, error) {
	opts := []AnthropicOption{
		WithAnthropicModel(cfg.FindModel()),
	}
	if cfg.Token != "" {
		opts = append(opts, WithAnthropicToken(cfg.Token))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithAnthropicBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithAnthropicTimeout(cfg.Timeout))
	}
	return NewAnthropic(opts...)
}
