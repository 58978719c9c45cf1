package orchestrator

import (
	"time"

	"github.com/effective-security/agentic/encoding"
	"github.com/effective-security/agentic/store"
)

// DefaultHistoryWindow is the number of recent turns included in the
// response prompt.
const DefaultHistoryWindow = 10

// DefaultToolTimeout is the per-step tool call timeout.
const DefaultToolTimeout = 30 * time.Second

// DefaultPersona is used when no persona text is configured.
const DefaultPersona = "You are a helpful agent. You complete user requests by extracting the task, planning tool calls, executing them in order, and answering from the results."

// Config holds the loop configuration.
type Config struct {
	Name          string
	Persona       string
	Store         store.MessageStore
	Callback      Callback
	Mode          encoding.Mode
	OracleTimeout time.Duration
	ToolTimeout   time.Duration
	HistoryWindow int
}

// Option configures the loop.
type Option func(*Config)

// NewConfig creates a config with defaults applied.
func NewConfig(options ...Option) *Config {
	cfg := &Config{
		Name:          "Agent",
		Persona:       DefaultPersona,
		Callback:      noopCallback{},
		Mode:          encoding.ModeDefault,
		ToolTimeout:   DefaultToolTimeout,
		HistoryWindow: DefaultHistoryWindow,
	}
	cfg.Apply(options...)
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore(0)
	}
	return cfg
}

// Apply applies the options to the config.
func (c *Config) Apply(options ...Option) *Config {
	for _, opt := range options {
		opt(c)
	}
	return c
}

// WithName sets the agent display name.
func WithName(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.Name = name
		}
	}
}

// WithPersona sets the system persona text.
func WithPersona(persona string) Option {
	return func(c *Config) {
		if persona != "" {
			c.Persona = persona
		}
	}
}

// WithStore sets the conversation log backend.
func WithStore(s store.MessageStore) Option {
	return func(c *Config) {
		c.Store = s
	}
}

// WithCallback sets the callback.
func WithCallback(cb Callback) Option {
	return func(c *Config) {
		if cb != nil {
			c.Callback = cb
		}
	}
}

// WithMode sets the structured output encoding mode.
func WithMode(mode encoding.Mode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithOracleTimeout sets the per-call oracle timeout.
// Zero leaves the oracle client's own timeout in effect.
func WithOracleTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.OracleTimeout = timeout
	}
}

// WithToolTimeout sets the per-step tool call timeout.
func WithToolTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ToolTimeout = timeout
		}
	}
}

// WithHistoryWindow sets the number of recent turns included in the
// response prompt.
func WithHistoryWindow(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.HistoryWindow = n
		}
	}
}
