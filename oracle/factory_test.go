package oracle_test

import (
	"testing"

	"github.com/effective-security/agentic/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ProviderConfig_FindModel(t *testing.T) {
	cfg := &oracle.ProviderConfig{
		DefaultModel:    "gpt-4o-mini",
		AvailableModels: []string{"gpt-4o", "gpt-4o-mini"},
	}
	assert.Equal(t, "gpt-4o", cfg.FindModel("gpt-4o"))
	assert.Equal(t, "gpt-4o-mini", cfg.FindModel("unknown"))
	assert.Equal(t, "gpt-4o-mini", cfg.FindModel())
}

func Test_Factory(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg := &oracle.Config{
		DefaultProvider: "openai",
		Providers: []*oracle.ProviderConfig{
			{
				Name:         "openai",
				APIType:      "OPENAI",
				DefaultModel: "gpt-4o-mini",
			},
			{
				Name:         "claude",
				APIType:      "ANTHROPIC",
				DefaultModel: "claude-sonnet-4-20250514",
			},
		},
		Retry: oracle.RetryConfig{MaxAttempts: 2},
	}
	f := oracle.New(cfg)

	def, err := f.DefaultClient()
	require.NoError(t, err)
	assert.Equal(t, oracle.ProviderOpenAI, def.GetProviderType())
	assert.Equal(t, "gpt-4o-mini", def.GetName())

	// cached per provider name
	same, err := f.ClientByName("openai")
	require.NoError(t, err)
	assert.Equal(t, def, same)

	claude, err := f.ClientByType("anthropic")
	require.NoError(t, err)
	assert.Equal(t, oracle.ProviderAnthropic, claude.GetProviderType())

	// unknown name falls back to the default provider
	fallback, err := f.ClientByName("unknown")
	require.NoError(t, err)
	assert.Equal(t, def, fallback)

	_, err = f.ClientByType("BEDROCK")
	assert.EqualError(t, err, "no provider configured for type: BEDROCK")
}

func Test_Factory_NoProviders(t *testing.T) {
	f := oracle.New(&oracle.Config{})
	_, err := f.DefaultClient()
	assert.EqualError(t, err, "no providers configured")
}

func Test_CreateClient_Unsupported(t *testing.T) {
	_, err := oracle.CreateClient(&oracle.ProviderConfig{Name: "x", APIType: "BEDROCK"})
	assert.EqualError(t, err, "unsupported provider type: BEDROCK")
}
