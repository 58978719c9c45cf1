// Package oracle provides clients for the reasoning oracle: a remote
// completion endpoint that accepts a text prompt and returns text.
package oracle

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

//go:generate mockgen -source=oracle.go -destination=../mocks/mockoracle/oracle_mock.gen.go -package mockoracle

var logger = xlog.NewPackageLogger("github.com/effective-security/agentic", "oracle")

// ProviderType is the type of provider.
type ProviderType string

const (
	// ProviderOpenAI is the type of provider.
	ProviderOpenAI ProviderType = "OPENAI"
	// ProviderAzure is the type of provider.
	ProviderAzure ProviderType = "AZURE"
	// ProviderPerplexity is the type of provider.
	ProviderPerplexity ProviderType = "PERPLEXITY"
	// ProviderAnthropic is the type of provider.
	ProviderAnthropic ProviderType = "ANTHROPIC"
)

// Completion failure taxonomy. The orchestration loop treats all three as
// recoverable-but-cycle-fatal.
var (
	// ErrUnavailable is returned on network errors, timeouts and server failures.
	ErrUnavailable = errors.New("oracle: unavailable")
	// ErrRateLimited is returned when the provider signals explicit backoff.
	ErrRateLimited = errors.New("oracle: rate limited")
	// ErrMalformedResponse is returned on an empty or non-text payload.
	ErrMalformedResponse = errors.New("oracle: malformed response")
)

// Client is the boundary to the reasoning oracle.
type Client interface {
	// GetName returns the model name used by the client.
	GetName() string
	// GetProviderType returns the type of provider.
	GetProviderType() ProviderType
	// Complete sends the prompt and returns the completion text.
	// Failures are classified as ErrUnavailable, ErrRateLimited or
	// ErrMalformedResponse.
	Complete(ctx context.Context, prompt string) (string, error)
}

// DefaultTimeout is the per-call timeout applied when none is configured.
const DefaultTimeout = 60 * time.Second

// classifyStatus maps a provider HTTP status to the failure taxonomy.
func classifyStatus(status int) error {
	if status == 429 {
		return ErrRateLimited
	}
	return ErrUnavailable
}

// callContext applies the configured per-call timeout.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
