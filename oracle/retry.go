package oracle

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

const defaultBackoffBase = time.Second

// WithRetry wraps a client with exponential backoff on rate-limited calls.
// Other failure kinds are returned immediately.
func WithRetry(c Client, cfg RetryConfig) Client {
	if cfg.MaxAttempts <= 0 {
		return c
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	return &retryClient{next: c, cfg: cfg}
}

type retryClient struct {
	next Client
	cfg  RetryConfig
}

func (c *retryClient) GetName() string {
	return c.next.GetName()
}

func (c *retryClient) GetProviderType() ProviderType {
	return c.next.GetProviderType()
}

func (c *retryClient) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	backoff := c.cfg.BackoffBase
	for attempt := 0; attempt <= c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			logger.ContextKV(ctx, xlog.WARNING,
				"provider", c.next.GetProviderType(),
				"model", c.next.GetName(),
				"status", "rate_limited_retry",
				"attempt", attempt,
				"backoff", backoff.String(),
			)
			select {
			case <-ctx.Done():
				return "", errors.Mark(ctx.Err(), ErrUnavailable)
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		res, err := c.next.Complete(ctx, prompt)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}
