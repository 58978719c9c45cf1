package oracle_test

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	replies []func() (string, error)
	calls   int
}

func (c *scriptedClient) GetName() string                      { return "test-model" }
func (c *scriptedClient) GetProviderType() oracle.ProviderType { return oracle.ProviderOpenAI }

func (c *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	idx := c.calls
	c.calls++
	if idx >= len(c.replies) {
		idx = len(c.replies) - 1
	}
	return c.replies[idx]()
}

func ok(text string) func() (string, error) {
	return func() (string, error) { return text, nil }
}

func fail(err error) func() (string, error) {
	return func() (string, error) { return "", err }
}

func Test_WithRetry_RateLimited(t *testing.T) {
	next := &scriptedClient{replies: []func() (string, error){
		fail(oracle.ErrRateLimited),
		fail(oracle.ErrRateLimited),
		ok("recovered"),
	}}
	c := oracle.WithRetry(next, oracle.RetryConfig{MaxAttempts: 3, BackoffBase: time.Millisecond})

	res, err := c.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "recovered", res)
	assert.Equal(t, 3, next.calls)
}

func Test_WithRetry_Exhausted(t *testing.T) {
	next := &scriptedClient{replies: []func() (string, error){
		fail(oracle.ErrRateLimited),
	}}
	c := oracle.WithRetry(next, oracle.RetryConfig{MaxAttempts: 2, BackoffBase: time.Millisecond})

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oracle.ErrRateLimited))
	assert.Equal(t, 3, next.calls)
}

func Test_WithRetry_OtherErrorsNotRetried(t *testing.T) {
	next := &scriptedClient{replies: []func() (string, error){
		fail(oracle.ErrUnavailable),
	}}
	c := oracle.WithRetry(next, oracle.RetryConfig{MaxAttempts: 3, BackoffBase: time.Millisecond})

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oracle.ErrUnavailable))
	assert.Equal(t, 1, next.calls)
}

func Test_WithRetry_Cancelled(t *testing.T) {
	next := &scriptedClient{replies: []func() (string, error){
		fail(oracle.ErrRateLimited),
	}}
	c := oracle.WithRetry(next, oracle.RetryConfig{MaxAttempts: 5, BackoffBase: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Complete(ctx, "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oracle.ErrUnavailable))
}

func Test_WithRetry_Disabled(t *testing.T) {
	next := &scriptedClient{replies: []func() (string, error){ok("hi")}}
	c := oracle.WithRetry(next, oracle.RetryConfig{})
	assert.Equal(t, oracle.Client(next), c)
}
