package oracle

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/metricskey"
	"github.com/effective-security/xlog"
)

const (
	// AnthropicTokenEnvVarName is the environment variable for the API key.
	AnthropicTokenEnvVarName = "ANTHROPIC_API_KEY"

	// DefaultAnthropicMaxTokens bounds the completion length.
	DefaultAnthropicMaxTokens = 4096
)

// AnthropicOptions configures the Anthropic client.
type AnthropicOptions struct {
	Token      string
	Model      string
	BaseURL    string
	MaxTokens  int64
	Timeout    time.Duration
	HTTPClient *http.Client
}

// AnthropicOption mutates AnthropicOptions.
type AnthropicOption func(*AnthropicOptions)

func WithAnthropicToken(token string) AnthropicOption {
	return func(o *AnthropicOptions) { o.Token = token }
}

func WithAnthropicModel(model string) AnthropicOption {
	return func(o *AnthropicOptions) { o.Model = model }
}

func WithAnthropicBaseURL(baseURL string) AnthropicOption {
	return func(o *AnthropicOptions) { o.BaseURL = baseURL }
}

func WithAnthropicTimeout(timeout time.Duration) AnthropicOption {
	return func(o *AnthropicOptions) { o.Timeout = timeout }
}

func WithAnthropicHTTPClient(c *http.Client) AnthropicOption {
	return func(o *AnthropicOptions) { o.HTTPClient = c }
}

// AnthropicClient is a Client backed by the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
	opts   *AnthropicOptions
}

var _ Client = (*AnthropicClient)(nil)

// NewAnthropic creates a new Anthropic oracle client using the official SDK.
// If no token is provided via options, it is read from the ANTHROPIC_API_KEY
// environment variable.
func NewAnthropic(opts ...AnthropicOption) (*AnthropicClient, error) {
	options := &AnthropicOptions{
		Token:     os.Getenv(AnthropicTokenEnvVarName),
		MaxTokens: DefaultAnthropicMaxTokens,
		Timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.Token == "" {
		return nil, errors.New("anthropic: missing API key, set it in the ANTHROPIC_API_KEY environment variable")
	}
	if options.Model == "" {
		return nil, errors.New("anthropic: model is required")
	}

	sdkOpts := []option.RequestOption{
		option.WithAPIKey(options.Token),
		option.WithMaxRetries(0),
	}
	if options.BaseURL != "" {
		sdkOpts = append(sdkOpts, option.WithBaseURL(options.BaseURL))
	}
	if options.HTTPClient != nil {
		sdkOpts = append(sdkOpts, option.WithHTTPClient(options.HTTPClient))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(sdkOpts...),
		opts:   options,
	}, nil
}

// GetName implements the Client interface.
func (c *AnthropicClient) GetName() string {
	return c.opts.Model
}

// GetProviderType implements the Client interface.
func (c *AnthropicClient) GetProviderType() ProviderType {
	return ProviderAnthropic
}

// Complete implements the Client interface.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := callContext(ctx, c.opts.Timeout)
	defer cancel()

	started := time.Now()
	defer metricskey.PerfOracleCall.MeasureSince(started, string(ProviderAnthropic), c.opts.Model)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.opts.Model),
		MaxTokens: c.opts.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		metricskey.StatsOracleCallsFailed.IncrCounter(1, string(ProviderAnthropic), c.opts.Model)
		return "", c.classifyError(ctx, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		metricskey.StatsOracleCallsFailed.IncrCounter(1, string(ProviderAnthropic), c.opts.Model)
		return "", errors.WithStack(ErrMalformedResponse)
	}

	metricskey.StatsOracleCallsSucceeded.IncrCounter(1, string(ProviderAnthropic), c.opts.Model)
	return sb.String(), nil
}

func (c *AnthropicClient) classifyError(ctx context.Context, err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		logger.ContextKV(ctx, xlog.WARNING,
			"provider", ProviderAnthropic,
			"model", c.opts.Model,
			"status", apierr.StatusCode,
			"err", err.Error(),
		)
		if apierr.StatusCode == 429 {
			metricskey.StatsOracleRateLimited.IncrCounter(1, string(ProviderAnthropic), c.opts.Model)
		}
		return errors.Mark(err, classifyStatus(apierr.StatusCode))
	}
	return errors.Mark(err, ErrUnavailable)
}
