package oracle

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/metricskey"
	"github.com/effective-security/xlog"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// OpenAITokenEnvVarName is the environment variable for the API key.
	OpenAITokenEnvVarName = "OPENAI_API_KEY"

	// DefaultOpenAIModel is used when the configuration does not name one.
	DefaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIOptions configures the OpenAI-compatible client.
// The same client serves Azure and Perplexity deployments via BaseURL.
type OpenAIOptions struct {
	Token       string
	Model       string
	BaseURL     string
	Provider    ProviderType
	Timeout     time.Duration
	Temperature float64
	HTTPClient  *http.Client
}

// OpenAIOption mutates OpenAIOptions.
type OpenAIOption func(*OpenAIOptions)

func WithToken(token string) OpenAIOption {
	return func(o *OpenAIOptions) { o.Token = token }
}

func WithModel(model string) OpenAIOption {
	return func(o *OpenAIOptions) { o.Model = model }
}

func WithBaseURL(baseURL string) OpenAIOption {
	return func(o *OpenAIOptions) { o.BaseURL = baseURL }
}

func WithProvider(p ProviderType) OpenAIOption {
	return func(o *OpenAIOptions) { o.Provider = p }
}

func WithTimeout(timeout time.Duration) OpenAIOption {
	return func(o *OpenAIOptions) { o.Timeout = timeout }
}

func WithTemperature(t float64) OpenAIOption {
	return func(o *OpenAIOptions) { o.Temperature = t }
}

func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(o *OpenAIOptions) { o.HTTPClient = c }
}

// OpenAIClient is a Client backed by a chat-completions endpoint.
type OpenAIClient struct {
	client openai.Client
	opts   *OpenAIOptions
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAI creates a new OpenAI-compatible oracle client.
// If no token is provided via options, it is read from the OPENAI_API_KEY
// environment variable.
func NewOpenAI(opts ...OpenAIOption) (*OpenAIClient, error) {
	options := &OpenAIOptions{
		Token:       os.Getenv(OpenAITokenEnvVarName),
		Model:       DefaultOpenAIModel,
		Provider:    ProviderOpenAI,
		Timeout:     DefaultTimeout,
		Temperature: 0.1,
	}
	for _, opt := range opts {
		opt(options)
	}

	if options.Token == "" {
		return nil, errors.New("openai: missing API key, set it in the OPENAI_API_KEY environment variable")
	}

	sdkOpts := []option.RequestOption{
		option.WithAPIKey(options.Token),
		// retries are handled by the retry wrapper, not the SDK
		option.WithMaxRetries(0),
	}
	if options.BaseURL != "" {
		sdkOpts = append(sdkOpts, option.WithBaseURL(options.BaseURL))
	}
	if options.HTTPClient != nil {
		sdkOpts = append(sdkOpts, option.WithHTTPClient(options.HTTPClient))
	}

	return &OpenAIClient{
		client: openai.NewClient(sdkOpts...),
		opts:   options,
	}, nil
}

// GetName implements the Client interface.
func (c *OpenAIClient) GetName() string {
	return c.opts.Model
}

// GetProviderType implements the Client interface.
func (c *OpenAIClient) GetProviderType() ProviderType {
	return c.opts.Provider
}

// Complete implements the Client interface.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := callContext(ctx, c.opts.Timeout)
	defer cancel()

	started := time.Now()
	defer metricskey.PerfOracleCall.MeasureSince(started, string(c.opts.Provider), c.opts.Model)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.opts.Temperature),
	})
	if err != nil {
		metricskey.StatsOracleCallsFailed.IncrCounter(1, string(c.opts.Provider), c.opts.Model)
		return "", c.classifyError(ctx, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		metricskey.StatsOracleCallsFailed.IncrCounter(1, string(c.opts.Provider), c.opts.Model)
		return "", errors.WithStack(ErrMalformedResponse)
	}

	metricskey.StatsOracleCallsSucceeded.IncrCounter(1, string(c.opts.Provider), c.opts.Model)
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) classifyError(ctx context.Context, err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		logger.ContextKV(ctx, xlog.WARNING,
			"provider", c.opts.Provider,
			"model", c.opts.Model,
			"status", apierr.StatusCode,
			"err", err.Error(),
		)
		if apierr.StatusCode == 429 {
			metricskey.StatsOracleRateLimited.IncrCounter(1, string(c.opts.Provider), c.opts.Model)
		}
		return errors.Mark(err, classifyStatus(apierr.StatusCode))
	}
	// network failure, timeout or cancellation
	return errors.Mark(err, ErrUnavailable)
}
