// Package clock provides the current date and time tool.
package clock

import (
	"context"
	"reflect"
	"time"

	"github.com/effective-security/agentic/llmutils"
	"github.com/effective-security/agentic/schema"
	"github.com/effective-security/agentic/tools"
)

// ToolName is the registry key for the date and time tool.
const ToolName = "Clock"

// ClockRequest represents the tool input. The tool takes no arguments.
type ClockRequest struct{}

// ClockResult represents the current date and time.
type ClockResult struct {
	Date     string `json:"Date" yaml:"Date" jsonschema:"title=Date,description=The current date in YYYY-MM-DD format."`
	Time     string `json:"Time" yaml:"Time" jsonschema:"title=Time,description=The current time in HH:MM:SS format."`
	Weekday  string `json:"Weekday" yaml:"Weekday" jsonschema:"title=Weekday,description=The current day of the week."`
	Unix     int64  `json:"Unix" yaml:"Unix" jsonschema:"title=Unix,description=The current Unix timestamp in seconds."`
	Timezone string `json:"Timezone" yaml:"Timezone" jsonschema:"title=Timezone,description=The timezone of the report."`
}

// GetContent implements the ContentProvider interface.
func (r *ClockResult) GetContent() string {
	return llmutils.ToJSON(r)
}

// Tool is a tool that reports the current date and time.
type Tool struct {
	name        string
	description string

	// now is replaceable for tests
	now func() time.Time
}

var _ tools.Tool[ClockRequest, ClockResult] = (*Tool)(nil)

// New creates the date and time tool.
func New() *Tool {
	return &Tool{
		name:        ToolName,
		description: "A tool that returns the current date, time and weekday. Takes no input.",
		now:         time.Now,
	}
}

// WithNow overrides the time source.
func (t *Tool) WithNow(now func() time.Time) *Tool {
	t.now = now
	return t
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() any {
	sc, _ := schema.New(reflect.TypeOf(ClockRequest{}))
	return sc.Parameters
}

func (t *Tool) Run(ctx context.Context, _ *ClockRequest) (*ClockResult, error) {
	now := t.now().UTC()
	return &ClockResult{
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
		Weekday:  now.Weekday().String(),
		Unix:     now.Unix(),
		Timezone: "UTC",
	}, nil
}

// Call ignores the input, the tool takes no arguments.
func (t *Tool) Call(ctx context.Context, _ string) (string, error) {
	out, err := t.Run(ctx, &ClockRequest{})
	if err != nil {
		return "", err
	}
	return llmutils.ToJSON(out), nil
}
