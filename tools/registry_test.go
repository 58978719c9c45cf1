package tools_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTool struct {
	name string
	desc string
}

func (t *staticTool) Name() string        { return t.name }
func (t *staticTool) Description() string { return t.desc }
func (t *staticTool) Parameters() any     { return nil }
func (t *staticTool) Call(_ context.Context, input string) (string, error) {
	return "ok:" + input, nil
}

func Test_Registry(t *testing.T) {
	r := tools.NewRegistry(
		&staticTool{name: "Calculator", desc: "evaluates arithmetic"},
		&staticTool{name: "Weather", desc: "looks up weather"},
	)

	assert.Equal(t, []string{"Calculator", "Weather"}, r.Names())

	tool, err := r.Resolve("Calculator")
	require.NoError(t, err)
	assert.Equal(t, "Calculator", tool.Name())

	// lookup is case-insensitive
	tool, err = r.Resolve("calculator")
	require.NoError(t, err)
	assert.Equal(t, "Calculator", tool.Name())

	_, err = r.Resolve("Unknown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tools.ErrToolNotFound))

	// register replaces by name without duplicating
	r.Register(&staticTool{name: "calculator", desc: "v2"})
	assert.Len(t, r.Names(), 2)
	tool, err = r.Resolve("CALCULATOR")
	require.NoError(t, err)
	assert.Equal(t, "v2", tool.Description())
}

func Test_GetDescriptions(t *testing.T) {
	r := tools.NewRegistry(&staticTool{name: "Clock", desc: "returns the current time"})
	d := r.Descriptions()
	assert.Contains(t, d, "```json")
	assert.Contains(t, d, `"Clock"`)
	assert.Contains(t, d, "returns the current time")
}
