package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/effective-security/agentic/tools/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tool(t *testing.T) {
	frozen := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	tool := clock.New().WithNow(func() time.Time { return frozen })

	assert.Equal(t, clock.ToolName, tool.Name())
	assert.Contains(t, tool.Description(), "date")

	ctx := context.Background()

	resp, err := tool.Run(ctx, &clock.ClockRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", resp.Date)
	assert.Equal(t, "09:26:53", resp.Time)
	assert.Equal(t, "Friday", resp.Weekday)
	assert.Equal(t, frozen.Unix(), resp.Unix)
	assert.Equal(t, "UTC", resp.Timezone)

	// input is ignored, even malformed input succeeds
	out, err := tool.Call(ctx, "whatever")
	require.NoError(t, err)
	assert.Contains(t, out, `"Date":"2025-03-14"`)
}
