package callbacks_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/callbacks"
	"github.com/effective-security/agentic/orchestrator"
	"github.com/effective-security/agentic/tools/calc"
	"github.com/stretchr/testify/assert"
)

func Test_Printer(t *testing.T) {
	var buf bytes.Buffer
	cb := callbacks.NewPrinter(&buf, callbacks.ModeVerbose)
	ctx := context.Background()
	tool := calc.New()

	cb.OnCycleStart(ctx, "Agent", "hello")
	cb.OnStateChange(ctx, "Agent", orchestrator.StateTaskExtracted)
	cb.OnParseFallback(ctx, "Agent", "plan", "prose", errors.New("bad json"))
	cb.OnToolStart(ctx, tool, "Agent", `{"Expression":"1+1"}`)
	cb.OnToolEnd(ctx, tool, "Agent", `{"Expression":"1+1"}`, `{"Result":2}`)
	cb.OnToolError(ctx, tool, "Agent", "{}", errors.New("boom"))
	cb.OnToolNotFound(ctx, "Agent", "Teleport")
	cb.OnCycleEnd(ctx, "Agent", "hello", &orchestrator.CycleResult{
		State:    orchestrator.StateResponded,
		Response: "done",
	})
	cb.OnCycleError(ctx, "Agent", "hello", errors.New("oracle down"))

	out := buf.String()
	assert.Contains(t, out, "Cycle Start: Agent")
	assert.Contains(t, out, "State: TASK_EXTRACTED")
	assert.Contains(t, out, "Parse Fallback: Agent phase plan")
	assert.Contains(t, out, "Tool Start: Calculator (Agent)")
	assert.Contains(t, out, "Tool Error: Calculator (Agent): boom")
	assert.Contains(t, out, "Tool Not Found: Teleport (Agent)")
	assert.Contains(t, out, "Cycle End: Agent: RESPONDED")
	assert.Contains(t, out, "Cycle Error: Agent: oracle down")
}

func Test_Fanout(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	fan := callbacks.NewFanout(
		callbacks.NewPrinter(&buf1, callbacks.ModeDefault),
		callbacks.NewNoop(),
	)
	fan.Add(callbacks.NewPrinter(&buf2, callbacks.ModeDefault))

	fan.OnCycleStart(context.Background(), "Agent", "hi")
	assert.Contains(t, buf1.String(), "Cycle Start: Agent")
	assert.Contains(t, buf2.String(), "Cycle Start: Agent")
}
