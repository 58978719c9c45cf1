package orchestrator

import (
	"context"

	"github.com/effective-security/agentic/tools"
)

// Callback observes the progress of a message cycle.
// Implementations must be safe for concurrent use across sessions.
type Callback interface {
	// OnCycleStart is called when a user message enters the loop.
	OnCycleStart(ctx context.Context, agentName, input string)
	// OnStateChange is called after each state transition.
	OnStateChange(ctx context.Context, agentName string, state State)
	// OnParseFallback is called when an oracle reply could not be parsed
	// and a fallback structure was substituted.
	OnParseFallback(ctx context.Context, agentName, phase, response string, err error)
	// OnToolStart is called before a tool is invoked.
	OnToolStart(ctx context.Context, tool tools.ITool, agentName, input string)
	// OnToolEnd is called after a tool returned successfully.
	OnToolEnd(ctx context.Context, tool tools.ITool, agentName, input, output string)
	// OnToolError is called after a tool returned an error.
	OnToolError(ctx context.Context, tool tools.ITool, agentName, input string, err error)
	// OnToolNotFound is called for a plan step naming an unknown tool.
	OnToolNotFound(ctx context.Context, agentName, tool string)
	// OnCycleEnd is called when a cycle reaches the responded state.
	OnCycleEnd(ctx context.Context, agentName, input string, result *CycleResult)
	// OnCycleError is called when a cycle fails on an oracle error.
	OnCycleError(ctx context.Context, agentName, input string, err error)
}

// noopCallback is the default when none is configured.
type noopCallback struct{}

func (noopCallback) OnCycleStart(context.Context, string, string)                    {}
func (noopCallback) OnStateChange(context.Context, string, State)                    {}
func (noopCallback) OnParseFallback(context.Context, string, string, string, error)  {}
func (noopCallback) OnToolStart(context.Context, tools.ITool, string, string)        {}
func (noopCallback) OnToolEnd(context.Context, tools.ITool, string, string, string)  {}
func (noopCallback) OnToolError(context.Context, tools.ITool, string, string, error) {}
func (noopCallback) OnToolNotFound(context.Context, string, string)                  {}
func (noopCallback) OnCycleEnd(context.Context, string, string, *CycleResult)        {}
func (noopCallback) OnCycleError(context.Context, string, string, error)             {}
