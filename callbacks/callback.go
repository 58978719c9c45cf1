// Package callbacks provides ready-made observers for the
// orchestration loop.
package callbacks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/effective-security/agentic/orchestrator"
	"github.com/effective-security/agentic/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/agentic", "callbacks")

// ensure that the callbacks implement the correct interfaces
var (
	_ orchestrator.Callback = (*Noop)(nil)
	_ tools.Callback        = (*Noop)(nil)
	_ orchestrator.Callback = (*Printer)(nil)
	_ tools.Callback        = (*Printer)(nil)
	_ orchestrator.Callback = (*PackageLogger)(nil)
	_ tools.Callback        = (*PackageLogger)(nil)
	_ orchestrator.Callback = (*Fanout)(nil)
	_ tools.Callback        = (*Fanout)(nil)
)

// Mode defines the mode for callback printing
type Mode int

const (
	// ModeDefault is the default mode for callback printing
	ModeDefault Mode = iota
	// ModeVerbose is the verbose mode for callback printing
	ModeVerbose
)

// Fanout is a callback handler that forwards the events to multiple callbacks.
type Fanout struct {
	callbacks []orchestrator.Callback
}

func NewFanout(callbacks ...orchestrator.Callback) *Fanout {
	return &Fanout{callbacks: callbacks}
}

func (l *Fanout) Add(callback orchestrator.Callback) {
	l.callbacks = append(l.callbacks, callback)
}

func (l *Fanout) OnCycleStart(ctx context.Context, agentName, input string) {
	for _, callback := range l.callbacks {
		callback.OnCycleStart(ctx, agentName, input)
	}
}

func (l *Fanout) OnStateChange(ctx context.Context, agentName string, state orchestrator.State) {
	for _, callback := range l.callbacks {
		callback.OnStateChange(ctx, agentName, state)
	}
}

func (l *Fanout) OnParseFallback(ctx context.Context, agentName, phase, response string, err error) {
	for _, callback := range l.callbacks {
		callback.OnParseFallback(ctx, agentName, phase, response, err)
	}
}

func (l *Fanout) OnToolStart(ctx context.Context, tool tools.ITool, agentName, input string) {
	for _, callback := range l.callbacks {
		callback.OnToolStart(ctx, tool, agentName, input)
	}
}

func (l *Fanout) OnToolEnd(ctx context.Context, tool tools.ITool, agentName, input, output string) {
	for _, callback := range l.callbacks {
		callback.OnToolEnd(ctx, tool, agentName, input, output)
	}
}

func (l *Fanout) OnToolError(ctx context.Context, tool tools.ITool, agentName, input string, err error) {
	for _, callback := range l.callbacks {
		callback.OnToolError(ctx, tool, agentName, input, err)
	}
}

func (l *Fanout) OnToolNotFound(ctx context.Context, agentName, tool string) {
	for _, callback := range l.callbacks {
		callback.OnToolNotFound(ctx, agentName, tool)
	}
}

func (l *Fanout) OnCycleEnd(ctx context.Context, agentName, input string, result *orchestrator.CycleResult) {
	for _, callback := range l.callbacks {
		callback.OnCycleEnd(ctx, agentName, input, result)
	}
}

func (l *Fanout) OnCycleError(ctx context.Context, agentName, input string, err error) {
	for _, callback := range l.callbacks {
		callback.OnCycleError(ctx, agentName, input, err)
	}
}

// Noop does nothing.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (l *Noop) OnCycleStart(ctx context.Context, agentName, input string)                 {}
func (l *Noop) OnStateChange(ctx context.Context, agentName string, s orchestrator.State) {}
func (l *Noop) OnParseFallback(ctx context.Context, agentName, phase, response string, err error) {
}
func (l *Noop) OnToolStart(ctx context.Context, tool tools.ITool, agentName, input string) {}
func (l *Noop) OnToolEnd(ctx context.Context, tool tools.ITool, agentName, input, output string) {
}
func (l *Noop) OnToolError(ctx context.Context, tool tools.ITool, agentName, input string, err error) {
}
func (l *Noop) OnToolNotFound(ctx context.Context, agentName, tool string) {}
func (l *Noop) OnCycleEnd(ctx context.Context, agentName, input string, result *orchestrator.CycleResult) {
}
func (l *Noop) OnCycleError(ctx context.Context, agentName, input string, err error) {}

// Printer is a callback handler that prints to the Writer.
type Printer struct {
	Out  io.Writer
	Mode Mode

	lock sync.Mutex
}

func NewPrinter(out io.Writer, mode Mode) *Printer {
	return &Printer{Out: out, Mode: mode}
}

func (l *Printer) OnCycleStart(ctx context.Context, agentName, input string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Cycle Start: %s\n", agentName)
	fmt.Fprintf(l.Out, "Input: %s\n", input)
}

func (l *Printer) OnStateChange(ctx context.Context, agentName string, state orchestrator.State) {
	if l.Mode != ModeVerbose {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "State: %s\n", state)
}

func (l *Printer) OnParseFallback(ctx context.Context, agentName, phase, response string, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Parse Fallback: %s phase %s\n", agentName, phase)
	if l.Mode == ModeVerbose {
		fmt.Fprintf(l.Out, "Response: %s\n", response)
	}
}

func (l *Printer) OnToolStart(ctx context.Context, tool tools.ITool, agentName, input string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Start: %s (%s)\n", tool.Name(), agentName)
	fmt.Fprintf(l.Out, "Input: %s\n", input)
}

func (l *Printer) OnToolEnd(ctx context.Context, tool tools.ITool, agentName, input, output string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool End: %s (%s)\n", tool.Name(), agentName)
	if l.Mode == ModeVerbose {
		fmt.Fprintf(l.Out, "Output: %s\n", output)
	}
}

func (l *Printer) OnToolError(ctx context.Context, tool tools.ITool, agentName, input string, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Error: %s (%s): %s\n", tool.Name(), agentName, err.Error())
}

func (l *Printer) OnToolNotFound(ctx context.Context, agentName, tool string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Not Found: %s (%s)\n", tool, agentName)
}

func (l *Printer) OnCycleEnd(ctx context.Context, agentName, input string, result *orchestrator.CycleResult) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Cycle End: %s: %s\n", agentName, result.State)
	if l.Mode == ModeVerbose {
		fmt.Fprintln(l.Out, result.Response)
	}
}

func (l *Printer) OnCycleError(ctx context.Context, agentName, input string, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Cycle Error: %s: %s\n", agentName, err.Error())
}

// PackageLogger is a callback handler that logs the events with the
// package logger.
type PackageLogger struct{}

func NewPackageLogger() *PackageLogger {
	return &PackageLogger{}
}

func (l *PackageLogger) OnCycleStart(ctx context.Context, agentName, input string) {
	logger.ContextKV(ctx, xlog.DEBUG, "event", "cycle_start", "agent", agentName)
}

func (l *PackageLogger) OnStateChange(ctx context.Context, agentName string, state orchestrator.State) {
	logger.ContextKV(ctx, xlog.DEBUG, "event", "state_change", "agent", agentName, "state", state)
}

func (l *PackageLogger) OnParseFallback(ctx context.Context, agentName, phase, response string, err error) {
	logger.ContextKV(ctx, xlog.INFO, "event", "parse_fallback", "agent", agentName, "phase", phase)
}

func (l *PackageLogger) OnToolStart(ctx context.Context, tool tools.ITool, agentName, input string) {
	logger.ContextKV(ctx, xlog.DEBUG, "event", "tool_start", "agent", agentName, "tool", tool.Name())
}

func (l *PackageLogger) OnToolEnd(ctx context.Context, tool tools.ITool, agentName, input, output string) {
	logger.ContextKV(ctx, xlog.DEBUG, "event", "tool_end", "agent", agentName, "tool", tool.Name())
}

func (l *PackageLogger) OnToolError(ctx context.Context, tool tools.ITool, agentName, input string, err error) {
	logger.ContextKV(ctx, xlog.WARNING, "event", "tool_error", "agent", agentName, "tool", tool.Name(), "err", err.Error())
}

func (l *PackageLogger) OnToolNotFound(ctx context.Context, agentName, tool string) {
	logger.ContextKV(ctx, xlog.WARNING, "event", "tool_not_found", "agent", agentName, "tool", tool)
}

func (l *PackageLogger) OnCycleEnd(ctx context.Context, agentName, input string, result *orchestrator.CycleResult) {
	logger.ContextKV(ctx, xlog.DEBUG, "event", "cycle_end", "agent", agentName, "state", result.State)
}

func (l *PackageLogger) OnCycleError(ctx context.Context, agentName, input string, err error) {
	logger.ContextKV(ctx, xlog.ERROR, "event", "cycle_error", "agent", agentName, "err", err.Error())
}
