// Package orchestrator implements the message cycle: a user message is
// interpreted into a task, the task into an ordered plan, the plan is
// executed against the tool registry, and the results are composed into
// the final answer. Each phase is an oracle round trip; oracle failures
// abort the cycle, parse failures never do.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/encoding"
	"github.com/effective-security/agentic/metricskey"
	"github.com/effective-security/agentic/oracle"
	"github.com/effective-security/agentic/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/agentic", "orchestrator")

// phase names used in metrics and callbacks.
const (
	phaseExtract = "extract"
	phasePlan    = "plan"
	phaseRespond = "respond"
)

// Loop drives message cycles for one conversation session.
// Cycles are processed strictly one at a time; a new user message does
// not begin orchestration until the prior cycle reached its terminal
// state. Concurrent sessions should each use their own Loop sharing the
// registry and the store.
type Loop struct {
	oracle   oracle.Client
	registry *tools.Registry
	cfg      *Config

	taskParser chatmodel.OutputParser[Task]
	planParser chatmodel.OutputParser[Plan]

	mu sync.Mutex
}

// New creates an orchestration loop.
func New(client oracle.Client, registry *tools.Registry, options ...Option) (*Loop, error) {
	if client == nil {
		return nil, errors.New("oracle client is required")
	}
	if registry == nil {
		registry = tools.NewRegistry()
	}

	cfg := NewConfig(options...)

	taskParser, err := encoding.NewTypedOutputParser(Task{}, cfg.Mode)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create task parser")
	}
	planParser, err := encoding.NewTypedOutputParser(Plan{}, cfg.Mode)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create plan parser")
	}

	return &Loop{
		oracle:     client,
		registry:   registry,
		cfg:        cfg,
		taskParser: taskParser,
		planParser: planParser,
	}, nil
}

// Name returns the agent display name.
func (l *Loop) Name() string {
	return l.cfg.Name
}

// Tools returns the registry the loop resolves plan steps against.
func (l *Loop) Tools() *tools.Registry {
	return l.registry
}

// Chat runs one full message cycle for the user input and returns the
// cycle outcome. On an oracle error the returned result carries the
// FAILED state, the error is non-nil, and no agent turn is appended;
// the user turn remains logged.
func (l *Loop) Chat(ctx context.Context, input string) (*CycleResult, error) {
	if input == "" {
		return nil, errors.New("invalid request: empty input")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := chatmodel.GetChatID(ctx); err != nil {
		ctx = chatmodel.WithChatID(ctx, "")
	}

	started := time.Now()
	defer metricskey.PerfCycle.MeasureSince(started, l.cfg.Name)

	res, err := l.run(ctx, input)
	if err != nil {
		metricskey.StatsCyclesFailed.IncrCounter(1, l.cfg.Name)
		l.cfg.Callback.OnCycleError(ctx, l.cfg.Name, input, err)
		return res, err
	}

	metricskey.StatsCyclesSucceeded.IncrCounter(1, l.cfg.Name)
	l.cfg.Callback.OnCycleEnd(ctx, l.cfg.Name, input, res)
	return res, nil
}

func (l *Loop) run(ctx context.Context, input string) (*CycleResult, error) {
	cb := l.cfg.Callback
	res := &CycleResult{State: StateReceived}
	cb.OnCycleStart(ctx, l.cfg.Name, input)

	// The user turn is logged before any oracle call so that a failed
	// cycle still leaves it in place for the next attempt.
	if err := l.cfg.Store.Append(ctx, chatmodel.UserTurn(input)); err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "append user turn", "err", err.Error())
	}

	// Phase 1: interpret the user message as a task.
	reply, err := l.complete(ctx, l.buildExtractPrompt(input))
	if err != nil {
		res.State = StateFailed
		return res, errors.WithMessage(err, "failed to extract task")
	}
	task, perr := l.taskParser.Parse(reply)
	if perr != nil {
		// Degenerate task: the raw user message, no tool hint.
		task = &Task{Description: input}
		l.parseFallback(ctx, phaseExtract, reply, perr)
	}
	res.Task = task
	res.State = StateTaskExtracted
	cb.OnStateChange(ctx, l.cfg.Name, res.State)

	// Phase 2: build the plan.
	reply, err = l.complete(ctx, l.buildPlanPrompt(task))
	if err != nil {
		res.State = StateFailed
		return res, errors.WithMessage(err, "failed to build plan")
	}
	plan, perr := l.planParser.Parse(reply)
	if perr != nil || len(plan.Steps) == 0 {
		if perr == nil {
			perr = errors.New("plan has no steps")
		}
		plan = fallbackPlan()
		l.parseFallback(ctx, phasePlan, reply, perr)
	}
	res.Plan = plan
	res.State = StatePlanBuilt
	cb.OnStateChange(ctx, l.cfg.Name, res.State)

	// Phase 3: execute the steps strictly in order. A failed step is
	// recorded and execution continues, only oracle errors abort.
	res.StepResults = l.execute(ctx, plan)
	res.State = StateExecuted
	cb.OnStateChange(ctx, l.cfg.Name, res.State)

	// Phase 4: compose the answer from the history window and results.
	history := l.cfg.Store.Recent(ctx, l.cfg.HistoryWindow)
	reply, err = l.complete(ctx, l.buildRespondPrompt(history, task, res.StepResults))
	if err != nil {
		res.State = StateFailed
		return res, errors.WithMessage(err, "failed to compose response")
	}

	res.Response = reply
	if err := l.cfg.Store.Append(ctx, chatmodel.AgentTurn(reply)); err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "append agent turn", "err", err.Error())
	}
	res.State = StateResponded
	cb.OnStateChange(ctx, l.cfg.Name, res.State)

	return res, nil
}

// execute runs every plan step and returns one result per step.
func (l *Loop) execute(ctx context.Context, plan *Plan) []StepResult {
	cb := l.cfg.Callback
	results := make([]StepResult, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		sr := StepResult{
			Description: step.Description,
			Tool:        step.Tool,
		}
		if step.Tool == "" {
			// no capability needed, record as a no-op
			results = append(results, sr)
			continue
		}

		tool, err := l.registry.Resolve(step.Tool)
		if err != nil {
			// an unknown tool is a no-op step, not a failure
			logger.ContextKV(ctx, xlog.WARNING, "reason", "tool not found", "tool", step.Tool)
			metricskey.StatsToolCallsNotFound.IncrCounter(1, step.Tool)
			cb.OnToolNotFound(ctx, l.cfg.Name, step.Tool)
			results = append(results, sr)
			continue
		}

		input := "{}"
		if len(step.Parameters) > 0 {
			input = chatmodel.Stringify(step.Parameters)
		}
		cb.OnToolStart(ctx, tool, l.cfg.Name, input)

		toolCtx, cancel := context.WithTimeout(ctx, l.cfg.ToolTimeout)
		started := time.Now()
		output, err := tool.Call(toolCtx, input)
		cancel()
		metricskey.PerfToolCall.MeasureSince(started, tool.Name())

		if err != nil {
			sr.Error = err.Error()
			metricskey.StatsToolCallsFailed.IncrCounter(1, tool.Name())
			cb.OnToolError(ctx, tool, l.cfg.Name, input, err)
		} else {
			sr.Output = output
			metricskey.StatsToolCallsSucceeded.IncrCounter(1, tool.Name())
			cb.OnToolEnd(ctx, tool, l.cfg.Name, input, output)
		}
		results = append(results, sr)
	}
	return results
}

func (l *Loop) complete(ctx context.Context, prompt string) (string, error) {
	if l.cfg.OracleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.OracleTimeout)
		defer cancel()
	}
	return l.oracle.Complete(ctx, prompt)
}

func (l *Loop) parseFallback(ctx context.Context, phase, reply string, err error) {
	logger.ContextKV(ctx, xlog.DEBUG,
		"reason", "parse fallback",
		"phase", phase,
		"err", err.Error(),
	)
	metricskey.StatsParseFallbacks.IncrCounter(1, l.cfg.Name, phase)
	l.cfg.Callback.OnParseFallback(ctx, l.cfg.Name, phase, reply, err)
}
