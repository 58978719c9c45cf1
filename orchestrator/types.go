package orchestrator

import (
	"github.com/effective-security/agentic/llmutils"
)

// State is the stage a message cycle has reached.
type State string

const (
	// StateReceived is the initial state of a cycle.
	StateReceived State = "RECEIVED"
	// StateTaskExtracted means the user message was interpreted into a Task.
	StateTaskExtracted State = "TASK_EXTRACTED"
	// StatePlanBuilt means an ordered plan of steps was produced.
	StatePlanBuilt State = "PLAN_BUILT"
	// StateExecuted means every plan step was executed.
	StateExecuted State = "EXECUTED"
	// StateResponded is the terminal state of a successful cycle.
	StateResponded State = "RESPONDED"
	// StateFailed is the terminal state of a cycle aborted by an oracle error.
	StateFailed State = "FAILED"
)

// Task is the structured interpretation of a user message.
type Task struct {
	Description string         `json:"Description" yaml:"Description" jsonschema:"title=Description,description=A concise description of what the user wants done."`
	Tool        string         `json:"Tool,omitempty" yaml:"Tool,omitempty" jsonschema:"title=Tool,description=The name of the most relevant tool if any."`
	Parameters  map[string]any `json:"Parameters,omitempty" yaml:"Parameters,omitempty" jsonschema:"title=Parameters,description=Parameters extracted from the user message."`
}

// GetContent implements the ContentProvider interface.
func (t *Task) GetContent() string {
	return llmutils.ToJSON(t)
}

// PlanStep is one ordered action of a plan.
// Tool may be empty for a step that needs no capability.
type PlanStep struct {
	Description string         `json:"Description" yaml:"Description" jsonschema:"title=Description,description=What this step accomplishes."`
	Tool        string         `json:"Tool,omitempty" yaml:"Tool,omitempty" jsonschema:"title=Tool,description=The name of the tool to invoke for this step if any."`
	Parameters  map[string]any `json:"Parameters,omitempty" yaml:"Parameters,omitempty" jsonschema:"title=Parameters,description=The input parameters for the tool."`
}

// Plan is the ordered sequence of steps for a task.
type Plan struct {
	Steps []PlanStep `json:"Steps" yaml:"Steps" jsonschema:"title=Steps,description=The ordered steps to execute."`
}

// GetContent implements the ContentProvider interface.
func (p *Plan) GetContent() string {
	return llmutils.ToJSON(p)
}

// fallbackPlan is substituted when the planning reply cannot be parsed.
func fallbackPlan() *Plan {
	return &Plan{
		Steps: []PlanStep{
			{Description: "process the request"},
		},
	}
}

// StepResult records the outcome of one plan step.
// A step whose tool was unset or unknown has both Output and Error empty.
type StepResult struct {
	Description string `json:"Description" yaml:"Description"`
	Tool        string `json:"Tool,omitempty" yaml:"Tool,omitempty"`
	Output      string `json:"Output,omitempty" yaml:"Output,omitempty"`
	Error       string `json:"Error,omitempty" yaml:"Error,omitempty"`
}

// CycleResult is the outcome of one message cycle.
// StepResults always has exactly one entry per plan step.
type CycleResult struct {
	State       State        `json:"State" yaml:"State"`
	Task        *Task        `json:"Task,omitempty" yaml:"Task,omitempty"`
	Plan        *Plan        `json:"Plan,omitempty" yaml:"Plan,omitempty"`
	StepResults []StepResult `json:"StepResults,omitempty" yaml:"StepResults,omitempty"`
	Response    string       `json:"Response,omitempty" yaml:"Response,omitempty"`
}

// GetContent implements the ContentProvider interface.
func (r *CycleResult) GetContent() string {
	return llmutils.ToJSON(r)
}
