package orchestrator

import (
	"fmt"
	"strings"

	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/llmutils"
)

// The loop sends three prompts per cycle. Each prompt carries the
// persona, the relevant context and explicit format instructions, but
// the oracle is not contractually guaranteed to comply, see the
// fallback policy in run().

func (l *Loop) buildExtractPrompt(input string) string {
	var sb strings.Builder
	sb.WriteString(l.cfg.Persona)
	sb.WriteString("\n\nInterpret the user message below as a task.\n")
	sb.WriteString("\nAvailable tools:\n")
	sb.WriteString(l.registry.Descriptions())
	sb.WriteString("\nUser message:\n")
	fmt.Fprintf(&sb, "%q\n\n", input)
	sb.WriteString(l.taskParser.GetFormatInstructions())
	return sb.String()
}

func (l *Loop) buildPlanPrompt(task *Task) string {
	var sb strings.Builder
	sb.WriteString(l.cfg.Persona)
	sb.WriteString("\n\nProduce an ordered plan of steps for the task below.\n")
	sb.WriteString("Use only the listed tools. A step may omit the tool when no capability is needed.\n")
	sb.WriteString("\nAvailable tools:\n")
	sb.WriteString(l.registry.Descriptions())
	sb.WriteString("\nTask:\n")
	sb.WriteString(llmutils.BackticksJSON(llmutils.ToJSONIndent(task)))
	sb.WriteString("\n")
	sb.WriteString(l.planParser.GetFormatInstructions())
	return sb.String()
}

func (l *Loop) buildRespondPrompt(history []chatmodel.Turn, task *Task, results []StepResult) string {
	var sb strings.Builder
	sb.WriteString(l.cfg.Persona)
	sb.WriteString("\n\nCompose the final answer for the user.\n")
	if len(history) > 0 {
		sb.WriteString("\nRecent conversation:\n")
		for _, turn := range history {
			fmt.Fprintf(&sb, "%s: %s\n", turn.Role, turn.Content)
		}
	}
	sb.WriteString("\nTask:\n")
	sb.WriteString(llmutils.BackticksJSON(llmutils.ToJSONIndent(task)))
	sb.WriteString("\nStep results:\n")
	sb.WriteString(llmutils.BackticksJSON(llmutils.ToJSONIndent(results)))
	sb.WriteString("\nAnswer the user directly in plain text. Do not mention the plan or the tools unless asked.\n")
	return sb.String()
}
