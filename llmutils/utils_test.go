package llmutils_test

import (
	"testing"

	"github.com/effective-security/agentic/llmutils"
	"github.com/stretchr/testify/assert"
)

func Test_CleanJSON(t *testing.T) {
	tcases := []struct {
		name string
		in   string
		exp  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"prefix", `Sure, here you go: {"a":1}`, `{"a":1}`},
		{"postfix", `{"a":1} Let me know if that helps!`, `{"a":1}`},
		{"both", `Here: [{"a":1},{"b":2}] done.`, `[{"a":1},{"b":2}]`},
		{"no_json", `no structured data here`, `no structured data here`},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, string(llmutils.CleanJSON([]byte(tc.in))))
		})
	}
}

func Test_TrimBackticks(t *testing.T) {
	in := "```json\n{\"a\":1}\n```"
	assert.Equal(t, `{"a":1}`, llmutils.TrimBackticks(in))

	in = "```\n[1,2,3]\n```"
	assert.Equal(t, `[1,2,3]`, llmutils.TrimBackticks(in))

	assert.Equal(t, `{"a":1}`, llmutils.TrimBackticks(`{"a":1}`))
}

func Test_ToJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, llmutils.ToJSON(map[string]int{"a": 1}))
	assert.Equal(t, "{\n\t\"a\": 1\n}", llmutils.ToJSONIndent(map[string]int{"a": 1}))
	assert.Equal(t, "\n```json\n{\"a\":1}\n```\n", llmutils.BackticksJSON(`{"a":1}`))
}
