package calc_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/llmutils"
	"github.com/effective-security/agentic/tools/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Evaluate(t *testing.T) {
	tcases := []struct {
		expr string
		exp  float64
	}{
		{"2 + 2", 4},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10 / 4", 2.5},
		{"10 % 3", 1},
		{"2^10", 1024},
		{"2^3^2", 512},
		{"-5 + 3", -2},
		{"-(2+3)", -5},
		{"3.5 * 2", 7},
		{"  42  ", 42},
	}
	for _, tc := range tcases {
		t.Run(tc.expr, func(t *testing.T) {
			val, err := calc.Evaluate(tc.expr)
			require.NoError(t, err)
			assert.InDelta(t, tc.exp, val, 1e-9)
		})
	}
}

func Test_Evaluate_Errors(t *testing.T) {
	tcases := []struct {
		expr string
		msg  string
	}{
		{"DROP TABLE users", `unexpected character 'D' at position 0`},
		{"2 + ", "unexpected end of expression"},
		{"(2+3", "missing closing parenthesis"},
		{"1/0", "division by zero"},
		{"5 % 0", "division by zero"},
		{"2 ** 3", `unexpected character '*' at position 3`},
		{"__import__('os')", `unexpected character '_' at position 0`},
		{"1..2", `invalid number "1..2"`},
	}
	for _, tc := range tcases {
		t.Run(tc.expr, func(t *testing.T) {
			_, err := calc.Evaluate(tc.expr)
			require.Error(t, err)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func Test_Tool(t *testing.T) {
	tool := calc.New()
	assert.Equal(t, calc.ToolName, tool.Name())
	assert.Contains(t, tool.Description(), "arithmetic")
	assert.NotNil(t, tool.Parameters())

	ctx := context.Background()

	resp, err := tool.Run(ctx, &calc.CalcRequest{Expression: "2 + 2"})
	require.NoError(t, err)
	assert.Equal(t, float64(4), resp.Result)

	_, err = tool.Run(ctx, &calc.CalcRequest{Expression: ""})
	assert.EqualError(t, err, "invalid request: empty expression")

	_, err = tool.Call(ctx, "not json")
	assert.True(t, errors.Is(err, chatmodel.ErrFailedUnmarshalInput))

	out, err := tool.Call(ctx, llmutils.ToJSON(&calc.CalcRequest{Expression: "(2+3)*4"}))
	require.NoError(t, err)
	assert.Contains(t, out, `"Result":20`)

	_, err = tool.Call(ctx, llmutils.ToJSON(&calc.CalcRequest{Expression: "DROP TABLE users"}))
	require.Error(t, err)
}
