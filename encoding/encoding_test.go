package encoding_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/encoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskOutput struct {
	Description string         `json:"Description" yaml:"Description" toml:"Description"`
	Parameters  map[string]any `json:"Parameters,omitempty" yaml:"Parameters,omitempty" toml:"-"`
	Tool        string         `json:"Tool,omitempty" yaml:"Tool,omitempty" toml:"Tool,omitempty"`
}

func Test_TypedOutputParser_JSON(t *testing.T) {
	p, err := encoding.NewTypedOutputParser(taskOutput{}, encoding.ModeJSON)
	require.NoError(t, err)

	instr := p.GetFormatInstructions()
	assert.Contains(t, instr, "```json")
	assert.Contains(t, instr, `"Description"`)

	out, err := p.Parse(`{"Description":"look up weather","Tool":"Weather"}`)
	require.NoError(t, err)
	assert.Equal(t, "look up weather", out.Description)
	assert.Equal(t, "Weather", out.Tool)

	// conversational wrapping is tolerated
	out, err = p.Parse("Sure, here you go:\n```json\n{\"Description\":\"calc\"}\n```\nHope that helps!")
	require.NoError(t, err)
	assert.Equal(t, "calc", out.Description)

	// plain prose is not structured data
	_, err = p.Parse("I could not produce a structured task.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, chatmodel.ErrFailedUnmarshalOutput))
}

func Test_TypedOutputParser_Modes(t *testing.T) {
	p, err := encoding.NewTypedOutputParser(taskOutput{}, encoding.ModeYAML)
	require.NoError(t, err)
	out, err := p.Parse("Description: look up weather\nTool: Weather\n")
	require.NoError(t, err)
	assert.Equal(t, "look up weather", out.Description)
	assert.Contains(t, p.GetFormatInstructions(), "```yaml")

	pt, err := encoding.NewTypedOutputParser(taskOutput{}, encoding.ModeTOML)
	require.NoError(t, err)
	out, err = pt.Parse("Description = \"calc\"\nTool = \"Calculator\"\n")
	require.NoError(t, err)
	assert.Equal(t, "Calculator", out.Tool)

	_, err = encoding.NewTypedOutputParser(taskOutput{}, "unknown")
	assert.Error(t, err)
}
