package schema_test

import (
	"reflect"
	"testing"

	"github.com/effective-security/agentic/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchRequest struct {
	Query string `json:"Query" jsonschema:"title=Query,description=Query to search for relevant content"`
	Limit int    `json:"Limit,omitempty" jsonschema:"title=Limit,description=Maximum number of results"`
}

type nestedRequest struct {
	Name  string          `json:"Name"`
	Inner []searchRequest `json:"Inner,omitempty"`
}

func Test_New(t *testing.T) {
	s, err := schema.New(reflect.TypeOf(searchRequest{}))
	require.NoError(t, err)
	require.NotNil(t, s.Parameters)

	js := s.String()
	assert.Contains(t, js, `"Query"`)
	assert.Contains(t, js, "Query to search for relevant content")
	assert.NotContains(t, js, "$ref")

	// cached per type
	s2, err := schema.New(reflect.TypeOf(searchRequest{}))
	require.NoError(t, err)
	assert.Same(t, s, s2)
}

func Test_New_Nested(t *testing.T) {
	s, err := schema.New(reflect.TypeOf(nestedRequest{}))
	require.NoError(t, err)

	js := s.String()
	assert.Contains(t, js, `"Inner"`)
	assert.NotContains(t, js, "$ref")
}

func Test_FromAny(t *testing.T) {
	s, err := schema.FromAny(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "object", s.Type)
}
