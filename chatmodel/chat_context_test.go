package chatmodel_test

import (
	"context"
	"testing"

	"github.com/effective-security/agentic/chatmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ChatContext(t *testing.T) {
	ctx := context.Background()

	_, err := chatmodel.GetChatID(ctx)
	assert.EqualError(t, err, "invalid chat context")

	ctx = chatmodel.WithChatID(ctx, "chat-1")
	id, err := chatmodel.GetChatID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chat-1", id)

	// empty ID is replaced with a generated one
	ctx2 := chatmodel.WithChatID(context.Background(), "")
	id2, err := chatmodel.GetChatID(ctx2)
	require.NoError(t, err)
	assert.NotEmpty(t, id2)
}

func Test_Turn(t *testing.T) {
	u := chatmodel.UserTurn("hello")
	assert.Equal(t, chatmodel.RoleUser, u.Role)
	assert.Equal(t, "hello", u.GetContent())
	assert.False(t, u.Timestamp.IsZero())

	a := chatmodel.AgentTurn("hi there")
	assert.Equal(t, chatmodel.RoleAgent, a.Role)
	assert.Equal(t, "hi there", a.Content)
}

func Test_Stringify(t *testing.T) {
	assert.Equal(t, "hello", chatmodel.Stringify(chatmodel.UserTurn("hello")))
	assert.Equal(t, `{"a":1}`, chatmodel.Stringify(map[string]int{"a": 1}))
}
