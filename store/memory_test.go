package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryStore(t *testing.T) {
	s := store.NewMemoryStore(0)
	ctx := chatmodel.WithChatID(context.Background(), "chat1")

	assert.Empty(t, s.Messages(ctx))

	err := s.Append(ctx,
		chatmodel.UserTurn("hello"),
		chatmodel.AgentTurn("hi there"),
	)
	require.NoError(t, err)

	turns := s.Messages(ctx)
	require.Len(t, turns, 2)
	assert.Equal(t, chatmodel.RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, chatmodel.RoleAgent, turns[1].Role)

	// other chats are isolated
	other := chatmodel.WithChatID(context.Background(), "chat2")
	assert.Empty(t, s.Messages(other))

	require.NoError(t, s.Reset(ctx))
	assert.Empty(t, s.Messages(ctx))
}

func Test_MemoryStore_Capacity(t *testing.T) {
	s := store.NewMemoryStore(3)
	ctx := chatmodel.WithChatID(context.Background(), "chat1")

	for i := 0; i < 5; i++ {
		err := s.Append(ctx, chatmodel.UserTurn(fmt.Sprintf("turn %d", i)))
		require.NoError(t, err)
	}

	turns := s.Messages(ctx)
	require.Len(t, turns, 3)
	// oldest evicted, order preserved
	assert.Equal(t, "turn 2", turns[0].Content)
	assert.Equal(t, "turn 3", turns[1].Content)
	assert.Equal(t, "turn 4", turns[2].Content)
}

func Test_MemoryStore_Recent(t *testing.T) {
	s := store.NewMemoryStore(10)
	ctx := chatmodel.WithChatID(context.Background(), "chat1")

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, chatmodel.UserTurn(fmt.Sprintf("turn %d", i))))
	}

	recent := s.Recent(ctx, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "turn 3", recent[0].Content)
	assert.Equal(t, "turn 4", recent[1].Content)

	// asking for more than retained returns everything
	assert.Len(t, s.Recent(ctx, 100), 5)
	assert.Nil(t, s.Recent(ctx, 0))
}

func Test_MemoryStore_NoChatID(t *testing.T) {
	s := store.NewMemoryStore(0)
	ctx := context.Background()

	err := s.Append(ctx, chatmodel.UserTurn("hello"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, chatmodel.ErrInvalidChatContext))

	assert.Nil(t, s.Messages(ctx))
	assert.Error(t, s.Reset(ctx))
}
