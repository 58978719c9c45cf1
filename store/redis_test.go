package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/docker/docker/api/types/container"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/agentic/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	rediscon "github.com/testcontainers/testcontainers-go/modules/redis"
)

func Test_RedisStore_NoChatID(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	s := store.NewRedisStore(client, "test", 0)

	// chat ID is resolved before any network call
	ctx := context.Background()
	err := s.Append(ctx, chatmodel.UserTurn("hello"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, chatmodel.ErrInvalidChatContext))

	assert.Nil(t, s.Messages(ctx))
	assert.Nil(t, s.Recent(ctx, 5))
	assert.Error(t, s.Reset(ctx))
}

func Test_RedisStore(t *testing.T) {
	ctx := context.Background()
	redisContainer, err := rediscon.Run(ctx, "redis:7",
		testcontainers.WithConfigModifier(func(config *container.Config) {
			config.Env = []string{
				"ALLOW_EMPTY_PASSWORD=yes",
				"REDIS_PASSWORD=redis",
				"REDIS_TLS_PORT=16379",
			}
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, redisContainer.Terminate(ctx))
	})

	state, err := redisContainer.State(ctx)
	require.NoError(t, err)
	require.True(t, state.Running)

	root := fmt.Sprintf("test-%d", time.Now().Unix())

	host, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err)

	options, err := redis.ParseURL(host)
	require.NoError(t, err)

	// Create a new Redis store
	client := redis.NewClient(options)

	rs := client.Ping(ctx) // Ensure the connection is established
	require.NoError(t, rs.Err(), "failed to connect to Redis")

	st := store.NewRedisStore(client, root, 4)

	expErr := "invalid chat context"
	assert.EqualError(t, st.Reset(ctx), expErr)
	assert.EqualError(t, st.Append(ctx, chatmodel.UserTurn("Hello")), expErr)
	assert.EqualError(t, st.UpdateChat(ctx, "", nil), expErr)
	_, err = st.GetChatInfo(ctx, "")
	assert.EqualError(t, err, expErr)
	assert.Empty(t, st.Messages(ctx))

	chatID := "chat1"
	ctx = chatmodel.WithChatID(ctx, chatID)

	require.NoError(t, st.Append(ctx, chatmodel.UserTurn("Hello"), chatmodel.AgentTurn("Hi there!")))

	messages := st.Messages(ctx)
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello", messages[0].Content)
	assert.Equal(t, "Hi there!", messages[1].Content)

	// capacity is 4: appending past it trims the oldest turns
	require.NoError(t, st.Append(ctx,
		chatmodel.UserTurn("one"),
		chatmodel.AgentTurn("two"),
		chatmodel.UserTurn("three"),
	))
	messages = st.Messages(ctx)
	require.Len(t, messages, 4)
	assert.Equal(t, "Hi there!", messages[0].Content)
	assert.Equal(t, "one", messages[1].Content)
	assert.Equal(t, "three", messages[3].Content)

	recent := st.Recent(ctx, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Content)
	assert.Equal(t, "three", recent[1].Content)

	ci, err := st.GetChatInfo(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, chatID, ci.ChatID)
	assert.Empty(t, ci.Title)
	assert.Len(t, ci.Turns, 4)
	updatedAt := ci.UpdatedAt

	// Update chat title and metadata
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, st.UpdateChat(ctx, "Updated Title", map[string]any{"key": "value"}))
	ci, err = st.GetChatInfo(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", ci.Title)
	assert.Equal(t, "value", ci.Metadata["key"])
	assert.True(t, ci.UpdatedAt.After(updatedAt))

	list, err := st.ListChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{chatID}, list)

	// a second chat in the same namespace
	ctx2 := chatmodel.WithChatID(context.Background(), "chat2")
	require.NoError(t, st.Append(ctx2, chatmodel.UserTurn("second chat")))

	list, err = st.ListChats(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// info for an explicit ID carries that chat's turns, not the context's
	other, err := st.GetChatInfo(ctx, "chat2")
	require.NoError(t, err)
	assert.Equal(t, "chat2", other.ChatID)
	require.Len(t, other.Turns, 1)
	assert.Equal(t, "second chat", other.Turns[0].Content)

	// Reset clears the chat and removes it from the list
	require.NoError(t, st.Reset(ctx2))
	assert.Empty(t, st.Messages(ctx2))
	list, err = st.ListChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{chatID}, list)

	// Cleanup removes only chats older than maxAge
	removed, err := st.Cleanup(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	time.Sleep(2 * time.Millisecond)
	removed, err = st.Cleanup(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	list, err = st.ListChats(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, st.Messages(ctx))
}
