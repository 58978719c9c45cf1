package store

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

// The redis store implements the MessageStore interface using Redis as
// the backend, so the conversation log survives restarts and can be
// shared between replicas. The keys namespace is organized as follows:
// - `/<prefix>/chatlog/messages/<chatID>` for the turn list
// - `/<prefix>/chatlog/info/<chatID>` for chat metadata
// - `/<prefix>/chatlog/chats` for the set of known chat IDs

type redisStore struct {
	client   *redis.Client
	prefix   string
	capacity int
}

// NewRedisStore creates a Redis-backed conversation log.
// A capacity of 0 or less uses DefaultCapacity.
func NewRedisStore(client *redis.Client, prefix string, capacity int) ChatStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &redisStore{
		client:   client,
		prefix:   prefix,
		capacity: capacity,
	}
}

func (m *redisStore) getRedisMessagesKey(chatID string) string {
	return path.Join(m.prefix, "chatlog", "messages", chatID)
}

func (m *redisStore) getRedisChatInfoKey(chatID string) string {
	return path.Join(m.prefix, "chatlog", "info", chatID)
}

func (m *redisStore) getRedisChatListKey() string {
	return path.Join(m.prefix, "chatlog", "chats")
}

func (m *redisStore) Append(ctx context.Context, turns ...chatmodel.Turn) error {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		return err
	}

	key := m.getRedisMessagesKey(chatID)
	pipe := m.client.Pipeline()
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return errors.Wrap(err, "failed to marshal turn")
		}
		pipe.RPush(ctx, key, data)
	}
	// keep only the most recent turns
	pipe.LTrim(ctx, key, int64(-m.capacity), -1)
	_, err = pipe.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to store turns in Redis")
	}

	// Update the time
	return m.UpdateChat(ctx, "", nil)
}

func (m *redisStore) Messages(ctx context.Context) []chatmodel.Turn {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "GetChatID", "err", err.Error())
		return nil
	}
	return m.messagesForChat(ctx, chatID)
}

func (m *redisStore) messagesForChat(ctx context.Context, chatID string) []chatmodel.Turn {
	key := m.getRedisMessagesKey(chatID)
	data, err := m.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "LRange", "err", err.Error())
		return nil
	}

	var turns []chatmodel.Turn
	for _, item := range data {
		var turn chatmodel.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "unmarshal turn", "err", err.Error())
			continue
		}
		turns = append(turns, turn)
	}
	return turns
}

func (m *redisStore) Recent(ctx context.Context, n int) []chatmodel.Turn {
	return tail(m.Messages(ctx), n)
}

func (m *redisStore) Reset(ctx context.Context) error {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		return err
	}

	pipe := m.client.Pipeline()
	pipe.Del(ctx, m.getRedisMessagesKey(chatID))
	pipe.Del(ctx, m.getRedisChatInfoKey(chatID))
	pipe.SRem(ctx, m.getRedisChatListKey(), chatID)
	_, err = pipe.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to reset chat in Redis")
	}

	return nil
}

// UpdateChat creates or updates the chat metadata for the chat ID from context.
func (m *redisStore) UpdateChat(ctx context.Context, title string, metadata map[string]any) error {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		return err
	}

	chat, isNew, err := m.getChatInfo(ctx, chatID)
	if err != nil {
		return errors.Wrap(err, "failed to get chat info")
	}

	if title != "" {
		chat.Title = title
	}
	if metadata != nil {
		if chat.Metadata == nil {
			chat.Metadata = make(map[string]any)
		}
		for k, v := range metadata {
			chat.Metadata[k] = v
		}
	}
	chat.UpdatedAt = time.Now()

	chatData, err := json.Marshal(chat)
	if err != nil {
		return errors.Wrap(err, "failed to marshal chat info")
	}

	pipe := m.client.Pipeline()
	pipe.Set(ctx, m.getRedisChatInfoKey(chatID), chatData, 0)
	if isNew {
		pipe.SAdd(ctx, m.getRedisChatListKey(), chatID)
	}
	_, err = pipe.Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to store chat info in Redis")
	}

	return nil
}

// ListChats returns the known chat IDs.
func (m *redisStore) ListChats(ctx context.Context) ([]string, error) {
	chatIDs, err := m.client.SMembers(ctx, m.getRedisChatListKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to list chats from Redis")
	}
	return chatIDs, nil
}

// Cleanup removes chats that have not been updated within maxAge.
// It returns the number of chats removed.
func (m *redisStore) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	chatIDs, err := m.ListChats(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, chatID := range chatIDs {
		chat, isNew, err := m.getChatInfo(ctx, chatID)
		if err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "getChatInfo", "chat", chatID, "err", err.Error())
			continue
		}
		if !isNew && chat.UpdatedAt.After(cutoff) {
			continue
		}

		pipe := m.client.Pipeline()
		pipe.Del(ctx, m.getRedisMessagesKey(chatID))
		pipe.Del(ctx, m.getRedisChatInfoKey(chatID))
		pipe.SRem(ctx, m.getRedisChatListKey(), chatID)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "cleanup chat", "chat", chatID, "err", err.Error())
			continue
		}
		removed++
	}
	return removed, nil
}

// GetChatInfo returns the chat metadata and its retained turns.
func (m *redisStore) GetChatInfo(ctx context.Context, id string) (*ChatInfo, error) {
	info, _, err := m.getChatInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	info.Turns = m.messagesForChat(ctx, info.ChatID)
	return info, nil
}

// getChatInfo returns the chat metadata without turns.
// isNew reports that no record exists yet.
func (m *redisStore) getChatInfo(ctx context.Context, id string) (*ChatInfo, bool, error) {
	if id == "" {
		chatID, err := chatmodel.GetChatID(ctx)
		if err != nil {
			return nil, false, err
		}
		id = chatID
	}

	data, err := m.client.Get(ctx, m.getRedisChatInfoKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &ChatInfo{
				ChatID:    id,
				CreatedAt: time.Now(),
			}, true, nil
		}
		return nil, false, errors.Wrap(err, "failed to get chat info from Redis")
	}

	var chat ChatInfo
	if err := json.Unmarshal([]byte(data), &chat); err != nil {
		return nil, false, errors.Wrap(err, "failed to unmarshal chat info")
	}
	return &chat, false, nil
}
