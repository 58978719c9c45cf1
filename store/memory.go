package store

import (
	"context"
	"sync"

	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/xlog"
)

type inMemory struct {
	mu       sync.RWMutex
	capacity int
	storage  map[string][]chatmodel.Turn
}

// NewMemoryStore creates an in-memory conversation log.
// A capacity of 0 or less uses DefaultCapacity.
func NewMemoryStore(capacity int) MessageStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &inMemory{
		capacity: capacity,
	}
}

func (m *inMemory) Append(ctx context.Context, turns ...chatmodel.Turn) error {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string][]chatmodel.Turn)
	}
	log := append(m.storage[chatID], turns...)
	if len(log) > m.capacity {
		// evict oldest first
		log = append([]chatmodel.Turn(nil), log[len(log)-m.capacity:]...)
	}
	m.storage[chatID] = log
	return nil
}

func (m *inMemory) Messages(ctx context.Context) []chatmodel.Turn {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "reason", "GetChatID", "err", err.Error())
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.storage == nil {
		return nil
	}
	return append([]chatmodel.Turn(nil), m.storage[chatID]...)
}

func (m *inMemory) Recent(ctx context.Context, n int) []chatmodel.Turn {
	return tail(m.Messages(ctx), n)
}

func (m *inMemory) Reset(ctx context.Context) error {
	chatID, err := chatmodel.GetChatID(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage != nil {
		delete(m.storage, chatID)
	}
	return nil
}
