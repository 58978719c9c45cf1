// Package store provides the conversation log. Implementations keep a
// bounded, ordered window of turns per chat, the chat is identified by
// the ID carried in the context.
package store

import (
	"context"
	"time"

	"github.com/effective-security/agentic/chatmodel"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/agentic", "store")

// DefaultCapacity is the number of turns a chat log retains before the
// oldest turns are evicted.
const DefaultCapacity = 50

// MessageStore keeps the ordered conversation log for a chat.
// The chat ID is taken from the context, see chatmodel.WithChatID.
type MessageStore interface {
	// Append adds turns to the end of the log, evicting the oldest
	// turns when the log exceeds its capacity.
	Append(ctx context.Context, turns ...chatmodel.Turn) error
	// Messages returns all retained turns in order, oldest first.
	Messages(ctx context.Context) []chatmodel.Turn
	// Recent returns up to n most recent turns in order, oldest first.
	Recent(ctx context.Context, n int) []chatmodel.Turn
	// Reset removes the log for the chat.
	Reset(ctx context.Context) error
}

// ChatStore extends MessageStore with chat lifecycle management.
type ChatStore interface {
	MessageStore

	// UpdateChat creates or updates the metadata of the chat from context.
	UpdateChat(ctx context.Context, title string, metadata map[string]any) error
	// ListChats returns the known chat IDs.
	ListChats(ctx context.Context) ([]string, error)
	// GetChatInfo returns the chat metadata and its retained turns.
	// An empty id resolves to the chat ID from context.
	GetChatInfo(ctx context.Context, id string) (*ChatInfo, error)
	// Cleanup removes chats not updated within maxAge and returns the
	// number of chats removed.
	Cleanup(ctx context.Context, maxAge time.Duration) (int, error)
}

// ChatInfo describes a chat and its retained turns.
type ChatInfo struct {
	ChatID    string           `json:"chat_id" yaml:"chat_id"`
	Title     string           `json:"title,omitempty" yaml:"title,omitempty"`
	CreatedAt time.Time        `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" yaml:"updated_at"`
	Metadata  map[string]any   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Turns     []chatmodel.Turn `json:"turns,omitempty" yaml:"turns,omitempty"`
}

// tail returns up to n most recent turns, preserving order.
func tail(turns []chatmodel.Turn, n int) []chatmodel.Turn {
	if n <= 0 || len(turns) == 0 {
		return nil
	}
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return turns
}
