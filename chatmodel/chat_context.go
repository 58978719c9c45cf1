package chatmodel

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
	"github.com/google/uuid"
)

// ErrInvalidChatContext is returned when the context does not carry a chat ID.
var ErrInvalidChatContext = errors.New("invalid chat context")

// ErrFailedUnmarshalOutput is returned by output parsers when the oracle
// reply cannot be decoded into the expected structure.
var ErrFailedUnmarshalOutput = errors.New("failed to unmarshal output: check the schema and try again")

// ErrFailedUnmarshalInput is returned by tools when the input cannot be
// decoded into the tool's request structure.
var ErrFailedUnmarshalInput = errors.New("failed to unmarshal input: check the schema and try again")

type contextKey int

const (
	keyChatID contextKey = iota
)

// WithChatID returns a new context carrying the chat ID.
// An empty ID is replaced with a generated one.
func WithChatID(ctx context.Context, chatID string) context.Context {
	return context.WithValue(ctx, keyChatID, values.StringsCoalesce(chatID, NewChatID()))
}

// GetChatID retrieves the chat ID from the provided context.
// It returns ErrInvalidChatContext if the context does not carry one.
func GetChatID(ctx context.Context) (string, error) {
	if v, ok := ctx.Value(keyChatID).(string); ok && v != "" {
		return v, nil
	}
	return "", errors.WithStack(ErrInvalidChatContext)
}

// NewChatID generates a new chat ID.
func NewChatID() string {
	return uuid.NewString()
}
