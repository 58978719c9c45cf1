package chatmodel

import (
	"encoding/json"
	"time"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser is a turn authored by the human user.
	RoleUser Role = "user"
	// RoleAgent is a turn authored by the agent.
	RoleAgent Role = "agent"
)

// Turn is a single entry in the conversation log.
// A Turn is immutable once created.
type Turn struct {
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewTurn creates a turn stamped with the current time.
func NewTurn(role Role, content string) Turn {
	return Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// UserTurn creates a user turn stamped with the current time.
func UserTurn(content string) Turn {
	return NewTurn(RoleUser, content)
}

// AgentTurn creates an agent turn stamped with the current time.
func AgentTurn(content string) Turn {
	return NewTurn(RoleAgent, content)
}

// GetContent implements the ContentProvider interface.
func (t Turn) GetContent() string {
	return t.Content
}

// ContentProvider is implemented by types that carry a textual payload.
type ContentProvider interface {
	GetContent() string
}

// OutputParser is an interface for parsing the output of an oracle call.
type OutputParser[T any] interface {
	// Parse parses the output of an oracle call.
	// If the text cannot be decoded into T, it should return
	// ErrFailedUnmarshalOutput.
	Parse(text string) (*T, error)
	// GetFormatInstructions returns a string describing the format of the output.
	GetFormatInstructions() string
	// Type returns the string type key uniquely identifying this class of parser.
	Type() string
}

// Stringify renders a value for inclusion in a prompt.
func Stringify(s any) string {
	if v, ok := s.(interface{ String() string }); ok {
		return v.String()
	}
	if v, ok := s.(ContentProvider); ok {
		return v.GetContent()
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}
