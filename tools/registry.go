package tools

import (
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrToolNotFound is returned by Resolve for an unknown tool name.
var ErrToolNotFound = errors.New("tool not found")

// Registry is a mapping from tool name to capability.
// It is built once at startup and treated as read-only thereafter;
// lookups are safe for concurrent use across sessions.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]ITool
	names  []string
}

// NewRegistry creates a registry with the given tools.
func NewRegistry(list ...ITool) *Registry {
	r := &Registry{
		byName: make(map[string]ITool),
	}
	r.Register(list...)
	return r
}

// Register inserts or replaces tools by name.
// Lookup keys are case-insensitive.
func (r *Registry) Register(list ...ITool) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tool := range list {
		name := tool.Name()
		key := strings.ToLower(name)
		if _, ok := r.byName[key]; !ok {
			r.names = append(r.names, name)
		}
		r.byName[key] = tool
	}
	return r
}

// Resolve returns the tool registered under the name,
// or ErrToolNotFound if absent.
func (r *Registry) Resolve(name string) (ITool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, errors.WithMessage(ErrToolNotFound, name)
	}
	return tool, nil
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []ITool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]ITool, 0, len(r.names))
	for _, name := range r.names {
		list = append(list, r.byName[strings.ToLower(name)])
	}
	return list
}

// Descriptions returns the JSON descriptions block for all registered tools.
func (r *Registry) Descriptions() string {
	return GetDescriptions(r.Tools()...)
}
