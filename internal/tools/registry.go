// Package tools defines the tool surface exposed to calling agents: an
// explicit registry mapping tool names to their descriptions, input
// schemas, and handlers. Registration is an explicit call at startup;
// discovery reads the registry, never framework internals.
package tools

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	apperrors "github.com/Keita-tri/my-transit-mcp/internal/pkg/errors"
)

// Tool is one registered tool: its agent-facing schema plus the handler
// invoked on call. Handlers must be safe for concurrent use and must
// return a Result for every domain-level failure instead of an error;
// the transport layer only sees envelope problems.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
	Handler     func(ctx context.Context, args json.RawMessage) Result `json:"-"`
}

// Result is the normally-shaped tool response: one or more text blocks
// plus an error flag.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Content is a single text block of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TextResult wraps text as a successful single-block result.
func TextResult(text string) Result {
	return Result{Content: []Content{{Type: "text", Text: text}}}
}

// ErrorResult wraps text as an error-flagged single-block result.
func ErrorResult(text string) Result {
	return Result{Content: []Content{{Type: "text", Text: text}}, IsError: true}
}

// Registry holds the registered tools. Populated at startup, read-only
// afterwards; the mutex guards against racy late registration.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its name, replacing any previous entry.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name] = tool
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	if !ok {
		return Tool{}, apperrors.ErrUnknownTool
	}
	return tool, nil
}

// List returns all registered tools sorted by name, for discovery.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		list = append(list, tool)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
