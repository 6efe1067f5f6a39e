// Package generator provides the text-generation collaborator: a
// Claude messages API client plus the prompts and parsers built on it.
package generator

import "context"

// Message is one role-tagged message in a generation request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TextGenerator is the contract the core depends on: role-tagged
// messages plus sampling parameters in, free-form text out. Callers
// must tolerate empty, malformed, or error responses.
type TextGenerator interface {
	Generate(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error)
}
