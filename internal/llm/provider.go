package llm

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation with the language model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Provider is a chat-completion backend.
type Provider interface {
	// Complete sends the conversation and returns the full assistant reply.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Name identifies the provider in logs and errors.
	Name() string
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, messages []Message) (string, error)

func (f ProviderFunc) Complete(ctx context.Context, messages []Message) (string, error) {
	return f(ctx, messages)
}

func (f ProviderFunc) Name() string { return "func" }
