package ai

import (
	"context"
	"strings"

	"pdfchat/internal/model"
)

// RemoteServiceError wraps any transport or provider-side failure from the
// LLM. Callers always receive this typed failure, never a raw fault.
type RemoteServiceError struct {
	Err error
}

func (e *RemoteServiceError) Error() string {
	return "llm service error: " + e.Err.Error()
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// Conversation sends chat turns to the LLM. It has no session concept on the
// provider side: the full directive text is reconstructed into the outgoing
// message on every single call.
type Conversation struct {
	client *OpenAICompatibleClient
	cfg    ChatConfig
}

func NewConversation(client *OpenAICompatibleClient, cfg ChatConfig) *Conversation {
	return &Conversation{client: client, cfg: cfg}
}

// Send forwards userMessage plus prior turns to the LLM. When directive is
// non-empty it is prepended to the message itself, so document context never
// depends on provider-side memory.
func (c *Conversation) Send(ctx context.Context, userMessage, directive string, turns []model.Turn) (string, error) {
	messages := make([]ChatMessage, 0, len(turns)+1)
	for _, turn := range turns {
		role := turn.Role
		if role == "" {
			role = model.RoleUser
		}
		messages = append(messages, ChatMessage{Role: role, Content: turn.Content})
	}

	outgoing := userMessage
	if directive != "" {
		outgoing = directive + "\n\nUser: " + userMessage
	}
	messages = append(messages, ChatMessage{Role: model.RoleUser, Content: outgoing})

	reply, err := c.client.Complete(ctx, c.cfg, messages)
	if err != nil {
		return "", &RemoteServiceError{Err: err}
	}
	return strings.TrimSpace(reply), nil
}

func (c *Conversation) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, c.cfg)
}
