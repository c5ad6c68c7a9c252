package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message in a session's conversation history.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
