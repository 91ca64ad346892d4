package model

import "time"

type Role string

const (
	RoleUserMessage      Role = "user"
	RoleAssistantMessage Role = "assistant"
)

// TypingMarker is shown in place of the assistant reply while it is pending.
const TypingMarker = "AI is typing..."

type Message struct {
	LocalID   string    `json:"local_id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Pending   bool      `json:"pending,omitempty"`
	Failed    bool      `json:"failed,omitempty"`
}

type ConversationSummary struct {
	ID           string    `json:"id"`
	JDID         string    `json:"jd_id"`
	CVID         string    `json:"cv_id"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastMessage  string    `json:"last_message"`
}

type Conversation struct {
	ID        string    `json:"id"`
	JDID      string    `json:"jd_id"`
	CVID      string    `json:"cv_id"`
	UserID    string    `json:"user_id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
