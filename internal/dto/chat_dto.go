package dto

import "github.com/fadilmartias/datapulse/internal/model"

type ChatMessageDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp Time   `json:"timestamp"`
}

type ConversationSummaryDTO struct {
	ConversationID string `json:"conversationId"`
	JDID           string `json:"jdId"`
	CVID           string `json:"cvId"`
	MessageCount   int    `json:"messageCount"`
	CreatedAt      Time   `json:"createdAt"`
	UpdatedAt      Time   `json:"updatedAt"`
	LastMessage    string `json:"lastMessage"`
}

func (d ConversationSummaryDTO) ToModel() model.ConversationSummary {
	return model.ConversationSummary{
		ID:           d.ConversationID,
		JDID:         d.JDID,
		CVID:         d.CVID,
		MessageCount: d.MessageCount,
		CreatedAt:    d.CreatedAt.Time,
		UpdatedAt:    d.UpdatedAt.Time,
		LastMessage:  d.LastMessage,
	}
}

type ConversationListResponse struct {
	Conversations []ConversationSummaryDTO `json:"conversations"`
}

type ConversationDTO struct {
	ConversationID string           `json:"conversationId"`
	UserID         string           `json:"userId"`
	JDID           string           `json:"jdId"`
	CVID           string           `json:"cvId"`
	Messages       []ChatMessageDTO `json:"messages"`
	CreatedAt      Time             `json:"createdAt"`
	UpdatedAt      Time             `json:"updatedAt"`
}

func (d ConversationDTO) ToModel() model.Conversation {
	messages := make([]model.Message, 0, len(d.Messages))
	for _, m := range d.Messages {
		messages = append(messages, model.Message{
			Role:      model.Role(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp.Time,
		})
	}
	return model.Conversation{
		ID:        d.ConversationID,
		JDID:      d.JDID,
		CVID:      d.CVID,
		UserID:    d.UserID,
		Messages:  messages,
		CreatedAt: d.CreatedAt.Time,
		UpdatedAt: d.UpdatedAt.Time,
	}
}

// ChatRequest leaves ConversationID empty to start a new conversation.
type ChatRequest struct {
	ConversationID string `json:"conversationId"`
	JDID           string `json:"jdId"`
	CVID           string `json:"cvId"`
	Message        string `json:"message"`
}

type ChatResponse struct {
	ConversationID string `json:"conversationId"`
	Response       string `json:"response"`
	Timestamp      Time   `json:"timestamp"`
}
