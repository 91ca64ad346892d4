package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
)

// SelectConversation loads a conversation's history. An empty id starts a
// new conversation.
func (uc *SkillAnalysisUsecase) SelectConversation(ctx context.Context, ws *Workspace, id string) {
	ws.mu.Lock()
	ws.chat.SelectedID = id
	ws.chat.Messages = nil
	ws.chat.Error = ""
	ws.chat.Loading = id != ""
	ws.mu.Unlock()
	if id == "" {
		return
	}

	conv, err := uc.api.GetChat(ctx, id)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.chat.SelectedID != id {
		return
	}
	ws.chat.Loading = false
	if err != nil {
		ws.chat.Error = err.Error()
		return
	}
	ws.chat.Messages = conv.Messages
}

// SendMessage posts text for the selected JD and CV. The reply replaces a
// typing placeholder matched by its local id. It returns false when
// nothing was sent.
func (uc *SkillAnalysisUsecase) SendMessage(ctx context.Context, ws *Workspace, text string) bool {
	text = strings.TrimSpace(text)

	ws.mu.Lock()
	if text == "" || ws.jd.SelectedID == "" || ws.cv.SelectedID == "" {
		ws.mu.Unlock()
		return false
	}
	req := dto.ChatRequest{
		ConversationID: ws.chat.SelectedID,
		JDID:           ws.jd.SelectedID,
		CVID:           ws.cv.SelectedID,
		Message:        text,
	}
	placeholderID := uc.newID()
	ws.chat.Messages = append(ws.chat.Messages,
		model.Message{LocalID: uc.newID(), Role: model.RoleUserMessage, Content: text, Timestamp: uc.now()},
		model.Message{LocalID: placeholderID, Role: model.RoleAssistantMessage, Content: model.TypingMarker, Pending: true},
	)
	ws.chat.Error = ""
	ws.mu.Unlock()

	resp, err := uc.api.StartChat(ctx, req)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err != nil {
		ws.replaceMessage(placeholderID, model.Message{
			LocalID:   placeholderID,
			Role:      model.RoleAssistantMessage,
			Content:   err.Error(),
			Timestamp: uc.now(),
			Failed:    true,
		})
		ws.chat.Error = err.Error()
		return true
	}

	ts := resp.Timestamp.Time
	if ts.IsZero() {
		ts = uc.now()
	}
	ws.replaceMessage(placeholderID, model.Message{
		LocalID:   placeholderID,
		Role:      model.RoleAssistantMessage,
		Content:   resp.Response,
		Timestamp: ts,
	})

	if req.ConversationID == "" {
		if resp.ConversationID == "" {
			return true
		}
		ws.chat.Summaries = append(ws.chat.Summaries, model.ConversationSummary{
			ID:           resp.ConversationID,
			JDID:         req.JDID,
			CVID:         req.CVID,
			MessageCount: 1,
			CreatedAt:    ts,
			UpdatedAt:    ts,
			LastMessage:  resp.Response,
		})
		if ws.chat.SelectedID == "" {
			ws.chat.SelectedID = resp.ConversationID
		}
		return true
	}
	for i := range ws.chat.Summaries {
		if ws.chat.Summaries[i].ID == req.ConversationID {
			ws.chat.Summaries[i].MessageCount++
			ws.chat.Summaries[i].UpdatedAt = ts
			ws.chat.Summaries[i].LastMessage = resp.Response
		}
	}
	return true
}

// DeleteConversation removes a conversation remotely and from the list.
func (uc *SkillAnalysisUsecase) DeleteConversation(ctx context.Context, ws *Workspace, id string) bool {
	if id == "" {
		return false
	}
	_, err := uc.api.DeleteChat(ctx, id)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err != nil {
		ws.chat.Error = err.Error()
		return false
	}
	kept := ws.chat.Summaries[:0]
	for _, c := range ws.chat.Summaries {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	ws.chat.Summaries = kept
	if ws.chat.SelectedID == id {
		ws.chat.SelectedID = ""
		ws.chat.Messages = nil
		ws.chat.Loading = false
	}
	ws.chat.Error = ""
	return true
}
