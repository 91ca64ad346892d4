package service

import (
	"context"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

func (s *DataPulseService) ListChats(ctx context.Context) ([]model.ConversationSummary, error) {
	req, err := s.newRequest(ctx, opListChats, true)
	if err != nil {
		return nil, err
	}
	body, err := s.execute(opListChats, req, resty.MethodGet, "/v1/chat")
	if err != nil {
		return nil, err
	}
	var list []dto.ConversationSummaryDTO
	if err := decodeList(opListChats, body, "conversations", &list); err != nil {
		return nil, err
	}
	out := make([]model.ConversationSummary, 0, len(list))
	for _, c := range list {
		out = append(out, c.ToModel())
	}
	return out, nil
}

func (s *DataPulseService) GetChat(ctx context.Context, id string) (*model.Conversation, error) {
	req, err := s.newRequest(ctx, opGetChat, true)
	if err != nil {
		return nil, err
	}
	body, err := s.execute(opGetChat, req.SetPathParam("id", id), resty.MethodGet, "/v1/chat/{id}")
	if err != nil {
		return nil, err
	}
	var out dto.ConversationDTO
	if err := decode(opGetChat, body, &out); err != nil {
		return nil, err
	}
	conv := out.ToModel()
	return &conv, nil
}

func (s *DataPulseService) StartChat(ctx context.Context, in dto.ChatRequest) (*dto.ChatResponse, error) {
	req, err := s.newRequest(ctx, opStartChat, true)
	if err != nil {
		return nil, err
	}
	body, err := s.execute(opStartChat, req.SetBody(in), resty.MethodPost, "/v1/chat")
	if err != nil {
		return nil, err
	}
	var out dto.ChatResponse
	if err := decode(opStartChat, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DataPulseService) DeleteChat(ctx context.Context, id string) (string, error) {
	req, err := s.newRequest(ctx, opDeleteChat, true)
	if err != nil {
		return "", err
	}
	body, err := s.execute(opDeleteChat, req.SetPathParam("id", id), resty.MethodDelete, "/v1/chat/{id}")
	if err != nil {
		return "", err
	}
	return messageOf(body), nil
}

func messageOf(body []byte) string {
	return gjson.GetBytes(body, "message").String()
}
