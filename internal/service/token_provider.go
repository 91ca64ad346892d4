package service

import (
	"context"
	"errors"

	"github.com/fadilmartias/datapulse/internal/repository"
	"github.com/fadilmartias/datapulse/internal/util"
)

// TokenProvider returns the bearer token for outgoing requests. An empty
// token means the request is sent unauthenticated.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// SessionTokenProvider looks up the token saved at login for the session
// carried by the request context.
type SessionTokenProvider struct {
	repo repository.TokenRepository
}

func NewSessionTokenProvider(repo repository.TokenRepository) *SessionTokenProvider {
	return &SessionTokenProvider{repo: repo}
}

func (p *SessionTokenProvider) Token(ctx context.Context) (string, error) {
	sessionID := util.SessionIDFrom(ctx)
	if sessionID == "" {
		return "", nil
	}
	token, err := p.repo.Find(ctx, sessionID)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}
