package repository

import (
	"context"
	"sync"
	"time"

	"github.com/fadilmartias/datapulse/internal/model"
)

// MemoryTokenRepository is used when no database is configured.
// Tokens are lost on restart.
type MemoryTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]model.SessionToken
}

func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{tokens: make(map[string]model.SessionToken)}
}

func (r *MemoryTokenRepository) Save(_ context.Context, token *model.SessionToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.UpdatedAt = time.Now()
	if prev, ok := r.tokens[token.SessionID]; ok {
		token.CreatedAt = prev.CreatedAt
	} else if token.CreatedAt.IsZero() {
		token.CreatedAt = token.UpdatedAt
	}
	r.tokens[token.SessionID] = *token
	return nil
}

func (r *MemoryTokenRepository) Find(_ context.Context, sessionID string) (*model.SessionToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	token, ok := r.tokens[sessionID]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return &token, nil
}

func (r *MemoryTokenRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, sessionID)
	return nil
}
