package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/zalando/go-keyring"
)

// KeyringTokenRepository keeps tokens in the OS keychain. The session id
// is used as the keyring account.
type KeyringTokenRepository struct {
	service string
}

func NewKeyringTokenRepository(service string) *KeyringTokenRepository {
	return &KeyringTokenRepository{service: service}
}

func (r *KeyringTokenRepository) Save(_ context.Context, token *model.SessionToken) error {
	if strings.TrimSpace(token.SessionID) == "" {
		return errors.New("keyring account name is empty")
	}
	token.UpdatedAt = time.Now()
	if token.CreatedAt.IsZero() {
		token.CreatedAt = token.UpdatedAt
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode session token: %w", err)
	}
	if err := keyring.Set(r.service, token.SessionID, string(raw)); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

func (r *KeyringTokenRepository) Find(_ context.Context, sessionID string) (*model.SessionToken, error) {
	raw, err := keyring.Get(r.service, sessionID)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session token: %w", err)
	}
	var token model.SessionToken
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		return nil, fmt.Errorf("decode session token: %w", err)
	}
	return &token, nil
}

func (r *KeyringTokenRepository) Delete(_ context.Context, sessionID string) error {
	err := keyring.Delete(r.service, sessionID)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}
