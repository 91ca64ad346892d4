package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/datapulse/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTokenNotFound = errors.New("session token not found")

// TokenRepository persists the credentials obtained at login, keyed by session.
type TokenRepository interface {
	Save(ctx context.Context, token *model.SessionToken) error
	Find(ctx context.Context, sessionID string) (*model.SessionToken, error)
	Delete(ctx context.Context, sessionID string) error
}

type GormTokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db}
}

func (r *GormTokenRepository) Save(ctx context.Context, token *model.SessionToken) error {
	token.UpdatedAt = time.Now()
	if token.CreatedAt.IsZero() {
		token.CreatedAt = token.UpdatedAt
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(token).Error
	if err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

func (r *GormTokenRepository) Find(ctx context.Context, sessionID string) (*model.SessionToken, error) {
	var token model.SessionToken
	err := r.db.WithContext(ctx).First(&token, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session token: %w", err)
	}
	return &token, nil
}

func (r *GormTokenRepository) Delete(ctx context.Context, sessionID string) error {
	err := r.db.WithContext(ctx).Delete(&model.SessionToken{}, "session_id = ?", sessionID).Error
	if err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}
