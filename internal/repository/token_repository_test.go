package repository

import (
	"context"
	"testing"

	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func exerciseTokenRepository(t *testing.T, repo TokenRepository) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.Find(ctx, "s1")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, repo.Save(ctx, &model.SessionToken{
		SessionID:   "s1",
		AccessToken: "tok-1",
		UserID:      "u1",
		FullName:    "Ada Lovelace",
		Role:        model.RoleUser,
	}))

	got, err := repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.AccessToken)
	assert.Equal(t, "Ada Lovelace", got.User().FullName)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, repo.Save(ctx, &model.SessionToken{SessionID: "s1", AccessToken: "tok-2"}))
	got, err = repo.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got.AccessToken)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Find(ctx, "s1")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, repo.Delete(ctx, "missing"))
}

func TestMemoryTokenRepository(t *testing.T) {
	exerciseTokenRepository(t, NewMemoryTokenRepository())
}

func TestKeyringTokenRepository(t *testing.T) {
	keyring.MockInit()
	exerciseTokenRepository(t, NewKeyringTokenRepository("datapulse-test"))
}

func TestKeyringTokenRepository_EmptyAccount(t *testing.T) {
	keyring.MockInit()
	err := NewKeyringTokenRepository("datapulse-test").Save(context.Background(), &model.SessionToken{})
	assert.Error(t, err)
}

func TestMemoryTokenRepository_KeepsCreatedAt(t *testing.T) {
	repo := NewMemoryTokenRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &model.SessionToken{SessionID: "s"}))
	first, err := repo.Find(ctx, "s")
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, &model.SessionToken{SessionID: "s", AccessToken: "x"}))
	second, err := repo.Find(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}
