package repository

import (
	"context"
	"testing"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(store.NewMemoryBackend(), "users")

	require.NoError(t, repo.SaveAll(ctx, []domain.User{{Name: "Ann", Email: "a@b.com", Phone: "1"}}))

	user, err := repo.GetByEmail(ctx, " A@B.COM ")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	_, err = repo.GetByEmail(ctx, "x@y.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
