package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dan9191/fintrack/internal/models"
)

func TestRepository_CreateFindUser(t *testing.T) {
	requireDocker(t)
	ctx := context.Background()

	user := &models.User{Username: "dima", Email: "Dima@Example.com", PasswordHash: "hash"}
	require.NoError(t, usersRepo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	found, err := usersRepo.FindUserByEmail(ctx, "dima@example.COM")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)
	require.Equal(t, "dima@example.com", found.Email)

	byID, err := usersRepo.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "dima", byID.Username)

	dup := &models.User{Username: "other", Email: "dima@example.com", PasswordHash: "x"}
	require.ErrorIs(t, usersRepo.CreateUser(ctx, dup), ErrDuplicate)

	_, err = usersRepo.FindUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_MigrateIsIdempotent(t *testing.T) {
	requireDocker(t)
	require.NoError(t, usersRepo.Migrate(context.Background()))
}
