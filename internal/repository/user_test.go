package repository

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "writer", Email: "Writer@Example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	byEmail, err := repo.GetByEmail(ctx, "WRITER@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.Password)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "writer", byID.Username)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestUserRepository_DuplicateIsValidationError(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "dup", Email: "dup@example.com", Password: "x"}))
	err := repo.Create(ctx, &models.User{Username: "dup", Email: "other@example.com", Password: "x"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestUserRepository_List(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, name := range []string{"a1", "b2", "c3"} {
		require.NoError(t, repo.Create(ctx, &models.User{Username: name, Email: name + "@example.com", Password: "x"}))
	}

	users, err := repo.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b2", users[0].Username)
}
