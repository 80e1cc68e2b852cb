package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notezipper/notezipper-go/internal/model"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	alice := &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, alice))
	assert.NotEmpty(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	err := repo.Create(ctx, &model.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	bob := &model.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, repo.Create(ctx, bob))

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	taken := "bob@example.com"
	_, err = repo.Update(ctx, alice.ID, model.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	moved := "alice@new.example.com"
	updated, err := repo.Update(ctx, alice.ID, model.UserPatch{Email: &moved})
	require.NoError(t, err)
	assert.Equal(t, moved, updated.Email)
	assert.Equal(t, "Alice", updated.Name)

	_, err = repo.GetByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	first, err := repo.MarkWelcomed(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, first)
	again, err := repo.MarkWelcomed(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, again)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryNoteRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNoteRepository()

	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, repo.Create(ctx, &model.Note{UserID: "alice", Title: title}))
	}
	foreign := &model.Note{UserID: "bob", Title: "bob's"}
	require.NoError(t, repo.Create(ctx, foreign))

	notes, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "one", notes[0].Title)
	assert.Equal(t, "three", notes[2].Title)

	_, err = repo.GetByID(ctx, "alice", foreign.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	title := "pwned"
	_, err = repo.Update(ctx, "alice", foreign.ID, model.NotePatch{Title: &title})
	assert.ErrorIs(t, err, ErrNoteNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "alice", foreign.ID), ErrNoteNotFound)
	require.NoError(t, repo.Delete(ctx, "bob", foreign.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "bob", foreign.ID), ErrNoteNotFound)
}
