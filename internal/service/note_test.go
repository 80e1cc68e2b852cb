package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notezipper/notezipper-go/internal/apperr"
	"github.com/notezipper/notezipper-go/internal/model"
)

func strptr(s string) *string { return &s }

func TestNoteCreateAndGet(t *testing.T) {
	svc := NewNoteService(newNoteStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", model.NoteRequest{Title: "T", Content: "C", Category: "Cat"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice", created.UserID)

	got, err := svc.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "C", got.Content)
	assert.Equal(t, "Cat", got.Category)
}

func TestNoteCreateRejectsBlankFields(t *testing.T) {
	store := newNoteStore()
	svc := NewNoteService(store)

	for _, req := range []model.NoteRequest{
		{Title: "", Content: "C", Category: "Cat"},
		{Title: "T", Content: "  \n", Category: "Cat"},
		{Title: "T", Content: "C", Category: "\t"},
	} {
		_, err := svc.Create(context.Background(), "alice", req)
		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "Please fill all the fields", apperr.PublicMessage(err))
	}
	stored, err := store.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestNoteListIsOwnerScopedAndOrdered(t *testing.T) {
	svc := NewNoteService(newNoteStore())
	ctx := context.Background()

	empty, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, "alice", model.NoteRequest{Title: title, Content: "c", Category: "x"})
		require.NoError(t, err)
	}
	_, err = svc.Create(ctx, "bob", model.NoteRequest{Title: "bob's", Content: "c", Category: "x"})
	require.NoError(t, err)

	notes, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "first", notes[0].Title)
	assert.Equal(t, "third", notes[2].Title)
}

func TestNoteForeignAccessIsNotFound(t *testing.T) {
	store := newNoteStore()
	svc := NewNoteService(store)
	ctx := context.Background()

	note, err := svc.Create(ctx, "alice", model.NoteRequest{Title: "T", Content: "C", Category: "Cat"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Get(ctx, "bob", note.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Update(ctx, "bob", note.ID, model.NoteUpdateRequest{Title: strptr("pwned")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.Delete(ctx, "bob", note.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := svc.Get(ctx, "alice", note.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
}

func TestNoteUpdatePartial(t *testing.T) {
	svc := NewNoteService(newNoteStore())
	ctx := context.Background()

	note, err := svc.Create(ctx, "alice", model.NoteRequest{Title: "T", Content: "C", Category: "Cat"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "alice", note.ID, model.NoteUpdateRequest{Content: strptr(" new body ")})
	require.NoError(t, err)
	assert.Equal(t, "T", updated.Title)
	assert.Equal(t, "new body", updated.Content)
	assert.Equal(t, "Cat", updated.Category)
	assert.False(t, updated.UpdatedAt.Before(note.UpdatedAt))
}

func TestNoteUpdateRejectsBlankField(t *testing.T) {
	svc := NewNoteService(newNoteStore())
	ctx := context.Background()

	note, err := svc.Create(ctx, "alice", model.NoteRequest{Title: "T", Content: "C", Category: "Cat"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "alice", note.ID, model.NoteUpdateRequest{Title: strptr("  ")})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestNoteDeleteTwice(t *testing.T) {
	svc := NewNoteService(newNoteStore())
	ctx := context.Background()

	note, err := svc.Create(ctx, "alice", model.NoteRequest{Title: "T", Content: "C", Category: "Cat"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", note.ID))

	second := svc.Delete(ctx, "alice", note.ID)
	foreign := svc.Delete(ctx, "bob", "note-404")
	require.ErrorIs(t, second, apperr.ErrNotFound)
	assert.Equal(t, apperr.PublicMessage(foreign), apperr.PublicMessage(second))

	_, err = svc.Get(ctx, "alice", note.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestNoteStoreFailureIsInternal(t *testing.T) {
	store := newNoteStore()
	store.err = assert.AnError
	svc := NewNoteService(store)

	_, err := svc.List(context.Background(), "alice")
	require.ErrorIs(t, err, apperr.ErrInternal)
	assert.ErrorIs(t, err, assert.AnError)
}
