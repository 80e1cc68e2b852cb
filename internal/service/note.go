package service

import (
	"context"
	"errors"
	"strings"

	"github.com/notezipper/notezipper-go/internal/apperr"
	"github.com/notezipper/notezipper-go/internal/model"
	"github.com/notezipper/notezipper-go/internal/repository"
)

const (
	msgFillAllFields = "Please fill all the fields"
	msgNoteNotFound  = "Note not found"
)

// NoteService handles owner-scoped note operations. A note that belongs to
// someone else is reported exactly like a missing one.
type NoteService struct {
	notes NoteStore
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes NoteStore) *NoteService {
	return &NoteService{notes: notes}
}

// List returns every note of the owner in creation order.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]model.NoteResponse, error) {
	notes, err := s.notes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return model.NoteResponses(notes), nil
}

func (s *NoteService) Get(ctx context.Context, ownerID, id string) (model.NoteResponse, error) {
	note, err := s.notes.GetByID(ctx, ownerID, id)
	if err != nil {
		return model.NoteResponse{}, noteError(err)
	}
	return model.NewNoteResponse(note), nil
}

// Create stores a new note owned by ownerID. Every field must be non-blank.
func (s *NoteService) Create(ctx context.Context, ownerID string, req model.NoteRequest) (model.NoteResponse, error) {
	note := &model.Note{
		UserID:   ownerID,
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		Category: strings.TrimSpace(req.Category),
	}
	if note.Title == "" || note.Content == "" || note.Category == "" {
		return model.NoteResponse{}, apperr.Validation(msgFillAllFields)
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return model.NoteResponse{}, apperr.Internal(err)
	}
	return model.NewNoteResponse(note), nil
}

// Update overwrites the supplied fields of an owned note.
func (s *NoteService) Update(ctx context.Context, ownerID, id string, req model.NoteUpdateRequest) (model.NoteResponse, error) {
	var patch model.NotePatch
	for _, f := range []struct {
		in  *string
		out **string
	}{
		{req.Title, &patch.Title},
		{req.Content, &patch.Content},
		{req.Category, &patch.Category},
	} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if v == "" {
			return model.NoteResponse{}, apperr.Validation(msgFillAllFields)
		}
		*f.out = &v
	}

	note, err := s.notes.Update(ctx, ownerID, id, patch)
	if err != nil {
		return model.NoteResponse{}, noteError(err)
	}
	return model.NewNoteResponse(note), nil
}

func (s *NoteService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.notes.Delete(ctx, ownerID, id); err != nil {
		return noteError(err)
	}
	return nil
}

func noteError(err error) error {
	if errors.Is(err, repository.ErrNoteNotFound) {
		return apperr.NotFound(msgNoteNotFound)
	}
	return apperr.Internal(err)
}
