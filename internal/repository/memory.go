package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/notezipper/notezipper-go/internal/model"
)

// MemoryUserRepository keeps accounts in process memory. Data is lost on
// restart; it backs local development and tests.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    map[string]*model.User{},
		byEmail: map[string]string{},
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicateEmail
	}

	user.ID = uuid.NewString()
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *stored
	return &u, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, id string, patch model.UserPatch) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	if patch.Email != nil && *patch.Email != stored.Email {
		if _, taken := r.byEmail[*patch.Email]; taken {
			return nil, ErrDuplicateEmail
		}
		delete(r.byEmail, stored.Email)
		r.byEmail[*patch.Email] = id
		stored.Email = *patch.Email
	}
	if patch.Name != nil {
		stored.Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		stored.PasswordHash = *patch.PasswordHash
	}
	if patch.Pic != nil {
		stored.Pic = *patch.Pic
	}
	stored.UpdatedAt = now()

	u := *stored
	return &u, nil
}

func (r *MemoryUserRepository) MarkWelcomed(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok || stored.Welcomed {
		return false, nil
	}
	stored.Welcomed = true
	return true, nil
}

// MemoryNoteRepository keeps notes in process memory in insertion order.
type MemoryNoteRepository struct {
	mu    sync.RWMutex
	notes []model.Note
}

func NewMemoryNoteRepository() *MemoryNoteRepository {
	return &MemoryNoteRepository{}
}

func (r *MemoryNoteRepository) Create(_ context.Context, note *model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note.ID = uuid.NewString()
	note.CreatedAt = now()
	note.UpdatedAt = note.CreatedAt
	r.notes = append(r.notes, *note)
	return nil
}

func (r *MemoryNoteRepository) ListByOwner(_ context.Context, ownerID string) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Note
	for _, n := range r.notes {
		if n.UserID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *MemoryNoteRepository) GetByID(_ context.Context, ownerID, id string) (*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(ownerID, id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	n := r.notes[i]
	return &n, nil
}

func (r *MemoryNoteRepository) Update(_ context.Context, ownerID, id string, patch model.NotePatch) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(ownerID, id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}

	stored := &r.notes[i]
	if patch.Title != nil {
		stored.Title = *patch.Title
	}
	if patch.Content != nil {
		stored.Content = *patch.Content
	}
	if patch.Category != nil {
		stored.Category = *patch.Category
	}
	stored.UpdatedAt = now()

	n := *stored
	return &n, nil
}

func (r *MemoryNoteRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(ownerID, id)
	if i < 0 {
		return ErrNoteNotFound
	}
	r.notes = append(r.notes[:i], r.notes[i+1:]...)
	return nil
}

func (r *MemoryNoteRepository) indexOf(ownerID, id string) int {
	for i := range r.notes {
		if r.notes[i].ID == id && r.notes[i].UserID == ownerID {
			return i
		}
	}
	return -1
}
