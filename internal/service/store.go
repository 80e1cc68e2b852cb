package service

import (
	"context"

	"github.com/notezipper/notezipper-go/internal/llm"
	"github.com/notezipper/notezipper-go/internal/model"
)

// UserStore persists accounts. Implemented by the MySQL and MongoDB user
// repositories.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	MarkWelcomed(ctx context.Context, id string) (bool, error)
}

// NoteStore persists notes. Every lookup is scoped to the owning user.
type NoteStore interface {
	Create(ctx context.Context, note *model.Note) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error)
	GetByID(ctx context.Context, ownerID, id string) (*model.Note, error)
	Update(ctx context.Context, ownerID, id string, patch model.NotePatch) (*model.Note, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Completer runs a single chat completion.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// WelcomeNotifier schedules the first-login email without blocking.
type WelcomeNotifier interface {
	Welcome(to, name string)
}
