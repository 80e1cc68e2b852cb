package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/notezipper/notezipper-go/internal/model"
)

const noteColumns = `id, user_id, title, content, category, created_at, updated_at`

// NoteRepository persists notes in MySQL. Every query is scoped by owner so
// a foreign note is indistinguishable from a missing one.
type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	note.ID = uuid.NewString()
	note.CreatedAt = now()
	note.UpdatedAt = note.CreatedAt

	query := `INSERT INTO notes (` + noteColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.Category, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		note.ID = ""
		return err
	}
	return nil
}

// ListByOwner returns the owner's notes in insertion order.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = ? ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Category, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

func (r *NoteRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = ? AND user_id = ?`

	n := &model.Note{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&n.ID, &n.UserID, &n.Title, &n.Content, &n.Category, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

// Update applies patch to an owned note and returns the stored result.
func (r *NoteRepository) Update(ctx context.Context, ownerID, id string, patch model.NotePatch) (*model.Note, error) {
	sets := []string{"updated_at = ?"}
	args := []any{now()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	args = append(args, id, ownerID)

	query := `UPDATE notes SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	// RowsAffected is unreliable for "matched but unchanged" rows, so the
	// re-read decides existence.
	return r.GetByID(ctx, ownerID, id)
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoteNotFound
	}
	return nil
}
