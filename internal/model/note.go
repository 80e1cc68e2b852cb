package model

import "time"

// Note represents a note in the store. UserID is the owning account.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotePatch lists the note fields to overwrite. Nil fields are left as is.
type NotePatch struct {
	Title    *string
	Content  *string
	Category *string
}

func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil
}

// NoteRequest represents a note creation request.
type NoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// NoteUpdateRequest carries a partial note update.
type NoteUpdateRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

type NoteResponse struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewNoteResponse(n *Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Category:  n.Category,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NoteResponses converts notes for the wire; the result is never nil so an
// empty list encodes as [].
func NoteResponses(notes []Note) []NoteResponse {
	out := make([]NoteResponse, len(notes))
	for i := range notes {
		out[i] = NewNoteResponse(&notes[i])
	}
	return out
}
