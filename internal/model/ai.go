package model

// ContentRequest is the body of summarize, suggest-title and expand.
type ContentRequest struct {
	Content string `json:"content"`
}

type ImproveRequest struct {
	Content string `json:"content"`
	Style   string `json:"style"`
}

type CategoryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ChatTurn is one prior exchange in an assistant conversation.
type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history" validate:"dive"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type TitleResponse struct {
	Title string `json:"title"`
}

type ImproveResponse struct {
	Content string `json:"content"`
}

type CategoryResponse struct {
	Category string `json:"category"`
}

type ExpandResponse struct {
	Continuation string `json:"continuation"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// MessageResponse is a bare acknowledgement or error body.
type MessageResponse struct {
	Message string `json:"message"`
}
