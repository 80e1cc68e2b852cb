package model

import "time"

// DefaultPic is assigned to accounts registered without a profile picture.
const DefaultPic = "https://icon-library.com/images/anonymous-avatar-icon/anonymous-avatar-icon-25.jpg"

// User represents an account in the store.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Pic          string
	Welcomed     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch lists the profile fields to overwrite. Nil fields are left as is.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Pic          *string
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Pic      string `json:"pic"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileRequest carries a partial profile update. Absent fields are kept.
type ProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Pic      *string `json:"pic"`
}

// UserResponse represents user data safe for API responses (no credentials).
type UserResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Pic       string    `json:"pic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResponse is a user together with a fresh bearer token, flattened on
// the wire as {..user, token}.
type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Pic:       u.Pic,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
