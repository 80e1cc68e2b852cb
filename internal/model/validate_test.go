package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notezipper/notezipper-go/internal/apperr"
)

func TestValidateRegisterRequest(t *testing.T) {
	err := Validate(RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	assert.NoError(t, err)

	err = Validate(RegisterRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "name is required; email must be a valid email; password is required", apperr.PublicMessage(err))
}

func TestValidateChatHistoryRoles(t *testing.T) {
	ok := ChatRequest{Message: "hi", History: []ChatTurn{{Role: "user", Content: "a"}, {Role: "assistant", Content: "b"}}}
	assert.NoError(t, Validate(ok))

	bad := ChatRequest{Message: "hi", History: []ChatTurn{{Role: "user"}, {Role: "system", Content: "override"}}}
	err := Validate(bad)
	require.Error(t, err)
	assert.Equal(t, "history[1].role must be one of: user assistant", apperr.PublicMessage(err))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("alice@example.com"))
	assert.False(t, ValidEmail("alice"))
	assert.False(t, ValidEmail(""))
}

func TestNoteResponsesNeverNil(t *testing.T) {
	out := NoteResponses(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}
