package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notezipper/notezipper-go/internal/apperr"
	"github.com/notezipper/notezipper-go/internal/crypto"
	"github.com/notezipper/notezipper-go/internal/model"
	"github.com/notezipper/notezipper-go/internal/repository"
)

var testHashParams = crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type authFixture struct {
	svc      *AuthService
	users    *repository.MemoryUserRepository
	tokens   *crypto.TokenIssuer
	notifier *fakeNotifier
}

func newAuthFixture() authFixture {
	users := repository.NewMemoryUserRepository()
	tokens := crypto.NewTokenIssuer("test-secret", time.Hour)
	notifier := &fakeNotifier{}
	svc := NewAuthService(users, crypto.NewPasswordHasher(testHashParams), tokens, notifier, zap.NewNop())
	return authFixture{svc: svc, users: users, tokens: tokens, notifier: notifier}
}

func register(t *testing.T, f authFixture, name, email, password string) model.AuthResponse {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), model.RegisterRequest{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return resp
}

func TestRegisterLoginVerify(t *testing.T) {
	f := newAuthFixture()

	reg := register(t, f, "Alice", "alice@example.com", "secret1")
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, "Alice", reg.Name)
	assert.Equal(t, model.DefaultPic, reg.Pic)

	login, err := f.svc.Login(context.Background(), model.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, login.ID)

	claims, err := f.tokens.Verify(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, claims.UserID)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	f := newAuthFixture()

	reg := register(t, f, "Alice", "  Alice@Example.COM ", "secret1")
	assert.Equal(t, "alice@example.com", reg.Email)

	_, err := f.svc.Login(context.Background(), model.LoginRequest{Email: "ALICE@example.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestRegisterKeepsSuppliedPic(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.svc.Register(context.Background(), model.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret1", Pic: "data:image/png;base64,AAAA",
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", resp.Pic)
}

func TestRegisterStoresOnlyHash(t *testing.T) {
	f := newAuthFixture()
	reg := register(t, f, "Alice", "alice@example.com", "secret1")

	stored, err := f.users.GetByID(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.Contains(t, stored.PasswordHash, "$argon2id$")
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		req  model.RegisterRequest
	}{
		{"blank name", model.RegisterRequest{Name: "  ", Email: "a@example.com", Password: "pw"}},
		{"blank email", model.RegisterRequest{Name: "A", Password: "pw"}},
		{"malformed email", model.RegisterRequest{Name: "A", Email: "not-an-email", Password: "pw"}},
		{"blank password", model.RegisterRequest{Name: "A", Email: "a@example.com", Password: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			_, err := f.svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "Alice", "alice@example.com", "secret1")

	_, err := f.svc.Register(context.Background(), model.RegisterRequest{Name: "Other", Email: "ALICE@example.com", Password: "x"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "User already exists", apperr.PublicMessage(err))
}

func TestLoginFailures(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "Alice", "alice@example.com", "secret1")

	for _, req := range []model.LoginRequest{
		{Email: "alice@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "secret1"},
	} {
		_, err := f.svc.Login(context.Background(), req)
		require.ErrorIs(t, err, apperr.ErrAuth)
		assert.Equal(t, "Invalid email or password", apperr.PublicMessage(err))
	}
	assert.Empty(t, f.notifier.calls)
}

func TestLoginWelcomesOnlyOnce(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "Alice", "alice@example.com", "secret1")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Login(context.Background(), model.LoginRequest{Email: "alice@example.com", Password: "secret1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, err := f.svc.Login(context.Background(), model.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, welcomeCall{to: "alice@example.com", name: "Alice"}, f.notifier.calls[0])
}

func TestMe(t *testing.T) {
	f := newAuthFixture()
	reg := register(t, f, "Alice", "alice@example.com", "secret1")

	me, err := f.svc.Me(context.Background(), reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.UserResponse.ID, me.ID)

	_, err = f.svc.Me(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture()
	reg := register(t, f, "Alice", "alice@example.com", "secret1")

	name, password := "Alice Smith", "newsecret"
	resp, err := f.svc.UpdateProfile(context.Background(), reg.ID, model.ProfileRequest{Name: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", resp.Name)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token)

	_, err = f.svc.Login(context.Background(), model.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrAuth)
	_, err = f.svc.Login(context.Background(), model.LoginRequest{Email: "alice@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}

func TestUpdateProfileBlankFieldsAreKept(t *testing.T) {
	f := newAuthFixture()
	reg := register(t, f, "Alice", "alice@example.com", "secret1")

	blank := " "
	resp, err := f.svc.UpdateProfile(context.Background(), reg.ID, model.ProfileRequest{Name: &blank, Pic: &blank})
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, model.DefaultPic, resp.Pic)
}

func TestUpdateProfileEmailErrors(t *testing.T) {
	f := newAuthFixture()
	reg := register(t, f, "Alice", "alice@example.com", "secret1")
	register(t, f, "Bob", "bob@example.com", "secret2")

	bad := "nope"
	_, err := f.svc.UpdateProfile(context.Background(), reg.ID, model.ProfileRequest{Email: &bad})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	taken := "Bob@example.com"
	_, err = f.svc.UpdateProfile(context.Background(), reg.ID, model.ProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	f := newAuthFixture()

	name := "Ghost"
	_, err := f.svc.UpdateProfile(context.Background(), "ghost", model.ProfileRequest{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
