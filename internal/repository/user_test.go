package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notezipper/notezipper-go/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var userRowColumns = []string{"id", "name", "email", "password", "pic", "welcomed", "created_at", "updated_at"}

func TestUserCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(sqlmock.AnyArg(), "Alice", "alice@example.com", "hash", model.DefaultPic, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Pic: model.DefaultPic}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Len(t, user.ID, 36)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice@example.com' for key 'email'"})

	user := &model.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash"}
	err := repo.Create(context.Background(), user)

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Empty(t, user.ID)
}

func TestUserGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = ?`)).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "Alice", "alice@example.com", "hash", "pic", true, ts, ts))

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.True(t, user.Welcomed)
	assert.Equal(t, ts, user.CreatedAt)
}

func TestUserGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ?`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUpdateOnlySetsSuppliedFields(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ts := time.Now().UTC()
	name := "Alice B"

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET updated_at = ?, name = ? WHERE id = ?`)).
		WithArgs(sqlmock.AnyArg(), name, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = ?`)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", name, "alice@example.com", "hash", "pic", false, ts, ts))

	user, err := repo.Update(context.Background(), "u-1", model.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, user.Name)
}

func TestUserUpdateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	email := "taken@example.com"

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET`)).
		WillReturnError(&mysql.MySQLError{Number: 1062})

	_, err := repo.Update(context.Background(), "u-1", model.UserPatch{Email: &email})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserMarkWelcomed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	query := regexp.QuoteMeta(`UPDATE users SET welcomed = TRUE WHERE id = ? AND welcomed = FALSE`)
	mock.ExpectExec(query).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 0))

	first, err := repo.MarkWelcomed(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := repo.MarkWelcomed(context.Background(), "u-1")
	require.NoError(t, err)
	assert.False(t, second)
}

func TestIsDuplicateEntryError(t *testing.T) {
	assert.False(t, isDuplicateEntryError(nil))
	assert.False(t, isDuplicateEntryError(ErrUserNotFound))
	assert.False(t, isDuplicateEntryError(&mysql.MySQLError{Number: 1045}))
	assert.True(t, isDuplicateEntryError(&mysql.MySQLError{Number: 1062}))
	assert.True(t, isDuplicateEntryError(errors.Join(errors.New("insert"), &mysql.MySQLError{Number: 1062})))
}
