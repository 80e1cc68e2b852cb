package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrNoteNotFound   = errors.New("note not found")
)

// mysqlSchema creates the tables used by the MySQL store. seq keeps notes
// in insertion order.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         CHAR(36)     NOT NULL PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL UNIQUE,
		password   VARCHAR(255) NOT NULL,
		pic        MEDIUMTEXT   NOT NULL,
		welcomed   BOOLEAN      NOT NULL DEFAULT FALSE,
		created_at DATETIME(3)  NOT NULL,
		updated_at DATETIME(3)  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		seq        BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
		id         CHAR(36)     NOT NULL UNIQUE,
		user_id    CHAR(36)     NOT NULL,
		title      VARCHAR(512) NOT NULL,
		content    MEDIUMTEXT   NOT NULL,
		category   VARCHAR(255) NOT NULL,
		created_at DATETIME(3)  NOT NULL,
		updated_at DATETIME(3)  NOT NULL,
		INDEX idx_notes_user (user_id, seq)
	)`,
}

// NewMySQL opens a MySQL connection pool and verifies it is reachable.
func NewMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// MigrateMySQL creates any missing tables.
func MigrateMySQL(ctx context.Context, db *sql.DB) error {
	for _, stmt := range mysqlSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// now returns the current time at the precision both stores keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
