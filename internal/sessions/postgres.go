package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // The database driver
)

// PostgresStore persists sessions in a sessions table so tokens
// survive server restarts.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and ensures the sessions
// table exists.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("sessions: connect: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			token      TEXT PRIMARY KEY,
			email      TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("sessions: ensure table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreWithDB wraps an existing connection, for tests.
func NewPostgresStoreWithDB(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, token string, p Principal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, email, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (token) DO UPDATE SET email = EXCLUDED.email, created_at = EXCLUDED.created_at`,
		token, p.Email, p.Created)
	if err != nil {
		return fmt.Errorf("sessions: put: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, token string) (Principal, bool, error) {
	var row struct {
		Email     string    `db:"email"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := s.db.GetContext(ctx, &row,
		`SELECT email, created_at FROM sessions WHERE token = $1`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return Principal{}, false, nil
	}
	if err != nil {
		return Principal{}, false, fmt.Errorf("sessions: get: %w", err)
	}
	return Principal{Email: row.Email, Created: row.CreatedAt}, true, nil
}

func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("sessions: delete: %w", err)
	}
	return nil
}
