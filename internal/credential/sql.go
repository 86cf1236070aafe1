package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SQLBackend keeps one credential row per profile in postgres, so several
// kiosk processes sharing a profile see the same session.
type SQLBackend struct {
	db      *sqlx.DB
	profile string
}

func NewSQLBackend(db *sqlx.DB, profile string) (*SQLBackend, error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		profile = "default"
	}
	return &SQLBackend{db: db, profile: profile}, nil
}

// EnsureTable creates the credential table if not exists (idempotent).
func (s *SQLBackend) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS foster_client_credentials (
  profile TEXT PRIMARY KEY,
  token TEXT NOT NULL,
  issued_at TIMESTAMPTZ NOT NULL,
  expires_at TIMESTAMPTZ NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure credential table: %w", err)
	}
	return nil
}

func (s *SQLBackend) Load(ctx context.Context) (*Record, error) {
	const q = `SELECT token, issued_at, expires_at FROM foster_client_credentials WHERE profile=$1`
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, s.profile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoCredential
		}
		return nil, err
	}
	return &rec, nil
}

func (s *SQLBackend) Save(ctx context.Context, rec Record) error {
	const q = `INSERT INTO foster_client_credentials (profile, token, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile) DO UPDATE SET token=EXCLUDED.token, issued_at=EXCLUDED.issued_at, expires_at=EXCLUDED.expires_at`
	_, err := s.db.ExecContext(ctx, q, s.profile, rec.Token, rec.IssuedAt, rec.ExpiresAt)
	return err
}

func (s *SQLBackend) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM foster_client_credentials WHERE profile=$1`, s.profile)
	return err
}
