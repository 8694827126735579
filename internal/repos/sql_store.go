package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type SQLStore struct{ db *sqlx.DB }

func NewSQLStore(db *sqlx.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var v string
	err := s.db.GetContext(ctx, &v, s.db.Rebind(`
		SELECT value FROM client_storage WHERE scope = ? AND name = ?
	`), scope, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLStore) Set(ctx context.Context, scope, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO client_storage(scope, name, value, updated_at)
		VALUES(?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(scope, name) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`), scope, key, value)
	return err
}

func (s *SQLStore) Delete(ctx context.Context, scope, key string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM client_storage WHERE scope = ? AND name = ?`), scope, key)
	return err
}

func (s *SQLStore) Close() error { return s.db.Close() }
