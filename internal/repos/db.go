package repos

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// OpenDB opens the SQL store database. DSNs starting with postgres:// or
// postgresql:// use lib/pq, anything else is a sqlite file (or :memory:).
func OpenDB(dsn string) (*sqlx.DB, error) {
	driver := "sqlite"
	if isPostgresDSN(dsn) {
		driver = "postgres"
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one connection: :memory: databases are per-connection
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS client_storage(
  scope      TEXT NOT NULL,        -- visitor sid
  name       TEXT NOT NULL,        -- cart | user | notice
  value      TEXT NOT NULL,        -- JSON record
  updated_at TEXT,
  PRIMARY KEY (scope, name)
);
`
	_, err := db.Exec(schema)
	return err
}

// NewStore builds the Store selected by backend: sqlite, postgres, redis or memory.
func NewStore(backend, dsn, redisAddr string) (Store, error) {
	switch backend {
	case "", "sqlite", "postgres":
		if (backend == "postgres") != isPostgresDSN(dsn) {
			return nil, fmt.Errorf("store backend %q does not match dsn %q", backend, dsn)
		}
		db, err := OpenDB(dsn)
		if err != nil {
			return nil, err
		}
		log.Printf("[store] sql store ready (%s)", db.DriverName())
		return NewSQLStore(db), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		log.Printf("[store] redis store ready (%s)", redisAddr)
		return NewRedisStore(rdb), nil
	case "memory":
		log.Println("[store] memory store: visitor data is lost on restart")
		return NewMemStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}
