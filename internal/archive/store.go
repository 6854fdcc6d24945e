package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store remembers which share keys were already archived. It survives state
// file resets so a full channel re-fetch never appends duplicate rows.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS shares (
	key                 TEXT PRIMARY KEY,
	relic_token         TEXT NOT NULL,
	other_token         TEXT NOT NULL,
	share_url           TEXT NOT NULL,
	channel_id          TEXT NOT NULL,
	message_id          TEXT NOT NULL,
	author              TEXT NOT NULL,
	message_created_at  TEXT NOT NULL,
	archived_at         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shares_channel ON shares(channel_id);
`

// OpenStore opens (and if needed creates) the SQLite share store.
func OpenStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("share store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o755); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open share store: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping share store: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init share store schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Seen reports whether key was archived before.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM shares WHERE key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query share key %s: %w", key, err)
	}
	return true, nil
}

// Record marks a share as archived. Re-recording an existing key is a no-op.
func (s *Store) Record(ctx context.Context, sh Share, m Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO shares
			(key, relic_token, other_token, share_url, channel_id, message_id, author, message_created_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sh.Key, sh.RelicToken, sh.OtherToken, sh.URL,
		m.ChannelID, m.ID, m.Author,
		m.CreatedAt.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record share key %s: %w", sh.Key, err)
	}
	return nil
}

// Count returns the number of archived shares.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shares`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count shares: %w", err)
	}
	return n, nil
}
