package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/fwojciec/lawdoc"
)

// Ensure AnswerCache implements lawdoc.AnswerCache at compile time.
var _ lawdoc.AnswerCache = (*AnswerCache)(nil)

// AnswerCache stores structured answers in SQLite with a TTL. Entries past
// their TTL behave as misses and are deleted lazily on read.
type AnswerCache struct {
	db  *DB
	ttl time.Duration

	// now is overridable for tests.
	now func() time.Time
}

// NewAnswerCache creates an AnswerCache. A non-positive ttl defaults to
// one hour.
func NewAnswerCache(db *DB, ttl time.Duration) *AnswerCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AnswerCache{db: db, ttl: ttl, now: time.Now}
}

// Get returns the cached answer for the key.
// Returns ENOTFOUND on a miss or an expired entry.
func (c *AnswerCache) Get(ctx context.Context, key string) (*lawdoc.StructuredAnswer, error) {
	var raw string
	var createdAt string
	err := c.db.QueryRowContext(ctx,
		`SELECT answer, created_at FROM answers WHERE key = ?`,
		key,
	).Scan(&raw, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lawdoc.Errorf(lawdoc.ENOTFOUND, "no cached answer for key %q", key)
	}
	if err != nil {
		return nil, err
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil || c.now().Sub(created) > c.ttl {
		_, _ = c.db.ExecContext(ctx, `DELETE FROM answers WHERE key = ?`, key)
		return nil, lawdoc.Errorf(lawdoc.ENOTFOUND, "cached answer for key %q expired", key)
	}

	var answer lawdoc.StructuredAnswer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return nil, lawdoc.Errorf(lawdoc.EINTERNAL, "corrupt cached answer for key %q: %s", key, err)
	}
	return &answer, nil
}

// Put stores an answer under the key, replacing any existing entry.
func (c *AnswerCache) Put(ctx context.Context, key string, answer *lawdoc.StructuredAnswer) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return lawdoc.Errorf(lawdoc.EINTERNAL, "encode answer for caching: %s", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO answers (key, answer, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET answer = excluded.answer, created_at = excluded.created_at`,
		key, string(raw), c.now().UTC().Format(time.RFC3339),
	)
	return err
}
