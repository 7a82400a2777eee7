package journal

import (
	"context"
	"database/sql"
	"fmt"
)

// Entry is one journal row.
type Entry struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	Session  string `json:"session"`
	Kind     string `json:"kind"`
	Account  string `json:"account"`
	Title    string `json:"title,omitempty"`
	Position int    `json:"position"`
}

// Append stores e. An entry whose id already exists is ignored.
func (j *Journal) Append(ctx context.Context, e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("append entry: empty id")
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO entries (id, seq, session, kind, account, title, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.Seq,
		e.Session,
		e.Kind,
		e.Account,
		e.Title,
		e.Position,
	)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

const selectEntries = `
	SELECT id, seq, session, kind, account, title, position
	FROM entries
`

// ReadSession returns the entries of one session in seq order.
// Returns an empty slice (not nil) when the session has no entries.
func (j *Journal) ReadSession(ctx context.Context, session string) ([]Entry, error) {
	return j.query(ctx, selectEntries+`
		WHERE session = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, session)
}

// ReadAccount returns every entry recorded for an account id in seq order.
func (j *Journal) ReadAccount(ctx context.Context, id string) ([]Entry, error) {
	return j.query(ctx, selectEntries+`
		WHERE account = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, id)
}

// ReadAll returns the whole journal in seq order.
func (j *Journal) ReadAll(ctx context.Context) ([]Entry, error) {
	return j.query(ctx, selectEntries+`
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
}

// LastSeq returns the highest stored seq, or 0 for an empty journal.
func (j *Journal) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := j.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM entries`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("read last seq: %w", err)
	}
	return seq.Int64, nil
}

func (j *Journal) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Seq, &e.Session, &e.Kind, &e.Account, &e.Title, &e.Position); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}
