package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lifetrack/internal/core"
)

// Documents is one named collection in the document store. Records are
// stored as JSON bodies keyed by id and listed newest-first.
type Documents struct {
	db   *sql.DB
	name string
}

func (s *Store) Collection(name string) *Documents {
	return &Documents{db: s.db, name: name}
}

func (d *Documents) Name() string { return d.name }

// Put upserts the record under id. created_at is kept from the first
// insert so listing order stays stable across updates.
func (d *Documents) Put(ctx context.Context, id string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", d.name, id, err)
	}

	now := time.Now().UTC()
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		d.name, id, string(body), now, now)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", d.name, id, err)
	}
	return nil
}

// Delete removes the record; core.ErrRecordNotFound when id is unknown.
func (d *Documents) Delete(ctx context.Context, id string) error {
	res, err := d.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, d.name, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", d.name, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", d.name, id, err)
	}
	if n == 0 {
		return core.ErrRecordNotFound
	}
	return nil
}

// DeleteAll clears the collection and reports how many records went.
func (d *Documents) DeleteAll(ctx context.Context) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ?`, d.name)
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", d.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", d.name, err)
	}
	return n, nil
}

// Get decodes the record with the given id into T.
func Get[T any](ctx context.Context, d *Documents, id string) (T, error) {
	var out T
	var body string
	err := d.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`, d.name, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return out, core.ErrRecordNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get %s/%s: %w", d.name, id, err)
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return out, fmt.Errorf("decode %s/%s: %w", d.name, id, err)
	}
	return out, nil
}

// List returns every record in the collection, newest first.
func List[T any](ctx context.Context, d *Documents) ([]T, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT body FROM documents
		WHERE collection = ?
		ORDER BY created_at DESC, id`, d.name)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("list %s: %w", d.name, err)
		}
		var v T
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", d.name, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
