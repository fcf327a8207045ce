package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pitwall/paddockpress/internal/common"
	"github.com/pitwall/paddockpress/internal/dbx"
)

// Table is a handle on one document table. It carries the per-table CRUD
// contract: get/put/add/delete/bulk-add/clear/to-array plus predicate
// filtering. The table name is validated at construction, never by callers.
type Table struct {
	db   dbx.DBTX
	name string
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// Get returns the document stored under id, or common.ErrorNotFound.
func (t *Table) Get(ctx context.Context, id string) (json.RawMessage, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, t.name)

	var doc string
	if err := t.db.QueryRowContext(ctx, query, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("get from %s: %w", t.name, err)
	}
	return json.RawMessage(doc), nil
}

// Put upserts the document under id.
func (t *Table) Put(ctx context.Context, id string, doc json.RawMessage) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`, t.name)

	if _, err := t.db.ExecContext(ctx, query, id, string(doc)); err != nil {
		return fmt.Errorf("put into %s: %w", t.name, err)
	}
	return nil
}

// Add inserts the document under id, failing with common.ErrorDuplicate when
// the key already exists.
func (t *Table) Add(ctx context.Context, id string, doc json.RawMessage) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, ?)`, t.name)

	if _, err := t.db.ExecContext(ctx, query, id, string(doc)); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("add into %s: %w", t.name, common.ErrorDuplicate)
		}
		return fmt.Errorf("add into %s: %w", t.name, err)
	}
	return nil
}

// Delete removes the document under id. Deleting an absent id is a no-op.
func (t *Table) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.name)

	if _, err := t.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete from %s: %w", t.name, err)
	}
	return nil
}

// BulkAdd inserts every document, deriving each key from the document's own
// "id" field.
func (t *Table) BulkAdd(ctx context.Context, docs []json.RawMessage) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, ?)`, t.name)

	for _, doc := range docs {
		id, err := ExtractID(doc)
		if err != nil {
			return fmt.Errorf("bulk add into %s: %w", t.name, err)
		}
		if _, err := t.db.ExecContext(ctx, query, id, string(doc)); err != nil {
			return fmt.Errorf("bulk add into %s: %w", t.name, err)
		}
	}
	return nil
}

// Clear removes every row.
func (t *Table) Clear(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, t.name)

	if _, err := t.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("clear %s: %w", t.name, err)
	}
	return nil
}

// ToArray returns every document, ordered by id for determinism.
func (t *Table) ToArray(ctx context.Context) ([]json.RawMessage, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY id`, t.name)

	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", t.name, err)
	}
	defer rows.Close()

	var result []json.RawMessage
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		result = append(result, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Filter returns the documents satisfying pred. A full scan: the tables are
// small and the predicate is arbitrary.
func (t *Table) Filter(ctx context.Context, pred func(json.RawMessage) bool) ([]json.RawMessage, error) {
	all, err := t.ToArray(ctx)
	if err != nil {
		return nil, err
	}
	var result []json.RawMessage
	for _, doc := range all {
		if pred(doc) {
			result = append(result, doc)
		}
	}
	return result, nil
}

// Count returns the number of rows.
func (t *Table) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, t.name)

	var n int
	if err := t.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return n, nil
}

// ExtractID reads the "id" field of a document.
func ExtractID(doc json.RawMessage) (string, error) {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return "", fmt.Errorf("document has no parsable id: %w", err)
	}
	if probe.ID == "" {
		return "", errors.New("document has an empty id")
	}
	return probe.ID, nil
}

// GetAs unmarshals the document under id into T.
func GetAs[T any](ctx context.Context, t *Table, id string) (*T, error) {
	doc, err := t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("decode %s row: %w", t.Name(), err)
	}
	return &v, nil
}

// PutAs marshals v and upserts it under id.
func PutAs[T any](ctx context.Context, t *Table, id string, v T) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s row: %w", t.Name(), err)
	}
	return t.Put(ctx, id, doc)
}

// AddAs marshals v and inserts it under id.
func AddAs[T any](ctx context.Context, t *Table, id string, v T) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s row: %w", t.Name(), err)
	}
	return t.Add(ctx, id, doc)
}

// ToArrayAs unmarshals every document into a slice of T.
func ToArrayAs[T any](ctx context.Context, t *Table) ([]T, error) {
	docs, err := t.ToArray(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := json.Unmarshal(doc, &v); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", t.Name(), err)
		}
		result = append(result, v)
	}
	return result, nil
}
