// Package tables implements the bridge's relational storage: one Postgres
// table, cms_rows, holding every replicated document keyed by (table name,
// row id). Whole-table replacement keeps the server as dumb as the wire
// contract: no merging, no versions, the last push wins.
package tables

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pitwall/paddockpress/internal/common"
	"github.com/pitwall/paddockpress/internal/dbx"
	"github.com/pitwall/paddockpress/internal/server/tables/migrations"
)

// Repository stores replicated table snapshots in Postgres.
type Repository struct {
	db *sql.DB
}

// Open connects to Postgres and applies pending migrations.
func Open(ctx context.Context, dsn string) (*Repository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.Up(db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

// Ping reports database reachability for the health probe.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// PullAll returns the full snapshot: every stored table mapped to its rows,
// ordered by id for determinism.
func (r *Repository) PullAll(ctx context.Context) (map[string][]json.RawMessage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tbl, doc FROM cms_rows ORDER BY tbl, id`)
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	defer rows.Close()

	result := map[string][]json.RawMessage{}
	for rows.Next() {
		var tbl, doc string
		if err := rows.Scan(&tbl, &doc); err != nil {
			return nil, err
		}
		result[tbl] = append(result[tbl], json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceAll replaces each named table's rows with the pushed snapshot, all
// in one transaction. Unknown table names are ignored; a push either lands
// completely or not at all.
func (r *Repository) ReplaceAll(ctx context.Context, tables map[string][]json.RawMessage) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for name, docs := range tables {
			if !common.IsTrackedTable(name) {
				continue
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM cms_rows WHERE tbl = $1`, name); err != nil {
				return fmt.Errorf("clear table %s: %w", name, err)
			}
			for _, doc := range docs {
				id, err := extractID(doc)
				if err != nil {
					return fmt.Errorf("table %s: %w", name, err)
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO cms_rows (tbl, id, doc) VALUES ($1, $2, $3)`,
					name, id, string(doc)); err != nil {
					return fmt.Errorf("insert into %s: %w", name, err)
				}
			}
		}
		return nil
	})
}

// extractID reads the "id" field of a pushed document.
func extractID(doc json.RawMessage) (string, error) {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return "", fmt.Errorf("document has no parsable id: %w", err)
	}
	if probe.ID == "" {
		return "", fmt.Errorf("document has an empty id")
	}
	return probe.ID, nil
}
