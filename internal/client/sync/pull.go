package sync

import (
	"context"
	"fmt"

	"github.com/pitwall/paddockpress/internal/client/store"
	"github.com/pitwall/paddockpress/internal/common"
)

func trackedTable(tx *store.Tx, name string) (*store.Table, bool) {
	if !common.IsTrackedTable(name) {
		return nil, false
	}
	return tx.Table(name), true
}

// Pull fetches the remote table snapshot and replaces the matching local
// tables wholesale. It never merges row-by-row: each named table is cleared
// and bulk-inserted inside one transaction spanning exactly the tables being
// replaced, so a reader can never observe a half-replaced table. Tables
// present locally but absent from the remote payload are left untouched;
// remote names that are not tracked locally are skipped.
//
// Nothing local is mutated until the payload has been confirmed well-formed:
// a malformed body, an empty snapshot ({"status":"empty"}) or any transport
// failure returns an error with every local table unchanged.
func (e *Engine) Pull(ctx context.Context) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	tables, err := e.bridge.PullTables(ctx)
	if err != nil {
		e.mu.Lock()
		e.lastErr = err
		e.mu.Unlock()
		return err
	}

	err = e.store.WithTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		for name, rows := range tables {
			tbl, ok := trackedTable(tx, name)
			if !ok {
				e.logger.Warn(ctx, "pull: skipping unknown table", "table", name)
				continue
			}
			if err := tbl.Clear(ctx); err != nil {
				return err
			}
			if len(rows) == 0 {
				continue
			}
			if err := tbl.BulkAdd(ctx, rows); err != nil {
				return fmt.Errorf("replace table %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		e.mu.Lock()
		e.lastErr = err
		e.mu.Unlock()
		return err
	}

	e.logger.Info(ctx, "pull applied", "tables", len(tables))
	return nil
}
