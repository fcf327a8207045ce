package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pitwall/paddockpress/internal/client/models"
	"github.com/pitwall/paddockpress/internal/client/store"
)

// ReconcileMedia aligns the local media index with the remote file listing.
// The remote store is ground truth: entries present remotely but missing
// locally are inserted with a fresh local id, and local entries whose
// backing file is gone are pruned. Entries are matched by URL.
//
// The pass is idempotent and all-or-nothing: when nothing differs, no local
// write happens at all; when something does, every insert and delete lands
// in one transaction. A failure anywhere leaves the index exactly as it was.
func (e *Engine) ReconcileMedia(ctx context.Context) (added, removed int, err error) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	remote, err := e.bridge.ListFiles(ctx)
	if err != nil {
		return 0, 0, err
	}

	local, err := store.ToArrayAs[models.MediaItem](ctx, e.store.Table("media"))
	if err != nil {
		return 0, 0, err
	}

	localByURL := make(map[string]models.MediaItem, len(local))
	for _, item := range local {
		localByURL[item.URL] = item
	}

	remoteURLs := make(map[string]struct{}, len(remote))
	var inserts []models.MediaItem
	for _, rf := range remote {
		if _, dup := remoteURLs[rf.URL]; dup {
			continue
		}
		remoteURLs[rf.URL] = struct{}{}
		if _, ok := localByURL[rf.URL]; ok {
			continue
		}
		uploadedAt := time.Now().UTC()
		if rf.Date > 0 {
			uploadedAt = time.Unix(rf.Date, 0).UTC()
		}
		inserts = append(inserts, models.MediaItem{
			ID:         uuid.NewString(),
			Name:       rf.Name,
			URL:        rf.URL,
			Type:       rf.Type,
			Size:       rf.Size,
			UploadedAt: uploadedAt,
		})
	}

	var prune []models.MediaItem
	for _, item := range local {
		if _, ok := remoteURLs[item.URL]; !ok {
			prune = append(prune, item)
		}
	}

	if len(inserts) == 0 && len(prune) == 0 {
		return 0, 0, nil
	}

	err = e.store.WithTx(ctx, func(ctx context.Context, tx *store.Tx) error {
		media := tx.Table("media")
		for _, item := range prune {
			if err := media.Delete(ctx, item.ID); err != nil {
				return err
			}
		}
		for _, item := range inserts {
			if err := store.AddAs(ctx, media, item.ID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	e.logger.Info(ctx, "media reconciled", "added", len(inserts), "removed", len(prune))
	return len(inserts), len(prune), nil
}
