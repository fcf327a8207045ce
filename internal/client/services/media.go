package services

import (
	"context"
	"fmt"
	"io"

	"github.com/pitwall/paddockpress/internal/client/bridge"
	"github.com/pitwall/paddockpress/internal/client/models"
	"github.com/pitwall/paddockpress/internal/client/store"
)

// MediaService manages files on the remote file store. Every successful
// upload or delete is followed by a reconciliation pass so the local index
// does not go stale.
type MediaService struct {
	media      *store.Table
	bridge     *bridge.Client
	reconciler Reconciler
}

func NewMediaService(st *store.Store, br *bridge.Client, r Reconciler) *MediaService {
	return &MediaService{media: st.Table("media"), bridge: br, reconciler: r}
}

// Upload pushes one file to the remote store and refreshes the local index.
func (s *MediaService) Upload(ctx context.Context, name, contentType string, r io.Reader) error {
	if err := s.bridge.UploadFile(ctx, name, contentType, r); err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	if _, _, err := s.reconciler.ReconcileMedia(ctx); err != nil {
		return fmt.Errorf("upload succeeded but index refresh failed: %w", err)
	}
	return nil
}

// Delete removes one file remotely and refreshes the local index.
func (s *MediaService) Delete(ctx context.Context, name string) error {
	if err := s.bridge.DeleteFile(ctx, name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if _, _, err := s.reconciler.ReconcileMedia(ctx); err != nil {
		return fmt.Errorf("delete succeeded but index refresh failed: %w", err)
	}
	return nil
}

// List returns the cached media index.
func (s *MediaService) List(ctx context.Context) ([]models.MediaItem, error) {
	return store.ToArrayAs[models.MediaItem](ctx, s.media)
}
