package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// Media lists the cached media index.
func (a *App) Media(ctx context.Context) error {
	items, err := a.media.List(ctx)
	if err != nil {
		a.logger.Error(ctx, "listing media", "error", err)
		return err
	}
	if len(items) == 0 {
		fmt.Println("No media files.")
		return nil
	}
	for _, m := range items {
		fmt.Printf("%s  %8d  %s\n", m.Name, m.Size, m.URL)
	}
	return nil
}

// Upload sends a local file to the remote store and refreshes the index.
func (a *App) Upload(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		a.logger.Error(ctx, "opening file", "error", err)
		return err
	}
	defer f.Close()

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := a.media.Upload(ctx, name, contentType, f); err != nil {
		a.logger.Error(ctx, "upload failed", "error", err)
		return err
	}
	fmt.Printf("Uploaded %s\n", name)
	return nil
}

// RemoveFile deletes a remote file after confirmation.
func (a *App) RemoveFile(ctx context.Context, name string) error {
	if !GetConfirm(a.reader, fmt.Sprintf("Delete remote file %q?", name), os.Stdout) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := a.media.Delete(ctx, name); err != nil {
		a.logger.Error(ctx, "delete failed", "error", err)
		return err
	}
	fmt.Println("Deleted.")
	return nil
}
