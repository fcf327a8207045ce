package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pitwall/paddockpress/internal/client/models"
)

// Configure interactively sets the bridge endpoints and API key. The key is
// read without echo.
func (a *App) Configure(ctx context.Context) error {
	current, err := a.settings.SyncConfig(ctx)
	if err != nil {
		return err
	}

	dbEndpoint, err := GetSimpleText(a.reader,
		fmt.Sprintf("Database endpoint [%s]", current.DBEndpoint), os.Stdout)
	if err != nil {
		return err
	}
	filesEndpoint, err := GetSimpleText(a.reader,
		fmt.Sprintf("Files endpoint [%s]", current.FilesEndpoint), os.Stdout)
	if err != nil {
		return err
	}
	key, err := GetSecret("API key (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}

	// Empty answers keep the current values.
	next := models.SyncConfig{
		DBEndpoint:    current.DBEndpoint,
		FilesEndpoint: current.FilesEndpoint,
		APIKey:        current.APIKey,
	}
	if dbEndpoint != "" {
		next.DBEndpoint = dbEndpoint
	}
	if filesEndpoint != "" {
		next.FilesEndpoint = filesEndpoint
	}
	if len(key) > 0 {
		next.APIKey = string(key)
	}

	if err := a.settings.SaveSyncConfig(ctx, next); err != nil {
		a.logger.Error(ctx, "saving sync config", "error", err)
		return err
	}
	fmt.Println("Saved. The bridge now uses the new settings.")
	return nil
}
