package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/pitwall/paddockpress/internal/client/bridge"
	"github.com/pitwall/paddockpress/internal/client/config"
	"github.com/pitwall/paddockpress/internal/client/models"
	"github.com/pitwall/paddockpress/internal/client/services"
	"github.com/pitwall/paddockpress/internal/client/store"
	"github.com/pitwall/paddockpress/internal/client/sync"
	"github.com/pitwall/paddockpress/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the local store, the bridge client, the replication engine and
// the service layer behind the interactive shell.
type App struct {
	config *config.Config
	logger logging.Logger

	store  *store.Store
	bridge *bridge.Client
	engine *sync.Engine

	posts    *services.PostService
	media    *services.MediaService
	users    *services.UserService
	settings *services.SettingsService
	teams    *services.EntityService[models.Team]
	drivers  *services.EntityService[models.Driver]
	races    *services.EntityService[models.Race]

	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	st, err := store.Open(ctx, c.LocalDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	// The bridge starts unconfigured; persisted settings are applied below.
	br := bridge.New(bridge.Config{})
	engine := sync.New(st, br, logger, sync.WithDebounce(c.Debounce))

	a := &App{
		config:   c,
		logger:   logger,
		store:    st,
		bridge:   br,
		engine:   engine,
		posts:    services.NewPostService(st, engine),
		media:    services.NewMediaService(st, br, engine),
		users:    services.NewUserService(st, engine),
		settings: services.NewSettingsService(st, br, engine),
		teams: services.NewEntityService(st, "teams", engine,
			func(v *models.Team) string { return v.ID },
			func(v *models.Team, id string) { v.ID = id }),
		drivers: services.NewEntityService(st, "drivers", engine,
			func(v *models.Driver) string { return v.ID },
			func(v *models.Driver, id string) { v.ID = id }),
		races: services.NewEntityService(st, "races", engine,
			func(v *models.Race) string { return v.ID },
			func(v *models.Race, id string) { v.ID = id }),
		reader: bufio.NewReader(os.Stdin),
	}

	syncCfg, err := a.settings.SyncConfig(ctx)
	if err != nil {
		return nil, err
	}
	br.UpdateConfig(bridge.Config{
		DBEndpoint:    syncCfg.DBEndpoint,
		FilesEndpoint: syncCfg.FilesEndpoint,
		APIKey:        syncCfg.APIKey,
	})

	return a, nil
}

// Run starts the shell and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.config.ReconcileOnStart && a.bridge.Configured() {
		go func() {
			added, removed, err := a.engine.ReconcileMedia(ctx)
			if err != nil {
				a.logger.Warn(ctx, "startup media reconciliation failed", "error", err)
				return
			}
			a.logger.Info(ctx, "media index reconciled", "added", added, "removed", removed)
		}()
	}

	runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))
}

// Close shuts the engine down and closes the local database.
func (a *App) Close() {
	a.engine.Close()
	if err := a.store.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing database", "error", err)
	}
}

func (a *App) statusLine() string {
	if !a.bridge.Configured() {
		return "local-only"
	}
	return string(a.engine.State())
}
