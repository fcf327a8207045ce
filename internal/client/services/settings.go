package services

import (
	"context"
	"errors"

	"github.com/pitwall/paddockpress/internal/client/bridge"
	"github.com/pitwall/paddockpress/internal/client/models"
	"github.com/pitwall/paddockpress/internal/client/store"
	"github.com/pitwall/paddockpress/internal/common"
)

// SettingsService persists the sync configuration under its fixed names and
// feeds changes to the replication engine.
type SettingsService struct {
	settings *store.Table
	sink     ConfigSink
	notifier Notifier
}

func NewSettingsService(st *store.Store, sink ConfigSink, n Notifier) *SettingsService {
	return &SettingsService{settings: st.Table("settings"), sink: sink, notifier: n}
}

// SyncConfig reads the persisted remote configuration. Missing values come
// back empty, not as errors.
func (s *SettingsService) SyncConfig(ctx context.Context) (models.SyncConfig, error) {
	var cfg models.SyncConfig
	for _, entry := range []struct {
		key string
		dst *string
	}{
		{models.SettingDBEndpoint, &cfg.DBEndpoint},
		{models.SettingFilesEndpoint, &cfg.FilesEndpoint},
		{models.SettingAPIKey, &cfg.APIKey},
	} {
		setting, err := store.GetAs[models.Setting](ctx, s.settings, entry.key)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return models.SyncConfig{}, err
		}
		*entry.dst = setting.Value
	}
	return cfg, nil
}

// SaveSyncConfig persists the configuration and pushes it into the engine so
// every subsequent remote call uses the new endpoints and key.
func (s *SettingsService) SaveSyncConfig(ctx context.Context, cfg models.SyncConfig) error {
	for _, entry := range []struct {
		key   string
		value string
	}{
		{models.SettingDBEndpoint, cfg.DBEndpoint},
		{models.SettingFilesEndpoint, cfg.FilesEndpoint},
		{models.SettingAPIKey, cfg.APIKey},
	} {
		setting := models.Setting{ID: entry.key, Value: entry.value}
		if err := store.PutAs(ctx, s.settings, entry.key, setting); err != nil {
			return err
		}
	}

	s.sink.UpdateConfig(bridge.Config{
		DBEndpoint:    cfg.DBEndpoint,
		FilesEndpoint: cfg.FilesEndpoint,
		APIKey:        cfg.APIKey,
	})
	s.notifier.NotifyWrite()
	return nil
}
