// Package services contains the client-side business logic binding the CRUD
// screens to the local store and the replication engine. Every mutating
// operation notifies the engine so a debounced push gets scheduled.
package services

import (
	"context"

	"github.com/pitwall/paddockpress/internal/client/bridge"
)

// Notifier receives local-write notifications. The replication engine
// satisfies it; tests substitute a counter.
type Notifier interface {
	NotifyWrite()
}

// ConfigSink consumes updated remote configuration.
type ConfigSink interface {
	UpdateConfig(cfg bridge.Config)
}

// Reconciler runs a media reconciliation pass.
type Reconciler interface {
	ReconcileMedia(ctx context.Context) (added, removed int, err error)
}
