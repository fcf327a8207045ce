package services

import (
	"context"
	"testing"

	"github.com/pitwall/paddockpress/internal/client/bridge"
	"github.com/pitwall/paddockpress/internal/client/store"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type countNotifier struct {
	writes int
}

func (n *countNotifier) NotifyWrite() { n.writes++ }

type captureSink struct {
	last bridge.Config
	set  bool
}

func (s *captureSink) UpdateConfig(cfg bridge.Config) {
	s.last = cfg
	s.set = true
}

type fakeReconciler struct {
	calls   int
	added   int
	removed int
	err     error
}

func (r *fakeReconciler) ReconcileMedia(ctx context.Context) (int, int, error) {
	r.calls++
	return r.added, r.removed, r.err
}
