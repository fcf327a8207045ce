package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitwall/paddockpress/internal/client/store"
)

// EntityService is the shared CRUD glue for the plain entities (teams,
// drivers, races, results, bets): straightforward bindings over one local
// table, each write scheduling a debounced push.
type EntityService[T any] struct {
	tbl      *store.Table
	notifier Notifier
	getID    func(*T) string
	setID    func(*T, string)
}

func NewEntityService[T any](st *store.Store, table string, n Notifier, getID func(*T) string, setID func(*T, string)) *EntityService[T] {
	return &EntityService[T]{tbl: st.Table(table), notifier: n, getID: getID, setID: setID}
}

// Create inserts the entity, generating an id when the caller supplied none
// (bets come in with their composite key already set).
func (s *EntityService[T]) Create(ctx context.Context, v *T) error {
	if s.getID(v) == "" {
		s.setID(v, uuid.NewString())
	}
	if err := store.AddAs(ctx, s.tbl, s.getID(v), *v); err != nil {
		return fmt.Errorf("create %s row: %w", s.tbl.Name(), err)
	}
	s.notifier.NotifyWrite()
	return nil
}

// Save upserts the entity.
func (s *EntityService[T]) Save(ctx context.Context, v *T) error {
	if err := store.PutAs(ctx, s.tbl, s.getID(v), *v); err != nil {
		return fmt.Errorf("save %s row: %w", s.tbl.Name(), err)
	}
	s.notifier.NotifyWrite()
	return nil
}

func (s *EntityService[T]) Get(ctx context.Context, id string) (*T, error) {
	return store.GetAs[T](ctx, s.tbl, id)
}

func (s *EntityService[T]) List(ctx context.Context) ([]T, error) {
	return store.ToArrayAs[T](ctx, s.tbl)
}

func (s *EntityService[T]) Delete(ctx context.Context, id string) error {
	if err := s.tbl.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.NotifyWrite()
	return nil
}
