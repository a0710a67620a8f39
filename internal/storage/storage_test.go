package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cristianoliveira/listkit/internal/domain"
	lkerrors "github.com/cristianoliveira/listkit/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends runs fn against every backend so both keep the same rules.
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run(BackendMemory, func(t *testing.T) {
		s, err := NewForBackend(BackendMemory, "")
		require.NoError(t, err)
		fn(t, s)
	})
	t.Run(BackendSQLite, func(t *testing.T) {
		s, err := NewForBackend(BackendSQLite, filepath.Join(t.TempDir(), "listkit.db"))
		require.NoError(t, err)
		t.Cleanup(func() { require.NoError(t, s.Close()) })
		fn(t, s)
	})
}

func TestNewForBackendUnknown(t *testing.T) {
	_, err := NewForBackend("tsv", "")
	assert.Error(t, err)
}

func TestNewFromConfigUsesDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	t.Setenv("LISTKIT_CONFIG_PATH", "")
	t.Setenv("LISTKIT_STORAGE_BACKEND", "memory")

	s, err := NewFromConfig()
	require.NoError(t, err)
	_, ok := s.(*Memory)
	assert.True(t, ok)
}

func TestBackendsShareRules(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		mug, err := s.Add(ctx, domain.Record{Collection: domain.CollectionProducts, Name: "Blue mug", CreatedAt: base})
		require.NoError(t, err)
		plate, err := s.Add(ctx, domain.Record{Collection: domain.CollectionProducts, Name: "Blue plate", CreatedAt: base.Add(time.Second)})
		require.NoError(t, err)
		_, err = s.Add(ctx, domain.Record{Collection: domain.CollectionOrders, Name: "order", Ref: mug.ID, CreatedAt: base.Add(2 * time.Second)})
		require.NoError(t, err)

		list, err := s.List(ctx, domain.CollectionProducts)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, mug.ID, list[0].ID)

		ids, hasMore, err := s.ListIDs(ctx, domain.CollectionProducts, domain.Filter{Search: "blue"}, 1)
		require.NoError(t, err)
		assert.True(t, hasMore)
		assert.Equal(t, []string{mug.ID}, ids)

		err = s.Remove(ctx, mug.ID)
		assert.True(t, errors.Is(err, domain.ErrReferenced))
		assert.Contains(t, lkerrors.UserMessage(err, ""), "referenced by 1")

		require.NoError(t, s.SetStatus(ctx, plate.ID, domain.StatusActive))
		assert.ErrorIs(t, s.SetStatus(ctx, plate.ID, domain.StatusPaid), domain.ErrInvalidStatus)

		require.NoError(t, s.Remove(ctx, plate.ID))
		assert.ErrorIs(t, s.Remove(ctx, plate.ID), domain.ErrRecordNotFound)

		n, err := s.Count(ctx, domain.CollectionProducts)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
