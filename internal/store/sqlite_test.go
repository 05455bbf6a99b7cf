package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/store"
	"github.com/nhle/achievo/tests/testutil"
)

func TestKVRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.GetValue(ctx, store.KeyTheme)
	assert.True(t, errors.Is(err, store.ErrKeyNotFound))

	require.NoError(t, s.SetValue(ctx, store.KeyTheme, "dark"))
	got, err := s.GetValue(ctx, store.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	require.NoError(t, s.SetValue(ctx, store.KeyTheme, "light"))
	got, err = s.GetValue(ctx, store.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", got)

	require.NoError(t, s.DeleteValue(ctx, store.KeyTheme))
	_, err = s.GetValue(ctx, store.KeyTheme)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)

	// Deleting again is fine.
	assert.NoError(t, s.DeleteValue(ctx, store.KeyTheme))
}

func TestNotifications(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateNotification(ctx, model.Notification{
		ID: "n1", Title: "Task created!", Message: "one", CreatedAt: base,
	}))
	require.NoError(t, s.CreateNotification(ctx, model.Notification{
		ID: "n2", Title: "Task removed!", Message: "two", CreatedAt: base.Add(time.Minute),
	}))

	all, err := s.GetNotifications(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "n2", all[0].ID)
	assert.False(t, all[0].Read)

	limited, err := s.GetNotifications(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	require.NoError(t, s.MarkNotificationRead(ctx, "n2"))
	unread, err := s.GetUnreadNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "n1", unread[0].ID)

	require.NoError(t, s.MarkAllNotificationsRead(ctx))
	unread, err = s.GetUnreadNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestCreateNotificationAssignsID(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateNotification(ctx, model.Notification{Title: "x"}))
	all, err := s.GetNotifications(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotEmpty(t, all[0].ID)
	assert.False(t, all[0].CreatedAt.IsZero())
}

func TestReopenKeepsDataAndSkipsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "achievo.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetValue(ctx, store.KeyUser, `{"id":"1"}`))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetValue(ctx, store.KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, got)
}
