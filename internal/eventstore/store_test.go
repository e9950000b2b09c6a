package eventstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testBuildID = "build-123"

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEventStoreAppendAndRetrieve(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	payload := []byte(`{"test": "data"}`)
	require.NoError(t, store.Append(ctx, testBuildID, "TestEvent", payload, map[string]string{"key": "value"}))

	events, err := store.GetByBuildID(ctx, testBuildID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	require.Equal(t, testBuildID, event.BuildID())
	require.Equal(t, "TestEvent", event.Type())
	require.Equal(t, payload, event.Payload())
	require.Equal(t, "value", event.Metadata()["key"])
	require.NotZero(t, event.ID())
}

func TestEventStoreGetByBuildIDFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.Append(ctx, "a", "E1", nil, nil))
	require.NoError(t, store.Append(ctx, "b", "E2", nil, nil))
	require.NoError(t, store.Append(ctx, "a", "E3", nil, nil))

	events, err := store.GetByBuildID(ctx, "a")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "E1", events[0].Type())
	require.Equal(t, "E3", events[1].Type())
	require.Nil(t, events[0].Metadata())
}

func TestEventStoreGetRange(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.Append(ctx, testBuildID, "E", nil, nil))

	events, err := store.GetRange(ctx, time.Now().Add(-time.Minute), time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, events, 1)

	events, err = store.GetRange(ctx, time.Now().Add(time.Hour), time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestEventStorePersistsToFile(t *testing.T) {
	path := t.TempDir() + "/history.db"
	ctx := t.Context()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, testBuildID, "E", nil, nil))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	events, err := reopened.GetByBuildID(ctx, testBuildID)
	require.NoError(t, err)
	require.Len(t, events, 1)
}
