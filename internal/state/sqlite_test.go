package state

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlogo-labs/nlsplit/internal/testutil"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_CreateComplete(t *testing.T) {
	store := openTestStore(t)

	sp, err := store.CreateSplit("/models/fire.nlogo", "density sweep", "/runs")
	require.NoError(t, err)
	assert.NotEmpty(t, sp.ID)
	assert.Equal(t, StatusRunning, sp.Status)

	require.NoError(t, store.CompleteSplit(sp.ID, StatusSuccess, 12, ""))

	splits, err := store.ListSplits(10)
	require.NoError(t, err)
	require.Len(t, splits, 1)

	got := splits[0]
	assert.Equal(t, sp.ID, got.ID)
	assert.Equal(t, "/models/fire.nlogo", got.ModelPath)
	assert.Equal(t, "density sweep", got.Experiment)
	assert.Equal(t, 12, got.Runs)
	assert.Equal(t, StatusSuccess, got.Status)
	assert.Empty(t, got.Error)
	require.NotNil(t, got.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *got.CompletedAt, time.Minute)
}

func TestSQLiteStore_CompleteFailed(t *testing.T) {
	store := openTestStore(t)

	sp, err := store.CreateSplit("/m.nlogo", "baseline", "/runs")
	require.NoError(t, err)
	require.NoError(t, store.CompleteSplit(sp.ID, StatusFailed, 0, "disk full"))

	splits, err := store.ListSplits(10)
	require.NoError(t, err)
	require.Len(t, splits, 1)
	assert.Equal(t, StatusFailed, splits[0].Status)
	assert.Equal(t, "disk full", splits[0].Error)
}

func TestSQLiteStore_ListOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"first", "second", "third"} {
		_, err := store.CreateSplit("/m.nlogo", name, "/runs")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	splits, err := store.ListSplits(2)
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.Equal(t, "third", splits[0].Experiment)
	assert.Equal(t, "second", splits[1].Experiment)
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)

	_, err := store.CreateSplit("m", "e", "o")
	assert.Error(t, err)
	assert.Error(t, store.CompleteSplit("id", StatusSuccess, 0, ""))
	_, err = store.ListSplits(1)
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_ListQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, model_path").WillReturnError(assert.AnError)

	store := &SQLiteStore{db: db, logger: testutil.NewTestLogger(t)}
	_, err = store.ListSplits(5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list splits")
	assert.NoError(t, mock.ExpectationsWereMet())
}
