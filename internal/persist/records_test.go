package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skullrun/game/internal/data"
)

func TestMemoryRecordsOnlyKeepFaster(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRecords()
	key := data.NewRecordKey("Caverns", "First Steps")

	_, ok, err := m.Best(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	improved, err := m.Submit(ctx, key, 20000)
	require.NoError(t, err)
	assert.True(t, improved, "first time always counts")

	improved, _ = m.Submit(ctx, key, 25000)
	assert.False(t, improved)
	improved, _ = m.Submit(ctx, key, 20000)
	assert.False(t, improved, "ties do not overwrite")
	improved, _ = m.Submit(ctx, key, 19999)
	assert.True(t, improved)

	ms, ok, _ := m.Best(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, int64(19999), ms)
}

func TestMemoryRecordsAllSorted(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryRecords()
	m.Submit(ctx, data.NewRecordKey("b", "x"), 3)
	m.Submit(ctx, data.NewRecordKey("a", "z"), 2)
	m.Submit(ctx, data.NewRecordKey("a", "y"), 1)

	all, err := m.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "y", all[0].Key.Level)
	assert.Equal(t, "z", all[1].Key.Level)
	assert.Equal(t, "b", all[2].Key.World)
}

func TestFileRecordsPersist(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "levels", "save.jsv")
	key := data.NewRecordKey("Caverns", "First Steps")

	f, err := OpenFileRecords(path, zap.NewNop())
	require.NoError(t, err)
	improved, err := f.Submit(ctx, key, 12345)
	require.NoError(t, err)
	assert.True(t, improved)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Caverns:::First Steps": 12345}`, string(raw))

	again, err := OpenFileRecords(path, zap.NewNop())
	require.NoError(t, err)
	ms, ok, _ := again.Best(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, int64(12345), ms)

	improved, _ = again.Submit(ctx, key, 20000)
	assert.False(t, improved)
}

func TestFileRecordsFailedWriteCanBeRetried(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "save.jsv")
	kept := data.NewRecordKey("Caverns", "First Steps")
	fresh := data.NewRecordKey("Caverns", "Café")

	f, err := OpenFileRecords(path, zap.NewNop())
	require.NoError(t, err)
	_, err = f.Submit(ctx, kept, 5000)
	require.NoError(t, err)

	// A directory in place of the temp file makes every write fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	improved, err := f.Submit(ctx, kept, 4000)
	require.Error(t, err)
	assert.False(t, improved)
	ms, ok, _ := f.Best(ctx, kept)
	assert.True(t, ok)
	assert.Equal(t, int64(5000), ms)

	_, err = f.Submit(ctx, fresh, 3000)
	require.Error(t, err)
	_, ok, _ = f.Best(ctx, fresh)
	assert.False(t, ok)

	require.NoError(t, os.Remove(path+".tmp"))

	improved, err = f.Submit(ctx, kept, 4000)
	require.NoError(t, err)
	assert.True(t, improved)
	improved, err = f.Submit(ctx, fresh, 3000)
	require.NoError(t, err)
	assert.True(t, improved)

	again, err := OpenFileRecords(path, zap.NewNop())
	require.NoError(t, err)
	ms, _, _ = again.Best(ctx, kept)
	assert.Equal(t, int64(4000), ms)
	ms, _, _ = again.Best(ctx, fresh)
	assert.Equal(t, int64(3000), ms)
}

func TestFileRecordsDropsBadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.jsv")
	require.NoError(t, os.WriteFile(path, []byte(`{"broken": 5, "w:::l": 7}`), 0o644))

	f, err := OpenFileRecords(path, zap.NewNop())
	require.NoError(t, err)
	all, _ := f.All(context.Background())
	assert.Equal(t, []Record{{Key: data.NewRecordKey("w", "l"), BestMS: 7}}, all)
}

func TestFileRecordsRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.jsv")
	require.NoError(t, os.WriteFile(path, []byte(`[1,2`), 0o644))
	_, err := OpenFileRecords(path, zap.NewNop())
	assert.Error(t, err)
}

type fakeWriter struct {
	fail    bool
	batches [][]Run
}

func (w *fakeWriter) WriteRuns(_ context.Context, runs []Run) error {
	if w.fail {
		return errors.New("db down")
	}
	w.batches = append(w.batches, append([]Run(nil), runs...))
	return nil
}

func TestRunBufferRetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	w := &fakeWriter{fail: true}
	b := NewRunBuffer(w)
	b.Add(Run{Key: data.NewRecordKey("a", "b"), TimeMS: 10})
	b.Add(Run{Key: data.NewRecordKey("a", "b"), TimeMS: 9, Deaths: 2})

	assert.Error(t, b.Flush(ctx))
	assert.Equal(t, 2, b.Pending())

	w.fail = false
	require.NoError(t, b.Flush(ctx))
	assert.Zero(t, b.Pending())
	require.Len(t, w.batches, 1)
	assert.Len(t, w.batches[0], 2)

	require.NoError(t, b.Flush(ctx))
	assert.Len(t, w.batches, 1, "empty flush writes nothing")
}

func TestCompileTimeStores(t *testing.T) {
	var _ Records = (*MemoryRecords)(nil)
	var _ Records = (*FileRecords)(nil)
	var _ Records = (*RecordRepo)(nil)
	var _ RunWriter = (*RunRepo)(nil)
}

func TestEmbeddedMigrationsInOrder(t *testing.T) {
	goose.SetBaseFS(migrations)
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	ms, err := goose.CollectMigrations("migrations", 0, goose.MaxVersion)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, int64(1), ms[0].Version)
	assert.Equal(t, int64(2), ms[1].Version)
	assert.Contains(t, ms[1].Source, "level_runs")
}
