package checkpoint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailpoint/tailpoint/position"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(&Config{Path: filepath.Join(t.TempDir(), "state.json")})
	require.NoError(t, err)
	return store
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	_, err := NewFileStore(&Config{})
	require.Error(t, err)
}

func TestFileStoreLoadWithoutCheckpoint(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, ErrNoCheckpoint)
}

func TestFileStoreTreatsEmptyFileAsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	store, err := NewFileStore(&Config{Path: path})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, ErrNoCheckpoint)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(&Config{Path: path})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoCheckpoint)
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		pos  position.Position
	}{
		{name: "gtid", pos: position.GTIDPosition{GTID: "sid:13"}},
		{name: "gtid with offset", pos: position.GTIDPosition{GTID: "sid:13", Offset: 10}},
		{name: "log", pos: position.LogPosition{LogPos: 433, LogFile: "binlog.000017"}},
		{name: "log with offset", pos: position.LogPosition{LogPos: 433, LogFile: "binlog.000017", Offset: 4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := newTestStore(t)

			require.NoError(t, store.Save(ctx, tc.pos.PersistedMap()))

			loaded, err := store.Load(ctx)
			require.NoError(t, err)

			rebuilt, err := position.FromMapping(loaded)
			require.NoError(t, err)
			assert.Equal(t, tc.pos.PersistedMap(), rebuilt.PersistedMap())
		})
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := position.GTIDPosition{GTID: "sid:13", Offset: 10}
	require.NoError(t, store.Save(ctx, first.PersistedMap()))

	second := position.LogPosition{LogPos: 433, LogFile: "binlog.000018"}
	require.NoError(t, store.Save(ctx, second.PersistedMap()))

	pos, err := Resolve(ctx, store)
	require.NoError(t, err)

	require.IsType(t, position.LogPosition{}, pos)
	assert.Equal(t, second.PersistedMap(), pos.PersistedMap())
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileStore(&Config{Path: filepath.Join(dir, "state.json")})
	require.NoError(t, err)

	pos := position.GTIDPosition{GTID: "sid:2"}
	require.NoError(t, store.Save(ctx, pos.PersistedMap()))
	require.NoError(t, store.Save(ctx, pos.PersistedMap()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	saved := position.GTIDPosition{GTID: "sid:13", Offset: 10}
	require.NoError(t, store.Save(ctx, saved.PersistedMap()))

	pos, err := Resolve(ctx, store)
	require.NoError(t, err)
	require.IsType(t, position.GTIDPosition{}, pos)

	resume, err := pos.ResumeMap()
	require.NoError(t, err)
	assert.Equal(t, position.Mapping{position.KeyAutoPosition: "sid:1-13"}, resume)
}

func TestResolvePassesThroughNoCheckpoint(t *testing.T) {
	store := newTestStore(t)

	_, err := Resolve(context.Background(), store)
	require.ErrorIs(t, err, ErrNoCheckpoint)
}

func TestResolveRejectsUnusableMapping(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// a lone log_pos is not enough to rebuild a position
	require.NoError(t, store.Save(ctx, position.Mapping{position.KeyLogPos: 100}))

	_, err := Resolve(ctx, store)
	require.Error(t, err)

	var invalid *position.InvalidMappingError
	require.ErrorAs(t, err, &invalid)
}
