package filestore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)

	_, ok, err := s.Get(ctx, "my-todos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "my-todos", []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, "my-todos", []byte(`[]`)))

	got, ok, err := s.Get(ctx, "my-todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "my-todos", entries[0].Name())
}

func TestSlot_OwnerOnlyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := filepath.Join(t.TempDir(), "data")
	s := New(dir)
	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))

	fi, err := os.Stat(filepath.Join(dir, "k"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	di, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), di.Mode().Perm())
}

func TestSlot_RejectsPathKeys(t *testing.T) {
	s := New(t.TempDir())
	for _, key := range []string{"", ".", "..", "../escape", "a/b", `a\b`} {
		assert.Error(t, s.Set(context.Background(), key, []byte("x")), "key %q", key)
		_, _, err := s.Get(context.Background(), key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestSlot_ReadError(t *testing.T) {
	dir := t.TempDir()
	// a directory where the file should be cannot be read as a blob
	require.NoError(t, os.Mkdir(filepath.Join(dir, "k"), 0o700))
	_, _, err := New(dir).Get(context.Background(), "k")
	assert.Error(t, err)
}
