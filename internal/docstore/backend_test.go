package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/zaloga/internal/db"
)

func testBackendRoundTrip(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Load(ctx, "organizations")
	require.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, b.Save(ctx, "organizations", []byte(`[{"id":"a"}]`)))
	data, err := b.Load(ctx, "organizations")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))

	require.NoError(t, b.Save(ctx, "organizations", []byte(`[]`)))
	data, err = b.Load(ctx, "organizations")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	// Documents are independent.
	_, err = b.Load(ctx, "settings")
	require.ErrorIs(t, err, ErrNotExist)
}

func TestMemoryBackend(t *testing.T) {
	testBackendRoundTrip(t, NewMemoryBackend())
}

func TestMemoryBackendCopiesData(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, b.Save(ctx, "doc", data))
	data[0] = 'x'

	got, err := b.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileBackend(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	b, err := NewFileBackend(root)
	require.NoError(t, err)
	testBackendRoundTrip(t, b)

	// No temp files are left behind after successful saves.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"organizations.json"}, names)
}

func TestFileBackendRejectsBadNames(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", "  ", "../escape", "a/b", `a\b`} {
		assert.Error(t, b.Save(ctx, name, []byte("x")), "name %q", name)
		_, err := b.Load(ctx, name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestFileBackendFailedSaveCleansUp(t *testing.T) {
	root := t.TempDir()
	b, err := NewFileBackend(root)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, "doc", []byte("v1")))

	// Make the target path a non-empty directory so the rename fails.
	require.NoError(t, os.Remove(filepath.Join(root, "doc.json")))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "doc.json", "child"), 0o750))

	assert.Error(t, b.Save(ctx, "doc", []byte("v2")))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp file left behind")
	}
}

func TestSQLiteBackend(t *testing.T) {
	b, err := NewSQLiteBackend(db.NewTestDB(t))
	require.NoError(t, err)
	testBackendRoundTrip(t, b)
}

func TestSQLiteBackendStoresEmptyPayload(t *testing.T) {
	b, err := NewSQLiteBackend(db.NewTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, "doc", nil))
	data, err := b.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Empty(t, data)
}
