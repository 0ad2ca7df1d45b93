package migration

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/maturity-backend/internal/platform/gcp"
)

type fakeObjects struct {
	uri  string
	body string
}

func (f *fakeObjects) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	f.uri = uri
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestResolveSourceDirectoryPicksFirstWorkbook(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "~$a.xlsx", "notes.txt", "c.XLSX"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a.xlsx"), 0o755))

	src, err := ResolveSource(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.xlsx"), src.Location)
	assert.False(t, src.Remote)
}

func TestResolveSourceEmptyDirectory(t *testing.T) {
	_, err := ResolveSource(t.TempDir())
	assert.ErrorIs(t, err, ErrNoWorkbook)
}

func TestResolveSourceFileAndMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	src, err := ResolveSource(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Location)

	_, err = ResolveSource(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
	_, err = ResolveSource("  ")
	assert.Error(t, err)
}

func TestResolveSourceObjectURI(t *testing.T) {
	src, err := ResolveSource("gs://surveys/2025/maturity.xlsx")
	require.NoError(t, err)
	assert.True(t, src.Remote)

	objects := &fakeObjects{body: "payload"}
	rc, err := src.Open(context.Background(), objects)
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "payload", string(b))
	assert.Equal(t, "gs://surveys/2025/maturity.xlsx", objects.uri)

	_, err = src.Open(context.Background(), nil)
	assert.Error(t, err)

	_, err = ResolveSource("gs://")
	assert.ErrorIs(t, err, gcp.ErrInvalidObjectURI)
}
