package source

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTestArchive(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dataset.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return path
}

func TestExtractArchive(t *testing.T) {
	archive := writeTestArchive(t, map[string]string{
		"albums.csv":        "track_id,label\nt1,L1\n",
		"nested/tracks.csv": "id,explicit\nt1,false\n",
	})

	dest := t.TempDir()
	require.NoError(t, ExtractArchive(archive, dest, zap.NewNop()))

	albums, err := os.ReadFile(filepath.Join(dest, "albums.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(albums), "track_id")

	_, err = os.Stat(filepath.Join(dest, "nested", "tracks.csv"))
	require.NoError(t, err)
}

func TestExtractArchiveRejectsEscapingEntries(t *testing.T) {
	archive := writeTestArchive(t, map[string]string{
		"../escape.csv": "bad\n",
	})

	err := ExtractArchive(archive, t.TempDir(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes destination")
}

func TestExtractArchiveMissingFile(t *testing.T) {
	err := ExtractArchive(filepath.Join(t.TempDir(), "nope.zip"), t.TempDir(), zap.NewNop())
	require.Error(t, err)
}
