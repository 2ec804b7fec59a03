package reliability

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"users/alice/assets.txt":           "Stocks,Apple,100\n",
		"users/alice/goals.txt":            "Retirement,1000,2040-01-01,10\n",
		"users/bob/assets.txt":             "Gold,Bar,5\n",
		"users/alice/.assets.txt.tmp-1234": "partial",
		".cache/ignored.txt":               "ignored",
	}
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func TestWriteReadArchive(t *testing.T) {
	dir := writeDataDir(t)
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	var buf bytes.Buffer
	metadata, err := WriteArchive(&buf, dir, BackupMetadata{BackupID: "id-1", Timestamp: ts})
	require.NoError(t, err)

	paths := make([]string, 0, len(metadata.Files))
	for _, f := range metadata.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"users/alice/assets.txt", "users/alice/goals.txt", "users/bob/assets.txt"}, paths)
	assert.Equal(t, int64(len("Stocks,Apple,100\n")), metadata.Files[0].SizeBytes)
	assert.Contains(t, metadata.Files[0].Checksum, "sha256:")

	read, contents, err := ReadArchive(&buf)
	require.NoError(t, err)
	assert.Equal(t, "id-1", read.BackupID)
	assert.True(t, ts.Equal(read.Timestamp))
	assert.Equal(t, metadataVersion, read.Version)
	assert.Equal(t, "Gold,Bar,5\n", string(contents["users/bob/assets.txt"]))
	assert.NotContains(t, contents, "users/alice/.assets.txt.tmp-1234")
}

func TestWriteArchive_EmptyDataDir(t *testing.T) {
	var buf bytes.Buffer
	metadata, err := WriteArchive(&buf, t.TempDir(), BackupMetadata{BackupID: "empty"})
	require.NoError(t, err)
	assert.Empty(t, metadata.Files)

	_, contents, err := ReadArchive(&buf)
	require.NoError(t, err)
	assert.Empty(t, contents)
}

func buildArchive(t *testing.T, files map[string][]byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, data := range files {
		require.NoError(t, addToArchive(tw, name, data))
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return &buf
}

func TestReadArchive_DetectsCorruption(t *testing.T) {
	manifest, err := json.Marshal(BackupMetadata{
		BackupID: "x",
		Files:    []FileMetadata{{Path: "users/a/assets.txt", SizeBytes: 4, Checksum: checksum([]byte("good"))}},
	})
	require.NoError(t, err)

	t.Run("checksum mismatch", func(t *testing.T) {
		archive := buildArchive(t, map[string][]byte{
			"users/a/assets.txt": []byte("evil"),
			MetadataFile:         manifest,
		})
		_, _, err := ReadArchive(archive)
		assert.ErrorContains(t, err, "checksum mismatch")
	})

	t.Run("missing file", func(t *testing.T) {
		archive := buildArchive(t, map[string][]byte{MetadataFile: manifest})
		_, _, err := ReadArchive(archive)
		assert.ErrorContains(t, err, "missing")
	})

	t.Run("missing manifest", func(t *testing.T) {
		archive := buildArchive(t, map[string][]byte{"users/a/assets.txt": []byte("good")})
		_, _, err := ReadArchive(archive)
		assert.ErrorContains(t, err, MetadataFile)
	})

	t.Run("not gzip", func(t *testing.T) {
		_, _, err := ReadArchive(bytes.NewBufferString("plain text"))
		assert.Error(t, err)
	})
}
