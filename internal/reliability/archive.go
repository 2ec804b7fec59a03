package reliability

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MetadataFile is the manifest stored alongside the data files
const MetadataFile = "backup-metadata.json"

// metadataVersion is bumped when the manifest layout changes
const metadataVersion = "1"

// BackupMetadata describes the contents of a backup archive
type BackupMetadata struct {
	BackupID  string         `json:"backup_id"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Files     []FileMetadata `json:"files"`
}

// FileMetadata describes one archived file
type FileMetadata struct {
	Path      string `json:"path"` // Slash-separated, relative to the data directory
	SizeBytes int64  `json:"size_bytes"`
	Checksum  string `json:"checksum"`
}

// skipFile reports whether a data directory entry is left out of backups.
// Hidden files include the temp files of interrupted writes.
func skipFile(name string) bool {
	return strings.HasPrefix(name, ".")
}

// collectFiles returns the data files under dataDir in lexical order
func collectFiles(dataDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dataDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dataDir && skipFile(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk data directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// WriteArchive writes a tar.gz of every data file under dataDir to w,
// followed by a manifest. The metadata's Files list is filled in.
func WriteArchive(w io.Writer, dataDir string, metadata BackupMetadata) (BackupMetadata, error) {
	files, err := collectFiles(dataDir)
	if err != nil {
		return metadata, err
	}

	gzipWriter := gzip.NewWriter(w)
	tarWriter := tar.NewWriter(gzipWriter)

	metadata.Version = metadataVersion
	metadata.Files = make([]FileMetadata, 0, len(files))
	for _, p := range files {
		rel, err := filepath.Rel(dataDir, p)
		if err != nil {
			return metadata, err
		}
		rel = filepath.ToSlash(rel)

		// Store files are small; reading them whole keeps header size and checksum consistent
		data, err := os.ReadFile(p)
		if err != nil {
			return metadata, fmt.Errorf("failed to read %s: %w", rel, err)
		}
		if err := addToArchive(tarWriter, rel, data); err != nil {
			return metadata, fmt.Errorf("failed to add %s to archive: %w", rel, err)
		}
		metadata.Files = append(metadata.Files, FileMetadata{
			Path:      rel,
			SizeBytes: int64(len(data)),
			Checksum:  checksum(data),
		})
	}

	manifest, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return metadata, fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := addToArchive(tarWriter, MetadataFile, manifest); err != nil {
		return metadata, fmt.Errorf("failed to add metadata to archive: %w", err)
	}

	if err := tarWriter.Close(); err != nil {
		return metadata, err
	}
	if err := gzipWriter.Close(); err != nil {
		return metadata, err
	}
	return metadata, nil
}

// ReadArchive reads a backup archive, verifies every file against the
// manifest and returns the manifest with the file contents keyed by path.
func ReadArchive(r io.Reader) (BackupMetadata, map[string][]byte, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return BackupMetadata{}, nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gzipReader.Close()

	var (
		metadata    BackupMetadata
		hasMetadata bool
		contents    = make(map[string][]byte)
		tarReader   = tar.NewReader(gzipReader)
	)
	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return BackupMetadata{}, nil, fmt.Errorf("failed to read archive: %w", err)
		}

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, tarReader); err != nil {
			return BackupMetadata{}, nil, fmt.Errorf("failed to read %s: %w", header.Name, err)
		}

		if header.Name == MetadataFile {
			if err := json.Unmarshal(buf.Bytes(), &metadata); err != nil {
				return BackupMetadata{}, nil, fmt.Errorf("failed to decode metadata: %w", err)
			}
			hasMetadata = true
			continue
		}
		contents[header.Name] = buf.Bytes()
	}

	if !hasMetadata {
		return BackupMetadata{}, nil, fmt.Errorf("archive has no %s", MetadataFile)
	}
	for _, f := range metadata.Files {
		data, ok := contents[f.Path]
		if !ok {
			return metadata, nil, fmt.Errorf("archive is missing %s", f.Path)
		}
		if got := checksum(data); got != f.Checksum {
			return metadata, nil, fmt.Errorf("checksum mismatch for %s: got %s, want %s", f.Path, got, f.Checksum)
		}
	}
	return metadata, contents, nil
}

func addToArchive(tarWriter *tar.Writer, name string, data []byte) error {
	header := &tar.Header{
		Name:    name,
		Size:    int64(len(data)),
		Mode:    0644,
		ModTime: time.Now().UTC(),
	}
	if err := tarWriter.WriteHeader(header); err != nil {
		return err
	}
	_, err := tarWriter.Write(data)
	return err
}

func checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}
