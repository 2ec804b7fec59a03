// Package database provides the line-oriented flat-file storage used by all stores.
package database

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/metrics"
)

// FileProfile defines different durability profiles for store files
type FileProfile string

const (
	// ProfileLedger - fsync after every write, including appends
	ProfileLedger FileProfile = "ledger"
	// ProfileStandard - fsync on full overwrites only
	ProfileStandard FileProfile = "standard"
)

// maxLineBytes bounds a single record; longer lines are skipped on read
// and counted as dropped records
const maxLineBytes = 1 << 20

// File wraps a single delimited text file.
// All operations on one File are serialized by its mutex.
type File struct {
	mu      sync.Mutex
	path    string
	profile FileProfile
	name    string // Store name for logging and metrics
}

// Config holds file configuration
type Config struct {
	Path    string
	Profile FileProfile
	Name    string // Friendly name for logging (e.g., "assets", "goals")
}

// New prepares a file handle, creating the parent directory if needed.
// The file itself is created lazily on first write.
func New(cfg Config) (*File, error) {
	absPath, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file path to absolute: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, &domain.StorageError{Op: "mkdir", Path: filepath.Dir(absPath), Err: err}
	}

	if cfg.Profile == "" {
		cfg.Profile = ProfileStandard
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	}

	return &File{
		path:    absPath,
		profile: cfg.Profile,
		name:    cfg.Name,
	}, nil
}

// Path returns the absolute file path
func (f *File) Path() string {
	return f.path
}

// Name returns the store name
func (f *File) Name() string {
	return f.name
}

// Profile returns the durability profile
func (f *File) Profile() FileProfile {
	return f.profile
}

// Exists reports whether the backing file has been created
func (f *File) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// ReadLines returns every line of the file without trailing newlines.
// A missing file yields no lines and no error.
func (f *File) ReadLines() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.readLocked()
	f.observe("read", err)
	return lines, err
}

// WriteLines replaces the whole file with lines.
// The content is written to a temp file in the same directory and renamed
// over the original, so a failed write leaves the previous version intact.
func (f *File) WriteLines(lines []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.writeLocked(lines)
	f.observe("write", err)
	return err
}

// AppendLine adds a single line at the end of the file without reading it
func (f *File) AppendLine(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.appendLocked(line)
	f.observe("append", err)
	return err
}

// Update runs a read-modify-write cycle under a single lock.
// If fn returns an error nothing is written.
func (f *File) Update(fn func(lines []string) ([]string, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.readLocked()
	if err != nil {
		f.observe("update", err)
		return err
	}

	next, err := fn(lines)
	if err != nil {
		return err
	}

	err = f.writeLocked(next)
	f.observe("update", err)
	return err
}

func (f *File) readLocked() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "open", Path: f.path, Err: err}
	}
	defer file.Close()

	var (
		lines    []string
		line     []byte
		oversize bool
		skipped  int
		reader   = bufio.NewReaderSize(file, 64*1024)
	)
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.StorageError{Op: "read", Path: f.path, Err: err}
		}

		// Over-long lines are discarded chunk by chunk, never buffered whole
		if !oversize {
			line = append(line, chunk...)
			if len(line) > maxLineBytes {
				oversize = true
				line = line[:0]
			}
		}
		if isPrefix {
			continue
		}

		if oversize {
			skipped++
		} else {
			lines = append(lines, strings.TrimSuffix(string(line), "\r"))
		}
		line = line[:0]
		oversize = false
	}

	if skipped > 0 {
		metrics.RecordsDropped.WithLabelValues(f.name).Add(float64(skipped))
	}
	return lines, nil
}

func (f *File) writeLocked(lines []string) (err error) {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return &domain.StorageError{Op: "create temp", Path: dir, Err: err}
	}
	tmpPath := tmp.Name()

	// Remove the temp file on any failure path
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = writeAll(w, lines); err != nil {
		return &domain.StorageError{Op: "write", Path: tmpPath, Err: err}
	}
	if err = w.Flush(); err != nil {
		return &domain.StorageError{Op: "flush", Path: tmpPath, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &domain.StorageError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &domain.StorageError{Op: "close", Path: tmpPath, Err: err}
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return &domain.StorageError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err = os.Rename(tmpPath, f.path); err != nil {
		return &domain.StorageError{Op: "rename", Path: f.path, Err: err}
	}
	return nil
}

func (f *File) appendLocked(line string) error {
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &domain.StorageError{Op: "open", Path: f.path, Err: err}
	}

	if _, err := io.WriteString(file, line+"\n"); err != nil {
		_ = file.Close()
		return &domain.StorageError{Op: "append", Path: f.path, Err: err}
	}
	if f.profile == ProfileLedger {
		if err := file.Sync(); err != nil {
			_ = file.Close()
			return &domain.StorageError{Op: "sync", Path: f.path, Err: err}
		}
	}
	if err := file.Close(); err != nil {
		return &domain.StorageError{Op: "close", Path: f.path, Err: err}
	}
	return nil
}

func (f *File) observe(op string, err error) {
	metrics.FileOperations.WithLabelValues(f.name, op, metrics.Result(err)).Inc()
}

func writeAll(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
