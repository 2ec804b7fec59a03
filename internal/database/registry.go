package database

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Registry hands out one *File per absolute path so that every caller
// touching the same file shares its mutex.
type Registry struct {
	mu      sync.Mutex
	files   map[string]*File
	profile FileProfile
}

// NewRegistry creates an empty registry; profile applies to every file it opens
func NewRegistry(profile FileProfile) *Registry {
	if profile == "" {
		profile = ProfileStandard
	}
	return &Registry{
		files:   make(map[string]*File),
		profile: profile,
	}
}

// Open returns the shared File for path, creating it on first use
func (r *Registry) Open(path, name string) (*File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file path to absolute: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.files[absPath]; ok {
		return f, nil
	}

	f, err := New(Config{Path: absPath, Profile: r.profile, Name: name})
	if err != nil {
		return nil, err
	}
	r.files[absPath] = f
	return f, nil
}

// Len returns the number of open files
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.files)
}
