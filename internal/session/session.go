// Package session carries the identity of the active user explicitly,
// and maps it to that user's files on disk.
package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/aristath/investa/internal/database"
)

// ErrInvalidUsername is returned for empty or unsafe usernames
var ErrInvalidUsername = errors.New("invalid username")

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// Session identifies the user an operation acts on.
// It is created on login and dropped on logout; nothing holds it globally.
type Session struct {
	Username  string
	StartedAt time.Time
}

// New validates username and starts a session
func New(username string) (Session, error) {
	if !usernamePattern.MatchString(username) || username == "." || username == ".." {
		return Session{}, fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	return Session{Username: username, StartedAt: time.Now().UTC()}, nil
}

// Workspace resolves per-user store files under a data directory
type Workspace struct {
	dataDir  string
	registry *database.Registry
}

// NewWorkspace creates a workspace rooted at dataDir
func NewWorkspace(dataDir string, profile database.FileProfile) *Workspace {
	return &Workspace{
		dataDir:  dataDir,
		registry: database.NewRegistry(profile),
	}
}

// DataDir returns the workspace root
func (w *Workspace) DataDir() string {
	return w.dataDir
}

// UserDir returns the directory holding a user's files
func (w *Workspace) UserDir(s Session) string {
	return filepath.Join(w.dataDir, "users", s.Username)
}

// AssetsFile returns the shared assets file for the session's user
func (w *Workspace) AssetsFile(s Session) (*database.File, error) {
	return w.registry.Open(filepath.Join(w.UserDir(s), "assets.txt"), "assets")
}

// GoalsFile returns the shared goals file for the session's user
func (w *Workspace) GoalsFile(s Session) (*database.File, error) {
	return w.registry.Open(filepath.Join(w.UserDir(s), "goals.txt"), "goals")
}
