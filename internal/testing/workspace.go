// Package testing provides test helpers shared across the investa packages.
package testing

import (
	"testing"

	"github.com/aristath/investa/internal/database"
	"github.com/aristath/investa/internal/session"
	"github.com/rs/zerolog"
)

// NewTestServices creates per-user services over a fresh temp data directory.
// The directory is removed when the test ends.
func NewTestServices(t *testing.T) *session.Services {
	t.Helper()
	workspace := session.NewWorkspace(t.TempDir(), database.ProfileStandard)
	return session.NewServices(workspace, zerolog.Nop())
}

// NewTestSession starts a session for username or fails the test
func NewTestSession(t *testing.T, username string) session.Session {
	t.Helper()
	sess, err := session.New(username)
	if err != nil {
		t.Fatalf("Failed to start session for %q: %v", username, err)
	}
	return sess
}
