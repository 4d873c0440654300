package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a telegram user
func NewTestUser(userID int64, firstName, username string) *tele.User {
	return &tele.User{
		ID:        userID,
		FirstName: firstName,
		Username:  username,
	}
}

// NewMember creates a membership record with the given status
func NewMember(userID int64, role tele.MemberStatus) *tele.ChatMember {
	return &tele.ChatMember{
		User: &tele.User{ID: userID},
		Role: role,
	}
}

// WriteCatalog creates a catalog file in a temp dir and returns its path
func WriteCatalog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}
