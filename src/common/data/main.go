// Package data holds the per-session dataset storage.
package data

import (
	"context"
	"errors"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

var ErrSessionNotFound = errors.New("no dataset uploaded for session")

// SessionStore keeps one dataset per session. Save replaces any previous
// dataset for the session.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, ds types.Dataset) error
	Load(ctx context.Context, sessionID string) (types.Dataset, error)
	Delete(ctx context.Context, sessionID string) error
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID + ":dataset"
}
