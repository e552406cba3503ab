package sync

import (
	"context"
	"errors"
)

// Doc is the remote per-user document: one serialized string per field,
// mirroring the local storage namespace.
type Doc map[string]string

// ErrNoDoc is returned by Fetch when no document exists for the identity.
var ErrNoDoc = errors.New("no remote document")

// Remote is the cloud store collaborator. Save performs a merge-style
// partial update: only the given fields are written, last writer wins per
// field. SaveEvents appends audit events keyed by event id, so re-sending
// an already-synced event is harmless.
type Remote interface {
	Fetch(ctx context.Context, userID string) (Doc, error)
	Save(ctx context.Context, userID string, fields Doc) error
	SaveEvents(ctx context.Context, userID string, events map[string]string) error
}
