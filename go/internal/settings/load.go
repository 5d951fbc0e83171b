package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// Load reads a snapshot from the store. It never fails: an unreadable or
// malformed document yields Defaults plus a warning, and invalid fields
// yield their default plus a warning each.
func Load(ctx context.Context, store DocumentStore) (Snapshot, []string) {
	snap, warnings, err := Read(ctx, store)
	if err != nil {
		return Defaults(), []string{fmt.Sprintf("config document could not be loaded, using defaults: %v", err)}
	}
	return snap, warnings
}

// Read is Load for callers that already hold a good snapshot. A missing
// document still yields Defaults plus a warning, but an unreadable or
// malformed one is returned as an error.
func Read(ctx context.Context, store DocumentStore) (Snapshot, []string, error) {
	doc, err := store.Load(ctx)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Defaults(), []string{"config document not found, using defaults"}, nil
	case err != nil:
		return Snapshot{}, nil, err
	}
	snap, warnings := doc.Snapshot()
	return snap, warnings, nil
}
