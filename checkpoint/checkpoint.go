// Package checkpoint persists position mappings between runs of a binlog
// tailing process. Only plain mappings cross this boundary; turning a stored
// mapping back into a concrete position goes through position.FromMapping.
package checkpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/tailpoint/tailpoint/position"
)

var ErrNoCheckpoint = errors.New("no checkpoint stored")

// Store reads and writes the persisted form of a position.
type Store interface {
	// Load returns the last saved mapping, or ErrNoCheckpoint when nothing
	// has been saved yet.
	Load(ctx context.Context) (position.Mapping, error)
	Save(ctx context.Context, m position.Mapping) error
	Close() error
}

// Resolve loads the stored mapping and reconstructs the position it
// describes. ErrNoCheckpoint passes through untouched so callers can fall
// back to tailing from the current head of the stream.
func Resolve(ctx context.Context, store Store) (position.Position, error) {
	m, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	pos, err := position.FromMapping(m)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct position from checkpoint: %w", err)
	}
	return pos, nil
}
