package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the store has no blob under the given key.
var ErrNotFound = errors.New("not found")

// SnapshotRepo is the opaque key -> blob store the stateful components
// persist their snapshots through. One blob per component.
type SnapshotRepo interface {
	Save(ctx context.Context, key string, blob []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
