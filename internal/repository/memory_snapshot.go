package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemorySnapshotRepo is an in-memory SnapshotRepo for tests and ephemeral
// runs.
type MemorySnapshotRepo struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemorySnapshotRepo creates an empty in-memory store.
func NewMemorySnapshotRepo() *MemorySnapshotRepo {
	return &MemorySnapshotRepo{blobs: map[string][]byte{}}
}

func (r *MemorySnapshotRepo) Save(_ context.Context, key string, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]byte, len(blob))
	copy(cp, blob)
	r.blobs[key] = cp
	return nil
}

func (r *MemorySnapshotRepo) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	blob, ok := r.blobs[key]
	if !ok {
		return nil, fmt.Errorf("snapshot %q: %w", key, ErrNotFound)
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return cp, nil
}

func (r *MemorySnapshotRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blobs, key)
	return nil
}
