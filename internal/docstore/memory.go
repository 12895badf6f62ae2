package docstore

import (
	"bytes"
	"context"
	"sync"
)

// MemoryBackend keeps documents in process memory. It is used for tests and
// ephemeral runs.
type MemoryBackend struct {
	mu      sync.Mutex
	docs    map[string][]byte
	saveErr error
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

// Load returns a copy of the stored bytes.
func (b *MemoryBackend) Load(_ context.Context, name string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, ok := b.docs[name]
	if !ok {
		return nil, ErrNotExist
	}
	return bytes.Clone(data), nil
}

// Save stores a copy of data, unless saves have been set to fail.
func (b *MemoryBackend) Save(_ context.Context, name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.saveErr != nil {
		return b.saveErr
	}
	b.docs[name] = bytes.Clone(data)
	return nil
}

// Put replaces a document's raw bytes, bypassing any codec.
func (b *MemoryBackend) Put(name string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[name] = bytes.Clone(data)
}

// Raw returns the stored bytes of a document and whether it exists.
func (b *MemoryBackend) Raw(name string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.docs[name]
	return bytes.Clone(data), ok
}

// FailSaves makes every following Save return err. A nil err restores
// normal behaviour.
func (b *MemoryBackend) FailSaves(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveErr = err
}
