package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/docstore"
)

// stepClock returns a new time, one second later, on every call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// slowBackend sleeps between load and save to widen race windows.
type slowBackend struct {
	docstore.Backend
	delay time.Duration
}

func (b slowBackend) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := b.Backend.Load(ctx, name)
	time.Sleep(b.delay)
	return data, err
}

// newTestRepos returns repositories over a fresh in-memory SQLite database.
func newTestRepos(t *testing.T, opts ...Option) (*Organizations, *Inventory) {
	t.Helper()
	backend, err := docstore.NewSQLiteBackend(db.NewTestDB(t))
	if err != nil {
		t.Fatalf("creating backend: %v", err)
	}
	docs := NewOrganizationDocs(backend)
	return NewOrganizations(docs, opts...), NewInventory(docs, opts...)
}

// newMemoryRepos returns repositories over a memory backend, so tests can
// inspect and tamper with raw document bytes.
func newMemoryRepos(t *testing.T, opts ...Option) (*Organizations, *Inventory, *docstore.MemoryBackend) {
	t.Helper()
	backend := docstore.NewMemoryBackend()
	docs := NewOrganizationDocs(backend)
	return NewOrganizations(docs, opts...), NewInventory(docs, opts...), backend
}
