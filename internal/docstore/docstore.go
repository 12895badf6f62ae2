// Package docstore provides transactional access to named documents.
//
// A document is persisted as a single byte blob by a Backend. Store wraps a
// backend and a codec and serializes every read-modify-write cycle against
// its document, so concurrent mutations apply one after another instead of
// overwriting each other.
package docstore

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotExist is returned by a Backend when the named document has never been saved.
	ErrNotExist = errors.New("document does not exist")

	// ErrCorruptDocument is returned when persisted bytes cannot be decoded.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrPersistFailed is returned when a new document version could not be written.
	// The previously persisted version remains authoritative.
	ErrPersistFailed = errors.New("persisting document failed")

	// ErrNoChange may be returned by a transaction function to end the
	// transaction without writing. Transact then returns the current value
	// and a nil error.
	ErrNoChange = errors.New("no change")
)

// Backend loads and saves raw document bytes by name. Save must be atomic:
// after a failed Save, Load returns the previous bytes.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Codec converts between a document value and its persisted bytes.
// Decode of empty input yields the "no data yet" value.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// Observer receives one call per finished store operation.
type Observer interface {
	ObserveTransaction(document, op, outcome string, d time.Duration)
}

// Transaction outcomes reported to an Observer.
const (
	OutcomeCommitted     = "committed"
	OutcomeRead          = "read"
	OutcomeUnchanged     = "unchanged"
	OutcomeRejected      = "rejected"
	OutcomeCorrupt       = "corrupt"
	OutcomePersistFailed = "persist_failed"
	OutcomeError         = "error"
)
