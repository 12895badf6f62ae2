package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Store gives serialized read-modify-write access to one named document.
// At most one Transact, View or Reset runs at a time per Store.
type Store[T any] struct {
	mu       sync.Mutex
	backend  Backend
	name     string
	codec    Codec[T]
	observer Observer
}

// Option configures a Store.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver reports every store operation to o.
func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// New returns a Store for the document called name.
func New[T any](backend Backend, name string, codec Codec[T], opts ...Option) *Store[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		backend:  backend,
		name:     name,
		codec:    codec,
		observer: o.observer,
	}
}

// Transact loads the document, applies fn and persists its result, all while
// holding the store lock. fn must not perform I/O; it may modify its argument.
//
// If fn returns an error nothing is written and the error is returned as is,
// except for ErrNoChange, which yields the current value and no error.
// If persisting fails, the previously stored value is returned together with
// an error wrapping ErrPersistFailed.
func (s *Store[T]) Transact(ctx context.Context, fn func(T) (T, error)) (T, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	v, outcome, err := s.apply(ctx, fn, true)
	s.observe("transact", outcome, time.Since(start))
	return v, err
}

// View returns the current document value. It takes the same lock as
// Transact, so it never observes a cycle in progress.
func (s *Store[T]) View(ctx context.Context) (T, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	v, outcome, err := s.apply(ctx, func(v T) (T, error) { return v, nil }, false)
	s.observe("view", outcome, time.Since(start))
	return v, err
}

// Reset overwrites the document with the encoding of the zero value. It is
// the only way to replace a corrupt document and must only be called after
// explicit confirmation.
func (s *Store[T]) Reset(ctx context.Context) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	err := s.save(ctx, zero)
	outcome := OutcomeCommitted
	if err != nil {
		outcome = OutcomePersistFailed
	}
	s.observe("reset", outcome, time.Since(start))
	return err
}

func (s *Store[T]) apply(ctx context.Context, fn func(T) (T, error), write bool) (T, string, error) {
	var zero T

	raw, err := s.backend.Load(ctx, s.name)
	if errors.Is(err, ErrNotExist) {
		raw = nil
	} else if err != nil {
		return zero, OutcomeError, fmt.Errorf("loading %s: %w", s.name, err)
	}

	current, err := s.codec.Decode(raw)
	if err != nil {
		if !errors.Is(err, ErrCorruptDocument) {
			err = fmt.Errorf("%w: %w", ErrCorruptDocument, err)
		}
		return zero, OutcomeCorrupt, fmt.Errorf("decoding %s: %w", s.name, err)
	}

	next, err := fn(current)
	if errors.Is(err, ErrNoChange) {
		return current, OutcomeUnchanged, nil
	}
	if err != nil {
		return zero, OutcomeRejected, err
	}
	if !write {
		return next, OutcomeRead, nil
	}

	if err := s.save(ctx, next); err != nil {
		// fn may have modified current in place, so decode the prior bytes again.
		prior, decErr := s.codec.Decode(raw)
		if decErr != nil {
			return zero, OutcomePersistFailed, err
		}
		return prior, OutcomePersistFailed, err
	}
	return next, OutcomeCommitted, nil
}

func (s *Store[T]) save(ctx context.Context, v T) error {
	data, err := s.codec.Encode(v)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %w", ErrPersistFailed, s.name, err)
	}
	if err := s.backend.Save(ctx, s.name, data); err != nil {
		return fmt.Errorf("%w: saving %s: %w", ErrPersistFailed, s.name, err)
	}
	return nil
}

func (s *Store[T]) observe(op, outcome string, d time.Duration) {
	if s.observer != nil {
		s.observer.ObserveTransaction(s.name, op, outcome, d)
	}
}
