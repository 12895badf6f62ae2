// Package store implements the repositories over the organizations and
// settings documents. Every repository method runs exactly one document
// store transaction.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/erazemk/zaloga/internal/codec"
	"github.com/erazemk/zaloga/internal/docstore"
	"github.com/erazemk/zaloga/internal/id"
	"github.com/erazemk/zaloga/internal/model"
)

// Document names.
const (
	OrganizationsDocument = "organizations"
	SettingsDocument      = "settings"
)

var (
	// ErrNotFound is returned when a referenced organization or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrValueOutOfRange is returned when a stock total does not fit in a float64.
	ErrValueOutOfRange = errors.New("stock value out of range")
)

// ValidationError describes malformed or missing input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// OrganizationDocs is the store holding the organizations document.
type OrganizationDocs = docstore.Store[[]model.Organization]

// SettingsDocs is the store holding the settings document.
type SettingsDocs = docstore.Store[model.Settings]

// NewOrganizationDocs opens the organizations document on backend.
func NewOrganizationDocs(backend docstore.Backend, opts ...docstore.Option) *OrganizationDocs {
	return docstore.New[[]model.Organization](backend, OrganizationsDocument, codec.Organizations{}, opts...)
}

// NewSettingsDocs opens the settings document on backend.
func NewSettingsDocs(backend docstore.Backend, opts ...docstore.Option) *SettingsDocs {
	return docstore.New[model.Settings](backend, SettingsDocument, codec.Settings{}, opts...)
}

// Option configures a repository.
type Option func(*deps)

type deps struct {
	now   func() time.Time
	newID func() string
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

// WithIDs sets the identifier generator.
func WithIDs(newID func() string) Option {
	return func(d *deps) { d.newID = newID }
}

func newDeps(opts []Option) deps {
	d := deps{
		now:   func() time.Time { return time.Now().UTC() },
		newID: id.New,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func orgNotFound(orgID string) error {
	return fmt.Errorf("organization %q: %w", orgID, ErrNotFound)
}

func itemNotFound(itemID string) error {
	return fmt.Errorf("item %q: %w", itemID, ErrNotFound)
}
