// Package id generates opaque identifiers for organizations and items.
package id

import "github.com/oklog/ulid/v2"

// New returns a new lexicographically sortable unique identifier.
func New() string {
	return ulid.Make().String()
}
