// Package codec defines the on-disk encoding of the organizations and
// settings documents.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/erazemk/zaloga/internal/docstore"
	"github.com/erazemk/zaloga/internal/model"
)

// Encode serializes the organization list as a JSON array.
func Encode(orgs []model.Organization) ([]byte, error) {
	out := make([]model.Organization, len(orgs))
	for i, o := range orgs {
		if o.Inventory == nil {
			o.Inventory = []model.InventoryItem{}
		}
		out[i] = o
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding organizations: %w", err)
	}
	return data, nil
}

// Decode parses an organization list. Empty input is the "no data yet"
// state and yields an empty list. Anything that is not a valid list of
// organizations fails with docstore.ErrCorruptDocument.
func Decode(data []byte) ([]model.Organization, error) {
	orgs := []model.Organization{}
	if isEmpty(data) {
		return orgs, nil
	}
	if err := json.Unmarshal(data, &orgs); err != nil {
		return nil, fmt.Errorf("%w: %v", docstore.ErrCorruptDocument, err)
	}
	if orgs == nil {
		// Literal null.
		return []model.Organization{}, nil
	}
	if err := normalize(orgs); err != nil {
		return nil, fmt.Errorf("%w: %v", docstore.ErrCorruptDocument, err)
	}
	return orgs, nil
}

func normalize(orgs []model.Organization) error {
	seen := make(map[string]struct{}, len(orgs))
	for i := range orgs {
		o := &orgs[i]
		if o.ID == "" {
			return fmt.Errorf("organization %d has no id", i)
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("duplicate organization id %q", o.ID)
		}
		seen[o.ID] = struct{}{}

		if o.Currency == "" {
			o.Currency = model.DefaultCurrency
		}
		if o.Inventory == nil {
			o.Inventory = []model.InventoryItem{}
		}

		for j, item := range o.Inventory {
			switch {
			case item.ID == "":
				return fmt.Errorf("organization %q: item %d has no id", o.ID, j)
			case item.Quantity < 0:
				return fmt.Errorf("organization %q: item %q has negative quantity", o.ID, item.ID)
			case item.Price < 0:
				return fmt.Errorf("organization %q: item %q has negative price", o.ID, item.ID)
			}
		}
	}
	return nil
}

func isEmpty(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}

// Organizations is the docstore codec for the organizations document.
type Organizations struct{}

// Encode implements docstore.Codec.
func (Organizations) Encode(orgs []model.Organization) ([]byte, error) { return Encode(orgs) }

// Decode implements docstore.Codec.
func (Organizations) Decode(data []byte) ([]model.Organization, error) { return Decode(data) }

// Settings is the docstore codec for the settings document.
type Settings struct{}

// Encode implements docstore.Codec.
func (Settings) Encode(s model.Settings) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return data, nil
}

// Decode implements docstore.Codec.
func (Settings) Decode(data []byte) (model.Settings, error) {
	var s model.Settings
	if isEmpty(data) {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Settings{}, fmt.Errorf("%w: %v", docstore.ErrCorruptDocument, err)
	}
	return s, nil
}
