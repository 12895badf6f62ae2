package store

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/erazemk/zaloga/internal/docstore"
	"github.com/erazemk/zaloga/internal/model"
)

// ItemInput holds raw, user-entered item fields.
type ItemInput struct {
	Name        string
	Quantity    string
	Price       string
	Description string
}

type itemFields struct {
	name        string
	quantity    int
	price       float64
	description *string
}

func (in ItemInput) parse() (itemFields, error) {
	var f itemFields
	var err error
	if f.name, err = validateName(in.Name); err != nil {
		return f, err
	}
	if f.quantity, err = parseQuantity(in.Quantity); err != nil {
		return f, err
	}
	if f.price, err = parsePrice(in.Price); err != nil {
		return f, err
	}
	if in.Description != "" {
		d := in.Description
		f.description = &d
	}
	return f, nil
}

// Inventory is the repository for the items nested in each organization.
type Inventory struct {
	docs *OrganizationDocs
	deps
}

// NewInventory returns an inventory repository over docs.
func NewInventory(docs *OrganizationDocs, opts ...Option) *Inventory {
	return &Inventory{docs: docs, deps: newDeps(opts)}
}

// List returns the items of an organization in insertion order.
func (r *Inventory) List(ctx context.Context, orgID string) ([]model.InventoryItem, error) {
	orgs, err := r.docs.View(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	i := model.FindOrganization(orgs, orgID)
	if i < 0 {
		return nil, fmt.Errorf("listing inventory: %w", orgNotFound(orgID))
	}
	return orgs[i].Inventory, nil
}

// StockValue is the total value of an organization's inventory.
type StockValue struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Value returns the total stock value of an organization together with the
// currency it is expressed in, both read from the same document version.
func (r *Inventory) Value(ctx context.Context, orgID string) (StockValue, error) {
	orgs, err := r.docs.View(ctx)
	if err != nil {
		return StockValue{}, fmt.Errorf("computing inventory value: %w", err)
	}
	i := model.FindOrganization(orgs, orgID)
	if i < 0 {
		return StockValue{}, fmt.Errorf("computing inventory value: %w", orgNotFound(orgID))
	}
	v := orgs[i].StockValue()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return StockValue{}, fmt.Errorf("computing inventory value of %q: %w", orgID, ErrValueOutOfRange)
	}
	return StockValue{Value: v, Currency: orgs[i].Currency}, nil
}

// Create appends a new item to an organization's inventory.
func (r *Inventory) Create(ctx context.Context, orgID string, in ItemInput) (model.InventoryItem, error) {
	f, err := in.parse()
	if err != nil {
		return model.InventoryItem{}, err
	}

	item := model.InventoryItem{
		ID:          r.newID(),
		Name:        f.name,
		Quantity:    f.quantity,
		Price:       f.price,
		Description: f.description,
		UpdatedAt:   r.now(),
	}
	_, err = r.docs.Transact(ctx, func(orgs []model.Organization) ([]model.Organization, error) {
		i := model.FindOrganization(orgs, orgID)
		if i < 0 {
			return nil, orgNotFound(orgID)
		}
		orgs[i].Inventory = append(orgs[i].Inventory, item)
		return orgs, nil
	})
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("creating item: %w", err)
	}
	return item, nil
}

// Update replaces all mutable fields of an item.
func (r *Inventory) Update(ctx context.Context, orgID, itemID string, in ItemInput) (model.InventoryItem, error) {
	f, err := in.parse()
	if err != nil {
		return model.InventoryItem{}, err
	}

	var updated model.InventoryItem
	err = r.mutateItem(ctx, orgID, itemID, func(item *model.InventoryItem) {
		item.Name = f.name
		item.Quantity = f.quantity
		item.Price = f.price
		item.Description = f.description
		item.UpdatedAt = r.now()
		updated = *item
	})
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("updating item: %w", err)
	}
	return updated, nil
}

// AdjustQuantity adds delta to an item's quantity, flooring the result at
// zero. The read and the write happen in one transaction, so concurrent
// adjustments of the same item are never lost.
func (r *Inventory) AdjustQuantity(ctx context.Context, orgID, itemID string, delta int) (model.InventoryItem, error) {
	var adjusted model.InventoryItem
	err := r.mutateItem(ctx, orgID, itemID, func(item *model.InventoryItem) {
		item.Quantity = model.ClampQuantity(item.Quantity, delta)
		item.UpdatedAt = r.now()
		adjusted = *item
	})
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("adjusting quantity: %w", err)
	}
	return adjusted, nil
}

// Delete removes an item. Deleting an unknown item, or an item of an
// unknown organization, succeeds without touching the document.
func (r *Inventory) Delete(ctx context.Context, orgID, itemID string) error {
	_, err := r.docs.Transact(ctx, func(orgs []model.Organization) ([]model.Organization, error) {
		i := model.FindOrganization(orgs, orgID)
		if i < 0 {
			return nil, docstore.ErrNoChange
		}
		j := orgs[i].FindItem(itemID)
		if j < 0 {
			return nil, docstore.ErrNoChange
		}
		orgs[i].Inventory = slices.Delete(orgs[i].Inventory, j, j+1)
		return orgs, nil
	})
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// mutateItem applies fn to one item inside a single transaction.
func (r *Inventory) mutateItem(ctx context.Context, orgID, itemID string, fn func(*model.InventoryItem)) error {
	_, err := r.docs.Transact(ctx, func(orgs []model.Organization) ([]model.Organization, error) {
		i := model.FindOrganization(orgs, orgID)
		if i < 0 {
			return nil, orgNotFound(orgID)
		}
		j := orgs[i].FindItem(itemID)
		if j < 0 {
			return nil, itemNotFound(itemID)
		}
		fn(&orgs[i].Inventory[j])
		return orgs, nil
	})
	return err
}
