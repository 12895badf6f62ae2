package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/erazemk/zaloga/internal/docstore"
	"github.com/erazemk/zaloga/internal/model"
)

// Organizations is the repository for the organization collection.
type Organizations struct {
	docs *OrganizationDocs
	deps
}

// NewOrganizations returns an organization repository over docs.
func NewOrganizations(docs *OrganizationDocs, opts ...Option) *Organizations {
	return &Organizations{docs: docs, deps: newDeps(opts)}
}

// List returns all organizations in insertion order.
func (r *Organizations) List(ctx context.Context) ([]model.Organization, error) {
	orgs, err := r.docs.View(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return orgs, nil
}

// Get returns an organization by ID.
func (r *Organizations) Get(ctx context.Context, id string) (model.Organization, error) {
	orgs, err := r.docs.View(ctx)
	if err != nil {
		return model.Organization{}, fmt.Errorf("getting organization: %w", err)
	}
	i := model.FindOrganization(orgs, id)
	if i < 0 {
		return model.Organization{}, orgNotFound(id)
	}
	return orgs[i], nil
}

// Create appends a new organization with an empty inventory.
func (r *Organizations) Create(ctx context.Context, name, currency string) (model.Organization, error) {
	name, err := validateName(name)
	if err != nil {
		return model.Organization{}, err
	}
	currency, err = normalizeCurrency(currency)
	if err != nil {
		return model.Organization{}, err
	}

	org := model.Organization{
		ID:        r.newID(),
		Name:      name,
		Currency:  currency,
		CreatedAt: r.now(),
		Inventory: []model.InventoryItem{},
	}
	_, err = r.docs.Transact(ctx, func(orgs []model.Organization) ([]model.Organization, error) {
		return append(orgs, org), nil
	})
	if err != nil {
		return model.Organization{}, fmt.Errorf("creating organization: %w", err)
	}
	return org, nil
}

// Rename replaces an organization's name and currency. The inventory and
// creation time are left untouched.
func (r *Organizations) Rename(ctx context.Context, id, name, currency string) (model.Organization, error) {
	name, err := validateName(name)
	if err != nil {
		return model.Organization{}, err
	}
	currency, err = normalizeCurrency(currency)
	if err != nil {
		return model.Organization{}, err
	}

	var renamed model.Organization
	_, err = r.docs.Transact(ctx, func(orgs []model.Organization) ([]model.Organization, error) {
		i := model.FindOrganization(orgs, id)
		if i < 0 {
			return nil, orgNotFound(id)
		}
		orgs[i].Name = name
		orgs[i].Currency = currency
		renamed = orgs[i]
		return orgs, nil
	})
	if err != nil {
		return model.Organization{}, fmt.Errorf("renaming organization: %w", err)
	}
	return renamed, nil
}

// Delete removes an organization together with its inventory. Deleting an
// unknown ID succeeds without touching the document.
func (r *Organizations) Delete(ctx context.Context, id string) error {
	_, err := r.docs.Transact(ctx, func(orgs []model.Organization) ([]model.Organization, error) {
		i := model.FindOrganization(orgs, id)
		if i < 0 {
			return nil, docstore.ErrNoChange
		}
		return slices.Delete(orgs, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}
	return nil
}
