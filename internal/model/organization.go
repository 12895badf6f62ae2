package model

import "time"

// DefaultCurrency is used when an organization has no currency set.
const DefaultCurrency = "USD"

// Organization owns an inventory of priced items.
type Organization struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
	Inventory []InventoryItem `json:"inventory"`
}

// FindItem returns the index of the item with the given ID, or -1.
func (o *Organization) FindItem(id string) int {
	for i := range o.Inventory {
		if o.Inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// StockValue returns the sum of quantity times price over the inventory.
func (o *Organization) StockValue() float64 {
	var total float64
	for _, item := range o.Inventory {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

// FindOrganization returns the index of the organization with the given ID, or -1.
func FindOrganization(orgs []Organization, id string) int {
	for i := range orgs {
		if orgs[i].ID == id {
			return i
		}
	}
	return -1
}
