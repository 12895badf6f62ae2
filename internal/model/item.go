package model

import (
	"math"
	"time"
)

// InventoryItem is a priced, quantified item held by an organization.
type InventoryItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	Description *string   `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ClampQuantity applies delta to q, flooring the result at zero and capping
// it at math.MaxInt instead of wrapping around.
func ClampQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	n := q + delta
	if n < 0 {
		return 0
	}
	return n
}
