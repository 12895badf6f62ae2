package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/zaloga/internal/store"
)

// InventoryHandler handles the inventory endpoints of one organization.
type InventoryHandler struct {
	Inventory *store.Inventory
}

type itemRequest struct {
	Name        string       `json:"name"`
	Quantity    textOrNumber `json:"quantity"`
	Price       textOrNumber `json:"price"`
	Description string       `json:"description"`
}

func (req itemRequest) input() store.ItemInput {
	return store.ItemInput{
		Name:        req.Name,
		Quantity:    string(req.Quantity),
		Price:       string(req.Price),
		Description: req.Description,
	}
}

type adjustRequest struct {
	Delta *int `json:"delta"`
}

// List handles GET /api/organizations/{id}/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Inventory.List(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, "list inventory", err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Value handles GET /api/organizations/{id}/inventory/value.
func (h *InventoryHandler) Value(w http.ResponseWriter, r *http.Request) {
	value, err := h.Inventory.Value(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, "compute inventory value", err)
		return
	}
	jsonResponse(w, http.StatusOK, value)
}

// Create handles POST /api/organizations/{id}/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orgID := r.PathValue("id")
	item, err := h.Inventory.Create(r.Context(), orgID, req.input())
	if err != nil {
		storeError(w, "create item", err)
		return
	}

	slog.Info("item created", "user", username(r), "organization", orgID, "item", item.Name, "quantity", item.Quantity)
	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/organizations/{id}/inventory/{itemID}.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orgID := r.PathValue("id")
	item, err := h.Inventory.Update(r.Context(), orgID, r.PathValue("itemID"), req.input())
	if err != nil {
		storeError(w, "update item", err)
		return
	}

	slog.Info("item updated", "user", username(r), "organization", orgID, "item", item.Name)
	jsonResponse(w, http.StatusOK, item)
}

// Adjust handles POST /api/organizations/{id}/inventory/{itemID}/adjust.
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Delta == nil {
		jsonError(w, http.StatusBadRequest, "delta required")
		return
	}

	orgID := r.PathValue("id")
	item, err := h.Inventory.AdjustQuantity(r.Context(), orgID, r.PathValue("itemID"), *req.Delta)
	if err != nil {
		storeError(w, "adjust quantity", err)
		return
	}

	slog.Info("quantity adjusted", "user", username(r), "organization", orgID, "item", item.Name,
		"delta", *req.Delta, "quantity", item.Quantity)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/organizations/{id}/inventory/{itemID}. Deleting
// an unknown item succeeds.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, itemID := r.PathValue("id"), r.PathValue("itemID")
	if err := h.Inventory.Delete(r.Context(), orgID, itemID); err != nil {
		storeError(w, "delete item", err)
		return
	}

	slog.Info("item deleted", "user", username(r), "organization", orgID, "id", itemID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
