package api

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/zaloga/internal/store"
)

// OrganizationsHandler handles organization CRUD endpoints.
type OrganizationsHandler struct {
	Organizations *store.Organizations
}

type organizationRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// List handles GET /api/organizations.
func (h *OrganizationsHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.Organizations.List(r.Context())
	if err != nil {
		storeError(w, "list organizations", err)
		return
	}
	jsonResponse(w, http.StatusOK, orgs)
}

// Create handles POST /api/organizations.
func (h *OrganizationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := h.Organizations.Create(r.Context(), req.Name, req.Currency)
	if err != nil {
		storeError(w, "create organization", err)
		return
	}

	slog.Info("organization created", "user", username(r), "organization", org.Name, "id", org.ID)
	jsonResponse(w, http.StatusCreated, org)
}

// Get handles GET /api/organizations/{id}.
func (h *OrganizationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.Organizations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, "get organization", err)
		return
	}
	jsonResponse(w, http.StatusOK, org)
}

// Update handles PUT /api/organizations/{id}.
func (h *OrganizationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := h.Organizations.Rename(r.Context(), r.PathValue("id"), req.Name, req.Currency)
	if err != nil {
		storeError(w, "update organization", err)
		return
	}

	slog.Info("organization updated", "user", username(r), "organization", org.Name, "id", org.ID)
	jsonResponse(w, http.StatusOK, org)
}

// Delete handles DELETE /api/organizations/{id}. Deleting an unknown
// organization succeeds.
func (h *OrganizationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Organizations.Delete(r.Context(), id); err != nil {
		storeError(w, "delete organization", err)
		return
	}

	slog.Info("organization deleted", "user", username(r), "id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "organization deleted"})
}
