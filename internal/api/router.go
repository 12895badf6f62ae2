package api

import (
	"net/http"

	"github.com/erazemk/zaloga/internal/store"
)

// Deps are the collaborators the API needs.
type Deps struct {
	Organizations *store.Organizations
	Inventory     *store.Inventory
	Settings      *store.Settings
	JWTSecret     string

	// Metrics is served at /metrics without authentication when non-nil.
	Metrics http.Handler
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Settings: deps.Settings, JWTSecret: deps.JWTSecret}
	orgsHandler := &OrganizationsHandler{Organizations: deps.Organizations}
	inventoryHandler := &InventoryHandler{Inventory: deps.Inventory}

	authMW := AuthMiddleware(deps.JWTSecret, deps.Settings)
	authed := func(h http.HandlerFunc) http.Handler { return authMW(h) }

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.Handle("PUT /api/auth/password", authed(authHandler.ChangePassword))
	mux.Handle("POST /api/auth/logout", authed(authHandler.Logout))

	mux.Handle("GET /api/organizations", authed(orgsHandler.List))
	mux.Handle("POST /api/organizations", authed(orgsHandler.Create))
	mux.Handle("GET /api/organizations/{id}", authed(orgsHandler.Get))
	mux.Handle("PUT /api/organizations/{id}", authed(orgsHandler.Update))
	mux.Handle("DELETE /api/organizations/{id}", authed(orgsHandler.Delete))

	mux.Handle("GET /api/organizations/{id}/inventory", authed(inventoryHandler.List))
	mux.Handle("POST /api/organizations/{id}/inventory", authed(inventoryHandler.Create))
	mux.Handle("GET /api/organizations/{id}/inventory/value", authed(inventoryHandler.Value))
	mux.Handle("PUT /api/organizations/{id}/inventory/{itemID}", authed(inventoryHandler.Update))
	mux.Handle("DELETE /api/organizations/{id}/inventory/{itemID}", authed(inventoryHandler.Delete))
	mux.Handle("POST /api/organizations/{id}/inventory/{itemID}/adjust", authed(inventoryHandler.Adjust))

	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	return mux
}
