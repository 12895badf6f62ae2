package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/erazemk/zaloga/internal/docstore"
	"github.com/erazemk/zaloga/internal/model"
)

// Settings is the repository for the settings document.
type Settings struct {
	docs *SettingsDocs
	deps
}

// NewSettings returns a settings repository over docs.
func NewSettings(docs *SettingsDocs, opts ...Option) *Settings {
	return &Settings{docs: docs, deps: newDeps(opts)}
}

// JWTSecret returns the token signing secret, generating and storing one on
// first use. Generation and storage happen in one transaction, so concurrent
// first calls agree on the same secret.
func (r *Settings) JWTSecret(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	s, err := r.docs.Transact(ctx, func(s model.Settings) (model.Settings, error) {
		if s.JWTSecret != "" {
			return s, docstore.ErrNoChange
		}
		s.JWTSecret = candidate
		return s, nil
	})
	if err != nil {
		return "", fmt.Errorf("getting jwt secret: %w", err)
	}
	return s.JWTSecret, nil
}
