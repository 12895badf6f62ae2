package store

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/erazemk/zaloga/internal/model"
)

// RevokeToken adds a token's JTI to the revocation list. Expired entries
// are pruned in the same transaction.
func (r *Settings) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	now := r.now()
	_, err := r.docs.Transact(ctx, func(s model.Settings) (model.Settings, error) {
		if s.RevokedTokens == nil {
			s.RevokedTokens = make(map[string]time.Time)
		}
		s.RevokedTokens[jti] = expiresAt.UTC()
		maps.DeleteFunc(s.RevokedTokens, func(_ string, exp time.Time) bool {
			return exp.Before(now)
		})
		return s, nil
	})
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IsTokenRevoked checks if a token's JTI has been revoked.
func (r *Settings) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	s, err := r.docs.View(ctx)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	_, revoked := s.RevokedTokens[jti]
	return revoked, nil
}
