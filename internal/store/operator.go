package store

import (
	"context"
	"fmt"

	"github.com/erazemk/zaloga/internal/model"
)

// Operator returns the local operator account, or nil if none has been set up.
func (r *Settings) Operator(ctx context.Context) (*model.Operator, error) {
	s, err := r.docs.View(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting operator: %w", err)
	}
	return s.Operator, nil
}

// SetOperator creates or replaces the operator account.
func (r *Settings) SetOperator(ctx context.Context, username, passwordHash string) error {
	username, err := validateName(username)
	if err != nil {
		return err
	}
	if passwordHash == "" {
		return &ValidationError{Field: "password", Reason: "must not be empty"}
	}

	_, err = r.docs.Transact(ctx, func(s model.Settings) (model.Settings, error) {
		s.Operator = &model.Operator{
			Username:     username,
			PasswordHash: passwordHash,
			CreatedAt:    r.now(),
		}
		return s, nil
	})
	if err != nil {
		return fmt.Errorf("setting operator: %w", err)
	}
	return nil
}

// SetPassword replaces the operator's password hash.
func (r *Settings) SetPassword(ctx context.Context, passwordHash string) error {
	if passwordHash == "" {
		return &ValidationError{Field: "password", Reason: "must not be empty"}
	}

	_, err := r.docs.Transact(ctx, func(s model.Settings) (model.Settings, error) {
		if s.Operator == nil {
			return s, fmt.Errorf("operator: %w", ErrNotFound)
		}
		s.Operator.PasswordHash = passwordHash
		return s, nil
	})
	if err != nil {
		return fmt.Errorf("updating operator password: %w", err)
	}
	return nil
}
