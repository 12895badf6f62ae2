package model

import (
	"fmt"
	"time"
)

// Settings is the local configuration document: the operator account, the
// token signing secret and the token revocation list.
type Settings struct {
	Operator      *Operator            `json:"operator,omitempty"`
	JWTSecret     string               `json:"jwtSecret,omitempty"`
	RevokedTokens map[string]time.Time `json:"revokedTokens,omitempty"`
}

// Operator is the single local account allowed to use the API.
type Operator struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MinPasswordLength is the minimum accepted operator password length.
const MinPasswordLength = 8

// ValidatePassword checks that a password meets minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
