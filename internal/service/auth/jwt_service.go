package auth

import (
	"context"
	"time"
)

// JWTService defines operations for issuing and verifying bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed, expiring token whose subject is the
	// account email.
	GenerateToken(ctx context.Context, email string) (string, error)

	// ValidateToken verifies signature, algorithm, issuer and expiry and
	// returns the claims. Any failure yields an error wrapping ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims are the verified contents of a token.
type Claims struct {
	Subject   string    `json:"sub,omitempty"` // Account email
	Issuer    string    `json:"iss,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
