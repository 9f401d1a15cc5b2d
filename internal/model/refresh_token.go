package model

import (
	"context"

	"github.com/google/uuid"
)

// RefreshTokenStore keeps the single active refresh token of each account.
// Only a hash of the token is persisted.
type RefreshTokenStore interface {
	// Set overwrites the stored hash unconditionally.
	Set(ctx context.Context, accountID uuid.UUID, tokenHash []byte) error
	// Replace swaps oldHash for newHash atomically. It returns ErrTokenMismatch
	// when the stored hash no longer equals oldHash.
	Replace(ctx context.Context, accountID uuid.UUID, oldHash, newHash []byte) error
	// Clear removes the stored hash. Clearing an empty slot is not an error.
	Clear(ctx context.Context, accountID uuid.UUID) error
}

// TokenPair is an access token plus the refresh token that can renew it.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
