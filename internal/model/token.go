package model

import "github.com/google/uuid"

// AccessClaims are the identity facts carried by an access token.
type AccessClaims struct {
	AccountID uuid.UUID
	Email     string
	Role      Role
}

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(claims AccessClaims) (string, error)
	GenerateRefreshToken(accountID uuid.UUID) (string, error)
	ParseAccessToken(token string) (AccessClaims, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}
