package model

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the privilege level of an account.
type Role string

const (
	// RoleAuthor is any registered, non-administrator account.
	RoleAuthor Role = "author"
	// RoleAdmin is the single configured administrator.
	RoleAdmin Role = "admin"
)

// ParseRole returns the role named by s.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.TrimSpace(s)) {
	case RoleAuthor:
		return RoleAuthor, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseEmail normalizes email and reports whether it is a single bare
// address. Display names, lists and line breaks are rejected.
func ParseEmail(email string) (string, bool) {
	normalized := NormalizeEmail(email)
	if normalized == "" || strings.ContainsAny(normalized, "\r\n") {
		return "", false
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", false
	}
	return normalized, true
}

// AccountStore defines persistence operations for verified accounts.
type AccountStore interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
}

// Account is a registered and verified principal.
type Account struct {
	ID               uuid.UUID
	Email            string
	FullName         string
	PasswordHash     string
	Role             Role
	RefreshTokenHash []byte
	Verified         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Identity is the sanitized view of an account handed to callers.
// It never carries the password hash or refresh token.
type Identity struct {
	ID        uuid.UUID `json:"_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullname"`
	Role      Role      `json:"role"`
	Verified  bool      `json:"isVerified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity returns the sanitized view of the account.
func (a Account) Identity() Identity {
	return Identity{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		Role:      a.Role,
		Verified:  a.Verified,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// IsAdmin reports whether the identity holds the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
