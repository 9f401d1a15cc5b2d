package model

import (
	"context"
	"time"
)

// OTPValidity is how long a one-time code stays valid after issue.
const OTPValidity = time.Minute * 10

// PendingAccountStore persists registrations awaiting OTP confirmation.
// At most one pending record exists per email.
type PendingAccountStore interface {
	// Replace deletes any pending record for the email and stores the new one.
	Replace(ctx context.Context, pending PendingAccount) error
	GetByEmailAndRole(ctx context.Context, email string, role Role) (PendingAccount, error)
	UpdateCode(ctx context.Context, email string, code string, expiresAt time.Time) error
	Delete(ctx context.Context, email string) error
}

// PendingAccount describes a registration that has not been verified yet.
type PendingAccount struct {
	Email        string
	FullName     string
	Role         Role
	PasswordHash string
	OTP          string
	OTPExpiresAt time.Time
	CreatedAt    time.Time
}

// Expired reports whether the code is no longer valid at now.
// A code is expired at exactly its expiry instant.
func (p PendingAccount) Expired(now time.Time) bool {
	return !now.Before(p.OTPExpiresAt)
}
