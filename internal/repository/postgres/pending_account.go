package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/paperdesk/internal/model"
)

var _ model.PendingAccountStore = (*PendingAccountRepository)(nil)

type PendingAccountRepository struct {
	db *Connection
}

func NewPendingAccountRepository(db *Connection) *PendingAccountRepository {
	return &PendingAccountRepository{
		db: db,
	}
}

// Replace upserts on email, which drops whatever registration was pending before.
func (r *PendingAccountRepository) Replace(ctx context.Context, pending model.PendingAccount) error {
	const query = `
		INSERT INTO pending_accounts (email, full_name, role, password_hash, otp, otp_expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			password_hash = EXCLUDED.password_hash,
			otp = EXCLUDED.otp,
			otp_expires_at = EXCLUDED.otp_expires_at,
			created_at = EXCLUDED.created_at`

	_, err := r.db.Exec(ctx, query,
		pending.Email, pending.FullName, pending.Role, pending.PasswordHash,
		pending.OTP, pending.OTPExpiresAt, pending.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace pending account: %w", err)
	}
	return nil
}

func (r *PendingAccountRepository) GetByEmailAndRole(ctx context.Context, email string, role model.Role) (model.PendingAccount, error) {
	const query = `
		SELECT email, full_name, role, password_hash, otp, otp_expires_at, created_at
		FROM pending_accounts WHERE email = $1 AND role = $2`

	var p model.PendingAccount
	err := r.db.QueryRow(ctx, query, email, role).Scan(
		&p.Email, &p.FullName, &p.Role, &p.PasswordHash, &p.OTP, &p.OTPExpiresAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PendingAccount{}, model.ErrNotFound
		}
		return model.PendingAccount{}, fmt.Errorf("failed to get pending account: %w", err)
	}
	return p, nil
}

func (r *PendingAccountRepository) UpdateCode(ctx context.Context, email string, code string, expiresAt time.Time) error {
	const query = `UPDATE pending_accounts SET otp = $2, otp_expires_at = $3 WHERE email = $1`

	cmd, err := r.db.Exec(ctx, query, email, code, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update verification code: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PendingAccountRepository) Delete(ctx context.Context, email string) error {
	const query = `DELETE FROM pending_accounts WHERE email = $1`

	if _, err := r.db.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("failed to delete pending account: %w", err)
	}
	return nil
}
