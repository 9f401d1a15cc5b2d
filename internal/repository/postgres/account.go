package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/paperdesk/internal/model"
)

var (
	_ model.AccountStore      = (*AccountRepository)(nil)
	_ model.RefreshTokenStore = (*AccountRepository)(nil)
)

// AccountRepository stores verified accounts. The refresh token hash lives on
// the account row, so it also serves as the RefreshTokenStore.
type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

const accountColumns = `id, email, full_name, password_hash, role, refresh_token_hash, verified, created_at, updated_at`

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &a.Role,
		&a.RefreshTokenHash, &a.Verified, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (id, email, full_name, password_hash, role, verified, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.ID, account.Email, account.FullName, account.PasswordHash, account.Role,
		account.Verified, account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, model.ErrAlreadyExists
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Set(ctx context.Context, accountID uuid.UUID, tokenHash []byte) error {
	const query = `UPDATE accounts SET refresh_token_hash = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, accountID, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Replace is a single conditional UPDATE, so two concurrent rotations of the
// same token cannot both succeed.
func (r *AccountRepository) Replace(ctx context.Context, accountID uuid.UUID, oldHash, newHash []byte) error {
	const query = `
		UPDATE accounts SET refresh_token_hash = $3, updated_at = NOW()
		WHERE id = $1 AND refresh_token_hash = $2`

	cmd, err := r.db.Exec(ctx, query, accountID, oldHash, newHash)
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrTokenMismatch
	}
	return nil
}

func (r *AccountRepository) Clear(ctx context.Context, accountID uuid.UUID) error {
	const query = `UPDATE accounts SET refresh_token_hash = NULL, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, accountID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}
