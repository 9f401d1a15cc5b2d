package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
)

// TokenService issues, verifies and rotates token pairs. Each account has a
// single active refresh token: issuing a new pair supersedes the previous one,
// so signing in on a second device signs the first one out on its next refresh.
type TokenService struct {
	manager  model.TokenManager
	accounts model.AccountStore
	store    model.RefreshTokenStore
	logger   *logger.Logger
}

func NewTokenService(
	manager model.TokenManager,
	accounts model.AccountStore,
	store model.RefreshTokenStore,
	logger *logger.Logger,
) *TokenService {
	return &TokenService{manager: manager, accounts: accounts, store: store, logger: logger}
}

// IssuePair mints a pair for the account and makes its refresh token the only
// valid one.
func (s *TokenService) IssuePair(ctx context.Context, accountID uuid.UUID) (model.TokenPair, error) {
	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return model.TokenPair{}, err
	}

	pair, err := s.mint(account)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.Set(ctx, account.ID, hashRefresh(pair.RefreshToken)); err != nil {
		s.logger.Error("Token service: failed to persist refresh token",
			"account_id", account.ID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return pair, nil
}

// Authenticate resolves an access token to the identity of a live account.
func (s *TokenService) Authenticate(ctx context.Context, accessToken string) (model.Identity, error) {
	if accessToken == "" {
		return model.Identity{}, apierrors.NewErrMissingAuthorizationToken()
	}

	claims, err := s.manager.ParseAccessToken(accessToken)
	if err != nil {
		s.logger.Debug("Token service: rejected access token",
			"error", err.Error())
		return model.Identity{}, apierrors.NewErrInvalidAuthorizationToken()
	}

	account, err := s.getAccount(ctx, claims.AccountID)
	if err != nil {
		return model.Identity{}, err
	}

	return account.Identity(), nil
}

// Refresh exchanges the current refresh token for a new pair. A superseded
// token is rejected, and of two concurrent calls with the same token only one
// wins the conditional replace.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	if refreshToken == "" {
		return model.TokenPair{}, apierrors.NewErrMissingRefreshToken()
	}

	accountID, err := s.manager.ParseRefreshToken(refreshToken)
	if err != nil {
		s.logger.Debug("Token service: rejected refresh token",
			"error", err.Error())
		return model.TokenPair{}, apierrors.NewErrInvalidRefreshToken()
	}

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return model.TokenPair{}, err
	}

	presented := hashRefresh(refreshToken)
	if !equalBytes(account.RefreshTokenHash, presented) {
		s.logger.Info("Token service: superseded refresh token presented",
			"account_id", account.ID)
		return model.TokenPair{}, apierrors.NewErrInvalidRefreshToken()
	}

	pair, err := s.mint(account)
	if err != nil {
		return model.TokenPair{}, err
	}

	err = s.store.Replace(ctx, account.ID, presented, hashRefresh(pair.RefreshToken))
	if errors.Is(err, model.ErrTokenMismatch) {
		s.logger.Info("Token service: lost refresh rotation race",
			"account_id", account.ID)
		return model.TokenPair{}, apierrors.NewErrInvalidRefreshToken()
	}
	if err != nil {
		s.logger.Error("Token service: failed to rotate refresh token",
			"account_id", account.ID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("rotate refresh: %w", err)
	}

	return pair, nil
}

// Logout clears the stored refresh token. Calling it twice is harmless.
func (s *TokenService) Logout(ctx context.Context, accountID uuid.UUID) error {
	if err := s.store.Clear(ctx, accountID); err != nil {
		s.logger.Error("Token service: failed to clear refresh token",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("clear refresh: %w", err)
	}
	return nil
}

func (s *TokenService) getAccount(ctx context.Context, id uuid.UUID) (model.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, apierrors.NewErrUserNotFound(id.String())
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

func (s *TokenService) mint(account model.Account) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(model.AccessClaims{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
	})
	if err != nil {
		s.logger.Error("Token service: failed to sign access token",
			"account_id", account.ID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(account.ID)
	if err != nil {
		s.logger.Error("Token service: failed to sign refresh token",
			"account_id", account.ID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func equalBytes(a, b []byte) bool {
	return len(a) > 0 && subtle.ConstantTimeCompare(a, b) == 1
}
