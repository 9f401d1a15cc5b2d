package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/credential"
	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
)

// Auth signs verified accounts in.
type Auth struct {
	accounts     model.AccountStore
	policy       *Policy
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	accounts model.AccountStore,
	policy *Policy,
	tokenService *TokenService,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accounts:     accounts,
		policy:       policy,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Login checks credentials and issues a new token pair, superseding any
// previous session of the account.
func (a *Auth) Login(ctx context.Context, email, password, role string) (Session, error) {
	email = model.NormalizeEmail(email)
	if email == "" || password == "" || strings.TrimSpace(role) == "" {
		return Session{}, apierrors.NewBadRequest("All fields are required")
	}
	requested, ok := model.ParseRole(role)
	if !ok {
		return Session{}, apierrors.NewBadRequest("Invalid role", fmt.Sprintf("role %q is not one of admin, author", role))
	}

	a.logger.Debug("Auth service: starting login",
		"email", email)

	account, err := a.accounts.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		if a.policy.RoleFor(email) == model.RoleAdmin {
			return Session{}, apierrors.NewNotFound("Admin not registered yet. Please register first.")
		}
		return Session{}, apierrors.NewNotFound("Author not registered yet. Please register first.")
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	if err := a.policy.CheckLoginRole(account, requested); err != nil {
		return Session{}, err
	}

	ok, err = credential.ComparePassword(account.PasswordHash, password)
	if err != nil {
		a.logger.Error("Auth service: failed to compare password",
			"email", email,
			"error", err.Error())
		return Session{}, err
	}
	if !ok {
		a.logger.Info("Auth service: invalid credentials",
			"email", email)
		return Session{}, apierrors.NewErrInvalidCredentials()
	}

	pair, err := a.tokenService.IssuePair(ctx, account.ID)
	if err != nil {
		return Session{}, err
	}

	a.logger.Info("Auth service: login completed successfully",
		"email", email,
		"account_id", account.ID)

	return Session{Account: account.Identity(), TokenPair: pair}, nil
}

// CurrentAccount returns the sanitized account for id.
func (a *Auth) CurrentAccount(ctx context.Context, id uuid.UUID) (model.Identity, error) {
	account, err := a.accounts.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Identity{}, apierrors.NewErrUserNotFound(id.String())
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account.Identity(), nil
}
