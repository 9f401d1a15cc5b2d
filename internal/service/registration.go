package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/credential"
	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
)

// RegisterParams is a registration request as received from the client.
type RegisterParams struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// RegistrationResult identifies the pending registration awaiting a code.
type RegistrationResult struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// Session is a signed-in account together with its tokens.
type Session struct {
	Account model.Identity `json:"user"`
	model.TokenPair
}

// Registration runs the OTP-confirmed sign-up flow.
type Registration struct {
	accounts     model.AccountStore
	pending      model.PendingAccountStore
	policy       *Policy
	tokenService *TokenService
	notifier     model.Notifier
	logger       *logger.Logger

	now    func() time.Time
	newOTP func() (string, error)
}

func NewRegistration(
	accounts model.AccountStore,
	pending model.PendingAccountStore,
	policy *Policy,
	tokenService *TokenService,
	notifier model.Notifier,
	logger *logger.Logger,
) *Registration {
	return &Registration{
		accounts:     accounts,
		pending:      pending,
		policy:       policy,
		tokenService: tokenService,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
		newOTP:       credential.NewOTP,
	}
}

// BeginRegistration stores a pending account and mails it a one-time code.
// Any earlier pending registration for the email is discarded.
func (r *Registration) BeginRegistration(ctx context.Context, params RegisterParams) (RegistrationResult, error) {
	if err := validateRegistration(params); err != nil {
		return RegistrationResult{}, err
	}

	email := model.NormalizeEmail(params.Email)
	requested, _ := model.ParseRole(params.Role)

	r.logger.Debug("Registration service: starting registration",
		"email", email,
		"role", requested)

	role, err := r.policy.CheckRegistrationRole(email, requested)
	if err != nil {
		r.logger.Info("Registration service: role rejected",
			"email", email,
			"role", requested)
		return RegistrationResult{}, err
	}

	_, err = r.accounts.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if role == model.RoleAdmin {
			return RegistrationResult{}, apierrors.NewErrAdminExists()
		}
		return RegistrationResult{}, apierrors.NewConflict("Author with this email already exists")
	case !errors.Is(err, model.ErrNotFound):
		r.logger.Error("Registration service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return RegistrationResult{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	hash, err := credential.HashPassword(params.Password)
	if err != nil {
		return RegistrationResult{}, err
	}

	code, err := r.newOTP()
	if err != nil {
		return RegistrationResult{}, err
	}

	now := r.now()
	pending := model.PendingAccount{
		Email:        email,
		FullName:     strings.TrimSpace(params.FullName),
		Role:         role,
		PasswordHash: hash,
		OTP:          code,
		OTPExpiresAt: now.Add(model.OTPValidity),
		CreatedAt:    now,
	}

	if err := r.pending.Replace(ctx, pending); err != nil {
		r.logger.Error("Registration service: failed to store pending account",
			"email", email,
			"error", err.Error())
		return RegistrationResult{}, fmt.Errorf("failed to store pending account: %w", err)
	}

	r.notifier.Notify(ctx, otpMessage(pending))

	r.logger.Info("Registration service: verification code sent",
		"email", email,
		"role", role)

	return RegistrationResult{Email: email, Role: role}, nil
}

// Verify promotes a pending account into a verified one and signs it in.
func (r *Registration) Verify(ctx context.Context, email, code, role string) (Session, error) {
	pending, err := r.findPending(ctx, email, role, code == "")
	if err != nil {
		return Session{}, err
	}

	if pending.Expired(r.now()) || subtle.ConstantTimeCompare([]byte(pending.OTP), []byte(strings.TrimSpace(code))) != 1 {
		r.logger.Info("Registration service: invalid verification code",
			"email", pending.Email)
		return Session{}, apierrors.NewErrInvalidOTP()
	}

	now := r.now()
	account, err := r.accounts.Create(ctx, model.Account{
		ID:           uuid.New(),
		Email:        pending.Email,
		FullName:     pending.FullName,
		PasswordHash: pending.PasswordHash,
		Role:         r.policy.RoleFor(pending.Email),
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return Session{}, apierrors.NewErrEmailIsTaken(pending.Email)
	}
	if err != nil {
		r.logger.Error("Registration service: failed to create account",
			"email", pending.Email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to create account: %w", err)
	}

	if err := r.pending.Delete(ctx, pending.Email); err != nil {
		r.logger.Warn("Registration service: failed to delete pending account",
			"email", pending.Email,
			"error", err.Error())
	}

	pair, err := r.tokenService.IssuePair(ctx, account.ID)
	if err != nil {
		return Session{}, err
	}

	r.logger.Info("Registration service: account verified",
		"email", account.Email,
		"account_id", account.ID,
		"role", account.Role)

	return Session{Account: account.Identity(), TokenPair: pair}, nil
}

// Resend issues a fresh code for a pending registration. The previous code
// stops working immediately.
func (r *Registration) Resend(ctx context.Context, email, role string) (RegistrationResult, error) {
	pending, err := r.findPending(ctx, email, role, false)
	if err != nil {
		return RegistrationResult{}, err
	}

	code, err := r.newOTP()
	if err != nil {
		return RegistrationResult{}, err
	}
	pending.OTP = code
	pending.OTPExpiresAt = r.now().Add(model.OTPValidity)

	if err := r.pending.UpdateCode(ctx, pending.Email, pending.OTP, pending.OTPExpiresAt); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return RegistrationResult{}, apierrors.NewErrPendingRegistrationNotFound(pending.Email)
		}
		r.logger.Error("Registration service: failed to update verification code",
			"email", pending.Email,
			"error", err.Error())
		return RegistrationResult{}, fmt.Errorf("failed to update verification code: %w", err)
	}

	r.notifier.Notify(ctx, otpMessage(pending))

	r.logger.Info("Registration service: verification code resent",
		"email", pending.Email)

	return RegistrationResult{Email: pending.Email, Role: pending.Role}, nil
}

func (r *Registration) findPending(ctx context.Context, email, role string, missingCode bool) (model.PendingAccount, error) {
	email = model.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(role) == "" || missingCode {
		return model.PendingAccount{}, apierrors.NewBadRequest("All fields are required")
	}
	requested, ok := model.ParseRole(role)
	if !ok {
		return model.PendingAccount{}, apierrors.NewBadRequest("Invalid role", fmt.Sprintf("role %q is not one of admin, author", role))
	}
	if _, err := r.policy.CheckRegistrationRole(email, requested); err != nil {
		return model.PendingAccount{}, err
	}

	pending, err := r.pending.GetByEmailAndRole(ctx, email, requested)
	if errors.Is(err, model.ErrNotFound) {
		return model.PendingAccount{}, apierrors.NewErrPendingRegistrationNotFound(email)
	}
	if err != nil {
		r.logger.Error("Registration service: failed to get pending account",
			"email", email,
			"error", err.Error())
		return model.PendingAccount{}, fmt.Errorf("failed to get pending account: %w", err)
	}
	return pending, nil
}

func validateRegistration(params RegisterParams) error {
	fields := []struct{ name, value string }{
		{"fullname", params.FullName},
		{"email", params.Email},
		{"password", params.Password},
		{"confirmPassword", params.ConfirmPassword},
		{"role", params.Role},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name+" is required")
		}
	}
	if len(missing) > 0 {
		return apierrors.NewBadRequest("All fields are required", missing...)
	}

	if _, ok := model.ParseEmail(params.Email); !ok {
		return apierrors.NewBadRequest("Invalid email address")
	}
	if len(params.Password) < credential.MinPasswordLength {
		return apierrors.NewBadRequest(fmt.Sprintf("Password must be at least %d characters", credential.MinPasswordLength))
	}
	if len(params.Password) > credential.MaxPasswordBytes {
		return apierrors.NewBadRequest(fmt.Sprintf("Password must be at most %d bytes", credential.MaxPasswordBytes))
	}
	if params.Password != params.ConfirmPassword {
		return apierrors.NewBadRequest("Passwords do not match")
	}
	if _, ok := model.ParseRole(params.Role); !ok {
		return apierrors.NewBadRequest("Invalid role", fmt.Sprintf("role %q is not one of admin, author", params.Role))
	}
	return nil
}
