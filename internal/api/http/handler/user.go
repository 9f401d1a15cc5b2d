package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/paperdesk/internal/api/http/middleware"
	"github.com/dtroode/paperdesk/internal/api/http/response"
	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
	"github.com/dtroode/paperdesk/internal/service"
)

// RegistrationService defines the OTP-confirmed sign-up operations.
type RegistrationService interface {
	BeginRegistration(ctx context.Context, params service.RegisterParams) (service.RegistrationResult, error)
	Verify(ctx context.Context, email, code, role string) (service.Session, error)
	Resend(ctx context.Context, email, role string) (service.RegistrationResult, error)
}

// AuthService defines login and identity lookup operations.
type AuthService interface {
	Login(ctx context.Context, email, password, role string) (service.Session, error)
	CurrentAccount(ctx context.Context, id uuid.UUID) (model.Identity, error)
}

// SessionService defines token refresh and logout operations.
type SessionService interface {
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, accountID uuid.UUID) error
}

// User handles HTTP endpoints for accounts and sessions.
type User struct {
	registration   RegistrationService
	auth           AuthService
	sessions       SessionService
	contextManager model.ContextManager
	cookies        CookieOptions
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(
	registration RegistrationService,
	auth AuthService,
	sessions SessionService,
	contextManager model.ContextManager,
	cookies CookieOptions,
	logger *logger.Logger,
) *User {
	return &User{
		registration:   registration,
		auth:           auth,
		sessions:       sessions,
		contextManager: contextManager,
		cookies:        cookies,
		logger:         logger,
	}
}

type registerRequest struct {
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	Role  string `json:"role"`
}

type resendRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register starts a registration and mails a one-time code.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	h.logger.Debug("User handler: processing registration request",
		"email", req.Email,
		"role", req.Role)

	result, err := h.registration.BeginRegistration(r.Context(), service.RegisterParams{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		h.fail(w, "registration", err)
		return
	}

	response.JSON(w, http.StatusCreated, "OTP sent to your email. Please verify to complete registration.", result)
}

// VerifyOTP confirms a registration and signs the new account in.
func (h *User) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	session, err := h.registration.Verify(r.Context(), req.Email, req.OTP, req.Role)
	if err != nil {
		h.fail(w, "otp verification", err)
		return
	}

	h.logger.Info("User handler: registration verified",
		"account_id", session.Account.ID)

	h.cookies.setTokens(w, session.TokenPair)
	response.JSON(w, http.StatusCreated, "User registered successfully", session)
}

// ResendOTP issues a fresh code for a pending registration.
func (h *User) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	result, err := h.registration.Resend(r.Context(), req.Email, req.Role)
	if err != nil {
		h.fail(w, "otp resend", err)
		return
	}

	response.JSON(w, http.StatusOK, "OTP resent successfully", result)
}

// Login signs an account in with email and password.
func (h *User) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		h.fail(w, "login", err)
		return
	}

	h.cookies.setTokens(w, session.TokenPair)
	response.JSON(w, http.StatusOK, "User logged in successfully", session)
}

// RefreshToken exchanges the refresh token from the cookie or the body for
// a new pair.
func (h *User) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(middleware.RefreshTokenCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		var req refreshRequest
		if err := decodeJSON(w, r, &req); err != nil {
			response.Error(w, err)
			return
		}
		token = req.RefreshToken
	}

	pair, err := h.sessions.Refresh(r.Context(), token)
	if err != nil {
		h.fail(w, "token refresh", err)
		return
	}

	h.cookies.setTokens(w, pair)
	response.JSON(w, http.StatusOK, "Access token refreshed successfully", pair)
}

// Logout revokes the refresh token of the caller and clears the cookies.
func (h *User) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Logout(r.Context(), identity.ID); err != nil {
		h.fail(w, "logout", err)
		return
	}

	h.cookies.clearTokens(w)
	response.JSON(w, http.StatusOK, "User logged out successfully", nil)
}

// Me returns the authenticated account.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	account, err := h.auth.CurrentAccount(r.Context(), identity.ID)
	if err != nil {
		h.fail(w, "current account", err)
		return
	}

	response.JSON(w, http.StatusOK, "Current user fetched successfully", account)
}

func (h *User) identity(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		response.Error(w, apierrors.NewErrMissingAuthorizationToken())
		return model.Identity{}, false
	}
	return identity, true
}

func (h *User) fail(w http.ResponseWriter, op string, err error) {
	if apierrors.KindOf(err) == apierrors.KindInternal {
		h.logger.Error("User handler: "+op+" failed",
			"error", err.Error())
	} else {
		h.logger.Debug("User handler: "+op+" rejected",
			"error", err.Error())
	}
	response.Error(w, err)
}
