package apierrors

import "fmt"

func NewErrMissingAuthorizationToken() *APIError {
	return NewUnauthorized("Unauthorized - No token provided")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return NewUnauthorized("Invalid or expired token")
}

func NewErrMissingRefreshToken() *APIError {
	return NewBadRequest("Refresh token missing")
}

func NewErrInvalidRefreshToken() *APIError {
	return NewUnauthorized("Invalid or expired refresh token")
}

func NewErrInvalidCredentials() *APIError {
	return NewUnauthorized("Invalid credentials")
}

func NewErrUserNotFound(who string) *APIError {
	return NewNotFound(fmt.Sprintf("User %s not found", who))
}

func NewErrEmailIsTaken(email string) *APIError {
	return NewConflict(fmt.Sprintf("An account with email %s already exists", email))
}

func NewErrAdminExists() *APIError {
	return NewConflict("Admin already exists")
}

func NewErrPendingRegistrationNotFound(email string) *APIError {
	return NewNotFound(fmt.Sprintf("No pending registration for %s", email))
}

func NewErrInvalidOTP() *APIError {
	return NewBadRequest("Invalid or expired OTP")
}

func NewErrPaperNotFound(id string) *APIError {
	return NewNotFound(fmt.Sprintf("Paper %s not found", id))
}

func NewErrInvalidStatus(status string) *APIError {
	return NewBadRequest("Invalid status value", fmt.Sprintf("status %q is not one of the allowed values", status))
}

func NewErrAdminOnly() *APIError {
	return NewForbidden("Admin access only")
}
