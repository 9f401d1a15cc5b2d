package handler

import (
	"net/http"
	"time"

	"github.com/dtroode/paperdesk/internal/api/http/middleware"
	"github.com/dtroode/paperdesk/internal/model"
)

// CookieOptions controls the session cookies.
type CookieOptions struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (o CookieOptions) setTokens(w http.ResponseWriter, pair model.TokenPair) {
	http.SetCookie(w, o.cookie(middleware.AccessTokenCookie, pair.AccessToken, o.AccessTTL))
	http.SetCookie(w, o.cookie(middleware.RefreshTokenCookie, pair.RefreshToken, o.RefreshTTL))
}

func (o CookieOptions) clearTokens(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		c := o.cookie(name, "", 0)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

func (o CookieOptions) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
