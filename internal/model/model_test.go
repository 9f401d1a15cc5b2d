package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{name: "delimited text", values: []string{"ml, vision,graphs"}, want: []string{"ml", "vision", "graphs"}},
		{name: "list", values: []string{"ml", " vision "}, want: []string{"ml", "vision"}},
		{name: "blanks dropped", values: []string{"ml,,  ,nlp"}, want: []string{"ml", "nlp"}},
		{name: "empty", values: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeywords(tt.values))
		})
	}
}

func TestParsePaperStatus(t *testing.T) {
	for _, st := range PaperStatuses {
		got, ok := ParsePaperStatus(string(st))
		assert.True(t, ok)
		assert.Equal(t, st, got)
	}

	for _, bad := range []string{"", "accept", "Pending", "Review  Awaiting"} {
		_, ok := ParsePaperStatus(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("reviewer")
	assert.False(t, ok)
}

func TestPendingAccount_Expired(t *testing.T) {
	exp := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	p := PendingAccount{OTPExpiresAt: exp}

	assert.False(t, p.Expired(exp.Add(-time.Millisecond)))
	assert.True(t, p.Expired(exp))
	assert.True(t, p.Expired(exp.Add(time.Millisecond)))
}

func TestAccount_Identity(t *testing.T) {
	a := Account{
		ID:               uuid.New(),
		Email:            "a@x.com",
		FullName:         "A",
		PasswordHash:     "hash",
		Role:             RoleAuthor,
		RefreshTokenHash: []byte("h"),
		Verified:         true,
	}

	id := a.Identity()
	assert.Equal(t, a.ID, id.ID)
	assert.Equal(t, a.Email, id.Email)
	assert.True(t, id.Verified)
	assert.False(t, id.IsAdmin())
}

func TestParseEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
		ok    bool
	}{
		{name: "plain", email: "a@x.com", want: "a@x.com", ok: true},
		{name: "normalized", email: "  A@X.Com ", want: "a@x.com", ok: true},
		{name: "missing at", email: "ax.com"},
		{name: "empty", email: "   "},
		{name: "display name", email: "Ada <a@x.com>"},
		{name: "list", email: "a@x.com, b@x.com"},
		{name: "header break", email: "a@x.com\r\nBcc: victim@evil.test"},
		{name: "bare newline", email: "a@x.com\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEmail(tt.email)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com "))
}
