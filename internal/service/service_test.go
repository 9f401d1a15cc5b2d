package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/paperdesk/internal/credential"
	"github.com/dtroode/paperdesk/internal/model"
	"github.com/dtroode/paperdesk/internal/testutil"
	"github.com/dtroode/paperdesk/internal/token"
)

const testAdminEmail = "chair@conf.org"

type testEnv struct {
	clock         *testutil.Clock
	accounts      *testutil.Accounts
	pending       *testutil.PendingAccounts
	papers        *testutil.Papers
	blobs         *testutil.Blobs
	notifications *testutil.Notifications
	policy        *Policy
	tokens        *TokenService
	registration  *Registration
	auth          *Auth
	paper         *Paper
	codes         []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := testutil.MakeNoopLogger()

	e := &testEnv{
		clock:         testutil.NewClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)),
		accounts:      testutil.NewAccounts(),
		pending:       testutil.NewPendingAccounts(),
		papers:        testutil.NewPapers(),
		blobs:         testutil.NewBlobs(),
		notifications: &testutil.Notifications{},
		policy:        NewPolicy(testAdminEmail, false),
	}

	manager := token.NewJWT("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	e.tokens = NewTokenService(manager, e.accounts, e.accounts, log)
	e.registration = NewRegistration(e.accounts, e.pending, e.policy, e.tokens, e.notifications, log)
	e.registration.now = e.clock.Now
	e.registration.newOTP = func() (string, error) {
		code := fmt.Sprintf("%06d", 100000+len(e.codes))
		e.codes = append(e.codes, code)
		return code, nil
	}
	e.auth = NewAuth(e.accounts, e.policy, e.tokens, log)
	e.paper = NewPaper(e.papers, e.blobs, e.policy, e.notifications, log)
	e.paper.now = e.clock.Now

	return e
}

func (e *testEnv) lastCode() string {
	return e.codes[len(e.codes)-1]
}

// signUp creates a verified account directly in the store.
func (e *testEnv) signUp(t *testing.T, email, password string) model.Account {
	t.Helper()
	hash, err := credential.HashPassword(password)
	require.NoError(t, err)

	account, err := e.accounts.Create(context.Background(), model.Account{
		ID:           uuidFor(email),
		Email:        email,
		FullName:     "Name of " + email,
		PasswordHash: hash,
		Role:         e.policy.RoleFor(email),
		Verified:     true,
		CreatedAt:    e.clock.Now(),
		UpdatedAt:    e.clock.Now(),
	})
	require.NoError(t, err)
	return account
}

func registerParams(email, role string) RegisterParams {
	return RegisterParams{
		FullName:        "Ada Lovelace",
		Email:           email,
		Password:        "s3cret!",
		ConfirmPassword: "s3cret!",
		Role:            role,
	}
}

func uuidFor(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(email))
}
