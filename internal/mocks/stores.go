// Package mocks contains testify/mock doubles of the model interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/paperdesk/internal/model"
)

type AccountStore struct {
	mock.Mock
}

var _ model.AccountStore = (*AccountStore)(nil)

func (m *AccountStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

type PendingAccountStore struct {
	mock.Mock
}

var _ model.PendingAccountStore = (*PendingAccountStore)(nil)

func (m *PendingAccountStore) Replace(ctx context.Context, pending model.PendingAccount) error {
	return m.Called(ctx, pending).Error(0)
}

func (m *PendingAccountStore) GetByEmailAndRole(ctx context.Context, email string, role model.Role) (model.PendingAccount, error) {
	args := m.Called(ctx, email, role)
	return args.Get(0).(model.PendingAccount), args.Error(1)
}

func (m *PendingAccountStore) UpdateCode(ctx context.Context, email string, code string, expiresAt time.Time) error {
	return m.Called(ctx, email, code, expiresAt).Error(0)
}

func (m *PendingAccountStore) Delete(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type RefreshTokenStore struct {
	mock.Mock
}

var _ model.RefreshTokenStore = (*RefreshTokenStore)(nil)

func (m *RefreshTokenStore) Set(ctx context.Context, accountID uuid.UUID, tokenHash []byte) error {
	return m.Called(ctx, accountID, tokenHash).Error(0)
}

func (m *RefreshTokenStore) Replace(ctx context.Context, accountID uuid.UUID, oldHash, newHash []byte) error {
	return m.Called(ctx, accountID, oldHash, newHash).Error(0)
}

func (m *RefreshTokenStore) Clear(ctx context.Context, accountID uuid.UUID) error {
	return m.Called(ctx, accountID).Error(0)
}

type PaperStore struct {
	mock.Mock
}

var _ model.PaperStore = (*PaperStore)(nil)

func (m *PaperStore) Create(ctx context.Context, paper model.Paper) (model.Paper, error) {
	args := m.Called(ctx, paper)
	return args.Get(0).(model.Paper), args.Error(1)
}

func (m *PaperStore) GetByID(ctx context.Context, id uuid.UUID) (model.Paper, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Paper), args.Error(1)
}

func (m *PaperStore) Update(ctx context.Context, id uuid.UUID, patch model.PaperPatch) (model.Paper, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Paper), args.Error(1)
}

func (m *PaperStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PaperStore) List(ctx context.Context, filter model.PaperFilter) ([]model.Paper, error) {
	args := m.Called(ctx, filter)
	papers, _ := args.Get(0).([]model.Paper)
	return papers, args.Error(1)
}
