package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/paperdesk/internal/model"
)

type BlobStore struct {
	mock.Mock
}

var _ model.BlobStore = (*BlobStore)(nil)

func (m *BlobStore) Upload(ctx context.Context, file model.Upload) (model.Blob, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(model.Blob), args.Error(1)
}

func (m *BlobStore) Delete(ctx context.Context, storageID string) error {
	return m.Called(ctx, storageID).Error(0)
}

type Notifier struct {
	mock.Mock
}

var _ model.Notifier = (*Notifier)(nil)

func (m *Notifier) Notify(ctx context.Context, msg model.Message) {
	m.Called(ctx, msg)
}

type TokenManager struct {
	mock.Mock
}

var _ model.TokenManager = (*TokenManager)(nil)

func (m *TokenManager) GenerateAccessToken(claims model.AccessClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(accountID uuid.UUID) (string, error) {
	args := m.Called(accountID)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseAccessToken(token string) (model.AccessClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.AccessClaims), args.Error(1)
}

func (m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
