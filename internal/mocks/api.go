package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/paperdesk/internal/model"
)

type TokenAuthenticator struct {
	mock.Mock
}

func (m *TokenAuthenticator) Authenticate(ctx context.Context, accessToken string) (model.Identity, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(model.Identity), args.Error(1)
}

type Pinger struct {
	mock.Mock
}

func (m *Pinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
