package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/paperdesk/internal/model"
	"github.com/dtroode/paperdesk/internal/service"
)

type registrationMock struct {
	mock.Mock
}

func (m *registrationMock) BeginRegistration(ctx context.Context, params service.RegisterParams) (service.RegistrationResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(service.RegistrationResult), args.Error(1)
}

func (m *registrationMock) Verify(ctx context.Context, email, code, role string) (service.Session, error) {
	args := m.Called(ctx, email, code, role)
	return args.Get(0).(service.Session), args.Error(1)
}

func (m *registrationMock) Resend(ctx context.Context, email, role string) (service.RegistrationResult, error) {
	args := m.Called(ctx, email, role)
	return args.Get(0).(service.RegistrationResult), args.Error(1)
}

type authMock struct {
	mock.Mock
}

func (m *authMock) Login(ctx context.Context, email, password, role string) (service.Session, error) {
	args := m.Called(ctx, email, password, role)
	return args.Get(0).(service.Session), args.Error(1)
}

func (m *authMock) CurrentAccount(ctx context.Context, id uuid.UUID) (model.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Identity), args.Error(1)
}

type sessionMock struct {
	mock.Mock
}

func (m *sessionMock) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *sessionMock) Logout(ctx context.Context, accountID uuid.UUID) error {
	return m.Called(ctx, accountID).Error(0)
}

type paperMock struct {
	mock.Mock
}

func (m *paperMock) Submit(ctx context.Context, params model.SubmitPaperParams) (model.Paper, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Paper), args.Error(1)
}

func (m *paperMock) Update(ctx context.Context, id uuid.UUID, actor model.Identity, params model.UpdatePaperParams) (model.Paper, error) {
	args := m.Called(ctx, id, actor, params)
	return args.Get(0).(model.Paper), args.Error(1)
}

func (m *paperMock) Remove(ctx context.Context, id uuid.UUID, actor model.Identity) error {
	return m.Called(ctx, id, actor).Error(0)
}

func (m *paperMock) SetStatus(ctx context.Context, id uuid.UUID, actor model.Identity, status string) (model.Paper, error) {
	args := m.Called(ctx, id, actor, status)
	return args.Get(0).(model.Paper), args.Error(1)
}

func (m *paperMock) ListAll(ctx context.Context, actor model.Identity) ([]model.Paper, error) {
	args := m.Called(ctx, actor)
	papers, _ := args.Get(0).([]model.Paper)
	return papers, args.Error(1)
}

func (m *paperMock) ListByAuthor(ctx context.Context, actor model.Identity, email string) ([]model.Paper, error) {
	args := m.Called(ctx, actor, email)
	papers, _ := args.Get(0).([]model.Paper)
	return papers, args.Error(1)
}

var (
	_ RegistrationService = (*registrationMock)(nil)
	_ AuthService         = (*authMock)(nil)
	_ SessionService      = (*sessionMock)(nil)
	_ PaperService        = (*paperMock)(nil)
)
