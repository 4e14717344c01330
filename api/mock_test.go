package api

import (
	"context"
	"net/http"
	"testing"

	"lightbridge/application"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBridgeService struct {
	mock.Mock
}

func (m *MockBridgeService) Run(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBridgeService) TurnOn() error {
	return m.Called().Error(0)
}

func (m *MockBridgeService) TurnOff() error {
	return m.Called().Error(0)
}

func (m *MockBridgeService) Toggle() error {
	return m.Called().Error(0)
}

func (m *MockBridgeService) SetMode(mode string) error {
	return m.Called(mode).Error(0)
}

func (m *MockBridgeService) SetBrightness(value *float64) (float64, error) {
	args := m.Called(value)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBridgeService) Status() application.BridgeStatus {
	return m.Called().Get(0).(application.BridgeStatus)
}

func (m *MockBridgeService) SetMockState(led application.LedState) {
	m.Called(led)
}

var _ application.BridgeService = &MockBridgeService{}

// fakeAuthService forwards to function fields, so each test can script the
// behaviour it needs.
type fakeAuthService struct {
	register func(ctx context.Context, input application.RegisterInput) (*application.User, error)
	login    func(ctx context.Context, input application.LoginInput) (string, error)
	me       func(ctx context.Context, token string) (*application.User, error)
}

func (f *fakeAuthService) Register(ctx context.Context, input application.RegisterInput) (*application.User, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthService) Login(ctx context.Context, input application.LoginInput) (string, error) {
	return f.login(ctx, input)
}

func (f *fakeAuthService) Me(ctx context.Context, token string) (*application.User, error) {
	return f.me(ctx, token)
}

var _ application.AuthService = &fakeAuthService{}

type fakeReviewRepo struct {
	reviews []application.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, review *application.Review) error {
	review.ID = "review-1"
	f.reviews = append([]application.Review{*review}, f.reviews...)
	return nil
}

func (f *fakeReviewRepo) List(_ context.Context) ([]application.Review, error) {
	return f.reviews, nil
}

var _ application.ReviewRepository = &fakeReviewRepo{}

func newTestServer(t *testing.T, params ServerParams) http.Handler {
	t.Helper()

	server, err := NewServer(params)
	require.NoError(t, err)
	return server.server.Handler
}
