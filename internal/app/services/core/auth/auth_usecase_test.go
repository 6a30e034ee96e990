package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"intake-service/internal/app/config"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, userModel *models.User) (string, error) {
	args := m.Called(ctx, userModel)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, userModel *models.User) error {
	args := m.Called(ctx, userModel)
	return args.Error(0)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionService) ExtendSession(ctx context.Context, session *models.Session, expiresAt time.Time) error {
	args := m.Called(ctx, session, expiresAt)
	return args.Error(0)
}

func (m *MockSessionService) PublishEvent(ctx context.Context, event models.SessionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	args := m.Called(ctx, key, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

type MockMailerService struct {
	mock.Mock
}

func (m *MockMailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type authFixture struct {
	users    *MockUserRepository
	sessions *MockSessionService
	redis    *MockRedisRepository
	mailer   *MockMailerService
	config   *config.InternalConfig
}

func newAuthFixture() (*authFixture, *authUsecase) {
	f := &authFixture{
		users:    new(MockUserRepository),
		sessions: new(MockSessionService),
		redis:    new(MockRedisRepository),
		mailer:   new(MockMailerService),
		config: &config.InternalConfig{
			App: config.App{
				ResetPasswordUrl:                        "/reset-password?token=",
				LoginSessionExpiredTimeInHours:          24,
				ForgotPasswordTokenExpiredTimeInMinutes: 30,
			},
			JWT: config.AppJWT{Secret: "test-secret"},
			Backend: config.BackendCredentials{
				AuthDomain:        "intake.example.com",
				AppID:             "1:42:web:abc",
				MessagingSenderID: "42",
			},
			Mailer: config.AppMailer{EmailSenderDomain: "example.com"},
		},
	}
	usecase := NewAuthUsecase(zap.NewNop(), f.users, f.sessions, f.redis, f.mailer, f.config).(*authUsecase)
	return f, usecase
}

func hashed(t *testing.T, password string) string {
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestAuthUsecase_LoginErrorCodes(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed email is rejected before lookup", func(t *testing.T) {
		f, usecase := newAuthFixture()

		_, err := usecase.Login(ctx, &requests.LoginUser{Email: "not-an-email", Password: "secret1"})

		require.Error(t, err)
		assert.Equal(t, constvars.AuthCodeInvalidEmail, exceptions.Code(err))
		assert.True(t, exceptions.OffersAccountCreation(err))
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("unknown user offers account creation", func(t *testing.T) {
		f, usecase := newAuthFixture()
		f.users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

		_, err := usecase.Login(ctx, &requests.LoginUser{Email: "nobody@example.com", Password: "secret1"})

		assert.Equal(t, constvars.AuthCodeUserNotFound, exceptions.Code(err))
		assert.True(t, exceptions.OffersAccountCreation(err))
		assert.False(t, exceptions.OffersPasswordReset(err))
	})

	t.Run("wrong password offers reset", func(t *testing.T) {
		f, usecase := newAuthFixture()
		f.users.On("FindByEmail", ctx, "ravi@example.com").Return(&models.User{
			ID:       "user-1",
			Email:    "ravi@example.com",
			Password: hashed(t, "correct-horse"),
		}, nil)

		_, err := usecase.Login(ctx, &requests.LoginUser{Email: "ravi@example.com", Password: "wrong-horse"})

		assert.Equal(t, constvars.AuthCodeWrongPassword, exceptions.Code(err))
		assert.True(t, exceptions.OffersPasswordReset(err))
		f.sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_LoginStartsSession(t *testing.T) {
	ctx := context.Background()
	f, usecase := newAuthFixture()

	f.users.On("FindByEmail", ctx, "ravi@example.com").Return(&models.User{
		ID:       "user-1",
		Email:    "ravi@example.com",
		Password: hashed(t, "correct-horse"),
	}, nil)
	f.sessions.On("CreateSession", ctx, mock.AnythingOfType("*models.Session")).Return(nil)
	f.sessions.On("PublishEvent", ctx, mock.MatchedBy(func(event models.SessionEvent) bool {
		return event.Type == constvars.SessionEventLogin && event.UserID == "user-1" && event.Session != nil
	})).Return(errors.New("broker down"))

	result, err := usecase.Login(ctx, &requests.LoginUser{Email: "ravi@example.com", Password: "correct-horse"})

	require.NoError(t, err, "a failed broadcast must not fail the login")
	assert.Equal(t, "user-1", result.UserID)
	assert.Equal(t, "ravi@example.com", result.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), result.ExpiresAt, time.Minute)

	sessionID, err := utils.ParseSessionJWT(result.Token, usecase.tokenClaims())
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)

	_, err = utils.ParseSessionJWT(result.Token, utils.SessionTokenClaims{
		Secret:   "test-secret",
		Issuer:   "intake.example.com",
		Audience: "another-app",
	})
	assert.Error(t, err, "tokens are bound to the app id")

	f.sessions.AssertExpectations(t)
}

func TestAuthUsecase_RegisterChecksPasswordFirst(t *testing.T) {
	ctx := context.Background()

	t.Run("weak password", func(t *testing.T) {
		f, usecase := newAuthFixture()

		_, err := usecase.Register(ctx, &requests.RegisterUser{Email: "ravi@example.com", Password: "abc", RetypePassword: "abc"})

		assert.Equal(t, constvars.AuthCodeWeakPassword, exceptions.Code(err))
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		f.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		f, usecase := newAuthFixture()

		_, err := usecase.Register(ctx, &requests.RegisterUser{Email: "ravi@example.com", Password: "secret1", RetypePassword: "secret2"})

		assert.Equal(t, constvars.AuthCodePasswordMismatch, exceptions.Code(err))
		f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("existing email", func(t *testing.T) {
		f, usecase := newAuthFixture()
		f.users.On("FindByEmail", ctx, "ravi@example.com").Return(&models.User{ID: "user-1"}, nil)

		_, err := usecase.Register(ctx, &requests.RegisterUser{Email: "ravi@example.com", Password: "secret1", RetypePassword: "secret1"})

		assert.Equal(t, constvars.AuthCodeEmailAlreadyInUse, exceptions.Code(err))
		f.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_RegisterCreatesUser(t *testing.T) {
	ctx := context.Background()
	f, usecase := newAuthFixture()

	f.users.On("FindByEmail", ctx, "new@example.com").Return(nil, nil)
	f.users.On("CreateUser", ctx, mock.MatchedBy(func(user *models.User) bool {
		return user.Email == "new@example.com" && utils.CheckPasswordHash("secret1", user.Password)
	})).Return("user-9", nil)
	f.sessions.On("CreateSession", ctx, mock.AnythingOfType("*models.Session")).Return(nil)
	f.sessions.On("PublishEvent", ctx, mock.Anything).Return(nil)

	result, err := usecase.Register(ctx, &requests.RegisterUser{Email: "new@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "user-9", result.UserID)
	assert.NotEmpty(t, result.Token)
	f.users.AssertExpectations(t)
}

func TestAuthUsecase_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing token", func(t *testing.T) {
		_, usecase := newAuthFixture()
		_, err := usecase.Authenticate(ctx, "")
		assert.Error(t, err)
	})

	t.Run("live session", func(t *testing.T) {
		f, usecase := newAuthFixture()
		expiresAt := time.Now().Add(time.Hour)
		token, err := utils.GenerateSessionJWT("sess-1", usecase.tokenClaims(), expiresAt)
		require.NoError(t, err)

		session := &models.Session{SessionID: "sess-1", UserID: "user-1", ExpiresAt: expiresAt}
		f.sessions.On("GetSession", ctx, "sess-1").Return(session, nil)

		got, err := usecase.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", got.UserID)
	})

	t.Run("revoked session", func(t *testing.T) {
		f, usecase := newAuthFixture()
		token, err := utils.GenerateSessionJWT("sess-2", usecase.tokenClaims(), time.Now().Add(time.Hour))
		require.NoError(t, err)

		f.sessions.On("GetSession", ctx, "sess-2").Return(nil, exceptions.ErrInvalidSession(nil))

		_, err = usecase.Authenticate(ctx, token)
		assert.Error(t, err)
	})
}

func TestAuthUsecase_LogoutPublishesWithoutSession(t *testing.T) {
	ctx := context.Background()
	f, usecase := newAuthFixture()
	session := &models.Session{SessionID: "sess-1", UserID: "user-1"}

	f.sessions.On("DeleteSession", ctx, "sess-1").Return(nil)
	f.sessions.On("PublishEvent", ctx, models.SessionEvent{
		Type:      constvars.SessionEventLogout,
		UserID:    "user-1",
		SessionID: "sess-1",
	}).Return(nil)

	err := usecase.Logout(ctx, session)

	require.NoError(t, err)
	f.sessions.AssertExpectations(t)
}

func TestAuthUsecase_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		f, usecase := newAuthFixture()
		f.users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

		err := usecase.RequestPasswordReset(ctx, &requests.ForgotPassword{Email: "nobody@example.com"})

		assert.Equal(t, constvars.AuthCodeUserNotFound, exceptions.Code(err))
		f.mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("queues the reset email", func(t *testing.T) {
		f, usecase := newAuthFixture()
		f.users.On("FindByEmail", ctx, "ravi@example.com").Return(&models.User{ID: "user-1", Email: "ravi@example.com"}, nil)
		f.redis.On("Set", ctx, mock.AnythingOfType("string"), models.ResetPasswordData{UserID: "user-1", Email: "ravi@example.com"}, 30*time.Minute).Return(nil)
		f.mailer.On("SendEmail", ctx, mock.MatchedBy(func(payload *requests.EmailPayload) bool {
			return payload.From == "noreply+42@example.com" &&
				len(payload.To) == 1 && payload.To[0] == "ravi@example.com" &&
				strings.Contains(payload.HTMLCode, "https://intake.example.com/reset-password?token=")
		})).Return(nil)

		err := usecase.RequestPasswordReset(ctx, &requests.ForgotPassword{Email: "ravi@example.com"})

		require.NoError(t, err)
		f.redis.AssertExpectations(t)
		f.mailer.AssertExpectations(t)
	})
}

func TestAuthUsecase_ResetPasswordIsSingleUse(t *testing.T) {
	ctx := context.Background()
	f, usecase := newAuthFixture()

	token, err := utils.GenerateResetPasswordJWT("reset-1", "test-secret", 30*time.Minute)
	require.NoError(t, err)

	stored, err := json.Marshal(models.ResetPasswordData{UserID: "user-1", Email: "ravi@example.com"})
	require.NoError(t, err)

	f.redis.On("Get", ctx, "reset_password:reset-1").Return(string(stored), nil).Once()
	f.redis.On("Get", ctx, "reset_password:reset-1").Return("", nil)
	f.redis.On("Delete", ctx, "reset_password:reset-1").Return(nil)
	f.users.On("FindByID", ctx, "user-1").Return(&models.User{ID: "user-1", Email: "ravi@example.com"}, nil)
	f.users.On("UpdateUser", ctx, mock.MatchedBy(func(user *models.User) bool {
		return utils.CheckPasswordHash("brand-new", user.Password)
	})).Return(nil)

	request := &requests.ResetPassword{Token: token, NewPassword: "brand-new", NewPasswordConfirmation: "brand-new"}

	require.NoError(t, usecase.ResetPassword(ctx, request))

	err = usecase.ResetPassword(ctx, request)
	assert.Equal(t, constvars.AuthCodeInvalidResetToken, exceptions.Code(err))
	f.users.AssertNumberOfCalls(t, "UpdateUser", 1)
}

func TestAuthUsecase_ResetPasswordRejectsWeakPasswordBeforeToken(t *testing.T) {
	f, usecase := newAuthFixture()

	err := usecase.ResetPassword(context.Background(), &requests.ResetPassword{Token: "garbage", NewPassword: "abc"})

	assert.Equal(t, constvars.AuthCodeWeakPassword, exceptions.Code(err))
	f.redis.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
