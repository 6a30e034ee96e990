package auth

import (
	"context"
	"fmt"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authUsecase struct {
	Log             *zap.Logger
	UserRepository  contracts.UserRepository
	SessionService  contracts.SessionService
	RedisRepository contracts.RedisRepository
	MailerService   contracts.MailerService
	InternalConfig  *config.InternalConfig
}

func NewAuthUsecase(
	log *zap.Logger,
	userRepository contracts.UserRepository,
	sessionService contracts.SessionService,
	redisRepository contracts.RedisRepository,
	mailerService contracts.MailerService,
	internalConfig *config.InternalConfig,
) contracts.AuthUsecase {
	return &authUsecase{
		Log:             log,
		UserRepository:  userRepository,
		SessionService:  sessionService,
		RedisRepository: redisRepository,
		MailerService:   mailerService,
		InternalConfig:  internalConfig,
	}
}

func (uc *authUsecase) tokenClaims() utils.SessionTokenClaims {
	return utils.SessionTokenClaims{
		Secret:   uc.InternalConfig.JWT.Secret,
		Issuer:   uc.InternalConfig.Backend.AuthDomain,
		Audience: uc.InternalConfig.Backend.AppID,
	}
}

func (uc *authUsecase) sessionLifetime() time.Duration {
	return time.Duration(uc.InternalConfig.App.LoginSessionExpiredTimeInHours) * time.Hour
}

// checkNewPassword applies the sign-up password rules: a minimum length and,
// when a confirmation was given, an exact match.
func checkNewPassword(password, confirmation string) error {
	if len(password) < constvars.MinimumPasswordLength {
		return exceptions.ErrWeakPassword(nil)
	}
	if confirmation != "" && confirmation != password {
		return exceptions.ErrPasswordMismatch(nil)
	}
	return nil
}

func (uc *authUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error) {
	err := checkNewPassword(request.Password, request.RetypePassword)
	if err != nil {
		return nil, err
	}

	if !utils.IsValidEmail(request.Email) {
		return nil, exceptions.ErrInvalidCredentials(nil, constvars.AuthCodeInvalidEmail)
	}

	existingUser, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Email:    request.Email,
		Password: hashedPassword,
	}
	user.SetCreatedAtUpdatedAt()

	userID, err := uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	session, token, err := uc.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &responses.RegisterUser{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		Email:     session.Email,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	if !utils.IsValidEmail(request.Email) {
		return nil, exceptions.ErrInvalidCredentials(nil, constvars.AuthCodeInvalidEmail)
	}

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrInvalidCredentials(nil, constvars.AuthCodeUserNotFound)
	}

	if !utils.CheckPasswordHash(request.Password, user.Password) {
		return nil, exceptions.ErrInvalidCredentials(nil, constvars.AuthCodeWrongPassword)
	}

	session, token, err := uc.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &responses.LoginUser{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		Email:     session.Email,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (uc *authUsecase) startSession(ctx context.Context, user *models.User) (*models.Session, string, error) {
	session := &models.Session{
		SessionID: utils.GenerateSessionID(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(uc.sessionLifetime()),
	}

	err := uc.SessionService.CreateSession(ctx, session)
	if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, uc.tokenClaims(), session.ExpiresAt)
	if err != nil {
		return nil, "", err
	}

	uc.publish(ctx, constvars.SessionEventLogin, session.UserID, session.SessionID, session)
	return session, token, nil
}

func (uc *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	err := uc.SessionService.DeleteSession(ctx, session.SessionID)
	if err != nil {
		return err
	}

	uc.publish(ctx, constvars.SessionEventLogout, session.UserID, session.SessionID, nil)
	return nil
}

func (uc *authUsecase) RefreshSession(ctx context.Context, session *models.Session) (*responses.LoginUser, error) {
	expiresAt := time.Now().Add(uc.sessionLifetime())
	err := uc.SessionService.ExtendSession(ctx, session, expiresAt)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, uc.tokenClaims(), expiresAt)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, constvars.SessionEventRefresh, session.UserID, session.SessionID, session)
	return &responses.LoginUser{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		Email:     session.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// publish broadcasts a session change. Delivery is best effort: the session
// itself is already stored, so a broker hiccup must not fail the request.
func (uc *authUsecase) publish(ctx context.Context, eventType, userID, sessionID string, session *models.Session) {
	err := uc.SessionService.PublishEvent(ctx, models.SessionEvent{
		Type:      eventType,
		UserID:    userID,
		SessionID: sessionID,
		Session:   session,
	})
	if err != nil {
		uc.Log.Warn("authUsecase.publish failed",
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.String("event", eventType),
			zap.Error(err),
		)
	}
}

func (uc *authUsecase) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, exceptions.ErrTokenMissing(nil)
	}

	sessionID, err := utils.ParseSessionJWT(token, uc.tokenClaims())
	if err != nil {
		return nil, err
	}

	session, err := uc.SessionService.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return session, nil
}

func (uc *authUsecase) RequestPasswordReset(ctx context.Context, request *requests.ForgotPassword) error {
	if !utils.IsValidEmail(request.Email) {
		return exceptions.ErrInvalidCredentials(nil, constvars.AuthCodeInvalidEmail)
	}

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrUserNotExist(nil)
	}

	expiryMinutes := uc.InternalConfig.App.ForgotPasswordTokenExpiredTimeInMinutes
	expiry := time.Duration(expiryMinutes) * time.Minute

	resetID := uuid.NewString()
	err = uc.RedisRepository.Set(ctx, resetPasswordKey(resetID), models.ResetPasswordData{
		UserID: user.ID,
		Email:  user.Email,
	}, expiry)
	if err != nil {
		return err
	}

	token, err := utils.GenerateResetPasswordJWT(resetID, uc.InternalConfig.JWT.Secret, expiry)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("https://%s%s%s", uc.InternalConfig.Backend.AuthDomain, uc.InternalConfig.App.ResetPasswordUrl, token)
	payload := &requests.EmailPayload{
		Subject:  constvars.EmailResetPasswordSubject,
		From:     uc.InternalConfig.Backend.SenderAddress(uc.InternalConfig.Mailer.EmailSenderDomain),
		To:       []string{user.Email},
		HTMLCode: fmt.Sprintf(constvars.EmailResetPasswordHTMLFormat, user.Email, resetLink, expiryMinutes),
	}

	return uc.MailerService.SendEmail(ctx, payload)
}

func (uc *authUsecase) ResetPassword(ctx context.Context, request *requests.ResetPassword) error {
	err := checkNewPassword(request.NewPassword, request.NewPasswordConfirmation)
	if err != nil {
		return err
	}

	resetID, err := utils.ParseResetPasswordJWT(request.Token, uc.InternalConfig.JWT.Secret)
	if err != nil {
		return err
	}

	key := resetPasswordKey(resetID)
	rawData, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		return err
	}
	if rawData == "" {
		return exceptions.ErrResetTokenInvalid(nil)
	}

	var data models.ResetPasswordData
	err = json.Unmarshal([]byte(rawData), &data)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}

	user, err := uc.UserRepository.FindByID(ctx, data.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrResetTokenInvalid(nil)
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return exceptions.ErrHashPassword(err)
	}
	user.Password = hashedPassword
	user.SetUpdatedAt()

	err = uc.UserRepository.UpdateUser(ctx, user)
	if err != nil {
		return err
	}

	return uc.RedisRepository.Delete(ctx, key)
}

func resetPasswordKey(resetID string) string {
	return fmt.Sprintf(constvars.RedisKeyResetPasswordFormat, resetID)
}
