package contracts

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error)
	Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error)
	Logout(ctx context.Context, session *models.Session) error
	RefreshSession(ctx context.Context, session *models.Session) (*responses.LoginUser, error)
	RequestPasswordReset(ctx context.Context, request *requests.ForgotPassword) error
	ResetPassword(ctx context.Context, request *requests.ResetPassword) error
	// Authenticate resolves a bearer token to its live session.
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}
