package contracts

import (
	"context"
	"intake-service/internal/app/models"
	"time"
)

type SessionService interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ExtendSession(ctx context.Context, session *models.Session, expiresAt time.Time) error
	PublishEvent(ctx context.Context, event models.SessionEvent) error
}

// SessionEventSource delivers session events for one user until the returned
// cancel function is called.
type SessionEventSource interface {
	Subscribe(userID string) (events <-chan models.SessionEvent, cancel func())
}
