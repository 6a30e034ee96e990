package session

import (
	"context"
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/shared/metrics"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
}

func NewSessionService(redisRepository contracts.RedisRepository) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
}

func (svc *sessionService) CreateSession(ctx context.Context, session *models.Session) error {
	return svc.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, time.Until(session.ExpiresAt))
}

func (svc *sessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if sessionData == "" {
		return nil, exceptions.ErrInvalidSession(nil)
	}

	session := new(models.Session)
	err = json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, sessionKey(sessionID))
}

func (svc *sessionService) ExtendSession(ctx context.Context, session *models.Session, expiresAt time.Time) error {
	session.ExpiresAt = expiresAt
	return svc.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, time.Until(expiresAt))
}

func (svc *sessionService) PublishEvent(ctx context.Context, event models.SessionEvent) error {
	err := svc.RedisRepository.Publish(ctx, constvars.RedisChannelSessionEvents, event)
	if err != nil {
		return err
	}
	metrics.ObserveSessionEvent(event.Type)
	return nil
}
