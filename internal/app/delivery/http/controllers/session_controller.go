package controllers

import (
	"errors"
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const sessionStreamKeepAlive = 25 * time.Second

// SessionController streams session changes to clients so they observe
// login, logout and refresh without polling.
type SessionController struct {
	Log         *zap.Logger
	EventSource contracts.SessionEventSource
	KeepAlive   time.Duration
}

func NewSessionController(logger *zap.Logger, eventSource contracts.SessionEventSource) *SessionController {
	return &SessionController{
		Log:         logger,
		EventSource: eventSource,
		KeepAlive:   sessionStreamKeepAlive,
	}
}

// StreamEvents writes the caller's current session first, then one event per
// change. The stream ends after a logout of the streaming session.
func (ctrl *SessionController) StreamEvents(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAuthenticationRequired(nil))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerProcess(errors.New(constvars.ErrDevSessionStreamNotSupport)))
		return
	}

	events, cancel := ctrl.EventSource.Subscribe(session.UserID)
	defer cancel()

	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextEventStream)
	w.Header().Set(constvars.HeaderCacheControl, "no-cache")
	w.Header().Set(constvars.HeaderConnection, "keep-alive")
	w.WriteHeader(constvars.StatusOK)

	err := writeSessionEvent(w, responses.SessionEvent{Type: "current", SessionID: session.SessionID, Session: toSessionResponse(session)})
	if err != nil {
		return
	}
	flusher.Flush()

	keepAlive := time.NewTicker(ctrl.KeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			_, err = fmt.Fprint(w, ": keep-alive\n\n")
			if err != nil {
				return
			}
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			err = writeSessionEvent(w, responses.SessionEvent{Type: event.Type, SessionID: event.SessionID, Session: toSessionResponse(event.Session)})
			if err != nil {
				ctrl.Log.Debug("Session stream closed", zap.Error(err))
				return
			}
			flusher.Flush()

			if event.Type == constvars.SessionEventLogout && event.SessionID == session.SessionID {
				return
			}
		}
	}
}

func writeSessionEvent(w http.ResponseWriter, event responses.SessionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: session\ndata: %s\n\n", payload)
	return err
}

func toSessionResponse(session *models.Session) *responses.Session {
	if session == nil {
		return nil
	}
	return &responses.Session{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	}
}
