package client

import (
	"context"
	"errors"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionListener is called with the current session, or nil when nobody is
// logged in.
type SessionListener func(session *models.Session)

// SessionAdapter owns the client's view of who is logged in. Every change of
// that view, local or pushed by the server, is delivered to the listeners.
type SessionAdapter struct {
	Log    *zap.Logger
	client *Client
	store  SessionStore
	now    func() time.Time

	mu        sync.Mutex
	current   *models.Session
	listeners map[int]SessionListener
	nextID    int
}

func NewSessionAdapter(logger *zap.Logger, client *Client, store SessionStore) *SessionAdapter {
	return &SessionAdapter{
		Log:       logger,
		client:    client,
		store:     store,
		now:       time.Now,
		listeners: make(map[int]SessionListener),
	}
}

// Current returns a copy of the current session, or nil.
func (a *SessionAdapter) Current() *models.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil
	}
	session := *a.current
	return &session
}

// UserID returns the logged in user's id, or an empty string.
func (a *SessionAdapter) UserID() string {
	if session := a.Current(); session != nil {
		return session.UserID
	}
	return ""
}

// Subscribe registers listener and immediately calls it with the current
// state. The returned function removes the listener.
func (a *SessionAdapter) Subscribe(listener SessionListener) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = listener
	a.mu.Unlock()

	listener(a.Current())

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.listeners, id)
			a.mu.Unlock()
		})
	}
}

func (a *SessionAdapter) setSession(session *models.Session) {
	a.mu.Lock()
	a.current = session
	listeners := make([]SessionListener, 0, len(a.listeners))
	for _, listener := range a.listeners {
		listeners = append(listeners, listener)
	}
	a.mu.Unlock()

	for _, listener := range listeners {
		listener(a.Current())
	}
}

func (a *SessionAdapter) establish(token string, session models.Session) error {
	a.client.SetToken(token)
	err := a.store.Save(&Credentials{Token: token, Session: session})
	if err != nil {
		a.Log.Warn("SessionAdapter could not persist session", zap.Error(err))
	}
	a.setSession(&session)
	return nil
}

func (a *SessionAdapter) clear() {
	a.client.SetToken("")
	err := a.store.Clear()
	if err != nil {
		a.Log.Warn("SessionAdapter could not remove stored session", zap.Error(err))
	}
	a.setSession(nil)
}

// Restore picks up the session stored by a previous run. A stored session
// that expired or that the server no longer knows is discarded.
func (a *SessionAdapter) Restore(ctx context.Context) error {
	credentials, err := a.store.Load()
	if err != nil {
		a.Log.Warn("SessionAdapter ignoring unreadable session file", zap.Error(err))
		a.clear()
		return nil
	}
	if credentials == nil || !a.now().Before(credentials.Session.ExpiresAt) {
		a.clear()
		return nil
	}

	a.client.SetToken(credentials.Token)
	current, err := a.client.CurrentSession(ctx)
	if err != nil {
		if isUnauthorized(err) {
			a.clear()
			return nil
		}
		a.client.SetToken("")
		return err
	}

	session := credentials.Session
	session.Email = firstNonEmpty(current.Email, session.Email)
	session.ExpiresAt = current.ExpiresAt
	a.setSession(&session)
	return nil
}

func (a *SessionAdapter) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return exceptions.ErrEmailRequired(nil)
	}
	if password == "" {
		return exceptions.ErrAllFieldsRequired(nil)
	}

	result, err := a.client.Login(ctx, &requests.LoginUser{Email: email, Password: password})
	if err != nil {
		return err
	}
	return a.establish(result.Token, toSession(result.SessionID, result.UserID, result.Email, result.ExpiresAt))
}

// Register checks the password rules locally so an obviously bad form never
// reaches the network.
func (a *SessionAdapter) Register(ctx context.Context, email, password, confirmation string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return exceptions.ErrEmailRequired(nil)
	}
	if len(password) < constvars.MinimumPasswordLength {
		return exceptions.ErrWeakPassword(nil)
	}
	if confirmation != "" && confirmation != password {
		return exceptions.ErrPasswordMismatch(nil)
	}

	result, err := a.client.Register(ctx, &requests.RegisterUser{
		Email:          email,
		Password:       password,
		RetypePassword: confirmation,
	})
	if err != nil {
		return err
	}
	return a.establish(result.Token, toSession(result.SessionID, result.UserID, result.Email, result.ExpiresAt))
}

// Logout ends the session locally even when the server cannot be reached.
func (a *SessionAdapter) Logout(ctx context.Context) error {
	if a.client.Token() == "" {
		a.clear()
		return nil
	}

	err := a.client.Logout(ctx)
	a.clear()
	if err != nil && !isUnauthorized(err) {
		return err
	}
	return nil
}

func (a *SessionAdapter) Refresh(ctx context.Context) error {
	current := a.Current()
	if current == nil {
		return exceptions.ErrAuthenticationRequired(nil)
	}

	result, err := a.client.RefreshSession(ctx)
	if err != nil {
		if isUnauthorized(err) {
			a.clear()
		}
		return err
	}

	session := *current
	session.ExpiresAt = result.ExpiresAt
	return a.establish(result.Token, session)
}

func (a *SessionAdapter) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return exceptions.ErrEmailRequired(nil)
	}
	return a.client.ForgotPassword(ctx, &requests.ForgotPassword{Email: email})
}

func (a *SessionAdapter) ResetPassword(ctx context.Context, token, newPassword, confirmation string) error {
	if len(newPassword) < constvars.MinimumPasswordLength {
		return exceptions.ErrWeakPassword(nil)
	}
	if confirmation != "" && confirmation != newPassword {
		return exceptions.ErrPasswordMismatch(nil)
	}
	return a.client.ResetPassword(ctx, &requests.ResetPassword{
		Token:                   strings.TrimSpace(token),
		NewPassword:             newPassword,
		NewPasswordConfirmation: confirmation,
	})
}

// Follow applies session changes pushed by the server, such as a logout
// from another terminal, until ctx is done or the stream ends.
func (a *SessionAdapter) Follow(ctx context.Context) error {
	if a.Current() == nil {
		return exceptions.ErrAuthenticationRequired(nil)
	}

	return a.client.WatchSession(ctx, func(event responses.SessionEvent) {
		current := a.Current()
		if current == nil {
			return
		}

		if event.SessionID != current.SessionID {
			return
		}

		switch {
		case event.Type == constvars.SessionEventLogout:
			a.clear()
		case event.Session != nil:
			if !event.Session.ExpiresAt.Equal(current.ExpiresAt) {
				session := *current
				session.ExpiresAt = event.Session.ExpiresAt
				a.setSession(&session)
			}
		}
	})
}

func toSession(sessionID, userID, email string, expiresAt time.Time) models.Session {
	return models.Session{
		SessionID: sessionID,
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt,
	}
}

func isUnauthorized(err error) bool {
	var customErr *exceptions.CustomError
	return errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusUnauthorized
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
