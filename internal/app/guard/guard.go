package guard

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

type State string

const (
	StateChecking     State = "checking"
	StateAuthorized   State = "authorized"
	StateUnauthorized State = "unauthorized"
)

const (
	LoginLocation     = "/login"
	DashboardLocation = "/dashboard"
)

// SessionResolver settles whether a session exists. It may take a while,
// for example when a stored session is verified with the server.
type SessionResolver interface {
	Resolve(ctx context.Context) (*models.Session, error)
}

type ResolverFunc func(ctx context.Context) (*models.Session, error)

func (f ResolverFunc) Resolve(ctx context.Context) (*models.Session, error) {
	return f(ctx)
}

// Decision is the settled outcome of a check. Redirect is set only for
// unauthorized requests and carries the requested location.
type Decision struct {
	State    State
	Session  *models.Session
	Redirect string
}

// Guard gates protected locations behind a session.
type Guard struct {
	Log      *zap.Logger
	resolver SessionResolver

	// OnChecking runs when a check starts, before the session is known.
	// It should show a neutral waiting indicator and never redirect.
	OnChecking func()
}

func New(logger *zap.Logger, resolver SessionResolver) *Guard {
	return &Guard{
		Log:      logger,
		resolver: resolver,
	}
}

// Check resolves the session and decides what to show for requested.
// A resolver failure counts as no session.
func (g *Guard) Check(ctx context.Context, requested string) Decision {
	if g.OnChecking != nil {
		g.OnChecking()
	}

	session, err := g.resolver.Resolve(ctx)
	if err != nil {
		g.Log.Debug("Guard could not resolve session", zap.String(constvars.LoggingEndpointKey, requested), zap.Error(err))
	}
	if err != nil || session == nil {
		return Decision{
			State:    StateUnauthorized,
			Redirect: LoginRedirect(requested),
		}
	}

	return Decision{
		State:   StateAuthorized,
		Session: session,
	}
}

// LoginRedirect builds the login location that returns to requested once
// the user has logged in.
func LoginRedirect(requested string) string {
	if !isLocalPath(requested) || requested == LoginLocation {
		return LoginLocation
	}
	query := url.Values{constvars.URLQueryParamNext: []string{requested}}
	return LoginLocation + "?" + query.Encode()
}

// NextLocation extracts where to go after login from a login location.
// Anything that is not a local path falls back to the dashboard.
func NextLocation(loginLocation string) string {
	parsed, err := url.Parse(loginLocation)
	if err != nil {
		return DashboardLocation
	}
	next := parsed.Query().Get(constvars.URLQueryParamNext)
	if !isLocalPath(next) || next == LoginLocation {
		return DashboardLocation
	}
	return next
}

func isLocalPath(location string) bool {
	return strings.HasPrefix(location, "/") && !strings.HasPrefix(location, "//")
}
