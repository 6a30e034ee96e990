package guard

import (
	"context"
	"errors"
	"testing"

	"intake-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGuard_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("checking comes first and never redirects", func(t *testing.T) {
		var events []string
		resolver := ResolverFunc(func(ctx context.Context) (*models.Session, error) {
			events = append(events, "resolve")
			return nil, nil
		})
		g := New(zap.NewNop(), resolver)
		g.OnChecking = func() { events = append(events, "checking") }

		decision := g.Check(ctx, "/dashboard/history")

		assert.Equal(t, []string{"checking", "resolve"}, events)
		assert.Equal(t, StateUnauthorized, decision.State)
		assert.Equal(t, "/login?next=%2Fdashboard%2Fhistory", decision.Redirect)
	})

	t.Run("authorized renders unchanged", func(t *testing.T) {
		session := &models.Session{UserID: "user-1"}
		g := New(zap.NewNop(), ResolverFunc(func(ctx context.Context) (*models.Session, error) {
			return session, nil
		}))

		decision := g.Check(ctx, "/preview/rec-1")

		assert.Equal(t, StateAuthorized, decision.State)
		assert.Same(t, session, decision.Session)
		assert.Empty(t, decision.Redirect)
	})

	t.Run("resolver failure is unauthorized", func(t *testing.T) {
		g := New(zap.NewNop(), ResolverFunc(func(ctx context.Context) (*models.Session, error) {
			return nil, errors.New("network down")
		}))

		decision := g.Check(ctx, "/new-patient")

		assert.Equal(t, StateUnauthorized, decision.State)
		assert.Equal(t, "/new-patient", NextLocation(decision.Redirect))
	})
}

func TestNextLocation(t *testing.T) {
	testCases := map[string]string{
		"/login?next=%2Fpreview%2Frec-1": "/preview/rec-1",
		"/login":                         DashboardLocation,
		"/login?next=https://evil.test":  DashboardLocation,
		"/login?next=%2F%2Fevil.test":    DashboardLocation,
		"/login?next=%2Flogin":           DashboardLocation,
	}
	for location, expected := range testCases {
		assert.Equal(t, expected, NextLocation(location), location)
	}
}

func TestLoginRedirect(t *testing.T) {
	assert.Equal(t, LoginLocation, LoginRedirect(""))
	assert.Equal(t, LoginLocation, LoginRedirect(LoginLocation))
	assert.Equal(t, "/login?next=%2Fdashboard", LoginRedirect("/dashboard"))
}
