package middlewares

import (
	"context"
	"crypto/subtle"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// RequireAPIKey rejects every request whose x-api-key header does not carry
// the deployment's API key.
func (m *Middlewares) RequireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		expected := m.InternalConfig.Backend.APIKey

		if apiKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			utils.LogSecurityEvent(m.Log, "invalid_api_key", utils.GetRequestID(r.Context()), "medium",
				zap.String("ip", r.RemoteAddr),
				zap.String("endpoint", r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
