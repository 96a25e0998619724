package middlewares

import (
	"context"
	"net/http"
	"strings"

	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/exceptions"
	"emr-gateway-service/internal/pkg/utils"
)

// Authenticate validates the dashboard's bearer token and hydrates the
// request context with the Redis-backed session it points at. Requests that
// fail here are never audited: there is no identified user to attribute.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		sessionID, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		sessionData, err := m.RedisRepository.Get(r.Context(), sessionID)
		if err != nil || sessionData == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionInvalid(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, sessionData)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
