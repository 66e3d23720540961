package middleware

import (
	"context"
	"net/http"
	"strings"

	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/ports/auth"
)

type ctxKey string

const sessionKey ctxKey = "session"

const (
	HeaderDebugUserID = "X-Debug-User-ID"
	HeaderDebugRole   = "X-Debug-Role"
)

// SessionContext pone una auth.Session explícita en el context de cada request:
//   - verifier == nil (modo dev): parte de la sesión estática def; X-Debug-User-ID / X-Debug-Role la pisan.
//   - verifier != nil: Bearer token => Verify(); si falla o no hay token, el request sigue sin sesión.
//
// Los handlers deciden 403; este middleware nunca corta el request.
func SessionContext(def auth.Session, verifier auth.Verifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				s := def
				if uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID)); uid != "" {
					s.UserID = uid
					s.Username = uid
				}
				if role := strings.TrimSpace(r.Header.Get(HeaderDebugRole)); role != "" {
					s.Role = role
				}
				next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			s, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Warn("session verify failed", map[string]any{"err": err, "path": r.URL.Path})
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func GetSession(ctx context.Context) (auth.Session, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return auth.Session{}, false
	}
	s, ok := v.(auth.Session)
	return s, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
