package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/qaforum/qaforum-go/internal/model"
)

type contextKey string

const sessionKey contextKey = "session"

// unauthorizedMessage is the only answer a rejected request gets, whatever
// check failed.
const unauthorizedMessage = "invalid or expired token"

// TokenVerifier turns a session token into the session it proves.
type TokenVerifier interface {
	Verify(token string) (model.Session, error)
}

// Authorize returns middleware that verifies the token in the Authorization
// header and stores the resulting session in the request context. The header
// carries the bare token; a "Bearer " prefix is accepted too.
func Authorize(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get("Authorization"))
			token = strings.TrimPrefix(token, "Bearer ")
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			session, err := verifier.Verify(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the authenticated session from the request context.
func SessionFromContext(ctx context.Context) (model.Session, bool) {
	session, ok := ctx.Value(sessionKey).(model.Session)
	return session, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
