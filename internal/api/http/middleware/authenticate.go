package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dtroode/micropost-server/internal/logger"
	"github.com/dtroode/micropost-server/internal/model"
)

// AccountVerifier resolves an account from a bearer token.
type AccountVerifier interface {
	Verify(ctx context.Context, bearer string) (model.Account, error)
}

// Authenticate validates bearer tokens and injects the caller's
// account into the request context.
type Authenticate struct {
	verifier AccountVerifier
	logger   *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier AccountVerifier, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, logger: logger}
}

type accountKey struct{}

// AccountFromContext returns the authenticated account set by Handler.
func AccountFromContext(ctx context.Context) (model.Account, bool) {
	account, ok := ctx.Value(accountKey{}).(model.Account)
	return account, ok
}

// Handler rejects requests without a valid bearer token.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer := r.Header.Get("Authorization")
		if bearer == "" {
			m.unauthorized(w, "missing authorization token")
			return
		}

		account, err := m.verifier.Verify(r.Context(), bearer)
		if err != nil {
			m.logger.Info("rejected bearer token", "error", err.Error())
			m.unauthorized(w, "invalid authorization token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey{}, account)))
	})
}

func (m *Authenticate) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
