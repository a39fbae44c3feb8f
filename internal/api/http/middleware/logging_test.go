package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/micropost-server/internal/testutil"
)

func TestLogging(t *testing.T) {
	t.Run("assigns request id and exposes it downstream", func(t *testing.T) {
		var fromContext string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := RequestIDFromContext(r.Context())
			require.True(t, ok)
			fromContext = id
			w.WriteHeader(http.StatusTeapot)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/anything", nil)

		Logging(testutil.MakeNoopLogger())(next).ServeHTTP(rec, req)

		header := rec.Header().Get("X-Request-ID")
		assert.NotEmpty(t, header)
		assert.Equal(t, header, fromContext)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("ids differ between requests", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		wrapped := Logging(testutil.MakeNoopLogger())(next)

		first := httptest.NewRecorder()
		wrapped.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
		second := httptest.NewRecorder()
		wrapped.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEqual(t, first.Header().Get("X-Request-ID"), second.Header().Get("X-Request-ID"))
	})
}

func TestClientIP(t *testing.T) {
	tests := map[string]struct {
		remoteAddr   string
		realIP       string
		forwardedFor string
		want         string
	}{
		"socket peer": {
			remoteAddr: "10.0.0.9:4242",
			want:       "10.0.0.9",
		},
		"x-real-ip wins": {
			remoteAddr: "10.0.0.9:4242",
			realIP:     "203.0.113.7",
			want:       "203.0.113.7",
		},
		"x-forwarded-for when no real ip": {
			remoteAddr:   "10.0.0.9:4242",
			forwardedFor: "198.51.100.2",
			want:         "198.51.100.2",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}

			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
