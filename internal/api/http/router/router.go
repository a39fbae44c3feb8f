package router

import (
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/dtroode/micropost-server/internal/api/http/handler"
	"github.com/dtroode/micropost-server/internal/api/http/middleware"
	"github.com/dtroode/micropost-server/internal/logger"
	"github.com/dtroode/micropost-server/internal/service"
)

// Options carries the adapter-level policy knobs.
type Options struct {
	RateLimitMax    int
	RateLimitWindow time.Duration
	CORSOrigins     []string
}

// Router assembles the HTTP handlers and middleware chain.
type Router struct {
	accountService *service.Account
	postService    *service.Post
	authService    *service.Auth
	options        Options
	logger         *logger.Logger
	limiter        *middleware.RateLimiter
}

// New creates a new Router over the given services.
func New(
	accountService *service.Account,
	postService *service.Post,
	authService *service.Auth,
	options Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		accountService: accountService,
		postService:    postService,
		authService:    authService,
		options:        options,
		logger:         logger,
	}
}

// Register builds the route table and wraps it with CORS, rate
// limiting and request logging. Mutations on existing records require
// a bearer token; registration and reads do not.
func (r *Router) Register() http.Handler {
	accountHandler := handler.NewAccount(r.accountService, r.postService, r.logger)
	postHandler := handler.NewPost(r.postService, r.logger)
	authHandler := handler.NewAuth(r.authService, r.logger)

	authn := middleware.NewAuthenticate(r.authService, r.logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return authn.Handler(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /api/auth/token", authHandler.Token)

	mux.HandleFunc("GET /api/accounts", accountHandler.List)
	mux.HandleFunc("GET /api/accounts/recent", accountHandler.Recent)
	// Lives outside /api/accounts/{...} so the wildcard patterns stay
	// unambiguous for the mux.
	mux.HandleFunc("GET /api/roles/{role}/accounts", accountHandler.ByRole)
	mux.HandleFunc("POST /api/accounts", accountHandler.Create)
	mux.HandleFunc("GET /api/accounts/{id}", accountHandler.Get)
	mux.HandleFunc("GET /api/accounts/{id}/posts", accountHandler.Posts)
	mux.Handle("PATCH /api/accounts/{id}", protected(accountHandler.Update))
	mux.Handle("DELETE /api/accounts/{id}", protected(accountHandler.Delete))

	mux.HandleFunc("GET /api/posts", postHandler.List)
	mux.HandleFunc("GET /api/posts/{id}", postHandler.Get)
	mux.Handle("POST /api/posts", protected(postHandler.Create))
	mux.Handle("PATCH /api/posts/{id}", protected(postHandler.Update))
	mux.Handle("DELETE /api/posts/{id}", protected(postHandler.Delete))

	mux.HandleFunc("GET /api/stats", accountHandler.Stats)

	var chain http.Handler = mux
	chain = middleware.Logging(r.logger)(chain)

	if r.options.RateLimitMax > 0 {
		r.limiter = middleware.NewRateLimiter(r.options.RateLimitMax, r.options.RateLimitWindow)
		chain = r.limiter.Handler(chain)
	}

	corsOptions := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(r.options.CORSOrigins) > 0 {
		corsOptions.AllowedOrigins = r.options.CORSOrigins
	}
	chain = cors.New(corsOptions).Handler(chain)

	return chain
}

// Close releases background resources held by the middleware chain.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Stop()
	}
}
