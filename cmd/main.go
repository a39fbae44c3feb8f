package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dtroode/micropost-server/internal/api/http/router"
	"github.com/dtroode/micropost-server/internal/config"
	"github.com/dtroode/micropost-server/internal/logger"
	"github.com/dtroode/micropost-server/internal/model"
	"github.com/dtroode/micropost-server/internal/repository/document"
	"github.com/dtroode/micropost-server/internal/server"
	"github.com/dtroode/micropost-server/internal/service"
	"github.com/dtroode/micropost-server/internal/storage/jsonfile"
	"github.com/dtroode/micropost-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	// A malformed document is fatal: the server must refuse to run
	// rather than operate on corrupted state.
	store, err := jsonfile.NewStore(ctx, cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "path", cfg.Database.Path)
	}

	accountRepo := document.NewAccountRepository(store)
	postRepo := document.NewPostRepository(store)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	if err != nil {
		logger.Fatal("failed to create token manager", "error", err)
	}

	accountService := service.NewAccount(accountRepo, logger.Component("account"))
	postService := service.NewPost(postRepo, logger.Component("post"))
	authService := service.NewAuth(accountRepo, tokenManager, logger.Component("auth"))

	r := router.New(accountService, postService, authService, router.Options{
		RateLimitMax:    cfg.RateLimit.MaxRequests,
		RateLimitWindow: cfg.RateLimit.Window,
		CORSOrigins:     cfg.CORS.Origins,
	}, logger)

	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	r.Close()
	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
