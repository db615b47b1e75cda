// @title DevLink Backend API
// @version 1.0
// @description DevLink Backend API for developer connection requests
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "DEVLINK_BACK-END/docs" // This is required for swagger
	"DEVLINK_BACK-END/internal/config"
	"DEVLINK_BACK-END/internal/database"
	"DEVLINK_BACK-END/internal/handlers"
	"DEVLINK_BACK-END/internal/logger"
	"DEVLINK_BACK-END/internal/middleware"
	"DEVLINK_BACK-END/internal/notify"
	"DEVLINK_BACK-END/internal/repository"
	"DEVLINK_BACK-END/internal/routes"
	"DEVLINK_BACK-END/internal/services"
)

// store is the storage backend selected by DB_DRIVER
type store struct {
	users    services.UserRepository
	requests services.ConnectionRepository
	pinger   handlers.Pinger
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*store, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		mem := repository.NewMemoryStore()
		return &store{users: mem.Users(), requests: mem.Connections(), close: func() {}}, nil
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.SQL); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("database migrations applied")
	}

	return &store{
		users:    repository.NewPostgresUserRepository(db.SQL),
		requests: repository.NewPostgresConnectionRepository(db.SQL),
		pinger:   db,
		close:    db.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck
	for _, w := range cfg.Warnings() {
		zl.Warn(w)
	}

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := openStore(bootCtx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.close()

	// --- Services ---
	tokens := middleware.NewTokenService(&cfg.JWT)
	hasher := services.NewPasswordHasher(cfg.Security.BcryptCost)
	dispatcher := notify.NewDispatcher(notify.NewMailer(&cfg.Email), log, cfg.Email.SendTimeout)

	authService, err := services.NewAuthService(st.users, hasher)
	if err != nil {
		return err
	}
	profileService := services.NewProfileService(st.users)
	connService := services.NewConnectionService(st.users, st.requests, dispatcher, log)

	// --- HTTP Handlers ---
	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService, tokens, &cfg.JWT),
		Google:  handlers.NewGoogleAuthHandler(authService, tokens, cfg),
		Profile: handlers.NewProfileHandler(profileService, authService),
		Request: handlers.NewRequestHandler(connService),
		User:    handlers.NewUserHandler(connService),
		Health:  handlers.NewHealthHandler(st.pinger),
	}
	guard := middleware.NewSessionGuard(tokens, st.users, cfg.JWT.CookieName)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.SetupRoutes(h, guard, cfg.CORS, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	// let in-flight notifications finish before the store goes away
	dispatcher.Close()
	log.Info("server stopped")
	return nil
}
