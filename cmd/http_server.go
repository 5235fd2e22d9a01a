package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/leave-management/api"
	"github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/category"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/internal/transport/middleware"
	"github.com/frahmantamala/leave-management/internal/transport/rest"
	"github.com/frahmantamala/leave-management/internal/user"
	"github.com/frahmantamala/leave-management/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := startHTTPServer(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	},
}

type Dependencies struct {
	Config  *internal.Config
	Storage *Storage
	Router  *chi.Mux
	Logger  *slog.Logger
}

func startHTTPServer() error {
	deps, err := initializeDependencies()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Storage.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	}()

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrChan := make(chan error, 1)
	go func() {
		deps.Logger.Info("starting HTTP server", "address", addr, "driver", deps.Storage.Driver)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		deps.Logger.Info("received signal, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	deps.Logger.Info("server stopped")
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	storage, err := openStorage(config.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	router, err := NewRouter(config, storage, log)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	return &Dependencies{
		Config:  config,
		Storage: storage,
		Router:  router,
		Logger:  log,
	}, nil
}

// NewRouter assembles services and handlers over storage.
func NewRouter(config *internal.Config, storage *Storage, log *slog.Logger) (*chi.Mux, error) {
	base := transport.NewBaseHandler(log)

	userService := user.NewService(storage.Users, config.Security.BCryptCost, log)
	authService := auth.NewService(userService, auth.NewJWTTokenGenerator(config.Security), log)
	categoryService := category.NewService(config.Leave.Categories, log)
	leaveService := leave.NewService(storage.Leaves, categoryService, log)

	validator, err := middleware.NewOpenAPIValidator(api.Spec, base)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Handlers{
		Health:   rest.NewHealthHandler(base, storage.SQL, storage.Driver),
		Auth:     auth.NewHandler(base, authService),
		RBAC:     auth.NewRBACAuthorization(base),
		User:     user.NewHandler(base, userService),
		Category: category.NewHandler(base, categoryService),
		Leave:    leave.NewHandler(base, leaveService),
		OpenAPI:  validator,
	}, config.Server, base, log)

	return router, nil
}

// OpenStorage exposes the driver switch to embedders and end-to-end tests.
func OpenStorage(cfg internal.DatabaseConfig, log *slog.Logger) (*Storage, error) {
	return openStorage(cfg, log)
}
