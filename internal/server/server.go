package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gestion-rh/apiserver/config"
	"github.com/gestion-rh/apiserver/internal/audit"
	"github.com/gestion-rh/apiserver/internal/db"
	"github.com/gestion-rh/apiserver/internal/handlers"
	"github.com/gestion-rh/apiserver/internal/services"
	"github.com/gestion-rh/apiserver/internal/storage"
	"github.com/gestion-rh/apiserver/internal/store"
	"github.com/gestion-rh/apiserver/internal/sysmon"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/op/go-logging"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	recorder   *audit.Recorder
	log        *logging.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config, log *logging.Logger) (*Server, error) {
	jwtSecret := strings.TrimSpace(cfg.JWT.Secret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	recorder, err := newRecorder(ctx, cfg, log)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	photos, err := newPhotoStore(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		_ = recorder.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	teamRepo := store.NewTeamRepository(dbConn)
	employeeRepo := store.NewEmployeeRepository(dbConn)

	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo)
	employeeService := services.NewEmployeeService(employeeRepo, userRepo, teamRepo)
	authService := services.NewAuthService(
		userRepo,
		jwtSecret,
		cfg.JWT.AccessTTL,
		cfg.JWT.RefreshTTL,
		log,
		recorder,
	)
	maintenanceService := services.NewMaintenanceService(
		sysmon.NewMonitor(cfg.Sysmon.DiskPath),
		log,
		recorder,
	)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, authService, log)
	router.Route("/teams", func(r chi.Router) {
		handlers.TeamRouter(r, teamService, log)
	})
	router.Route("/employees", func(r chi.Router) {
		handlers.EmployeeRouter(r, employeeService, photos, log)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, log)
	})
	router.Route("/maintenance", func(r chi.Router) {
		handlers.MaintenanceRouter(r, maintenanceService, log)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		recorder:   recorder,
		log:        log,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.Infof("serveur démarré sur %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	_ = s.recorder.Close()
	return s.httpServer.Close()
}

// newRecorder selects the audit broker from config. Returns nil (auditing
// disabled) when no backend is configured.
func newRecorder(ctx context.Context, cfg config.Config, log *logging.Logger) (*audit.Recorder, error) {
	switch cfg.Audit.Backend {
	case "":
		return nil, nil
	case "rabbitmq":
		backend, err := audit.NewRabbitMQBackend(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return audit.NewRecorder(backend, cfg.Audit.Channel, log), nil
	case "pubsub":
		backend, err := audit.NewPubSubBackend(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return audit.NewRecorder(backend, cfg.Audit.Channel, log), nil
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Audit.Backend)
	}
}

// newPhotoStore selects the photo storage backend from config. Returns nil
// (photo endpoints disabled) when no backend is configured.
func newPhotoStore(ctx context.Context, cfg config.Config) (*storage.PhotoStore, error) {
	var backend storage.ObjectStorage
	switch cfg.Storage.Backend {
	case "":
		return nil, nil
	case "minio":
		minioBackend, err := storage.NewMinioBackend(cfg.Minio)
		if err != nil {
			return nil, err
		}
		backend = minioBackend
	case "gcs":
		gcsBackend, err := storage.NewGCSBackend(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		backend = gcsBackend
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	photos := storage.NewPhotoStore(backend)
	if err := photos.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return photos, nil
}
