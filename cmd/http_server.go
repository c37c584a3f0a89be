package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SamridhiParajuli/store-dashboard/internal"
	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	authzPostgres "github.com/SamridhiParajuli/store-dashboard/internal/authz/postgres"
	"github.com/SamridhiParajuli/store-dashboard/internal/department"
	departmentPostgres "github.com/SamridhiParajuli/store-dashboard/internal/department/postgres"
	"github.com/SamridhiParajuli/store-dashboard/internal/session"
	sessionPostgres "github.com/SamridhiParajuli/store-dashboard/internal/session/postgres"
	"github.com/SamridhiParajuli/store-dashboard/internal/task"
	taskPostgres "github.com/SamridhiParajuli/store-dashboard/internal/task/postgres"
	"github.com/SamridhiParajuli/store-dashboard/internal/transport/rest"
	"github.com/SamridhiParajuli/store-dashboard/internal/transport/swagger"
	"github.com/SamridhiParajuli/store-dashboard/internal/user"
	userPostgres "github.com/SamridhiParajuli/store-dashboard/internal/user/postgres"
	"github.com/SamridhiParajuli/store-dashboard/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	AuthzSvc *authz.Service
	Eval     *authz.Evaluator
	Session  *session.Service
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Eval, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := swagger.ValidateSpec(ctx, "./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("openapi spec invalid: %w", err)
	}

	// Authorization engine
	permissionRepo := authzPostgres.NewPermissionRepository(gormDB)
	rolePermissionRepo := authzPostgres.NewRolePermissionRepository(gormDB)
	catalog := authz.NewCatalog(permissionRepo, log)
	matrix := authz.NewMatrix(rolePermissionRepo, catalog, log)
	authzSvc := authz.NewService(catalog, matrix, log)

	warnings, err := authzSvc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load permission catalog: %w", err)
	}
	for _, w := range warnings {
		log.Warn("role permissions unavailable, role starts with no grants", "role", w.Role, "error", w.Err)
	}

	evaluator := authz.NewEvaluator(authz.DefaultResourceMap(), matrix, catalog, log)

	// Session and identity
	userSessionRepo := sessionPostgres.NewUserRepository(gormDB)
	sessionRepo := sessionPostgres.NewSessionRepository(gormDB)
	tokens := session.NewJWTTokenGenerator(config.Security.AccessTokenSecret, config.Security.AccessTokenDuration)
	sessionCtx := session.NewContext()
	sessionSvc := session.NewService(userSessionRepo, sessionRepo, tokens, nil, sessionCtx, config.Security.SessionDuration, log)

	if err := sessionSvc.Hydrate(); err != nil {
		log.Warn("session hydration failed", "error", err)
	}

	// Domain services
	taskSvc := task.NewService(taskPostgres.NewTaskRepository(gormDB), evaluator, log)
	departmentSvc := department.NewService(departmentPostgres.NewDepartmentRepository(gormDB), log)
	userSvc := user.NewService(userPostgres.NewUserRepository(gormDB), config.Security.BCryptCost, log)

	handlers := rest.Handlers{
		Session:    session.NewHandler(sessionSvc),
		Authz:      authz.NewHandler(authzSvc),
		User:       user.NewHandler(userSvc),
		Task:       task.NewHandler(taskSvc),
		Department: department.NewHandler(departmentSvc),
	}

	return &Dependencies{
		Config:   config,
		Logger:   log,
		DB:       db,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		AuthzSvc: authzSvc,
		Eval:     evaluator,
		Session:  sessionSvc,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the existing connection pool so the ORM and sqlx
// share one pool instead of opening a second one.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
