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

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/auth"
	authpg "github.com/frahmantamala/employee-directory/internal/auth/postgres"
	"github.com/frahmantamala/employee-directory/internal/division"
	divisionpg "github.com/frahmantamala/employee-directory/internal/division/postgres"
	"github.com/frahmantamala/employee-directory/internal/employee"
	employeepg "github.com/frahmantamala/employee-directory/internal/employee/postgres"
	"github.com/frahmantamala/employee-directory/internal/storage"
	"github.com/frahmantamala/employee-directory/internal/transport/rest"
	"github.com/frahmantamala/employee-directory/internal/transport/swagger"
	"github.com/frahmantamala/employee-directory/internal/user"
	userpg "github.com/frahmantamala/employee-directory/internal/user/postgres"
	"github.com/frahmantamala/employee-directory/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
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
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

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
	ctx := context.Background()

	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	// A broken OpenAPI document only degrades the docs endpoints, so log
	// and keep starting up.
	if _, err := swagger.LoadSpec(ctx, "./api/openapi.yml"); err != nil {
		appLogger.Warn("openapi spec unavailable", "error", err)
	}

	fileStore, err := storage.NewFileStore(ctx, config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	staticDir := ""
	if local, ok := fileStore.(*storage.LocalStore); ok {
		staticDir = local.BasePath()
	}

	authRepo := authpg.NewRepository(gormDB)
	authService := auth.NewService(authRepo, appLogger, config.Security.TokenLength)
	authHandler := auth.NewHandler(authService)

	divisionRepo := divisionpg.NewDivisionRepository(gormDB)
	divisionService := division.NewService(divisionRepo, appLogger)
	divisionHandler := division.NewHandler(divisionService)

	employeeRepo := employeepg.NewEmployeeRepository(gormDB)
	employeeService := employee.NewService(employeeRepo, fileStore, appLogger)
	employeeHandler := employee.NewHandler(employeeService)

	userRepo := userpg.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, appLogger, config.Security.BCryptCost)
	userHandler := user.NewHandler(userService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		Config:          config,
		DB:              db.DB,
		AuthHandler:     authHandler,
		DivisionHandler: divisionHandler,
		EmployeeHandler: employeeHandler,
		UserHandler:     userHandler,
		StaticDir:       staticDir,
		Logger:          appLogger,
	})

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: appLogger,
	}, nil
}

// initDB opens the pgx stdlib connection used both directly (health checks)
// and as the connection underneath gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the existing *sql.DB. TranslateError turns driver unique
// violations into gorm.ErrDuplicatedKey, which the services rely on.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
}
