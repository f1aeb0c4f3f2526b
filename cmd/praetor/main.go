package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/praetor-admin/praetor-admin/internal/app"
	"github.com/praetor-admin/praetor-admin/internal/auth"
	"github.com/praetor-admin/praetor-admin/internal/employees"
	"github.com/praetor-admin/praetor-admin/internal/observability"
	"github.com/praetor-admin/praetor-admin/internal/permissions"
	"github.com/praetor-admin/praetor-admin/internal/platform/cache"
	"github.com/praetor-admin/praetor-admin/internal/platform/db"
	"github.com/praetor-admin/praetor-admin/internal/projects"
	"github.com/praetor-admin/praetor-admin/internal/rbac"
	"github.com/praetor-admin/praetor-admin/internal/roles"
	"github.com/praetor-admin/praetor-admin/internal/shared"
	"github.com/praetor-admin/praetor-admin/internal/token"
	"github.com/praetor-admin/praetor-admin/internal/users"
	"github.com/praetor-admin/praetor-admin/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens, err := token.NewService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("init token service", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)
	rbacMiddleware := rbac.Middleware{Logger: logger, Metrics: metrics}
	catalogCache := cache.NewJSONCache(redisClient, "praetor:catalog:version", 10*time.Minute)

	mailClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := mailClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	permissionsService := permissions.NewService(permissions.NewRepository(pool), auditLogger, catalogCache)
	permissionsHandler := permissions.NewHandler(logger, permissionsService, rbacMiddleware)

	rolesService := roles.NewService(roles.NewRepository(pool), auditLogger, catalogCache)
	rolesHandler := roles.NewHandler(logger, rolesService, rbacMiddleware)

	usersService := users.NewService(users.NewRepository(pool), auditLogger, mailClient)
	usersHandler := users.NewHandler(logger, usersService, rbacMiddleware)

	authService := auth.NewService(usersService, tokens)
	authHandler := auth.NewHandler(logger, authService, metrics)

	employeesService := employees.NewService(employees.NewRepository(pool), auditLogger)
	employeesHandler := employees.NewHandler(logger, employeesService, rbacMiddleware)

	projectsService := projects.NewService(projects.NewRepository(pool), auditLogger)
	projectsHandler := projects.NewHandler(logger, projectsService, rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Tokens:             tokens,
		AuthHandler:        authHandler,
		PermissionsHandler: permissionsHandler,
		RolesHandler:       rolesHandler,
		UsersHandler:       usersHandler,
		EmployeesHandler:   employeesHandler,
		ProjectsHandler:    projectsHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
