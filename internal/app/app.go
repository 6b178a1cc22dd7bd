package app

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

	"admedia-backoffice/internal/config"
	"admedia-backoffice/internal/database"
	"admedia-backoffice/internal/handler"
	"admedia-backoffice/internal/middleware"
	"admedia-backoffice/internal/model"
	"admedia-backoffice/internal/repository"
	"admedia-backoffice/internal/router"
	"admedia-backoffice/internal/service"
	"admedia-backoffice/internal/storage"
	"admedia-backoffice/internal/token"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storage.New(cfg.AvatarRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize avatar storage: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	partyRepo := repository.NewPartyRepository(pool)
	expenseRepo := repository.NewExpenseRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	slog.Info("database ready")

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}

	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, tokens, auditService)
	userService := service.NewUserService(userRepo, auditService)
	avatarService := service.NewAvatarService(store, userRepo, auditService)
	expenseService := service.NewExpenseService(expenseRepo, partyRepo, auditService)
	orderService := service.NewOrderService(orderRepo, partyRepo, auditService)
	clientService := service.NewPartyService(model.PartyClient, partyRepo, auditService)
	providerService := service.NewPartyService(model.PartyProvider, partyRepo, auditService)

	if err := userService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed administrator: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Avatar:   handler.NewAvatarHandler(avatarService, cfg.MaxAvatarSize),
		Expense:  handler.NewExpenseHandler(expenseService),
		Order:    handler.NewOrderHandler(orderService),
		Client:   handler.NewPartyHandler(clientService),
		Provider: handler.NewPartyHandler(providerService),
		Audit:    handler.NewAuditHandler(auditService),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()
	slog.Info("server stopped")
	return nil
}
