// Package main is the entry point for the hingmart API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hingmart/internal/config"
	"hingmart/internal/core/tx"
	"hingmart/internal/domain/auth"
	"hingmart/internal/domain/company"
	"hingmart/internal/domain/invoice"
	"hingmart/internal/domain/orders"
	"hingmart/internal/infrastructure/document"
	v1 "hingmart/internal/infrastructure/http/v1"
	"hingmart/internal/infrastructure/http/v1/handlers"
	"hingmart/internal/infrastructure/remote"
	"hingmart/internal/infrastructure/storage/memory"
	"hingmart/internal/infrastructure/storage/postgres"
	"hingmart/pkg/logger"
	"hingmart/pkg/numerator"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Infow("starting hingmart server", "backend", cfg.StorageBackend)

	var (
		orderRepo   orders.Repository
		companyRepo company.Repository
		userRepo    auth.UserRepository
		tokenRepo   auth.TokenRepository
		seqSource   numerator.Source
		txManager   tx.Manager
		audit       orders.AuditLogger
		pinger      handlers.Pinger
	)

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.PGDSN))
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatalw("failed to apply schema", "error", err)
		}
		log.Info("database connection established")

		txm := postgres.NewTxManager(pool)
		auditSvc, err := postgres.NewAuditService(txm)
		if err != nil {
			log.Fatalw("failed to create audit service", "error", err)
		}

		pgUsers := postgres.NewUserRepo(txm)
		orderRepo = postgres.NewOrderRepo(txm)
		companyRepo = postgres.NewCompanyRepo(txm)
		userRepo = pgUsers
		tokenRepo = pgUsers
		seqSource = postgres.NewSequenceStore(txm)
		txManager = txm
		audit = auditSvc
		pinger = pool

	default:
		store := memory.NewUserStore()
		orderRepo = memory.NewOrderStore()
		companyRepo = memory.NewCompanyStore()
		userRepo = store
		tokenRepo = store
		seqSource = memory.NewSequenceStore()
	}

	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.AccessTokenTTL = cfg.AccessTokenTTL
	jwtService := auth.NewJWTService(jwtConfig)

	authService := auth.NewService(userRepo, tokenRepo, txManager, jwtService, auth.DefaultServiceConfig())
	ordersService := orders.NewService(orderRepo, txManager, audit)
	companyService := company.NewService(companyRepo, log)
	invoiceService := invoice.NewService(ordersService, companyService, numerator.New(seqSource))

	renderer, err := document.NewHTMLRenderer()
	if err != nil {
		log.Fatalw("failed to create document renderer", "error", err)
	}

	syncCtx, stopSync := context.WithCancel(ctx)
	defer stopSync()
	if cfg.RemoteEnabled {
		client := remote.New(remote.Config{
			BaseURL:  cfg.RemoteBaseURL,
			Email:    cfg.RemoteEmail,
			Password: cfg.RemotePassword,
			Timeout:  cfg.RemoteTimeout,
		}, log)
		go runSyncLoop(syncCtx, client, orderRepo, cfg.SyncInterval, log.WithComponent("sync-loop"))
	}

	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		JWTValidator:   jwtService,
		AuthService:    authService,
		OrdersService:  ordersService,
		CompanyService: companyService,
		InvoiceService: invoiceService,
		Renderer:       renderer,
		Storage:        pinger,
		Version:        version,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.AppAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopSync()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// runSyncLoop periodically mirrors the remote order list into local storage.
func runSyncLoop(ctx context.Context, client *remote.Client, local orders.Repository, interval time.Duration, log *logger.Logger) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := client.Sync(ctx, local); err != nil {
				log.Warnw("remote sync failed", "error", err)
			}
		}
	}
}
