package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/neon-eshop/internal/cart"
	"github.com/nikolayk812/neon-eshop/internal/catalog"
	"github.com/nikolayk812/neon-eshop/internal/config"
	"github.com/nikolayk812/neon-eshop/internal/events"
	"github.com/nikolayk812/neon-eshop/internal/port"
	"github.com/nikolayk812/neon-eshop/internal/present"
	"github.com/nikolayk812/neon-eshop/internal/repository"
	"github.com/nikolayk812/neon-eshop/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP storefront",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := cfg.Engine()
	if err != nil {
		return fmt.Errorf("cfg.Engine: %w", err)
	}
	promos, err := cfg.PromoBook()
	if err != nil {
		return fmt.Errorf("cfg.PromoBook: %w", err)
	}

	repo, closeRepo, err := openRepository(ctx, cfg.Storage, engine.Currency())
	if err != nil {
		return fmt.Errorf("openRepository: %w", err)
	}
	defer closeRepo()

	bus := events.NewBus(logger)
	bus.Subscribe(events.LogHandler(logger))
	tracker := events.NewAddedTracker()
	bus.Subscribe(tracker.Handle)

	hub := present.NewHub(logger)

	registry := cart.NewRegistry(func(ownerID string) (*cart.Store, error) {
		return cart.NewStore(ownerID, repo,
			cart.WithEngine(engine),
			cart.WithPromoBook(promos),
			cart.WithPublisher(bus),
			cart.WithLogger(logger),
		)
	},
		cart.OnCreate(hub.Attach),
		cart.OnEvict(hub.Detach),
		cart.OnEvict(tracker.Forget),
	)

	app, err := web.NewApp(web.Deps{
		Catalog:  catalog.New(engine.Currency()),
		Registry: registry,
		Hub:      hub,
		Tracker:  tracker,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("web.NewApp: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           web.NewRouter(app, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http_listen", zap.String("addr", cfg.HTTP.Addr), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		idle := cfg.GetSessionIdle()
		ticker := time.NewTicker(idle / 2)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := registry.Sweep(idle); n > 0 {
					logger.Debug("idle carts evicted", zap.Int("count", n), zap.Int("remaining", registry.Len()))
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown_begin")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		logger.Info("shutdown_complete")
		return nil
	})

	return g.Wait()
}

func openRepository(ctx context.Context, sc config.StorageConfig, cur currency.Unit) (port.CartRepository, func(), error) {
	switch sc.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, sc.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}
		return repository.NewCart(pool), pool.Close, nil

	case config.DriverLocal:
		sqlDB, err := repository.OpenSQLite(ctx, sc.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.OpenSQLite: %w", err)
		}
		repo, err := repository.NewLocalCart(sqlDB, cur)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("repository.NewLocalCart: %w", err)
		}
		return repo, func() { _ = sqlDB.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("storage driver[%s] is not supported", sc.Driver)
	}
}
