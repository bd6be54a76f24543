package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"

	"github.com/bazaarhq/bazaar-backend/api/controllers"
	"github.com/bazaarhq/bazaar-backend/api/routes"
	"github.com/bazaarhq/bazaar-backend/internal/catalog"
	"github.com/bazaarhq/bazaar-backend/internal/directory"
	"github.com/bazaarhq/bazaar-backend/internal/notify"
	"github.com/bazaarhq/bazaar-backend/internal/orders"
	"github.com/bazaarhq/bazaar-backend/internal/seed"
	"github.com/bazaarhq/bazaar-backend/internal/users"
	"github.com/bazaarhq/bazaar-backend/pkg/config"
	"github.com/bazaarhq/bazaar-backend/pkg/db"
	"github.com/bazaarhq/bazaar-backend/pkg/db/models"
	"github.com/bazaarhq/bazaar-backend/pkg/logger"
	"github.com/bazaarhq/bazaar-backend/pkg/metrics"
)

const serviceName = "bazaar-api"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(context.Background(), cfg, logg); err != nil {
		logg.Error(context.Background(), "service exited", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, dbErr := db.New(ctx, cfg.DB, logg)
	if dbErr != nil {
		return dbErr
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if migrateErr := models.AutoMigrate(dbClient.DB()); migrateErr != nil {
		return migrateErr
	}
	if cfg.DB.SeedDemoData {
		if seedErr := seed.Run(ctx, dbClient.DB()); seedErr != nil {
			return seedErr
		}
		logg.Info(ctx, "demo dataset seeded")
	}

	var publisher notify.Publisher = notify.Noop{}
	if cfg.Redis.Enabled() {
		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			return parseErr
		}
		opts.PoolSize = cfg.Redis.PoolSize
		opts.MinIdleConns = cfg.Redis.MinIdleConns
		redisClient := redis.NewClient(opts)
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()

		broadcaster, bErr := notify.NewRedisBroadcaster(redisClient, cfg.Redis.ChannelPrefix)
		if bErr != nil {
			return bErr
		}
		publisher = broadcaster
		logg.Info(ctx, "order broadcasts enabled")
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	directoryRepo := directory.NewRepository(dbClient.DB())
	userRepo := users.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())

	directoryService, svcErr := directory.NewService(directoryRepo)
	if svcErr != nil {
		return svcErr
	}
	catalogService, svcErr := catalog.NewService(catalogRepo, directoryRepo)
	if svcErr != nil {
		return svcErr
	}
	userService, svcErr := users.NewService(userRepo)
	if svcErr != nil {
		return svcErr
	}
	orderService, svcErr := orders.NewService(orders.ServiceParams{
		DBClient:  dbClient,
		Repo:      orderRepo,
		Products:  catalogRepo,
		Customers: userRepo,
		Branches:  directoryRepo,
		Publisher: publisher,
		Logger:    logg,
	})
	if svcErr != nil {
		return svcErr
	}

	var httpMetrics *metrics.HTTP
	if cfg.Metrics.Enabled {
		httpMetrics = metrics.NewHTTP(serviceName)
	}

	router := routes.New(routes.RouterParams{
		Logger:    logg,
		Metrics:   httpMetrics,
		Health:    controllers.NewHealthController(dbClient, logg),
		Products:  controllers.NewProductController(catalogService, logg),
		Directory: controllers.NewDirectoryController(directoryService, logg),
		Orders:    controllers.NewOrderController(orderService, logg),
		Users:     controllers.NewUserController(userService, logg),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", server.Addr), "http server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case serveErr := <-errCh:
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return shutdownErr
		}
	}

	return nil
}
