// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"go-budget-api/config"
	"go-budget-api/db"
	"go-budget-api/events"
	"go-budget-api/handler"
	"go-budget-api/logger"
	"go-budget-api/repository"
	"go-budget-api/router"
	"go-budget-api/scheduler"
	"go-budget-api/service"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// App holds the wired layers of the service.
type App struct {
	DB        *sql.DB
	Router    http.Handler
	Recurring *service.RecurringService
	publisher events.Publisher
}

// New wires repositories, services and handlers on top of database.
// cache may be nil to disable the accounts cache.
func New(database *sql.DB, driver db.Driver, cfg config.Config, cache service.ICacheClient, publisher events.Publisher) *App {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	accountRepo := repository.NewAccountRepository(database, driver)
	transactionRepo := repository.NewTransactionRepository(database, driver)

	accountService := service.NewAccountService(accountRepo, cache, cfg.Redis.TTL)
	transactionService := service.NewTransactionService(database, accountRepo, transactionRepo, cfg.Savings.AccountName, cache, publisher)
	dataService := service.NewDataService(database, accountRepo, transactionRepo, cache)
	recurringService := service.NewRecurringService(accountRepo, transactionRepo, transactionService, cfg.Scheduler.TakeFromSavings)

	r := router.NewRouter(
		handler.NewHealthHandler(database),
		handler.NewAccountHandler(accountService),
		handler.NewTransactionHandler(transactionService),
		handler.NewDataHandler(dataService),
	)

	return &App{
		DB:        database,
		Router:    r,
		Recurring: recurringService,
		publisher: publisher,
	}
}

func newRedisClient(cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func Run() {
	if err := config.LoadConfig("."); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := config.AppConfig

	logger.Init()
	logger.SetLevel(cfg.Log.Level)
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, driver, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	// A nil interface keeps the services from touching redis.
	var cache service.ICacheClient
	if cfg.Redis.Enabled {
		client, err := newRedisClient(cfg)
		if err != nil {
			logger.Log.WithError(err).Warn("Redis unavailable, running without accounts cache")
		} else {
			defer client.Close()
			cache = client
			logger.Log.Info("Accounts cache enabled")
		}
	}

	publisher, err := events.NewPublisher(cfg)
	if err != nil {
		logger.Log.Fatalf("Error creating event publisher: %v", err)
	}

	application := New(database, driver, cfg, cache, publisher)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler.Cron, application.Recurring)
		if err != nil {
			logger.Log.Fatalf("Error creating scheduler: %v", err)
		}
		sched.Start()
	}

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop(ctx)
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %v", err)
	}
	if err := application.publisher.Close(); err != nil {
		logger.Log.WithError(err).Warn("Failed to close event publisher")
	}

	logger.Log.Info("Server exited properly")
}
