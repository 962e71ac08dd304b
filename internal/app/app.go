package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"railboard/internal/config"
	"railboard/internal/db"
	httpserver "railboard/internal/http"
	"railboard/internal/http/handlers"
	"railboard/internal/irail"
	"railboard/internal/redisstore"
	"railboard/internal/repository"
	"railboard/internal/scheduler"
	"railboard/internal/service"
)

const statusTTL = 24 * time.Hour

// App wires ingestor dependencies.
type App struct {
	server    *httpserver.Server
	scheduler *scheduler.Scheduler
	db        *sql.DB
	redis     *redis.Client
	logger    *zap.Logger
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.DSN())
	if err != nil {
		return nil, err
	}

	var (
		redisClient *redis.Client
		statusStore *redisstore.StatusStore
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = redisstore.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		statusStore = redisstore.NewStatusStore(redisClient, statusTTL)
	} else {
		logger.Info("run-status cache disabled, no redis address configured")
	}

	client := irail.NewClient(cfg.Liveboard.BaseURL, cfg.UpstreamTimeout(), logger)
	departureRepo := repository.NewDepartureRepository(sqlDB)
	ingestService := service.NewIngestService(client, departureRepo, logger)

	var recorder scheduler.StatusRecorder
	if statusStore != nil {
		recorder = statusStore
	}
	sched := scheduler.New(cfg.Stations, cfg.ScheduleInterval(), cfg.Schedule.Workers, ingestService, recorder, logger)

	var statusReader handlers.StatusReader
	if statusStore != nil {
		statusReader = statusStore
	}
	routes := httpserver.Routes{
		Fetch:  handlers.NewFetchHandler(ingestService, cfg.DefaultStation(), logger),
		Status: handlers.NewStatusHandler(cfg.Stations, statusReader, departureRepo, logger),
		Health: handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:    server,
		scheduler: sched,
		db:        sqlDB,
		redis:     redisClient,
		logger:    logger,
	}, nil
}

// Run starts the scheduled trigger and serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	go a.scheduler.Run(ctx)
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
