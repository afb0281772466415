package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/apiarylab/swarmtrack/internal/common/clock"
	"github.com/apiarylab/swarmtrack/internal/common/uuid"
	"github.com/apiarylab/swarmtrack/internal/config"
	"github.com/apiarylab/swarmtrack/internal/handlers/httpapi"
	"github.com/apiarylab/swarmtrack/internal/hives"
	"github.com/apiarylab/swarmtrack/internal/logging"
	"github.com/apiarylab/swarmtrack/internal/ownership"
	alertRepo "github.com/apiarylab/swarmtrack/internal/repositories/alert"
	colonyRepo "github.com/apiarylab/swarmtrack/internal/repositories/colony"
	sessionRepo "github.com/apiarylab/swarmtrack/internal/repositories/session"
	"github.com/apiarylab/swarmtrack/internal/services/alerting"
	"github.com/apiarylab/swarmtrack/internal/services/introduction"
	"github.com/apiarylab/swarmtrack/internal/services/registry"
	sessionService "github.com/apiarylab/swarmtrack/internal/services/session"
	"github.com/apiarylab/swarmtrack/internal/services/stats"
)

func main() {
	// Local development convenience; absence is fine in production
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("SWARMTRACK_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.Debug)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	colonies, err := colonyRepo.NewRedis(&colonyRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create colony repository: %v", err)
	}

	alerts, err := alertRepo.NewRedis(&alertRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create alert repository: %v", err)
	}

	guard, err := ownership.NewRedis(&ownership.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create ownership guard: %v", err)
	}

	hiveRegistry, err := hives.NewRedis(&hives.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create hive registry: %v", err)
	}

	sysClock := &clock.DefaultClock{}
	uuider := uuid.New()

	sessionSvc, err := sessionService.New(&sessionService.Config{
		SessionRepo: sessions,
		Guard:       guard,
		Clock:       sysClock,
		UUID:        uuider,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	registrySvc, err := registry.New(&registry.Config{
		SessionRepo: sessions,
		ColonyRepo:  colonies,
		Hives:       hiveRegistry,
		Guard:       guard,
		Clock:       sysClock,
		UUID:        uuider,
	})
	if err != nil {
		log.Fatalf("Failed to create registry service: %v", err)
	}

	alertingSvc, err := alerting.New(&alerting.Config{
		AlertRepo:        alerts,
		Clock:            sysClock,
		UUID:             uuider,
		DefaultDaysAhead: cfg.Alerts.DaysAhead,
		DefaultGraceDays: cfg.Alerts.GraceDays,
	})
	if err != nil {
		log.Fatalf("Failed to create alerting service: %v", err)
	}

	introductionSvc, err := introduction.New(&introduction.Config{
		SessionRepo:  sessions,
		ColonyRepo:   colonies,
		Alerts:       alertingSvc,
		Guard:        guard,
		Clock:        sysClock,
		UUID:         uuider,
		MinDelayDays: cfg.Introductions.MinDelayDays,
		MaxDelayDays: cfg.Introductions.MaxDelayDays,
	})
	if err != nil {
		log.Fatalf("Failed to create introduction service: %v", err)
	}

	statsSvc, err := stats.New(&stats.Config{
		SessionRepo: sessions,
		ColonyRepo:  colonies,
		Guard:       guard,
	})
	if err != nil {
		log.Fatalf("Failed to create stats service: %v", err)
	}

	server, err := httpapi.New(&httpapi.Config{
		Addr:          cfg.HTTP.Addr,
		Sessions:      sessionSvc,
		Registry:      registrySvc,
		Introductions: introductionSvc,
		Alerts:        alertingSvc,
		Stats:         statsSvc,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("Failed to create HTTP server: %v", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("error stopping HTTP server", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("error closing Redis client", "error", err)
	}

	logger.Info("server has been shut down")
}
