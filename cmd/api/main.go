package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/voicebyte/internal/adapters/cache"
	"github.com/zatekoja/voicebyte/internal/adapters/database"
	"github.com/zatekoja/voicebyte/internal/adapters/events"
	"github.com/zatekoja/voicebyte/internal/api/handlers"
	"github.com/zatekoja/voicebyte/internal/api/middleware"
	"github.com/zatekoja/voicebyte/internal/api/routes"
	"github.com/zatekoja/voicebyte/internal/application/services"
	"github.com/zatekoja/voicebyte/internal/domain/providers"
	"github.com/zatekoja/voicebyte/internal/infrastructure/clients/openai"
	"github.com/zatekoja/voicebyte/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/voicebyte/internal/infrastructure/clients/redis"
	"github.com/zatekoja/voicebyte/internal/infrastructure/notifications"
	"github.com/zatekoja/voicebyte/internal/infrastructure/observability"
	"github.com/zatekoja/voicebyte/pkg/config"
	"github.com/zatekoja/voicebyte/pkg/retry"
	"github.com/zatekoja/voicebyte/pkg/secrets"
)

func main() {
	// Vault credentials must be in the environment before config.Load
	vaultResult, vaultErr := secrets.Apply(context.Background(), secrets.ConfigFromEnv())

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	if vaultErr != nil {
		log.Warn().Err(vaultErr).Str("path", vaultResult.Path).Msg("failed to load secrets from Vault")
	} else if vaultResult.Enabled {
		log.Info().Strs("loaded", vaultResult.Loaded).Strs("skipped", vaultResult.Skipped).Msg("secrets loaded from Vault")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			observability.ForwardLogsToOTel()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	patientAdapter := database.NewPatientAdapter(pgClient)
	if err := patientAdapter.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	// Redis is optional: tokens fall back to counting rows, queue events are off
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without it")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var eventBus providers.EventBus
	var sseHandler *handlers.SSEHandler
	if redisClient != nil {
		bus := events.NewRedisEventBus(redisClient)
		defer func() {
			if err := bus.Close(); err != nil {
				log.Error().Err(err).Msg("error closing event bus")
			}
		}()
		eventBus = bus
		sseHandler = handlers.NewSSEHandler(bus)
	}

	var reasoningProvider providers.ReasoningProvider
	if client, err := openai.NewClient(&cfg.Reasoning); err != nil {
		log.Warn().Err(err).Msg("reasoning service disabled, using local fallbacks")
	} else {
		reasoningProvider = client
	}
	reasoning := services.NewReasoningService(reasoningProvider, retry.ReasoningPolicy(cfg.Reasoning.AttemptTimeout))

	sms := notifications.NewFast2SMSSender(cfg.SMS)
	if !sms.IsConfigured() {
		log.Warn().Msg("FAST2SMS_KEY not set, SMS delivery disabled")
	}
	notifier := services.NewNotificationService(sms)

	if cfg.Admin.Password == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, admin routes are locked")
	}

	tokens := cache.NewTokenSequencer(redisClient, patientAdapter)
	triage := services.NewTriageService(reasoning)
	registration := services.NewRegistrationService(patientAdapter, tokens, triage, notifier, eventBus)
	queue := services.NewQueueService(patientAdapter, notifier, eventBus)

	router := routes.NewRouter(
		handlers.NewIntakeHandler(
			services.NewLanguageService(reasoning),
			services.NewExtractionService(reasoning),
			registration,
			queue,
		),
		handlers.NewAdminHandler(queue, cfg.Admin.Password),
		sseHandler,
		middleware.AllowedOriginsFromEnv(),
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router.SetupRoutes(),
		ReadTimeout: 15 * time.Second,
		// No write timeout: /admin/events streams stay open and a fully
		// retried reasoning call can take close to half a minute.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
