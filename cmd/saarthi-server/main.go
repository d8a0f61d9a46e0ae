// cmd/saarthi-server/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"loan-saarthi/internal/api"
	"loan-saarthi/internal/common/aws"
	"loan-saarthi/internal/common/camunda"
	"loan-saarthi/internal/common/config"
	"loan-saarthi/internal/common/database"
	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/common/observability"
	"loan-saarthi/internal/conversation"
	"loan-saarthi/internal/normalizer"
	"loan-saarthi/internal/notify"
	"loan-saarthi/internal/profiles"
	"loan-saarthi/internal/session"
	"loan-saarthi/internal/transcript"
	"loan-saarthi/internal/underwriting"

	ce "loan-saarthi/internal/workers/underwriting/check-eligibility"
	dv "loan-saarthi/internal/workers/underwriting/decide-verdict"
)

type readinessCheck func(ctx context.Context) error

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting saarthi server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	ctx := context.Background()
	checks := map[string]readinessCheck{}
	var closers []func()

	// --- Profile store ---
	store, err := buildProfileStore(ctx, cfg, log, zapLog, checks, &closers)
	if err != nil {
		zapLog.Fatal("profile store init failed", zap.Error(err))
	}

	// --- Conversation core ---
	limits := normalizer.Limits{
		MaxAmount:       cfg.Conversation.MaxAmount,
		MaxTenureMonths: cfg.Conversation.MaxTenureMonths,
		MaxSalary:       cfg.Conversation.MaxSalary,
	}
	machine := conversation.NewMachine(store, underwriting.DefaultPolicy(), limits, conversation.DefaultDelays(), time.Now, log)

	var delayer transcript.Delayer = transcript.NoDelay{}
	if cfg.Conversation.DelayScale > 0 {
		delayer = transcript.TimerDelay{Scale: cfg.Conversation.DelayScale}
	}
	emitter := transcript.NewEmitter(delayer, log)

	notifier, err := buildNotifier(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	manager := session.NewManager(machine, emitter, notifier, obs, log)

	reaper, err := session.NewReaper(manager, cfg.Conversation.ReaperSchedule,
		config.GetDuration(cfg.Conversation.SessionIdleTTL), log)
	if err != nil {
		zapLog.Fatal("session reaper init failed", zap.Error(err))
	}
	reaper.Start()

	// --- Optional Zeebe workers ---
	var workers []*camunda.CamundaWorker
	var zeebe *camunda.Client
	if cfg.Camunda.Enabled {
		zeebe, workers, err = startWorkers(cfg, log, obs, zapLog)
		if err != nil {
			zapLog.Fatal("zeebe workers failed to start", zap.Error(err))
		}
		checks["zeebe"] = zeebe.HealthCheck
	}

	// --- HTTP server ---
	router := mux.NewRouter()
	api.NewHandler(manager, store, log).Register(router)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"sessions": manager.Count(),
			"time":     time.Now().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)
	router.HandleFunc("/ready", readyHandler(checks)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	reaper.Stop(shutdownCtx)

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}

	zapLog.Info("Saarthi server stopped gracefully")
}

func buildProfileStore(
	ctx context.Context,
	cfg *config.Config,
	log logger.Logger,
	zapLog *zap.Logger,
	checks map[string]readinessCheck,
	closers *[]func(),
) (profiles.Store, error) {
	var store profiles.Store

	switch cfg.Profiles.Backend {
	case config.ProfileBackendPostgres:
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				_ = pg.Close()
				return err
			}
			return nil
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = pg.Close() })
		checks["postgres"] = pg.Ping
		zapLog.Info("PostgreSQL connected successfully")

		pgStore := profiles.NewPostgresStore(pg.DB, config.GetDuration(cfg.Profiles.Timeout), log)
		if err := pgStore.EnsureSchema(ctx, profiles.SeedProfiles()); err != nil {
			return nil, fmt.Errorf("ensure profile schema: %w", err)
		}
		store = pgStore
	default:
		store = profiles.NewSeededDirectory()
		zapLog.Info("Using in-memory applicant directory")
	}

	if cfg.Profiles.Cache.Enabled {
		rdb := database.NewRedis(cfg.Database.Redis)
		err := retryWithBackoff(func() error {
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = rdb.Close() })
		checks["redis"] = rdb.Ping
		zapLog.Info("Redis connected successfully")

		store = profiles.NewCachedStore(store, rdb.Client, config.GetDuration(cfg.Profiles.Cache.TTL), log)
	}

	return store, nil
}

func buildNotifier(ctx context.Context, cfg *config.Config, log logger.Logger) (notify.Notifier, error) {
	if !cfg.Notifications.SNS.Enabled {
		return notify.NopNotifier{}, nil
	}
	client, err := aws.NewSNSClient(ctx, cfg.Notifications.SNS.Region)
	if err != nil {
		return nil, err
	}
	return notify.NewSNSNotifier(client, cfg.Notifications.SNS.SenderID, log), nil
}

type workerHandler interface {
	camunda.JobHandler
	Enabled() bool
	MaxJobsActive() int
	Timeout() time.Duration
}

func startWorkers(cfg *config.Config, log logger.Logger, obs *observability.Observability, zapLog *zap.Logger) (*camunda.Client, []*camunda.CamundaWorker, error) {
	var client *camunda.Client
	err := retryWithBackoff(func() error {
		var err error
		client, err = camunda.NewClient(cfg.Camunda)
		return err
	}, 3, 5*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		return nil, nil, err
	}
	zapLog.Info("Zeebe client connected successfully")

	decide, err := dv.NewHandler(dv.HandlerOptions{AppConfig: cfg, Logger: log, Observability: obs})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	check, err := ce.NewHandler(ce.HandlerOptions{AppConfig: cfg, Logger: log, Observability: obs})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	handlers := map[string]workerHandler{
		dv.TaskType: decide,
		ce.TaskType: check,
	}

	var workers []*camunda.CamundaWorker
	for taskType, h := range handlers {
		if !h.Enabled() {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			continue
		}
		w := camunda.NewWorker(client.GetClient(), taskType, h.MaxJobsActive(), h.Timeout(), h, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	return client, workers, nil
}

func readyHandler(checks map[string]readinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not_ready"
		}
		writeStatus(w, status, map[string]interface{}{
			"status": state,
			"checks": results,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func writeStatus(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
