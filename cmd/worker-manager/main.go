// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"assessment-workers/internal/common/camunda"
	"assessment-workers/internal/common/config"
	"assessment-workers/internal/common/database"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/observability"
	"assessment-workers/internal/engine/benchmark"
	"assessment-workers/internal/store"
	"assessment-workers/pkg/registry"

	// Assessment workers
	cms "assessment-workers/internal/workers/assessment/calculate-mismatch-score"
	la "assessment-workers/internal/workers/assessment/lookup-assessment"
	lr "assessment-workers/internal/workers/assessment/lookup-region"

	// Health workers
	chs "assessment-workers/internal/workers/health/compute-health-score"
	gi "assessment-workers/internal/workers/health/generate-insights"

	// Reporting workers
	bbr "assessment-workers/internal/workers/reporting/bucket-by-risk"
)

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
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console", "stderr")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	if err := loadBenchmarks(cfg.Benchmarks); err != nil {
		zapLog.Fatal("benchmark catalogue rejected", zap.Error(err))
	}
	zapLog.Info("Benchmark catalogue ready", zap.Int("industries", benchmark.Current().Len()))

	reg, err := loadRegistry(cfg.Registry)
	if err != nil {
		zapLog.Fatal("activity registry rejected", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.UsePlaintext,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL and Redis concurrently ---
	var (
		pg  *database.PostgresClient
		rdb *database.RedisClient
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(gctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	})
	g.Go(func() error {
		return retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(gctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
	})
	if err := g.Wait(); err != nil {
		zapLog.Fatal("storage failed after retries", zap.Error(err))
	}
	defer pg.Close()
	defer rdb.Close()
	zapLog.Info("PostgreSQL and Redis connected successfully")

	if err := pg.Migrate(ctx); err != nil {
		zapLog.Fatal("postgres migration failed", zap.Error(err))
	}

	assessments := store.NewAssessmentStore(pg.DB)
	healthStore := store.NewHealthStore(rdb.Client, rdb.KeyPrefix(), cfg.Health.HistoryLimit)

	// --- Register workers ---
	workers := camunda.NewWorkers(log)
	started, err := registerWorkers(zeebe.Zeebe(), workers, obs, cfg, reg, assessments, healthStore, log)
	if err != nil {
		zapLog.Fatal("worker registration failed", zap.Error(err))
	}
	zapLog.Info("Workers registered", zap.Int("count", started), zap.Strings("taskTypes", workers.TaskTypes()))

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           newServeMux(zeebe, pg, rdb),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers.Close(25 * time.Second)

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// loadBenchmarks swaps in the configured catalogue. An empty path keeps the
// built-in table.
func loadBenchmarks(cfg config.BenchmarksConfig) error {
	if cfg.CatalogPath == "" {
		return nil
	}
	table, err := benchmark.LoadFile(cfg.CatalogPath)
	if err != nil {
		return errors.NewBenchmarkCatalogError(err)
	}
	benchmark.Replace(table)
	return nil
}

func loadRegistry(cfg config.RegistryConfig) (*registry.ActivityRegistry, error) {
	if cfg.Path == "" {
		return registry.Default(), nil
	}
	return registry.LoadRegistry(cfg.Path)
}

func registerWorkers(
	client zbc.Client,
	workers *camunda.Workers,
	obs *observability.Observability,
	cfg *config.Config,
	reg *registry.ActivityRegistry,
	assessments *store.AssessmentStore,
	healthStore *store.HealthStore,
	log logger.Logger,
) (int, error) {
	started := 0
	start := func(taskType string, handler worker.JobHandler) {
		if workers.Start(client, taskType, config.GetWorkerConfig(cfg, taskType), obs.Instrument(taskType, handler)) {
			started++
		}
	}
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	// Calculate Mismatch Score
	if taskType := cms.TaskType; config.IsWorkerEnabled(cfg, taskType) {
		c := cms.DefaultConfig()
		c.Timeout = timeout(taskType)
		c.Weights = cfg.Scoring.MismatchWeights()
		c.InputSchema = reg.InputSchema(taskType)
		handler, err := cms.NewHandler(c, assessments, log)
		if err != nil {
			return started, fmt.Errorf("%s: %w", taskType, err)
		}
		start(taskType, handler.Handle)
	}

	// Lookup Region
	if taskType := lr.TaskType; config.IsWorkerEnabled(cfg, taskType) {
		c := lr.DefaultConfig()
		c.Timeout = timeout(taskType)
		c.InputSchema = reg.InputSchema(taskType)
		start(taskType, lr.NewHandler(c, log).Handle)
	}

	// Lookup Assessment
	if taskType := la.TaskType; config.IsWorkerEnabled(cfg, taskType) {
		c := la.DefaultConfig()
		c.Timeout = timeout(taskType)
		c.Weights = cfg.Scoring.MismatchWeights()
		c.InputSchema = reg.InputSchema(taskType)
		start(taskType, la.NewHandler(c, assessments, log).Handle)
	}

	// Compute Health Score
	if taskType := chs.TaskType; config.IsWorkerEnabled(cfg, taskType) {
		c := chs.DefaultConfig()
		c.Timeout = timeout(taskType)
		c.Weights = cfg.Scoring.HealthWeights()
		c.InputSchema = reg.InputSchema(taskType)
		handler, err := chs.NewHandler(c, healthStore, log)
		if err != nil {
			return started, fmt.Errorf("%s: %w", taskType, err)
		}
		start(taskType, handler.Handle)
	}

	// Generate Insights
	if taskType := gi.TaskType; config.IsWorkerEnabled(cfg, taskType) {
		c := gi.DefaultConfig()
		c.Timeout = timeout(taskType)
		c.Thresholds = cfg.Scoring.InsightThresholds()
		c.InputSchema = reg.InputSchema(taskType)
		start(taskType, gi.NewHandler(c, healthStore, log).Handle)
	}

	// Bucket By Risk
	if taskType := bbr.TaskType; config.IsWorkerEnabled(cfg, taskType) {
		c := bbr.DefaultConfig()
		c.Timeout = timeout(taskType)
		c.Weights = cfg.Scoring.MismatchWeights()
		c.ListLimit = cfg.Reporting.ListLimit
		c.InputSchema = reg.InputSchema(taskType)
		handler, err := bbr.NewHandler(c, assessments, log)
		if err != nil {
			return started, fmt.Errorf("%s: %w", taskType, err)
		}
		start(taskType, handler.Handle)
	}

	return started, nil
}

func newServeMux(zeebe *camunda.Client, pg *database.PostgresClient, rdb *database.RedisClient) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true
		for name, ping := range map[string]func(context.Context) error{
			"zeebe":    zeebe.HealthCheck,
			"postgres": pg.Ping,
			"redis":    rdb.Ping,
		} {
			if err := ping(ctx); err != nil {
				checks[name] = err.Error()
				ready = false
				continue
			}
			checks[name] = "ok"
		}

		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		writeStatus(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
