// internal/workers/health/generate-insights/handler.go
package generateinsights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"assessment-workers/internal/common/camunda"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"
	"assessment-workers/internal/common/validation"
	"assessment-workers/internal/engine/benchmark"
	"assessment-workers/internal/engine/insight"
	"assessment-workers/internal/engine/intake"
	"assessment-workers/internal/models"
	"assessment-workers/pkg/registry"
)

const TaskType = registry.TaskGenerateInsights

// InputsLoader reads the health inputs a user last saved.
type InputsLoader interface {
	Inputs(ctx context.Context, userID string) (models.HealthInputs, bool, error)
}

type Handler struct {
	config       *Config
	generator    *insight.Generator
	benchmarks   func() *benchmark.Table
	store        InputsLoader
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler reads benchmarks from the process-wide catalogue, so a
// replaced catalogue is picked up by the next job. store may be nil when
// every job carries its inputs.
func NewHandler(config *Config, store InputsLoader, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		generator:    insight.NewGenerator(config.Thresholds),
		benchmarks:   benchmark.Current,
		store:        store,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.run(ctx, job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) run(ctx context.Context, job entities.Job) (*Output, error) {
	input, err := h.parseInput(job)
	if err != nil {
		return nil, err
	}
	return h.Execute(ctx, input)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if _, err := validation.ValidateVariables(job.Variables, h.config.InputSchema); err != nil {
		return nil, err
	}
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputSchemaError(fmt.Sprintf("decode variables: %v", err))
	}
	return &input, nil
}

// Execute looks up the benchmark, falling back to the default industry for
// unknown keys, and evaluates the insight rules.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	in, err := h.resolveInputs(ctx, strings.TrimSpace(input.UserID), input.Inputs)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(input.Industry))
	if key == "" {
		key = in.Industry
	}

	table := h.benchmarks()
	bm, found := table.Find(key)
	if !found {
		bm = table.Default()
	}

	m := insight.DeriveMetrics(in, bm)
	insights := h.generator.Generate(m, bm)
	metrics.ObserveInsights(insights)

	h.logger.Info("insights generated", map[string]interface{}{
		"industry":          bm.Key,
		"benchmarkFallback": !found,
		"count":             len(insights),
		"hasData":           m.HasData,
	})

	return &Output{
		Insights:            insights,
		PrioritizedInsights: insight.Prioritize(insights),
		Benchmark:           bm,
		BenchmarkFallback:   !found,
		Metrics:             m,
	}, nil
}

func (h *Handler) resolveInputs(ctx context.Context, userID string, raw *models.RawHealthInputs) (models.HealthInputs, error) {
	if raw != nil {
		return intake.NormalizeHealthInputs(*raw), nil
	}
	if userID == "" || h.store == nil {
		return models.HealthInputs{}, errors.NewInvalidInputSchemaError("inputs are required when no saved inputs can be loaded")
	}
	in, found, err := h.store.Inputs(ctx, userID)
	if err != nil {
		return models.HealthInputs{}, err
	}
	if !found {
		return models.HealthInputs{}, errors.NewResourceNotFoundError("health store", fmt.Sprintf("no saved inputs for userId %s", userID))
	}
	return in, nil
}
