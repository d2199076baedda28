// internal/workers/assessment/lookup-region/handler.go
package lookupregion

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"assessment-workers/internal/common/camunda"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"
	"assessment-workers/internal/common/validation"
	"assessment-workers/internal/engine/geo"
	"assessment-workers/pkg/registry"
)

const TaskType = registry.TaskLookupRegion

type Handler struct {
	config       *Config
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

	if _, err := validation.ValidateVariables(job.Variables, h.config.InputSchema); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeInvalidInputSchema)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		err = errors.NewInvalidInputSchemaError(fmt.Sprintf("decode variables: %v", err))
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeInvalidInputSchema)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output := h.Execute(ctx, &input)

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

// Execute never fails: unknown or malformed ZIP codes resolve to the
// nationwide region.
func (h *Handler) Execute(_ context.Context, input *Input) *Output {
	region := geo.RegionFor(input.ZipCode)
	_, matched := geo.Prefix(input.ZipCode)
	fallback := region == geo.Default()

	h.logger.Debug("region resolved", map[string]interface{}{
		"zipPrefixValid": matched,
		"region":         region.Abbr,
		"fallback":       fallback,
	})

	return &Output{Region: region, IsFallback: fallback}
}
