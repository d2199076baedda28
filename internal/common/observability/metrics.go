package observability

import (
	"context"
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"assessment-workers/internal/common/logger"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusThrown    = "bpmn_error"
	StatusUnknown   = "unanswered"
)

// Observability owns the OpenTelemetry meter provider. Metrics are exported
// through the default Prometheus registry, so /metrics serves them next to
// the promauto series.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	jobCounter    otelmetric.Int64Counter
	jobDuration   otelmetric.Float64Histogram
	log           logger.Logger
}

func New(serviceName string, log logger.Logger) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter, otel metrics disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return &Observability{log: log}
	}
	return newWithReader(serviceName, exporter, log)
}

func newWithReader(serviceName string, reader metric.Reader, log logger.Logger) *Observability {
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	jobCounter, err := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	if err != nil {
		log.Warn("failed to create job counter", map[string]interface{}{"error": err.Error()})
	}

	jobDuration, err := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		log.Warn("failed to create job duration histogram", map[string]interface{}{"error": err.Error()})
	}

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		jobCounter:    jobCounter,
		jobDuration:   jobDuration,
		log:           log,
	}
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

// Instrument wraps a job handler and records how each job was answered.
func (o *Observability) Instrument(taskType string, next worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		tc := &trackingClient{JobClient: client, status: StatusUnknown}

		next(tc, job)

		status := tc.Status()
		ctx := context.Background()
		o.RecordJobProcessed(ctx, taskType, status)
		o.RecordJobDuration(ctx, taskType, time.Since(start), status)
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.meterProvider.Shutdown(ctx); err != nil && o.log != nil {
		o.log.Warn("meter provider shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}

// trackingClient remembers the last command a handler built for its job.
type trackingClient struct {
	worker.JobClient
	mu     sync.Mutex
	status string
}

func (c *trackingClient) set(status string) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

func (c *trackingClient) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *trackingClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	c.set(StatusCompleted)
	return c.JobClient.NewCompleteJobCommand()
}

func (c *trackingClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	c.set(StatusFailed)
	return c.JobClient.NewFailJobCommand()
}

func (c *trackingClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	c.set(StatusThrown)
	return c.JobClient.NewThrowErrorCommand()
}
