package observability

import (
	"context"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"assessment-workers/internal/common/logger"
)

// nilClient hands out nil commands; the handlers under test never send them.
type nilClient struct{}

func (nilClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 { return nil }
func (nilClient) NewFailJobCommand() commands.FailJobCommandStep1         { return nil }
func (nilClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1   { return nil }

func collectCounts(t *testing.T, reader *metric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "jobs.processed" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value(attribute.Key("status"))
				counts[status.AsString()] += dp.Value
			}
		}
	}
	return counts
}

func TestInstrument_RecordsStatus(t *testing.T) {
	reader := metric.NewManualReader()
	obs := newWithReader("test", reader, logger.NewNoOpLogger())
	defer obs.Shutdown()

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Type: "lookup-region"}}

	complete := obs.Instrument("lookup-region", func(c worker.JobClient, _ entities.Job) {
		c.NewCompleteJobCommand()
	})
	throw := obs.Instrument("lookup-region", func(c worker.JobClient, _ entities.Job) {
		c.NewThrowErrorCommand()
	})
	fail := obs.Instrument("lookup-region", func(c worker.JobClient, _ entities.Job) {
		c.NewFailJobCommand()
	})
	silent := obs.Instrument("lookup-region", func(worker.JobClient, entities.Job) {})

	complete(nilClient{}, job)
	complete(nilClient{}, job)
	throw(nilClient{}, job)
	fail(nilClient{}, job)
	silent(nilClient{}, job)

	counts := collectCounts(t, reader)
	assert.Equal(t, int64(2), counts[StatusCompleted])
	assert.Equal(t, int64(1), counts[StatusThrown])
	assert.Equal(t, int64(1), counts[StatusFailed])
	assert.Equal(t, int64(1), counts[StatusUnknown])
}

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var obs Observability
	obs.RecordJobProcessed(context.Background(), "x", StatusCompleted)
	obs.RecordJobDuration(context.Background(), "x", 0, StatusCompleted)
	obs.Shutdown()
}
