// internal/workers/health/generate-insights/handler_test.go
package generateinsights

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assessment-workers/internal/common/camunda/camundatest"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/engine/benchmark"
	"assessment-workers/internal/models"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Inputs(ctx context.Context, userID string) (models.HealthInputs, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.HealthInputs), args.Bool(1), args.Error(2)
}

func titles(insights []models.Insight) []string {
	out := make([]string, len(insights))
	for i, in := range insights {
		out[i] = in.Title
	}
	return out
}

func createMockJob(variables map[string]interface{}) entities.Job {
	data, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       3,
		Type:      TaskType,
		Retries:   3,
		Variables: string(data),
	}}
}

func TestHandler_Execute_LossAndShortRunway(t *testing.T) {
	h := NewHandler(nil, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		Inputs:   &models.RawHealthInputs{Revenue: 10000.0, Expenses: 15000.0, Cash: 10000.0},
		Industry: "retail",
	})
	require.NoError(t, err)

	assert.Equal(t, "retail", out.Benchmark.Key)
	assert.False(t, out.BenchmarkFallback)
	assert.Equal(t, []string{"Operating at a Loss", "Critical Cash Runway"}, titles(out.Insights))
	assert.Equal(t, 2.0, out.Metrics.Runway)
}

func TestHandler_Execute_PrioritizedCopy(t *testing.T) {
	h := NewHandler(nil, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		Inputs: &models.RawHealthInputs{Revenue: 50000.0, Expenses: 40000.0, Debt: 400000.0, Cash: 100000.0, Industry: "Retail"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Strong Profit Margin", "High Debt Load"}, titles(out.Insights))
	assert.Equal(t, []string{"High Debt Load", "Strong Profit Margin"}, titles(out.PrioritizedInsights))
}

func TestHandler_Execute_UnknownIndustryFallsBack(t *testing.T) {
	h := NewHandler(nil, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		Inputs:   &models.RawHealthInputs{Revenue: 1000.0, Expenses: 500.0},
		Industry: "spaceflight",
	})
	require.NoError(t, err)

	assert.Equal(t, benchmark.DefaultKey, out.Benchmark.Key)
	assert.True(t, out.BenchmarkFallback)
}

func TestHandler_Execute_NoData(t *testing.T) {
	h := NewHandler(nil, nil, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{Inputs: &models.RawHealthInputs{}})
	require.NoError(t, err)
	require.NotNil(t, out.Insights)
	assert.Empty(t, out.Insights)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &vars))
	assert.Equal(t, []interface{}{}, vars["insights"])
}

func TestHandler_Execute_LooseFigures(t *testing.T) {
	h := NewHandler(nil, nil, logger.NewNoOpLogger())

	input, err := h.parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{
		Variables: `{"inputs":{"revenue":"10000","expenses":15000,"cash":"10000","debt":null,"customers":"n/a"},"industry":"retail"}`,
	}})
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, out.Metrics.Revenue)
	assert.Equal(t, 2.0, out.Metrics.Runway)
	assert.Equal(t, 0.0, out.Metrics.Customers)
}

func TestHandler_Execute_StoredInputs(t *testing.T) {
	saved := models.HealthInputs{Revenue: 10000, Expenses: 15000, Cash: 10000, Industry: "retail"}

	t.Run("loads saved inputs", func(t *testing.T) {
		loader := &mockLoader{}
		loader.On("Inputs", mock.Anything, "u1").Return(saved, true, nil)

		out, err := NewHandler(nil, loader, logger.NewNoOpLogger()).Execute(context.Background(), &Input{UserID: " u1 "})
		require.NoError(t, err)
		assert.Equal(t, "retail", out.Benchmark.Key)
		assert.Equal(t, []string{"Operating at a Loss", "Critical Cash Runway"}, titles(out.Insights))
		loader.AssertExpectations(t)
	})

	t.Run("job inputs win", func(t *testing.T) {
		loader := &mockLoader{}

		out, err := NewHandler(nil, loader, logger.NewNoOpLogger()).Execute(context.Background(), &Input{
			UserID: "u1",
			Inputs: &models.RawHealthInputs{Revenue: 1000.0, Expenses: 500.0},
		})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, out.Metrics.Revenue)
		loader.AssertNotCalled(t, "Inputs", mock.Anything, mock.Anything)
	})

	t.Run("nothing saved", func(t *testing.T) {
		loader := &mockLoader{}
		loader.On("Inputs", mock.Anything, "u2").Return(models.HealthInputs{}, false, nil)

		_, err := NewHandler(nil, loader, logger.NewNoOpLogger()).Execute(context.Background(), &Input{UserID: "u2"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeResourceNotFound, errors.AsStandardError(err).Code)
	})

	t.Run("store failure", func(t *testing.T) {
		loader := &mockLoader{}
		loader.On("Inputs", mock.Anything, "u1").
			Return(models.HealthInputs{}, false, errors.NewHealthStoreError("inputs", stderrors.New("LOADING")))

		_, err := NewHandler(nil, loader, logger.NewNoOpLogger()).Execute(context.Background(), &Input{UserID: "u1"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeHealthStoreFailed, errors.AsStandardError(err).Code)
	})

	t.Run("no store and no inputs", func(t *testing.T) {
		_, err := NewHandler(nil, nil, logger.NewNoOpLogger()).Execute(context.Background(), &Input{UserID: "u1"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidInputSchema, errors.AsStandardError(err).Code)
	})
}

func TestHandler_Execute_UsesCurrentCatalogue(t *testing.T) {
	table, err := benchmark.NewTable([]models.IndustryBenchmark{
		{Key: "bakery", DisplayName: "Bakery", Margin: 0.5, RunwayMonths: 6, DebtLoadRatio: 0.1, ChurnRate: 0.1},
	})
	require.NoError(t, err)

	h := NewHandler(nil, nil, logger.NewNoOpLogger())
	h.benchmarks = func() *benchmark.Table { return table }

	out, err := h.Execute(context.Background(), &Input{
		Inputs:   &models.RawHealthInputs{Revenue: 10000.0, Expenses: 9000.0, Cash: 5000.0},
		Industry: "bakery",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, out.Benchmark.Margin)
	assert.Equal(t, []string{"Below Industry Margin"}, titles(out.Insights))
}

func TestHandler_ParseInput(t *testing.T) {
	h := NewHandler(nil, nil, logger.NewNoOpLogger())

	input, err := h.parseInput(createMockJob(map[string]interface{}{
		"inputs":   map[string]interface{}{"revenue": 1, "expenses": 2, "debt": 3, "cash": 4},
		"industry": "cafe",
	}))
	require.NoError(t, err)
	assert.Equal(t, "cafe", input.Industry)
	require.NotNil(t, input.Inputs)
	assert.Equal(t, 4.0, input.Inputs.Cash)

	input, err = h.parseInput(createMockJob(map[string]interface{}{"userId": "u1"}))
	require.NoError(t, err)
	assert.Nil(t, input.Inputs)
	assert.Equal(t, "u1", input.UserID)

	_, err = h.parseInput(createMockJob(map[string]interface{}{"inputs": []int{1}}))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInputSchema, errors.AsStandardError(err).Code)
}

func TestHandler_Handle(t *testing.T) {
	h := NewHandler(nil, nil, logger.NewTestLogger(t))

	t.Run("completes overflowing runway", func(t *testing.T) {
		client := &camundatest.JobClient{}
		h.Handle(client, createMockJob(map[string]interface{}{
			"inputs": map[string]interface{}{"revenue": 1, "expenses": 1.5, "cash": 1e308},
		}))

		completed := client.Completed()
		require.Len(t, completed, 1)
		var out Output
		require.NoError(t, json.Unmarshal([]byte(completed[0].Variables), &out))
		assert.Equal(t, math.MaxFloat64, out.Metrics.Runway)
		assert.Empty(t, client.Thrown())
	})

	t.Run("throws without inputs", func(t *testing.T) {
		client := &camundatest.JobClient{}
		h.Handle(client, createMockJob(map[string]interface{}{"industry": "cafe"}))

		assert.Empty(t, client.Completed())
		thrown := client.Thrown()
		require.Len(t, thrown, 1)
		assert.Equal(t, string(errors.ErrCodeInvalidInputSchema), thrown[0].ErrorCode)
	})
}
