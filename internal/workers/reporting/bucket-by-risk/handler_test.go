// internal/workers/reporting/bucket-by-risk/handler_test.go
package bucketbyrisk

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/models"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) List(ctx context.Context, limit int) ([]models.IntakeRecord, error) {
	args := m.Called(ctx, limit)
	if recs := args.Get(0); recs != nil {
		return recs.([]models.IntakeRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func createMockJob(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       11,
		Type:      TaskType,
		Retries:   3,
		Variables: variables,
	}}
}

func newHandler(t *testing.T, store AssessmentLister) *Handler {
	t.Helper()
	h, err := NewHandler(nil, store, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

// ============================================================================
// Execute
// ============================================================================

func TestHandler_Execute_FromVariables(t *testing.T) {
	store := &mockLister{}
	h := newHandler(t, store)

	out, err := h.Execute(context.Background(), &Input{Records: []models.RawIntake{
		{AccountType: "Personal", MonthlyRevenue: "4000", MonthlyFees: 50.0, CashDeposits: "yes"},
		{AccountType: "business", MonthlyRevenue: 8000.0, MonthlyFees: 50.0, WantsGrants: true},
		{AccountType: "personal", MonthlyRevenue: 7000.0},
	}})
	require.NoError(t, err)

	assert.Equal(t, models.RiskBuckets{High: 1, Medium: 1, Low: 1}, out.RiskBuckets)
	assert.Equal(t, 3, out.TotalRecords)
	assert.Equal(t, 45.0, out.AverageScore)
	assert.Equal(t, SourceVariables, out.Source)
	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_Execute_EmptyRecordsDoNotHitStore(t *testing.T) {
	store := &mockLister{}
	h := newHandler(t, store)

	out, err := h.Execute(context.Background(), &Input{Records: []models.RawIntake{}})
	require.NoError(t, err)

	assert.Equal(t, models.RiskBuckets{}, out.RiskBuckets)
	assert.Zero(t, out.TotalRecords)
	assert.Zero(t, out.AverageScore)
	store.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_Execute_FromStore(t *testing.T) {
	store := &mockLister{}
	store.On("List", mock.Anything, 0).Return([]models.IntakeRecord{
		{AccountType: models.AccountTypeBusiness, MonthlyRevenue: 50000},
		{AccountType: models.AccountTypePersonal, MonthlyRevenue: 3000},
	}, nil)
	h := newHandler(t, store)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, models.RiskBuckets{Medium: 1, Low: 1}, out.RiskBuckets)
	assert.Equal(t, 2, out.TotalRecords)
	assert.Equal(t, 27.5, out.AverageScore)
	assert.Equal(t, SourceStore, out.Source)
	store.AssertExpectations(t)
}

func TestHandler_Execute_ListLimit(t *testing.T) {
	store := &mockLister{}
	store.On("List", mock.Anything, 100).Return([]models.IntakeRecord{}, nil)

	cfg := DefaultConfig()
	cfg.ListLimit = 100
	h, err := NewHandler(cfg, store, logger.NewNoOpLogger())
	require.NoError(t, err)

	_, err = h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestHandler_Execute_StoreError(t *testing.T) {
	store := &mockLister{}
	store.On("List", mock.Anything, 0).
		Return(nil, errors.NewAssessmentStoreError("list", stderrors.New("connection reset")))
	h := newHandler(t, store)

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAssessmentStoreFailed, errors.AsStandardError(err).Code)
}

func TestHandler_Execute_NoStore(t *testing.T) {
	h := newHandler(t, nil)

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBusinessRule, errors.AsStandardError(err).Code)
}

// ============================================================================
// Input parsing
// ============================================================================

func TestHandler_ParseInput(t *testing.T) {
	h := newHandler(t, nil)

	input, err := h.parseInput(createMockJob(`{}`))
	require.NoError(t, err)
	assert.Nil(t, input.Records)

	input, err = h.parseInput(createMockJob(`{"records":[]}`))
	require.NoError(t, err)
	assert.NotNil(t, input.Records)
	assert.Empty(t, input.Records)

	input, err = h.parseInput(createMockJob(`{"records":[{"accountType":"personal","monthlyRevenue":"3000"}]}`))
	require.NoError(t, err)
	require.Len(t, input.Records, 1)
	assert.Equal(t, "3000", input.Records[0].MonthlyRevenue)

	_, err = h.parseInput(createMockJob(`{"records":"all"}`))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInputSchema, errors.AsStandardError(err).Code)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.ListLimit = -1
	assert.Error(t, cfg.Validate())

	_, err := NewHandler(cfg, nil, logger.NewNoOpLogger())
	assert.Error(t, err)
}
