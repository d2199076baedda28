// internal/workers/assessment/lookup-assessment/handler_test.go
package lookupassessment

import (
	"context"
	"encoding/json"
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

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) LatestByEmail(ctx context.Context, email string) (models.IntakeRecord, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.IntakeRecord), args.Error(1)
}

func createMockJob(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       7,
		Type:      TaskType,
		Retries:   3,
		Variables: variables,
	}}
}

func TestHandler_Execute_Found(t *testing.T) {
	store := &mockFinder{}
	store.On("LatestByEmail", mock.Anything, "owner@shop.com").Return(models.IntakeRecord{
		ID:             "rec-9",
		Email:          "owner@shop.com",
		AccountType:    models.AccountTypePersonal,
		MonthlyRevenue: 4000,
		MonthlyFees:    50,
		CashDeposits:   true,
	}, nil)

	h := NewHandler(nil, store, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{Email: " Owner@Shop.com"})
	require.NoError(t, err)

	assert.True(t, out.Found)
	assert.Equal(t, "rec-9", out.Record.ID)
	assert.Equal(t, 75, out.Scoring.MismatchScore)
	assert.Equal(t, models.RiskHigh, out.Scoring.RiskLabel)
	store.AssertExpectations(t)
}

func TestHandler_Execute_NotFound(t *testing.T) {
	store := &mockFinder{}
	store.On("LatestByEmail", mock.Anything, "ghost@shop.com").
		Return(models.IntakeRecord{}, errors.NewAssessmentNotFoundError("ghost@shop.com"))

	h := NewHandler(nil, store, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{Email: "ghost@shop.com"})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Nil(t, out.Record)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"found":false}`, string(data))
}

func TestHandler_Execute_StoreError(t *testing.T) {
	store := &mockFinder{}
	store.On("LatestByEmail", mock.Anything, mock.Anything).
		Return(models.IntakeRecord{}, errors.NewAssessmentStoreError("latest_by_email", stderrors.New("timeout")))

	h := NewHandler(nil, store, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{Email: "a@b.co"})
	require.Error(t, err)
	assert.True(t, errors.AsStandardError(err).Retryable)
}

func TestHandler_Execute_NoStore(t *testing.T) {
	h := NewHandler(nil, nil, logger.NewNoOpLogger())
	_, err := h.Execute(context.Background(), &Input{Email: "a@b.co"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBusinessRule, errors.AsStandardError(err).Code)
}

func TestHandler_Run_RejectsBadVariables(t *testing.T) {
	h := NewHandler(nil, &mockFinder{}, logger.NewNoOpLogger())

	for _, vars := range []string{`{}`, `{"email":42}`, `{"email":"a"}`, `not json`} {
		_, err := h.run(context.Background(), createMockJob(vars))
		require.Error(t, err, vars)
		assert.Equal(t, errors.ErrCodeInvalidInputSchema, errors.AsStandardError(err).Code, vars)
	}
}
