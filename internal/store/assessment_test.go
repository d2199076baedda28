package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/models"
)

var columns = []string{
	"id", "email", "business_name", "account_type", "monthly_revenue", "monthly_fees",
	"cash_deposits", "wants_grants", "zip_code", "veteran_owned", "immigrant_founder",
	"bank_suggestion", "grant_suggestion", "submitted_at",
}

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*AssessmentStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewAssessmentStore(db)
	s.now = func() time.Time { return fixedTime }
	s.newID = func() string { return "5f0c2a4e-0000-4000-8000-000000000001" }
	return s, mock
}

func sampleRecord() models.IntakeRecord {
	return models.IntakeRecord{
		Email:          "owner@shop.com",
		BusinessName:   "Corner Shop",
		AccountType:    models.AccountTypePersonal,
		MonthlyRevenue: 4500,
		MonthlyFees:    50,
		CashDeposits:   true,
		WantsGrants:    false,
		ZipCode:        "10001",
	}
}

func addRow(rows *sqlmock.Rows, id string, rec models.IntakeRecord, at time.Time) *sqlmock.Rows {
	return rows.AddRow(id, rec.Email, rec.BusinessName, string(rec.AccountType),
		rec.MonthlyRevenue, rec.MonthlyFees, rec.CashDeposits, rec.WantsGrants,
		rec.ZipCode, rec.VeteranOwned, rec.ImmigrantFounder,
		rec.BankSuggestion, rec.GrantSuggestion, at)
}

func TestAssessmentStore_Save(t *testing.T) {
	s, mock := newTestStore(t)
	rec := sampleRecord()

	mock.ExpectExec("INSERT INTO assessments").
		WithArgs("5f0c2a4e-0000-4000-8000-000000000001", "owner@shop.com", "Corner Shop", "personal",
			4500.0, 50.0, true, false, "10001", false, false, "", "", fixedTime).
		WillReturnResult(sqlmock.NewResult(1, 1))

	saved, err := s.Save(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "5f0c2a4e-0000-4000-8000-000000000001", saved.ID)
	assert.Equal(t, fixedTime.UnixMilli(), saved.SubmittedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentStore_SaveRequiresEmail(t *testing.T) {
	s, mock := newTestStore(t)
	rec := sampleRecord()
	rec.Email = "  "

	_, err := s.Save(context.Background(), rec)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIntakeValidationFailed, errors.AsStandardError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentStore_SaveError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec("INSERT INTO assessments").WillReturnError(stderrors.New("connection reset"))

	_, err := s.Save(context.Background(), sampleRecord())
	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeAssessmentStoreFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestAssessmentStore_LatestByEmail(t *testing.T) {
	s, mock := newTestStore(t)
	rec := sampleRecord()

	mock.ExpectQuery(`WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("Owner@Shop.com").
		WillReturnRows(addRow(sqlmock.NewRows(columns), "id-2", rec, fixedTime))

	got, err := s.LatestByEmail(context.Background(), " Owner@Shop.com ")
	require.NoError(t, err)
	assert.Equal(t, "id-2", got.ID)
	assert.Equal(t, models.AccountTypePersonal, got.AccountType)
	assert.Equal(t, 4500.0, got.MonthlyRevenue)
	assert.True(t, got.CashDeposits)
	assert.Equal(t, fixedTime.UnixMilli(), got.SubmittedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentStore_LatestByEmailNotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery("FROM assessments").
		WithArgs("nobody@shop.com").
		WillReturnError(sql.ErrNoRows)

	_, err := s.LatestByEmail(context.Background(), "nobody@shop.com")
	require.Error(t, err)
	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeAssessmentNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestAssessmentStore_List(t *testing.T) {
	s, mock := newTestStore(t)
	first := sampleRecord()
	second := sampleRecord()
	second.Email = "b@shop.com"
	second.AccountType = models.AccountTypeBusiness

	rows := sqlmock.NewRows(columns)
	addRow(rows, "id-1", first, fixedTime)
	addRow(rows, "id-2", second, fixedTime.Add(time.Minute))

	mock.ExpectQuery(`ORDER BY seq ASC LIMIT \$1`).
		WithArgs(50).
		WillReturnRows(rows)

	got, err := s.List(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "id-1", got[0].ID)
	assert.Equal(t, "b@shop.com", got[1].Email)
	assert.Equal(t, models.AccountTypeBusiness, got[1].AccountType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentStore_ListAllEmpty(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`ORDER BY seq ASC`).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAssessmentStore_ListRowError(t *testing.T) {
	s, mock := newTestStore(t)

	rows := addRow(sqlmock.NewRows(columns), "id-1", sampleRecord(), fixedTime).
		RowError(0, stderrors.New("bad row"))
	mock.ExpectQuery("FROM assessments").WillReturnRows(rows)

	_, err := s.List(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAssessmentStoreFailed, errors.AsStandardError(err).Code)
}
