// Package store persists intake records in Postgres and health inputs and
// score history in Redis. The scoring engine never calls it; workers do.
package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/models"
)

const assessmentColumns = `id, email, business_name, account_type, monthly_revenue, monthly_fees,
	cash_deposits, wants_grants, zip_code, veteran_owned, immigrant_founder,
	bank_suggestion, grant_suggestion, submitted_at`

// AssessmentStore keeps intake records in submission order.
type AssessmentStore struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

func NewAssessmentStore(db *sql.DB) *AssessmentStore {
	return &AssessmentStore{
		db:    db,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Save inserts rec and returns it with its ID and submission time set.
func (s *AssessmentStore) Save(ctx context.Context, rec models.IntakeRecord) (models.IntakeRecord, error) {
	if strings.TrimSpace(rec.Email) == "" {
		return rec, errors.NewIntakeValidationError("email is required to store an assessment")
	}

	rec.ID = s.newID()
	submitted := s.now().UTC()
	rec.SubmittedAt = submitted.UnixMilli()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (`+assessmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		rec.ID, rec.Email, rec.BusinessName, string(rec.AccountType),
		rec.MonthlyRevenue, rec.MonthlyFees, rec.CashDeposits, rec.WantsGrants,
		rec.ZipCode, rec.VeteranOwned, rec.ImmigrantFounder,
		rec.BankSuggestion, rec.GrantSuggestion, submitted,
	)
	if err != nil {
		return rec, errors.NewAssessmentStoreError("save", err)
	}
	return rec, nil
}

// LatestByEmail returns the most recent record for email, compared
// case-insensitively.
func (s *AssessmentStore) LatestByEmail(ctx context.Context, email string) (models.IntakeRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments
		WHERE lower(email) = lower($1)
		ORDER BY seq DESC
		LIMIT 1`,
		strings.TrimSpace(email),
	)

	rec, err := scanRecord(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return models.IntakeRecord{}, errors.NewAssessmentNotFoundError(email)
	}
	if err != nil {
		return models.IntakeRecord{}, errors.NewAssessmentStoreError("latest_by_email", err)
	}
	return rec, nil
}

// List returns up to limit records in submission order. limit <= 0 means all.
func (s *AssessmentStore) List(ctx context.Context, limit int) ([]models.IntakeRecord, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments ORDER BY seq ASC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewAssessmentStoreError("list", err)
	}
	defer rows.Close()

	records := make([]models.IntakeRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.NewAssessmentStoreError("list", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewAssessmentStoreError("list", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(sc scanner) (models.IntakeRecord, error) {
	var (
		rec         models.IntakeRecord
		accountType string
		submitted   time.Time
	)
	err := sc.Scan(
		&rec.ID, &rec.Email, &rec.BusinessName, &accountType,
		&rec.MonthlyRevenue, &rec.MonthlyFees, &rec.CashDeposits, &rec.WantsGrants,
		&rec.ZipCode, &rec.VeteranOwned, &rec.ImmigrantFounder,
		&rec.BankSuggestion, &rec.GrantSuggestion, &submitted,
	)
	if err != nil {
		return rec, err
	}
	rec.AccountType = models.AccountType(accountType)
	rec.SubmittedAt = submitted.UnixMilli()
	return rec, nil
}
