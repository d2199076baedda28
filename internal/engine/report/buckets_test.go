package report

import (
	"math/rand"
	"testing"

	"assessment-workers/internal/engine/mismatch"
	"assessment-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleRecords() []models.IntakeRecord {
	return []models.IntakeRecord{
		// 75 High
		{AccountType: models.AccountTypePersonal, CashDeposits: true, MonthlyRevenue: 4000, MonthlyFees: 50},
		// 20 Low
		{AccountType: models.AccountTypeBusiness, MonthlyRevenue: 8000, MonthlyFees: 50, WantsGrants: true},
		// 40 Medium
		{AccountType: models.AccountTypePersonal, MonthlyRevenue: 7000},
		// 0 Low
		{AccountType: models.AccountTypeBusiness, MonthlyRevenue: 50000},
		// 55 Medium
		{AccountType: models.AccountTypePersonal, MonthlyRevenue: 3000},
	}
}

func TestBucketByRisk(t *testing.T) {
	buckets := BucketByRisk(sampleRecords(), nil)

	assert.Equal(t, models.RiskBuckets{High: 1, Medium: 2, Low: 2}, buckets)
}

func TestBucketByRisk_Empty(t *testing.T) {
	assert.Equal(t, models.RiskBuckets{}, BucketByRisk(nil, nil))
}

func TestBucketByRisk_OrderIndependent(t *testing.T) {
	records := sampleRecords()
	expected := BucketByRisk(records, nil)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.IntakeRecord(nil), records...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, expected, BucketByRisk(shuffled, nil))
	}
}

func TestBucketByRisk_CustomScorer(t *testing.T) {
	w := mismatch.DefaultWeights()
	w.HighRiskThreshold = 40

	buckets := BucketByRisk(sampleRecords(), mismatch.NewScorer(w))

	assert.Equal(t, models.RiskBuckets{High: 3, Medium: 0, Low: 2}, buckets)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords(), nil)

	assert.Equal(t, 5, s.Total)
	assert.InDelta(t, 38.0, s.AverageScore, 1e-9) // (75+20+40+0+55)/5
	assert.Equal(t, s.Total, s.Buckets.High+s.Buckets.Medium+s.Buckets.Low)

	empty := Summarize(nil, nil)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.AverageScore)
}
