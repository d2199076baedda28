// Package report aggregates stored assessments for chart display.
package report

import (
	"assessment-workers/internal/engine/mismatch"
	"assessment-workers/internal/models"
)

// Summary extends the tier counts with totals.
type Summary struct {
	Buckets      models.RiskBuckets `json:"buckets"`
	Total        int                `json:"total"`
	AverageScore float64            `json:"averageScore"`
}

// BucketByRisk scores every record and counts them per risk label. The
// result does not depend on record order. A nil scorer uses the default.
func BucketByRisk(records []models.IntakeRecord, scorer *mismatch.Scorer) models.RiskBuckets {
	return Summarize(records, scorer).Buckets
}

// Summarize is BucketByRisk plus the record count and mean mismatch score
// (0 for an empty collection).
func Summarize(records []models.IntakeRecord, scorer *mismatch.Scorer) Summary {
	if scorer == nil {
		scorer = mismatch.Default()
	}

	var s Summary
	total := 0
	for _, rec := range records {
		result := scorer.Score(rec)
		total += result.MismatchScore
		switch result.RiskLabel {
		case models.RiskHigh:
			s.Buckets.High++
		case models.RiskMedium:
			s.Buckets.Medium++
		default:
			s.Buckets.Low++
		}
	}

	s.Total = len(records)
	if s.Total > 0 {
		s.AverageScore = float64(total) / float64(s.Total)
	}
	return s
}
