// internal/workers/assessment/lookup-assessment/models.go
package lookupassessment

import "assessment-workers/internal/models"

type Input struct {
	Email string `json:"email"`
}

// Output carries the stored record and a score computed on read. Scores are
// never stored.
type Output struct {
	Found   bool                  `json:"found"`
	Record  *models.IntakeRecord  `json:"record,omitempty"`
	Scoring *models.ScoringResult `json:"scoring,omitempty"`
}
