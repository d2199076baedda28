// internal/workers/assessment/calculate-mismatch-score/models.go
package calculatemismatchscore

import "assessment-workers/internal/models"

type Input struct {
	Record  models.RawIntake `json:"record"`
	Persist bool             `json:"persist"`
}

// Output flattens the scoring result into process variables.
type Output struct {
	models.ScoringResult
	IntakeRecord models.IntakeRecord `json:"intakeRecord"`
	RecordID     string              `json:"recordId,omitempty"`
}
