// Package mismatch scores how poorly a business's banking setup fits its
// profile. Scoring is additive: each rule contributes points independently
// and the reasons are reported in rule evaluation order.
package mismatch

import (
	"fmt"
	"math"

	"assessment-workers/internal/engine/numeric"
	"assessment-workers/internal/models"
)

const maxScore = 100

// Weights holds every point value and threshold used by the scorer.
type Weights struct {
	PersonalAccount          int     `mapstructure:"personal_account" json:"personalAccount"`
	CashDeposits             int     `mapstructure:"cash_deposits" json:"cashDeposits"`
	LowRevenue               int     `mapstructure:"low_revenue" json:"lowRevenue"`
	ModerateRevenue          int     `mapstructure:"moderate_revenue" json:"moderateRevenue"`
	GrantSeeking             int     `mapstructure:"grant_seeking" json:"grantSeeking"`
	HighFees                 int     `mapstructure:"high_fees" json:"highFees"`
	LowRevenueThreshold      float64 `mapstructure:"low_revenue_threshold" json:"lowRevenueThreshold"`
	ModerateRevenueThreshold float64 `mapstructure:"moderate_revenue_threshold" json:"moderateRevenueThreshold"`
	FeePercentThreshold      float64 `mapstructure:"fee_percent_threshold" json:"feePercentThreshold"`
	HighRiskThreshold        int     `mapstructure:"high_risk_threshold" json:"highRiskThreshold"`
	MediumRiskThreshold      int     `mapstructure:"medium_risk_threshold" json:"mediumRiskThreshold"`
}

// DefaultWeights returns the production point table.
func DefaultWeights() Weights {
	return Weights{
		PersonalAccount:          30,
		CashDeposits:             20,
		LowRevenue:               25,
		ModerateRevenue:          10,
		GrantSeeking:             10,
		HighFees:                 15,
		LowRevenueThreshold:      5000,
		ModerateRevenueThreshold: 10000,
		FeePercentThreshold:      2,
		HighRiskThreshold:        60,
		MediumRiskThreshold:      30,
	}
}

// WithOverrides returns w with every non-zero field of o applied.
func (w Weights) WithOverrides(o Weights) Weights {
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setFloat := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setInt(&w.PersonalAccount, o.PersonalAccount)
	setInt(&w.CashDeposits, o.CashDeposits)
	setInt(&w.LowRevenue, o.LowRevenue)
	setInt(&w.ModerateRevenue, o.ModerateRevenue)
	setInt(&w.GrantSeeking, o.GrantSeeking)
	setInt(&w.HighFees, o.HighFees)
	setFloat(&w.LowRevenueThreshold, o.LowRevenueThreshold)
	setFloat(&w.ModerateRevenueThreshold, o.ModerateRevenueThreshold)
	setFloat(&w.FeePercentThreshold, o.FeePercentThreshold)
	setInt(&w.HighRiskThreshold, o.HighRiskThreshold)
	setInt(&w.MediumRiskThreshold, o.MediumRiskThreshold)
	return w
}

// Scorer applies a fixed Weights table. The zero value is not usable; use
// NewScorer or Default.
type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

var defaultScorer = NewScorer(DefaultWeights())

// Default returns a scorer using DefaultWeights.
func Default() *Scorer {
	return defaultScorer
}

// Weights returns a copy of the scorer's table.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the mismatch score for a record. Same input, same output.
func (s *Scorer) Score(rec models.IntakeRecord) models.ScoringResult {
	w := s.weights
	points := 0
	reasons := make([]string, 0, 5)

	revenue := numeric.ClampNonNegative(rec.MonthlyRevenue)
	fees := numeric.ClampNonNegative(rec.MonthlyFees)

	if rec.AccountType == models.AccountTypePersonal {
		points += w.PersonalAccount
		reasons = append(reasons, "Using personal account for business")
	}

	if rec.CashDeposits {
		points += w.CashDeposits
		reasons = append(reasons, "Frequent cash deposits (higher scrutiny)")
	}

	if revenue < w.LowRevenueThreshold {
		points += w.LowRevenue
		reasons = append(reasons, fmt.Sprintf("Low monthly revenue (<%s)", shortCurrency(w.LowRevenueThreshold)))
	} else if revenue < w.ModerateRevenueThreshold {
		points += w.ModerateRevenue
		reasons = append(reasons, fmt.Sprintf("Moderate revenue (%s–%s)",
			shortCurrency(w.LowRevenueThreshold), shortCurrency(w.ModerateRevenueThreshold)))
	}

	if rec.WantsGrants {
		points += w.GrantSeeking
		reasons = append(reasons, "Seeking grant guidance")
	}

	feePercentage := FeePercentage(fees, revenue)
	if feePercentage > w.FeePercentThreshold {
		points += w.HighFees
		reasons = append(reasons, fmt.Sprintf("High banking fees (%.1f%% of revenue)", numeric.Round1(feePercentage)))
	}

	score := numeric.ClampInt(points, 0, maxScore)

	return models.ScoringResult{
		MismatchScore:   score,
		RiskLabel:       s.Label(score),
		KeyReasons:      reasons,
		FeeWastePercent: feePercentage,
		BankSuggestion:  rec.BankSuggestion,
		GrantSuggestion: rec.GrantSuggestion,
	}
}

// Label maps a score onto a risk tier.
func (s *Scorer) Label(score int) models.RiskLabel {
	switch {
	case score >= s.weights.HighRiskThreshold:
		return models.RiskHigh
	case score >= s.weights.MediumRiskThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// Score uses the default weights.
func Score(rec models.IntakeRecord) models.ScoringResult {
	return defaultScorer.Score(rec)
}

// RiskLabelFor uses the default thresholds.
func RiskLabelFor(score int) models.RiskLabel {
	return defaultScorer.Label(score)
}

// shortCurrency renders whole thousands as "$5k" and anything else in full.
func shortCurrency(v float64) string {
	if v >= 1000 && math.Mod(v, 1000) == 0 {
		return fmt.Sprintf("$%.0fk", v/1000)
	}
	return numeric.FormatCurrency(v)
}

// FeePercentage is fees as a percentage of revenue, 0 unless both are positive.
func FeePercentage(fees, revenue float64) float64 {
	if fees > 0 && revenue > 0 {
		return fees / revenue * 100
	}
	return 0
}
