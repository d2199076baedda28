// Package health computes the financial health score from monthly revenue,
// expenses, debt and cash. The score is a weighted sum of three clamped
// sub-scores (margin, runway and debt load) and is reproducible bit for bit.
package health

import (
	"math"

	"assessment-workers/internal/engine/numeric"
	"assessment-workers/internal/models"
)

// DefaultHistoryLimit is the number of history entries kept per user.
const DefaultHistoryLimit = 10

// Weights configures the health formula.
type Weights struct {
	Margin float64 `mapstructure:"margin" json:"margin"`
	Runway float64 `mapstructure:"runway" json:"runway"`
	Debt   float64 `mapstructure:"debt" json:"debt"`

	// NoBurnRunwayMonths is the runway assumed when expenses do not exceed revenue.
	NoBurnRunwayMonths float64 `mapstructure:"no_burn_runway_months" json:"noBurnRunwayMonths"`
	// FullRunwayMonths of runway earn the full runway sub-score.
	FullRunwayMonths float64 `mapstructure:"full_runway_months" json:"fullRunwayMonths"`
	// NoRevenueDebtLoad is the debt load assumed when revenue is zero.
	NoRevenueDebtLoad float64 `mapstructure:"no_revenue_debt_load" json:"noRevenueDebtLoad"`
	// DebtRevenueMonths is the number of months of revenue debt is measured against.
	DebtRevenueMonths float64 `mapstructure:"debt_revenue_months" json:"debtRevenueMonths"`

	StrongThreshold int `mapstructure:"strong_threshold" json:"strongThreshold"`
	GoodThreshold   int `mapstructure:"good_threshold" json:"goodThreshold"`
	FairThreshold   int `mapstructure:"fair_threshold" json:"fairThreshold"`
}

func DefaultWeights() Weights {
	return Weights{
		Margin:             45,
		Runway:             30,
		Debt:               25,
		NoBurnRunwayMonths: 12,
		FullRunwayMonths:   6,
		NoRevenueDebtLoad:  1,
		DebtRevenueMonths:  6,
		StrongThreshold:    85,
		GoodThreshold:      70,
		FairThreshold:      55,
	}
}

// WithOverrides returns w with every non-zero field of o applied.
func (w Weights) WithOverrides(o Weights) Weights {
	for _, f := range []struct {
		dst *float64
		v   float64
	}{
		{&w.Margin, o.Margin},
		{&w.Runway, o.Runway},
		{&w.Debt, o.Debt},
		{&w.NoBurnRunwayMonths, o.NoBurnRunwayMonths},
		{&w.FullRunwayMonths, o.FullRunwayMonths},
		{&w.NoRevenueDebtLoad, o.NoRevenueDebtLoad},
		{&w.DebtRevenueMonths, o.DebtRevenueMonths},
	} {
		if f.v != 0 {
			*f.dst = f.v
		}
	}
	if o.StrongThreshold != 0 {
		w.StrongThreshold = o.StrongThreshold
	}
	if o.GoodThreshold != 0 {
		w.GoodThreshold = o.GoodThreshold
	}
	if o.FairThreshold != 0 {
		w.FairThreshold = o.FairThreshold
	}
	return w
}

// Scorer is safe for concurrent use.
type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

var defaultScorer = NewScorer(DefaultWeights())

func Default() *Scorer {
	return defaultScorer
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// Compute scores a set of inputs. Negative, NaN and infinite figures are
// treated as 0. Ratios that overflow are reported at the float64 limit.
func (s *Scorer) Compute(in models.HealthInputs) models.HealthResult {
	w := s.weights

	revenue := numeric.ClampNonNegative(in.Revenue)
	expenses := numeric.ClampNonNegative(in.Expenses)
	debt := numeric.ClampNonNegative(in.Debt)
	cash := numeric.ClampNonNegative(in.Cash)

	margin := 0.0
	if revenue > 0 {
		margin = (revenue - expenses) / revenue
	}
	marginScore := numeric.Clamp01((margin + 0.25) / 0.75)

	burn := math.Max(0, expenses-revenue)
	runway := w.NoBurnRunwayMonths
	if burn > 0 {
		runway = cash / burn
	}
	runwayScore := numeric.Clamp01(runway / w.FullRunwayMonths)

	debtLoad := w.NoRevenueDebtLoad
	if revenue > 0 {
		debtLoad = debt / (revenue * w.DebtRevenueMonths)
	}
	debtScore := 1 - numeric.Clamp01(debtLoad)

	raw := math.Round(marginScore*w.Margin + runwayScore*w.Runway + debtScore*w.Debt)
	score := 0
	if !math.IsNaN(raw) {
		score = numeric.ClampInt(int(raw), 0, 100)
	}

	return models.HealthResult{
		Score: score,
		Label: s.Label(score),
		Metrics: models.HealthMetrics{
			Margin:   numeric.Finite(margin),
			Runway:   numeric.Finite(runway),
			DebtLoad: numeric.Finite(debtLoad),
		},
	}
}

// Label maps a score onto its qualitative band.
func (s *Scorer) Label(score int) models.HealthLabel {
	switch {
	case score >= s.weights.StrongThreshold:
		return models.HealthStrong
	case score >= s.weights.GoodThreshold:
		return models.HealthGood
	case score >= s.weights.FairThreshold:
		return models.HealthFair
	default:
		return models.HealthAtRisk
	}
}

// Compute uses the default weights.
func Compute(in models.HealthInputs) models.HealthResult {
	return defaultScorer.Compute(in)
}

// LabelFor uses the default thresholds.
func LabelFor(score int) models.HealthLabel {
	return defaultScorer.Label(score)
}
