// Package insight turns derived metrics and an industry benchmark into
// advisory findings. Rules run per category in a fixed order; within a
// category the first matching rule wins.
package insight

import (
	"fmt"
	"slices"

	"assessment-workers/internal/engine/numeric"
	"assessment-workers/internal/models"
)

// Thresholds are the rule cut-offs.
type Thresholds struct {
	LowMarginFactor       float64 `mapstructure:"low_margin_factor" json:"lowMarginFactor"`
	StrongMarginFactor    float64 `mapstructure:"strong_margin_factor" json:"strongMarginFactor"`
	CriticalRunwayMonths  float64 `mapstructure:"critical_runway_months" json:"criticalRunwayMonths"`
	LowRunwayMonths       float64 `mapstructure:"low_runway_months" json:"lowRunwayMonths"`
	HighDebtToRevenue     float64 `mapstructure:"high_debt_to_revenue" json:"highDebtToRevenue"`
	CriticalLTVCAC        float64 `mapstructure:"critical_ltv_cac" json:"criticalLtvCac"`
	HealthyLTVCAC         float64 `mapstructure:"healthy_ltv_cac" json:"healthyLtvCac"`
	MinRevenuePerEmployee float64 `mapstructure:"min_revenue_per_employee" json:"minRevenuePerEmployee"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		LowMarginFactor:       0.5,
		StrongMarginFactor:    1.5,
		CriticalRunwayMonths:  3,
		LowRunwayMonths:       6,
		HighDebtToRevenue:     0.6,
		CriticalLTVCAC:        1,
		HealthyLTVCAC:         3,
		MinRevenuePerEmployee: 100000,
	}
}

// WithOverrides returns th with every non-zero field of o applied.
func (th Thresholds) WithOverrides(o Thresholds) Thresholds {
	for _, f := range []struct {
		dst *float64
		v   float64
	}{
		{&th.LowMarginFactor, o.LowMarginFactor},
		{&th.StrongMarginFactor, o.StrongMarginFactor},
		{&th.CriticalRunwayMonths, o.CriticalRunwayMonths},
		{&th.LowRunwayMonths, o.LowRunwayMonths},
		{&th.HighDebtToRevenue, o.HighDebtToRevenue},
		{&th.CriticalLTVCAC, o.CriticalLTVCAC},
		{&th.HealthyLTVCAC, o.HealthyLTVCAC},
		{&th.MinRevenuePerEmployee, o.MinRevenuePerEmployee},
	} {
		if f.v != 0 {
			*f.dst = f.v
		}
	}
	return th
}

// Generator is safe for concurrent use.
type Generator struct {
	th Thresholds
}

func NewGenerator(th Thresholds) *Generator {
	return &Generator{th: th}
}

var defaultGenerator = NewGenerator(DefaultThresholds())

// Generate evaluates every category against bm. Metrics without data yield
// an empty, non-nil list.
func (g *Generator) Generate(m models.InsightMetrics, bm models.IndustryBenchmark) []models.Insight {
	out := make([]models.Insight, 0, 5)
	if !m.HasData {
		return out
	}

	for _, rule := range []func(models.InsightMetrics, models.IndustryBenchmark) (models.Insight, bool){
		g.profitability,
		g.runway,
		g.debt,
		g.unitEconomics,
		g.productivity,
	} {
		if in, ok := rule(m, bm); ok {
			out = append(out, in)
		}
	}
	return out
}

func (g *Generator) profitability(m models.InsightMetrics, bm models.IndustryBenchmark) (models.Insight, bool) {
	margin := m.ProfitMargin
	switch {
	case margin < 0:
		return models.Insight{
			Category: models.CategoryProfitability,
			Title:    "Operating at a Loss",
			Description: fmt.Sprintf("Expenses of %s exceed revenue of %s, a profit margin of %s.",
				numeric.FormatCurrency(m.Expenses), numeric.FormatCurrency(m.Revenue), pct(margin)),
			Severity:          models.SeverityCritical,
			RecommendedAction: "Cut non-essential costs and review pricing to return to break-even.",
			ImpactArea:        "Profitability",
			Timeframe:         "Immediate",
		}, true
	case margin < bm.Margin*g.th.LowMarginFactor:
		return models.Insight{
			Category: models.CategoryProfitability,
			Title:    "Below Industry Margin",
			Description: fmt.Sprintf("Your profit margin of %s is well below the %s benchmark of %s.",
				pct(margin), bm.DisplayName, pct(bm.Margin)),
			Severity:          models.SeverityHigh,
			RecommendedAction: "Identify your lowest-margin products or services and reprice or drop them.",
			ImpactArea:        "Profitability",
			Timeframe:         "30-60 days",
		}, true
	case margin > bm.Margin*g.th.StrongMarginFactor:
		return models.Insight{
			Category: models.CategoryProfitability,
			Title:    "Strong Profit Margin",
			Description: fmt.Sprintf("Your profit margin of %s is well above the %s benchmark of %s.",
				pct(margin), bm.DisplayName, pct(bm.Margin)),
			Severity:          models.SeverityPositive,
			RecommendedAction: "Reinvest surplus into growth or build a cash reserve.",
			ImpactArea:        "Profitability",
			Timeframe:         "Ongoing",
		}, true
	}
	return models.Insight{}, false
}

func (g *Generator) runway(m models.InsightMetrics, _ models.IndustryBenchmark) (models.Insight, bool) {
	if m.BurnRate <= 0 {
		return models.Insight{}, false
	}
	switch {
	case m.Runway < g.th.CriticalRunwayMonths:
		return models.Insight{
			Category: models.CategoryRunway,
			Title:    "Critical Cash Runway",
			Description: fmt.Sprintf("At a monthly burn of %s you have about %.1f months of cash left.",
				numeric.FormatCurrency(m.BurnRate), m.Runway),
			Severity:          models.SeverityCritical,
			RecommendedAction: "Reduce burn immediately and line up bridge financing or a credit line.",
			ImpactArea:        "Cash Flow",
			Timeframe:         "Immediate",
		}, true
	case m.Runway < g.th.LowRunwayMonths:
		return models.Insight{
			Category: models.CategoryRunway,
			Title:    "Limited Cash Runway",
			Description: fmt.Sprintf("At a monthly burn of %s you have about %.1f months of cash left.",
				numeric.FormatCurrency(m.BurnRate), m.Runway),
			Severity:          models.SeverityHigh,
			RecommendedAction: "Extend runway to at least six months by trimming costs or raising capital.",
			ImpactArea:        "Cash Flow",
			Timeframe:         "30 days",
		}, true
	}
	return models.Insight{}, false
}

func (g *Generator) debt(m models.InsightMetrics, bm models.IndustryBenchmark) (models.Insight, bool) {
	switch {
	case m.DebtToRevenue > g.th.HighDebtToRevenue:
		return models.Insight{
			Category: models.CategoryDebt,
			Title:    "High Debt Load",
			Description: fmt.Sprintf("Debt equals %s of annual revenue.",
				pct(m.DebtToRevenue)),
			Severity:          models.SeverityHigh,
			RecommendedAction: "Prioritise paying down high-interest debt and consider refinancing.",
			ImpactArea:        "Debt",
			Timeframe:         "60-90 days",
		}, true
	case m.DebtToRevenue > bm.DebtLoadRatio:
		return models.Insight{
			Category: models.CategoryDebt,
			Title:    "Debt Above Industry Average",
			Description: fmt.Sprintf("Debt equals %s of annual revenue against a %s benchmark of %s.",
				pct(m.DebtToRevenue), bm.DisplayName, pct(bm.DebtLoadRatio)),
			Severity:          models.SeverityMedium,
			RecommendedAction: "Avoid new borrowing until debt is back in line with your industry.",
			ImpactArea:        "Debt",
			Timeframe:         "90 days",
		}, true
	}
	return models.Insight{}, false
}

func (g *Generator) unitEconomics(m models.InsightMetrics, _ models.IndustryBenchmark) (models.Insight, bool) {
	if m.Customers <= 0 || !m.HasUnitEconomics {
		return models.Insight{}, false
	}
	switch {
	case m.LTVCACRatio < g.th.CriticalLTVCAC:
		return models.Insight{
			Category: models.CategoryUnitEconomics,
			Title:    "Unprofitable Customer Acquisition",
			Description: fmt.Sprintf("Each customer is worth %s but costs %s to acquire (LTV:CAC %.1fx).",
				numeric.FormatCurrency(m.LTV), numeric.FormatCurrency(m.CAC), m.LTVCACRatio),
			Severity:          models.SeverityCritical,
			RecommendedAction: "Pause paid acquisition channels that do not pay back and focus on retention.",
			ImpactArea:        "Unit Economics",
			Timeframe:         "Immediate",
		}, true
	case m.LTVCACRatio < g.th.HealthyLTVCAC:
		return models.Insight{
			Category: models.CategoryUnitEconomics,
			Title:    "Weak Unit Economics",
			Description: fmt.Sprintf("Your LTV:CAC ratio is %.1fx; a healthy business targets 3x or better.",
				m.LTVCACRatio),
			Severity:          models.SeverityMedium,
			RecommendedAction: "Lower acquisition cost or raise retention and pricing to lift lifetime value.",
			ImpactArea:        "Unit Economics",
			Timeframe:         "60-90 days",
		}, true
	}
	return models.Insight{}, false
}

func (g *Generator) productivity(m models.InsightMetrics, _ models.IndustryBenchmark) (models.Insight, bool) {
	if m.RevenuePerEmployee > 0 && m.RevenuePerEmployee < g.th.MinRevenuePerEmployee {
		return models.Insight{
			Category: models.CategoryProductivity,
			Title:    "Low Revenue per Employee",
			Description: fmt.Sprintf("Annual revenue per employee is %s.",
				numeric.FormatCurrency(m.RevenuePerEmployee)),
			Severity:          models.SeverityLow,
			RecommendedAction: "Review staffing against workload and automate repetitive tasks.",
			ImpactArea:        "Operations",
			Timeframe:         "Next quarter",
		}, true
	}
	return models.Insight{}, false
}

func pct(ratio float64) string {
	return numeric.FormatPercent(ratio*100, 1)
}

// Generate uses the default thresholds.
func Generate(m models.InsightMetrics, bm models.IndustryBenchmark) []models.Insight {
	return defaultGenerator.Generate(m, bm)
}

var severityRank = map[models.Severity]int{
	models.SeverityCritical: 0,
	models.SeverityHigh:     1,
	models.SeverityMedium:   2,
	models.SeverityLow:      3,
	models.SeverityPositive: 4,
}

// Prioritize returns a copy ordered most severe first. Ties keep their
// category order.
func Prioritize(insights []models.Insight) []models.Insight {
	out := slices.Clone(insights)
	if out == nil {
		out = []models.Insight{}
	}
	slices.SortStableFunc(out, func(a, b models.Insight) int {
		return severityRank[a.Severity] - severityRank[b.Severity]
	})
	return out
}
