package insight

import (
	"testing"

	"assessment-workers/internal/engine/benchmark"
	"assessment-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saas() models.IndustryBenchmark {
	return benchmark.Builtin().Lookup("saas")
}

func titles(insights []models.Insight) []string {
	out := make([]string, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Title)
	}
	return out
}

func TestGenerate_NoData(t *testing.T) {
	table := benchmark.Builtin()
	for _, key := range table.Keys() {
		insights := Generate(models.InsightMetrics{HasData: false, ProfitMargin: -5, DebtToRevenue: 9}, table.Lookup(key))
		assert.Empty(t, insights, key)
		assert.NotNil(t, insights)
	}
}

func TestGenerate_NoDataFromInputs(t *testing.T) {
	m := DeriveMetrics(models.HealthInputs{TeamSize: 4, Customers: 10}, saas())

	assert.False(t, m.HasData)
	assert.Empty(t, Generate(m, saas()))
}

func TestGenerate_Profitability(t *testing.T) {
	bm := saas() // margin 0.20

	tests := []struct {
		name     string
		margin   float64
		expected []string
	}{
		{"loss", -0.1, []string{"Operating at a Loss"}},
		{"below half benchmark", 0.05, []string{"Below Industry Margin"}},
		{"in line", 0.2, []string{}},
		{"strong", 0.4, []string{"Strong Profit Margin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.InsightMetrics{HasData: true, ProfitMargin: tt.margin, Runway: 12}
			assert.Equal(t, tt.expected, titles(Generate(m, bm)))
		})
	}
}

func TestGenerate_Runway(t *testing.T) {
	bm := saas()

	critical := Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.2, BurnRate: 1000, Runway: 2.5}, bm)
	require.Len(t, critical, 1)
	assert.Equal(t, models.SeverityCritical, critical[0].Severity)
	assert.Contains(t, critical[0].Description, "2.5 months")
	assert.Contains(t, critical[0].Description, "$1,000")

	limited := Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.2, BurnRate: 1000, Runway: 4}, bm)
	require.Len(t, limited, 1)
	assert.Equal(t, "Limited Cash Runway", limited[0].Title)

	noBurn := Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.2, BurnRate: 0, Runway: 1}, bm)
	assert.Empty(t, noBurn)
}

func TestGenerate_Debt(t *testing.T) {
	bm := saas() // debt load 0.30

	high := Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.2, Runway: 12, DebtToRevenue: 0.7}, bm)
	assert.Equal(t, []string{"High Debt Load"}, titles(high))

	medium := Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.2, Runway: 12, DebtToRevenue: 0.4}, bm)
	assert.Equal(t, []string{"Debt Above Industry Average"}, titles(medium))
	assert.Equal(t, models.SeverityMedium, medium[0].Severity)
}

func TestGenerate_UnitEconomics(t *testing.T) {
	bm := saas()
	base := models.InsightMetrics{HasData: true, ProfitMargin: 0.2, Runway: 12, Customers: 10, HasUnitEconomics: true}

	base.LTVCACRatio = 0.5
	assert.Equal(t, []string{"Unprofitable Customer Acquisition"}, titles(Generate(base, bm)))

	base.LTVCACRatio = 2
	assert.Equal(t, []string{"Weak Unit Economics"}, titles(Generate(base, bm)))

	base.LTVCACRatio = 4
	assert.Empty(t, Generate(base, bm))

	base.LTVCACRatio = 0.5
	base.HasUnitEconomics = false
	assert.Empty(t, Generate(base, bm))
}

func TestGenerate_Productivity(t *testing.T) {
	bm := saas()

	low := Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.2, Runway: 12, RevenuePerEmployee: 60000}, bm)
	require.Len(t, low, 1)
	assert.Equal(t, models.SeverityLow, low[0].Severity)
	assert.Contains(t, low[0].Description, "$60,000")

	none := Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.2, Runway: 12, RevenuePerEmployee: 0}, bm)
	assert.Empty(t, none)
}

func TestGenerate_CategoryOrder(t *testing.T) {
	in := models.HealthInputs{
		Revenue:        10000,
		Expenses:       14000,
		Debt:           200000,
		Cash:           8000,
		TeamSize:       5,
		Customers:      50,
		NewCustomers:   5,
		MarketingSpend: 50000,
	}

	insights := Generate(DeriveMetrics(in, saas()), saas())

	assert.Equal(t, []string{
		"Operating at a Loss",
		"Critical Cash Runway",
		"High Debt Load",
		"Unprofitable Customer Acquisition",
		"Low Revenue per Employee",
	}, titles(insights))

	for _, in := range insights {
		assert.NotEmpty(t, in.RecommendedAction)
		assert.NotEmpty(t, in.ImpactArea)
		assert.NotEmpty(t, in.Timeframe)
	}
}

func TestGenerate_DescriptionsInterpolateValues(t *testing.T) {
	bm := saas()

	a := Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.05, Runway: 12}, bm)
	b := Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.08, Runway: 12}, bm)

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Contains(t, a[0].Description, "5.0%")
	assert.Contains(t, b[0].Description, "8.0%")
	assert.Contains(t, a[0].Description, bm.DisplayName)
}

func TestGenerator_CustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.MinRevenuePerEmployee = 50000
	g := NewGenerator(th)

	insights := g.Generate(models.InsightMetrics{HasData: true, ProfitMargin: 0.2, Runway: 12, RevenuePerEmployee: 60000}, saas())

	assert.Empty(t, insights)
}

func TestPrioritize(t *testing.T) {
	insights := []models.Insight{
		{Title: "a", Severity: models.SeverityPositive},
		{Title: "b", Severity: models.SeverityHigh},
		{Title: "c", Severity: models.SeverityLow},
		{Title: "d", Severity: models.SeverityCritical},
		{Title: "e", Severity: models.SeverityHigh},
	}

	sorted := Prioritize(insights)

	assert.Equal(t, []string{"d", "b", "e", "c", "a"}, titles(sorted))
	assert.Equal(t, "a", insights[0].Title)
	assert.NotNil(t, Prioritize(nil))
}
