package insight

import (
	"math"

	"assessment-workers/internal/engine/numeric"
	"assessment-workers/internal/models"
)

// noBurnRunwayMonths matches the health scorer's sentinel.
const noBurnRunwayMonths = 12

// DeriveMetrics computes the figures the rules compare. Monthly inputs are
// clamped first; debt-to-revenue and revenue per employee are annualised.
func DeriveMetrics(in models.HealthInputs, bm models.IndustryBenchmark) models.InsightMetrics {
	revenue := numeric.ClampNonNegative(in.Revenue)
	expenses := numeric.ClampNonNegative(in.Expenses)
	debt := numeric.ClampNonNegative(in.Debt)
	cash := numeric.ClampNonNegative(in.Cash)
	customers := numeric.ClampNonNegative(in.Customers)
	newCustomers := numeric.ClampNonNegative(in.NewCustomers)
	marketing := numeric.ClampNonNegative(in.MarketingSpend)
	team := numeric.ClampNonNegative(in.TeamSize)

	m := models.InsightMetrics{
		Revenue:   revenue,
		Expenses:  expenses,
		Customers: customers,
		HasData:   revenue > 0 || expenses > 0 || debt > 0 || cash > 0,
	}

	if revenue > 0 {
		m.ProfitMargin = (revenue - expenses) / revenue
	}

	m.BurnRate = math.Max(0, expenses-revenue)
	m.Runway = noBurnRunwayMonths
	if m.BurnRate > 0 {
		m.Runway = cash / m.BurnRate
	}

	switch {
	case revenue > 0:
		m.DebtToRevenue = debt / (revenue * 12)
	case debt > 0:
		m.DebtToRevenue = 1
	}

	churn := numeric.SafeNumber(bm.ChurnRate, 0)
	if customers > 0 && newCustomers > 0 && marketing > 0 && churn > 0 {
		m.LTV = (revenue / customers) / churn
		m.CAC = marketing / newCustomers
		m.LTVCACRatio = m.LTV / m.CAC
		m.HasUnitEconomics = true
	}

	if team > 0 {
		m.RevenuePerEmployee = revenue * 12 / team
	}

	for _, v := range []*float64{
		&m.ProfitMargin, &m.BurnRate, &m.Runway, &m.DebtToRevenue,
		&m.LTV, &m.CAC, &m.LTVCACRatio, &m.RevenuePerEmployee,
	} {
		*v = numeric.Finite(*v)
	}
	return m
}
