// Package intake turns raw form submissions into typed IntakeRecords. It is
// the only place form values are coerced; everything downstream trusts the
// normalized record.
package intake

import (
	"strings"

	"assessment-workers/internal/engine/numeric"
	"assessment-workers/internal/models"
)

// Normalize coerces a raw submission. Missing or invalid numbers become 0,
// negative amounts clamp to 0 and unknown account types are treated as
// business accounts.
func Normalize(raw models.RawIntake) models.IntakeRecord {
	return models.IntakeRecord{
		Email:            strings.ToLower(strings.TrimSpace(raw.Email)),
		BusinessName:     strings.TrimSpace(raw.BusinessName),
		AccountType:      normalizeAccountType(raw.AccountType),
		MonthlyRevenue:   numeric.ClampNonNegative(raw.MonthlyRevenue),
		MonthlyFees:      numeric.ClampNonNegative(raw.MonthlyFees),
		CashDeposits:     numeric.Truthy(raw.CashDeposits),
		WantsGrants:      numeric.Truthy(raw.WantsGrants),
		ZipCode:          strings.TrimSpace(raw.ZipCode),
		VeteranOwned:     numeric.Truthy(raw.VeteranOwned),
		ImmigrantFounder: numeric.Truthy(raw.ImmigrantFounder),
		BankSuggestion:   strings.TrimSpace(raw.BankSuggestion),
		GrantSuggestion:  strings.TrimSpace(raw.GrantSuggestion),
	}
}

// NormalizeAll preserves submission order.
func NormalizeAll(raws []models.RawIntake) []models.IntakeRecord {
	out := make([]models.IntakeRecord, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}

func normalizeAccountType(v string) models.AccountType {
	if strings.EqualFold(strings.TrimSpace(v), string(models.AccountTypePersonal)) {
		return models.AccountTypePersonal
	}
	return models.AccountTypeBusiness
}

// NormalizeHealthInputs coerces a raw health form. Missing, null and
// unparsable figures become 0 and negative figures clamp to 0.
func NormalizeHealthInputs(raw models.RawHealthInputs) models.HealthInputs {
	return models.HealthInputs{
		Revenue:        numeric.ClampNonNegative(raw.Revenue),
		Expenses:       numeric.ClampNonNegative(raw.Expenses),
		Debt:           numeric.ClampNonNegative(raw.Debt),
		Cash:           numeric.ClampNonNegative(raw.Cash),
		Industry:       strings.ToLower(strings.TrimSpace(raw.Industry)),
		TeamSize:       numeric.ClampNonNegative(raw.TeamSize),
		Customers:      numeric.ClampNonNegative(raw.Customers),
		NewCustomers:   numeric.ClampNonNegative(raw.NewCustomers),
		MarketingSpend: numeric.ClampNonNegative(raw.MarketingSpend),
		CompanyName:    strings.TrimSpace(raw.CompanyName),
	}
}
