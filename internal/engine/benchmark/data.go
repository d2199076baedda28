package benchmark

import "assessment-workers/internal/models"

// DefaultKey is the entry returned for unknown industry keys.
const DefaultKey = "saas"

// builtin is the shipped catalogue. The first entry is the default.
var builtin = []models.IndustryBenchmark{
	{Key: "saas", DisplayName: "SaaS / Software", Margin: 0.20, RunwayMonths: 18, DebtLoadRatio: 0.30, ChurnRate: 0.05},
	{Key: "ecommerce", DisplayName: "E-commerce", Margin: 0.10, RunwayMonths: 9, DebtLoadRatio: 0.35, ChurnRate: 0.08},
	{Key: "retail", DisplayName: "Retail", Margin: 0.05, RunwayMonths: 6, DebtLoadRatio: 0.40, ChurnRate: 0.10},
	{Key: "restaurant", DisplayName: "Restaurant", Margin: 0.04, RunwayMonths: 3, DebtLoadRatio: 0.50, ChurnRate: 0.15},
	{Key: "cafe", DisplayName: "Cafe / Coffee Shop", Margin: 0.06, RunwayMonths: 3, DebtLoadRatio: 0.45, ChurnRate: 0.12},
	{Key: "food_truck", DisplayName: "Food Truck", Margin: 0.07, RunwayMonths: 4, DebtLoadRatio: 0.45, ChurnRate: 0.15},
	{Key: "bakery", DisplayName: "Bakery", Margin: 0.08, RunwayMonths: 4, DebtLoadRatio: 0.40, ChurnRate: 0.10},
	{Key: "grocery", DisplayName: "Grocery", Margin: 0.02, RunwayMonths: 3, DebtLoadRatio: 0.45, ChurnRate: 0.06},
	{Key: "construction", DisplayName: "Construction", Margin: 0.06, RunwayMonths: 6, DebtLoadRatio: 0.50, ChurnRate: 0.20},
	{Key: "real_estate", DisplayName: "Real Estate", Margin: 0.15, RunwayMonths: 9, DebtLoadRatio: 0.60, ChurnRate: 0.25},
	{Key: "consulting", DisplayName: "Consulting", Margin: 0.18, RunwayMonths: 6, DebtLoadRatio: 0.20, ChurnRate: 0.15},
	{Key: "marketing_agency", DisplayName: "Marketing Agency", Margin: 0.12, RunwayMonths: 6, DebtLoadRatio: 0.25, ChurnRate: 0.12},
	{Key: "accounting", DisplayName: "Accounting / Bookkeeping", Margin: 0.18, RunwayMonths: 6, DebtLoadRatio: 0.20, ChurnRate: 0.06},
	{Key: "legal", DisplayName: "Legal Services", Margin: 0.20, RunwayMonths: 6, DebtLoadRatio: 0.20, ChurnRate: 0.08},
	{Key: "healthcare", DisplayName: "Healthcare Practice", Margin: 0.12, RunwayMonths: 6, DebtLoadRatio: 0.40, ChurnRate: 0.06},
	{Key: "dental", DisplayName: "Dental Practice", Margin: 0.14, RunwayMonths: 6, DebtLoadRatio: 0.45, ChurnRate: 0.05},
	{Key: "home_health", DisplayName: "Home Health Care", Margin: 0.08, RunwayMonths: 4, DebtLoadRatio: 0.30, ChurnRate: 0.10},
	{Key: "fitness", DisplayName: "Fitness / Gym", Margin: 0.10, RunwayMonths: 5, DebtLoadRatio: 0.45, ChurnRate: 0.12},
	{Key: "beauty_salon", DisplayName: "Beauty Salon / Spa", Margin: 0.08, RunwayMonths: 4, DebtLoadRatio: 0.35, ChurnRate: 0.10},
	{Key: "barbershop", DisplayName: "Barbershop", Margin: 0.10, RunwayMonths: 4, DebtLoadRatio: 0.30, ChurnRate: 0.08},
	{Key: "childcare", DisplayName: "Childcare", Margin: 0.06, RunwayMonths: 4, DebtLoadRatio: 0.35, ChurnRate: 0.10},
	{Key: "education", DisplayName: "Education / Training", Margin: 0.10, RunwayMonths: 6, DebtLoadRatio: 0.30, ChurnRate: 0.15},
	{Key: "tutoring", DisplayName: "Tutoring", Margin: 0.15, RunwayMonths: 4, DebtLoadRatio: 0.15, ChurnRate: 0.20},
	{Key: "manufacturing", DisplayName: "Manufacturing", Margin: 0.08, RunwayMonths: 9, DebtLoadRatio: 0.55, ChurnRate: 0.05},
	{Key: "wholesale", DisplayName: "Wholesale / Distribution", Margin: 0.04, RunwayMonths: 6, DebtLoadRatio: 0.50, ChurnRate: 0.06},
	{Key: "logistics", DisplayName: "Logistics", Margin: 0.06, RunwayMonths: 6, DebtLoadRatio: 0.50, ChurnRate: 0.08},
	{Key: "trucking", DisplayName: "Trucking", Margin: 0.05, RunwayMonths: 4, DebtLoadRatio: 0.60, ChurnRate: 0.10},
	{Key: "auto_repair", DisplayName: "Auto Repair", Margin: 0.10, RunwayMonths: 5, DebtLoadRatio: 0.35, ChurnRate: 0.10},
	{Key: "cleaning", DisplayName: "Cleaning Services", Margin: 0.10, RunwayMonths: 3, DebtLoadRatio: 0.20, ChurnRate: 0.15},
	{Key: "landscaping", DisplayName: "Landscaping", Margin: 0.10, RunwayMonths: 4, DebtLoadRatio: 0.35, ChurnRate: 0.15},
	{Key: "plumbing", DisplayName: "Plumbing", Margin: 0.12, RunwayMonths: 5, DebtLoadRatio: 0.30, ChurnRate: 0.08},
	{Key: "electrical", DisplayName: "Electrical Contracting", Margin: 0.12, RunwayMonths: 5, DebtLoadRatio: 0.30, ChurnRate: 0.08},
	{Key: "hvac", DisplayName: "HVAC", Margin: 0.12, RunwayMonths: 5, DebtLoadRatio: 0.35, ChurnRate: 0.08},
	{Key: "photography", DisplayName: "Photography", Margin: 0.15, RunwayMonths: 4, DebtLoadRatio: 0.20, ChurnRate: 0.25},
	{Key: "event_planning", DisplayName: "Event Planning", Margin: 0.12, RunwayMonths: 4, DebtLoadRatio: 0.25, ChurnRate: 0.30},
	{Key: "travel", DisplayName: "Travel Agency", Margin: 0.08, RunwayMonths: 4, DebtLoadRatio: 0.30, ChurnRate: 0.20},
	{Key: "hospitality", DisplayName: "Hospitality / Lodging", Margin: 0.10, RunwayMonths: 6, DebtLoadRatio: 0.55, ChurnRate: 0.15},
	{Key: "nonprofit", DisplayName: "Nonprofit", Margin: 0.03, RunwayMonths: 6, DebtLoadRatio: 0.15, ChurnRate: 0.12},
	{Key: "fintech", DisplayName: "Fintech", Margin: 0.15, RunwayMonths: 18, DebtLoadRatio: 0.35, ChurnRate: 0.04},
	{Key: "it_services", DisplayName: "IT Services / MSP", Margin: 0.15, RunwayMonths: 6, DebtLoadRatio: 0.25, ChurnRate: 0.05},
	{Key: "software_dev", DisplayName: "Software Development Agency", Margin: 0.15, RunwayMonths: 6, DebtLoadRatio: 0.20, ChurnRate: 0.10},
	{Key: "media", DisplayName: "Media / Publishing", Margin: 0.10, RunwayMonths: 6, DebtLoadRatio: 0.30, ChurnRate: 0.08},
	{Key: "gaming", DisplayName: "Gaming", Margin: 0.12, RunwayMonths: 12, DebtLoadRatio: 0.25, ChurnRate: 0.10},
	{Key: "biotech", DisplayName: "Biotech", Margin: 0.05, RunwayMonths: 24, DebtLoadRatio: 0.20, ChurnRate: 0.02},
	{Key: "pet_services", DisplayName: "Pet Services", Margin: 0.12, RunwayMonths: 4, DebtLoadRatio: 0.25, ChurnRate: 0.10},
}
