package sectors

import "FinBoard/internal/domain/models"

// providerLabels maps upstream sector display names to reference IDs. Kept
// in sync by hand with the reference list below.
var providerLabels = map[string]string{
	"Information Technology": "technology",
	"Technology":             "technology",
	"Energy":                 "energy",
	"Health Care":            "healthcare",
	"Healthcare":             "healthcare",
	"Financials":             "financials",
	"Consumer Discretionary": "consumer",
	"Industrials":            "industrials",
	"Utilities":              "utilities",
	"Materials":              "materials",
	"Real Estate":            "realestate",
	"Communication Services": "communication",
}

// reference is the static sector table with driver narratives and baseline
// performance figures used when no live data is available.
var reference = []models.Sector{
	{
		ID:      "technology",
		Name:    "Technology",
		Perf:    models.SectorPerf{Week1: 2.8, Month1: 7.4, Month3: 15.2},
		Drivers: "Strong earnings from megacap software and AI-related demand, secular cloud migration, and continued capex in AI infrastructure.",
	},
	{
		ID:      "energy",
		Name:    "Energy",
		Perf:    models.SectorPerf{Week1: -1.2, Month1: 3.5, Month3: 6.1},
		Drivers: "Oil price volatility, improving demand in some regions, but supply concerns and renewable transition create mixed longer-term outlook.",
	},
	{
		ID:      "healthcare",
		Name:    "Healthcare",
		Perf:    models.SectorPerf{Week1: 0.6, Month1: 1.8, Month3: 4.0},
		Drivers: "Defensive sector with steady M&A activity, drug approvals and aging demographics supporting long-term demand.",
	},
	{
		ID:      "financials",
		Name:    "Financials",
		Perf:    models.SectorPerf{Week1: 1.1, Month1: 4.9, Month3: 9.0},
		Drivers: "Higher rates have helped net interest margins; economic growth and loan demand will determine next leg of performance.",
	},
	{
		ID:      "consumer",
		Name:    "Consumer Discretionary",
		Perf:    models.SectorPerf{Week1: 3.2, Month1: 5.9, Month3: 8.6},
		Drivers: "Strong consumer spending on services and resilient retail sales, but sensitive to rates and income trends.",
	},
	{
		ID:      "industrials",
		Name:    "Industrials",
		Perf:    models.SectorPerf{Week1: 0.3, Month1: 2.0, Month3: 5.5},
		Drivers: "Gradual recovery in manufacturing and global trade headwinds; infrastructure spending is a tailwind.",
	},
	{
		ID:      "utilities",
		Name:    "Utilities",
		Perf:    models.SectorPerf{Week1: -0.5, Month1: -0.8, Month3: -1.5},
		Drivers: "Defensive yield plays that lag in risk-on environments; interest rate moves remain a key risk.",
	},
	{
		ID:      "materials",
		Name:    "Materials",
		Perf:    models.SectorPerf{Week1: 1.4, Month1: 3.1, Month3: 6.3},
		Drivers: "Cyclical exposure to commodity cycles and industrial activity; tied to China demand and supply constraints.",
	},
	{
		ID:      "realestate",
		Name:    "Real Estate",
		Perf:    models.SectorPerf{Week1: 0.9, Month1: 2.2, Month3: 3.8},
		Drivers: "Rising yields pressure some REIT valuations, but selective demand for logistics and data center assets persists.",
	},
	{
		ID:      "communication",
		Name:    "Communication Services",
		Perf:    models.SectorPerf{Week1: 1.8, Month1: 4.0, Month3: 7.2},
		Drivers: "Ad recovery and streaming monetization improving, with platform ad growth and engagement as drivers.",
	},
}

// Reference returns a copy of the static sector table.
func Reference() []models.Sector {
	out := make([]models.Sector, len(reference))
	copy(out, reference)
	return out
}

// Merge overlays live performance onto the static table. Live entries are
// keyed by provider display name; sectors without a live match keep their
// baseline figures with Live false.
func Merge(live map[string]models.SectorPerf) []models.Sector {
	byID := make(map[string]models.SectorPerf, len(live))
	for label, perf := range live {
		if id, ok := providerLabels[label]; ok {
			byID[id] = perf
		}
	}

	out := Reference()
	for i := range out {
		if perf, ok := byID[out[i].ID]; ok {
			out[i].Perf = perf
			out[i].Live = true
		}
	}
	return out
}
