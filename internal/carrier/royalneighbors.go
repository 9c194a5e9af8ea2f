package carrier

import (
	"github.com/AshokDevireddy/persistency/internal/classify"
	"github.com/AshokDevireddy/persistency/internal/lapse"
	"github.com/AshokDevireddy/persistency/internal/model"
	"github.com/AshokDevireddy/persistency/internal/tabular"
)

// royalNeighbors exports free-text certificate statuses. Persistency uses a
// curated whitelist/blacklist; everything else classifies neutral and the
// breakdown shows only the seven most common labels before the "Other"
// bucket takes over.
func royalNeighbors() Spec {
	return Spec{
		Key:                  "royal-neighbors",
		Name:                 "Royal Neighbors",
		Format:               tabular.FormatCSV,
		HeaderRow:            0,
		MaxBreakdownStatuses: 7,
		Columns: Columns{
			PolicyID:     "Certificate Number",
			Status:       "Certificate Status",
			Reference:    []string{"Issue Date"},
			Secondary:    "Paid To Date",
			WritingAgent: "Agent Number",
			FirstName:    "First Name",
			LastName:     "Last Name",
			Phone:        "Phone",
		},
		Vocabulary: classify.Vocabulary{
			Rules: map[string]classify.Rule{
				// Whitelist: in-force variants.
				"PREMIUM PAYING":  {Outcome: model.OutcomePositive},
				"PAID-UP":         {Outcome: model.OutcomePositive},
				"REDUCED PAID-UP": {Outcome: model.OutcomePositive},
				"EXTENDED TERM":   {Outcome: model.OutcomePositive},
				// Blacklist: off-the-books variants.
				"LAPSED - NONPAYMENT":    {Outcome: model.OutcomeNegative},
				"LAPSED":                 {Outcome: model.OutcomeNegative},
				"SURRENDERED FOR CASH":   {Outcome: model.OutcomeNegative},
				"TERMINATED - FREE LOOK": {Outcome: model.OutcomeNegative},
				"EXPIRED":                {Outcome: model.OutcomeNegative},
				"DEATH CLAIM PAID":       {DeathClaim: true},
			},
			// Free-text long tail (matured, converted, clerical variants)
			// stays neutral and surfaces through the breakdown only.
			Default: model.OutcomeNeutral,
		},
		Lapse: lapse.Profile{
			Predicate: lapse.Predicate{
				Substrings: []string{"lapse", "requested termination"},
			},
			Rules: []lapse.Rule{
				{Substrings: []string{"nonpayment"}, Severity: model.SeverityHigh, Action: "notify client of outstanding premium"},
				{Severity: model.SeverityLow, Action: "monitor policy status"},
			},
			DaysToLapse: lapse.DaysFromSecondaryDate(31),
		},
	}
}
