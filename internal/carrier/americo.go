package carrier

import (
	"github.com/AshokDevireddy/persistency/internal/classify"
	"github.com/AshokDevireddy/persistency/internal/lapse"
	"github.com/AshokDevireddy/persistency/internal/model"
	"github.com/AshokDevireddy/persistency/internal/tabular"
)

// americo exports CSV with every cell wrapped in spreadsheet formula
// escaping (="value"), US-format policy dates, and a paid-to date that
// feeds both the death-claim exception and days-to-lapse.
func americo() Spec {
	return Spec{
		Key:        "americo",
		Name:       "Americo",
		Format:     tabular.FormatCSV,
		HeaderRow:  0,
		Preprocess: StripFormulaEscapes,
		Columns: Columns{
			PolicyID:     "Policy Number",
			Status:       "Policy Status",
			Reference:    []string{"Policy Date"},
			Secondary:    "Paid To Date",
			WritingAgent: "Agent Number",
			FirstName:    "Insured First Name",
			LastName:     "Insured Last Name",
			Phone:        "Insured Phone",
		},
		Vocabulary: classify.Vocabulary{
			Rules: map[string]classify.Rule{
				"ACTIVE":       {Outcome: model.OutcomePositive},
				"PAID UP":      {Outcome: model.OutcomePositive},
				"RESTORED":     {Outcome: model.OutcomePositive},
				"LAPSED":       {Outcome: model.OutcomeNegative},
				"SURRENDERED":  {Outcome: model.OutcomeNegative},
				"CANCELLED":    {Outcome: model.OutcomeNegative},
				"TERMINATED":   {Outcome: model.OutcomeNegative},
				"CHARGED BACK": {Outcome: model.OutcomeNegative},
				"NOT TAKEN":    {Outcome: model.OutcomeNegative},
				"DEATH CLAIM":  {DeathClaim: true},
				"PENDING":      {Outcome: model.OutcomeNeutral},
			},
			// Unlisted statuses stay out of the persistency ratio rather
			// than silently counting against it.
			Default: model.OutcomeNeutral,
		},
		Lapse: lapse.Profile{
			Predicate: lapse.Predicate{
				Exact: map[string]struct{}{
					"LAPSE PENDING": {},
					"GRACE PERIOD":  {},
				},
			},
			Rules: []lapse.Rule{
				{Substrings: []string{"grace", "lapse pending"}, Severity: model.SeverityHigh, Action: "notify client of outstanding premium"},
				{Severity: model.SeverityLow, Action: "monitor policy status"},
			},
			DaysToLapse: lapse.DaysFromSecondaryDate(31),
		},
	}
}
