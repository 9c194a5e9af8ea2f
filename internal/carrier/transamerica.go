package carrier

import (
	"github.com/AshokDevireddy/persistency/internal/classify"
	"github.com/AshokDevireddy/persistency/internal/lapse"
	"github.com/AshokDevireddy/persistency/internal/model"
	"github.com/AshokDevireddy/persistency/internal/tabular"
)

// transamerica workbooks carry a report title and a generated-at line
// above the header, so the header sits on the third physical row.
func transamerica() Spec {
	return Spec{
		Key:          "transamerica",
		Name:         "Transamerica",
		Format:       tabular.FormatXLSX,
		HeaderRow:    2,
		SheetKeyword: "detail",
		Columns: Columns{
			PolicyID:     "Policy #",
			Status:       "Policy Status",
			Reference:    []string{"Issue Date"},
			Secondary:    "Paid To Date",
			WritingAgent: "Writing Agent",
			FirstName:    "Insured First Name",
			LastName:     "Insured Last Name",
			Phone:        "Phone",
		},
		Vocabulary: classify.Vocabulary{
			Rules: map[string]classify.Rule{
				"PREMIUM PAYING": {Outcome: model.OutcomePositive},
				"ACTIVE":         {Outcome: model.OutcomePositive},
				"PAID UP":        {Outcome: model.OutcomePositive},
				"LAPSED":         {Outcome: model.OutcomeNegative},
				"SURRENDERED":    {Outcome: model.OutcomeNegative},
				"TERMINATED":     {Outcome: model.OutcomeNegative},
				"NOT TAKEN":      {Outcome: model.OutcomeNegative},
				"DEATH CLAIM":    {DeathClaim: true},
				"PENDING":        {Outcome: model.OutcomeNeutral},
			},
			Default: model.OutcomeNeutral,
		},
		Lapse: lapse.Profile{
			Predicate: lapse.Predicate{
				Substrings: []string{"lapse", "grace"},
			},
			Rules: []lapse.Rule{
				{Substrings: []string{"nonpayment", "grace"}, Severity: model.SeverityHigh, Action: "notify client of outstanding premium"},
				{Severity: model.SeverityLow, Action: "monitor policy status"},
			},
			DaysToLapse: lapse.DaysFromSecondaryDate(31),
		},
	}
}
