package carrier

import (
	"github.com/AshokDevireddy/persistency/internal/classify"
	"github.com/AshokDevireddy/persistency/internal/lapse"
	"github.com/AshokDevireddy/persistency/internal/model"
	"github.com/AshokDevireddy/persistency/internal/tabular"
)

// Aetna and Accendo ship byte-identical workbook schemas under different
// carrier names (both are CVS Health brands), so they share one
// declaration parameterized by key and display name.

func aetna() Spec {
	return cvsHealthCarrier("aetna", "Aetna")
}

func accendo() Spec {
	return cvsHealthCarrier("accendo", "Accendo")
}

func cvsHealthCarrier(key, name string) Spec {
	return Spec{
		Key:          key,
		Name:         name,
		Format:       tabular.FormatXLSX,
		HeaderRow:    0,
		SheetKeyword: "policy",
		Columns: Columns{
			PolicyID:     "POLICYNO",
			Status:       "STATUSCATEGORY",
			StatusDetail: "STATUSREASON",
			Reference:    []string{"ORIGEFFDATE", "ISSUEDATE"},
			Secondary:    "TERMDATE",
			WritingAgent: "WRITINGAGENTNBR",
			FirstName:    "MEMBERFIRSTNAME",
			LastName:     "MEMBERLASTNAME",
			Phone:        "PHONENUMBER",
		},
		Vocabulary: classify.Vocabulary{
			Rules: map[string]classify.Rule{
				"ACTIVE":    {Outcome: model.OutcomePositive},
				"TERMED":    {Outcome: model.OutcomeNegative},
				"LAPSED":    {Outcome: model.OutcomeNegative},
				"DEATH":     {DeathClaim: true},
				"PENDING":   {Outcome: model.OutcomeNeutral},
				"DECLINED":  {Outcome: model.OutcomeNeutral},
				"WITHDRAWN": {Outcome: model.OutcomeNeutral},
			},
			Default: model.OutcomeNeutral,
		},
		// The workbook carries two structured status codes; the reason
		// column drives the severity table.
		Lapse: lapse.Profile{
			Predicate: lapse.Predicate{
				Exact:      map[string]struct{}{"PENDING LAPSE": {}},
				Substrings: []string{"lapse", "requested termination"},
			},
			Rules: []lapse.Rule{
				{Substrings: []string{"requested termination"}, Severity: model.SeverityCritical, Action: "call client before termination processes"},
				{Substrings: []string{"nonpayment", "past due", "premium due"}, Severity: model.SeverityHigh, Action: "notify client of outstanding premium"},
				{Substrings: []string{"requirement", "paperwork", "signature"}, Severity: model.SeverityMedium, Action: "collect missing paperwork"},
				{Severity: model.SeverityLow, Action: "monitor policy status"},
			},
			DaysToLapse: lapse.DaysFromSecondaryDate(0),
		},
	}
}
