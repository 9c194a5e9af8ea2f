package carrier

import (
	"github.com/AshokDevireddy/persistency/internal/classify"
	"github.com/AshokDevireddy/persistency/internal/lapse"
	"github.com/AshokDevireddy/persistency/internal/model"
	"github.com/AshokDevireddy/persistency/internal/tabular"
)

// mutualOfOmaha exports plain CSV with ISO effective dates and a small
// fixed status vocabulary. The export carries no forward-looking status,
// so the carrier explicitly declares no lapse signal.
func mutualOfOmaha() Spec {
	return Spec{
		Key:       "mutual-of-omaha",
		Name:      "Mutual of Omaha",
		Format:    tabular.FormatCSV,
		HeaderRow: 0,
		Columns: Columns{
			PolicyID:     "PolicyNumber",
			Status:       "PolicyStatus",
			Reference:    []string{"EffectiveDate"},
			Secondary:    "TerminationDate",
			WritingAgent: "ProducerNumber",
			FirstName:    "InsuredFirstName",
			LastName:     "InsuredLastName",
		},
		Vocabulary: classify.Vocabulary{
			Rules: map[string]classify.Rule{
				"ACTIVE":      {Outcome: model.OutcomePositive},
				"LAPSED":      {Outcome: model.OutcomeNegative},
				"SURRENDERED": {Outcome: model.OutcomeNegative},
				"TERMINATED":  {Outcome: model.OutcomeNegative},
				"DEATH":       {DeathClaim: true},
			},
			// The vocabulary is fixed; anything outside it is a data
			// problem and counts against persistency.
			Default: model.OutcomeNegative,
		},
		Lapse: lapse.None(),
	}
}
