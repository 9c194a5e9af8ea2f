// Package classify assigns each normalized policy a persistency outcome
// from its carrier's declared status vocabulary. Classification is pure and
// total: every status maps to exactly one outcome, with unknown statuses
// falling through to an explicitly declared default.
package classify

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/AshokDevireddy/persistency/internal/dates"
	"github.com/AshokDevireddy/persistency/internal/model"
)

// deathClaimPersistenceMonths is the elapsed-month threshold beyond which a
// death claim still counts as persistent business.
const deathClaimPersistenceMonths = 24

// Rule maps one raw status to its outcome. DeathClaim rules ignore Outcome
// and defer to the shared death-claim date test.
type Rule struct {
	Outcome    model.Outcome
	DeathClaim bool
}

// Vocabulary is one carrier's complete status rule set. Default applies to
// any status not present in Rules and must be declared, never implied.
type Vocabulary struct {
	Rules   map[string]Rule
	Default model.Outcome
}

// Normalize canonicalizes a raw status for rule lookup.
func Normalize(status string) string {
	return strings.ToUpper(strings.Join(strings.Fields(status), " "))
}

// Classify returns the outcome for one policy. Pure and total.
func (v Vocabulary) Classify(p model.NormalizedPolicy) model.Outcome {
	rule, ok := v.Rules[Normalize(p.StatusRaw)]
	if !ok {
		return v.Default
	}
	if rule.DeathClaim {
		return DeathClaimOutcome(p.ReferenceDate, p.SecondaryDate)
	}
	return rule.Outcome
}

// DeathClaimOutcome applies the cross-carrier death-claim exception: a claim
// after more than 24 elapsed months is persistent business, anything earlier
// is not. A missing secondary date is insufficient evidence and counts
// against persistency.
func DeathClaimOutcome(reference time.Time, secondary *time.Time) model.Outcome {
	if secondary == nil || secondary.IsZero() {
		return model.OutcomeNegative
	}
	if dates.MonthsBetween(reference, *secondary) > deathClaimPersistenceMonths {
		return model.OutcomePositive
	}
	return model.OutcomeNegative
}

// Validate checks the vocabulary is well formed: a declared default and only
// recognized outcomes.
func (v Vocabulary) Validate() error {
	if !validOutcome(v.Default) {
		return eris.Errorf("classify: default outcome %q not declared or unrecognized", v.Default)
	}
	for status, rule := range v.Rules {
		if status != Normalize(status) {
			return eris.Errorf("classify: status key %q is not normalized", status)
		}
		if !rule.DeathClaim && !validOutcome(rule.Outcome) {
			return eris.Errorf("classify: status %q has unrecognized outcome %q", status, rule.Outcome)
		}
	}
	return nil
}

func validOutcome(o model.Outcome) bool {
	switch o {
	case model.OutcomePositive, model.OutcomeNegative, model.OutcomeNeutral:
		return true
	}
	return false
}
