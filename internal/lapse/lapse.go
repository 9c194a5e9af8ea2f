// Package lapse flags individual policies as lapsed or at risk and attaches
// a recommended remediation action with a severity tier. Every carrier
// declares its own predicate and rule table; there is no cross-carrier
// status taxonomy beyond the severity enum itself.
package lapse

import (
	"sort"
	"strings"
	"time"

	"github.com/AshokDevireddy/persistency/internal/classify"
	"github.com/AshokDevireddy/persistency/internal/model"
)

// Predicate decides whether a policy belongs on the triage list. Exact
// entries match the normalized status; Substrings match case-insensitively
// against the status and status detail.
type Predicate struct {
	Exact      map[string]struct{}
	Substrings []string
}

// Match reports whether either status field trips the predicate.
func (p Predicate) Match(status, detail string) bool {
	if _, ok := p.Exact[classify.Normalize(status)]; ok {
		return true
	}
	if _, ok := p.Exact[classify.Normalize(detail)]; ok && detail != "" {
		return true
	}
	haystack := strings.ToLower(status + " " + detail)
	for _, sub := range p.Substrings {
		if strings.Contains(haystack, sub) {
			return true
		}
	}
	return false
}

// Rule is one entry of an ordered severity table. The first rule whose
// Substrings match wins; an empty Substrings list matches everything and
// serves as the table's catch-all.
type Rule struct {
	Substrings []string
	Severity   model.Severity
	Action     string
}

// Profile is one carrier's complete at-risk declaration. A carrier with no
// reliable signal declares that with None() rather than omitting the
// profile; the registry rejects missing profiles.
type Profile struct {
	Disabled    bool
	Predicate   Predicate
	Rules       []Rule
	DaysToLapse func(p model.NormalizedPolicy, now time.Time) *int
}

// None is the explicit declaration that a carrier's export carries no
// reliable at-risk signal. Such carriers contribute zero candidates.
func None() Profile {
	return Profile{Disabled: true}
}

// DaysFromSecondaryDate derives days-to-lapse from the policy's secondary
// (paid-to) date plus a carrier grace period. Policies without the date get
// no estimate.
func DaysFromSecondaryDate(graceDays int) func(model.NormalizedPolicy, time.Time) *int {
	return func(p model.NormalizedPolicy, now time.Time) *int {
		if p.SecondaryDate == nil || p.SecondaryDate.IsZero() {
			return nil
		}
		deadline := p.SecondaryDate.AddDate(0, 0, graceDays)
		days := int(deadline.Sub(now).Hours() / 24)
		return &days
	}
}

// Extract applies the profile to a policy set and returns unsorted
// candidates. Callers sort the cross-carrier union with Sort.
func Extract(policies []model.NormalizedPolicy, profile Profile, now time.Time) []model.LapseCandidate {
	if profile.Disabled {
		return nil
	}

	var out []model.LapseCandidate
	for _, p := range policies {
		if !profile.Predicate.Match(p.StatusRaw, p.StatusDetail) {
			continue
		}

		severity, action := apply(profile.Rules, p.StatusRaw, p.StatusDetail)

		statuses := []string{p.StatusRaw}
		if p.StatusDetail != "" {
			statuses = append(statuses, p.StatusDetail)
		}

		var days *int
		if profile.DaysToLapse != nil {
			days = profile.DaysToLapse(p, now)
		}

		out = append(out, model.LapseCandidate{
			ID:               p.PolicyID,
			Carrier:          p.CarrierName,
			InsuredFirstName: p.InsuredFirstName,
			InsuredLastName:  p.InsuredLastName,
			Phone:            p.Phone,
			Statuses:         statuses,
			DaysToLapse:      days,
			Action:           action,
			Severity:         severity,
		})
	}
	return out
}

func apply(rules []Rule, status, detail string) (model.Severity, string) {
	haystack := strings.ToLower(status + " " + detail)
	for _, r := range rules {
		if len(r.Substrings) == 0 {
			return r.Severity, r.Action
		}
		for _, sub := range r.Substrings {
			if strings.Contains(haystack, sub) {
				return r.Severity, r.Action
			}
		}
	}
	return model.SeverityLow, "monitor policy status"
}

// Sort orders candidates for display: severity first, then ascending days
// to lapse with unknown last, then carrier and id for determinism.
func Sort(cands []model.LapseCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		switch {
		case a.DaysToLapse == nil && b.DaysToLapse != nil:
			return false
		case a.DaysToLapse != nil && b.DaysToLapse == nil:
			return true
		case a.DaysToLapse != nil && b.DaysToLapse != nil && *a.DaysToLapse != *b.DaysToLapse:
			return *a.DaysToLapse < *b.DaysToLapse
		}
		if a.Carrier != b.Carrier {
			return a.Carrier < b.Carrier
		}
		return a.ID < b.ID
	})
}
