// Package scope restricts a normalized policy set to an externally supplied
// allow-list of writing-agent numbers. The hierarchy traversal that builds
// the allow-list happens outside this engine.
package scope

import (
	"strings"

	"github.com/AshokDevireddy/persistency/internal/model"
)

// Filter returns the subset of policies whose writing-agent number is in
// the allow-list. Unrestricted scope is the identity. Filtering runs before
// aggregation and lapse extraction so results reflect only the permitted
// subset. Idempotent.
func Filter(policies []model.NormalizedPolicy, s model.AgentScope) []model.NormalizedPolicy {
	if s.Unrestricted() {
		return policies
	}

	allowed := make(map[string]struct{}, len(s.AllowedAgentNumbers))
	for _, n := range s.AllowedAgentNumbers {
		allowed[canonical(n)] = struct{}{}
	}

	out := make([]model.NormalizedPolicy, 0, len(policies))
	for _, p := range policies {
		if _, ok := allowed[canonical(p.WritingAgentNumber)]; ok {
			out = append(out, p)
		}
	}
	return out
}

// canonical strips surrounding whitespace and the leading-zero padding some
// carriers add to agent numbers. All-zero numbers collapse to "0" so padding
// variants of the same number always compare equal. Formula-wrapper escaping
// is already removed during adapter normalization.
func canonical(agent string) string {
	s := strings.TrimSpace(agent)
	if s == "" {
		return ""
	}
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
