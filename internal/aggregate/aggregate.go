// Package aggregate buckets normalized policies into trailing calendar
// windows and computes per-window persistency counts and status breakdowns.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/AshokDevireddy/persistency/internal/model"
)

// OtherBucket collects the long tail of statuses a carrier chose not to
// show individually.
const OtherBucket = "Other"

// Classifier maps one policy to its persistency outcome.
type Classifier func(model.NormalizedPolicy) model.Outcome

// Windows computes persistency counts per trailing window. Neutral
// classifications stay out of both the numerator and the denominator;
// an empty window yields a zero percentage, never NaN.
func Windows(policies []model.NormalizedPolicy, classify Classifier, now time.Time) map[model.TimeWindow]model.WindowResult {
	out := make(map[model.TimeWindow]model.WindowResult, len(model.Windows))
	for _, w := range model.Windows {
		var res model.WindowResult
		for _, p := range policies {
			if !inWindow(p, w, now) {
				continue
			}
			switch classify(p) {
			case model.OutcomePositive:
				res.PositiveCount++
			case model.OutcomeNegative:
				res.NegativeCount++
			}
		}
		res.PositivePercentage = percentage(res.PositiveCount, res.PositiveCount+res.NegativeCount)
		out[w] = res
	}
	return out
}

// Breakdowns computes per-window status distributions over every record in
// the window, classified or not. When maxStatuses > 0 only the most common
// labels are kept individually and the remainder collapses into "Other".
func Breakdowns(policies []model.NormalizedPolicy, maxStatuses int, now time.Time) map[model.TimeWindow]model.StatusBreakdown {
	out := make(map[model.TimeWindow]model.StatusBreakdown, len(model.Windows))
	for _, w := range model.Windows {
		counts := make(map[string]int)
		total := 0
		for _, p := range policies {
			if !inWindow(p, w, now) {
				continue
			}
			counts[p.StatusRaw]++
			total++
		}

		counts = truncate(counts, maxStatuses)

		breakdown := make(model.StatusBreakdown, len(counts))
		for status, n := range counts {
			breakdown[status] = model.StatusCount{Count: n, Percentage: percentage(n, total)}
		}
		out[w] = breakdown
	}
	return out
}

// inWindow reports whether the policy's reference date falls inside the
// trailing window. Month arithmetic is calendar subtraction, not a 30-day
// approximation.
func inWindow(p model.NormalizedPolicy, w model.TimeWindow, now time.Time) bool {
	if p.ReferenceDate.IsZero() {
		return false
	}
	months := w.Months()
	if months < 0 {
		return true
	}
	cutoff := now.AddDate(0, -months, 0)
	return !p.ReferenceDate.Before(cutoff)
}

// truncate keeps the top-n statuses by count and sums the rest into the
// Other bucket. Ties break on label so the cut is deterministic.
func truncate(counts map[string]int, n int) map[string]int {
	if n <= 0 || len(counts) <= n {
		return counts
	}

	type entry struct {
		status string
		count  int
	}
	entries := make([]entry, 0, len(counts))
	for s, c := range counts {
		entries = append(entries, entry{s, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].status < entries[j].status
	})

	kept := make(map[string]int, n+1)
	for i, e := range entries {
		if i < n {
			kept[e.status] = e.count
			continue
		}
		kept[OtherBucket] += e.count
	}
	return kept
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return Round2(float64(part) / float64(whole) * 100)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
