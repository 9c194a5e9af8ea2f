// Package report renders analysis results for the CLI, as a human-readable
// table or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/rotisserie/eris"

	"github.com/AshokDevireddy/persistency/internal/model"
)

// Print dispatches on the requested output format.
func Print(w io.Writer, resp *model.AnalysisResponse, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return printJSON(w, resp)
	default:
		return printTables(w, resp)
	}
}

func printJSON(w io.Writer, resp *model.AnalysisResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return eris.Wrap(err, "report: encode json")
	}
	return nil
}

func printTables(w io.Writer, resp *model.AnalysisResponse) error {
	if err := printPersistencyTable(w, resp.Results); err != nil {
		return err
	}
	if len(resp.LapsePolicies) > 0 {
		fmt.Fprintln(w)
		if err := printLapseTable(w, resp.LapsePolicies); err != nil {
			return err
		}
	}
	for _, e := range resp.Errors {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(w, "%s %s (%s): %s\n", red("✗"), e.Carrier, e.File, e.Error)
	}
	return nil
}

func printPersistencyTable(w io.Writer, results []model.PersistencyResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Carrier", "Policies", "3 Mo", "6 Mo", "9 Mo", "All Time", "Skipped"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range results {
		data = append(data, []string{
			r.Carrier,
			strconv.Itoa(r.TotalPolicies),
			windowCell(r.TimeRanges[model.Window3Months]),
			windowCell(r.TimeRanges[model.Window6Months]),
			windowCell(r.TimeRanges[model.Window9Months]),
			windowCell(r.TimeRanges[model.WindowAll]),
			strconv.Itoa(r.SkippedRows),
		})
	}
	if err := table.Bulk(data); err != nil {
		return eris.Wrap(err, "report: table rows")
	}
	if err := table.Render(); err != nil {
		return eris.Wrap(err, "report: render")
	}
	return nil
}

// windowCell formats one window as "rate% (pos/total)", colored by health.
func windowCell(r model.WindowResult) string {
	total := r.PositiveCount + r.NegativeCount
	cell := fmt.Sprintf("%.2f%% (%d/%d)", r.PositivePercentage, r.PositiveCount, total)
	if total == 0 {
		return cell
	}
	switch {
	case r.PositivePercentage >= 85:
		return color.New(color.FgGreen).Sprint(cell)
	case r.PositivePercentage >= 70:
		return color.New(color.FgYellow).Sprint(cell)
	default:
		return color.New(color.FgRed).Sprint(cell)
	}
}

func printLapseTable(w io.Writer, cands []model.LapseCandidate) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Severity", "Carrier", "Policy", "Insured", "Phone", "Days", "Action"})

	var data [][]string
	for _, c := range cands {
		days := "-"
		if c.DaysToLapse != nil {
			days = strconv.Itoa(*c.DaysToLapse)
		}
		data = append(data, []string{
			severityCell(c.Severity),
			c.Carrier,
			c.ID,
			strings.TrimSpace(c.InsuredFirstName + " " + c.InsuredLastName),
			c.Phone,
			days,
			c.Action,
		})
	}
	if err := table.Bulk(data); err != nil {
		return eris.Wrap(err, "report: lapse rows")
	}
	if err := table.Render(); err != nil {
		return eris.Wrap(err, "report: render lapse")
	}
	return nil
}

func severityCell(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint(string(s))
	case model.SeverityHigh:
		return color.New(color.FgRed).Sprint(string(s))
	case model.SeverityMedium:
		return color.New(color.FgYellow).Sprint(string(s))
	default:
		return string(s)
	}
}
