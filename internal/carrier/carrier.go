// Package carrier declares one adapter per insurance carrier: the file
// layout, column mapping, status vocabulary, and at-risk profile needed to
// turn that carrier's roster export into normalized policies. Adapters are
// independent values with no shared mutable state; a new carrier is a new
// file plus a registry entry and touches nothing else.
package carrier

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/AshokDevireddy/persistency/internal/classify"
	"github.com/AshokDevireddy/persistency/internal/dates"
	"github.com/AshokDevireddy/persistency/internal/lapse"
	"github.com/AshokDevireddy/persistency/internal/model"
	"github.com/AshokDevireddy/persistency/internal/tabular"
)

// Columns maps a carrier's header labels onto NormalizedPolicy fields.
// PolicyID and Status are required on every row; Reference lists candidate
// date columns tried in order (first parseable wins).
type Columns struct {
	PolicyID     string
	Status       string
	StatusDetail string
	Reference    []string
	Secondary    string
	WritingAgent string
	FirstName    string
	LastName     string
	Phone        string
}

// Spec is one carrier's full adapter declaration.
type Spec struct {
	Key  string
	Name string

	Format       tabular.Format
	HeaderRow    int
	SheetKeyword string
	Delimiter    rune

	// Preprocess rewrites raw bytes before row splitting, e.g. stripping
	// spreadsheet formula escaping from CSV exports.
	Preprocess func([]byte) []byte

	Columns    Columns
	Vocabulary classify.Vocabulary
	Lapse      lapse.Profile

	// MaxBreakdownStatuses caps how many status labels appear individually
	// in breakdowns before the rest collapse into "Other". 0 = unlimited.
	MaxBreakdownStatuses int
}

// Validate checks the adapter declaration is complete. The lapse profile
// must be present even when the carrier has no signal: that case is the
// explicit lapse.None() declaration, detected here by requiring either
// Disabled or a usable predicate.
func (s Spec) Validate() error {
	if s.Key == "" || s.Name == "" {
		return eris.New("carrier: key and name are required")
	}
	if s.Format != tabular.FormatCSV && s.Format != tabular.FormatXLSX {
		return eris.Errorf("carrier %s: unknown format %q", s.Key, s.Format)
	}
	if s.Columns.PolicyID == "" || s.Columns.Status == "" {
		return eris.Errorf("carrier %s: policy id and status columns are required", s.Key)
	}
	if len(s.Columns.Reference) == 0 {
		return eris.Errorf("carrier %s: at least one reference date column is required", s.Key)
	}
	if err := s.Vocabulary.Validate(); err != nil {
		return eris.Wrapf(err, "carrier %s", s.Key)
	}
	if !s.Lapse.Disabled && len(s.Lapse.Predicate.Exact) == 0 && len(s.Lapse.Predicate.Substrings) == 0 {
		return eris.Errorf("carrier %s: lapse profile must declare a predicate or lapse.None()", s.Key)
	}
	return nil
}

// Normalize parses a roster export into normalized policies. Rows missing a
// policy id, status, or parseable reference date are skipped and counted,
// never fatal; an unreadable file fails the whole carrier.
func (s Spec) Normalize(ctx context.Context, data []byte) ([]model.NormalizedPolicy, int, error) {
	rowCh, errCh := tabular.Stream(ctx, data, tabular.Options{
		Format:       s.Format,
		HeaderRow:    s.HeaderRow,
		SheetKeyword: s.SheetKeyword,
		Preprocess:   s.Preprocess,
		Delimiter:    s.Delimiter,
	})

	var policies []model.NormalizedPolicy
	skipped := 0
	for row := range rowCh {
		p, err := s.normalizeRow(row)
		if err != nil {
			skipped++
			zap.L().Debug("carrier: row skipped",
				zap.String("carrier", s.Key),
				zap.Error(err),
			)
			continue
		}
		policies = append(policies, p)
	}
	if err := <-errCh; err != nil {
		return nil, 0, eris.Wrapf(err, "carrier %s: read export", s.Key)
	}

	if skipped > 0 {
		zap.L().Info("carrier: rows skipped during normalization",
			zap.String("carrier", s.Key),
			zap.Int("skipped", skipped),
			zap.Int("parsed", len(policies)),
		)
	}
	return policies, skipped, nil
}

func (s Spec) normalizeRow(row tabular.Row) (model.NormalizedPolicy, error) {
	id := UnwrapFormulaCell(row.Get(s.Columns.PolicyID))
	status := UnwrapFormulaCell(row.Get(s.Columns.Status))
	if id == "" {
		return model.NormalizedPolicy{}, eris.New("missing policy id")
	}
	if status == "" {
		return model.NormalizedPolicy{}, eris.New("missing status")
	}

	p := model.NormalizedPolicy{
		PolicyID:           id,
		CarrierName:        s.Name,
		StatusRaw:          status,
		WritingAgentNumber: UnwrapFormulaCell(row.Get(s.Columns.WritingAgent)),
	}
	if s.Columns.StatusDetail != "" {
		p.StatusDetail = UnwrapFormulaCell(row.Get(s.Columns.StatusDetail))
	}
	if s.Columns.FirstName != "" {
		p.InsuredFirstName = UnwrapFormulaCell(row.Get(s.Columns.FirstName))
	}
	if s.Columns.LastName != "" {
		p.InsuredLastName = UnwrapFormulaCell(row.Get(s.Columns.LastName))
	}
	if s.Columns.Phone != "" {
		p.Phone = UnwrapFormulaCell(row.Get(s.Columns.Phone))
	}

	ref, err := firstDate(row, s.Columns.Reference)
	if err != nil {
		return model.NormalizedPolicy{}, eris.Wrapf(err, "policy %s: reference date", id)
	}
	p.ReferenceDate = ref

	if s.Columns.Secondary != "" {
		// Secondary dates feed exception rules only; a bad value is not
		// grounds to drop the row.
		if sec, err := dates.Parse(UnwrapFormulaCell(row.Get(s.Columns.Secondary))); err == nil {
			p.SecondaryDate = &sec
		}
	}

	return p, nil
}

func firstDate(row tabular.Row, columns []string) (time.Time, error) {
	for _, col := range columns {
		v := UnwrapFormulaCell(row.Get(col))
		if v == "" {
			continue
		}
		if parsed, perr := dates.Parse(v); perr == nil {
			return parsed, nil
		}
	}
	return time.Time{}, eris.Wrap(dates.ErrUnparseable, "no candidate column parsed")
}

var formulaCellPattern = regexp.MustCompile(`="([^"]*)"`)

// StripFormulaEscapes removes spreadsheet formula escaping (`="value"`)
// from an entire CSV byte stream before row splitting.
func StripFormulaEscapes(data []byte) []byte {
	return formulaCellPattern.ReplaceAll(data, []byte(`"$1"`))
}

// UnwrapFormulaCell removes formula escaping that survives into a single
// cell value, e.g. an agent number exported as ="0012345".
func UnwrapFormulaCell(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, `="`) && strings.HasSuffix(v, `"`) && len(v) >= 3 {
		v = v[2 : len(v)-1]
	}
	return strings.TrimSpace(v)
}
