// Package analysis orchestrates one persistency analysis request: per
// carrier, normalize the uploaded export, apply the agent-scope filter,
// aggregate windows and breakdowns, and extract lapse candidates. The
// whole computation is request-scoped and deterministic; nothing is
// persisted.
package analysis

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AshokDevireddy/persistency/internal/aggregate"
	"github.com/AshokDevireddy/persistency/internal/carrier"
	"github.com/AshokDevireddy/persistency/internal/lapse"
	"github.com/AshokDevireddy/persistency/internal/model"
	"github.com/AshokDevireddy/persistency/internal/scope"
)

// ErrNoInput is returned when a request carries zero carrier files.
var ErrNoInput = errors.New("analysis: no files supplied")

// defaultConcurrency bounds the per-carrier fan-out. Correctness does not
// depend on it; carriers share no state.
const defaultConcurrency = 4

// Engine runs analysis requests against the carrier registry.
type Engine struct {
	overrides   *carrier.Overrides
	concurrency int
	now         func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithOverrides applies a loaded carrier overrides file.
func WithOverrides(o *carrier.Overrides) Option {
	return func(e *Engine) { e.overrides = o }
}

// WithConcurrency bounds the carrier fan-out.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithClock fixes the reference clock, used by tests for stable windows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine validates the adapter registry and builds an engine.
func NewEngine(opts ...Option) (*Engine, error) {
	if err := carrier.ValidateAll(); err != nil {
		return nil, err
	}
	e := &Engine{concurrency: defaultConcurrency, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Analyze runs one request. Row-level problems are absorbed per carrier,
// file-level problems fail only that carrier and are reported alongside the
// other carriers' results, and an empty request fails outright.
func (e *Engine) Analyze(ctx context.Context, files []model.CarrierFile, agentScope model.AgentScope) (*model.AnalysisResponse, error) {
	if len(files) == 0 {
		return nil, eris.Wrap(ErrNoInput, "analysis")
	}

	runID := uuid.NewString()
	now := e.now()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("analysis: starting run",
		zap.Int("files", len(files)),
		zap.String("scope_mode", string(scopeMode(agentScope))),
	)

	var mu sync.Mutex
	resp := &model.AnalysisResponse{RunID: runID}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, f := range files {
		f := f
		g.Go(func() error {
			result, candidates, err := e.analyzeCarrier(gctx, f, agentScope, now)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error("analysis: carrier failed",
					zap.String("carrier", f.CarrierKey),
					zap.String("file", f.Name),
					zap.Error(err),
				)
				resp.Errors = append(resp.Errors, model.CarrierError{
					Carrier: f.CarrierKey,
					File:    f.Name,
					Error:   err.Error(),
				})
				return nil
			}
			resp.Results = append(resp.Results, *result)
			resp.LapsePolicies = append(resp.LapsePolicies, candidates...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 && len(resp.Errors) > 0 {
		return nil, eris.Errorf("analysis: every carrier failed (%d errors)", len(resp.Errors))
	}

	// Deterministic output regardless of fan-out completion order.
	sort.Slice(resp.Results, func(i, j int) bool { return resp.Results[i].Carrier < resp.Results[j].Carrier })
	sort.Slice(resp.Errors, func(i, j int) bool { return resp.Errors[i].Carrier < resp.Errors[j].Carrier })
	lapse.Sort(resp.LapsePolicies)

	log.Info("analysis: run complete",
		zap.Int("carriers", len(resp.Results)),
		zap.Int("lapse_candidates", len(resp.LapsePolicies)),
		zap.Int("carrier_errors", len(resp.Errors)),
	)
	return resp, nil
}

func (e *Engine) analyzeCarrier(ctx context.Context, f model.CarrierFile, agentScope model.AgentScope, now time.Time) (*model.PersistencyResult, []model.LapseCandidate, error) {
	spec, err := carrier.Get(f.CarrierKey)
	if err != nil {
		return nil, nil, err
	}
	spec = e.overrides.Apply(spec)

	policies, skipped, err := spec.Normalize(ctx, f.Data)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "file %s", f.Name)
	}

	policies = scope.Filter(policies, agentScope)

	windows := aggregate.Windows(policies, spec.Vocabulary.Classify, now)
	breakdowns := aggregate.Breakdowns(policies, spec.MaxBreakdownStatuses, now)
	candidates := lapse.Extract(policies, spec.Lapse, now)

	return &model.PersistencyResult{
		Carrier:          spec.Name,
		TimeRanges:       windows,
		StatusBreakdowns: breakdowns,
		TotalPolicies:    len(policies),
		SkippedRows:      skipped,
		PersistencyRate:  windows[model.WindowAll].PositivePercentage,
	}, candidates, nil
}

func scopeMode(s model.AgentScope) model.ScopeMode {
	if s.Unrestricted() {
		return model.ScopeUnrestricted
	}
	return model.ScopeScoped
}
