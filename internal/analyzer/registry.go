package analyzer

import (
	"context"
	"fmt"

	"carewatch/internal/model"
	pkgLog "carewatch/pkg/log"
)

// Registry routes analysis requests to the analyzer registered for each
// risk type. Registration order is fixed at construction; a duplicate
// risk type keeps the first registration and logs the collision.
type Registry struct {
	l         pkgLog.Logger
	analyzers map[model.RiskType]Analyzer
	order     []model.RiskType
}

func NewRegistry(l pkgLog.Logger, analyzers ...Analyzer) *Registry {
	r := &Registry{
		l:         l,
		analyzers: make(map[model.RiskType]Analyzer, len(analyzers)),
	}
	for _, a := range analyzers {
		rt := a.RiskType()
		if _, exists := r.analyzers[rt]; exists {
			l.Warnf(context.Background(), "internal.analyzer.registry: duplicate analyzer for %s, keeping first", rt)
			continue
		}
		r.analyzers[rt] = a
		r.order = append(r.order, rt)
	}
	return r
}

// Supported lists registered risk types in registration order.
func (r *Registry) Supported() []model.RiskType {
	out := make([]model.RiskType, len(r.order))
	copy(out, r.order)
	return out
}

// AnalyzeByType runs the analyzer for one risk type.
func (r *Registry) AnalyzeByType(ctx context.Context, riskType model.RiskType, user model.MonitoredUser, ac AnalysisContext) (AlertResult, error) {
	a, ok := r.analyzers[riskType]
	if !ok {
		return NoAlert(), fmt.Errorf("%w: %s", ErrUnsupportedRiskType, riskType)
	}
	return r.safeAnalyze(ctx, a, user, ac)
}

// AnalyzeAll runs every registered analyzer and keeps the positive
// verdicts. A single analyzer failing or panicking degrades to no alert
// for that type; the rest still run.
func (r *Registry) AnalyzeAll(ctx context.Context, user model.MonitoredUser, ac AnalysisContext) []AlertResult {
	results := make([]AlertResult, 0, len(r.order))
	for _, rt := range r.order {
		res, err := r.safeAnalyze(ctx, r.analyzers[rt], user, ac)
		if err != nil {
			r.l.Errorf(ctx, "internal.analyzer.registry: %s analysis failed for user %d: %v", rt, user.ID, err)
			continue
		}
		if res.IsAlert {
			results = append(results, res)
		}
	}
	return results
}

func (r *Registry) safeAnalyze(ctx context.Context, a Analyzer, user model.MonitoredUser, ac AnalysisContext) (res AlertResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res = NoAlert()
			err = fmt.Errorf("analyzer %s panicked: %v", a.RiskType(), rec)
		}
	}()
	return a.Analyze(ctx, user, ac)
}
