package analyzer

import (
	"context"

	"carewatch/internal/model"
)

// Analyzer evaluates one risk signal over a bounded history window.
// Implementations are pure over the supplied context: they read the window,
// never the store, and report at most one verdict per call.
type Analyzer interface {
	Analyze(ctx context.Context, user model.MonitoredUser, ac AnalysisContext) (AlertResult, error)
	RiskType() model.RiskType
}
