package analyzer

import (
	"context"
	"fmt"
	"strings"

	"carewatch/internal/model"
	pkgLog "carewatch/pkg/log"
)

// KeywordLists carries the configured keyword sets. Emergency keywords
// always escalate to EMERGENCY; warning keywords raise WarningLevel.
type KeywordLists struct {
	EmergencyKeywords []string
	WarningKeywords   []string
	WarningLevel      model.AlertLevel
}

type keywordAnalyzer struct {
	l   pkgLog.Logger
	cfg KeywordLists
}

// NewKeywordAnalyzer scans a single incoming message for risk keywords.
// Unlike the windowed analyzers it runs in the message path, not on the
// daily schedule.
func NewKeywordAnalyzer(l pkgLog.Logger, cfg KeywordLists) Analyzer {
	if cfg.WarningLevel == "" || cfg.WarningLevel == model.AlertLevelNone {
		cfg.WarningLevel = model.AlertLevelHigh
	}
	return &keywordAnalyzer{l: l, cfg: cfg}
}

func (a *keywordAnalyzer) RiskType() model.RiskType {
	return model.RiskTypeKeyword
}

func (a *keywordAnalyzer) Analyze(ctx context.Context, user model.MonitoredUser, ac AnalysisContext) (AlertResult, error) {
	if ac.TargetMessage == nil {
		return NoAlert(), ErrMissingTargetMessage
	}
	content := ac.TargetMessage.Content
	if strings.TrimSpace(content) == "" {
		return NoAlert(), nil
	}

	// Emergency keywords short-circuit warning matching.
	if kw, ok := matchKeyword(content, a.cfg.EmergencyKeywords); ok {
		a.l.Warnf(ctx, "internal.analyzer.keyword: user %d emergency keyword detected", user.ID)
		return NewAlert(model.AlertLevelEmergency, model.RiskTypeKeyword,
			fmt.Sprintf("emergency keyword detected: %s", kw),
			KeywordMatch{Keyword: kw, Message: content, Kind: "emergency"}), nil
	}

	// The rule may narrow or extend the warning list per user.
	warning := mergeKeywords(ac.Rule.KeywordList(), a.cfg.WarningKeywords)
	if kw, ok := matchKeyword(content, warning); ok {
		return NewAlert(a.cfg.WarningLevel, model.RiskTypeKeyword,
			fmt.Sprintf("warning keyword detected: %s", kw),
			KeywordMatch{Keyword: kw, Message: content, Kind: "warning"}), nil
	}

	return NoAlert(), nil
}

// matchKeyword does case-insensitive substring matching and reports the
// first keyword found, in list order.
func matchKeyword(content string, keywords []string) (string, bool) {
	lowered := strings.ToLower(content)
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}

func mergeKeywords(primary, extra []string) []string {
	seen := make(map[string]struct{}, len(primary)+len(extra))
	merged := make([]string, 0, len(primary)+len(extra))
	for _, list := range [][]string{primary, extra} {
		for _, kw := range list {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			key := strings.ToLower(kw)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, kw)
		}
	}
	return merged
}
