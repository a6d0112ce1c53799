package analyzer

import (
	"context"
	"fmt"

	"carewatch/internal/model"
	pkgLog "carewatch/pkg/log"
)

// NoResponseThresholds are the injected risk parameters for the
// no-response analyzer.
type NoResponseThresholds struct {
	HighConsecutiveDays   int
	HighMaxResponseRate   float64
	MediumConsecutiveDays int
	MediumMaxResponseRate float64
}

type noResponseAnalyzer struct {
	l   pkgLog.Logger
	cfg NoResponseThresholds
}

// NewNoResponseAnalyzer detects unanswered daily check-ins.
func NewNoResponseAnalyzer(l pkgLog.Logger, cfg NoResponseThresholds) Analyzer {
	return &noResponseAnalyzer{l: l, cfg: cfg}
}

func (a *noResponseAnalyzer) RiskType() model.RiskType {
	return model.RiskTypeNoResponse
}

func (a *noResponseAnalyzer) Analyze(ctx context.Context, user model.MonitoredUser, ac AnalysisContext) (AlertResult, error) {
	if len(ac.CheckRecords) == 0 {
		return NoAlert(), nil
	}

	pattern := calculateResponsePattern(ac.CheckRecords)
	a.l.Debugf(ctx, "internal.analyzer.noresponse: user %d consecutive=%d rate=%.2f",
		user.ID, pattern.ConsecutiveNoResponseDays, pattern.ResponseRate)

	return a.evaluate(pattern), nil
}

func (a *noResponseAnalyzer) evaluate(pattern ResponsePattern) AlertResult {
	consecutive := pattern.ConsecutiveNoResponseDays
	rate := pattern.ResponseRate

	if consecutive >= a.cfg.HighConsecutiveDays && rate < a.cfg.HighMaxResponseRate {
		return NewAlert(model.AlertLevelHigh, model.RiskTypeNoResponse,
			noResponseMessage(consecutive, rate), pattern)
	}
	if consecutive >= a.cfg.MediumConsecutiveDays && rate < a.cfg.MediumMaxResponseRate {
		return NewAlert(model.AlertLevelMedium, model.RiskTypeNoResponse,
			noResponseMessage(consecutive, rate), pattern)
	}
	return NoAlert()
}

func noResponseMessage(consecutive int, rate float64) string {
	return fmt.Sprintf("no response for %d consecutive days (response rate: %.0f%%)", consecutive, rate*100)
}

// calculateResponsePattern expects records newest first. The consecutive
// count walks backward from the most recent day and stops at the first
// responded record.
func calculateResponsePattern(records []model.DailyCheckRecord) ResponsePattern {
	total := len(records)
	responseDays := 0
	for _, rec := range records {
		if rec.Responded {
			responseDays++
		}
	}

	consecutive := 0
	for _, rec := range records {
		if rec.Responded {
			break
		}
		consecutive++
	}

	rate := 0.0
	if total > 0 {
		rate = float64(responseDays) / float64(total)
	}

	return ResponsePattern{
		TotalCheckDays:            total,
		ResponseDays:              responseDays,
		NoResponseDays:            total - responseDays,
		ConsecutiveNoResponseDays: consecutive,
		ResponseRate:              rate,
	}
}
