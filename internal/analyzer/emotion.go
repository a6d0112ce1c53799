package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"carewatch/internal/model"
	pkgLog "carewatch/pkg/log"
)

// EmotionThresholds are the injected risk parameters for the emotion
// pattern analyzer. Operators retune these without redeploying logic.
type EmotionThresholds struct {
	HighConsecutiveDays   int
	HighNegativeRatio     float64
	MediumConsecutiveDays int
	MediumNegativeRatio   float64
}

type emotionPatternAnalyzer struct {
	l   pkgLog.Logger
	cfg EmotionThresholds
}

// NewEmotionPatternAnalyzer detects sustained negative emotion in the
// conversation window.
func NewEmotionPatternAnalyzer(l pkgLog.Logger, cfg EmotionThresholds) Analyzer {
	return &emotionPatternAnalyzer{l: l, cfg: cfg}
}

func (a *emotionPatternAnalyzer) RiskType() model.RiskType {
	return model.RiskTypeEmotionPattern
}

func (a *emotionPatternAnalyzer) Analyze(ctx context.Context, user model.MonitoredUser, ac AnalysisContext) (AlertResult, error) {
	if len(ac.Messages) == 0 {
		return NoAlert(), nil
	}

	trend := calculateEmotionTrend(ac.Messages)
	a.l.Debugf(ctx, "internal.analyzer.emotion: user %d run=%d ratio=%.2f",
		user.ID, trend.ConsecutiveNegativeDays, trend.NegativeRatio)

	return a.evaluate(trend), nil
}

// evaluate classifies in order; the first match wins.
func (a *emotionPatternAnalyzer) evaluate(trend EmotionTrend) AlertResult {
	run := trend.ConsecutiveNegativeDays
	ratio := trend.NegativeRatio

	if run >= a.cfg.HighConsecutiveDays && ratio >= a.cfg.HighNegativeRatio {
		return NewAlert(model.AlertLevelHigh, model.RiskTypeEmotionPattern,
			emotionMessage(run, ratio), trend)
	}
	if run >= a.cfg.MediumConsecutiveDays && ratio >= a.cfg.MediumNegativeRatio {
		return NewAlert(model.AlertLevelMedium, model.RiskTypeEmotionPattern,
			emotionMessage(run, ratio), trend)
	}
	return NoAlert()
}

func emotionMessage(run int, ratio float64) string {
	return fmt.Sprintf("negative emotion for %d consecutive days (negative ratio: %.0f%%)", run, ratio*100)
}

// calculateEmotionTrend aggregates messages into calendar days and scores
// the window. A day counts as negative when negative messages hold at least
// a plurality of that day's labels (ties resolve toward negative). Days
// without messages are not negative; a gap between observed days breaks a
// consecutive run. The ratio denominator is days with messages, so silence
// alone never raises this signal.
func calculateEmotionTrend(messages []model.ConversationMessage) EmotionTrend {
	type dayCount struct{ negative, positive, neutral int }
	byDay := make(map[time.Time]*dayCount)

	for _, msg := range messages {
		day := msg.CreatedAt.Truncate(24 * time.Hour)
		c, ok := byDay[day]
		if !ok {
			c = &dayCount{}
			byDay[day] = c
		}
		switch msg.Emotion {
		case model.EmotionNegative:
			c.negative++
		case model.EmotionPositive:
			c.positive++
		default:
			c.neutral++
		}
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	negativeDays := 0
	longestRun := 0
	currentRun := 0
	var prevDay time.Time
	var prevNegative bool

	for i, day := range days {
		c := byDay[day]
		negative := c.negative > 0 && c.negative >= c.positive && c.negative >= c.neutral
		if negative {
			negativeDays++
		}

		contiguous := i > 0 && prevNegative && day.Sub(prevDay) == 24*time.Hour
		switch {
		case negative && contiguous:
			currentRun++
		case negative:
			currentRun = 1
		default:
			currentRun = 0
		}
		if currentRun > longestRun {
			longestRun = currentRun
		}
		prevDay = day
		prevNegative = negative
	}

	total := len(days)
	ratio := 0.0
	if total > 0 {
		ratio = float64(negativeDays) / float64(total)
	}

	return EmotionTrend{
		TotalDays:               total,
		NegativeDays:            negativeDays,
		ConsecutiveNegativeDays: longestRun,
		NegativeRatio:           ratio,
	}
}
