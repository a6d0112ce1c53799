package alert

import (
	"context"

	"carewatch/internal/model"
)

// UseCase is the anomaly-detection and alert-trigger pipeline.
type UseCase interface {
	// DetectAnomalies runs every applicable rule for one user over the
	// recent history window and triggers alerts for positive verdicts.
	DetectAnomalies(ctx context.Context, input DetectAnomaliesInput) (DetectAnomaliesOutput, error)
	// DetectKeywordAlert analyzes a single incoming message in the message
	// path. A nil history with nil error means no keyword fired.
	DetectKeywordAlert(ctx context.Context, input DetectKeywordInput) (*model.AlertHistory, error)
	// TriggerAlert records one alert occurrence and dispatches it to the
	// user's guardian. A nil history with nil error means the occurrence
	// was a same-day duplicate and was suppressed.
	TriggerAlert(ctx context.Context, input TriggerAlertInput) (*model.AlertHistory, error)
	// DetectAnomaliesForAllUsers runs DetectAnomalies across all monitored
	// users with per-user fault isolation.
	DetectAnomaliesForAllUsers(ctx context.Context) (BatchOutput, error)
	// GetHistory lists recorded alerts, newest first, paginated.
	GetHistory(ctx context.Context, input GetHistoryInput) (GetHistoryOutput, error)
}
