package analyzer

import (
	"context"
	"errors"
	"testing"

	"carewatch/internal/model"
	pkgLog "carewatch/pkg/log"
)

type stubAnalyzer struct {
	riskType model.RiskType
	result   AlertResult
	err      error
	panics   bool
	calls    int
}

func (s *stubAnalyzer) RiskType() model.RiskType { return s.riskType }

func (s *stubAnalyzer) Analyze(ctx context.Context, user model.MonitoredUser, ac AnalysisContext) (AlertResult, error) {
	s.calls++
	if s.panics {
		panic("boom")
	}
	return s.result, s.err
}

func TestRegistry_AnalyzeByType(t *testing.T) {
	emotion := &stubAnalyzer{
		riskType: model.RiskTypeEmotionPattern,
		result:   NewAlert(model.AlertLevelHigh, model.RiskTypeEmotionPattern, "bad week", nil),
	}
	r := NewRegistry(pkgLog.NewNoop(), emotion)

	got, err := r.AnalyzeByType(context.Background(), model.RiskTypeEmotionPattern, model.MonitoredUser{ID: 1}, AnalysisContext{})
	if err != nil {
		t.Fatalf("AnalyzeByType() error = %v", err)
	}
	if !got.IsAlert || got.Level != model.AlertLevelHigh {
		t.Errorf("AnalyzeByType() = %+v, want high alert", got)
	}

	_, err = r.AnalyzeByType(context.Background(), model.RiskTypeKeyword, model.MonitoredUser{ID: 1}, AnalysisContext{})
	if !errors.Is(err, ErrUnsupportedRiskType) {
		t.Errorf("AnalyzeByType() error = %v, want ErrUnsupportedRiskType", err)
	}
}

func TestRegistry_DuplicateKeepsFirst(t *testing.T) {
	first := &stubAnalyzer{
		riskType: model.RiskTypeKeyword,
		result:   NewAlert(model.AlertLevelEmergency, model.RiskTypeKeyword, "first", nil),
	}
	second := &stubAnalyzer{riskType: model.RiskTypeKeyword}
	r := NewRegistry(pkgLog.NewNoop(), first, second)

	if got := len(r.Supported()); got != 1 {
		t.Fatalf("Supported() len = %d, want 1", got)
	}

	res, err := r.AnalyzeByType(context.Background(), model.RiskTypeKeyword, model.MonitoredUser{ID: 1}, AnalysisContext{})
	if err != nil {
		t.Fatalf("AnalyzeByType() error = %v", err)
	}
	if res.Message != "first" {
		t.Errorf("AnalyzeByType() Message = %q, want %q", res.Message, "first")
	}
	if second.calls != 0 {
		t.Errorf("duplicate analyzer was invoked %d times", second.calls)
	}
}

func TestRegistry_AnalyzeAll(t *testing.T) {
	emotion := &stubAnalyzer{
		riskType: model.RiskTypeEmotionPattern,
		result:   NewAlert(model.AlertLevelMedium, model.RiskTypeEmotionPattern, "gloomy", nil),
	}
	noResponse := &stubAnalyzer{
		riskType: model.RiskTypeNoResponse,
		err:      errors.New("window load failed"),
	}
	keyword := &stubAnalyzer{riskType: model.RiskTypeKeyword, panics: true}
	r := NewRegistry(pkgLog.NewNoop(), emotion, noResponse, keyword)

	results := r.AnalyzeAll(context.Background(), model.MonitoredUser{ID: 1}, AnalysisContext{})

	// Failing and panicking analyzers degrade to no alert; the survivor reports.
	if len(results) != 1 {
		t.Fatalf("AnalyzeAll() returned %d results, want 1", len(results))
	}
	if results[0].RiskType != model.RiskTypeEmotionPattern {
		t.Errorf("AnalyzeAll() RiskType = %v, want EMOTION_PATTERN", results[0].RiskType)
	}
	if keyword.calls != 1 {
		t.Errorf("panicking analyzer calls = %d, want 1", keyword.calls)
	}
}

func TestRegistry_SupportedOrder(t *testing.T) {
	r := NewRegistry(pkgLog.NewNoop(),
		&stubAnalyzer{riskType: model.RiskTypeEmotionPattern},
		&stubAnalyzer{riskType: model.RiskTypeNoResponse},
		&stubAnalyzer{riskType: model.RiskTypeKeyword},
	)

	want := []model.RiskType{model.RiskTypeEmotionPattern, model.RiskTypeNoResponse, model.RiskTypeKeyword}
	got := r.Supported()
	if len(got) != len(want) {
		t.Fatalf("Supported() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Supported()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
