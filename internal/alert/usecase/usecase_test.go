package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"carewatch/internal/alert/repository"
	"carewatch/internal/analyzer"
	convRepo "carewatch/internal/conversation/repository"
	"carewatch/internal/model"
	"carewatch/internal/notification"
	userRepo "carewatch/internal/user/repository"
	"carewatch/pkg/paginator"
)

// fakeAlertRepo keeps rules and histories in memory and enforces the
// (user, rule, date) dedup the way the real unique index does.
type fakeAlertRepo struct {
	mu        sync.Mutex
	rules     []model.AlertRule
	histories []model.AlertHistory
	nextID    int64

	createHistoryErr error
}

func (f *fakeAlertRepo) ListActiveRules(ctx context.Context, opts repository.ListRulesOptions) ([]model.AlertRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AlertRule
	for _, r := range f.rules {
		if !r.Active {
			continue
		}
		if opts.Filter.UserID != 0 && r.UserID != opts.Filter.UserID {
			continue
		}
		if opts.Filter.RiskType != "" && r.RiskType != opts.Filter.RiskType {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeAlertRepo) DetailRule(ctx context.Context, id int64) (model.AlertRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return model.AlertRule{}, repository.ErrNotFound
}

func (f *fakeAlertRepo) CreateRule(ctx context.Context, opts repository.CreateRuleOptions) (model.AlertRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rule := opts.Rule
	f.nextID++
	rule.ID = f.nextID
	f.rules = append(f.rules, rule)
	return rule, nil
}

func (f *fakeAlertRepo) UpdateRuleActive(ctx context.Context, id int64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rules {
		if f.rules[i].ID == id {
			f.rules[i].Active = active
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAlertRepo) CreateHistory(ctx context.Context, opts repository.CreateHistoryOptions) (model.AlertHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createHistoryErr != nil {
		return model.AlertHistory{}, f.createHistoryErr
	}
	h := opts.History
	for _, existing := range f.histories {
		if existing.UserID == h.UserID && existing.AlertRuleID == h.AlertRuleID && existing.AlertDate.Equal(h.AlertDate) {
			return model.AlertHistory{}, repository.ErrDuplicateAlert
		}
	}
	f.nextID++
	h.ID = f.nextID
	f.histories = append(f.histories, h)
	return h, nil
}

func (f *fakeAlertRepo) UpdateHistory(ctx context.Context, history model.AlertHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.histories {
		if f.histories[i].ID == history.ID {
			f.histories[i] = history
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAlertRepo) GetHistory(ctx context.Context, opts repository.GetHistoryOptions) ([]model.AlertHistory, paginator.Paginator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AlertHistory
	for _, h := range f.histories {
		if opts.Filter.UserID != 0 && h.UserID != opts.Filter.UserID {
			continue
		}
		out = append(out, h)
	}
	return out, paginator.Paginator{
		Total:       int64(len(out)),
		Count:       int64(len(out)),
		PerPage:     opts.PaginateQuery.Limit,
		CurrentPage: opts.PaginateQuery.Page,
	}, nil
}

type fakeUserRepo struct {
	users  map[int64]model.MonitoredUser
	checks map[int64][]model.DailyCheckRecord

	detailErr map[int64]error
}

func (f *fakeUserRepo) Detail(ctx context.Context, id int64) (model.MonitoredUser, error) {
	if err, ok := f.detailErr[id]; ok {
		return model.MonitoredUser{}, err
	}
	u, ok := f.users[id]
	if !ok {
		return model.MonitoredUser{}, userRepo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context, opts userRepo.ListOptions) ([]model.MonitoredUser, error) {
	var out []model.MonitoredUser
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) ListActiveIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	for id, u := range f.users {
		if u.DailyCheckEnabled {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeUserRepo) RecentCheckRecords(ctx context.Context, opts userRepo.CheckRecordOptions) ([]model.DailyCheckRecord, error) {
	return f.checks[opts.UserID], nil
}

type fakeConvRepo struct {
	messages map[int64][]model.ConversationMessage
	byID     map[int64]model.ConversationMessage
}

func (f *fakeConvRepo) RecentMessages(ctx context.Context, opts convRepo.RecentMessagesOptions) ([]model.ConversationMessage, error) {
	return f.messages[opts.UserID], nil
}

func (f *fakeConvRepo) Detail(ctx context.Context, id int64) (model.ConversationMessage, error) {
	msg, ok := f.byID[id]
	if !ok {
		return model.ConversationMessage{}, convRepo.ErrNotFound
	}
	return msg, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notification.SendInput
	err   error
}

func (f *fakeNotifier) Send(ctx context.Context, input notification.SendInput) (notification.SendOutput, error) {
	return f.SendWithType(ctx, input, model.NotificationTypeSystem)
}

func (f *fakeNotifier) SendWithType(ctx context.Context, input notification.SendInput, nType model.NotificationType) (notification.SendOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, input)
	if f.err != nil {
		return notification.SendOutput{}, f.err
	}
	return notification.SendOutput{ExternalMessageID: "ext-1", Channel: model.ChannelMock}, nil
}

func (f *fakeNotifier) Available(ctx context.Context) bool { return true }

func (f *fakeNotifier) ChannelType() model.NotificationChannelType { return model.ChannelMock }

func (f *fakeNotifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// scriptedAnalyzer returns a fixed verdict per user id.
type scriptedAnalyzer struct {
	riskType model.RiskType
	verdicts map[int64]analyzer.AlertResult
	errs     map[int64]error
	panics   map[int64]bool
}

func (s *scriptedAnalyzer) RiskType() model.RiskType { return s.riskType }

func (s *scriptedAnalyzer) Analyze(ctx context.Context, user model.MonitoredUser, ac analyzer.AnalysisContext) (analyzer.AlertResult, error) {
	if s.panics[user.ID] {
		panic("scripted panic")
	}
	if err, ok := s.errs[user.ID]; ok {
		return analyzer.NoAlert(), err
	}
	if v, ok := s.verdicts[user.ID]; ok {
		return v, nil
	}
	return analyzer.NoAlert(), nil
}

var errScripted = errors.New("scripted failure")

func guardianID(id int64) *int64 { return &id }

func fixedClock() time.Time {
	return time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
}
