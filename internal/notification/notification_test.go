package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"carewatch/internal/model"
	"carewatch/internal/notification/repository"
	"carewatch/pkg/paginator"
)

// scriptedChannel fails a set number of times before succeeding.
type scriptedChannel struct {
	mu          sync.Mutex
	channelType model.NotificationChannelType
	failures    int
	failWith    error
	unavailable bool
	calls       int
}

func (c *scriptedChannel) ChannelType() model.NotificationChannelType {
	if c.channelType == "" {
		return model.ChannelMock
	}
	return c.channelType
}

func (c *scriptedChannel) Available(ctx context.Context) bool { return !c.unavailable }

func (c *scriptedChannel) Send(ctx context.Context, input SendInput) (SendOutput, error) {
	return c.SendWithType(ctx, input, model.NotificationTypeSystem)
}

func (c *scriptedChannel) SendWithType(ctx context.Context, input SendInput, nType model.NotificationType) (SendOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls <= c.failures {
		if c.failWith != nil {
			return SendOutput{}, c.failWith
		}
		return SendOutput{}, NewRetryableError(c.ChannelType(), errors.New("scripted failure"))
	}
	return SendOutput{ExternalMessageID: "ext-1", Channel: c.ChannelType()}, nil
}

func (c *scriptedChannel) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// fakeNotifRepo records history rows and retry records in memory.
type fakeNotifRepo struct {
	mu        sync.Mutex
	histories []model.NotificationHistory
	records   []model.RetryRecord
	nextID    int64
}

func (f *fakeNotifRepo) CreateHistory(ctx context.Context, opts repository.CreateHistoryOptions) (model.NotificationHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := opts.History
	f.nextID++
	h.ID = f.nextID
	f.histories = append(f.histories, h)
	return h, nil
}

func (f *fakeNotifRepo) GetHistory(ctx context.Context, opts repository.GetHistoryOptions) ([]model.NotificationHistory, paginator.Paginator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.NotificationHistory, len(f.histories))
	copy(out, f.histories)
	return out, paginator.Paginator{Total: int64(len(out)), Count: int64(len(out))}, nil
}

func (f *fakeNotifRepo) MarkRead(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.histories {
		if f.histories[i].ID == id {
			f.histories[i].MarkRead(time.Now())
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeNotifRepo) CreateRetryRecord(ctx context.Context, opts repository.CreateRetryRecordOptions) (model.RetryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := opts.Record
	f.nextID++
	r.ID = f.nextID
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeNotifRepo) ListDueRetryRecords(ctx context.Context, opts repository.ListDueRetryRecordsOptions) ([]model.RetryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.RetryRecord
	for _, r := range f.records {
		if !r.Completed && !r.ScheduledTime.After(opts.Now) {
			out = append(out, r)
			if opts.Limit > 0 && len(out) >= opts.Limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeNotifRepo) UpdateRetryRecord(ctx context.Context, record model.RetryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == record.ID {
			f.records[i] = record
			return nil
		}
	}
	return repository.ErrNotFound
}
