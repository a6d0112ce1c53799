package usecase

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"carewatch/internal/alert"
)

// DetectAnomaliesForAllUsers runs detection for every monitored user.
// One user's failure, timeout or panic never reaches another user's unit;
// the batch always completes and reports counters.
func (uc *implUseCase) DetectAnomaliesForAllUsers(ctx context.Context) (alert.BatchOutput, error) {
	start := uc.clock()

	ids, err := uc.userRepo.ListActiveIDs(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.DetectAnomaliesForAllUsers.ListActiveIDs: %v", err)
		return alert.BatchOutput{}, err
	}

	var success, failed, triggered atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.BatchWorkers)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			uc.detectOne(gctx, id, &success, &failed, &triggered)
			return nil
		})
	}
	// Units never return errors; Wait only synchronizes.
	_ = g.Wait()

	out := alert.BatchOutput{
		TotalUsers:      len(ids),
		SuccessUsers:    int(success.Load()),
		FailedUsers:     int(failed.Load()),
		AlertsTriggered: int(triggered.Load()),
		Elapsed:         uc.clock().Sub(start),
	}
	uc.l.Infof(ctx, "internal.alert.usecase.DetectAnomaliesForAllUsers: total=%d success=%d failed=%d alerts=%d elapsed=%s",
		out.TotalUsers, out.SuccessUsers, out.FailedUsers, out.AlertsTriggered, out.Elapsed)

	return out, nil
}

func (uc *implUseCase) detectOne(ctx context.Context, userID int64, success, failed, triggered *atomic.Int64) {
	defer func() {
		if rec := recover(); rec != nil {
			failed.Add(1)
			uc.l.Errorf(ctx, "internal.alert.usecase.detectOne: user %d panicked: %v", userID, rec)
		}
	}()

	uctx := ctx
	if uc.cfg.UserTimeout > 0 {
		var cancel context.CancelFunc
		uctx, cancel = context.WithTimeout(ctx, uc.cfg.UserTimeout)
		defer cancel()
	}

	out, err := uc.DetectAnomalies(uctx, alert.DetectAnomaliesInput{UserID: userID})
	if err != nil {
		failed.Add(1)
		uc.l.Errorf(ctx, "internal.alert.usecase.detectOne: user %d: %v", userID, err)
		return
	}

	success.Add(1)
	triggered.Add(int64(len(out.Triggered)))
}
