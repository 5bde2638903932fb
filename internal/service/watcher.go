package service

import (
	"context"
	"time"

	"co2watch/internal/logger"
)

// WatcherService periodically triggers the checker. It is the optional
// scheduler around the single point-in-time check; each tick is an
// independent invocation and a failed check only logs.
type WatcherService struct {
	checker Checker
	log     *logger.Logger
}

func NewWatcherService(checker Checker, log *logger.Logger) *WatcherService {
	return &WatcherService{checker: checker, log: log}
}

// Run ticks at the given interval until ctx is canceled.
func (w *WatcherService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			res, err := w.checker.RunCheck(ctx, now)
			if err != nil {
				if w.log != nil {
					w.log.Errorw("scheduled_check_failed", "err", err)
				}
				continue
			}
			if w.log != nil {
				w.log.Infow("scheduled_check_done",
					"status", res.Status, "day", res.Day, "hour", res.Hour, "classroom", res.Classroom)
			}
		}
	}
}
