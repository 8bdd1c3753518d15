package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/repository"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

// IsAutomaticRunDue reports whether an automatic run should start at now. It has no side
// effects. A gate that cannot be read counts as due.
func (x *UseCase) IsAutomaticRunDue(ctx context.Context, now time.Time) bool {
	return isDue(x.lastRun(ctx), now, x.interval)
}

// RecordRunStarted stores now as the start of the latest automatic run.
func (x *UseCase) RecordRunStarted(ctx context.Context, now time.Time) error {
	gate := x.clients.RunGateRepository()
	if gate == nil {
		return goerr.Wrap(types.ErrInvalidOption, "run gate repository is not configured")
	}

	if err := gate.PutLastRun(ctx, now); err != nil {
		return goerr.Wrap(err, "failed to record automatic run start", goerr.V("now", now))
	}
	return nil
}

// NextRun returns when the next automatic run becomes due. It is now when a run is due.
func (x *UseCase) NextRun(ctx context.Context, now time.Time) time.Time {
	return nextRun(x.lastRun(ctx), now, x.interval)
}

func (x *UseCase) GateStatus(ctx context.Context, now time.Time) (*model.GateStatus, error) {
	if x.clients.RunGateRepository() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "run gate repository is not configured")
	}

	last := x.lastRun(ctx)
	return &model.GateStatus{
		LastRun:         last,
		NextRun:         nextRun(last, now, x.interval),
		Due:             isDue(last, now, x.interval),
		IntervalSeconds: intervalSeconds(x.interval),
	}, nil
}

// lastRun returns nil when no run is recorded or the record cannot be read.
func (x *UseCase) lastRun(ctx context.Context) *time.Time {
	gate := x.clients.RunGateRepository()
	if gate == nil {
		return nil
	}

	at, err := gate.GetLastRun(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logging.From(ctx).Warn("Failed to read run gate, automatic run is treated as due",
				slog.Any("error", err),
			)
		}
		return nil
	}
	return &at
}

func intervalSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func isDue(last *time.Time, now time.Time, interval time.Duration) bool {
	return model.IsRunDue(last, now, interval)
}

func nextRun(last *time.Time, now time.Time, interval time.Duration) time.Time {
	if isDue(last, now, interval) {
		return now
	}
	return time.Unix(last.Unix()+intervalSeconds(interval), 0).In(now.Location())
}
