package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/errutil"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

// LoadRegistry restores the registry from the branch store. A corrupt store
// returns types.ErrRegistryCorrupt and must abort startup.
func (x *UseCase) LoadRegistry(ctx context.Context) error {
	if err := x.registry.Load(ctx, x.clients.BranchStore(), x.graph); err != nil {
		return err
	}
	logging.From(ctx).Info("branch registry loaded", slog.Int("branches", len(x.registry.IDs())))
	return nil
}

// PollOnce lists the remote, reconciles the registry, runs one executor
// cycle and persists the result. When the remote cannot be listed the
// registry is left untouched and an error wrapping
// types.ErrRemoteUnavailable is returned.
func (x *UseCase) PollOnce(ctx context.Context) (*model.PollReport, error) {
	x.pollMutex.Lock()
	defer x.pollMutex.Unlock()

	logger := logging.From(ctx)

	start := time.Now()
	snapshot, err := x.clients.RemoteWatcher().Snapshot(ctx)
	x.clients.Metrics().ObservePoll(time.Since(start), err)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list remote branches")
	}

	reconciled := Reconcile(ctx, x.prev, snapshot, x.registry)
	x.prev = snapshot
	if reconciled.Changed() {
		logger.Info("registry reconciled",
			slog.Any("added", reconciled.Added),
			slog.Any("out_of_date", reconciled.OutOfDate),
			slog.Any("revived", reconciled.Revived),
			slog.Any("orphaned", reconciled.Orphaned),
		)
	}

	cycle := x.executor.RunCycle(ctx, x.registry, x.graph)
	if len(cycle.Events) > 0 || len(cycle.Stuck) > 0 || len(cycle.Purged) > 0 {
		logger.Info("cycle done",
			slog.String("cycle_id", cycle.ID),
			slog.Int("transitions", cycle.Transitions()),
			slog.Any("failed", cycle.Failed),
			slog.Any("stalled", cycle.Stalled),
			slog.Any("stuck", cycle.Stuck),
			slog.Any("hop_limit", cycle.HopLimit),
			slog.Any("purged", cycle.Purged),
		)
	}

	// Persist even when ctx is cancelled so that completed transitions survive
	// shutdown.
	saveCtx := logging.Detach(ctx)
	if err := x.registry.Save(saveCtx, x.clients.BranchStore()); err != nil {
		return nil, err
	}

	if err := x.exportEvents(saveCtx, cycle.Events); err != nil {
		errutil.HandleError(ctx, "failed to export transition events", err)
	}

	return &model.PollReport{Reconcile: reconciled, Cycle: cycle}, nil
}

// Run polls until ctx is cancelled. The delay between polls follows the
// cadence and is shortened by RequestPoll.
func (x *UseCase) Run(ctx context.Context) error {
	logger := logging.From(ctx)

	if err := x.trigger.Acquire(ctx); err != nil {
		logger.Info("poll loop stopped")
		return nil
	}

	for {
		if _, err := x.PollOnce(ctx); err != nil {
			if errors.Is(err, types.ErrRemoteUnavailable) {
				logger.Warn("remote is unavailable, retry next poll", slog.Any("error", err))
			} else {
				errutil.HandleError(ctx, "poll failed", err)
			}
		}

		delay := x.cadence.NextPollDelay(x.registry.List(), logging.CtxTime(ctx))
		logger.Debug("waiting next poll", slog.Duration("delay", delay))
		if err := x.trigger.Wait(ctx, delay); err != nil {
			if ctx.Err() != nil {
				logger.Info("poll loop stopped")
				return nil
			}
			return goerr.Wrap(err, "failed to wait next poll")
		}
	}
}

// RequestPoll wakes the poll loop. It returns false when a request is
// already pending.
func (x *UseCase) RequestPoll(ctx context.Context, reason string) bool {
	accepted := x.trigger.Notify(reason)
	logging.From(ctx).Debug("poll requested", slog.String("reason", reason), slog.Bool("accepted", accepted))
	return accepted
}

// ListBranches returns all records with their complete domain names.
func (x *UseCase) ListBranches(ctx context.Context) []*model.BranchStatus {
	records := x.registry.List()
	statuses := make([]*model.BranchStatus, len(records))
	for i, rec := range records {
		statuses[i] = &model.BranchStatus{
			BranchRecord: rec,
			Domains:      model.DomainBindings(rec.ID, x.site.Domains, x.site.ProductionBranch),
		}
	}
	return statuses
}
