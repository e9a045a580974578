package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

// Reconcile merges the remote snapshot curr into registry. prev is the
// snapshot of the previous poll and is only used to report whether the
// remote changed. Records are modified inside their exclusive sections, so
// Reconcile waits for a running action on the same branch.
func Reconcile(ctx context.Context, prev, curr model.Snapshot, registry *Registry) *model.ReconcileReport {
	logger := logging.From(ctx)
	report := &model.ReconcileReport{
		RemoteChanged: prev == nil || !prev.Equal(curr),
	}

	for _, id := range curr.IDs() {
		head := curr[id]

		if registry.Insert(*model.NewBranchRecord(head)) {
			report.Added = append(report.Added, id)
			logger.Info("new branch found", slog.Any("branch", id), slog.Any("commit", head.Commit))
			continue
		}

		sec, ok := registry.Acquire(id)
		if !ok {
			// Purged between Insert and Acquire; the next poll inserts it again.
			continue
		}

		rec := sec.Record()
		rec.Name = head.Name
		if rec.RemoteFingerprint != head.Commit {
			rec.RemoteFingerprint = head.Commit
			rec.Failures = 0
			rec.LastError = ""
		}

		switch rec.State {
		case types.StateDeployed:
			if rec.Fingerprint != head.Commit {
				rec.State = types.StateOutOfDate
				report.OutOfDate = append(report.OutOfDate, id)
				logger.Info("branch is out of date",
					slog.Any("branch", id),
					slog.Any("deployed", rec.Fingerprint),
					slog.Any("remote", head.Commit),
				)
			}

		case types.StateOrphaned, types.StateRemoved:
			rec.State = types.StateUncloned
			rec.TerminalState = types.StateDeployed
			rec.Fingerprint = head.Commit
			rec.Failures = 0
			rec.LastError = ""
			report.Revived = append(report.Revived, id)
			logger.Info("orphaned branch reappeared", slog.Any("branch", id))
		}

		sec.Commit(rec)
		sec.Release()
	}

	for _, id := range registry.IDs() {
		if _, ok := curr[id]; ok {
			continue
		}

		sec, ok := registry.Acquire(id)
		if !ok {
			continue
		}

		rec := sec.Record()
		if rec.State != types.StateOrphaned && rec.State != types.StateRemoved {
			rec.State = types.StateOrphaned
			rec.TerminalState = types.StateRemoved
			rec.Failures = 0
			rec.LastError = ""
			sec.Commit(rec)
			report.Orphaned = append(report.Orphaned, id)
			logger.Info("branch disappeared from remote", slog.Any("branch", id))
		}
		sec.Release()
	}

	return report
}
