package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/m-mizutani/branchsite/pkg/domain/graph"
	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra/metrics"
	"github.com/m-mizutani/branchsite/pkg/utils/errutil"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

const (
	DefaultWorkers     = 4
	DefaultMaxHops     = 8
	DefaultMaxFailures = 10
)

// Executor drives every non-terminal record toward its terminal state by
// repeatedly firing the first eligible edge.
type Executor struct {
	workers     int
	maxHops     int
	maxFailures int
	metrics     interfaces.Metrics
}

type ExecutorOption func(*Executor)

func WithWorkers(n int) ExecutorOption {
	return func(x *Executor) {
		x.workers = n
	}
}

func WithMaxHops(n int) ExecutorOption {
	return func(x *Executor) {
		x.maxHops = n
	}
}

// WithMaxFailures sets the consecutive failure count at which a record is
// skipped. Zero disables the limit.
func WithMaxFailures(n int) ExecutorOption {
	return func(x *Executor) {
		x.maxFailures = n
	}
}

func WithMetrics(m interfaces.Metrics) ExecutorOption {
	return func(x *Executor) {
		x.metrics = m
	}
}

func NewExecutor(options ...ExecutorOption) *Executor {
	x := &Executor{
		workers:     DefaultWorkers,
		maxHops:     DefaultMaxHops,
		maxFailures: DefaultMaxFailures,
		metrics:     metrics.Noop{},
	}
	for _, opt := range options {
		opt(x)
	}
	if x.workers < 1 {
		x.workers = 1
	}
	if x.maxHops < 1 {
		x.maxHops = 1
	}
	return x
}

// recordOutcome is how processing of one record ended in a cycle.
type recordOutcome int

const (
	outcomeConverged recordOutcome = iota
	outcomeStalled
	outcomeStuck
	outcomeHopLimit
	outcomeFailed
	outcomeInterrupted
	outcomeMissing
)

// RunCycle processes all records once. Per-record failures are recorded in
// the report and never abort the cycle. When ctx is cancelled no new
// transition starts; running actions complete on a detached context.
func (x *Executor) RunCycle(ctx context.Context, registry *Registry, g *graph.Graph) *model.CycleReport {
	report := &model.CycleReport{ID: uuid.NewString()}
	ctx = logging.WithAttrs(ctx, slog.String("cycle_id", report.ID))

	var mu sync.Mutex
	var eg errgroup.Group
	eg.SetLimit(x.workers)

	for _, rec := range registry.List() {
		if rec.IsTerminal() {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		id := rec.ID
		eg.Go(func() error {
			events, outcome := x.process(ctx, report.ID, registry, g, id)

			mu.Lock()
			defer mu.Unlock()
			report.Events = append(report.Events, events...)
			switch outcome {
			case outcomeConverged:
				report.Converged = append(report.Converged, id)
			case outcomeStalled:
				report.Stalled = append(report.Stalled, id)
			case outcomeStuck:
				report.Stuck = append(report.Stuck, id)
			case outcomeHopLimit:
				report.HopLimit = append(report.HopLimit, id)
			case outcomeFailed:
				report.Failed = append(report.Failed, id)
			}
			return nil
		})
	}
	_ = eg.Wait()

	report.Purged = registry.Purge()

	counts := make(map[types.State]int)
	for _, s := range g.States() {
		counts[s] = 0
	}
	for _, rec := range registry.List() {
		counts[rec.State]++
	}
	x.metrics.SetBranches(counts)
	x.metrics.SetStuck(len(report.Stuck))

	return report
}

func (x *Executor) process(ctx context.Context, cycleID string, registry *Registry, g *graph.Graph, id types.BranchID) ([]model.TransitionEvent, recordOutcome) {
	sec, ok := registry.Acquire(id)
	if !ok {
		return nil, outcomeMissing
	}
	defer sec.Release()

	ctx = logging.WithAttrs(ctx, slog.Any("branch", id))
	logger := logging.From(ctx)
	var events []model.TransitionEvent

	for hop := 0; ; hop++ {
		rec := sec.Record()

		if rec.IsTerminal() {
			return events, outcomeConverged
		}
		if rec.IsStuck(x.maxFailures) {
			logger.Warn("branch is stuck",
				slog.Any("state", rec.State),
				slog.Int("failures", rec.Failures),
				slog.String("last_error", rec.LastError),
			)
			return events, outcomeStuck
		}
		if hop >= x.maxHops {
			logger.Warn("hop limit reached", slog.Any("state", rec.State), slog.Int("max_hops", x.maxHops))
			return events, outcomeHopLimit
		}
		if ctx.Err() != nil {
			return events, outcomeInterrupted
		}

		edge := g.Eligible(rec.State)
		if edge == nil {
			logger.Warn("no eligible edge", slog.Any("state", rec.State), slog.Any("terminal", rec.TerminalState))
			x.metrics.IncStalled(id)
			return events, outcomeStalled
		}

		ev, err := x.fire(ctx, g, edge.Name, sec)
		ev.CycleID = cycleID
		events = append(events, ev)
		if err != nil {
			return events, outcomeFailed
		}
	}
}

// fire runs one edge inside sec and commits its result.
func (x *Executor) fire(ctx context.Context, g *graph.Graph, edge types.EdgeName, sec *Section) (model.TransitionEvent, error) {
	rec := sec.Record()
	startedAt := logging.CtxTime(ctx)
	start := time.Now()

	logger := logging.From(ctx).With(slog.Any("edge", edge))
	logger.Debug("firing edge", slog.Any("state", rec.State))

	result, err := g.Fire(logging.Detach(ctx), edge, rec)
	elapsed := time.Since(start)

	ev := model.TransitionEvent{
		BranchID:  rec.ID.String(),
		Edge:      string(edge),
		From:      string(rec.State),
		StartedAt: startedAt,
		Duration:  elapsed,
	}

	if err != nil {
		rec.Failures++
		rec.LastError = err.Error()
		sec.Commit(rec)

		ev.To = string(rec.State)
		ev.Outcome = model.OutcomeFailure
		ev.Fingerprint = rec.Fingerprint.String()
		ev.Error = err.Error()
		x.metrics.ObserveTransition(edge, model.OutcomeFailure, elapsed)

		errutil.HandleError(ctx, "transition failed", goerr.Wrap(err, "transition failed", goerr.V("failures", rec.Failures)))
		return ev, err
	}

	rec.State = result.State
	if result.Fingerprint != "" {
		rec.Fingerprint = result.Fingerprint
	}
	rec.LastTransitionAt = logging.CtxTime(ctx)
	rec.Failures = 0
	rec.LastError = ""
	sec.Commit(rec)

	ev.To = string(rec.State)
	ev.Outcome = model.OutcomeSuccess
	ev.Fingerprint = rec.Fingerprint.String()
	x.metrics.ObserveTransition(edge, model.OutcomeSuccess, elapsed)

	logger.Info("transition applied",
		slog.Any("from", ev.From),
		slog.Any("to", ev.To),
		slog.Any("fingerprint", rec.Fingerprint),
		slog.Duration("duration", elapsed),
	)
	return ev, nil
}
