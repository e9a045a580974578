package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/usecase"
)

// Poll configures the poll loop and the executor.
type Poll struct {
	workers        int
	maxHops        int
	maxFailures    int
	activeInterval time.Duration
	idleInterval   time.Duration
	activeWindow   time.Duration
	minSpacing     time.Duration
}

func (x *Poll) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "workers",
			Usage:       "Number of branches processed concurrently",
			Category:    "Poll",
			Value:       usecase.DefaultWorkers,
			Sources:     cli.EnvVars("BRANCHSITE_WORKERS"),
			Destination: &x.workers,
		},
		&cli.IntFlag{
			Name:        "max-hops",
			Usage:       "Maximum transitions per branch in one cycle",
			Category:    "Poll",
			Value:       usecase.DefaultMaxHops,
			Sources:     cli.EnvVars("BRANCHSITE_MAX_HOPS"),
			Destination: &x.maxHops,
		},
		&cli.IntFlag{
			Name:        "max-failures",
			Usage:       "Consecutive failures after which a branch is skipped (0: unlimited)",
			Category:    "Poll",
			Value:       usecase.DefaultMaxFailures,
			Sources:     cli.EnvVars("BRANCHSITE_MAX_FAILURES"),
			Destination: &x.maxFailures,
		},
		&cli.DurationFlag{
			Name:        "active-interval",
			Usage:       "Poll interval while branches are changing",
			Category:    "Poll",
			Value:       usecase.DefaultActiveInterval,
			Sources:     cli.EnvVars("BRANCHSITE_ACTIVE_INTERVAL"),
			Destination: &x.activeInterval,
		},
		&cli.DurationFlag{
			Name:        "idle-interval",
			Usage:       "Poll interval while idle (default: seconds_between_builds of config file or 60s)",
			Category:    "Poll",
			Sources:     cli.EnvVars("BRANCHSITE_IDLE_INTERVAL"),
			Destination: &x.idleInterval,
		},
		&cli.DurationFlag{
			Name:        "active-window",
			Usage:       "How long after a transition the active interval is used",
			Category:    "Poll",
			Value:       usecase.DefaultActiveWindow,
			Sources:     cli.EnvVars("BRANCHSITE_ACTIVE_WINDOW"),
			Destination: &x.activeWindow,
		},
		&cli.DurationFlag{
			Name:        "min-poll-spacing",
			Usage:       "Minimum time between two polls, including triggered ones",
			Category:    "Poll",
			Value:       usecase.DefaultMinPollSpacing,
			Sources:     cli.EnvVars("BRANCHSITE_MIN_POLL_SPACING"),
			Destination: &x.minSpacing,
		},
	}
}

// Apply fills values not given on the command line from file.
func (x *Poll) Apply(file *File) {
	if x.idleInterval == 0 && file.SecondsBetweenBuilds > 0 {
		x.idleInterval = time.Duration(file.SecondsBetweenBuilds) * time.Second
	}
}

func (x *Poll) Cadence() *usecase.Cadence {
	cadence := usecase.NewCadence()
	cadence.Active = x.activeInterval
	cadence.Window = x.activeWindow
	if x.idleInterval > 0 {
		cadence.Idle = x.idleInterval
	}
	return cadence
}

// Options returns the use case options of the poll loop.
func (x *Poll) Options(metrics interfaces.Metrics) []usecase.Option {
	return []usecase.Option{
		usecase.WithExecutor(usecase.NewExecutor(
			usecase.WithWorkers(x.workers),
			usecase.WithMaxHops(x.maxHops),
			usecase.WithMaxFailures(x.maxFailures),
			usecase.WithMetrics(metrics),
		)),
		usecase.WithCadence(x.Cadence()),
		usecase.WithMinPollSpacing(x.minSpacing),
	}
}

func (x *Poll) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("Workers", x.workers),
		slog.Int("MaxHops", x.maxHops),
		slog.Int("MaxFailures", x.maxFailures),
		slog.Duration("ActiveInterval", x.activeInterval),
		slog.Duration("IdleInterval", x.idleInterval),
		slog.Duration("ActiveWindow", x.activeWindow),
		slog.Duration("MinSpacing", x.minSpacing),
	)
}
