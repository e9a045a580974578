package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/infra/metrics"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

func onceCommand() *cli.Command {
	var cfg siteConfig

	return &cli.Command{
		Name:  "once",
		Usage: "Run exactly one poll cycle and exit (for cron)",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting once",
				slog.Any("Site", &cfg.site),
				slog.Any("Remote", cfg.remote),
				slog.Any("Poll", &cfg.poll),
				slog.Any("Registry", &cfg.registry),
				slog.Any("BigQuery", &cfg.bigQuery),
				slog.Any("Sentry", &cfg.sentry),
			)

			if err := cfg.sentry.Configure(ctx); err != nil {
				return err
			}
			defer cfg.sentry.Flush()

			uc, err := cfg.newUseCase(ctx, metrics.Noop{})
			if err != nil {
				return err
			}

			report, err := uc.PollOnce(ctx)
			if err != nil {
				return err
			}

			logging.Default().Info("poll done",
				slog.Int("transitions", report.Cycle.Transitions()),
				slog.Int("failed", len(report.Cycle.Failed)),
				slog.Int("stuck", len(report.Cycle.Stuck)),
			)
			return nil
		},
	}
}
