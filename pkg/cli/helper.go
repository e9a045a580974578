package cli

import (
	"context"

	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/cli/config"
	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/infra"
	"github.com/m-mizutani/branchsite/pkg/infra/command"
	"github.com/m-mizutani/branchsite/pkg/usecase"
)

// siteConfig is the configuration shared by commands that run the poll loop.
type siteConfig struct {
	site     config.Site
	remote   config.Remote
	poll     config.Poll
	registry config.Registry
	bigQuery config.BigQuery
	sentry   config.Sentry
}

func (x *siteConfig) Flags() []cli.Flag {
	return slice.Flatten(
		x.site.Flags(),
		x.remote.Flags(),
		x.poll.Flags(),
		x.registry.Flags(),
		x.bigQuery.Flags(),
		x.sentry.Flags(),
	)
}

// newUseCase wires infra clients from the configuration and restores the
// branch registry.
func (x *siteConfig) newUseCase(ctx context.Context, recorder interfaces.Metrics) (*usecase.UseCase, error) {
	file, err := config.LoadFile(x.site.ConfigPath())
	if err != nil {
		return nil, err
	}
	x.site.Apply(file)
	x.remote.Apply(file)
	x.poll.Apply(file)

	site, err := x.site.Build()
	if err != nil {
		return nil, err
	}

	watcher, gitClient, err := x.remote.New()
	if err != nil {
		return nil, err
	}

	runner := command.New()
	infraOptions := []infra.Option{
		infra.WithRemoteWatcher(watcher),
		infra.WithGit(gitClient),
		infra.WithCommandRunner(runner),
		infra.WithMetrics(recorder),
	}

	if proxy, err := x.site.NewProxyConfig(runner); err != nil {
		return nil, err
	} else if proxy != nil {
		infraOptions = append(infraOptions, infra.WithProxyConfig(proxy))
	}

	store, err := x.registry.NewStore(ctx, &x.remote)
	if err != nil {
		return nil, err
	}
	infraOptions = append(infraOptions, infra.WithBranchStore(store))

	if bqClient, err := x.bigQuery.NewClient(ctx); err != nil {
		return nil, err
	} else if bqClient != nil {
		infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
	}

	clients := infra.New(infraOptions...)
	options := append([]usecase.Option{usecase.WithSite(site)}, x.poll.Options(recorder)...)
	uc := usecase.New(clients, options...)

	if err := uc.LoadRegistry(ctx); err != nil {
		return nil, err
	}

	return uc, nil
}
