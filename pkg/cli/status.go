package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/cli/config"
	"github.com/m-mizutani/branchsite/pkg/infra"
	"github.com/m-mizutani/branchsite/pkg/usecase"
)

// statusCommand prints the persisted registry with the complete domains of
// every branch. It does not contact the remote.
func statusCommand() *cli.Command {
	var (
		site     config.Site
		remote   config.Remote
		registry config.Registry
	)

	return &cli.Command{
		Name:  "status",
		Usage: "Print the persisted branch registry as JSON",
		Flags: slice.Flatten(
			site.Flags(),
			remote.Flags(),
			registry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			file, err := config.LoadFile(site.ConfigPath())
			if err != nil {
				return err
			}
			site.Apply(file)
			remote.Apply(file)

			siteCfg, err := site.Build()
			if err != nil {
				return err
			}

			store, err := registry.NewStore(ctx, &remote)
			if err != nil {
				return err
			}

			uc := usecase.New(infra.New(infra.WithBranchStore(store)), usecase.WithSite(siteCfg))
			if err := uc.LoadRegistry(ctx); err != nil {
				return err
			}

			encoder := json.NewEncoder(c.Root().Writer)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(uc.ListBranches(ctx)); err != nil {
				return goerr.Wrap(err, "failed to write branch status")
			}
			return nil
		},
	}
}
