package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra/proxyconf"
	"github.com/m-mizutani/branchsite/pkg/usecase"
)

type Site struct {
	configPath       string
	domains          []string
	productionBranch string
	workDir          string
	serveDir         string
	buildCommand     string
	buildOutput      string
	keepReleases     int

	proxyConfDir  string
	proxyTemplate string
	proxyReload   string
}

func (x *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Site config file (YAML or buildConfig.json)",
			Aliases:     []string{"c"},
			Category:    "Site",
			Sources:     cli.EnvVars("BRANCHSITE_CONFIG"),
			Destination: &x.configPath,
		},
		&cli.StringSliceFlag{
			Name:        "domain",
			Usage:       "Domain name to publish branches under (repeatable)",
			Category:    "Site",
			Sources:     cli.EnvVars("BRANCHSITE_DOMAIN"),
			Destination: &x.domains,
		},
		&cli.StringFlag{
			Name:        "production-branch",
			Usage:       "Branch served on the bare domain (required)",
			Category:    "Site",
			Sources:     cli.EnvVars("BRANCHSITE_PRODUCTION_BRANCH"),
			Destination: &x.productionBranch,
		},
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Directory of branch workspaces (default: ./branches)",
			Category:    "Site",
			Sources:     cli.EnvVars("BRANCHSITE_WORK_DIR"),
			Destination: &x.workDir,
		},
		&cli.StringFlag{
			Name:        "serve-dir",
			Usage:       "Directory of published sites (default: ./sites)",
			Category:    "Site",
			Sources:     cli.EnvVars("BRANCHSITE_SERVE_DIR"),
			Destination: &x.serveDir,
		},
		&cli.StringFlag{
			Name:        "build-command",
			Usage:       "Command run in the workspace to build the site",
			Category:    "Site",
			Sources:     cli.EnvVars("BRANCHSITE_BUILD_COMMAND"),
			Destination: &x.buildCommand,
		},
		&cli.StringFlag{
			Name:        "build-output",
			Usage:       "Build output directory relative to the workspace (default: site/build)",
			Category:    "Site",
			Sources:     cli.EnvVars("BRANCHSITE_BUILD_OUTPUT"),
			Destination: &x.buildOutput,
		},
		&cli.IntFlag{
			Name:        "keep-releases",
			Usage:       "Number of releases kept per domain",
			Category:    "Site",
			Value:       usecase.DefaultKeepReleases,
			Sources:     cli.EnvVars("BRANCHSITE_KEEP_RELEASES"),
			Destination: &x.keepReleases,
		},
		&cli.StringFlag{
			Name:        "proxy-conf-dir",
			Usage:       "Directory to write proxy config per domain (disabled if empty)",
			Category:    "Proxy",
			Sources:     cli.EnvVars("BRANCHSITE_PROXY_CONF_DIR"),
			Destination: &x.proxyConfDir,
		},
		&cli.StringFlag{
			Name:        "proxy-template",
			Usage:       "Proxy config template file (default: built-in nginx server block)",
			Category:    "Proxy",
			Sources:     cli.EnvVars("BRANCHSITE_PROXY_TEMPLATE"),
			Destination: &x.proxyTemplate,
		},
		&cli.StringFlag{
			Name:        "proxy-reload",
			Usage:       "Command to reload the proxy after config changes",
			Category:    "Proxy",
			Sources:     cli.EnvVars("BRANCHSITE_PROXY_RELOAD"),
			Destination: &x.proxyReload,
		},
	}
}

func (x *Site) ConfigPath() string {
	return x.configPath
}

// Apply fills values not given on the command line from file.
func (x *Site) Apply(file *File) {
	if len(x.domains) == 0 {
		x.domains = file.DomainNames
	}
	x.productionBranch = orString(x.productionBranch, file.ProductionBranch)
	x.workDir = orString(x.workDir, file.WorkDir)
	x.serveDir = orString(x.serveDir, file.ServeDir)
	x.buildCommand = orString(x.buildCommand, file.BuildCommand)
	x.buildOutput = orString(x.buildOutput, file.BuildOutput)
	x.proxyConfDir = orString(x.proxyConfDir, file.ProxyConfDir)
}

// Build validates the configuration and returns the site definition.
func (x *Site) Build() (usecase.Site, error) {
	if len(x.domains) == 0 {
		return usecase.Site{}, goerr.Wrap(types.ErrInvalidOption, "at least one domain is required")
	}
	for _, d := range x.domains {
		if d == "" {
			return usecase.Site{}, goerr.Wrap(types.ErrInvalidOption, "domain is empty")
		}
	}
	production := types.NewBranchID(x.productionBranch)
	if production == "" {
		return usecase.Site{}, goerr.Wrap(types.ErrInvalidOption, "production branch is required")
	}

	return usecase.Site{
		Domains:          x.domains,
		ProductionBranch: production,
		WorkDir:          orString(x.workDir, "./branches"),
		ServeDir:         orString(x.serveDir, "./sites"),
		BuildCommand:     x.buildCommand,
		BuildOutput:      orString(x.buildOutput, usecase.DefaultBuildOutput),
		KeepReleases:     x.keepReleases,
	}, nil
}

// NewProxyConfig returns nil when no proxy config directory is set.
func (x *Site) NewProxyConfig(runner interfaces.CommandRunner) (interfaces.ProxyConfig, error) {
	if x.proxyConfDir == "" {
		return nil, nil
	}

	var options []proxyconf.Option
	if x.proxyTemplate != "" {
		options = append(options, proxyconf.WithTemplateFile(x.proxyTemplate))
	}
	if x.proxyReload != "" {
		options = append(options, proxyconf.WithReload(x.proxyReload, runner))
	}

	client, err := proxyconf.New(x.proxyConfDir, options...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *Site) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("ConfigPath", x.configPath),
		slog.Any("Domains", x.domains),
		slog.String("ProductionBranch", x.productionBranch),
		slog.String("WorkDir", x.workDir),
		slog.String("ServeDir", x.serveDir),
		slog.String("BuildCommand", x.buildCommand),
		slog.String("BuildOutput", x.buildOutput),
		slog.Int("KeepReleases", x.keepReleases),
		slog.String("ProxyConfDir", x.proxyConfDir),
		slog.String("ProxyTemplate", x.proxyTemplate),
		slog.String("ProxyReload", x.proxyReload),
	)
}
