package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/cli/config"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra/git"
	"github.com/m-mizutani/branchsite/pkg/infra/github"
	"github.com/m-mizutani/branchsite/pkg/usecase"
)

// parse runs flags against args the way the CLI does.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: func(ctx context.Context, c *cli.Command) error { return nil },
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("buildConfig.json", func(t *testing.T) {
		path := writeFile(t, "buildConfig.json", `{
  "domain_names": ["example.com", "example.org"],
  "production_branch": "main",
  "repo_owner_username": "octo",
  "repo_name": "docs",
  "seconds_between_builds": 30
}`)
		file := gt.R1(config.LoadFile(path)).NoError(t)
		gt.V(t, file.DomainNames).Equal([]string{"example.com", "example.org"})
		gt.Equal(t, file.ProductionBranch, "main")
		gt.Equal(t, file.RepoOwner, "octo")
		gt.Equal(t, file.RepoName, "docs")
		gt.Equal(t, file.SecondsBetweenBuilds, 30)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "site.yaml", "domain_names:\n  - example.com\nbuild_command: make site\n")
		file := gt.R1(config.LoadFile(path)).NoError(t)
		gt.V(t, file.DomainNames).Equal([]string{"example.com"})
		gt.Equal(t, file.BuildCommand, "make site")
	})

	t.Run("empty path", func(t *testing.T) {
		file := gt.R1(config.LoadFile("")).NoError(t)
		gt.Equal(t, len(file.DomainNames), 0)
	})

	t.Run("broken file", func(t *testing.T) {
		path := writeFile(t, "site.yaml", "domain_names: [")
		_, err := config.LoadFile(path)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		gt.Error(t, err)
	})
}

func TestSite(t *testing.T) {
	t.Run("flags take precedence over file", func(t *testing.T) {
		var site config.Site
		parse(t, site.Flags(), "--domain", "flag.example.com", "--build-command", "npm run build")

		site.Apply(&config.File{
			DomainNames:      []string{"file.example.com"},
			ProductionBranch: "Release",
			BuildCommand:     "make",
		})

		built := gt.R1(site.Build()).NoError(t)
		gt.V(t, built.Domains).Equal([]string{"flag.example.com"})
		gt.V(t, built.ProductionBranch).Equal(types.BranchID("release"))
		gt.Equal(t, built.BuildCommand, "npm run build")
		gt.Equal(t, built.BuildOutput, usecase.DefaultBuildOutput)
		gt.Equal(t, built.KeepReleases, usecase.DefaultKeepReleases)
	})

	t.Run("domain from file", func(t *testing.T) {
		var site config.Site
		parse(t, site.Flags())
		site.Apply(&config.File{DomainNames: []string{"file.example.com"}, ProductionBranch: "main"})

		built := gt.R1(site.Build()).NoError(t)
		gt.V(t, built.Domains).Equal([]string{"file.example.com"})
		gt.V(t, built.ProductionBranch).Equal(types.BranchID("main"))
	})

	t.Run("production branch is required", func(t *testing.T) {
		var site config.Site
		parse(t, site.Flags(), "--domain", "example.com")
		site.Apply(&config.File{})

		_, err := site.Build()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("domain is required", func(t *testing.T) {
		var site config.Site
		parse(t, site.Flags())
		site.Apply(&config.File{})

		_, err := site.Build()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("proxy config is optional", func(t *testing.T) {
		var site config.Site
		parse(t, site.Flags())
		proxy, err := site.NewProxyConfig(nil)
		gt.NoError(t, err)
		gt.True(t, proxy == nil)

		parse(t, site.Flags(), "--proxy-conf-dir", t.TempDir())
		proxy, err = site.NewProxyConfig(nil)
		gt.NoError(t, err)
		gt.True(t, proxy != nil)
	})
}

func TestPoll(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var poll config.Poll
		parse(t, poll.Flags())
		poll.Apply(&config.File{})

		cadence := poll.Cadence()
		gt.V(t, cadence.Active).Equal(usecase.DefaultActiveInterval)
		gt.V(t, cadence.Idle).Equal(usecase.DefaultIdleInterval)
		gt.V(t, cadence.Window).Equal(usecase.DefaultActiveWindow)
	})

	t.Run("idle interval from seconds_between_builds", func(t *testing.T) {
		var poll config.Poll
		parse(t, poll.Flags())
		poll.Apply(&config.File{SecondsBetweenBuilds: 30})
		gt.V(t, poll.Cadence().Idle).Equal(30 * time.Second)
	})

	t.Run("idle interval flag wins", func(t *testing.T) {
		var poll config.Poll
		parse(t, poll.Flags(), "--idle-interval", "2m")
		poll.Apply(&config.File{SecondsBetweenBuilds: 30})
		gt.V(t, poll.Cadence().Idle).Equal(2 * time.Minute)
	})
}

func TestRemote(t *testing.T) {
	t.Run("git remote", func(t *testing.T) {
		var remote config.Remote
		parse(t, remote.Flags(), "--remote-url", "https://example.com/repo.git")

		watcher, gitClient, err := remote.New()
		gt.NoError(t, err)
		_, ok := watcher.(*git.Client)
		gt.True(t, ok)
		gt.True(t, gitClient != nil)
	})

	t.Run("github watcher with owner and repo from file", func(t *testing.T) {
		var remote config.Remote
		parse(t, remote.Flags(), "--watcher", "github", "--github-token", "test-token")
		remote.Apply(&config.File{RepoOwner: "octo", RepoName: "docs"})

		watcher, _, err := remote.New()
		gt.NoError(t, err)
		_, ok := watcher.(*github.Client)
		gt.True(t, ok)
	})

	t.Run("github watcher requires owner and repo", func(t *testing.T) {
		var remote config.Remote
		parse(t, remote.Flags(), "--watcher", "github", "--remote-url", "https://example.com/repo.git")

		_, _, err := remote.New()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("remote is required", func(t *testing.T) {
		var remote config.Remote
		parse(t, remote.Flags())

		_, _, err := remote.New()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("unknown watcher", func(t *testing.T) {
		var remote config.Remote
		parse(t, remote.Flags(), "--watcher", "svn", "--remote-url", "https://example.com/repo.git")

		_, _, err := remote.New()
		gt.Error(t, err)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("file store by default", func(t *testing.T) {
		var registry config.Registry
		path := filepath.Join(t.TempDir(), "registry.json")
		parse(t, registry.Flags(), "--registry-file", path)

		store := gt.R1(registry.NewStore(context.Background(), &config.Remote{})).NoError(t)
		records := gt.R1(store.Load(context.Background())).NoError(t)
		gt.Equal(t, len(records), 0)
	})

	t.Run("firestore requires site ID", func(t *testing.T) {
		var registry config.Registry
		parse(t, registry.Flags(), "--firestore-project-id", "test-project")

		_, err := registry.NewStore(context.Background(), &config.Remote{})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestBigQueryDisabled(t *testing.T) {
	var bq config.BigQuery
	parse(t, bq.Flags())
	gt.False(t, bq.Enabled())

	client, err := bq.NewClient(context.Background())
	gt.NoError(t, err)
	gt.True(t, client == nil)
}

func TestWebhook(t *testing.T) {
	var webhook config.Webhook
	parse(t, webhook.Flags(), "--webhook-secret", "s3cr3t")
	gt.V(t, webhook.Secret()).Equal(types.WebhookSecret("s3cr3t"))
}
