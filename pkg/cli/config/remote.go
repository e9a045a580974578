package config

import (
	"log/slog"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra/git"
	"github.com/m-mizutani/branchsite/pkg/infra/github"
)

const (
	WatcherGit    = "git"
	WatcherGitHub = "github"
)

// Remote configures the tracked repository and how its branches are listed.
type Remote struct {
	url     string
	owner   string
	repo    string
	watcher string
	apiURL  string

	token        types.GitHubToken `masq:"secret"`
	appID        types.GitHubAppID
	appInstallID types.GitHubAppInstallID
	privateKey   types.GitHubAppPrivateKey `masq:"secret"`
}

func (x *Remote) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "remote-url",
			Usage:       "Git URL of the tracked repository (default: GitHub HTTPS URL of owner/repo)",
			Category:    "Remote",
			Sources:     cli.EnvVars("BRANCHSITE_REMOTE_URL"),
			Destination: &x.url,
		},
		&cli.StringFlag{
			Name:        "github-owner",
			Usage:       "GitHub repository owner",
			Category:    "Remote",
			Sources:     cli.EnvVars("BRANCHSITE_GITHUB_OWNER"),
			Destination: &x.owner,
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "GitHub repository name",
			Category:    "Remote",
			Sources:     cli.EnvVars("BRANCHSITE_GITHUB_REPO"),
			Destination: &x.repo,
		},
		&cli.StringFlag{
			Name:        "watcher",
			Usage:       "How to list remote branches [git|github]",
			Category:    "Remote",
			Value:       WatcherGit,
			Sources:     cli.EnvVars("BRANCHSITE_WATCHER"),
			Destination: &x.watcher,
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Category:    "Remote",
			Sources:     cli.EnvVars("BRANCHSITE_GITHUB_API_URL"),
			Destination: &x.apiURL,
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token for API and HTTPS git access",
			Category:    "Remote",
			Sources:     cli.EnvVars("BRANCHSITE_GITHUB_TOKEN"),
			Destination: (*string)(&x.token),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub App",
			Sources:     cli.EnvVars("BRANCHSITE_GITHUB_APP_ID"),
			Destination: (*int64)(&x.appID),
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App installation ID (resolved from the repository if omitted)",
			Category:    "GitHub App",
			Sources:     cli.EnvVars("BRANCHSITE_GITHUB_APP_INSTALL_ID"),
			Destination: (*int64)(&x.appInstallID),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Category:    "GitHub App",
			Sources:     cli.EnvVars("BRANCHSITE_GITHUB_APP_PRIVATE_KEY"),
			Destination: (*string)(&x.privateKey),
		},
	}
}

// Apply fills values not given on the command line from file.
func (x *Remote) Apply(file *File) {
	x.url = orString(x.url, file.RemoteURL)
	x.owner = orString(x.owner, file.RepoOwner)
	x.repo = orString(x.repo, file.RepoName)
}

func (x *Remote) Owner() string { return x.owner }
func (x *Remote) Repo() string  { return x.repo }

func (x *Remote) hasGitHub() bool {
	return x.owner != "" && x.repo != ""
}

func (x *Remote) newGitHub() (*github.Client, error) {
	var options []github.Option
	if x.token != "" {
		options = append(options, github.WithToken(x.token))
	}
	if x.appID != 0 || x.privateKey != "" {
		options = append(options, github.WithApp(x.appID, x.appInstallID, x.privateKey))
	}
	if x.apiURL != "" {
		u, err := url.Parse(x.apiURL)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub API URL", goerr.V("url", x.apiURL))
		}
		options = append(options, github.WithBaseURL(u))
	}

	return github.New(x.owner, x.repo, options...)
}

// New builds the branch watcher and the git client of the remote.
func (x *Remote) New() (interfaces.RemoteWatcher, interfaces.Git, error) {
	var ghClient *github.Client
	if x.hasGitHub() {
		client, err := x.newGitHub()
		if err != nil {
			return nil, nil, err
		}
		ghClient = client
	}

	remoteURL := x.url
	var gitOptions []git.Option
	if ghClient != nil {
		remoteURL = orString(remoteURL, ghClient.CloneURL())
		if x.token != "" || x.appID != 0 {
			gitOptions = append(gitOptions, git.WithTokenSource(ghClient.Token))
		}
	} else {
		gitOptions = append(gitOptions, git.WithToken(x.token))
	}
	if remoteURL == "" {
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "remote URL or GitHub owner/repo is required")
	}

	gitClient, err := git.New(remoteURL, gitOptions...)
	if err != nil {
		return nil, nil, err
	}

	switch x.watcher {
	case WatcherGit, "":
		return gitClient, gitClient, nil
	case WatcherGitHub:
		if ghClient == nil {
			return nil, nil, goerr.Wrap(types.ErrInvalidOption, "github watcher requires GitHub owner and repo")
		}
		return ghClient, gitClient, nil
	default:
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "unknown watcher", goerr.V("watcher", x.watcher))
	}
}

func (x Remote) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("URL", x.url),
		slog.String("Owner", x.owner),
		slog.String("Repo", x.repo),
		slog.String("Watcher", x.watcher),
		slog.String("APIURL", x.apiURL),
		slog.Int("Token.len", len(x.token)),
		slog.Int64("AppID", int64(x.appID)),
		slog.Int64("AppInstallID", int64(x.appInstallID)),
		slog.Int("PrivateKey.len", len(x.privateKey)),
	)
}
