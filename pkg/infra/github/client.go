package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

// Client lists branches of one GitHub repository through the REST API. It
// authenticates with a personal access token or as a GitHub App installation.
type Client struct {
	owner   string
	repo    string
	baseURL *url.URL

	token types.GitHubToken

	appID     types.GitHubAppID
	installID types.GitHubAppInstallID
	pem       types.GitHubAppPrivateKey

	mutex     sync.Mutex
	transport *ghinstallation.Transport
}

var _ interfaces.RemoteWatcher = (*Client)(nil)

type Option func(*Client)

func WithToken(token types.GitHubToken) Option {
	return func(x *Client) {
		x.token = token
	}
}

// WithApp authenticates as a GitHub App. A zero installID is resolved from
// the repository on first use.
func WithApp(appID types.GitHubAppID, installID types.GitHubAppInstallID, pem types.GitHubAppPrivateKey) Option {
	return func(x *Client) {
		x.appID = appID
		x.installID = installID
		x.pem = pem
	}
}

// WithBaseURL points the client at a GitHub Enterprise API endpoint.
func WithBaseURL(u *url.URL) Option {
	return func(x *Client) {
		x.baseURL = u
	}
}

func New(owner, repo string, options ...Option) (*Client, error) {
	if owner == "" || repo == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "repository owner and name are required",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	client := &Client{owner: owner, repo: repo}
	for _, opt := range options {
		opt(client)
	}

	if client.appID != 0 && client.pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub App private key is empty")
	}
	if client.appID == 0 && client.pem != "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub App ID is empty")
	}

	return client, nil
}

// CloneURL returns the HTTPS clone URL of the repository.
func (x *Client) CloneURL() string {
	return "https://github.com/" + x.owner + "/" + x.repo + ".git"
}

func (x *Client) newClient(httpClient *http.Client) *gh.Client {
	client := gh.NewClient(httpClient)
	if x.baseURL != nil {
		base := *x.baseURL
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		client.BaseURL = &base
	}
	return client
}

func (x *Client) appTransport(ctx context.Context) (*ghinstallation.Transport, error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	if x.transport != nil {
		return x.transport, nil
	}

	if x.installID == 0 {
		atr, err := ghinstallation.NewAppsTransport(http.DefaultTransport, int64(x.appID), []byte(x.pem))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create app transport")
		}
		if x.baseURL != nil {
			atr.BaseURL = strings.TrimSuffix(x.baseURL.String(), "/")
		}

		installation, _, err := x.newClient(&http.Client{Transport: atr}).Apps.FindRepositoryInstallation(ctx, x.owner, x.repo)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to find installation for repository",
				goerr.V("owner", x.owner),
				goerr.V("repo", x.repo),
			)
		}
		x.installID = types.GitHubAppInstallID(installation.GetID())
		logging.From(ctx).Info("Found GitHub App installation",
			slog.String("owner", x.owner),
			slog.String("repo", x.repo),
			slog.Any("installID", x.installID),
		)
	}

	itr, err := ghinstallation.New(http.DefaultTransport, int64(x.appID), int64(x.installID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create installation transport",
			goerr.V("appID", x.appID),
			goerr.V("installID", x.installID),
		)
	}
	if x.baseURL != nil {
		itr.BaseURL = strings.TrimSuffix(x.baseURL.String(), "/")
	}
	x.transport = itr

	return itr, nil
}

func (x *Client) httpClient(ctx context.Context) (*http.Client, error) {
	if x.appID != 0 {
		itr, err := x.appTransport(ctx)
		if err != nil {
			return nil, err
		}
		return &http.Client{Transport: itr}, nil
	}
	if x.token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(x.token)})
		return oauth2.NewClient(ctx, src), nil
	}
	return http.DefaultClient, nil
}

func (x *Client) apiClient(ctx context.Context) (*gh.Client, error) {
	httpClient, err := x.httpClient(ctx)
	if err != nil {
		return nil, err
	}
	return x.newClient(httpClient), nil
}

// Token returns a token usable for git over HTTPS: the personal access token,
// or a fresh installation token in App mode. Empty without credentials.
func (x *Client) Token(ctx context.Context) (types.GitHubToken, error) {
	if x.appID == 0 {
		return x.token, nil
	}
	itr, err := x.appTransport(ctx)
	if err != nil {
		return "", err
	}
	token, err := itr.Token(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get installation token", goerr.V("installID", x.installID))
	}
	return types.GitHubToken(token), nil
}

// Snapshot lists all branches of the repository with their head commits.
func (x *Client) Snapshot(ctx context.Context) (model.Snapshot, error) {
	client, err := x.apiClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrRemoteUnavailable, err), "failed to build GitHub client")
	}

	var heads []model.RemoteHead
	opts := &gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: 100}}

	for {
		branches, resp, err := client.Repositories.ListBranches(ctx, x.owner, x.repo, opts)
		if err != nil {
			return nil, goerr.Wrap(errors.Join(types.ErrRemoteUnavailable, err), "failed to list branches",
				goerr.V("owner", x.owner),
				goerr.V("repo", x.repo),
			)
		}

		for _, branch := range branches {
			if branch.GetName() == "" || branch.GetCommit().GetSHA() == "" {
				return nil, goerr.Wrap(types.ErrInvalidGitHubData, "branch without name or commit",
					goerr.V("branch", branch.GetName()),
				)
			}
			heads = append(heads, model.RemoteHead{
				Name:   branch.GetName(),
				Commit: types.CommitSHA(branch.GetCommit().GetSHA()),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	snapshot, collisions := model.NewSnapshot(heads)
	for _, c := range collisions {
		logging.From(ctx).Warn("Ignored branch whose normalized name collides with another branch",
			slog.String("name", c.Name),
			slog.Any("id", types.NewBranchID(c.Name)),
		)
	}

	logging.From(ctx).Debug("Listed GitHub branches",
		slog.String("owner", x.owner),
		slog.String("repo", x.repo),
		slog.Int("count", len(snapshot)),
	)

	return snapshot, nil
}
