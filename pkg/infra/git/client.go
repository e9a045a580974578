package git

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

// Client lists branches of the remote repository and operates branch
// workspaces cloned from it.
type Client struct {
	url         string
	tokenSource TokenSource
}

// TokenSource returns the token used for HTTPS basic auth. It is called for
// every remote operation so that short lived installation tokens can be used.
type TokenSource func(ctx context.Context) (types.GitHubToken, error)

var (
	_ interfaces.Git           = (*Client)(nil)
	_ interfaces.RemoteWatcher = (*Client)(nil)
)

type Option func(*Client)

// WithToken authenticates HTTPS access with a fixed GitHub token.
func WithToken(token types.GitHubToken) Option {
	return func(x *Client) {
		if token != "" {
			x.tokenSource = func(context.Context) (types.GitHubToken, error) { return token, nil }
		}
	}
}

func WithTokenSource(src TokenSource) Option {
	return func(x *Client) {
		x.tokenSource = src
	}
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "remote URL is empty")
	}

	client := &Client{url: url}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

func (x *Client) authMethod(ctx context.Context) (transport.AuthMethod, error) {
	if x.tokenSource == nil {
		return nil, nil
	}
	token, err := x.tokenSource(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get access token")
	}
	return &http.BasicAuth{Username: "x-access-token", Password: string(token)}, nil
}

// Snapshot lists the branch heads of the remote, equivalent to
// `git ls-remote --heads`.
func (x *Client) Snapshot(ctx context.Context) (model.Snapshot, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{x.url},
	})

	auth, err := x.authMethod(ctx)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrRemoteUnavailable, err), "failed to authenticate remote",
			goerr.V("url", redact(x.url)))
	}

	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: auth})
	if err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrRemoteUnavailable, err), "failed to list remote references",
			goerr.V("url", redact(x.url)))
	}

	heads := make([]model.RemoteHead, 0, len(refs))
	for _, ref := range refs {
		if ref.Type() == plumbing.SymbolicReference || !ref.Name().IsBranch() {
			continue
		}
		heads = append(heads, model.RemoteHead{
			Name:   ref.Name().Short(),
			Commit: types.CommitSHA(ref.Hash().String()),
		})
	}

	snapshot, collisions := model.NewSnapshot(heads)
	for _, c := range collisions {
		logging.From(ctx).Warn("Ignored branch whose normalized name collides with another branch",
			slog.String("name", c.Name),
			slog.Any("id", types.NewBranchID(c.Name)),
		)
	}

	return snapshot, nil
}

// Clone makes a fresh single-branch clone into input.Dir. An existing
// directory is removed first.
func (x *Client) Clone(ctx context.Context, input *interfaces.GitCloneInput) error {
	if err := os.RemoveAll(input.Dir); err != nil {
		return goerr.Wrap(err, "failed to remove existing workspace", goerr.V("dir", input.Dir))
	}

	auth, err := x.authMethod(ctx)
	if err != nil {
		return err
	}

	_, err = git.PlainCloneContext(ctx, input.Dir, false, &git.CloneOptions{
		URL:           x.url,
		Auth:          auth,
		ReferenceName: plumbing.NewBranchReferenceName(input.Branch),
		SingleBranch:  true,
		Tags:          git.NoTags,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to clone branch",
			goerr.V("url", redact(x.url)),
			goerr.V("branch", input.Branch),
			goerr.V("dir", input.Dir),
		)
	}

	return nil
}

// Pull fetches the branch and hard-resets the workspace to the fetched head,
// discarding local changes such as build outputs. A workspace that is missing
// or is not a repository, e.g. after moving to a new host, is cloned instead.
func (x *Client) Pull(ctx context.Context, input *interfaces.GitCloneInput) error {
	repo, err := git.PlainOpen(input.Dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		logging.From(ctx).Warn("workspace is not a repository, cloning again",
			slog.String("dir", input.Dir),
			slog.String("branch", input.Branch),
		)
		return x.Clone(ctx, input)
	}
	if err != nil {
		return goerr.Wrap(err, "failed to open workspace", goerr.V("dir", input.Dir))
	}

	auth, err := x.authMethod(ctx)
	if err != nil {
		return err
	}

	localRef := plumbing.NewBranchReferenceName(input.Branch)
	remoteRef := plumbing.NewRemoteReferenceName("origin", input.Branch)
	spec := gitconfig.RefSpec("+" + localRef.String() + ":" + remoteRef.String())

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{spec},
		Auth:       auth,
		Tags:       git.NoTags,
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return goerr.Wrap(err, "failed to fetch branch", goerr.V("branch", input.Branch))
	}

	ref, err := repo.Reference(remoteRef, true)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve fetched branch", goerr.V("ref", remoteRef))
	}

	wt, err := repo.Worktree()
	if err != nil {
		return goerr.Wrap(err, "failed to get worktree", goerr.V("dir", input.Dir))
	}
	if err := wt.Reset(&git.ResetOptions{Commit: ref.Hash(), Mode: git.HardReset}); err != nil {
		return goerr.Wrap(err, "failed to reset workspace",
			goerr.V("branch", input.Branch),
			goerr.V("commit", ref.Hash().String()),
		)
	}

	return nil
}

func (x *Client) Head(ctx context.Context, dir string) (types.CommitSHA, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", goerr.Wrap(err, "failed to open workspace", goerr.V("dir", dir))
	}
	head, err := repo.Head()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve HEAD", goerr.V("dir", dir))
	}
	return types.CommitSHA(head.Hash().String()), nil
}

// redact strips credentials embedded in a remote URL for logging.
func redact(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if _, host, ok := strings.Cut(rest, "@"); ok {
		return scheme + "://***@" + host
	}
	return url
}
