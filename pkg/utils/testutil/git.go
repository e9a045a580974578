package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/gt"
)

// GitRemote is a local bare repository used as the tracked remote in tests.
// Commits are made in a seed working copy and pushed to the bare repository.
type GitRemote struct {
	t    *testing.T
	URL  string
	seed *git.Repository
	path string
}

func NewGitRemote(t *testing.T) *GitRemote {
	t.Helper()
	root := t.TempDir()
	bare := filepath.Join(root, "remote.git")
	gt.R1(git.PlainInit(bare, true)).NoError(t)

	seedPath := filepath.Join(root, "seed")
	seed := gt.R1(git.PlainInit(seedPath, false)).NoError(t)
	gt.R1(seed.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{bare}})).NoError(t)

	return &GitRemote{t: t, URL: bare, seed: seed, path: seedPath}
}

// Commit writes files on branch, commits and pushes. The branch is created
// from the current seed HEAD when it does not exist.
func (x *GitRemote) Commit(branch string, files map[string]string) string {
	x.t.Helper()
	wt := gt.R1(x.seed.Worktree()).NoError(x.t)

	ref := plumbing.NewBranchReferenceName(branch)
	if head, err := x.seed.Head(); err == nil {
		opts := &git.CheckoutOptions{Branch: ref}
		if _, err := x.seed.Reference(ref, false); err != nil {
			opts.Create = true
			opts.Hash = head.Hash()
		}
		gt.NoError(x.t, wt.Checkout(opts))
	} else {
		gt.NoError(x.t, x.seed.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, ref)))
	}

	for name, body := range files {
		path := filepath.Join(x.path, name)
		gt.NoError(x.t, os.MkdirAll(filepath.Dir(path), 0755))
		gt.NoError(x.t, os.WriteFile(path, []byte(body), 0644))
		gt.R1(wt.Add(name)).NoError(x.t)
	}

	hash := gt.R1(wt.Commit("update "+branch, &git.CommitOptions{
		Author:            &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
		AllowEmptyCommits: true,
	})).NoError(x.t)

	x.push(gitconfig.RefSpec("+" + ref.String() + ":" + ref.String()))
	return hash.String()
}

// DeleteBranch removes branch from the remote.
func (x *GitRemote) DeleteBranch(branch string) {
	x.t.Helper()
	x.push(gitconfig.RefSpec(":" + plumbing.NewBranchReferenceName(branch).String()))
}

func (x *GitRemote) push(spec gitconfig.RefSpec) {
	err := x.seed.Push(&git.PushOptions{RemoteName: "origin", RefSpecs: []gitconfig.RefSpec{spec}})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		x.t.Fatalf("push %s: %v", spec, err)
	}
}
