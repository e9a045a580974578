package usecase

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

func (x *UseCase) workspace(id types.BranchID) string {
	return filepath.Join(x.site.WorkDir, id.String())
}

// cloneBranch makes a fresh single-branch clone. A leftover workspace, for
// example from an interrupted removal, is replaced.
func (x *UseCase) cloneBranch(ctx context.Context, rec model.BranchRecord) (*model.TransitionResult, error) {
	input := &interfaces.GitCloneInput{
		Branch: rec.Name,
		Dir:    x.workspace(rec.ID),
	}
	if err := x.clients.Git().Clone(ctx, input); err != nil {
		return nil, goerr.Wrap(err, "failed to clone branch", goerr.V("branch", rec.Name), goerr.V("dir", input.Dir))
	}

	return &model.TransitionResult{State: types.StateCloned}, nil
}

func (x *UseCase) pullBranch(ctx context.Context, rec model.BranchRecord) (*model.TransitionResult, error) {
	input := &interfaces.GitCloneInput{
		Branch: rec.Name,
		Dir:    x.workspace(rec.ID),
	}
	if err := x.clients.Git().Pull(ctx, input); err != nil {
		return nil, goerr.Wrap(err, "failed to pull branch", goerr.V("branch", rec.Name), goerr.V("dir", input.Dir))
	}

	return &model.TransitionResult{State: types.StateCloned}, nil
}

// buildBranch runs the build command in the workspace and reports the
// commit it was run on as the new fingerprint.
func (x *UseCase) buildBranch(ctx context.Context, rec model.BranchRecord) (*model.TransitionResult, error) {
	dir := x.workspace(rec.ID)

	if x.site.BuildCommand != "" {
		logging.From(ctx).Info("building branch", slog.String("command", x.site.BuildCommand))
		if err := x.clients.CommandRunner().Run(ctx, dir, x.site.BuildCommand); err != nil {
			return nil, goerr.Wrap(err, "build command failed", goerr.V("dir", dir))
		}
	}

	head, err := x.clients.Git().Head(ctx, dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read workspace HEAD", goerr.V("dir", dir))
	}

	return &model.TransitionResult{State: types.StateBuilt, Fingerprint: head}, nil
}

// removeBranch deletes everything the branch left behind. Missing files are
// not an error, so a partially done removal can be retried.
func (x *UseCase) removeBranch(ctx context.Context, rec model.BranchRecord) (*model.TransitionResult, error) {
	dir := x.workspace(rec.ID)
	if err := os.RemoveAll(dir); err != nil {
		return nil, goerr.Wrap(err, "failed to remove workspace", goerr.V("dir", dir))
	}

	for _, complete := range model.DomainBindings(rec.ID, x.site.Domains, x.site.ProductionBranch) {
		if err := x.unpublish(ctx, complete); err != nil {
			return nil, err
		}
	}

	if proxy := x.clients.ProxyConfig(); proxy != nil {
		if err := proxy.Reload(ctx); err != nil {
			return nil, goerr.Wrap(err, "failed to reload proxy")
		}
	}

	return &model.TransitionResult{State: types.StateRemoved}, nil
}
