package usecase

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/otiai10/copy"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/fsutil"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
	"github.com/m-mizutani/branchsite/pkg/utils/safe"
)

const releasesDir = ".releases"

// ReleasePath returns the directory of release rid for complete domain,
// relative to the serve directory.
func ReleasePath(complete string, rid types.ReleaseID) string {
	return filepath.Join(releasesDir, complete, rid.String())
}

// deployBranch publishes the build output under every bound domain. Each
// domain gets a new release directory; the served symlink is switched only
// after the copy is complete, so a failed deploy keeps the previous release.
func (x *UseCase) deployBranch(ctx context.Context, rec model.BranchRecord) (*model.TransitionResult, error) {
	output := filepath.Join(x.workspace(rec.ID), x.site.BuildOutput)
	if st, err := os.Stat(output); err != nil {
		return nil, goerr.Wrap(err, "build output not found", goerr.V("dir", output))
	} else if !st.IsDir() {
		return nil, goerr.New("build output is not a directory", goerr.V("dir", output))
	}

	rid := types.NewReleaseID()
	logger := logging.From(ctx)

	for _, complete := range model.DomainBindings(rec.ID, x.site.Domains, x.site.ProductionBranch) {
		rel := ReleasePath(complete, rid)
		release := filepath.Join(x.site.ServeDir, rel)

		if err := copy.Copy(output, filepath.Join(release, "html")); err != nil {
			safe.RemoveAll(release)
			return nil, goerr.Wrap(err, "failed to stage release", goerr.V("release", release))
		}

		link := filepath.Join(x.site.ServeDir, complete)
		if err := fsutil.SwapSymlink(rel, link); err != nil {
			safe.RemoveAll(release)
			return nil, err
		}

		if proxy := x.clients.ProxyConfig(); proxy != nil {
			site := &model.ProxySite{
				CompleteDomainName: complete,
				HTMLDir:            filepath.Join(link, "html"),
				BranchID:           rec.ID.String(),
			}
			if err := proxy.Write(ctx, site); err != nil {
				return nil, goerr.Wrap(err, "failed to write proxy config", goerr.V("domain", complete))
			}
		}

		if err := x.pruneReleases(complete, rid); err != nil {
			logger.Warn("failed to prune old releases", slog.String("domain", complete), slog.Any("error", err))
		}

		logger.Info("site published", slog.String("domain", complete), slog.Any("release", rid))
	}

	if proxy := x.clients.ProxyConfig(); proxy != nil {
		if err := proxy.Reload(ctx); err != nil {
			return nil, goerr.Wrap(err, "failed to reload proxy")
		}
	}

	return &model.TransitionResult{State: types.StateDeployed}, nil
}

// pruneReleases keeps the newest releases of complete domain. Release IDs
// sort by creation time.
func (x *UseCase) pruneReleases(complete string, current types.ReleaseID) error {
	dir := filepath.Join(x.site.ServeDir, releasesDir, complete)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return goerr.Wrap(err, "failed to read releases", goerr.V("dir", dir))
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != current.String() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	// current always stays
	keep := x.site.KeepReleases - 1
	if len(names) <= keep {
		return nil
	}
	for _, name := range names[:len(names)-keep] {
		if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
			return goerr.Wrap(err, "failed to remove release", goerr.V("release", name))
		}
	}
	return nil
}

// unpublish removes the served link, all releases and the proxy config of
// complete domain.
func (x *UseCase) unpublish(ctx context.Context, complete string) error {
	link := filepath.Join(x.site.ServeDir, complete)
	if err := os.Remove(link); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(err, "failed to remove published site", goerr.V("path", link))
	}

	releases := filepath.Join(x.site.ServeDir, releasesDir, complete)
	if err := os.RemoveAll(releases); err != nil {
		return goerr.Wrap(err, "failed to remove releases", goerr.V("dir", releases))
	}

	if proxy := x.clients.ProxyConfig(); proxy != nil {
		if err := proxy.Remove(ctx, complete); err != nil {
			return goerr.Wrap(err, "failed to remove proxy config", goerr.V("domain", complete))
		}
	}

	logging.From(ctx).Info("site unpublished", slog.String("domain", complete))
	return nil
}
