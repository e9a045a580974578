package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/mock"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra"
	"github.com/m-mizutani/branchsite/pkg/infra/git"
	"github.com/m-mizutani/branchsite/pkg/repository/memory"
	"github.com/m-mizutani/branchsite/pkg/usecase"
	"github.com/m-mizutani/branchsite/pkg/utils/testutil"
)

// fakeRemote serves snapshots and fills workspaces like a git remote whose
// branches contain a built site.
type fakeRemote struct {
	mu    sync.Mutex
	heads map[string]types.CommitSHA
	err   error
}

func (x *fakeRemote) set(name string, commit types.CommitSHA) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.heads[name] = commit
}

func (x *fakeRemote) del(name string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.heads, name)
}

func (x *fakeRemote) watcher() *mock.RemoteWatcherMock {
	return &mock.RemoteWatcherMock{
		SnapshotFunc: func(ctx context.Context) (model.Snapshot, error) {
			x.mu.Lock()
			defer x.mu.Unlock()
			if x.err != nil {
				return nil, x.err
			}
			var heads []model.RemoteHead
			for name, commit := range x.heads {
				heads = append(heads, model.RemoteHead{Name: name, Commit: commit})
			}
			s, _ := model.NewSnapshot(heads)
			return s, nil
		},
	}
}

func (x *fakeRemote) checkout(input *interfaces.GitCloneInput) error {
	x.mu.Lock()
	commit := x.heads[input.Branch]
	x.mu.Unlock()

	out := filepath.Join(input.Dir, "site", "build")
	if err := os.MkdirAll(out, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(input.Dir, "HEAD"), []byte(commit), 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(out, "index.html"), []byte(input.Branch+"@"+string(commit)), 0644)
}

func (x *fakeRemote) git() *mock.GitMock {
	return &mock.GitMock{
		CloneFunc: func(ctx context.Context, input *interfaces.GitCloneInput) error {
			if err := os.RemoveAll(input.Dir); err != nil {
				return err
			}
			return x.checkout(input)
		},
		PullFunc: func(ctx context.Context, input *interfaces.GitCloneInput) error {
			return x.checkout(input)
		},
		HeadFunc: func(ctx context.Context, dir string) (types.CommitSHA, error) {
			raw, err := os.ReadFile(filepath.Join(dir, "HEAD"))
			if err != nil {
				return "", err
			}
			return types.CommitSHA(raw), nil
		},
	}
}

type testEnv struct {
	uc     *usecase.UseCase
	remote *fakeRemote
	proxy  *mock.ProxyConfigMock
	runner *mock.CommandRunnerMock
	store  interfaces.BranchStore
	site   usecase.Site
}

func newTestEnv(t *testing.T, options ...infra.Option) *testEnv {
	t.Helper()
	base := t.TempDir()

	env := &testEnv{
		remote: &fakeRemote{heads: map[string]types.CommitSHA{"main": "m1", "Feature/X": "f1"}},
		proxy: &mock.ProxyConfigMock{
			WriteFunc:  func(ctx context.Context, site *model.ProxySite) error { return nil },
			RemoveFunc: func(ctx context.Context, completeDomain string) error { return nil },
			ReloadFunc: func(ctx context.Context) error { return nil },
		},
		runner: &mock.CommandRunnerMock{
			RunFunc: func(ctx context.Context, dir string, commandLine string) error { return nil },
		},
		store: memory.New(),
		site: usecase.Site{
			Domains:          []string{"example.com"},
			ProductionBranch: "main",
			WorkDir:          filepath.Join(base, "work"),
			ServeDir:         filepath.Join(base, "serve"),
			BuildCommand:     "make build",
		},
	}

	clients := infra.New(append([]infra.Option{
		infra.WithRemoteWatcher(env.remote.watcher()),
		infra.WithGit(env.remote.git()),
		infra.WithCommandRunner(env.runner),
		infra.WithProxyConfig(env.proxy),
		infra.WithBranchStore(env.store),
	}, options...)...)

	env.uc = usecase.New(clients, usecase.WithSite(env.site))
	gt.NoError(t, env.uc.LoadRegistry(context.Background()))
	return env
}

func (x *testEnv) served(t *testing.T, complete string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(x.site.ServeDir, complete, "html", "index.html"))
	gt.NoError(t, err)
	return string(raw)
}

func TestPollOnceDeploysAllBranches(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	report := gt.R1(env.uc.PollOnce(ctx)).NoError(t)
	gt.True(t, report.Reconcile.RemoteChanged)
	gt.Equal(t, len(report.Reconcile.Added), 2)
	gt.Equal(t, report.Cycle.Transitions(), 6)

	gt.Equal(t, env.served(t, "example.com"), "main@m1")
	gt.Equal(t, env.served(t, "feature-x.example.com"), "Feature/X@f1")

	// served path is a symlink into the releases directory
	link := filepath.Join(env.site.ServeDir, "feature-x.example.com")
	target := gt.R1(os.Readlink(link)).NoError(t)
	gt.S(t, target).Contains(filepath.Join(".releases", "feature-x.example.com"))

	gt.Equal(t, len(env.runner.RunCalls()), 2)
	gt.Equal(t, env.runner.RunCalls()[0].CommandLine, "make build")

	var sites []string
	for _, call := range env.proxy.WriteCalls() {
		sites = append(sites, call.Site.CompleteDomainName)
		gt.Equal(t, call.Site.HTMLDir, filepath.Join(env.site.ServeDir, call.Site.CompleteDomainName, "html"))
	}
	gt.Equal(t, len(sites), 2)

	// registry is persisted
	records := gt.R1(env.store.Load(ctx)).NoError(t)
	gt.Equal(t, len(records), 2)
	for _, rec := range records {
		gt.V(t, rec.State).Equal(types.StateDeployed)
	}

	statuses := env.uc.ListBranches(ctx)
	gt.Equal(t, len(statuses), 2)
	gt.V(t, statuses[0].Domains).Equal([]string{"feature-x.example.com"})
	gt.V(t, statuses[1].Domains).Equal([]string{"example.com"})

	t.Run("second poll without change is a no-op", func(t *testing.T) {
		report := gt.R1(env.uc.PollOnce(ctx)).NoError(t)
		gt.False(t, report.Reconcile.RemoteChanged)
		gt.Equal(t, len(report.Cycle.Events), 0)
	})
}

func TestPollOnceUpdatesBranch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	gt.R1(env.uc.PollOnce(ctx)).NoError(t)

	for _, commit := range []types.CommitSHA{"m2", "m3", "m4"} {
		env.remote.set("main", commit)
		report := gt.R1(env.uc.PollOnce(ctx)).NoError(t)
		gt.V(t, report.Reconcile.OutOfDate).Equal([]types.BranchID{"main"})
		gt.Equal(t, report.Cycle.Transitions(), 3)
		gt.Equal(t, env.served(t, "example.com"), "main@"+string(commit))

		rec, _ := env.uc.Registry().Get("main")
		gt.V(t, rec.Fingerprint).Equal(commit)
	}

	// old releases are pruned
	entries := gt.R1(os.ReadDir(filepath.Join(env.site.ServeDir, ".releases", "example.com"))).NoError(t)
	gt.Equal(t, len(entries), usecase.DefaultKeepReleases)
}

func TestPollOnceRemovesBranch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	gt.R1(env.uc.PollOnce(ctx)).NoError(t)

	env.remote.del("Feature/X")
	report := gt.R1(env.uc.PollOnce(ctx)).NoError(t)
	gt.V(t, report.Reconcile.Orphaned).Equal([]types.BranchID{"feature-x"})
	gt.V(t, report.Cycle.Purged).Equal([]types.BranchID{"feature-x"})

	_, err := os.Lstat(filepath.Join(env.site.ServeDir, "feature-x.example.com"))
	gt.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(filepath.Join(env.site.WorkDir, "feature-x"))
	gt.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(filepath.Join(env.site.ServeDir, ".releases", "feature-x.example.com"))
	gt.True(t, errors.Is(err, os.ErrNotExist))

	gt.Equal(t, len(env.proxy.RemoveCalls()), 1)
	gt.Equal(t, env.proxy.RemoveCalls()[0].CompleteDomain, "feature-x.example.com")

	// production site is untouched
	gt.Equal(t, env.served(t, "example.com"), "main@m1")

	records := gt.R1(env.store.Load(ctx)).NoError(t)
	gt.Equal(t, len(records), 1)
	gt.V(t, records[0].ID).Equal(types.BranchID("main"))
}

func TestPollOnceRemoteUnavailable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	gt.R1(env.uc.PollOnce(ctx)).NoError(t)
	before := env.uc.Registry().List()

	env.remote.err = errors.Join(types.ErrRemoteUnavailable, errors.New("connection refused"))
	_, err := env.uc.PollOnce(ctx)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrRemoteUnavailable))
	gt.V(t, env.uc.Registry().List()).Equal(before)
}

func TestPollOnceFailedDeployKeepsPreviousRelease(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	gt.R1(env.uc.PollOnce(ctx)).NoError(t)

	env.remote.set("main", "m2")
	env.runner.RunFunc = func(ctx context.Context, dir string, commandLine string) error {
		return os.RemoveAll(filepath.Join(dir, "site", "build"))
	}

	report := gt.R1(env.uc.PollOnce(ctx)).NoError(t)
	gt.V(t, report.Cycle.Failed).Equal([]types.BranchID{"main"})
	gt.Equal(t, env.served(t, "example.com"), "main@m1")

	rec, _ := env.uc.Registry().Get("main")
	gt.V(t, rec.State).Equal(types.StateBuilt)
	gt.Equal(t, rec.Failures, 1)
}

func TestPollOnceExportsEvents(t *testing.T) {
	ctx := context.Background()

	var inserted []any
	bq := &mock.BigQueryMock{
		GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) { return nil, nil },
		CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error { return nil },
		InsertFunc: func(ctx context.Context, schema bigquery.Schema, rows []any) error {
			inserted = append(inserted, rows...)
			return nil
		},
	}
	env := newTestEnv(t, infra.WithBigQuery(bq))

	gt.R1(env.uc.PollOnce(ctx)).NoError(t)
	gt.Equal(t, len(inserted), 6)
	gt.Equal(t, len(bq.CreateTableCalls()), 1)

	row, ok := inserted[0].(*model.TransitionEventRawRecord)
	gt.True(t, ok)
	gt.Equal(t, row.Outcome, model.OutcomeSuccess)

	// no events, no insert
	gt.R1(env.uc.PollOnce(ctx)).NoError(t)
	gt.Equal(t, len(bq.InsertCalls()), 1)
}

func TestLoadRegistryCorrupt(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := model.BranchRecord{ID: "dev", Name: "dev", State: "unknown", TerminalState: types.StateDeployed}
	gt.NoError(t, store.Save(ctx, []*model.BranchRecord{&rec}))

	uc := usecase.New(infra.New(infra.WithBranchStore(store)))
	err := uc.LoadRegistry(ctx)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrRegistryCorrupt))
}

func TestRequestPoll(t *testing.T) {
	uc := usecase.New(infra.New())
	ctx := context.Background()
	gt.True(t, uc.RequestPoll(ctx, "push"))
	gt.False(t, uc.RequestPoll(ctx, "push"))
}

func TestCreateOrUpdateBigQueryTable(t *testing.T) {
	ctx := context.Background()

	t.Run("schema unchanged", func(t *testing.T) {
		schema := gt.R1(usecase.CreateOrUpdateBigQueryTableForTest(ctx, &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error { return nil },
		}, &model.TransitionEvent{})).NoError(t)

		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{Schema: schema}, nil
			},
		}
		gt.R1(usecase.CreateOrUpdateBigQueryTableForTest(ctx, bq, &model.TransitionEvent{})).NoError(t)
		gt.Equal(t, len(bq.UpdateTableCalls()), 0)
	})

	t.Run("schema extended", func(t *testing.T) {
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return &bigquery.TableMetadata{
					Schema: bigquery.Schema{{Name: "cycle_id", Type: bigquery.StringFieldType}},
					ETag:   "etag-1",
				}, nil
			},
			UpdateTableFunc: func(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
				return nil
			},
		}
		schema := gt.R1(usecase.CreateOrUpdateBigQueryTableForTest(ctx, bq, &model.TransitionEvent{})).NoError(t)
		gt.A(t, schema).Longer(1)
		gt.Equal(t, len(bq.UpdateTableCalls()), 1)
		gt.Equal(t, bq.UpdateTableCalls()[0].ETag, "etag-1")
	})
}

func TestPollOnceRecoversMissingWorkspace(t *testing.T) {
	ctx := context.Background()
	remote := testutil.NewGitRemote(t)
	first := remote.Commit("main", map[string]string{"site/build/index.html": "v1"})
	second := remote.Commit("main", map[string]string{"site/build/index.html": "v2"})

	// registry restored on a host whose work directory is empty
	store := memory.New()
	gt.NoError(t, store.Save(ctx, []*model.BranchRecord{{
		ID:                "main",
		Name:              "main",
		State:             types.StateDeployed,
		TerminalState:     types.StateDeployed,
		Fingerprint:       types.CommitSHA(first),
		RemoteFingerprint: types.CommitSHA(first),
	}}))

	gitClient := gt.R1(git.New(remote.URL)).NoError(t)
	base := t.TempDir()
	site := usecase.Site{
		Domains:          []string{"example.com"},
		ProductionBranch: "main",
		WorkDir:          filepath.Join(base, "work"),
		ServeDir:         filepath.Join(base, "serve"),
	}
	uc := usecase.New(infra.New(
		infra.WithRemoteWatcher(gitClient),
		infra.WithGit(gitClient),
		infra.WithBranchStore(store),
	), usecase.WithSite(site))
	gt.NoError(t, uc.LoadRegistry(ctx))

	report := gt.R1(uc.PollOnce(ctx)).NoError(t)
	gt.Equal(t, len(report.Cycle.Failed), 0)

	rec, ok := uc.Registry().Get("main")
	gt.True(t, ok)
	gt.V(t, rec.State).Equal(types.StateDeployed)
	gt.V(t, rec.Fingerprint).Equal(types.CommitSHA(second))
	gt.Equal(t, rec.Failures, 0)

	body := gt.R1(os.ReadFile(filepath.Join(site.ServeDir, "example.com", "html", "index.html"))).NoError(t)
	gt.Equal(t, string(body), "v2")
}

func TestRunKeepsMinPollSpacing(t *testing.T) {
	remote := &fakeRemote{heads: map[string]types.CommitSHA{"main": "m1"}}
	watcher := remote.watcher()
	clients := infra.New(
		infra.WithRemoteWatcher(watcher),
		infra.WithGit(remote.git()),
		infra.WithBranchStore(memory.New()),
	)
	base := t.TempDir()
	uc := usecase.New(clients,
		usecase.WithSite(usecase.Site{
			Domains:          []string{"example.com"},
			ProductionBranch: "main",
			WorkDir:          filepath.Join(base, "work"),
			ServeDir:         filepath.Join(base, "serve"),
		}),
		usecase.WithCadence(&usecase.Cadence{Active: time.Hour, Idle: time.Hour, Window: time.Minute}),
		usecase.WithMinPollSpacing(time.Hour),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- uc.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for len(watcher.SnapshotCalls()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	gt.Equal(t, len(watcher.SnapshotCalls()), 1)

	// the startup poll consumed the spacing budget
	gt.True(t, uc.RequestPoll(ctx, "push main"))
	time.Sleep(300 * time.Millisecond)
	gt.Equal(t, len(watcher.SnapshotCalls()), 1)

	cancel()
	gt.NoError(t, <-done)
}
