package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . BigQuery Git CommandRunner ProxyConfig Metrics

import (
	"context"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, rows []any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// Git operates branch workspaces.
type Git interface {
	// Clone clones a single branch into dir. dir must not exist.
	Clone(ctx context.Context, input *GitCloneInput) error
	// Pull fetches the branch and hard-resets the workspace to the remote head.
	Pull(ctx context.Context, input *GitCloneInput) error
	// Head returns the commit checked out in dir.
	Head(ctx context.Context, dir string) (types.CommitSHA, error)
}

type GitCloneInput struct {
	Branch string
	Dir    string
}

// CommandRunner runs a command line in a working directory.
type CommandRunner interface {
	Run(ctx context.Context, dir string, commandLine string) error
}

// ProxyConfig manages the reverse proxy configuration of published domains.
type ProxyConfig interface {
	Write(ctx context.Context, site *model.ProxySite) error
	Remove(ctx context.Context, completeDomain string) error
	Reload(ctx context.Context) error
}

// Metrics records executor and poll loop activity.
type Metrics interface {
	ObserveTransition(edge types.EdgeName, outcome model.TransitionOutcome, duration time.Duration)
	ObservePoll(duration time.Duration, err error)
	IncStalled(id types.BranchID)
	SetStuck(n int)
	SetBranches(counts map[types.State]int)
}
