package usecase

import (
	"sync"
	"time"

	"github.com/m-mizutani/branchsite/pkg/domain/graph"
	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra"
)

const (
	DefaultBuildOutput  = "site/build"
	DefaultKeepReleases = 2
)

// Site describes where branches are built and how they are published.
type Site struct {
	Domains          []string
	ProductionBranch types.BranchID
	WorkDir          string
	ServeDir         string
	BuildCommand     string
	// BuildOutput is the directory relative to the workspace that is published.
	BuildOutput string
	// KeepReleases is the number of releases kept per domain, including the
	// one being served.
	KeepReleases int
}

type UseCase struct {
	clients *infra.Clients
	site    Site

	graph    *graph.Graph
	registry *Registry
	executor *Executor
	cadence  *Cadence
	trigger  *Trigger

	pollMutex sync.Mutex
	prev      model.Snapshot
}

type Option func(*UseCase)

func WithSite(site Site) Option {
	return func(x *UseCase) {
		x.site = site
	}
}

func WithExecutor(executor *Executor) Option {
	return func(x *UseCase) {
		x.executor = executor
	}
}

func WithCadence(cadence *Cadence) Option {
	return func(x *UseCase) {
		x.cadence = cadence
	}
}

func WithMinPollSpacing(d time.Duration) Option {
	return func(x *UseCase) {
		x.trigger = NewTrigger(d)
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	x := &UseCase{
		clients:  clients,
		registry: NewRegistry(),
		cadence:  NewCadence(),
	}
	for _, opt := range options {
		opt(x)
	}

	if x.site.BuildOutput == "" {
		x.site.BuildOutput = DefaultBuildOutput
	}
	if x.site.KeepReleases < 1 {
		x.site.KeepReleases = DefaultKeepReleases
	}
	if x.executor == nil {
		x.executor = NewExecutor(WithMetrics(clients.Metrics()))
	}
	if x.trigger == nil {
		x.trigger = NewTrigger(DefaultMinPollSpacing)
	}

	x.graph = NewGraph(x)
	return x
}

// Graph returns the lifecycle graph whose actions are bound to x.
func (x *UseCase) Graph() *graph.Graph {
	return x.graph
}

func (x *UseCase) Registry() *Registry {
	return x.registry
}

var _ interfaces.UseCase = (*UseCase)(nil)
