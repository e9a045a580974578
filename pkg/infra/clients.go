package infra

import (
	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/infra/command"
	"github.com/m-mizutani/branchsite/pkg/infra/metrics"
)

type Clients struct {
	watcher     interfaces.RemoteWatcher
	git         interfaces.Git
	runner      interfaces.CommandRunner
	proxyConfig interfaces.ProxyConfig
	bqClient    interfaces.BigQuery
	metrics     interfaces.Metrics
	branchStore interfaces.BranchStore
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		runner:  command.New(),
		metrics: metrics.Noop{},
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) RemoteWatcher() interfaces.RemoteWatcher {
	return x.watcher
}
func (x *Clients) Git() interfaces.Git {
	return x.git
}
func (x *Clients) CommandRunner() interfaces.CommandRunner {
	return x.runner
}

// ProxyConfig returns nil when proxy configuration is disabled.
func (x *Clients) ProxyConfig() interfaces.ProxyConfig {
	return x.proxyConfig
}

// BigQuery returns nil when transition export is disabled.
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) Metrics() interfaces.Metrics {
	return x.metrics
}
func (x *Clients) BranchStore() interfaces.BranchStore {
	return x.branchStore
}

func WithRemoteWatcher(watcher interfaces.RemoteWatcher) Option {
	return func(x *Clients) {
		x.watcher = watcher
	}
}

func WithGit(client interfaces.Git) Option {
	return func(x *Clients) {
		x.git = client
	}
}

func WithCommandRunner(runner interfaces.CommandRunner) Option {
	return func(x *Clients) {
		x.runner = runner
	}
}

func WithProxyConfig(client interfaces.ProxyConfig) Option {
	return func(x *Clients) {
		x.proxyConfig = client
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithMetrics(recorder interfaces.Metrics) Option {
	return func(x *Clients) {
		x.metrics = recorder
	}
}

func WithBranchStore(store interfaces.BranchStore) Option {
	return func(x *Clients) {
		x.branchStore = store
	}
}
