package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

const namespace = "branchsite"

// Recorder exports executor and poll loop activity as Prometheus metrics.
type Recorder struct {
	registry *prom.Registry

	transitions        *prom.CounterVec
	transitionDuration *prom.HistogramVec
	polls              *prom.CounterVec
	pollDuration       prom.Histogram
	stalled            prom.Counter
	stuck              prom.Gauge
	branches           *prom.GaugeVec
}

var _ interfaces.Metrics = (*Recorder)(nil)

// New registers all metrics to a dedicated registry including Go runtime and
// process collectors.
func New() *Recorder {
	reg := prom.NewRegistry()
	x := &Recorder{
		registry: reg,
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Fired edges by edge name and outcome",
		}, []string{"edge", "outcome"}),
		transitionDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "transition_duration_seconds",
			Help:      "Duration of transition actions",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"edge"}),
		polls: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Poll cycles by result",
		}, []string{"result"}),
		pollDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Duration of a whole poll cycle",
			Buckets:   prom.DefBuckets,
		}),
		stalled: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stalled_total",
			Help:      "Non-terminal records without an eligible edge",
		}),
		stuck: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "stuck_branches",
			Help:      "Records skipped because of repeated failures",
		}),
		branches: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "branches",
			Help:      "Registry records by state",
		}, []string{"state"}),
	}

	reg.MustRegister(
		x.transitions,
		x.transitionDuration,
		x.polls,
		x.pollDuration,
		x.stalled,
		x.stuck,
		x.branches,
		promcollect.NewGoCollector(),
		promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}),
	)
	return x
}

// Handler serves the registry in the Prometheus exposition format.
func (x *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(x.registry, promhttp.HandlerOpts{Registry: x.registry})
}

func (x *Recorder) ObserveTransition(edge types.EdgeName, outcome model.TransitionOutcome, duration time.Duration) {
	x.transitions.WithLabelValues(edge.String(), string(outcome)).Inc()
	x.transitionDuration.WithLabelValues(edge.String()).Observe(duration.Seconds())
}

func (x *Recorder) ObservePoll(duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	x.polls.WithLabelValues(result).Inc()
	x.pollDuration.Observe(duration.Seconds())
}

func (x *Recorder) IncStalled(id types.BranchID) {
	x.stalled.Inc()
}

func (x *Recorder) SetStuck(n int) {
	x.stuck.Set(float64(n))
}

// SetBranches sets the per-state gauge. States missing from counts are set
// to zero.
func (x *Recorder) SetBranches(counts map[types.State]int) {
	for _, state := range types.AllStates() {
		x.branches.WithLabelValues(state.String()).Set(float64(counts[state]))
	}
}

// Noop discards everything. It is used when no metrics endpoint is served.
type Noop struct{}

var _ interfaces.Metrics = Noop{}

func (Noop) ObserveTransition(types.EdgeName, model.TransitionOutcome, time.Duration) {}
func (Noop) ObservePoll(time.Duration, error)                                         {}
func (Noop) IncStalled(types.BranchID)                                                {}
func (Noop) SetStuck(int)                                                             {}
func (Noop) SetBranches(map[types.State]int)                                          {}
