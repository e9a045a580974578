// Package graph holds the branch lifecycle state machine: a set of states and
// an ordered list of named edges with their side-effecting actions.
package graph

import (
	"context"
	"errors"
	"slices"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

// ActionFunc adapts a plain function to interfaces.TransitionAction.
type ActionFunc func(ctx context.Context, record model.BranchRecord) (*model.TransitionResult, error)

func (f ActionFunc) Apply(ctx context.Context, record model.BranchRecord) (*model.TransitionResult, error) {
	return f(ctx, record)
}

type Edge struct {
	Name         types.EdgeName
	Sources      []types.State
	Destinations []types.State
	Action       interfaces.TransitionAction
}

// From reports whether state is one of the edge's source states.
func (x *Edge) From(state types.State) bool {
	return slices.Contains(x.Sources, state)
}

// To reports whether state is one of the edge's destination states.
func (x *Edge) To(state types.State) bool {
	return slices.Contains(x.Destinations, state)
}

// Graph is built once at startup and only read afterwards, so it is safe for
// concurrent use once construction is done.
type Graph struct {
	states []types.State
	edges  []*Edge
}

func New() *Graph {
	return &Graph{}
}

// AddStates declares states. Declaring a state twice is not an error.
func (x *Graph) AddStates(states ...types.State) error {
	for _, s := range states {
		if s == "" {
			return goerr.Wrap(types.ErrInvalidOption, "state name is empty")
		}
		if !x.HasState(s) {
			x.states = append(x.states, s)
		}
	}
	return nil
}

// AddEdge appends an edge. Edges are evaluated in registration order.
func (x *Graph) AddEdge(name types.EdgeName, sources, destinations []types.State, action interfaces.TransitionAction) error {
	if name == "" {
		return goerr.Wrap(types.ErrInvalidOption, "edge name is empty")
	}
	if _, ok := x.Edge(name); ok {
		return goerr.Wrap(types.ErrInvalidOption, "duplicated edge name", goerr.V("edge", name))
	}
	if len(sources) == 0 || len(destinations) == 0 {
		return goerr.Wrap(types.ErrInvalidOption, "edge requires source and destination states", goerr.V("edge", name))
	}
	if action == nil {
		return goerr.Wrap(types.ErrInvalidOption, "edge action is nil", goerr.V("edge", name))
	}

	for _, s := range slices.Concat(sources, destinations) {
		if !x.HasState(s) {
			return goerr.Wrap(types.ErrUnknownState, "edge refers undeclared state",
				goerr.V("edge", name),
				goerr.V("state", s),
			)
		}
	}

	x.edges = append(x.edges, &Edge{
		Name:         name,
		Sources:      slices.Clone(sources),
		Destinations: slices.Clone(destinations),
		Action:       action,
	})
	return nil
}

func (x *Graph) HasState(state types.State) bool {
	return slices.Contains(x.states, state)
}

// States returns declared states in declaration order.
func (x *Graph) States() []types.State {
	return slices.Clone(x.states)
}

// Edges returns edges in registration order.
func (x *Graph) Edges() []*Edge {
	return slices.Clone(x.edges)
}

func (x *Graph) Edge(name types.EdgeName) (*Edge, bool) {
	for _, e := range x.edges {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Eligible returns the first edge whose sources contain state, or nil.
func (x *Graph) Eligible(state types.State) *Edge {
	for _, e := range x.edges {
		if e.From(state) {
			return e
		}
	}
	return nil
}

// Fire runs the action of edge for record. The action is not invoked when the
// record state is not a source of the edge. A reported state that is not a
// destination of the edge is treated as an action failure.
func (x *Graph) Fire(ctx context.Context, name types.EdgeName, record model.BranchRecord) (*model.TransitionResult, error) {
	edge, ok := x.Edge(name)
	if !ok {
		return nil, goerr.Wrap(types.ErrInvalidOption, "unknown edge", goerr.V("edge", name))
	}

	if !edge.From(record.State) {
		return nil, goerr.Wrap(types.ErrPrecondition, "record state is not a source of the edge",
			goerr.V("edge", name),
			goerr.V("branch", record.ID),
			goerr.V("state", record.State),
		)
	}

	result, err := edge.Action.Apply(ctx, record)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(types.ErrActionFailed, err), "transition action failed",
			goerr.V("edge", name),
			goerr.V("branch", record.ID),
		)
	}
	if result == nil || !edge.To(result.State) {
		var achieved types.State
		if result != nil {
			achieved = result.State
		}
		return nil, goerr.Wrap(types.ErrActionFailed, "action reported a state outside edge destinations",
			goerr.V("edge", name),
			goerr.V("branch", record.ID),
			goerr.V("achieved", achieved),
		)
	}

	return result, nil
}
