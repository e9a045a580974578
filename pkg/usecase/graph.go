package usecase

import (
	"github.com/m-mizutani/branchsite/pkg/domain/graph"
	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

// Actions are the side effects of the lifecycle edges.
type Actions struct {
	Clone  interfaces.TransitionAction
	Pull   interfaces.TransitionAction
	Build  interfaces.TransitionAction
	Deploy interfaces.TransitionAction
	Remove interfaces.TransitionAction
}

// BuildGraph declares the branch lifecycle with the given actions.
func BuildGraph(actions Actions) (*graph.Graph, error) {
	g := graph.New()
	if err := g.AddStates(types.AllStates()...); err != nil {
		return nil, err
	}

	edges := []struct {
		name   types.EdgeName
		from   types.State
		to     types.State
		action interfaces.TransitionAction
	}{
		{types.EdgeClone, types.StateUncloned, types.StateCloned, actions.Clone},
		{types.EdgePull, types.StateOutOfDate, types.StateCloned, actions.Pull},
		{types.EdgeBuild, types.StateCloned, types.StateBuilt, actions.Build},
		{types.EdgeDeploy, types.StateBuilt, types.StateDeployed, actions.Deploy},
		{types.EdgeRemove, types.StateOrphaned, types.StateRemoved, actions.Remove},
	}
	for _, e := range edges {
		if err := g.AddEdge(e.name, []types.State{e.from}, []types.State{e.to}, e.action); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// NewGraph returns the lifecycle graph bound to the actions of uc. The graph
// is static, so a construction error is a programming error.
func NewGraph(uc *UseCase) *graph.Graph {
	g, err := BuildGraph(Actions{
		Clone:  graph.ActionFunc(uc.cloneBranch),
		Pull:   graph.ActionFunc(uc.pullBranch),
		Build:  graph.ActionFunc(uc.buildBranch),
		Deploy: graph.ActionFunc(uc.deployBranch),
		Remove: graph.ActionFunc(uc.removeBranch),
	})
	if err != nil {
		panic(err)
	}
	return g
}
