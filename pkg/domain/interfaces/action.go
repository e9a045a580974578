package interfaces

import (
	"context"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
)

//go:generate moq -out ../mock/action.go -pkg mock . TransitionAction RemoteWatcher

// TransitionAction performs the side effect of one edge. It receives a copy of
// the record and reports the achieved state. It must be safe to retry after a
// failure.
type TransitionAction interface {
	Apply(ctx context.Context, record model.BranchRecord) (*model.TransitionResult, error)
}

// RemoteWatcher lists the branches of the tracked remote repository.
type RemoteWatcher interface {
	Snapshot(ctx context.Context) (model.Snapshot, error)
}
