package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
)

type UseCase interface {
	ListBranches(ctx context.Context) []*model.BranchStatus
	// RequestPoll marks the next poll as due. It returns false when a request
	// is already pending.
	RequestPoll(ctx context.Context, reason string) bool
}
