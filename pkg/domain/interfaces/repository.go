package interfaces

import (
	"context"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
)

//go:generate moq -out ../mock/repository.go -pkg mock . BranchStore

// BranchStore persists the branch registry. Save replaces the stored set
// with records; records missing from it are deleted.
type BranchStore interface {
	Load(ctx context.Context) ([]*model.BranchRecord, error)
	Save(ctx context.Context, records []*model.BranchRecord) error
}
