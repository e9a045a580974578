package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/repository"
)

type branchStore struct {
	mu      sync.RWMutex
	records map[string]model.BranchRecord
}

// New creates a new in-memory branch store
func New() interfaces.BranchStore {
	return &branchStore{
		records: make(map[string]model.BranchRecord),
	}
}

func (r *branchStore) Load(ctx context.Context) ([]*model.BranchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*model.BranchRecord, 0, len(r.records))
	for _, rec := range r.records {
		copied := rec
		records = append(records, &copied)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	return records, nil
}

func (r *branchStore) Save(ctx context.Context, records []*model.BranchRecord) error {
	if err := repository.ValidateRecords(records); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[string]model.BranchRecord, len(records))
	for _, rec := range records {
		r.records[rec.ID.String()] = *rec
	}

	return nil
}
