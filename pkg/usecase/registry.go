package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/graph"
	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

// Registry is the authoritative set of branch records. Every mutation of an
// existing record happens inside its exclusive Section; reads take a short
// lock and never wait for a running action.
type Registry struct {
	mu      sync.RWMutex
	entries map[types.BranchID]*entry
}

type entry struct {
	// exclusive is held for the whole Section, including action execution.
	exclusive sync.Mutex

	data    sync.RWMutex
	record  model.BranchRecord
	deleted bool
}

func (x *entry) snapshot() model.BranchRecord {
	x.data.RLock()
	defer x.data.RUnlock()
	return x.record
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[types.BranchID]*entry)}
}

// Load replaces the registry contents with the records of store. It fails
// with types.ErrRegistryCorrupt when a record has a state unknown to g or
// ids are duplicated.
func (x *Registry) Load(ctx context.Context, store interfaces.BranchStore, g *graph.Graph) error {
	records, err := store.Load(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load branch registry")
	}

	entries := make(map[types.BranchID]*entry, len(records))
	for _, rec := range records {
		if rec == nil || rec.ID == "" {
			return goerr.Wrap(types.ErrRegistryCorrupt, "record without ID")
		}
		if _, ok := entries[rec.ID]; ok {
			return goerr.Wrap(types.ErrRegistryCorrupt, "duplicated branch ID", goerr.V("id", rec.ID))
		}
		if !g.HasState(rec.State) || !g.HasState(rec.TerminalState) {
			return goerr.Wrap(types.ErrRegistryCorrupt, "record has unknown state",
				goerr.V("id", rec.ID),
				goerr.V("state", rec.State),
				goerr.V("terminal_state", rec.TerminalState),
			)
		}
		entries[rec.ID] = &entry{record: *rec}
	}

	x.mu.Lock()
	x.entries = entries
	x.mu.Unlock()
	return nil
}

// Save writes all records to store.
func (x *Registry) Save(ctx context.Context, store interfaces.BranchStore) error {
	list := x.List()
	records := make([]*model.BranchRecord, len(list))
	for i := range list {
		records[i] = &list[i]
	}
	if err := store.Save(ctx, records); err != nil {
		return goerr.Wrap(err, "failed to save branch registry")
	}
	return nil
}

// List returns copies of all records sorted by ID.
func (x *Registry) List() []model.BranchRecord {
	x.mu.RLock()
	defer x.mu.RUnlock()

	records := make([]model.BranchRecord, 0, len(x.entries))
	for _, e := range x.entries {
		records = append(records, e.snapshot())
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

func (x *Registry) IDs() []types.BranchID {
	x.mu.RLock()
	defer x.mu.RUnlock()

	ids := make([]types.BranchID, 0, len(x.entries))
	for id := range x.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (x *Registry) Get(id types.BranchID) (model.BranchRecord, bool) {
	x.mu.RLock()
	e, ok := x.entries[id]
	x.mu.RUnlock()
	if !ok {
		return model.BranchRecord{}, false
	}
	return e.snapshot(), true
}

// Insert adds rec unless a record with the same ID exists. It reports
// whether rec was added.
func (x *Registry) Insert(rec model.BranchRecord) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if _, ok := x.entries[rec.ID]; ok {
		return false
	}
	x.entries[rec.ID] = &entry{record: rec}
	return true
}

// Section is exclusive access to one record. At most one Section per ID is
// open at any time.
type Section struct {
	entry *entry
}

// Acquire blocks until the record's exclusive section is free. It returns
// false when no record with id exists.
func (x *Registry) Acquire(id types.BranchID) (*Section, bool) {
	x.mu.RLock()
	e, ok := x.entries[id]
	x.mu.RUnlock()
	if !ok {
		return nil, false
	}

	e.exclusive.Lock()
	if e.deleted {
		e.exclusive.Unlock()
		return nil, false
	}
	return &Section{entry: e}, true
}

func (x *Section) Record() model.BranchRecord {
	return x.entry.snapshot()
}

// Commit replaces the record. The ID cannot be changed.
func (x *Section) Commit(rec model.BranchRecord) {
	x.entry.data.Lock()
	defer x.entry.data.Unlock()
	rec.ID = x.entry.record.ID
	x.entry.record = rec
}

func (x *Section) Release() {
	x.entry.exclusive.Unlock()
}

// Purge deletes records whose state is removed and returns their IDs.
func (x *Registry) Purge() []types.BranchID {
	var purged []types.BranchID
	for _, id := range x.IDs() {
		sec, ok := x.Acquire(id)
		if !ok {
			continue
		}
		rec := sec.Record()
		if rec.State == types.StateRemoved {
			x.mu.Lock()
			delete(x.entries, id)
			x.mu.Unlock()
			sec.entry.deleted = true
			purged = append(purged, id)
		}
		sec.Release()
	}
	return purged
}
