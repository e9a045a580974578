package model

import (
	"sort"

	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

// RemoteHead is a branch as reported by the remote.
type RemoteHead struct {
	Name   string
	Commit types.CommitSHA
}

// Snapshot is the set of remote branches keyed by normalized branch ID.
type Snapshot map[types.BranchID]RemoteHead

// NewSnapshot builds a snapshot from remote heads. When several remote names
// normalize to the same ID the lexically first name wins and the others are
// returned as collisions.
func NewSnapshot(heads []RemoteHead) (Snapshot, []RemoteHead) {
	sorted := make([]RemoteHead, len(heads))
	copy(sorted, heads)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	snapshot := make(Snapshot, len(sorted))
	var collisions []RemoteHead
	for _, head := range sorted {
		id := types.NewBranchID(head.Name)
		if id == "" {
			collisions = append(collisions, head)
			continue
		}
		if _, exists := snapshot[id]; exists {
			collisions = append(collisions, head)
			continue
		}
		snapshot[id] = head
	}

	return snapshot, collisions
}

// Equal reports whether both snapshots have the same branches at the same commits.
func (x Snapshot) Equal(other Snapshot) bool {
	if len(x) != len(other) {
		return false
	}
	for id, head := range x {
		o, ok := other[id]
		if !ok || o != head {
			return false
		}
	}
	return true
}

// IDs returns the branch IDs in sorted order.
func (x Snapshot) IDs() []types.BranchID {
	ids := make([]types.BranchID, 0, len(x))
	for id := range x {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
