package model

import "github.com/m-mizutani/branchsite/pkg/domain/types"

// ReconcileReport summarizes the registry changes made for one remote snapshot.
type ReconcileReport struct {
	RemoteChanged bool
	Added         []types.BranchID
	OutOfDate     []types.BranchID
	Revived       []types.BranchID
	Orphaned      []types.BranchID
}

// Changed reports whether any record was touched.
func (x *ReconcileReport) Changed() bool {
	return len(x.Added)+len(x.OutOfDate)+len(x.Revived)+len(x.Orphaned) > 0
}

// CycleReport summarizes one executor pass.
type CycleReport struct {
	ID        string
	Events    []TransitionEvent
	Converged []types.BranchID
	Stalled   []types.BranchID
	Stuck     []types.BranchID
	HopLimit  []types.BranchID
	Failed    []types.BranchID
	Purged    []types.BranchID
}

// Transitions returns the number of successfully applied edges.
func (x *CycleReport) Transitions() int {
	n := 0
	for _, ev := range x.Events {
		if ev.Outcome == OutcomeSuccess {
			n++
		}
	}
	return n
}

// PollReport is the result of one poll: reconcile followed by an executor cycle.
type PollReport struct {
	Reconcile *ReconcileReport
	Cycle     *CycleReport
}
