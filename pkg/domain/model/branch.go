package model

import (
	"time"

	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

// BranchRecord is the registry entry of a tracked branch. ID is immutable;
// State is changed only by the executor (successful edge) or the reconciler.
type BranchRecord struct {
	ID                types.BranchID  `json:"id" firestore:"id"`
	Name              string          `json:"name" firestore:"name"`
	State             types.State     `json:"state" firestore:"state"`
	TerminalState     types.State     `json:"terminal_state" firestore:"terminal_state"`
	Fingerprint       types.CommitSHA `json:"fingerprint" firestore:"fingerprint"`
	RemoteFingerprint types.CommitSHA `json:"remote_fingerprint" firestore:"remote_fingerprint"`
	LastTransitionAt  time.Time       `json:"last_transition_at" firestore:"last_transition_at"`
	Failures          int             `json:"failures" firestore:"failures"`
	LastError         string          `json:"last_error,omitempty" firestore:"last_error"`
}

// NewBranchRecord creates a record for a branch observed on the remote for the
// first time.
func NewBranchRecord(head RemoteHead) *BranchRecord {
	return &BranchRecord{
		ID:                types.NewBranchID(head.Name),
		Name:              head.Name,
		State:             types.StateUncloned,
		TerminalState:     types.StateDeployed,
		Fingerprint:       head.Commit,
		RemoteFingerprint: head.Commit,
	}
}

// IsTerminal reports whether the record needs no further autonomous action.
func (x *BranchRecord) IsTerminal() bool {
	return x.State == x.TerminalState
}

// IsStuck reports whether consecutive failures reached maxFailures. A zero
// maxFailures disables the limit.
func (x *BranchRecord) IsStuck(maxFailures int) bool {
	return maxFailures > 0 && x.Failures >= maxFailures
}

// CompleteDomainName returns the host name under which branch id is published
// for domain. The production branch is published on the bare domain.
func CompleteDomainName(id types.BranchID, domain string, productionBranch types.BranchID) string {
	if id == productionBranch {
		return domain
	}
	return id.String() + "." + domain
}

// DomainBindings derives all complete domain names of a branch.
func DomainBindings(id types.BranchID, domains []string, productionBranch types.BranchID) []string {
	bindings := make([]string, 0, len(domains))
	for _, domain := range domains {
		bindings = append(bindings, CompleteDomainName(id, domain, productionBranch))
	}
	return bindings
}
