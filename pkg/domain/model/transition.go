package model

import (
	"time"

	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

// TransitionResult is what a transition action reports on success.
// Fingerprint is empty when the action does not change the processed commit.
type TransitionResult struct {
	State       types.State
	Fingerprint types.CommitSHA
}

type TransitionOutcome string

const (
	OutcomeSuccess TransitionOutcome = "success"
	OutcomeFailure TransitionOutcome = "failure"
)

// TransitionEvent records one fired edge. Events are logged and exported to
// the transition history table when configured.
type TransitionEvent struct {
	CycleID     string            `json:"cycle_id" bigquery:"cycle_id"`
	BranchID    string            `json:"branch_id" bigquery:"branch_id"`
	Edge        string            `json:"edge" bigquery:"edge"`
	From        string            `json:"from" bigquery:"from"`
	To          string            `json:"to" bigquery:"to"`
	Outcome     TransitionOutcome `json:"outcome" bigquery:"outcome"`
	Fingerprint string            `json:"fingerprint" bigquery:"fingerprint"`
	Error       string            `json:"error" bigquery:"error"`
	StartedAt   time.Time         `json:"started_at" bigquery:"started_at"`
	Duration    time.Duration     `json:"duration" bigquery:"duration"`
}

// TransitionEventRawRecord is the row written to BigQuery. The Storage Write
// API takes timestamps as microseconds since epoch.
type TransitionEventRawRecord struct {
	TransitionEvent
	StartedAt int64 `json:"started_at"`
}

func (x *TransitionEvent) RawRecord() *TransitionEventRawRecord {
	return &TransitionEventRawRecord{
		TransitionEvent: *x,
		StartedAt:       x.StartedAt.UnixMicro(),
	}
}
