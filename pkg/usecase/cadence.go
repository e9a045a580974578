package usecase

import (
	"time"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
)

const (
	DefaultActiveInterval = 5 * time.Second
	DefaultIdleInterval   = 60 * time.Second
	DefaultActiveWindow   = 60 * time.Second
)

// Cadence chooses the delay until the next poll from recent activity.
type Cadence struct {
	Active time.Duration
	Idle   time.Duration
	Window time.Duration
}

func NewCadence() *Cadence {
	return &Cadence{
		Active: DefaultActiveInterval,
		Idle:   DefaultIdleInterval,
		Window: DefaultActiveWindow,
	}
}

// NextPollDelay returns the active interval when any record transitioned
// within the active window before now, and the idle interval otherwise.
func (x *Cadence) NextPollDelay(records []model.BranchRecord, now time.Time) time.Duration {
	for _, rec := range records {
		if rec.LastTransitionAt.IsZero() {
			continue
		}
		if now.Sub(rec.LastTransitionAt) <= x.Window {
			return x.Active
		}
	}
	return x.Idle
}
