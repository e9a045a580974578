package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/usecase"
)

func TestCadence(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cadence := usecase.NewCadence()

	testCases := []struct {
		name     string
		records  []model.BranchRecord
		expected time.Duration
	}{
		{
			name:     "no records",
			expected: usecase.DefaultIdleInterval,
		},
		{
			name:     "never transitioned",
			records:  []model.BranchRecord{{ID: "dev"}},
			expected: usecase.DefaultIdleInterval,
		},
		{
			name: "recent transition",
			records: []model.BranchRecord{
				{ID: "main", LastTransitionAt: now.Add(-time.Hour)},
				{ID: "dev", LastTransitionAt: now.Add(-10 * time.Second)},
			},
			expected: usecase.DefaultActiveInterval,
		},
		{
			name:     "transition at window edge",
			records:  []model.BranchRecord{{ID: "dev", LastTransitionAt: now.Add(-usecase.DefaultActiveWindow)}},
			expected: usecase.DefaultActiveInterval,
		},
		{
			name:     "old transition",
			records:  []model.BranchRecord{{ID: "dev", LastTransitionAt: now.Add(-2 * time.Minute)}},
			expected: usecase.DefaultIdleInterval,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.V(t, cadence.NextPollDelay(tc.records, now)).Equal(tc.expected)
		})
	}
}
