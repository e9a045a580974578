package testhelper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/repository"
)

// TestAll runs all test cases for BranchStore. newStore must return an
// empty store on every call.
func TestAll(t *testing.T, newStore func() interfaces.BranchStore) {
	t.Run("EmptyStore", func(t *testing.T) {
		TestEmptyStore(t, newStore())
	})
	t.Run("SaveAndLoad", func(t *testing.T) {
		TestSaveAndLoad(t, newStore())
	})
	t.Run("SaveReplacesRecords", func(t *testing.T) {
		TestSaveReplacesRecords(t, newStore())
	})
	t.Run("SaveDoesNotAlias", func(t *testing.T) {
		TestSaveDoesNotAlias(t, newStore())
	})
	t.Run("InvalidRecords", func(t *testing.T) {
		TestInvalidRecords(t, newStore())
	})
}

func TestEmptyStore(t *testing.T, store interfaces.BranchStore) {
	records := gt.R1(store.Load(context.Background())).NoError(t)
	gt.Equal(t, len(records), 0)
}

func TestSaveAndLoad(t *testing.T, store interfaces.BranchStore) {
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	want := []*model.BranchRecord{
		{
			ID:                "main",
			Name:              "main",
			State:             types.StateDeployed,
			TerminalState:     types.StateDeployed,
			Fingerprint:       "aaaa",
			RemoteFingerprint: "aaaa",
			LastTransitionAt:  at,
		},
		{
			ID:                "feature-login",
			Name:              "feature/login",
			State:             types.StateCloned,
			TerminalState:     types.StateDeployed,
			Fingerprint:       "bbbb",
			RemoteFingerprint: "cccc",
			Failures:          2,
			LastError:         "build failed",
		},
	}
	gt.NoError(t, store.Save(ctx, want))

	got := gt.R1(store.Load(ctx)).NoError(t)
	gt.Equal(t, len(got), 2)

	byID := map[types.BranchID]*model.BranchRecord{}
	for _, rec := range got {
		byID[rec.ID] = rec
	}

	for _, w := range want {
		g, ok := byID[w.ID]
		gt.True(t, ok)
		gt.Equal(t, g.Name, w.Name)
		gt.V(t, g.State).Equal(w.State)
		gt.V(t, g.TerminalState).Equal(w.TerminalState)
		gt.V(t, g.Fingerprint).Equal(w.Fingerprint)
		gt.V(t, g.RemoteFingerprint).Equal(w.RemoteFingerprint)
		gt.True(t, g.LastTransitionAt.Equal(w.LastTransitionAt))
		gt.Equal(t, g.Failures, w.Failures)
		gt.Equal(t, g.LastError, w.LastError)
	}
}

func TestSaveReplacesRecords(t *testing.T, store interfaces.BranchStore) {
	ctx := context.Background()

	gt.NoError(t, store.Save(ctx, []*model.BranchRecord{
		{ID: "main", Name: "main", State: types.StateDeployed, TerminalState: types.StateDeployed},
		{ID: "old", Name: "old", State: types.StateRemoved, TerminalState: types.StateRemoved},
	}))
	gt.NoError(t, store.Save(ctx, []*model.BranchRecord{
		{ID: "main", Name: "main", State: types.StateOutOfDate, TerminalState: types.StateDeployed},
	}))

	got := gt.R1(store.Load(ctx)).NoError(t)
	gt.Equal(t, len(got), 1)
	gt.V(t, got[0].ID).Equal(types.BranchID("main"))
	gt.V(t, got[0].State).Equal(types.StateOutOfDate)
}

func TestSaveDoesNotAlias(t *testing.T, store interfaces.BranchStore) {
	ctx := context.Background()
	rec := &model.BranchRecord{ID: "main", Name: "main", State: types.StateBuilt, TerminalState: types.StateDeployed}
	gt.NoError(t, store.Save(ctx, []*model.BranchRecord{rec}))

	rec.State = types.StateDeployed

	got := gt.R1(store.Load(ctx)).NoError(t)
	gt.V(t, got[0].State).Equal(types.StateBuilt)
}

func TestInvalidRecords(t *testing.T, store interfaces.BranchStore) {
	ctx := context.Background()

	err := store.Save(ctx, []*model.BranchRecord{{ID: ""}})
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))

	err = store.Save(ctx, []*model.BranchRecord{{ID: "main"}, {ID: "main"}})
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))

	err = store.Save(ctx, []*model.BranchRecord{nil})
	gt.True(t, errors.Is(err, repository.ErrInvalidInput))
}
