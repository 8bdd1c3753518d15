package testhelper

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/repository"
)

// StateRepository is implemented by every state backend.
type StateRepository interface {
	interfaces.SelectionRepository
	interfaces.RunGateRepository
}

// TestAll runs all test cases against a fresh, empty StateRepository.
func TestAll(t *testing.T, repo StateRepository) {
	t.Run("SelectionNotFound", func(t *testing.T) {
		TestSelectionNotFound(t, repo)
	})
	t.Run("RunGateNotFound", func(t *testing.T) {
		TestRunGateNotFound(t, repo)
	})
	t.Run("SelectionRoundTrip", func(t *testing.T) {
		TestSelectionRoundTrip(t, repo)
	})
	t.Run("SelectionReplace", func(t *testing.T) {
		TestSelectionReplace(t, repo)
	})
	t.Run("RunGateMonotonic", func(t *testing.T) {
		TestRunGateMonotonic(t, repo)
	})
	t.Run("StartRunIfDue", func(t *testing.T) {
		TestStartRunIfDue(t, repo)
	})
	t.Run("StartRunIfDueConcurrent", func(t *testing.T) {
		TestStartRunIfDueConcurrent(t, repo)
	})
}

// TestSelectionNotFound must run before anything is saved.
func TestSelectionNotFound(t *testing.T, repo interfaces.SelectionRepository) {
	_, err := repo.GetSelection(context.Background())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

// TestRunGateNotFound must run before any run is recorded.
func TestRunGateNotFound(t *testing.T, repo interfaces.RunGateRepository) {
	_, err := repo.GetLastRun(context.Background())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestSelectionRoundTrip(t *testing.T, repo interfaces.SelectionRepository) {
	ctx := context.Background()

	cases := []struct {
		name      string
		selection model.Selection
	}{
		{name: "empty", selection: model.Selection{}},
		{name: "single", selection: model.NewSelection("alpha")},
		{name: "order is kept", selection: model.NewSelection("gamma", "alpha", "beta")},
		{name: "names needing escape", selection: model.NewSelection("my repo", "a/b", "日本語")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.NoError(t, repo.PutSelection(ctx, tc.selection))
			got := gt.R1(repo.GetSelection(ctx)).NoError(t)
			gt.V(t, got.Strings()).Equal(tc.selection.Strings())
		})
	}
}

func TestSelectionReplace(t *testing.T, repo interfaces.SelectionRepository) {
	ctx := context.Background()

	gt.NoError(t, repo.PutSelection(ctx, model.NewSelection("alpha", "beta", "gamma")))
	gt.NoError(t, repo.PutSelection(ctx, model.NewSelection("delta")))

	got := gt.R1(repo.GetSelection(ctx)).NoError(t)
	gt.V(t, got.Strings()).Equal([]string{"delta"})
}

func TestRunGateMonotonic(t *testing.T, repo interfaces.RunGateRepository) {
	ctx := context.Background()
	base := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	gt.NoError(t, repo.PutLastRun(ctx, base.Add(500*time.Millisecond)))
	got := gt.R1(repo.GetLastRun(ctx)).NoError(t)
	gt.V(t, got.Unix()).Equal(base.Unix())

	t.Run("earlier time does not move the gate back", func(t *testing.T) {
		gt.NoError(t, repo.PutLastRun(ctx, base.Add(-time.Hour)))
		got := gt.R1(repo.GetLastRun(ctx)).NoError(t)
		gt.V(t, got.Unix()).Equal(base.Unix())
	})

	t.Run("later time overwrites", func(t *testing.T) {
		next := base.Add(3600 * time.Second)
		gt.NoError(t, repo.PutLastRun(ctx, next))
		got := gt.R1(repo.GetLastRun(ctx)).NoError(t)
		gt.V(t, got.Unix()).Equal(next.Unix())
	})
}

// TestStartRunIfDue expects no recorded run at or after 2030.
func TestStartRunIfDue(t *testing.T, repo interfaces.RunGateRepository) {
	ctx := context.Background()
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	gt.True(t, gt.R1(repo.StartRunIfDue(ctx, base, time.Hour)).NoError(t))
	got := gt.R1(repo.GetLastRun(ctx)).NoError(t)
	gt.V(t, got.Unix()).Equal(base.Unix())

	t.Run("inside the interval nothing is recorded", func(t *testing.T) {
		gt.False(t, gt.R1(repo.StartRunIfDue(ctx, base.Add(3599*time.Second), time.Hour)).NoError(t))
		got := gt.R1(repo.GetLastRun(ctx)).NoError(t)
		gt.V(t, got.Unix()).Equal(base.Unix())
	})

	t.Run("at the interval boundary the run starts", func(t *testing.T) {
		next := base.Add(3600 * time.Second)
		gt.True(t, gt.R1(repo.StartRunIfDue(ctx, next, time.Hour)).NoError(t))
		got := gt.R1(repo.GetLastRun(ctx)).NoError(t)
		gt.V(t, got.Unix()).Equal(next.Unix())
	})
}

// TestStartRunIfDueConcurrent expects no recorded run at or after 2031.
func TestStartRunIfDueConcurrent(t *testing.T, repo interfaces.RunGateRepository) {
	ctx := context.Background()
	now := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)

	var started atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.StartRunIfDue(ctx, now, time.Hour)
			if err != nil {
				t.Errorf("failed to start run: %v", err)
				return
			}
			if ok {
				started.Add(1)
			}
		}()
	}
	wg.Wait()

	gt.V(t, started.Load()).Equal(int32(1))
}
