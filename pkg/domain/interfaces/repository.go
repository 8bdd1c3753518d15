package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/octosync/pkg/domain/model"
)

//go:generate moq -out ../mock/repository.go -pkg mock . SelectionRepository RunGateRepository

// SelectionRepository persists the selection as a single document.
type SelectionRepository interface {
	// GetSelection returns repository.ErrNotFound when no document has been saved yet.
	GetSelection(ctx context.Context) (model.Selection, error)
	// PutSelection replaces the whole document.
	PutSelection(ctx context.Context, selection model.Selection) error
}

// RunGateRepository persists the start time of the last automatic run.
type RunGateRepository interface {
	// GetLastRun returns repository.ErrNotFound when no automatic run has been recorded.
	GetLastRun(ctx context.Context) (time.Time, error)
	PutLastRun(ctx context.Context, at time.Time) error
	// StartRunIfDue records now as the last run and returns true when a run is due at now.
	// The check and the record happen in one critical section shared by every process using
	// the same store. An absent or undecodable record counts as due.
	StartRunIfDue(ctx context.Context, now time.Time, interval time.Duration) (bool, error)
}
