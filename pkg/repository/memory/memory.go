package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/repository"
)

// Repository keeps the selection and the run gate in process memory.
type Repository struct {
	mu        sync.RWMutex
	selection model.Selection
	saved     bool
	lastRun   *time.Time
}

var (
	_ interfaces.SelectionRepository = (*Repository)(nil)
	_ interfaces.RunGateRepository   = (*Repository)(nil)
)

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{}
}

func (r *Repository) GetSelection(ctx context.Context) (model.Selection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.saved {
		return nil, goerr.Wrap(repository.ErrNotFound, "selection is not saved")
	}
	return copySelection(r.selection), nil
}

func (r *Repository) PutSelection(ctx context.Context, selection model.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selection = copySelection(selection)
	r.saved = true
	return nil
}

func (r *Repository) GetLastRun(ctx context.Context) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.lastRun == nil {
		return time.Time{}, goerr.Wrap(repository.ErrNotFound, "no automatic run recorded")
	}
	return *r.lastRun, nil
}

// PutLastRun records at, truncated to the second. An earlier time never replaces a later one.
func (r *Repository) PutLastRun(ctx context.Context, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at = time.Unix(at.Unix(), 0).UTC()
	if r.lastRun != nil && r.lastRun.After(at) {
		return nil
	}
	r.lastRun = &at
	return nil
}

// StartRunIfDue checks and records the run start under the write lock.
func (r *Repository) StartRunIfDue(ctx context.Context, now time.Time, interval time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !model.IsRunDue(r.lastRun, now, interval) {
		return false, nil
	}
	at := time.Unix(now.Unix(), 0).UTC()
	r.lastRun = &at
	return true, nil
}

func copySelection(src model.Selection) model.Selection {
	dst := make(model.Selection, len(src))
	copy(dst, src)
	return dst
}
