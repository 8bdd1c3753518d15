package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/repository"
	"github.com/m-mizutani/octosync/pkg/utils/safe"
)

const (
	selectionFile = "selection.json"
	lastRunFile   = "last_run"
	lockFile      = ".lock"

	lockRetryDelay = 20 * time.Millisecond
)

// Repository keeps the selection as a JSON list and the run gate as unix seconds in plain
// files under one directory. Every access holds a flock on the directory's lock file, and
// writes replace the target through a temp file and rename.
type Repository struct {
	dir  string
	lock *flock.Flock

	// mu serializes goroutines sharing lock. A held Flock reports success to every caller in
	// the process, and its release drops the lock for all of them.
	mu sync.Mutex
}

var (
	_ interfaces.SelectionRepository = (*Repository)(nil)
	_ interfaces.RunGateRepository   = (*Repository)(nil)
)

func New(dir string) (*Repository, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, goerr.Wrap(repository.ErrInvalidInput, "state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, goerr.Wrap(err, "failed to create state directory", goerr.V("dir", dir))
	}

	return &Repository{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockFile)),
	}, nil
}

func (r *Repository) Dir() string {
	return r.dir
}

func (r *Repository) GetSelection(ctx context.Context) (model.Selection, error) {
	var raw []byte
	err := r.withLock(ctx, false, func() error {
		var err error
		raw, err = r.read(selectionFile)
		return err
	})
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, goerr.Wrap(repository.ErrInvalidData, "failed to parse selection",
			goerr.V("path", r.path(selectionFile)),
			goerr.V("cause", err.Error()),
		)
	}

	return model.NewSelection(names...), nil
}

func (r *Repository) PutSelection(ctx context.Context, selection model.Selection) error {
	raw, err := json.MarshalIndent(selection.Strings(), "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal selection")
	}

	return r.withLock(ctx, true, func() error {
		return r.writeAtomic(selectionFile, raw)
	})
}

func (r *Repository) GetLastRun(ctx context.Context) (time.Time, error) {
	var lastRun time.Time
	err := r.withLock(ctx, false, func() error {
		var err error
		lastRun, err = r.readLastRun()
		return err
	})
	return lastRun, err
}

// PutLastRun records at as unix seconds. An earlier time never replaces a later one.
func (r *Repository) PutLastRun(ctx context.Context, at time.Time) error {
	return r.withLock(ctx, true, func() error {
		current, err := r.readLastRun()
		switch {
		case err == nil:
			if current.Unix() > at.Unix() {
				return nil
			}
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidData):
			// overwritten below
		default:
			return err
		}

		return r.writeAtomic(lastRunFile, []byte(strconv.FormatInt(at.Unix(), 10)))
	})
}

// StartRunIfDue holds the exclusive directory lock across the read and the write, so
// processes sharing the state directory never both start a run for the same window.
func (r *Repository) StartRunIfDue(ctx context.Context, now time.Time, interval time.Duration) (bool, error) {
	var started bool
	err := r.withLock(ctx, true, func() error {
		var last *time.Time
		current, err := r.readLastRun()
		switch {
		case err == nil:
			last = &current
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidData):
			// no usable record, the run is due
		default:
			return err
		}

		if !model.IsRunDue(last, now, interval) {
			return nil
		}
		if err := r.writeAtomic(lastRunFile, []byte(strconv.FormatInt(now.Unix(), 10))); err != nil {
			return err
		}
		started = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return started, nil
}

func (r *Repository) readLastRun() (time.Time, error) {
	raw, err := r.read(lastRunFile)
	if err != nil {
		return time.Time{}, err
	}

	sec, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return time.Time{}, goerr.Wrap(repository.ErrInvalidData, "failed to parse last run timestamp",
			goerr.V("path", r.path(lastRunFile)),
			goerr.V("raw", string(raw)),
		)
	}
	return time.Unix(sec, 0).UTC(), nil
}

func (r *Repository) path(name string) string {
	return filepath.Join(r.dir, name)
}

func (r *Repository) read(name string) ([]byte, error) {
	raw, err := os.ReadFile(r.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(repository.ErrNotFound, "state file does not exist", goerr.V("path", r.path(name)))
		}
		return nil, goerr.Wrap(err, "failed to read state file", goerr.V("path", r.path(name)))
	}
	return raw, nil
}

func (r *Repository) writeAtomic(name string, data []byte) error {
	path := r.path(name)

	tmp, err := os.CreateTemp(r.dir, name+".*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("dir", r.dir))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		safe.Close(tmp)
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to write temp file", goerr.V("path", tmpName))
	}
	if err := tmp.Sync(); err != nil {
		safe.Close(tmp)
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to sync temp file", goerr.V("path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to close temp file", goerr.V("path", tmpName))
	}
	if err := os.Rename(tmpName, path); err != nil {
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to replace state file", goerr.V("path", path))
	}

	return nil
}

// withLock runs fn while holding the directory lock. The lock is released on every path.
func (r *Repository) withLock(ctx context.Context, exclusive bool, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var locked bool
	var err error
	if exclusive {
		locked, err = r.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = r.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return goerr.Wrap(err, "failed to acquire state lock", goerr.V("path", r.lock.Path()))
	}
	if !locked {
		return goerr.New("state lock was not acquired", goerr.V("path", r.lock.Path()))
	}
	defer safe.Unlock(r.lock)

	return fn()
}
