package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/repository"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DefaultCollection = "octosync"

	docSelection = "selection"
	docRunGate   = "run_gate"
)

type selectionDoc struct {
	Repositories []string  `firestore:"repositories"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

type runGateDoc struct {
	LastRun int64 `firestore:"last_run"`
}

// Repository stores the selection and the run gate as two documents of one collection.
type Repository struct {
	client     *firestore.Client
	collection string
}

var (
	_ interfaces.SelectionRepository = (*Repository)(nil)
	_ interfaces.RunGateRepository   = (*Repository)(nil)
)

type Option func(*Repository)

// WithCollection changes the collection holding the state documents.
func WithCollection(name string) Option {
	return func(r *Repository) {
		r.collection = name
	}
}

// New creates a new Firestore-based repository
func New(ctx context.Context, projectID, databaseID string, options ...Option) (*Repository, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	repo := &Repository{
		client:     client,
		collection: DefaultCollection,
	}
	for _, opt := range options {
		opt(repo)
	}
	if repo.collection == "" {
		_ = client.Close()
		return nil, goerr.Wrap(repository.ErrInvalidInput, "collection name is empty")
	}

	return repo, nil
}

func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(r.collection).Doc(id)
}

func (r *Repository) GetSelection(ctx context.Context) (model.Selection, error) {
	snap, err := r.doc(docSelection).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(repository.ErrNotFound, "selection is not saved",
				goerr.V("collection", r.collection),
			)
		}
		return nil, goerr.Wrap(err, "failed to get selection", goerr.V("collection", r.collection))
	}

	var doc selectionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(repository.ErrInvalidData, "failed to decode selection",
			goerr.V("collection", r.collection),
			goerr.V("cause", err.Error()),
		)
	}

	return model.NewSelection(doc.Repositories...), nil
}

// PutSelection replaces the selection document as a whole.
func (r *Repository) PutSelection(ctx context.Context, selection model.Selection) error {
	doc := selectionDoc{
		Repositories: selection.Strings(),
		UpdatedAt:    time.Now().UTC(),
	}
	if _, err := r.doc(docSelection).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put selection", goerr.V("collection", r.collection))
	}
	return nil
}

func (r *Repository) GetLastRun(ctx context.Context) (time.Time, error) {
	snap, err := r.doc(docRunGate).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return time.Time{}, goerr.Wrap(repository.ErrNotFound, "no automatic run recorded",
				goerr.V("collection", r.collection),
			)
		}
		return time.Time{}, goerr.Wrap(err, "failed to get run gate", goerr.V("collection", r.collection))
	}

	var doc runGateDoc
	if err := snap.DataTo(&doc); err != nil {
		return time.Time{}, goerr.Wrap(repository.ErrInvalidData, "failed to decode run gate",
			goerr.V("collection", r.collection),
			goerr.V("cause", err.Error()),
		)
	}

	return time.Unix(doc.LastRun, 0).UTC(), nil
}

// PutLastRun records at in a transaction so that concurrent writers never move the gate back.
func (r *Repository) PutLastRun(ctx context.Context, at time.Time) error {
	ref := r.doc(docRunGate)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to get run gate")
		}

		if err == nil {
			var current runGateDoc
			if err := snap.DataTo(&current); err == nil && current.LastRun > at.Unix() {
				return nil
			}
		}

		return tx.Set(ref, runGateDoc{LastRun: at.Unix()})
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put run gate", goerr.V("collection", r.collection))
	}

	return nil
}

// StartRunIfDue reads and writes the gate in one transaction. Firestore retries the
// transaction when another writer commits first, so only one caller sees the run as due.
func (r *Repository) StartRunIfDue(ctx context.Context, now time.Time, interval time.Duration) (bool, error) {
	ref := r.doc(docRunGate)

	var started bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		started = false

		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to get run gate")
		}

		var last *time.Time
		if err == nil {
			var current runGateDoc
			if err := snap.DataTo(&current); err == nil {
				at := time.Unix(current.LastRun, 0).UTC()
				last = &at
			}
		}

		if !model.IsRunDue(last, now, interval) {
			return nil
		}
		if err := tx.Set(ref, runGateDoc{LastRun: now.Unix()}); err != nil {
			return goerr.Wrap(err, "failed to set run gate")
		}
		started = true
		return nil
	})
	if err != nil {
		return false, goerr.Wrap(err, "failed to start automatic run", goerr.V("collection", r.collection))
	}

	return started, nil
}
