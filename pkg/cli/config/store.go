package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/repository/file"
	"github.com/m-mizutani/octosync/pkg/repository/firestore"
	"github.com/m-mizutani/octosync/pkg/repository/memory"
	"github.com/m-mizutani/octosync/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

const (
	StoreMemory    = "memory"
	StoreFile      = "file"
	StoreFirestore = "firestore"
)

// StateRepository holds both the selection and the run gate.
type StateRepository interface {
	interfaces.SelectionRepository
	interfaces.RunGateRepository
}

type Store struct {
	kind string
	dir  string

	firestoreProjectID  string
	firestoreDatabaseID string
	firestoreCollection string
}

func (x *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store",
			Usage:       "State store [memory|file|firestore]",
			Category:    "Store",
			Value:       StoreFile,
			Destination: &x.kind,
			Sources:     cli.EnvVars("OCTOSYNC_STORE"),
		},
		&cli.StringFlag{
			Name:        "state-dir",
			Usage:       "Directory of the file store",
			Category:    "Store",
			Value:       "./state",
			Destination: &x.dir,
			Sources:     cli.EnvVars("OCTOSYNC_STATE_DIR"),
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID",
			Category:    "Store",
			Destination: &x.firestoreProjectID,
			Sources:     cli.EnvVars("OCTOSYNC_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Category:    "Store",
			Value:       "(default)",
			Destination: &x.firestoreDatabaseID,
			Sources:     cli.EnvVars("OCTOSYNC_FIRESTORE_DATABASE_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection of the state documents",
			Category:    "Store",
			Value:       firestore.DefaultCollection,
			Destination: &x.firestoreCollection,
			Sources:     cli.EnvVars("OCTOSYNC_FIRESTORE_COLLECTION"),
		},
	}
}

func (x *Store) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Kind", x.kind),
		slog.String("Dir", x.dir),
		slog.String("FirestoreProjectID", x.firestoreProjectID),
		slog.String("FirestoreDatabaseID", x.firestoreDatabaseID),
		slog.String("FirestoreCollection", x.firestoreCollection),
	)
}

// NewRepository opens the configured store. The returned function releases it.
func (x *Store) NewRepository(ctx context.Context) (StateRepository, func(), error) {
	switch x.kind {
	case StoreMemory:
		return memory.New(), func() {}, nil

	case StoreFile, "":
		repo, err := file.New(x.dir)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil

	case StoreFirestore:
		if x.firestoreProjectID == "" {
			return nil, nil, goerr.Wrap(types.ErrInvalidOption, "firestore-project-id is required for firestore store")
		}
		repo, err := firestore.New(ctx, x.firestoreProjectID, x.firestoreDatabaseID,
			firestore.WithCollection(x.firestoreCollection),
		)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { safe.Close(repo) }, nil

	default:
		return nil, nil, goerr.Wrap(types.ErrInvalidOption, "unknown store", goerr.V("store", x.kind))
	}
}
