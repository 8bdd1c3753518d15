package usecase

import (
	"sync"
	"time"

	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/infra"
	"github.com/moby/locker"
)

const (
	DefaultInterval    = 3600 * time.Second
	DefaultFilePath    = types.FilePath("README.md")
	DefaultBranch      = types.BranchName("main")
	DefaultConcurrency = 1
)

type UseCase struct {
	clients *infra.Clients

	interval        time.Duration
	filePath        types.FilePath
	branch          types.BranchName
	concurrency     int
	conflictRetries uint

	// gateMu makes the due check and the record of an automatic run one step.
	gateMu sync.Mutex
	// repoLocks serializes read-then-write per repository across concurrent runs.
	repoLocks *locker.Locker
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithInterval sets the minimum time between two automatic runs.
func WithInterval(d time.Duration) Option {
	return func(x *UseCase) {
		x.interval = d
	}
}

// WithFilePath sets the path of the generated file in each repository.
func WithFilePath(path types.FilePath) Option {
	return func(x *UseCase) {
		x.filePath = path
	}
}

// WithBranch sets the branch that receives commits. Empty means the repository default.
func WithBranch(branch types.BranchName) Option {
	return func(x *UseCase) {
		x.branch = branch
	}
}

// WithConcurrency bounds the number of repositories processed at once. 1 is sequential.
func WithConcurrency(n int) Option {
	return func(x *UseCase) {
		x.concurrency = n
	}
}

// WithConflictRetries enables re-reading the revision and writing again when a write is
// rejected as a conflict. Zero keeps a conflict terminal.
func WithConflictRetries(n uint) Option {
	return func(x *UseCase) {
		x.conflictRetries = n
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:     clients,
		interval:    DefaultInterval,
		filePath:    DefaultFilePath,
		branch:      DefaultBranch,
		concurrency: DefaultConcurrency,
		repoLocks:   locker.New(),
	}

	for _, opt := range options {
		opt(uc)
	}

	if uc.concurrency < 1 {
		uc.concurrency = 1
	}
	if uc.filePath == "" {
		uc.filePath = DefaultFilePath
	}

	return uc
}

func (x *UseCase) Interval() time.Duration {
	return x.interval
}
