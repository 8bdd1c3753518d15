package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type Sync struct {
	interval        time.Duration
	filePath        string
	branch          string
	concurrency     int64
	conflictRetries int64
}

func (x *Sync) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Minimum time between two automatic runs",
			Category:    "Sync",
			Value:       usecase.DefaultInterval,
			Destination: &x.interval,
			Sources:     cli.EnvVars("OCTOSYNC_INTERVAL"),
		},
		&cli.StringFlag{
			Name:        "file-path",
			Usage:       "Path of the generated file in each repository",
			Category:    "Sync",
			Value:       usecase.DefaultFilePath.String(),
			Destination: &x.filePath,
			Sources:     cli.EnvVars("OCTOSYNC_FILE_PATH"),
		},
		&cli.StringFlag{
			Name:        "branch",
			Usage:       "Branch that receives the commits",
			Category:    "Sync",
			Value:       usecase.DefaultBranch.String(),
			Destination: &x.branch,
			Sources:     cli.EnvVars("OCTOSYNC_BRANCH"),
		},
		&cli.Int64Flag{
			Name:        "concurrency",
			Usage:       "Number of repositories processed at once",
			Category:    "Sync",
			Value:       usecase.DefaultConcurrency,
			Destination: &x.concurrency,
			Sources:     cli.EnvVars("OCTOSYNC_CONCURRENCY"),
		},
		&cli.Int64Flag{
			Name:        "conflict-retries",
			Usage:       "Retries with a fresh revision after a write conflict (0 disables)",
			Category:    "Sync",
			Destination: &x.conflictRetries,
			Sources:     cli.EnvVars("OCTOSYNC_CONFLICT_RETRIES"),
		},
	}
}

func (x *Sync) Validate() error {
	if x.interval <= 0 {
		return goerr.Wrap(types.ErrInvalidOption, "interval must be positive", goerr.V("interval", x.interval))
	}
	if x.concurrency < 1 {
		return goerr.Wrap(types.ErrInvalidOption, "concurrency must be at least 1", goerr.V("concurrency", x.concurrency))
	}
	if x.conflictRetries < 0 {
		return goerr.Wrap(types.ErrInvalidOption, "conflict-retries must not be negative", goerr.V("conflict_retries", x.conflictRetries))
	}
	return nil
}

// Options converts the flags into usecase options. Validate must be called first.
func (x *Sync) Options() []usecase.Option {
	return []usecase.Option{
		usecase.WithInterval(x.interval),
		usecase.WithFilePath(types.FilePath(x.filePath)),
		usecase.WithBranch(types.BranchName(x.branch)),
		usecase.WithConcurrency(int(x.concurrency)),
		usecase.WithConflictRetries(uint(x.conflictRetries)),
	}
}

func (x *Sync) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("Interval", x.interval),
		slog.String("FilePath", x.filePath),
		slog.String("Branch", x.branch),
		slog.Int64("Concurrency", x.concurrency),
		slog.Int64("ConflictRetries", x.conflictRetries),
	)
}
