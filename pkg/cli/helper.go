package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/cli/config"
	"github.com/m-mizutani/octosync/pkg/infra"
	"github.com/m-mizutani/octosync/pkg/usecase"
	"github.com/m-mizutani/octosync/pkg/utils/safe"
)

// buildUseCase wires the configured clients. github, bigQuery and sync may be nil when the
// command does not need them. The returned function releases opened resources.
func buildUseCase(ctx context.Context, github *config.GitHub, store *config.Store, sync *config.Sync, bigQuery *config.BigQuery) (*usecase.UseCase, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	repo, closeRepo, err := store.NewRepository(ctx)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeRepo)

	infraOptions := []infra.Option{
		infra.WithSelectionRepository(repo),
		infra.WithRunGateRepository(repo),
	}

	if github != nil {
		ghClient, err := github.NewClient(ctx)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		infraOptions = append(infraOptions, infra.WithGitHub(ghClient))
	}

	if bigQuery != nil {
		bqClient, err := bigQuery.NewClient(ctx)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if bqClient != nil {
			closers = append(closers, func() { safe.Close(bqClient) })
			infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
		}
	}

	var ucOptions []usecase.Option
	if sync != nil {
		if err := sync.Validate(); err != nil {
			cleanup()
			return nil, nil, err
		}
		ucOptions = sync.Options()
	}

	return usecase.New(infra.New(infraOptions...), ucOptions...), cleanup, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write output")
	}
	return nil
}
