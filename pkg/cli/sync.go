package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/octosync/pkg/cli/config"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func syncCommand(out io.Writer) *cli.Command {
	var (
		auto  bool
		repos []string

		github   config.GitHub
		store    config.Store
		sync     config.Sync
		bigQuery config.BigQuery
		sentry   config.Sentry
	)

	return &cli.Command{
		Name:  "sync",
		Usage: "Synchronize the generated file once and print the report",
		Flags: slice.Flatten([]cli.Flag{
			&cli.BoolFlag{
				Name:        "auto",
				Usage:       "Run as an automatic run, honoring the run gate",
				Sources:     cli.EnvVars("OCTOSYNC_AUTO"),
				Destination: &auto,
			},
			&cli.StringSliceFlag{
				Name:        "repo",
				Aliases:     []string{"r"},
				Usage:       "Repository to synchronize (repeatable). The selection is used if omitted",
				Destination: &repos,
			},
		}, github.Flags(), store.Flags(), sync.Flags(), bigQuery.Flags(), sentry.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if auto && len(repos) > 0 {
				return goerr.New("--auto and --repo can not be used together")
			}

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			uc, cleanup, err := buildUseCase(ctx, &github, &store, &sync, &bigQuery)
			if err != nil {
				return err
			}
			defer cleanup()

			var report *model.SyncReport
			switch {
			case auto:
				report, err = uc.RunAutomatic(ctx, logging.CtxTime(ctx))
			case len(repos) > 0:
				report, err = uc.RunManual(ctx, model.NewSelection(repos...))
			default:
				report, err = uc.RunSelected(ctx)
			}
			if err != nil {
				return err
			}

			if err := printJSON(out, report); err != nil {
				return err
			}

			if report.Failed > 0 {
				return goerr.New("some repositories failed to synchronize",
					goerr.V("failed", report.FailedRepos()),
				)
			}
			if report.Skipped {
				logging.From(ctx).Info("Automatic run is not due yet",
					slog.Time("next_run", uc.NextRun(ctx, logging.CtxTime(ctx))),
				)
			}
			return nil
		},
	}
}
