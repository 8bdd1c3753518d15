package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/cli/config"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type selectionOutput struct {
	Repositories []string `json:"repositories"`
}

func selectionCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "selection",
		Usage: "Manage repositories enrolled for automatic runs",
		Commands: []*cli.Command{
			selectionShowCommand(out),
			selectionSetCommand(out),
			selectionAddCommand(out),
		},
	}
}

func selectionShowCommand(out io.Writer) *cli.Command {
	var store config.Store

	return &cli.Command{
		Name:  "show",
		Usage: "Print the stored selection",
		Flags: store.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := buildUseCase(ctx, nil, &store, nil, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			selection, err := uc.GetSelection(ctx)
			if err != nil {
				return err
			}
			return printJSON(out, &selectionOutput{Repositories: selection.Strings()})
		},
	}
}

func selectionSetCommand(out io.Writer) *cli.Command {
	var store config.Store

	return &cli.Command{
		Name:      "set",
		Usage:     "Replace the selection with the given repositories (none clears it)",
		ArgsUsage: "[repo...]",
		Flags:     store.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := buildUseCase(ctx, nil, &store, nil, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			stored, err := uc.UpdateSelection(ctx, model.NewSelection(c.Args().Slice()...))
			if err != nil {
				return err
			}
			return printJSON(out, &selectionOutput{Repositories: stored.Strings()})
		},
	}
}

func selectionAddCommand(out io.Writer) *cli.Command {
	var (
		store config.Store
		dir   string
	)

	return &cli.Command{
		Name:      "add",
		Usage:     "Append repositories to the selection. Without arguments, the origin of the local git repository is added",
		ArgsUsage: "[repo...]",
		Flags: append(store.Flags(), &cli.StringFlag{
			Name:        "dir",
			Usage:       "Local git repository to detect the origin from",
			Value:       ".",
			Destination: &dir,
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			names := c.Args().Slice()
			if len(names) == 0 {
				_, repo, err := DetectOriginRepository(dir)
				if err != nil {
					return goerr.Wrap(err, "no repository given and origin could not be detected")
				}
				logging.From(ctx).Info("Detected repository from git origin", slog.String("repo", repo))
				names = []string{repo}
			}

			uc, cleanup, err := buildUseCase(ctx, nil, &store, nil, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			current, err := uc.GetSelection(ctx)
			if err != nil {
				return err
			}

			stored, err := uc.UpdateSelection(ctx, append(current, model.NewSelection(names...)...))
			if err != nil {
				return err
			}
			return printJSON(out, &selectionOutput{Repositories: stored.Strings()})
		},
	}
}
