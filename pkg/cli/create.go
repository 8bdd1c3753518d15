package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/m-mizutani/octosync/pkg/cli/config"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func createCommand(out io.Writer) *cli.Command {
	var (
		name        string
		description string
		public      bool

		github config.GitHub
		store  config.Store
		sync   config.Sync
	)

	return &cli.Command{
		Name:  "create",
		Usage: "Create a repository and write the initial generated file",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Usage:       "Repository name (random if omitted)",
				Destination: &name,
			},
			&cli.StringFlag{
				Name:        "description",
				Usage:       "Repository description",
				Destination: &description,
			},
			&cli.BoolFlag{
				Name:        "public",
				Usage:       "Create a public repository",
				Destination: &public,
			},
		}, github.Flags(), store.Flags(), sync.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, cleanup, err := buildUseCase(ctx, &github, &store, &sync, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := uc.CreateRepository(ctx, &model.CreateRepositoryInput{
				Name:        types.RepoName(name),
				Description: description,
				Private:     !public,
			})
			if err != nil {
				return err
			}

			if err := printJSON(out, result); err != nil {
				return err
			}
			if !result.Readme.Success {
				return goerr.New("repository was created but the initial file was not written",
					goerr.V("repository", result.Repository.Name),
					goerr.V("detail", result.Readme.Detail),
				)
			}
			return nil
		},
	}
}
