package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/repository"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

const candidatesPerPage = 100

func (x *UseCase) GetSelection(ctx context.Context) (model.Selection, error) {
	if x.clients.SelectionRepository() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "selection repository is not configured")
	}
	return x.loadSelection(ctx), nil
}

// UpdateSelection replaces the stored selection as a whole and returns what was stored.
func (x *UseCase) UpdateSelection(ctx context.Context, selection model.Selection) (model.Selection, error) {
	store := x.clients.SelectionRepository()
	if store == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "selection repository is not configured")
	}

	normalized := selection.Normalize()
	if err := store.PutSelection(ctx, normalized); err != nil {
		return nil, goerr.Wrap(err, "failed to save selection", goerr.V("count", len(normalized)))
	}

	logging.From(ctx).Info("Selection updated",
		slog.Int("count", len(normalized)),
		slog.Any("repositories", normalized.Strings()),
	)
	return normalized, nil
}

// ListCandidates lists repositories of the owner that can be enrolled, most recently
// updated first.
func (x *UseCase) ListCandidates(ctx context.Context) ([]*model.GitHubRepository, error) {
	gh := x.clients.GitHub()
	if gh == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub client is not configured")
	}

	resp, err := gh.ListRepositories(ctx, &model.ListRepositoriesInput{
		PerPage:   candidatesPerPage,
		Sort:      "updated",
		Direction: "desc",
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories")
	}
	if !resp.IsSuccess() {
		return nil, goerr.Wrap(types.ErrRemoteAPI, "failed to list repositories",
			goerr.V("status", resp.StatusCode),
			goerr.V("message", resp.Message),
		)
	}
	if resp.Body == nil {
		return []*model.GitHubRepository{}, nil
	}
	return *resp.Body, nil
}

// loadSelection never fails. A missing or unreadable selection is empty.
func (x *UseCase) loadSelection(ctx context.Context) model.Selection {
	store := x.clients.SelectionRepository()
	if store == nil {
		return model.Selection{}
	}

	selection, err := store.GetSelection(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logging.From(ctx).Debug("No selection saved yet")
		} else {
			logging.From(ctx).Warn("Failed to load selection, using empty selection",
				slog.Any("error", err),
			)
		}
		return model.Selection{}
	}

	return selection.Normalize()
}
