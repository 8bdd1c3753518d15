package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"
	"time"

	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
)

type UseCase interface {
	RunAutomatic(ctx context.Context, now time.Time) (*model.SyncReport, error)
	RunManual(ctx context.Context, repos []types.RepoName) (*model.SyncReport, error)
	RunSelected(ctx context.Context) (*model.SyncReport, error)
	RunOne(ctx context.Context, repo types.RepoName) model.SyncOutcome
	GateStatus(ctx context.Context, now time.Time) (*model.GateStatus, error)

	GetSelection(ctx context.Context) (model.Selection, error)
	UpdateSelection(ctx context.Context, selection model.Selection) (model.Selection, error)

	ListCandidates(ctx context.Context) ([]*model.GitHubRepository, error)
	CreateRepository(ctx context.Context, input *model.CreateRepositoryInput) (*model.CreateRepositoryResult, error)
}
