package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . GitHub BigQuery

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
)

// GitHub is the remote repository client. Non-2xx statuses are reported through
// Response.StatusCode; an error is returned only when no HTTP response was received.
type GitHub interface {
	ListRepositories(ctx context.Context, input *model.ListRepositoriesInput) (*model.Response[[]*model.GitHubRepository], error)
	CreateRepository(ctx context.Context, input *model.CreateRepositoryInput) (*model.Response[model.GitHubRepository], error)
	GetFile(ctx context.Context, repo types.RepoName, path types.FilePath, ref types.BranchName) (*model.Response[model.FileContent], error)
	PutFile(ctx context.Context, input *model.PutFileInput) (*model.Response[model.PutFileResult], error)
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}
