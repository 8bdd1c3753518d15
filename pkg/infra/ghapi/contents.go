package ghapi

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

// GetFile reads the current state of a file. A missing file yields a 404 response, and a
// directory at the path yields a 200 response with a nil body.
func (x *Client) GetFile(ctx context.Context, repo types.RepoName, path types.FilePath, ref types.BranchName) (*model.Response[model.FileContent], error) {
	httpClient, _, err := x.resolve(ctx)
	if err != nil {
		return nil, err
	}
	client := x.newGitHubClient(httpClient)

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	var opt *github.RepositoryContentGetOptions
	if ref != "" {
		opt = &github.RepositoryContentGetOptions{Ref: ref.String()}
	}

	file, _, resp, err := client.Repositories.GetContents(ctx, x.escapedOwner(), repo.PathEscape(), path.String(), opt)

	var body *model.FileContent
	if file != nil {
		body = &model.FileContent{
			Path:     types.FilePath(file.GetPath()),
			Revision: types.Revision(file.GetSHA()),
			Size:     file.GetSize(),
		}
	}

	logging.From(ctx).Debug("Read file",
		slog.Any("repo", repo),
		slog.Any("path", path),
		slog.Bool("exists", body != nil),
	)

	return toResponse("get_file", resp, body, err)
}

// PutFile creates the file when input.Revision is empty and updates it otherwise. The remote
// side rejects a stale or missing revision with a conflict status.
func (x *Client) PutFile(ctx context.Context, input *model.PutFileInput) (*model.Response[model.PutFileResult], error) {
	httpClient, _, err := x.resolve(ctx)
	if err != nil {
		return nil, err
	}
	client := x.newGitHubClient(httpClient)

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	opt := &github.RepositoryContentFileOptions{
		Message: github.String(input.Message),
		Content: input.Content,
	}
	if input.Branch != "" {
		opt.Branch = github.String(input.Branch.String())
	}

	var result *github.RepositoryContentResponse
	var resp *github.Response
	operation := "create_file"
	if input.Revision == "" {
		result, resp, err = client.Repositories.CreateFile(ctx, x.escapedOwner(), input.Repo.PathEscape(), input.Path.String(), opt)
	} else {
		operation = "update_file"
		opt.SHA = github.String(input.Revision.String())
		result, resp, err = client.Repositories.UpdateFile(ctx, x.escapedOwner(), input.Repo.PathEscape(), input.Path.String(), opt)
	}

	var body *model.PutFileResult
	if result != nil {
		body = &model.PutFileResult{
			Revision:  types.Revision(result.GetContent().GetSHA()),
			CommitSHA: result.Commit.GetSHA(),
		}
	}

	return toResponse(operation, resp, body, err)
}

func (x *Client) escapedOwner() string {
	return url.PathEscape(x.owner.String())
}
