package ghapi

import (
	"context"
	"log/slog"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

func (x *Client) ListRepositories(ctx context.Context, input *model.ListRepositoriesInput) (*model.Response[[]*model.GitHubRepository], error) {
	httpClient, isApp, err := x.resolve(ctx)
	if err != nil {
		return nil, err
	}
	client := x.newGitHubClient(httpClient)

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	listOpt := github.ListOptions{PerPage: input.PerPage, Page: input.Page}

	var repos []*github.Repository
	var resp *github.Response

	switch {
	case x.organization:
		repos, resp, err = client.Repositories.ListByOrg(ctx, x.owner.String(), &github.RepositoryListByOrgOptions{
			Sort:        input.Sort,
			Direction:   input.Direction,
			ListOptions: listOpt,
		})

	case isApp:
		// Installation tokens cannot call /user/repos
		var result *github.ListRepositories
		result, resp, err = client.Apps.ListRepos(ctx, &listOpt)
		if result != nil {
			repos = result.Repositories
		}

	default:
		repos, resp, err = client.Repositories.List(ctx, "", &github.RepositoryListOptions{
			Sort:        input.Sort,
			Direction:   input.Direction,
			ListOptions: listOpt,
		})
	}

	converted := make([]*model.GitHubRepository, 0, len(repos))
	for _, repo := range repos {
		converted = append(converted, toModelRepository(repo))
	}

	logging.From(ctx).Debug("Listed repositories",
		slog.Int("count", len(converted)),
		slog.Any("input", input),
	)

	return toResponse("list_repositories", resp, &converted, err)
}

func (x *Client) CreateRepository(ctx context.Context, input *model.CreateRepositoryInput) (*model.Response[model.GitHubRepository], error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	httpClient, _, err := x.resolve(ctx)
	if err != nil {
		return nil, err
	}
	client := x.newGitHubClient(httpClient)

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	org := ""
	if x.organization {
		org = x.owner.String()
	}

	logging.From(ctx).Info("Creating repository",
		slog.Any("name", input.Name),
		slog.Bool("private", input.Private),
	)

	created, resp, err := client.Repositories.Create(ctx, org, &github.Repository{
		Name:        github.String(input.Name.String()),
		Description: github.String(input.Description),
		Private:     github.Bool(input.Private),
	})

	var body *model.GitHubRepository
	if created != nil {
		body = toModelRepository(created)
	}
	return toResponse("create_repository", resp, body, err)
}

func toModelRepository(repo *github.Repository) *model.GitHubRepository {
	return &model.GitHubRepository{
		ID:            repo.GetID(),
		Owner:         repo.GetOwner().GetLogin(),
		Name:          types.RepoName(repo.GetName()),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		Private:       repo.GetPrivate(),
		Archived:      repo.GetArchived(),
		DefaultBranch: repo.GetDefaultBranch(),
		HTMLURL:       repo.GetHTMLURL(),
		UpdatedAt:     repo.GetUpdatedAt().Time,
	}
}
