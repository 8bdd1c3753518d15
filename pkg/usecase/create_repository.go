package usecase

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

const (
	nameCharset        = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	nameLength         = 10
	fallbackNameLength = 8
	maxNameAttempts    = 10
)

// CreateRepository creates a private repository and writes the initial generated file to it.
// When input.Name is empty, a random name not used by any listed repository is chosen.
func (x *UseCase) CreateRepository(ctx context.Context, input *model.CreateRepositoryInput) (*model.CreateRepositoryResult, error) {
	gh := x.clients.GitHub()
	if gh == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub client is not configured")
	}
	logger := logging.From(ctx)

	req := model.CreateRepositoryInput{Private: true}
	if input != nil {
		req = *input
	}

	if req.Name == "" {
		existing, err := x.existingRepoNames(ctx)
		if err != nil {
			return nil, err
		}
		req.Name = generateUniqueName(existing, randomName, logging.CtxTime(ctx))
		req.Private = true
		logger.Info("Generated unique repository name",
			slog.Any("name", req.Name),
			slog.Int("existing", len(existing)),
		)
	}
	if req.Description == "" {
		req.Description = "Auto-created project with random name: " + req.Name.String()
	}

	resp, err := gh.CreateRepository(ctx, &req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository", goerr.V("name", req.Name))
	}
	if !resp.IsSuccess() {
		return nil, goerr.Wrap(types.ErrRemoteAPI, "failed to create repository",
			goerr.V("name", req.Name),
			goerr.V("status", resp.StatusCode),
			goerr.V("message", resp.Message),
		)
	}

	repo := resp.Body
	if repo == nil {
		repo = &model.GitHubRepository{Name: req.Name, Private: req.Private}
	}
	logger.Info("Repository created", slog.Any("name", repo.Name))

	return &model.CreateRepositoryResult{
		Repository: repo,
		Readme:     x.runOne(ctx, repo.Name, model.RunModeManual, logging.CtxTime(ctx)),
	}, nil
}

func (x *UseCase) existingRepoNames(ctx context.Context) (map[types.RepoName]struct{}, error) {
	resp, err := x.clients.GitHub().ListRepositories(ctx, &model.ListRepositoriesInput{
		PerPage:   candidatesPerPage,
		Sort:      "created",
		Direction: "desc",
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories")
	}
	if !resp.IsSuccess() {
		return nil, goerr.Wrap(types.ErrRemoteAPI, "unable to list repositories",
			goerr.V("status", resp.StatusCode),
			goerr.V("message", resp.Message),
		)
	}

	names := make(map[types.RepoName]struct{})
	if resp.Body != nil {
		for _, repo := range *resp.Body {
			names[repo.Name] = struct{}{}
		}
	}
	return names, nil
}

func randomName(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = nameCharset[rand.IntN(len(nameCharset))]
	}
	return string(b)
}

// generateUniqueName tries random names against existing. After maxNameAttempts collisions it
// falls back to a shorter random name suffixed with unix seconds.
func generateUniqueName(existing map[types.RepoName]struct{}, random func(int) string, now time.Time) types.RepoName {
	for i := 0; i < maxNameAttempts; i++ {
		name := types.RepoName(random(nameLength))
		if _, ok := existing[name]; !ok {
			return name
		}
	}
	return types.RepoName(random(fallbackNameLength) + strconv.FormatInt(now.Unix(), 10))
}
