package ghapi

import (
	"errors"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/utils/metrics"
)

// toResponse converts a go-github call result into the uniform response. A non-2xx status is
// not an error; only a call that got no HTTP response at all is.
func toResponse[T any](operation string, resp *github.Response, body *T, err error) (*model.Response[T], error) {
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil {
			metrics.ObserveGitHubRequest(operation, errResp.Response.StatusCode)
			return &model.Response[T]{
				StatusCode: errResp.Response.StatusCode,
				Message:    errResp.Message,
			}, nil
		}

		if resp != nil && resp.Response != nil {
			metrics.ObserveGitHubRequest(operation, resp.StatusCode)
			return &model.Response[T]{
				StatusCode: resp.StatusCode,
				Message:    err.Error(),
			}, nil
		}

		metrics.ObserveGitHubRequest(operation, 0)
		return nil, goerr.Wrap(err, "GitHub API request failed", goerr.V("operation", operation))
	}

	metrics.ObserveGitHubRequest(operation, resp.StatusCode)
	return &model.Response[T]{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
