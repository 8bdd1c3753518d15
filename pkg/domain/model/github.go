package model

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/types"
)

// Response is the uniform result of a GitHub REST call. Body is nil when the API did not
// return a decodable payload for the status (e.g. 404 on a file read).
type Response[T any] struct {
	StatusCode int
	Body       *T
	Message    string
}

func (x *Response[T]) IsSuccess() bool {
	return x != nil && x.StatusCode >= 200 && x.StatusCode < 300
}

// IsConflict reports whether the status is an optimistic concurrency rejection.
func (x *Response[T]) IsConflict() bool {
	return x != nil && (x.StatusCode == http.StatusConflict || x.StatusCode == http.StatusUnprocessableEntity)
}

type GitHubRepository struct {
	ID            int64          `json:"id"`
	Owner         string         `json:"owner"`
	Name          types.RepoName `json:"name"`
	FullName      string         `json:"full_name"`
	Description   string         `json:"description,omitempty"`
	Private       bool           `json:"private"`
	Archived      bool           `json:"archived"`
	DefaultBranch string         `json:"default_branch,omitempty"`
	HTMLURL       string         `json:"html_url,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type ListRepositoriesInput struct {
	PerPage   int
	Page      int
	Sort      string
	Direction string
}

type CreateRepositoryInput struct {
	Name        types.RepoName
	Description string
	Private     bool
}

func (x *CreateRepositoryInput) Validate() error {
	if x.Name == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repository name is empty")
	}
	return nil
}

// FileContent is the current state of a file read through the contents API.
type FileContent struct {
	Path     types.FilePath
	Revision types.Revision
	Size     int
}

type PutFileInput struct {
	Repo    types.RepoName
	Path    types.FilePath
	Branch  types.BranchName
	Message string
	Content []byte

	// Revision is empty for a create and carries the sha of the replaced blob for an update.
	Revision types.Revision
}

type PutFileResult struct {
	Revision  types.Revision
	CommitSHA string
}
