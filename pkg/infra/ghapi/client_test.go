package ghapi_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/infra/ghapi"
	"github.com/m-mizutani/octosync/pkg/utils/testutil"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

type fakeGitHub struct {
	mu       sync.Mutex
	requests []recordedRequest
	mux      *http.ServeMux
}

func newFakeGitHub(t *testing.T) (*fakeGitHub, *httptest.Server) {
	t.Helper()
	f := &fakeGitHub{mux: http.NewServeMux()}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Auth:   r.Header.Get("Authorization"),
		}
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &rec.Body)
			}
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (x *fakeGitHub) last() recordedRequest {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.requests[len(x.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newClient(t *testing.T, srv *httptest.Server, options ...ghapi.Option) *ghapi.Client {
	t.Helper()
	u := gt.R1(url.Parse(srv.URL)).NoError(t)
	opts := append([]ghapi.Option{
		ghapi.WithToken("ghp_default"),
		ghapi.WithBaseURL(u),
		ghapi.WithTimeout(2 * time.Second),
	}, options...)
	return gt.R1(ghapi.New(context.Background(), "octo", opts...)).NoError(t)
}

func TestNew(t *testing.T) {
	t.Run("empty owner is rejected", func(t *testing.T) {
		_, err := ghapi.New(context.Background(), "", ghapi.WithToken("x"))
		gt.Error(t, err)
	})

	t.Run("non-positive timeout is rejected", func(t *testing.T) {
		_, err := ghapi.New(context.Background(), "octo", ghapi.WithToken("x"), ghapi.WithTimeout(0))
		gt.Error(t, err)
	})

	t.Run("app credential with invalid key fails", func(t *testing.T) {
		_, err := ghapi.New(context.Background(), "octo",
			ghapi.WithApp(types.GitHubAppID(12345), types.GitHubAppInstallID(67890), "invalid-key"),
		)
		gt.Error(t, err)
	})

	t.Run("app credential without key fails", func(t *testing.T) {
		_, err := ghapi.New(context.Background(), "octo",
			ghapi.WithApp(types.GitHubAppID(12345), types.GitHubAppInstallID(67890), ""),
		)
		gt.Error(t, err)
	})
}

func TestGetFile(t *testing.T) {
	f, srv := newFakeGitHub(t)
	f.mux.HandleFunc("GET /repos/octo/alpha/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"type": "file",
			"name": "README.md",
			"path": "README.md",
			"sha":  "abc123",
			"size": 42,
		})
	})
	f.mux.HandleFunc("GET /repos/octo/beta/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
	})
	client := newClient(t, srv)

	t.Run("existing file returns revision", func(t *testing.T) {
		resp := gt.R1(client.GetFile(context.Background(), "alpha", "README.md", "main")).NoError(t)
		gt.V(t, resp.StatusCode).Equal(http.StatusOK)
		gt.V(t, resp.Body.Revision).Equal(types.Revision("abc123"))
		gt.V(t, resp.Body.Size).Equal(42)
		gt.S(t, f.last().Auth).Contains("ghp_default")
	})

	t.Run("missing file returns 404 without error", func(t *testing.T) {
		resp := gt.R1(client.GetFile(context.Background(), "beta", "README.md", "")).NoError(t)
		gt.V(t, resp.StatusCode).Equal(http.StatusNotFound)
		gt.V(t, resp.Message).Equal("Not Found")
		gt.True(t, resp.Body == nil)
		gt.False(t, resp.IsSuccess())
	})

	t.Run("repository name is percent-encoded", func(t *testing.T) {
		resp := gt.R1(client.GetFile(context.Background(), "my repo", "README.md", "")).NoError(t)
		gt.V(t, resp.StatusCode).Equal(http.StatusNotFound)
		gt.V(t, f.last().Path).Equal("/repos/octo/my%20repo/contents/README.md")
	})

	t.Run("per-user token overrides default credential", func(t *testing.T) {
		ctx := ghapi.CtxWithToken(context.Background(), "ghp_user")
		gt.R1(client.GetFile(ctx, "alpha", "README.md", "")).NoError(t)
		gt.S(t, f.last().Auth).Contains("ghp_user")
	})
}

func TestPutFile(t *testing.T) {
	f, srv := newFakeGitHub(t)
	f.mux.HandleFunc("PUT /repos/octo/alpha/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{
			"content": map[string]any{"sha": "new-blob"},
			"commit":  map[string]any{"sha": "commit-1"},
		})
	})
	f.mux.HandleFunc("PUT /repos/octo/beta/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "README.md does not match abc"})
	})
	client := newClient(t, srv)

	t.Run("create sends content without sha", func(t *testing.T) {
		resp := gt.R1(client.PutFile(context.Background(), &model.PutFileInput{
			Repo:    "alpha",
			Path:    "README.md",
			Branch:  "main",
			Message: "Daily README update - 2024-03-05 10:00:00",
			Content: []byte("# alpha\n"),
		})).NoError(t)

		gt.V(t, resp.StatusCode).Equal(http.StatusCreated)
		gt.V(t, resp.Body.Revision).Equal(types.Revision("new-blob"))
		gt.V(t, resp.Body.CommitSHA).Equal("commit-1")

		req := f.last()
		_, hasSHA := req.Body["sha"]
		gt.False(t, hasSHA)
		gt.V(t, req.Body["branch"]).Equal("main")
		gt.V(t, req.Body["content"]).Equal(base64.StdEncoding.EncodeToString([]byte("# alpha\n")))
	})

	t.Run("update carries the exact revision", func(t *testing.T) {
		gt.R1(client.PutFile(context.Background(), &model.PutFileInput{
			Repo:     "alpha",
			Path:     "README.md",
			Message:  "update",
			Content:  []byte("x"),
			Revision: "abc123",
		})).NoError(t)
		gt.V(t, f.last().Body["sha"]).Equal("abc123")
	})

	t.Run("conflict is a response, not an error", func(t *testing.T) {
		resp := gt.R1(client.PutFile(context.Background(), &model.PutFileInput{
			Repo:     "beta",
			Path:     "README.md",
			Message:  "update",
			Content:  []byte("x"),
			Revision: "stale",
		})).NoError(t)
		gt.V(t, resp.StatusCode).Equal(http.StatusConflict)
		gt.True(t, resp.IsConflict())
		gt.S(t, resp.Message).Contains("does not match")
	})
}

func TestRepositories(t *testing.T) {
	f, srv := newFakeGitHub(t)
	f.mux.HandleFunc("GET /user/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "alpha", "full_name": "octo/alpha", "private": true, "owner": map[string]any{"login": "octo"}},
			{"id": 2, "name": "beta", "full_name": "octo/beta", "owner": map[string]any{"login": "octo"}},
		})
	})
	f.mux.HandleFunc("POST /user/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": 3, "name": "gamma", "private": true})
	})
	f.mux.HandleFunc("POST /orgs/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "Repository creation failed."})
	})

	t.Run("list repositories passes pagination and sort", func(t *testing.T) {
		client := newClient(t, srv)
		resp := gt.R1(client.ListRepositories(context.Background(), &model.ListRepositoriesInput{
			PerPage: 100, Sort: "created", Direction: "desc",
		})).NoError(t)

		gt.V(t, resp.StatusCode).Equal(http.StatusOK)
		gt.V(t, len(*resp.Body)).Equal(2)
		gt.V(t, (*resp.Body)[0].Name).Equal(types.RepoName("alpha"))
		gt.True(t, (*resp.Body)[0].Private)
	})

	t.Run("create user repository", func(t *testing.T) {
		client := newClient(t, srv)
		resp := gt.R1(client.CreateRepository(context.Background(), &model.CreateRepositoryInput{
			Name: "gamma", Description: "desc", Private: true,
		})).NoError(t)
		gt.V(t, resp.StatusCode).Equal(http.StatusCreated)
		gt.V(t, resp.Body.Name).Equal(types.RepoName("gamma"))

		req := f.last()
		gt.V(t, req.Body["name"]).Equal("gamma")
		gt.V(t, req.Body["private"]).Equal(true)
	})

	t.Run("name collision on organization is 422", func(t *testing.T) {
		client := newClient(t, srv, ghapi.WithOrganization(true))
		resp := gt.R1(client.CreateRepository(context.Background(), &model.CreateRepositoryInput{Name: "gamma"})).NoError(t)
		gt.V(t, resp.StatusCode).Equal(http.StatusUnprocessableEntity)
	})

	t.Run("empty name is rejected before calling the API", func(t *testing.T) {
		client := newClient(t, srv)
		_, err := client.CreateRepository(context.Background(), &model.CreateRepositoryInput{})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrValidationFailed))
	})
}

func TestTransportFailure(t *testing.T) {
	t.Run("unreachable host is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		u := gt.R1(url.Parse(srv.URL)).NoError(t)
		srv.Close()

		client := gt.R1(ghapi.New(context.Background(), "octo",
			ghapi.WithToken("x"), ghapi.WithBaseURL(u), ghapi.WithTimeout(time.Second),
		)).NoError(t)
		_, err := client.GetFile(context.Background(), "alpha", "README.md", "")
		gt.Error(t, err)
	})

	t.Run("timeout is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		t.Cleanup(srv.Close)
		u := gt.R1(url.Parse(srv.URL)).NoError(t)

		client := gt.R1(ghapi.New(context.Background(), "octo",
			ghapi.WithToken("x"), ghapi.WithBaseURL(u), ghapi.WithTimeout(50*time.Millisecond),
		)).NoError(t)
		_, err := client.GetFile(context.Background(), "alpha", "README.md", "")
		gt.Error(t, err)
	})

	t.Run("missing credential is an error", func(t *testing.T) {
		client := gt.R1(ghapi.New(context.Background(), "octo")).NoError(t)
		_, err := client.GetFile(context.Background(), "alpha", "README.md", "")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestClient_Integration(t *testing.T) {
	token := testutil.GetEnvOrSkip(t, "TEST_GITHUB_TOKEN")
	owner := testutil.GetEnvOrSkip(t, "TEST_GITHUB_OWNER")
	repo := testutil.GetEnvOrSkip(t, "TEST_GITHUB_REPO")

	client := gt.R1(ghapi.New(context.Background(), types.GitHubOwner(owner), ghapi.WithToken(types.GitHubToken(token)))).NoError(t)
	resp := gt.R1(client.GetFile(context.Background(), types.RepoName(repo), "README.md", "")).NoError(t)
	t.Logf("status: %d", resp.StatusCode)
}

type countingTransport struct {
	mu    sync.Mutex
	calls int
}

func (x *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	x.mu.Lock()
	x.calls++
	x.mu.Unlock()
	return http.DefaultTransport.RoundTrip(r)
}

func TestWithTransport(t *testing.T) {
	f, srv := newFakeGitHub(t)
	f.mux.HandleFunc("GET /repos/octo/alpha/contents/README.md", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"type": "file", "path": "README.md", "sha": "abc123"})
	})

	tr := &countingTransport{}
	client := newClient(t, srv, ghapi.WithTransport(tr))
	resp := gt.R1(client.GetFile(context.Background(), "alpha", "README.md", "")).NoError(t)
	gt.True(t, resp.IsSuccess())
	gt.V(t, tr.calls).Equal(1)
	gt.S(t, f.last().Auth).Contains("ghp_default")
}
