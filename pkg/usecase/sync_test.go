package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octosync/pkg/domain/mock"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/infra"
	"github.com/m-mizutani/octosync/pkg/repository/file"
	"github.com/m-mizutani/octosync/pkg/repository/memory"
	"github.com/m-mizutani/octosync/pkg/usecase"
)

func TestRunManual(t *testing.T) {
	t.Run("one conflict out of three", func(t *testing.T) {
		remote := newRemoteFiles()
		remote.revisions["alpha"] = "rev-alpha"
		remote.putStatus["beta"] = http.StatusConflict
		gh := remote.mock()

		uc := usecase.New(infra.New(infra.WithGitHub(gh)))
		report := gt.R1(uc.RunManual(fixedCtx(), []types.RepoName{"alpha", "beta", "gamma"})).NoError(t)

		gt.V(t, report.Mode).Equal(model.RunModeManual)
		gt.V(t, report.Attempted).Equal(3)
		gt.V(t, report.Succeeded).Equal(2)
		gt.V(t, report.Failed).Equal(1)
		gt.V(t, report.FailedRepos()).Equal([]types.RepoName{"beta"})

		gt.V(t, report.Outcomes[1].Repository).Equal(types.RepoName("beta"))
		gt.V(t, report.Outcomes[1].StatusCode).Equal(http.StatusConflict)
		gt.V(t, report.Outcomes[1].Detail).Equal("status 409: Conflict")
	})

	t.Run("create path has no revision and update path carries the exact revision", func(t *testing.T) {
		remote := newRemoteFiles()
		remote.revisions["existing"] = "sha-exact-123"
		gh := remote.mock()

		uc := usecase.New(infra.New(infra.WithGitHub(gh)), usecase.WithBranch("develop"), usecase.WithFilePath("docs/README.md"))
		report := gt.R1(uc.RunManual(fixedCtx(), []types.RepoName{"fresh", "existing"})).NoError(t)
		gt.V(t, report.Succeeded).Equal(2)

		calls := gh.PutFileCalls()
		gt.V(t, len(calls)).Equal(2)

		gt.V(t, calls[0].Input.Repo).Equal(types.RepoName("fresh"))
		gt.V(t, calls[0].Input.Revision).Equal(types.Revision(""))
		gt.True(t, report.Outcomes[0].Created)
		gt.V(t, report.Outcomes[0].StatusCode).Equal(http.StatusCreated)

		gt.V(t, calls[1].Input.Revision).Equal(types.Revision("sha-exact-123"))
		gt.False(t, report.Outcomes[1].Created)

		for _, call := range calls {
			gt.V(t, call.Input.Branch).Equal(types.BranchName("develop"))
			gt.V(t, call.Input.Path).Equal(types.FilePath("docs/README.md"))
			gt.V(t, call.Input.Message).Equal("Daily README update - 2024-03-05 10:00:00")
			gt.V(t, string(call.Input.Content)).Equal(usecase.GenerateContent(call.Input.Repo, fixedNow))
		}
		for _, call := range gh.GetFileCalls() {
			gt.V(t, call.Ref).Equal(types.BranchName("develop"))
		}
	})

	t.Run("transport errors become failure outcomes and the batch continues", func(t *testing.T) {
		gh := &mock.GitHubMock{
			GetFileFunc: func(ctx context.Context, repo types.RepoName, path types.FilePath, ref types.BranchName) (*model.Response[model.FileContent], error) {
				return nil, errors.New("dial tcp: connection refused")
			},
			PutFileFunc: func(ctx context.Context, input *model.PutFileInput) (*model.Response[model.PutFileResult], error) {
				if input.Repo == "alpha" {
					return nil, errors.New("context deadline exceeded")
				}
				return &model.Response[model.PutFileResult]{StatusCode: http.StatusCreated}, nil
			},
		}

		uc := usecase.New(infra.New(infra.WithGitHub(gh)))
		report := gt.R1(uc.RunManual(fixedCtx(), []types.RepoName{"alpha", "beta"})).NoError(t)
		gt.V(t, report.Attempted).Equal(2)
		gt.V(t, report.Failed).Equal(1)
		gt.S(t, report.Outcomes[0].Detail).Contains("deadline exceeded")
		gt.True(t, report.Outcomes[1].Success)
	})

	t.Run("authentication failure fails every repository", func(t *testing.T) {
		gh := &mock.GitHubMock{
			GetFileFunc: func(ctx context.Context, repo types.RepoName, path types.FilePath, ref types.BranchName) (*model.Response[model.FileContent], error) {
				return &model.Response[model.FileContent]{StatusCode: http.StatusUnauthorized, Message: "Bad credentials"}, nil
			},
			PutFileFunc: func(ctx context.Context, input *model.PutFileInput) (*model.Response[model.PutFileResult], error) {
				return &model.Response[model.PutFileResult]{StatusCode: http.StatusUnauthorized, Message: "Bad credentials"}, nil
			},
		}

		uc := usecase.New(infra.New(infra.WithGitHub(gh)))
		report := gt.R1(uc.RunManual(fixedCtx(), []types.RepoName{"alpha", "beta", "gamma"})).NoError(t)
		gt.V(t, report.Failed).Equal(3)
		gt.V(t, report.Outcomes[2].Detail).Equal("status 401: Bad credentials")
	})

	t.Run("duplicates cause duplicate writes in order", func(t *testing.T) {
		remote := newRemoteFiles()
		gh := remote.mock()

		uc := usecase.New(infra.New(infra.WithGitHub(gh)))
		report := gt.R1(uc.RunManual(fixedCtx(), []types.RepoName{"alpha", "alpha"})).NoError(t)
		gt.V(t, report.Succeeded).Equal(2)
		gt.V(t, len(gh.PutFileCalls())).Equal(2)
		gt.True(t, report.Outcomes[0].Created)
		gt.False(t, report.Outcomes[1].Created)
	})

	t.Run("order is kept with parallel processing", func(t *testing.T) {
		remote := newRemoteFiles()
		gh := remote.mock()
		names := []types.RepoName{"r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8"}

		uc := usecase.New(infra.New(infra.WithGitHub(gh)), usecase.WithConcurrency(4))
		report := gt.R1(uc.RunManual(fixedCtx(), names)).NoError(t)
		gt.V(t, report.Attempted).Equal(len(names))
		for i, name := range names {
			gt.V(t, report.Outcomes[i].Repository).Equal(name)
		}
	})

	t.Run("empty list is a successful no-op", func(t *testing.T) {
		uc := usecase.New(infra.New(infra.WithGitHub(&mock.GitHubMock{})))
		report := gt.R1(uc.RunManual(fixedCtx(), nil)).NoError(t)
		gt.V(t, report.Attempted).Equal(0)
		gt.V(t, len(report.Outcomes)).Equal(0)
	})

	t.Run("gate is not touched", func(t *testing.T) {
		gate := &mock.RunGateRepositoryMock{}
		remote := newRemoteFiles()
		uc := usecase.New(infra.New(infra.WithGitHub(remote.mock()), infra.WithRunGateRepository(gate)))
		gt.R1(uc.RunManual(fixedCtx(), []types.RepoName{"alpha"})).NoError(t)
		gt.V(t, len(gate.GetLastRunCalls())).Equal(0)
		gt.V(t, len(gate.PutLastRunCalls())).Equal(0)
		gt.V(t, len(gate.StartRunIfDueCalls())).Equal(0)
	})
}

func TestRunAutomatic(t *testing.T) {
	t.Run("not due makes no remote calls", func(t *testing.T) {
		ctx := fixedCtx()
		gate := memory.New()
		gt.NoError(t, gate.PutLastRun(ctx, fixedNow.Add(-10*time.Minute)))
		selection := memory.New()
		gt.NoError(t, selection.PutSelection(ctx, model.NewSelection("alpha", "beta")))
		gh := &mock.GitHubMock{}

		uc := usecase.New(infra.New(
			infra.WithGitHub(gh),
			infra.WithRunGateRepository(gate),
			infra.WithSelectionRepository(selection),
		))
		report := gt.R1(uc.RunAutomatic(ctx, fixedNow)).NoError(t)

		gt.True(t, report.Skipped)
		gt.V(t, report.Attempted).Equal(0)
		gt.V(t, len(report.Outcomes)).Equal(0)
		gt.V(t, len(gh.GetFileCalls())).Equal(0)
		gt.V(t, len(gh.PutFileCalls())).Equal(0)
		gt.V(t, len(gh.ListRepositoriesCalls())).Equal(0)
		gt.V(t, len(gh.CreateRepositoryCalls())).Equal(0)

		last := gt.R1(gate.GetLastRun(ctx)).NoError(t)
		gt.V(t, last.Unix()).Equal(fixedNow.Add(-10 * time.Minute).Unix())
	})

	t.Run("due run records the start before writing", func(t *testing.T) {
		ctx := fixedCtx()
		gate := memory.New()
		selection := memory.New()
		gt.NoError(t, selection.PutSelection(ctx, model.NewSelection("alpha", "beta")))

		remote := newRemoteFiles()
		gh := remote.mock()
		put := gh.PutFileFunc
		gh.PutFileFunc = func(ctx context.Context, input *model.PutFileInput) (*model.Response[model.PutFileResult], error) {
			last, err := gate.GetLastRun(ctx)
			if err != nil || last.Unix() != fixedNow.Unix() {
				t.Errorf("run start was not recorded before writing: %v %v", last, err)
			}
			return put(ctx, input)
		}

		uc := usecase.New(infra.New(
			infra.WithGitHub(gh),
			infra.WithRunGateRepository(gate),
			infra.WithSelectionRepository(selection),
		))
		report := gt.R1(uc.RunAutomatic(ctx, fixedNow)).NoError(t)

		gt.False(t, report.Skipped)
		gt.V(t, report.Mode).Equal(model.RunModeAutomatic)
		gt.V(t, report.Succeeded).Equal(2)
		gt.S(t, gh.PutFileCalls()[0].Input.Message).Contains("(Automated)")

		// The next call inside the window is a no-op.
		again := gt.R1(uc.RunAutomatic(ctx, fixedNow.Add(time.Minute))).NoError(t)
		gt.True(t, again.Skipped)
		gt.V(t, len(gh.PutFileCalls())).Equal(2)
	})

	t.Run("failures still advance the gate", func(t *testing.T) {
		ctx := fixedCtx()
		gate := memory.New()
		selection := memory.New()
		gt.NoError(t, selection.PutSelection(ctx, model.NewSelection("alpha")))
		remote := newRemoteFiles()
		remote.putStatus["alpha"] = http.StatusInternalServerError

		uc := usecase.New(infra.New(
			infra.WithGitHub(remote.mock()),
			infra.WithRunGateRepository(gate),
			infra.WithSelectionRepository(selection),
		))
		report := gt.R1(uc.RunAutomatic(ctx, fixedNow)).NoError(t)
		gt.V(t, report.Failed).Equal(1)
		gt.False(t, uc.IsAutomaticRunDue(ctx, fixedNow.Add(time.Minute)))
	})

	t.Run("empty selection is a successful no-op that advances the gate", func(t *testing.T) {
		ctx := fixedCtx()
		gate := memory.New()
		gh := &mock.GitHubMock{}

		uc := usecase.New(infra.New(
			infra.WithGitHub(gh),
			infra.WithRunGateRepository(gate),
			infra.WithSelectionRepository(memory.New()),
		))
		report := gt.R1(uc.RunAutomatic(ctx, fixedNow)).NoError(t)
		gt.False(t, report.Skipped)
		gt.V(t, report.Attempted).Equal(0)
		gt.V(t, len(gh.PutFileCalls())).Equal(0)
		gt.R1(gate.GetLastRun(ctx)).NoError(t)
	})

	t.Run("unreadable selection is treated as empty", func(t *testing.T) {
		ctx := fixedCtx()
		selection := &mock.SelectionRepositoryMock{
			GetSelectionFunc: func(ctx context.Context) (model.Selection, error) {
				return nil, errors.New("corrupted")
			},
		}
		gh := &mock.GitHubMock{}

		uc := usecase.New(infra.New(
			infra.WithGitHub(gh),
			infra.WithRunGateRepository(memory.New()),
			infra.WithSelectionRepository(selection),
		))
		report := gt.R1(uc.RunAutomatic(ctx, fixedNow)).NoError(t)
		gt.V(t, report.Attempted).Equal(0)
		gt.V(t, len(gh.PutFileCalls())).Equal(0)
	})

	t.Run("gate write failure aborts with zero attempted", func(t *testing.T) {
		ctx := fixedCtx()
		gate := &mock.RunGateRepositoryMock{
			StartRunIfDueFunc: func(ctx context.Context, now time.Time, interval time.Duration) (bool, error) {
				return false, errors.New("write failed")
			},
			GetLastRunFunc: func(ctx context.Context) (time.Time, error) {
				return time.Time{}, errors.New("read failed")
			},
		}
		gh := &mock.GitHubMock{}

		uc := usecase.New(infra.New(
			infra.WithGitHub(gh),
			infra.WithRunGateRepository(gate),
			infra.WithSelectionRepository(memory.New()),
		))
		report, err := uc.RunAutomatic(ctx, fixedNow)
		gt.Error(t, err)
		gt.V(t, report.Attempted).Equal(0)
		gt.V(t, len(gh.PutFileCalls())).Equal(0)
	})

	t.Run("concurrent triggers start only one run", func(t *testing.T) {
		ctx := fixedCtx()
		gate := memory.New()
		selection := memory.New()
		gt.NoError(t, selection.PutSelection(ctx, model.NewSelection("alpha")))
		remote := newRemoteFiles()
		gh := remote.mock()

		uc := usecase.New(infra.New(
			infra.WithGitHub(gh),
			infra.WithRunGateRepository(gate),
			infra.WithSelectionRepository(selection),
		))

		var started atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				report, err := uc.RunAutomatic(ctx, fixedNow)
				if err == nil && !report.Skipped {
					started.Add(1)
				}
			}()
		}
		wg.Wait()

		gt.V(t, started.Load()).Equal(int32(1))
		gt.V(t, len(gh.PutFileCalls())).Equal(1)
	})

	t.Run("run time drives content and commit message", func(t *testing.T) {
		runAt := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		ctx := context.Background()
		selection := memory.New()
		gt.NoError(t, selection.PutSelection(ctx, model.NewSelection("alpha")))
		gh := newRemoteFiles().mock()

		uc := usecase.New(infra.New(
			infra.WithGitHub(gh),
			infra.WithRunGateRepository(memory.New()),
			infra.WithSelectionRepository(selection),
		))
		report := gt.R1(uc.RunAutomatic(ctx, runAt)).NoError(t)
		gt.V(t, report.Succeeded).Equal(1)
		gt.V(t, report.StartedAt).Equal(runAt)
		gt.False(t, report.FinishedAt.Before(runAt))
		gt.True(t, report.FinishedAt.Before(runAt.Add(time.Minute)))

		calls := gh.PutFileCalls()
		gt.V(t, len(calls)).Equal(1)
		gt.V(t, calls[0].Input.Message).Equal("Daily README update - 2020-01-02 03:04:05 (Automated)")
		gt.S(t, string(calls[0].Input.Content)).Contains("Daily Update - 2020-01-02 03:04:05")
	})

	t.Run("stores sharing one state directory start one run", func(t *testing.T) {
		ctx := fixedCtx()
		dir := t.TempDir()
		selection := memory.New()
		gt.NoError(t, selection.PutSelection(ctx, model.NewSelection("alpha")))
		remote := newRemoteFiles()
		gh := remote.mock()

		var started atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			gate := gt.R1(file.New(dir)).NoError(t)
			uc := usecase.New(infra.New(
				infra.WithGitHub(gh),
				infra.WithRunGateRepository(gate),
				infra.WithSelectionRepository(selection),
			))
			wg.Add(1)
			go func() {
				defer wg.Done()
				report, err := uc.RunAutomatic(ctx, fixedNow)
				if err == nil && !report.Skipped {
					started.Add(1)
				}
			}()
		}
		wg.Wait()

		gt.V(t, started.Load()).Equal(int32(1))
		gt.V(t, len(gh.PutFileCalls())).Equal(1)
	})

	t.Run("missing gate repository is an error", func(t *testing.T) {
		uc := usecase.New(infra.New())
		_, err := uc.RunAutomatic(fixedCtx(), fixedNow)
		gt.Error(t, err)
	})
}

func TestRunSelected(t *testing.T) {
	ctx := fixedCtx()
	selection := memory.New()
	gt.NoError(t, selection.PutSelection(ctx, model.NewSelection("alpha", "beta")))
	gate := &mock.RunGateRepositoryMock{}
	remote := newRemoteFiles()

	uc := usecase.New(infra.New(
		infra.WithGitHub(remote.mock()),
		infra.WithSelectionRepository(selection),
		infra.WithRunGateRepository(gate),
	))
	report := gt.R1(uc.RunSelected(ctx)).NoError(t)
	gt.V(t, report.Mode).Equal(model.RunModeManual)
	gt.V(t, report.Succeeded).Equal(2)
	gt.V(t, len(gate.PutLastRunCalls())).Equal(0)
	gt.V(t, len(gate.StartRunIfDueCalls())).Equal(0)
}

func TestRunOne(t *testing.T) {
	t.Run("missing client is a failure outcome", func(t *testing.T) {
		uc := usecase.New(infra.New())
		outcome := uc.RunOne(fixedCtx(), "alpha")
		gt.False(t, outcome.Success)
		gt.V(t, outcome.Repository).Equal(types.RepoName("alpha"))
	})

	t.Run("writes to the same repository never overlap", func(t *testing.T) {
		var inflight, maxInflight atomic.Int32
		gh := &mock.GitHubMock{
			GetFileFunc: func(ctx context.Context, repo types.RepoName, path types.FilePath, ref types.BranchName) (*model.Response[model.FileContent], error) {
				n := inflight.Add(1)
				for {
					m := maxInflight.Load()
					if n <= m || maxInflight.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				return &model.Response[model.FileContent]{StatusCode: http.StatusNotFound}, nil
			},
			PutFileFunc: func(ctx context.Context, input *model.PutFileInput) (*model.Response[model.PutFileResult], error) {
				inflight.Add(-1)
				return &model.Response[model.PutFileResult]{StatusCode: http.StatusCreated}, nil
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHub(gh)), usecase.WithConcurrency(4))

		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = uc.RunManual(fixedCtx(), []types.RepoName{"same", "same"})
			}()
		}
		wg.Wait()

		gt.V(t, maxInflight.Load()).Equal(int32(1))
		gt.V(t, len(gh.PutFileCalls())).Equal(6)
	})
}

func TestConflictRetry(t *testing.T) {
	t.Run("conflict is terminal by default", func(t *testing.T) {
		remote := newRemoteFiles()
		remote.putStatus["alpha"] = http.StatusConflict
		gh := remote.mock()

		uc := usecase.New(infra.New(infra.WithGitHub(gh)))
		outcome := uc.RunOne(fixedCtx(), "alpha")
		gt.False(t, outcome.Success)
		gt.V(t, len(gh.PutFileCalls())).Equal(1)
	})

	t.Run("retry re-reads the revision", func(t *testing.T) {
		var puts atomic.Int32
		gh := &mock.GitHubMock{
			GetFileFunc: func(ctx context.Context, repo types.RepoName, path types.FilePath, ref types.BranchName) (*model.Response[model.FileContent], error) {
				rev := types.Revision("stale")
				if puts.Load() > 0 {
					rev = "fresh"
				}
				return &model.Response[model.FileContent]{StatusCode: http.StatusOK, Body: &model.FileContent{Revision: rev}}, nil
			},
			PutFileFunc: func(ctx context.Context, input *model.PutFileInput) (*model.Response[model.PutFileResult], error) {
				puts.Add(1)
				if input.Revision == "stale" {
					return &model.Response[model.PutFileResult]{StatusCode: http.StatusConflict, Message: "does not match"}, nil
				}
				return &model.Response[model.PutFileResult]{StatusCode: http.StatusOK}, nil
			},
		}

		uc := usecase.New(infra.New(infra.WithGitHub(gh)), usecase.WithConflictRetries(2))
		outcome := uc.RunOne(fixedCtx(), "alpha")
		gt.True(t, outcome.Success)
		gt.V(t, len(gh.GetFileCalls())).Equal(2)
		gt.V(t, gh.PutFileCalls()[1].Input.Revision).Equal(types.Revision("fresh"))
	})
}

func TestReportRecording(t *testing.T) {
	t.Run("report is inserted into a new table", func(t *testing.T) {
		var inserted *model.SyncReport
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, nil
			},
			CreateTableFunc: func(ctx context.Context, md *bigquery.TableMetadata) error {
				return nil
			},
			InsertFunc: func(ctx context.Context, schema bigquery.Schema, data any) error {
				inserted = data.(*model.SyncReport)
				return nil
			},
		}
		remote := newRemoteFiles()

		uc := usecase.New(infra.New(infra.WithGitHub(remote.mock()), infra.WithBigQuery(bq)))
		report := gt.R1(uc.RunManual(fixedCtx(), []types.RepoName{"alpha"})).NoError(t)

		gt.V(t, len(bq.CreateTableCalls())).Equal(1)
		gt.V(t, len(bq.InsertCalls())).Equal(1)
		gt.V(t, inserted.ID).Equal(report.ID)
	})

	t.Run("recording failure does not fail the run", func(t *testing.T) {
		bq := &mock.BigQueryMock{
			GetMetadataFunc: func(ctx context.Context) (*bigquery.TableMetadata, error) {
				return nil, errors.New("permission denied")
			},
		}
		remote := newRemoteFiles()

		uc := usecase.New(infra.New(infra.WithGitHub(remote.mock()), infra.WithBigQuery(bq)))
		report := gt.R1(uc.RunManual(fixedCtx(), []types.RepoName{"alpha"})).NoError(t)
		gt.V(t, report.Succeeded).Equal(1)
		gt.V(t, len(bq.InsertCalls())).Equal(0)
	})
}
