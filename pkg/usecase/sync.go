package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
	"github.com/m-mizutani/octosync/pkg/utils/metrics"
	"golang.org/x/sync/errgroup"
)

const conflictRetryInterval = 200 * time.Millisecond

// RunAutomatic runs a synchronization of the stored selection when the gate says a run is
// due at now. When it is not due the report is marked skipped and nothing is called remotely.
// The run start is recorded before any repository is processed, and now is the time used for
// the generated content and commit message.
func (x *UseCase) RunAutomatic(ctx context.Context, now time.Time) (*model.SyncReport, error) {
	gate := x.clients.RunGateRepository()
	if gate == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "run gate repository is not configured")
	}

	x.gateMu.Lock()
	started, err := gate.StartRunIfDue(ctx, now, x.interval)
	x.gateMu.Unlock()

	if err != nil {
		metrics.ObserveAbortedRun(model.RunModeAutomatic)
		report := newReport(model.RunModeAutomatic, now)
		report.FinishedAt = now
		return report, goerr.Wrap(err, "failed to record automatic run start", goerr.V("now", now))
	}

	if !started {
		logging.From(ctx).Debug("Automatic run is not due",
			slog.Time("now", now),
			slog.Time("next_run", x.NextRun(ctx, now)),
		)
		report := newReport(model.RunModeAutomatic, now)
		report.Skipped = true
		report.FinishedAt = now
		metrics.ObserveReport(report)
		return report, nil
	}

	selection := x.loadSelection(ctx)
	if len(selection) == 0 {
		logging.From(ctx).Info("No repositories selected for automatic synchronization")
	}

	return x.runBatch(ctx, model.RunModeAutomatic, selection, now), nil
}

// RunManual synchronizes the given repositories in order. It neither reads nor updates the
// run gate.
func (x *UseCase) RunManual(ctx context.Context, repos []types.RepoName) (*model.SyncReport, error) {
	targets := model.Selection(repos).Normalize()
	return x.runBatch(ctx, model.RunModeManual, targets, logging.CtxTime(ctx)), nil
}

// RunSelected synchronizes the stored selection on demand, bypassing the gate.
func (x *UseCase) RunSelected(ctx context.Context) (*model.SyncReport, error) {
	if x.clients.SelectionRepository() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "selection repository is not configured")
	}
	return x.runBatch(ctx, model.RunModeManual, x.loadSelection(ctx), logging.CtxTime(ctx)), nil
}

// RunOne synchronizes a single repository. Every failure is returned as an outcome.
func (x *UseCase) RunOne(ctx context.Context, repo types.RepoName) model.SyncOutcome {
	return x.runOne(ctx, repo, model.RunModeManual, logging.CtxTime(ctx))
}

func newReport(mode model.RunMode, startedAt time.Time) *model.SyncReport {
	return &model.SyncReport{
		ID:        types.NewRunID(),
		Mode:      mode,
		StartedAt: startedAt,
		Outcomes:  []model.SyncOutcome{},
	}
}

// runBatch processes repos with now as the run time. FinishedAt is now plus the elapsed
// wall time of the batch.
func (x *UseCase) runBatch(ctx context.Context, mode model.RunMode, repos model.Selection, now time.Time) *model.SyncReport {
	clockStart := logging.CtxTime(ctx)
	report := newReport(mode, now)
	ctx = logging.WithRunID(ctx, report.ID)
	logger := logging.From(ctx)

	logger.Info("Starting synchronization run",
		slog.String("mode", string(mode)),
		slog.Int("repositories", len(repos)),
		slog.Int("concurrency", x.concurrency),
	)

	// Outcomes are stored by input index so the report order does not depend on scheduling.
	outcomes := make([]model.SyncOutcome, len(repos))
	var eg errgroup.Group
	eg.SetLimit(x.concurrency)
	for i, repo := range repos {
		eg.Go(func() error {
			outcomes[i] = x.runOne(ctx, repo, mode, now)
			return nil
		})
	}
	_ = eg.Wait()

	for _, outcome := range outcomes {
		report.Add(outcome)
	}
	report.FinishedAt = now.Add(logging.CtxTime(ctx).Sub(clockStart))

	logger.Info("Synchronization run completed",
		slog.String("mode", string(mode)),
		slog.Int("attempted", report.Attempted),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
	)
	if report.Failed > 0 {
		logger.Warn("Some repositories failed to synchronize",
			slog.Any("failed", report.FailedRepos()),
		)
	}

	x.recordReport(ctx, report)
	metrics.ObserveReport(report)

	return report
}

func (x *UseCase) runOne(ctx context.Context, repo types.RepoName, mode model.RunMode, now time.Time) model.SyncOutcome {
	logger := logging.From(ctx).With(slog.Any("repo", repo))

	if x.clients.GitHub() == nil {
		return model.SyncOutcome{Repository: repo, Detail: "GitHub client is not configured"}
	}

	x.repoLocks.Lock(repo.String())
	defer func() {
		_ = x.repoLocks.Unlock(repo.String())
	}()

	var outcome model.SyncOutcome
	attempt := func() (model.SyncOutcome, error) {
		outcome = x.writeContent(ctx, repo, mode, now)
		if !outcome.Success && isConflictStatus(outcome.StatusCode) {
			return outcome, types.ErrRevisionConflict
		}
		return outcome, nil
	}

	if x.conflictRetries == 0 {
		_, _ = attempt()
	} else {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = conflictRetryInterval
		_, _ = backoff.Retry(ctx, attempt,
			backoff.WithBackOff(b),
			backoff.WithMaxTries(x.conflictRetries+1),
			backoff.WithNotify(func(err error, d time.Duration) {
				logger.Info("Write conflict, retrying with a fresh revision", slog.Duration("wait", d))
			}),
		)
	}

	if outcome.Success {
		logger.Info("Repository synchronized",
			slog.Bool("created", outcome.Created),
			slog.Int("status", outcome.StatusCode),
		)
	} else {
		logger.Warn("Failed to synchronize repository",
			slog.Int("status", outcome.StatusCode),
			slog.String("detail", outcome.Detail),
		)
	}

	return outcome
}

// writeContent reads the current revision, generates the content for now and writes it with
// that revision. The revision is used for exactly one write.
func (x *UseCase) writeContent(ctx context.Context, repo types.RepoName, mode model.RunMode, now time.Time) model.SyncOutcome {
	revision := x.currentRevision(ctx, repo)

	resp, err := x.clients.GitHub().PutFile(ctx, &model.PutFileInput{
		Repo:     repo,
		Path:     x.filePath,
		Branch:   x.branch,
		Message:  CommitMessage(now, mode),
		Content:  []byte(GenerateContent(repo, now)),
		Revision: revision,
	})
	if err != nil {
		return model.SyncOutcome{
			Repository: repo,
			Detail:     err.Error(),
		}
	}

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		return model.SyncOutcome{
			Repository: repo,
			Success:    true,
			StatusCode: resp.StatusCode,
			Created:    revision == "",
		}
	}

	return model.SyncOutcome{
		Repository: repo,
		StatusCode: resp.StatusCode,
		Detail:     failureDetail(resp.StatusCode, resp.Message),
	}
}

// currentRevision returns the revision of the file, or empty when the file should be created.
// A failed read does not block the write.
func (x *UseCase) currentRevision(ctx context.Context, repo types.RepoName) types.Revision {
	resp, err := x.clients.GitHub().GetFile(ctx, repo, x.filePath, x.branch)
	if err != nil {
		logging.From(ctx).Warn("Failed to read current file, writing without revision",
			slog.Any("repo", repo),
			slog.Any("error", err),
		)
		return ""
	}
	if resp.StatusCode != http.StatusOK || resp.Body == nil {
		logging.From(ctx).Debug("File not found, creating",
			slog.Any("repo", repo),
			slog.Int("status", resp.StatusCode),
		)
		return ""
	}
	return resp.Body.Revision
}

func isConflictStatus(code int) bool {
	return code == http.StatusConflict || code == http.StatusUnprocessableEntity
}

func failureDetail(status int, message string) string {
	if message == "" {
		return fmt.Sprintf("status %d", status)
	}
	return fmt.Sprintf("status %d: %s", status, message)
}
