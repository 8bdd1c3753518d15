package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/utils/errutil"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

const maxBodySize = 1 << 20

type handler struct {
	uc  interfaces.UseCase
	cfg *config
}

type selectionBody struct {
	Repositories []string `json:"repositories"`
}

type createRepositoryBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     *bool  `json:"private"`
}

type acceptedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return goerr.Wrap(types.ErrValidationFailed, "failed to read request body", goerr.V("error", err))
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return goerr.Wrap(types.ErrValidationFailed, "invalid JSON body", goerr.V("error", err))
	}
	return nil
}

func (x *handler) getStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := x.uc.GateStatus(ctx, logging.CtxTime(ctx))
	if err != nil {
		writeError(w, r, "failed to get run gate status", err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// postSync runs the listed repositories, or the stored selection when no list is given.
func (x *handler) postSync(w http.ResponseWriter, r *http.Request) {
	var body selectionBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, "invalid request body", err)
		return
	}

	var report *model.SyncReport
	var err error
	if body.Repositories == nil {
		report, err = x.uc.RunSelected(r.Context())
	} else {
		report, err = x.uc.RunManual(r.Context(), model.NewSelection(body.Repositories...))
	}
	if err != nil {
		writeError(w, r, "failed to run synchronization", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// postSyncAuto is called on every dashboard load. The run goes to the background unless
// waiting was requested, so the caller is never blocked by remote calls.
func (x *handler) postSyncAuto(w http.ResponseWriter, r *http.Request) {
	wait := x.cfg.waitAutoRun
	if v := r.URL.Query().Get("wait"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, "invalid wait parameter", goerr.Wrap(types.ErrValidationFailed, "wait must be a boolean", goerr.V("wait", v)))
			return
		}
		wait = parsed
	}

	if wait {
		ctx := r.Context()
		report, err := x.uc.RunAutomatic(ctx, logging.CtxTime(ctx))
		if err != nil {
			writeError(w, r, "failed to run automatic synchronization", err)
			return
		}
		writeJSON(w, http.StatusOK, report)
		return
	}

	bgCtx := DetachContext(r.Context())
	go runAutomatic(bgCtx, x.uc)

	writeJSON(w, http.StatusAccepted, &acceptedResponse{
		Status:  "accepted",
		Message: "automatic run check enqueued",
	})
}

// runAutomatic is called from a background goroutine with a detached context.
func runAutomatic(ctx context.Context, uc interfaces.UseCase) {
	report, err := uc.RunAutomatic(ctx, logging.CtxTime(ctx))
	if err != nil {
		errutil.HandleError(ctx, "background automatic run failed", err)
		return
	}
	if report.Skipped {
		return
	}
	logging.From(ctx).Info("Background automatic run completed",
		slog.Int("attempted", report.Attempted),
		slog.Int("failed", report.Failed),
	)
}

func (x *handler) postSyncOne(w http.ResponseWriter, r *http.Request) {
	repo := types.RepoName(chi.URLParam(r, "repo"))
	if repo == "" {
		writeError(w, r, "repository is required", goerr.Wrap(types.ErrValidationFailed, "empty repository name"))
		return
	}

	outcome := x.uc.RunOne(r.Context(), repo)
	code := http.StatusOK
	if !outcome.Success {
		code = http.StatusBadGateway
	}
	writeJSON(w, code, &outcome)
}

func (x *handler) getSelection(w http.ResponseWriter, r *http.Request) {
	selection, err := x.uc.GetSelection(r.Context())
	if err != nil {
		writeError(w, r, "failed to get selection", err)
		return
	}
	writeJSON(w, http.StatusOK, &selectionBody{Repositories: selection.Strings()})
}

func (x *handler) putSelection(w http.ResponseWriter, r *http.Request) {
	var body selectionBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, "invalid request body", err)
		return
	}

	stored, err := x.uc.UpdateSelection(r.Context(), model.NewSelection(body.Repositories...))
	if err != nil {
		writeError(w, r, "failed to update selection", err)
		return
	}
	writeJSON(w, http.StatusOK, &selectionBody{Repositories: stored.Strings()})
}

func (x *handler) getRepos(w http.ResponseWriter, r *http.Request) {
	repos, err := x.uc.ListCandidates(r.Context())
	if err != nil {
		writeError(w, r, "failed to list repositories", err)
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

func (x *handler) postRepos(w http.ResponseWriter, r *http.Request) {
	var body createRepositoryBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, r, "invalid request body", err)
		return
	}

	input := &model.CreateRepositoryInput{
		Name:        types.RepoName(body.Name),
		Description: body.Description,
		Private:     true,
	}
	if body.Private != nil {
		input.Private = *body.Private
	}

	result, err := x.uc.CreateRepository(r.Context(), input)
	if err != nil {
		writeError(w, r, "failed to create repository", err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
