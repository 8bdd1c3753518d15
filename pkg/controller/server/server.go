package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/utils/errutil"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
	"github.com/m-mizutani/octosync/pkg/utils/metrics"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is encoded JSON or a fixed string
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, raw)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps err to a status code. Server side failures are reported.
func writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrValidationFailed):
		code = http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidOption):
		code = http.StatusServiceUnavailable
	case errors.Is(err, types.ErrRemoteAPI):
		code = http.StatusBadGateway
	}

	if code >= http.StatusInternalServerError {
		errutil.HandleError(r.Context(), msg, err)
	}
	writeJSON(w, code, &errorResponse{Error: msg})
}

type config struct {
	waitAutoRun bool
}

type Option func(*config)

// WithWaitAutoRun makes POST /api/sync/auto run in the request instead of in the background.
func WithWaitAutoRun(wait bool) Option {
	return func(cfg *config) {
		cfg.waitAutoRun = wait
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	h := &handler{uc: uc, cfg: cfg}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(withCredential)

		r.Get("/status", h.getStatus)
		r.Post("/sync", h.postSync)
		r.Post("/sync/auto", h.postSyncAuto)
		r.Get("/selection", h.getSelection)
		r.Put("/selection", h.putSelection)
		r.Get("/repos", h.getRepos)
		r.Post("/repos", h.postRepos)
		r.Post("/repos/{repo}/sync", h.postSyncOne)
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
