package metrics

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	runTotals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "octosync_sync_runs_total",
			Help: "Total number of synchronization runs by mode and result",
		},
		[]string{"mode", "result"},
	)
	outcomeTotals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "octosync_sync_outcomes_total",
			Help: "Total number of per-repository synchronization outcomes",
		},
		[]string{"mode", "result"},
	)
	githubRequestTotals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "octosync_github_requests_total",
			Help: "Total number of GitHub REST calls by operation and status code",
		},
		[]string{"operation", "status"},
	)
	lastAutomaticRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "octosync_last_automatic_run_timestamp_seconds",
			Help: "Unix time of the last automatic run that was started",
		},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveReport counts a finished run and its outcomes.
func ObserveReport(report *model.SyncReport) {
	if report == nil {
		return
	}
	mode := string(report.Mode)

	switch {
	case report.Skipped:
		runTotals.WithLabelValues(mode, "skipped").Inc()
		return
	case report.Failed > 0:
		runTotals.WithLabelValues(mode, "partial").Inc()
	default:
		runTotals.WithLabelValues(mode, "completed").Inc()
	}

	if report.Mode == model.RunModeAutomatic {
		lastAutomaticRun.Set(float64(report.StartedAt.Unix()))
	}

	outcomeTotals.WithLabelValues(mode, "success").Add(float64(report.Succeeded))
	outcomeTotals.WithLabelValues(mode, "failure").Add(float64(report.Failed))
}

// ObserveAbortedRun counts a run that could not start processing.
func ObserveAbortedRun(mode model.RunMode) {
	runTotals.WithLabelValues(string(mode), "aborted").Inc()
}

// ObserveGitHubRequest counts one REST call. Status 0 means no response was received.
func ObserveGitHubRequest(operation string, status int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	githubRequestTotals.WithLabelValues(operation, label).Inc()
}
