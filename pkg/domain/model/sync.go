package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/octosync/pkg/domain/types"
)

// Selection is the ordered list of repositories enrolled for automatic synchronization.
type Selection []types.RepoName

// Normalize drops blank entries and surrounding whitespace. Order and duplicates are kept.
func (x Selection) Normalize() Selection {
	out := make(Selection, 0, len(x))
	for _, name := range x {
		trimmed := types.RepoName(strings.TrimSpace(string(name)))
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func (x Selection) Strings() []string {
	out := make([]string, len(x))
	for i, name := range x {
		out[i] = string(name)
	}
	return out
}

func NewSelection(names ...string) Selection {
	out := make(Selection, len(names))
	for i, name := range names {
		out[i] = types.RepoName(name)
	}
	return out
}

type RunMode string

const (
	RunModeAutomatic RunMode = "automatic"
	RunModeManual    RunMode = "manual"
)

type SyncOutcome struct {
	Repository types.RepoName `json:"repository" bigquery:"repository"`
	Success    bool           `json:"success" bigquery:"success"`
	Detail     string         `json:"detail" bigquery:"detail"`
	StatusCode int            `json:"status_code" bigquery:"status_code"`
	Created    bool           `json:"created" bigquery:"created"`
}

// SyncReport aggregates the outcomes of one synchronization run. Skipped is set when an
// automatic run was not due, in which case nothing was attempted.
type SyncReport struct {
	ID         types.RunID   `json:"id" bigquery:"id"`
	Mode       RunMode       `json:"mode" bigquery:"mode"`
	Skipped    bool          `json:"skipped" bigquery:"skipped"`
	StartedAt  time.Time     `json:"started_at" bigquery:"started_at"`
	FinishedAt time.Time     `json:"finished_at" bigquery:"finished_at"`
	Attempted  int           `json:"attempted" bigquery:"attempted"`
	Succeeded  int           `json:"succeeded" bigquery:"succeeded"`
	Failed     int           `json:"failed" bigquery:"failed"`
	Outcomes   []SyncOutcome `json:"outcomes" bigquery:"outcomes"`
}

// Add appends an outcome and updates the counters.
func (x *SyncReport) Add(outcome SyncOutcome) {
	x.Outcomes = append(x.Outcomes, outcome)
	x.Attempted++
	if outcome.Success {
		x.Succeeded++
	} else {
		x.Failed++
	}
}

func (x *SyncReport) FailedRepos() []types.RepoName {
	var out []types.RepoName
	for _, o := range x.Outcomes {
		if !o.Success {
			out = append(out, o.Repository)
		}
	}
	return out
}

// GateStatus describes the automatic run schedule.
type GateStatus struct {
	LastRun         *time.Time `json:"last_run,omitempty"`
	NextRun         time.Time  `json:"next_run"`
	Due             bool       `json:"due"`
	IntervalSeconds int64      `json:"interval_seconds"`
}

// IsRunDue reports whether an automatic run may start at now given the last recorded start.
// Both times are compared at second resolution. A nil last means no run was recorded.
func IsRunDue(last *time.Time, now time.Time, interval time.Duration) bool {
	if last == nil {
		return true
	}
	return now.Unix()-last.Unix() >= int64(interval/time.Second)
}

type CreateRepositoryResult struct {
	Repository *GitHubRepository `json:"repository"`
	Readme     SyncOutcome       `json:"readme"`
}
