package types

import (
	"log/slog"
	"net/url"
)

type (
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string
	GitHubToken         string
	GitHubOwner         string
	RepoName            string
	BranchName          string
	FilePath            string

	// Revision is the blob sha returned by the contents API. It authorizes exactly one update.
	Revision string
)

func (x RepoName) String() string { return string(x) }

// PathEscape returns the name percent-encoded for use as a single URL path segment.
func (x RepoName) PathEscape() string { return url.PathEscape(string(x)) }

func (x GitHubOwner) String() string { return string(x) }
func (x BranchName) String() string  { return string(x) }
func (x FilePath) String() string    { return string(x) }
func (x Revision) String() string    { return string(x) }

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}
