package config

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/infra/ghapi"
	"github.com/urfave/cli/v3"
)

type GitHub struct {
	owner        string
	organization bool
	token        types.GitHubToken `masq:"secret"`
	baseURL      string
	timeout      time.Duration

	appID      types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-owner",
			Usage:       "Owner (user or organization) of the managed repositories",
			Category:    "GitHub",
			Destination: &x.owner,
			Sources:     cli.EnvVars("OCTOSYNC_GITHUB_OWNER"),
		},
		&cli.BoolFlag{
			Name:        "github-org",
			Usage:       "Treat the owner as an organization",
			Category:    "GitHub",
			Destination: &x.organization,
			Sources:     cli.EnvVars("OCTOSYNC_GITHUB_ORG"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "Default GitHub token used when a request carries none",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("OCTOSYNC_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub REST API base URL (for GitHub Enterprise Server)",
			Category:    "GitHub",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("OCTOSYNC_GITHUB_BASE_URL"),
		},
		&cli.DurationFlag{
			Name:        "github-timeout",
			Usage:       "Timeout of one GitHub API call",
			Category:    "GitHub",
			Value:       ghapi.DefaultTimeout,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("OCTOSYNC_GITHUB_TIMEOUT"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (alternative to token)",
			Category:    "GitHub",
			Destination: (*int64)(&x.appID),
			Sources:     cli.EnvVars("OCTOSYNC_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App installation ID (looked up from the owner if omitted)",
			Category:    "GitHub",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("OCTOSYNC_GITHUB_APP_INSTALL_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Category:    "GitHub",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("OCTOSYNC_GITHUB_APP_PRIVATE_KEY"),
		},
	}
}

// NewClient builds the GitHub client. A token takes precedence over App credentials.
// With neither, only requests that carry their own token can reach GitHub.
func (x *GitHub) NewClient(ctx context.Context) (*ghapi.Client, error) {
	if x.owner == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "github-owner is required")
	}

	options := []ghapi.Option{
		ghapi.WithOrganization(x.organization),
		ghapi.WithTimeout(x.timeout),
	}

	switch {
	case x.token != "":
		options = append(options, ghapi.WithToken(x.token))
	case x.appID != 0:
		options = append(options, ghapi.WithApp(x.appID, x.installID, x.privateKey))
	}

	if x.baseURL != "" {
		u, err := url.Parse(x.baseURL)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid github-base-url",
				goerr.V("url", x.baseURL),
				goerr.V("error", err),
			)
		}
		options = append(options, ghapi.WithBaseURL(u))
	}

	return ghapi.New(ctx, types.GitHubOwner(x.owner), options...)
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Owner", x.owner),
		slog.Bool("Organization", x.organization),
		slog.Int("Token.len", len(x.token)),
		slog.String("BaseURL", x.baseURL),
		slog.Duration("Timeout", x.timeout),
		slog.Int64("AppID", int64(x.appID)),
		slog.Int64("InstallID", int64(x.installID)),
		slog.Int("PrivateKey.len", len(x.privateKey)),
	)
}
