package ghapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

func (x *Client) installationHTTPClient(installID types.GitHubAppInstallID) (*http.Client, error) {
	itr, err := ghinstallation.New(x.transport, int64(x.appID), int64(installID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create installation transport",
			goerr.V("appID", x.appID),
			goerr.V("installID", installID),
		)
	}
	if x.baseURL != nil {
		itr.BaseURL = strings.TrimRight(x.baseURL.String(), "/")
	}
	return &http.Client{Transport: itr}, nil
}

func (x *Client) lookupInstallationID(ctx context.Context) (types.GitHubAppInstallID, error) {
	atr, err := ghinstallation.NewAppsTransport(x.transport, int64(x.appID), []byte(x.pem))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create app transport")
	}
	if x.baseURL != nil {
		atr.BaseURL = strings.TrimRight(x.baseURL.String(), "/")
	}
	client := x.newGitHubClient(&http.Client{Transport: atr})
	owner := x.owner.String()

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	if x.organization {
		installation, _, err := client.Apps.FindOrganizationInstallation(ctx, owner)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to find organization installation", goerr.V("owner", owner))
		}
		logging.From(ctx).Info("Found organization installation",
			slog.String("owner", owner),
			slog.Int64("installID", installation.GetID()),
		)
		return types.GitHubAppInstallID(installation.GetID()), nil
	}

	installation, _, err := client.Apps.FindUserInstallation(ctx, owner)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to find user installation", goerr.V("owner", owner))
	}
	if installation == nil {
		return 0, goerr.Wrap(types.ErrInvalidGitHubData, "installation not found for owner", goerr.V("owner", owner))
	}

	logging.From(ctx).Info("Found user installation",
		slog.String("owner", owner),
		slog.Int64("installID", installation.GetID()),
	)
	return types.GitHubAppInstallID(installation.GetID()), nil
}
