package ghapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/types"
)

const DefaultTimeout = 30 * time.Second

// Client implements interfaces.GitHub over the GitHub REST API for repositories of one owner.
type Client struct {
	owner        types.GitHubOwner
	organization bool
	timeout      time.Duration
	baseURL      *url.URL
	transport    http.RoundTripper

	token     types.GitHubToken
	appID     types.GitHubAppID
	installID types.GitHubAppInstallID
	pem       types.GitHubAppPrivateKey

	defaultClient *http.Client
}

var _ interfaces.GitHub = (*Client)(nil)

type Option func(*Client)

// WithToken authenticates with a personal access token.
func WithToken(token types.GitHubToken) Option {
	return func(x *Client) {
		x.token = token
	}
}

// WithApp authenticates as a GitHub App installation. If installID is zero, the installation
// of the owner is looked up when the client is built.
func WithApp(appID types.GitHubAppID, installID types.GitHubAppInstallID, pem types.GitHubAppPrivateKey) Option {
	return func(x *Client) {
		x.appID = appID
		x.installID = installID
		x.pem = pem
	}
}

// WithOrganization marks the owner as an organization. Repository listing and creation then
// use the organization endpoints.
func WithOrganization(org bool) Option {
	return func(x *Client) {
		x.organization = org
	}
}

func WithTimeout(d time.Duration) Option {
	return func(x *Client) {
		x.timeout = d
	}
}

// WithBaseURL points the client at a GitHub Enterprise host or a test server.
func WithBaseURL(u *url.URL) Option {
	return func(x *Client) {
		copied := *u
		if !strings.HasSuffix(copied.Path, "/") {
			copied.Path += "/"
		}
		x.baseURL = &copied
	}
}

func WithTransport(tr http.RoundTripper) Option {
	return func(x *Client) {
		x.transport = tr
	}
}

func New(ctx context.Context, owner types.GitHubOwner, options ...Option) (*Client, error) {
	if owner == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "owner is empty")
	}

	client := &Client{
		owner:     owner,
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(client)
	}

	if client.timeout <= 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "timeout must be positive", goerr.V("timeout", client.timeout))
	}

	switch {
	case client.token != "":
		client.defaultClient = client.tokenHTTPClient(client.token)

	case client.appID != 0:
		if client.pem == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "private key is empty")
		}
		if client.installID == 0 {
			installID, err := client.lookupInstallationID(ctx)
			if err != nil {
				return nil, err
			}
			client.installID = installID
		}

		httpClient, err := client.installationHTTPClient(client.installID)
		if err != nil {
			return nil, err
		}
		client.defaultClient = httpClient

	default:
		// Without a default credential every request must carry its own token.
	}

	return client, nil
}

func (x *Client) Owner() types.GitHubOwner {
	return x.owner
}

func (x *Client) newGitHubClient(httpClient *http.Client) *github.Client {
	client := github.NewClient(httpClient)
	if x.baseURL != nil {
		client.BaseURL = x.baseURL
	}
	return client
}
