package ghapi

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"golang.org/x/oauth2"
)

type ctxTokenKey struct{}

// CtxWithToken binds a per-user token to the context. Requests issued with the context
// authenticate with it instead of the client's default credential.
func CtxWithToken(ctx context.Context, token types.GitHubToken) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// CtxToken returns the per-user token bound by CtxWithToken, or empty.
func CtxToken(ctx context.Context) types.GitHubToken {
	if token, ok := ctx.Value(ctxTokenKey{}).(types.GitHubToken); ok {
		return token
	}
	return ""
}

func (x *Client) tokenHTTPClient(token types.GitHubToken) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(token)}),
			Base:   x.transport,
		},
	}
}

// resolve picks the credential for a request: the per-user token when present, otherwise
// the default credential.
func (x *Client) resolve(ctx context.Context) (*http.Client, bool, error) {
	if token := CtxToken(ctx); token != "" {
		return x.tokenHTTPClient(token), false, nil
	}
	if x.defaultClient == nil {
		return nil, false, goerr.Wrap(types.ErrInvalidOption, "no GitHub credential is configured")
	}
	return x.defaultClient, x.appID != 0, nil
}
