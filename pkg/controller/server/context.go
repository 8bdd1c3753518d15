package server

import (
	"context"

	"github.com/m-mizutani/octosync/pkg/infra/ghapi"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

// DetachContext creates a new context.Background() based context that inherits
// logger, request ID, time function and the per-user GitHub token from the original context.
// The original request context is cancelled when the HTTP request completes, so background
// runs started by a handler must use the detached one.
func DetachContext(ctx context.Context) context.Context {
	bgCtx := context.Background()

	bgCtx = logging.With(bgCtx, logging.From(ctx))
	bgCtx = logging.InheritContextValues(bgCtx, ctx)
	bgCtx = ghapi.CtxWithToken(bgCtx, ghapi.CtxToken(ctx))

	return bgCtx
}
