package errutil_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/utils/errutil"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

func TestHandleError(t *testing.T) {
	t.Run("handle plain error", func(t *testing.T) {
		errutil.HandleError(context.Background(), "test message", errors.New("test error"))
	})

	t.Run("handle goerr with values inside a run", func(t *testing.T) {
		ctx := logging.WithRunID(context.Background(), types.NewRunID())
		err := goerr.Wrap(types.ErrRemoteAPI, "write failed", goerr.V("repo", "alpha"))
		errutil.HandleError(ctx, "test message", err)
	})

	t.Run("handle nil error", func(t *testing.T) {
		errutil.HandleError(context.Background(), "test message", nil)
	})
}
