package errutil_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/utils/errutil"
)

func TestHandleError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		errutil.HandleError(context.Background(), "test message", errors.New("test error"))
	})

	t.Run("goerr with branch and edge values", func(t *testing.T) {
		err := goerr.New("build failed", goerr.V("branch", "main"), goerr.V("edge", "build"))
		errutil.HandleError(context.Background(), "test message", err)
	})

	t.Run("nil error", func(t *testing.T) {
		errutil.HandleError(context.Background(), "test message", nil)
	})
}
