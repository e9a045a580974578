package errutil

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

// tagKeys are goerr values promoted to Sentry tags so that events can be
// grouped by branch and edge.
var tagKeys = map[string]struct{}{
	"branch": {},
	"edge":   {},
}

// HandleError logs err and sends it to Sentry. It is a no-op for nil err.
func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				key := fmt.Sprintf("%v", k)
				if _, ok := tagKeys[key]; ok {
					scope.SetTag(key, fmt.Sprintf("%v", v))
				}
				scope.SetExtra(key, v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error(msg,
		"error", err,
		"sentry.EventID", evID,
	)
}
