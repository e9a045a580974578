package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/utils/logging"
)

// validateGitHubEvent validates the signature of a GitHub webhook and returns
// the reason to poll, or an empty string when the event does not change
// branches. The signature is not checked when secret is empty.
func validateGitHubEvent(r *http.Request, secret types.WebhookSecret) (string, error) {
	payload, err := github.ValidatePayload(r, []byte(secret))
	if err != nil {
		return "", goerr.Wrap(err, "validating payload")
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		return "", goerr.Wrap(err, "parsing webhook", goerr.V("event", github.WebHookType(r)))
	}

	logging.From(r.Context()).Info("Received GitHub event", slog.String("type", github.WebHookType(r)))

	return githubEventToPollReason(event), nil
}

func refToBranch(v string) (string, bool) {
	if ref := strings.SplitN(v, "/", 3); len(ref) == 3 && ref[0] == "refs" && ref[1] == "heads" {
		return ref[2], true
	}
	return v, false
}

func githubEventToPollReason(event interface{}) string {
	switch ev := event.(type) {
	case *github.PushEvent:
		branch, ok := refToBranch(ev.GetRef())
		if !ok {
			logging.Default().Debug("ignore push to non-branch ref", slog.String("ref", ev.GetRef()))
			return ""
		}
		return "push " + branch

	case *github.CreateEvent:
		if ev.GetRefType() != "branch" {
			return ""
		}
		return "create " + ev.GetRef()

	case *github.DeleteEvent:
		if ev.GetRefType() != "branch" {
			return ""
		}
		return "delete " + ev.GetRef()

	case *github.PingEvent:
		return "" // ignore

	default:
		logging.Default().Warn("unsupported event", slog.Any("event", fmt.Sprintf("%T", event)))
		return ""
	}
}
