package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	RequestID string
	ReleaseID string

	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string
	GitHubToken         string
	WebhookSecret       string

	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

// NewReleaseID returns a sortable identifier for a published release directory.
func NewReleaseID() ReleaseID {
	return ReleaseID(uuid.Must(uuid.NewV7()).String())
}

func (x RequestID) String() string       { return string(x) }
func (x ReleaseID) String() string       { return string(x) }
func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

func (x WebhookSecret) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x WebhookSecret) String() string {
	return "***********"
}
