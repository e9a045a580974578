package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/branchsite/pkg/domain/types"
)

type Webhook struct {
	secret types.WebhookSecret `masq:"secret"`
}

func (x *Webhook) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "webhook-secret",
			Usage:       "GitHub webhook secret (signature is not checked if empty)",
			Category:    "Webhook",
			Destination: (*string)(&x.secret),
			Sources:     cli.EnvVars("BRANCHSITE_WEBHOOK_SECRET"),
		},
	}
}

func (x Webhook) Secret() types.WebhookSecret {
	return x.secret
}

func (x Webhook) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("Secret.len", len(x.secret)),
	)
}
