package config

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra/bq"
)

// BigQuery configures the transition history export.
type BigQuery struct {
	projectID       string
	datasetID       string
	tableID         string
	credentialsFile string
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID (export disabled if empty)",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("BRANCHSITE_BIGQUERY_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("BRANCHSITE_BIGQUERY_DATASET_ID"),
			Destination: &x.datasetID,
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID of transition events",
			Category:    "BigQuery",
			Value:       "transitions",
			Sources:     cli.EnvVars("BRANCHSITE_BIGQUERY_TABLE_ID"),
			Destination: &x.tableID,
		},
		&cli.StringFlag{
			Name:        "bigquery-credentials",
			Usage:       "Service account credentials file (default: application default credentials)",
			Category:    "BigQuery",
			Sources:     cli.EnvVars("BRANCHSITE_BIGQUERY_CREDENTIALS"),
			Destination: &x.credentialsFile,
		},
	}
}

func (x *BigQuery) Enabled() bool {
	return x.projectID != "" && x.datasetID != ""
}

// NewClient returns nil when export is not configured.
func (x *BigQuery) NewClient(ctx context.Context) (interfaces.BigQuery, error) {
	if !x.Enabled() {
		return nil, nil
	}

	var options []option.ClientOption
	if x.credentialsFile != "" {
		options = append(options, option.WithCredentialsFile(x.credentialsFile))
	}

	client, err := bq.New(ctx,
		types.GoogleProjectID(x.projectID),
		types.BQDatasetID(x.datasetID),
		types.BQTableID(x.tableID),
		options...,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("ProjectID", x.projectID),
		slog.String("DatasetID", x.datasetID),
		slog.String("TableID", x.tableID),
		slog.String("CredentialsFile", x.credentialsFile),
	)
}
