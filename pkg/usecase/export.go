package usecase

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/domain/interfaces"
	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/infra/bq"
)

// exportEvents appends transition events to the history table. The table is
// created or its schema extended on demand.
func (x *UseCase) exportEvents(ctx context.Context, events []model.TransitionEvent) error {
	client := x.clients.BigQuery()
	if client == nil || len(events) == 0 {
		return nil
	}

	schema, err := createOrUpdateBigQueryTable(ctx, client, &model.TransitionEvent{})
	if err != nil {
		return err
	}

	rows := make([]any, len(events))
	for i := range events {
		rows[i] = events[i].RawRecord()
	}

	if err := client.Insert(ctx, schema, rows); err != nil {
		if !bq.IsSchemaNotFoundError(err) {
			return goerr.Wrap(err, "failed to insert transition events", goerr.V("count", len(rows)))
		}

		// The write stream may have cached the old schema. Refresh once.
		if schema, err = createOrUpdateBigQueryTable(ctx, client, &model.TransitionEvent{}); err != nil {
			return err
		}
		if err := client.Insert(ctx, schema, rows); err != nil {
			return goerr.Wrap(err, "failed to insert transition events after schema update", goerr.V("count", len(rows)))
		}
	}

	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, client interfaces.BigQuery, data any) (bigquery.Schema, error) {
	schema, err := bqs.Infer(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer transition event schema")
	}

	metaData, err := client.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := client.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := client.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
