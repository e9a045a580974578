package bq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m-mizutani/branchsite/pkg/domain/model"
	"github.com/m-mizutani/branchsite/pkg/domain/types"
	"github.com/m-mizutani/branchsite/pkg/infra/bq"
	"github.com/m-mizutani/branchsite/pkg/utils/testutil"
)

func TestClient(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")

	ctx := context.Background()

	tblName := types.BQTableID(time.Now().Format("transition_test_20060102_150405"))
	client := gt.R1(bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)).NoError(t)

	schema := gt.R1(bqs.Infer(model.TransitionEvent{})).NoError(t)

	t.Run("missing table has no metadata", func(t *testing.T) {
		md, err := client.GetMetadata(ctx)
		gt.NoError(t, err)
		gt.True(t, md == nil)
	})

	t.Run("create table and insert events", func(t *testing.T) {
		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))

		now := time.Now()
		gt.NoError(t, client.Insert(ctx, schema, []any{
			&model.TransitionEvent{CycleID: "c1", BranchID: "main", Edge: "clone", From: "uncloned", To: "cloned", Outcome: model.OutcomeSuccess, StartedAt: now},
			&model.TransitionEvent{CycleID: "c1", BranchID: "main", Edge: "build", From: "cloned", To: "cloned", Outcome: model.OutcomeFailure, Error: "exit 1", StartedAt: now},
		}))
	})
}

func TestInsertWithoutRows(t *testing.T) {
	var client bq.Client
	gt.NoError(t, client.Insert(context.Background(), nil, nil))
}

func TestProtoFieldJSONName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "keeps valid names", input: "branch_id", want: "branch_id"},
		{name: "renames invalid names", input: "ruby-advisory-db", want: "col_cnVieS1hZHZpc29yeS1kYg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, bq.ProtoFieldJSONName(tc.input), tc.want)
		})
	}
}

func TestSanitizeProtoJSON(t *testing.T) {
	raw := []byte(`{"labels":{"feature-x":1,"main":2}}`)
	sanitized := gt.R1(bq.SanitizeProtoJSON(raw)).NoError(t)

	dec := json.NewDecoder(bytes.NewReader(sanitized))
	dec.UseNumber()
	payload := map[string]any{}
	gt.NoError(t, dec.Decode(&payload))

	labels, ok := payload["labels"].(map[string]any)
	gt.True(t, ok)
	_, renamed := labels[bq.ProtoFieldJSONName("feature-x")]
	gt.True(t, renamed)
	_, original := labels["feature-x"]
	gt.False(t, original)
}

func TestIsSchemaNotFoundError(t *testing.T) {
	schemaErr := status.Error(codes.InvalidArgument, "Input schema has more fields than BigQuery schema, extra fields: 'field1'")

	gt.True(t, bq.IsSchemaNotFoundError(schemaErr))
	gt.True(t, bq.IsSchemaNotFoundError(goerr.Wrap(goerr.Wrap(schemaErr, "level 1"), "level 2")))
	gt.False(t, bq.IsSchemaNotFoundError(status.Error(codes.InvalidArgument, "Invalid request parameters")))
	gt.False(t, bq.IsSchemaNotFoundError(status.Error(codes.PermissionDenied, "Input schema has more fields than BigQuery schema")))
	gt.False(t, bq.IsSchemaNotFoundError(errors.New("some other error")))
	gt.False(t, bq.IsSchemaNotFoundError(nil))
}
