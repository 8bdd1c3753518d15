package bq_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
	"github.com/m-mizutani/octosync/pkg/infra/bq"
	"github.com/m-mizutani/octosync/pkg/utils/testutil"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

func TestNew(t *testing.T) {
	t.Run("missing table is rejected", func(t *testing.T) {
		_, err := bq.New(context.Background(), "my-project", "my_dataset", "")
		gt.Error(t, err)
	})
}

func TestClient(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")

	ctx := context.Background()

	tblName := types.BQTableID(time.Now().Format("sync_report_test_20060102_150405"))
	client := gt.R1(bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName)).NoError(t)
	t.Cleanup(func() { _ = client.Close() })

	schema := gt.R1(bqs.Infer(&model.SyncReport{})).NoError(t)

	t.Run("metadata of missing table is nil", func(t *testing.T) {
		md, err := client.GetMetadata(ctx)
		gt.NoError(t, err)
		gt.True(t, md == nil)
	})

	t.Run("create table and insert report", func(t *testing.T) {
		gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
			Name:   tblName.String(),
			Schema: schema,
		}))

		report := &model.SyncReport{
			ID:         types.NewRunID(),
			Mode:       model.RunModeManual,
			StartedAt:  time.Now(),
			FinishedAt: time.Now(),
		}
		report.Add(model.SyncOutcome{Repository: "alpha", Success: true, StatusCode: 200})
		gt.NoError(t, client.Insert(ctx, schema, report))
	})
}

func TestImpersonation(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_PROJECT_ID")
	datasetID := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_DATASET_ID")
	serviceAccount := testutil.GetEnvOrSkip(t, "TEST_BIGQUERY_IMPERSONATE_SERVICE_ACCOUNT")

	ctx := context.Background()

	ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
		TargetPrincipal: serviceAccount,
		Scopes: []string{
			"https://www.googleapis.com/auth/bigquery",
			"https://www.googleapis.com/auth/cloud-platform",
		},
	})
	gt.NoError(t, err)

	tblName := types.BQTableID(time.Now().Format("impersonation_test_20060102_150405"))
	client := gt.R1(bq.New(ctx, types.GoogleProjectID(projectID), types.BQDatasetID(datasetID), tblName, option.WithTokenSource(ts))).NoError(t)

	msg := struct {
		Msg string
	}{
		Msg: "Hello, BigQuery: " + time.Now().String(),
	}
	schema := gt.R1(bqs.Infer(msg)).NoError(t)

	gt.NoError(t, client.CreateTable(ctx, &bigquery.TableMetadata{
		Name:   tblName.String(),
		Schema: schema,
	}))
	gt.NoError(t, client.Insert(ctx, schema, &msg))
}
