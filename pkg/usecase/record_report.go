package usecase

import (
	"context"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/utils/errutil"
	"github.com/m-mizutani/octosync/pkg/utils/logging"
)

// recordReport stores a finished run into BigQuery when it is configured. A failure is
// reported and does not change the run result.
func (x *UseCase) recordReport(ctx context.Context, report *model.SyncReport) {
	bq := x.clients.BigQuery()
	if bq == nil {
		return
	}

	if err := insertReport(ctx, bq, report); err != nil {
		errutil.HandleError(ctx, "failed to record sync report", err)
		return
	}

	logging.From(ctx).Debug("Sync report recorded", slog.Any("run_id", report.ID))
}

func insertReport(ctx context.Context, bq interfaces.BigQuery, report *model.SyncReport) error {
	schema, err := createOrUpdateBigQueryTable(ctx, bq, report)
	if err != nil {
		return err
	}

	if err := bq.Insert(ctx, schema, report); err != nil {
		return goerr.Wrap(err, "failed to insert sync report to BigQuery", goerr.V("run_id", report.ID))
	}
	return nil
}

func createOrUpdateBigQueryTable(ctx context.Context, bq interfaces.BigQuery, report *model.SyncReport) (bigquery.Schema, error) {
	schema, err := bqs.Infer(report)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer sync report schema")
	}

	metaData, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
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
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
