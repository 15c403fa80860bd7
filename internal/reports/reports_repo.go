package reports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const reportEntity = "workout report"

const (
	insertReportSQL = `
		INSERT INTO workout_report (workout_plan_id, report_date, split)
		VALUES ($1, $2, $3)
		RETURNING workout_report_id
	`
	getReportSQL = `
		SELECT wr.workout_report_id, wr.workout_plan_id, wr.report_date, wr.split,
		       wp.user_id, wp.workout_plan_name
		FROM workout_report wr
		JOIN workout_plan wp ON wp.workout_plan_id = wr.workout_plan_id
		WHERE wr.workout_report_id = $1 AND wp.user_id = $2
	`
	listReportsByPlanSQL = `
		SELECT wr.workout_report_id, wr.workout_plan_id, wr.report_date, wr.split
		FROM workout_report wr
		JOIN workout_plan wp ON wp.workout_plan_id = wr.workout_plan_id
		WHERE wr.workout_plan_id = $1 AND wp.user_id = $2
		ORDER BY wr.report_date DESC
		LIMIT $3 OFFSET $4
	`
	deleteReportSetsSQL = `
		DELETE FROM set_report
		WHERE workout_report_id = $1
		AND workout_report_id IN (
			SELECT workout_report_id
			FROM workout_report
			WHERE workout_plan_id = ANY($2)
		)
	`
	deleteReportSQL = `
		DELETE FROM workout_report
		WHERE workout_report_id = $1
		AND workout_plan_id = ANY($2)
		RETURNING workout_report_id
	`
)

// CreateReport logs a session. The plan and split are checked by the
// storage foreign keys only, a missing one is a conflict.
func (r *Repo) CreateReport(ctx context.Context, params CreateReportParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", params.PlanID))
	span.SetAttributes(attribute.String("split", params.Split))

	var id int
	err = r.db.QueryRow(
		ctx,
		insertReportSQL,
		params.PlanID,
		params.Date,
		params.Split,
	).Scan(&id)
	if err != nil {
		return 0, store.Translate(store.OpCreate, reportEntity, err)
	}
	return id, nil
}

// GetReport returns the report if its plan belongs to ownerID.
func (r *Repo) GetReport(ctx context.Context, reportID, ownerID int) (_ ReportView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("report.id", reportID))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var view ReportView
	err = r.db.QueryRow(ctx, getReportSQL, reportID, ownerID).Scan(
		&view.ID,
		&view.PlanID,
		&view.Date,
		&view.Split,
		&view.OwnerID,
		&view.PlanName,
	)
	if err != nil {
		return ReportView{}, store.Translate(store.OpRead, reportEntity, err)
	}
	return view, nil
}

// ListReportsByPlan lists the reports of a plan, most recent first.
func (r *Repo) ListReportsByPlan(ctx context.Context, planID, ownerID int, page store.Page) (_ []Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.list_by_plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	limit, offset := page.Bounds(store.DefaultReportLimit)
	span.SetAttributes(attribute.Int("plan.id", planID))
	span.SetAttributes(attribute.Int("owner.id", ownerID))
	span.SetAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset))

	rows, err := r.db.Query(ctx, listReportsByPlanSQL, planID, ownerID, limit, offset)
	if err != nil {
		return nil, store.Translate(store.OpRead, reportEntity, err)
	}

	reports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Report, error) {
		var report Report
		err := row.Scan(&report.ID, &report.PlanID, &report.Date, &report.Split)
		return report, err
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, reportEntity, err)
	}
	return reports, nil
}

// DeleteReport removes a report together with its set reports. Ownership is
// resolved first (the plans of ownerID), then both deletes are scoped to
// those plans. Nothing deleted is an internal error.
func (r *Repo) DeleteReport(ctx context.Context, reportID, ownerID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("report.id", reportID))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var deletedID int
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		planIDs, err := ownedPlanIDs(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		if len(planIDs) == 0 {
			return nothingDeleted(reportEntity)
		}

		if _, err := tx.Exec(ctx, deleteReportSetsSQL, reportID, planIDs); err != nil {
			return store.Translate(store.OpDelete, setReportEntity, err)
		}

		err = tx.QueryRow(ctx, deleteReportSQL, reportID, planIDs).Scan(&deletedID)
		if err != nil {
			if isNoRows(err) {
				return nothingDeleted(reportEntity)
			}
			return store.Translate(store.OpDelete, reportEntity, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedID, nil
}
