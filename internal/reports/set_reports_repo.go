package reports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const setReportEntity = "set report"

const (
	insertSetReportSQL = `
		INSERT INTO set_report
		(workout_report_id, exercise_id, split, workout_plan_id,
		 execution_order, set_number, reps, weight, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING workout_report_id
	`
	listSetReportsByWorkoutSQL = `
		SELECT sr.workout_report_id, sr.exercise_id, sr.split, sr.workout_plan_id,
		       sr.execution_order, sr.set_number, sr.reps, sr.weight, sr.notes,
		       e.exercise_name, e.description
		FROM set_report sr
		JOIN exercise e ON e.exercise_id = sr.exercise_id
		JOIN workout_plan wp ON wp.workout_plan_id = sr.workout_plan_id
		WHERE sr.workout_report_id = $1
		AND wp.user_id = $2
		ORDER BY sr.execution_order, sr.set_number
	`
	listSetReportsByExerciseSQL = `
		SELECT sr.workout_report_id, sr.exercise_id, sr.split, sr.workout_plan_id,
		       sr.execution_order, sr.set_number, sr.reps, sr.weight, sr.notes,
		       wr.report_date
		FROM set_report sr
		JOIN workout_report wr ON wr.workout_report_id = sr.workout_report_id
		JOIN workout_plan wp ON wp.workout_plan_id = sr.workout_plan_id
		WHERE sr.exercise_id = $1
		AND wp.user_id = $2
		ORDER BY wr.report_date DESC, sr.set_number
		LIMIT $3 OFFSET $4
	`
	deleteSetReportsSQL = `
		DELETE FROM set_report
		WHERE workout_report_id = $1
		AND workout_plan_id = ANY($2)
		RETURNING workout_report_id
	`
	deleteSetReportSQL = `
		DELETE FROM set_report
		WHERE workout_report_id = $1 AND exercise_id = $2 AND split = $3
		AND workout_plan_id = $4 AND set_number = $5
		AND workout_plan_id = ANY($6)
		RETURNING workout_report_id
	`
)

// CreateSetReport logs one set of a report. The report and the prescription
// it points at are checked by the storage foreign keys only.
func (r *Repo) CreateSetReport(ctx context.Context, set SetReport) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.sets.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("report.id", set.ReportID))
	span.SetAttributes(attribute.Int("exercise.id", set.ExerciseID))
	span.SetAttributes(attribute.Int("set_number", set.SetNumber))

	var reportID int
	err = r.db.QueryRow(
		ctx,
		insertSetReportSQL,
		set.ReportID,
		set.ExerciseID,
		set.Split,
		set.PlanID,
		set.ExecutionOrder,
		set.SetNumber,
		set.Reps,
		set.Weight,
		set.Notes,
	).Scan(&reportID)
	if err != nil {
		return 0, store.Translate(store.OpCreate, setReportEntity, err)
	}
	return reportID, nil
}

// ListSetReportsByWorkout lists the sets of a report in the order they were
// performed.
func (r *Repo) ListSetReportsByWorkout(ctx context.Context, reportID, ownerID int) (_ []WorkoutSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.sets.list_by_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("report.id", reportID))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	rows, err := r.db.Query(ctx, listSetReportsByWorkoutSQL, reportID, ownerID)
	if err != nil {
		return nil, store.Translate(store.OpRead, setReportEntity, err)
	}

	sets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (WorkoutSet, error) {
		var s WorkoutSet
		err := row.Scan(
			&s.ReportID,
			&s.ExerciseID,
			&s.Split,
			&s.PlanID,
			&s.ExecutionOrder,
			&s.SetNumber,
			&s.Reps,
			&s.Weight,
			&s.Notes,
			&s.ExerciseName,
			&s.ExerciseDescription,
		)
		return s, err
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, setReportEntity, err)
	}
	return sets, nil
}

// ListSetReportsByExercise is the history of an exercise: most recent
// session first, sets of a session in order.
func (r *Repo) ListSetReportsByExercise(ctx context.Context, exerciseID, ownerID int, page store.Page) (_ []ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.sets.list_by_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	limit, offset := page.Bounds(store.DefaultReportLimit)
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))
	span.SetAttributes(attribute.Int("owner.id", ownerID))
	span.SetAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset))

	rows, err := r.db.Query(ctx, listSetReportsByExerciseSQL, exerciseID, ownerID, limit, offset)
	if err != nil {
		return nil, store.Translate(store.OpRead, setReportEntity, err)
	}

	sets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ExerciseSet, error) {
		var s ExerciseSet
		err := row.Scan(
			&s.ReportID,
			&s.ExerciseID,
			&s.Split,
			&s.PlanID,
			&s.ExecutionOrder,
			&s.SetNumber,
			&s.Reps,
			&s.Weight,
			&s.Notes,
			&s.ReportDate,
		)
		return s, err
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, setReportEntity, err)
	}
	return sets, nil
}

// DeleteSetReports removes every set of a report and returns how many were
// deleted. Nothing deleted is an internal error.
func (r *Repo) DeleteSetReports(ctx context.Context, reportID, ownerID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.sets.delete_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("report.id", reportID))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var deleted int
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		planIDs, err := ownedPlanIDs(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		if len(planIDs) == 0 {
			return nothingDeleted(setReportEntity)
		}

		rows, err := tx.Query(ctx, deleteSetReportsSQL, reportID, planIDs)
		if err != nil {
			return store.Translate(store.OpDelete, setReportEntity, err)
		}
		deletedIDs, err := pgx.CollectRows(rows, pgx.RowTo[int])
		if err != nil {
			return store.Translate(store.OpDelete, setReportEntity, err)
		}
		if len(deletedIDs) == 0 {
			return nothingDeleted(setReportEntity)
		}
		deleted = len(deletedIDs)
		return nil
	})
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("deleted", deleted))
	return deleted, nil
}

// DeleteSetReport removes a single logged set. Nothing deleted is an
// internal error.
func (r *Repo) DeleteSetReport(ctx context.Context, key SetReportKey, ownerID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.sets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("report.id", key.ReportID))
	span.SetAttributes(attribute.Int("set_number", key.SetNumber))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var reportID int
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		planIDs, err := ownedPlanIDs(ctx, tx, ownerID)
		if err != nil {
			return err
		}
		if len(planIDs) == 0 {
			return nothingDeleted(setReportEntity)
		}

		err = tx.QueryRow(
			ctx,
			deleteSetReportSQL,
			key.ReportID,
			key.ExerciseID,
			key.Split,
			key.PlanID,
			key.SetNumber,
			planIDs,
		).Scan(&reportID)
		if err != nil {
			if isNoRows(err) {
				return nothingDeleted(setReportEntity)
			}
			return store.Translate(store.OpDelete, setReportEntity, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reportID, nil
}
