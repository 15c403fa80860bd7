package workouts

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const splitExerciseEntity = "split exercise"

const (
	insertSplitExerciseSQL = `
		INSERT INTO split_exercise
		(workout_plan_id, split, exercise_id, execution_order, sets, reps,
		 advanced_technique, rest_time, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING workout_plan_id
	`
	listSplitExercisesSQL = `
		SELECT se.workout_plan_id, se.split, se.exercise_id, se.execution_order,
		       se.sets, se.reps, se.advanced_technique, se.rest_time, se.active,
		       e.exercise_name, e.description
		FROM split_exercise se
		JOIN exercise e ON e.exercise_id = se.exercise_id
		WHERE se.workout_plan_id = $1
		AND se.split = $2
		AND e.user_id = $3
		AND se.active = true
		ORDER BY se.execution_order
	`
	updateSplitExerciseSQL = `
		UPDATE split_exercise
		SET sets = $1, reps = $2, advanced_technique = $3, rest_time = $4, active = $5
		WHERE workout_plan_id = $6 AND split = $7 AND exercise_id = $8 AND execution_order = $9
		AND workout_plan_id IN (
			SELECT workout_plan_id
			FROM workout_plan
			WHERE user_id = $10
		)
		RETURNING workout_plan_id
	`
	deleteSplitExerciseSQL = `
		DELETE FROM split_exercise
		WHERE workout_plan_id = $1 AND split = $2 AND exercise_id = $3 AND execution_order = $4
		AND workout_plan_id IN (
			SELECT workout_plan_id
			FROM workout_plan
			WHERE user_id = $5
		)
		RETURNING workout_plan_id
	`
)

// AddSplitExercise prescribes an exercise within a split and returns the
// plan id. The same (split, exercise, execution order) twice is a conflict.
func (r *Repo) AddSplitExercise(ctx context.Context, se SplitExercise) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.split_exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", se.PlanID))
	span.SetAttributes(attribute.String("split", se.Split))
	span.SetAttributes(attribute.Int("exercise.id", se.ExerciseID))
	span.SetAttributes(attribute.Int("execution_order", se.ExecutionOrder))

	var planID int
	err = r.db.QueryRow(
		ctx,
		insertSplitExerciseSQL,
		se.PlanID,
		se.Split,
		se.ExerciseID,
		se.ExecutionOrder,
		se.Sets,
		se.Reps,
		se.AdvancedTechnique,
		se.RestTime,
		se.Active,
	).Scan(&planID)
	if err != nil {
		return 0, store.Translate(store.OpCreate, splitExerciseEntity, err)
	}
	return planID, nil
}

// ListSplitExercises lists the active prescriptions of a split in execution
// order. Only exercises owned by ownerID are listed.
func (r *Repo) ListSplitExercises(ctx context.Context, planID int, split string, ownerID int) (_ []SplitExerciseView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.split_exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID))
	span.SetAttributes(attribute.String("split", split))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	rows, err := r.db.Query(ctx, listSplitExercisesSQL, planID, split, ownerID)
	if err != nil {
		return nil, store.Translate(store.OpRead, splitExerciseEntity, err)
	}

	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SplitExerciseView, error) {
		var v SplitExerciseView
		err := row.Scan(
			&v.PlanID,
			&v.Split,
			&v.ExerciseID,
			&v.ExecutionOrder,
			&v.Sets,
			&v.Reps,
			&v.AdvancedTechnique,
			&v.RestTime,
			&v.Active,
			&v.ExerciseName,
			&v.ExerciseDescription,
		)
		return v, err
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, splitExerciseEntity, err)
	}
	return views, nil
}

func (r *Repo) UpdateSplitExercise(ctx context.Context, params UpdateSplitExerciseParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.split_exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", params.Key.PlanID))
	span.SetAttributes(attribute.String("split", params.Key.Split))
	span.SetAttributes(attribute.Int("owner.id", params.OwnerID))

	var planID int
	err = r.db.QueryRow(
		ctx,
		updateSplitExerciseSQL,
		params.Sets,
		params.Reps,
		params.AdvancedTechnique,
		params.RestTime,
		params.Active,
		params.Key.PlanID,
		params.Key.Split,
		params.Key.ExerciseID,
		params.Key.ExecutionOrder,
		params.OwnerID,
	).Scan(&planID)
	if err != nil {
		return 0, store.Translate(store.OpUpdate, splitExerciseEntity, err)
	}
	return planID, nil
}

func (r *Repo) DeleteSplitExercise(ctx context.Context, key SplitExerciseKey, ownerID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.split_exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", key.PlanID))
	span.SetAttributes(attribute.String("split", key.Split))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var planID int
	err = r.db.QueryRow(
		ctx,
		deleteSplitExerciseSQL,
		key.PlanID,
		key.Split,
		key.ExerciseID,
		key.ExecutionOrder,
		ownerID,
	).Scan(&planID)
	if err != nil {
		return 0, store.Translate(store.OpDelete, splitExerciseEntity, err)
	}
	return planID, nil
}
