package workouts

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const splitEntity = "workout split"

const (
	insertSplitSQL = `
		INSERT INTO workout_split (split, workout_plan_id, active)
		VALUES ($1, $2, $3)
		RETURNING workout_plan_id
	`
	listSplitsSQL = `
		SELECT ws.split, ws.workout_plan_id, ws.active
		FROM workout_split ws
		JOIN workout_plan wp ON wp.workout_plan_id = ws.workout_plan_id
		WHERE ws.workout_plan_id = $1 AND wp.user_id = $2
	`
	updateSplitActiveSQL = `
		UPDATE workout_split
		SET active = $1
		WHERE workout_plan_id = $2 AND split = $3
		AND workout_plan_id IN (
			SELECT workout_plan_id
			FROM workout_plan
			WHERE user_id = $4
		)
		RETURNING workout_plan_id
	`
	deleteSplitSQL = `
		DELETE FROM workout_split
		WHERE workout_plan_id = $1 AND split = $2
		AND workout_plan_id IN (
			SELECT workout_plan_id
			FROM workout_plan
			WHERE user_id = $3
		)
		RETURNING workout_plan_id
	`
)

// AddSplit adds a split to a plan and returns the plan id. A split name is
// unique within its plan.
func (r *Repo) AddSplit(ctx context.Context, params AddSplitParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.splits.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", params.PlanID))
	span.SetAttributes(attribute.String("split", params.Name))

	var planID int
	err = r.db.QueryRow(
		ctx,
		insertSplitSQL,
		params.Name,
		params.PlanID,
		params.Active,
	).Scan(&planID)
	if err != nil {
		return 0, store.Translate(store.OpCreate, splitEntity, err)
	}
	return planID, nil
}

// ListSplits lists the splits of a plan owned by ownerID, inactive ones
// included.
func (r *Repo) ListSplits(ctx context.Context, planID, ownerID int) (_ []Split, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.splits.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	rows, err := r.db.Query(ctx, listSplitsSQL, planID, ownerID)
	if err != nil {
		return nil, store.Translate(store.OpRead, splitEntity, err)
	}

	splits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Split, error) {
		var split Split
		err := row.Scan(&split.Name, &split.PlanID, &split.Active)
		return split, err
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, splitEntity, err)
	}
	return splits, nil
}

func (r *Repo) UpdateSplitActive(ctx context.Context, planID int, split string, ownerID int, active bool) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.splits.update_active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID))
	span.SetAttributes(attribute.String("split", split))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var id int
	if err := r.db.QueryRow(ctx, updateSplitActiveSQL, active, planID, split, ownerID).Scan(&id); err != nil {
		return 0, store.Translate(store.OpUpdate, splitEntity, err)
	}
	return id, nil
}

// DeleteSplit removes a split. Its prescriptions are not cascaded, a split
// that is still referenced is a conflict.
func (r *Repo) DeleteSplit(ctx context.Context, planID int, split string, ownerID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.splits.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID))
	span.SetAttributes(attribute.String("split", split))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var id int
	if err := r.db.QueryRow(ctx, deleteSplitSQL, planID, split, ownerID).Scan(&id); err != nil {
		return 0, store.Translate(store.OpDelete, splitEntity, err)
	}
	return id, nil
}
