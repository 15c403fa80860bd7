package workouts

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const planEntity = "workout plan"

const (
	insertPlanSQL = `
		INSERT INTO workout_plan (user_id, workout_plan_name, workout_plan_goal, active)
		VALUES ($1, $2, $3, $4)
		RETURNING workout_plan_id
	`
	updatePlanSQL = `
		UPDATE workout_plan
		SET workout_plan_name = $1, workout_plan_goal = $2, active = $3
		WHERE workout_plan_id = $4 AND user_id = $5
		RETURNING workout_plan_id
	`
	getPlanByIDSQL = `
		SELECT workout_plan_id, user_id, workout_plan_name, workout_plan_goal, active
		FROM workout_plan
		WHERE workout_plan_id = $1 AND user_id = $2
	`
	getPlanByNameSQL = `
		SELECT workout_plan_id, user_id, workout_plan_name, workout_plan_goal, active
		FROM workout_plan
		WHERE workout_plan_name = $1 AND user_id = $2
	`
	listPlansByUserSQL = `
		SELECT workout_plan_id, user_id, workout_plan_name, workout_plan_goal, active
		FROM workout_plan
		WHERE user_id = $1 AND active = true
		LIMIT $2 OFFSET $3
	`
	deletePlanSQL = `
		DELETE FROM workout_plan
		WHERE workout_plan_id = $1 AND user_id = $2
		RETURNING workout_plan_id
	`
)

func scanPlan(row pgx.Row) (Plan, error) {
	var plan Plan
	err := row.Scan(
		&plan.ID,
		&plan.OwnerID,
		&plan.Name,
		&plan.Goal,
		&plan.Active,
	)
	return plan, err
}

// CreatePlan adds a plan for params.OwnerID. Plan names are unique across
// all users, a taken name is a conflict.
func (r *Repo) CreatePlan(ctx context.Context, params CreatePlanParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.plans.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner.id", params.OwnerID))

	var id int
	err = r.db.QueryRow(
		ctx,
		insertPlanSQL,
		params.OwnerID,
		params.Name,
		params.Goal,
		params.Active,
	).Scan(&id)
	if err != nil {
		return 0, store.Translate(store.OpCreate, planEntity, err)
	}
	return id, nil
}

func (r *Repo) UpdatePlan(ctx context.Context, params UpdatePlanParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.plans.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", params.ID))
	span.SetAttributes(attribute.Int("owner.id", params.OwnerID))

	var id int
	err = r.db.QueryRow(
		ctx,
		updatePlanSQL,
		params.Name,
		params.Goal,
		params.Active,
		params.ID,
		params.OwnerID,
	).Scan(&id)
	if err != nil {
		return 0, store.Translate(store.OpUpdate, planEntity, err)
	}
	return id, nil
}

// GetPlan returns the plan regardless of its active flag.
func (r *Repo) GetPlan(ctx context.Context, id, ownerID int) (_ Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", id))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	plan, err := scanPlan(r.db.QueryRow(ctx, getPlanByIDSQL, id, ownerID))
	if err != nil {
		return Plan{}, store.Translate(store.OpRead, planEntity, err)
	}
	return plan, nil
}

func (r *Repo) GetPlanByName(ctx context.Context, name string, ownerID int) (_ Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.plans.get_by_name")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	plan, err := scanPlan(r.db.QueryRow(ctx, getPlanByNameSQL, name, ownerID))
	if err != nil {
		return Plan{}, store.Translate(store.OpRead, planEntity, err)
	}
	return plan, nil
}

// ListPlansByUser lists the active plans of ownerID.
func (r *Repo) ListPlansByUser(ctx context.Context, ownerID int, page store.Page) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.plans.list_by_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	limit, offset := page.Bounds(store.DefaultCatalogLimit)
	span.SetAttributes(attribute.Int("owner.id", ownerID))
	span.SetAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset))

	rows, err := r.db.Query(ctx, listPlansByUserSQL, ownerID, limit, offset)
	if err != nil {
		return nil, store.Translate(store.OpRead, planEntity, err)
	}

	plans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Plan, error) {
		return scanPlan(row)
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, planEntity, err)
	}
	return plans, nil
}

// DeletePlan removes a plan. Splits are not cascaded, a plan that still has
// splits is a conflict.
func (r *Repo) DeletePlan(ctx context.Context, id, ownerID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.plans.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", id))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var deletedID int
	if err := r.db.QueryRow(ctx, deletePlanSQL, id, ownerID).Scan(&deletedID); err != nil {
		return 0, store.Translate(store.OpDelete, planEntity, err)
	}
	return deletedID, nil
}
