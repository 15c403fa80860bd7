package catalog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const (
	insertMuscleSQL = `
		INSERT INTO muscle (user_id, group_name, muscle_name, active)
		VALUES ($1, $2, $3, $4)
		RETURNING muscle_id
	`
	updateMuscleSQL = `
		UPDATE muscle
		SET group_name = $1, muscle_name = $2, active = $3
		WHERE muscle_id = $4 AND user_id = $5
		RETURNING muscle_id
	`
	getMuscleByIDSQL = `
		SELECT muscle_id, user_id, group_name, muscle_name, active
		FROM muscle
		WHERE muscle_id = $1 AND user_id = $2
	`
	getMuscleByNameSQL = `
		SELECT muscle_id, user_id, group_name, muscle_name, active
		FROM muscle
		WHERE muscle_name = $1 AND user_id = $2
	`
	listMusclesByUserSQL = `
		SELECT muscle_id, user_id, group_name, muscle_name, active
		FROM muscle
		WHERE user_id = $1
		LIMIT $2 OFFSET $3
	`
	listDefaultMusclesSQL = `
		SELECT muscle_id, user_id, group_name, muscle_name, active
		FROM muscle
		WHERE active = true AND user_id IS NULL
	`
	deleteMuscleSQL = `
		DELETE FROM muscle
		WHERE muscle_id = $1 AND user_id = $2
		RETURNING muscle_id
	`
)

var muscleTable = itemTable{
	entity:       "muscle",
	insert:       insertMuscleSQL,
	update:       updateMuscleSQL,
	getByID:      getMuscleByIDSQL,
	getByName:    getMuscleByNameSQL,
	listByUser:   listMusclesByUserSQL,
	listDefaults: listDefaultMusclesSQL,
	delete:       deleteMuscleSQL,
}

func toMuscle(it item) Muscle {
	return Muscle{
		ID:        it.id,
		Owner:     store.OwnerFromNullable(it.ownerID),
		GroupName: it.groupName,
		Name:      it.name,
		Active:    it.active,
	}
}

func toMuscles(items []item) []Muscle {
	muscles := make([]Muscle, 0, len(items))
	for _, it := range items {
		muscles = append(muscles, toMuscle(it))
	}
	return muscles
}

func (r *Repo) CreateMuscle(ctx context.Context, params CreateItemParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.muscles.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", params.Owner.String()))

	return r.createItem(ctx, muscleTable, params)
}

func (r *Repo) UpdateMuscle(ctx context.Context, params UpdateItemParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.muscles.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("muscle.id", params.ID))
	span.SetAttributes(attribute.Int("owner.id", params.OwnerID))

	return r.updateItem(ctx, muscleTable, params)
}

func (r *Repo) GetMuscle(ctx context.Context, id, ownerID int) (_ Muscle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.muscles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("muscle.id", id))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	it, err := r.getItem(ctx, muscleTable, muscleTable.getByID, id, ownerID)
	if err != nil {
		return Muscle{}, err
	}
	return toMuscle(it), nil
}

func (r *Repo) GetMuscleByName(ctx context.Context, name string, ownerID int) (_ Muscle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.muscles.get_by_name")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	it, err := r.getItem(ctx, muscleTable, muscleTable.getByName, name, ownerID)
	if err != nil {
		return Muscle{}, err
	}
	return toMuscle(it), nil
}

func (r *Repo) ListMusclesByUser(ctx context.Context, ownerID int, page store.Page) (_ []Muscle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.muscles.list_by_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	limit, offset := page.Bounds(store.DefaultCatalogLimit)
	span.SetAttributes(attribute.Int("owner.id", ownerID))
	span.SetAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset))

	items, err := r.listItems(ctx, muscleTable, muscleTable.listByUser, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMuscles(items), nil
}

// ListDefaultMuscles returns the active shared-default muscles.
func (r *Repo) ListDefaultMuscles(ctx context.Context) (_ []Muscle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.muscles.list_defaults")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	items, err := r.listItems(ctx, muscleTable, muscleTable.listDefaults)
	if err != nil {
		return nil, err
	}
	return toMuscles(items), nil
}

func (r *Repo) DeleteMuscle(ctx context.Context, id, ownerID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.muscles.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("muscle.id", id))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	return r.deleteItem(ctx, muscleTable, id, ownerID)
}
