package exercises

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/db"
	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const (
	exerciseEntity          = "exercise"
	muscleBindingEntity     = "exercise muscle binding"
	equipmentBindingEntity  = "exercise equipment binding"
	exerciseColumnsSelected = "exercise_id, user_id, exercise_name, description, active"
)

const (
	insertExerciseSQL = `
		INSERT INTO exercise (user_id, exercise_name, description, active)
		VALUES ($1, $2, $3, $4)
		RETURNING exercise_id
	`
	updateExerciseSQL = `
		UPDATE exercise
		SET exercise_name = $1, description = $2, active = $3
		WHERE exercise_id = $4 AND user_id = $5
		RETURNING exercise_id
	`
	getExerciseByIDSQL = `
		SELECT ` + exerciseColumnsSelected + `
		FROM exercise
		WHERE exercise_id = $1 AND user_id = $2
	`
	getExerciseByNameSQL = `
		SELECT ` + exerciseColumnsSelected + `
		FROM exercise
		WHERE exercise_name = $1 AND user_id = $2
	`
	listExercisesByUserSQL = `
		SELECT ` + exerciseColumnsSelected + `
		FROM exercise
		WHERE user_id = $1
		LIMIT $2 OFFSET $3
	`
	listDefaultExercisesSQL = `
		SELECT ` + exerciseColumnsSelected + `
		FROM exercise
		WHERE active = true AND user_id IS NULL
	`
	deleteExerciseSQL = `
		DELETE FROM exercise
		WHERE exercise_id = $1 AND user_id = $2
		RETURNING exercise_id
	`
	bindMuscleSQL = `
		INSERT INTO exercise_muscle (muscle_id, exercise_id)
		VALUES ($1, $2)
		RETURNING exercise_id
	`
	bindEquipmentSQL = `
		INSERT INTO exercise_equipment (equipment_id, exercise_id)
		VALUES ($1, $2)
		RETURNING exercise_id
	`
	listExerciseMusclesSQL = `
		SELECT m.muscle_id, m.muscle_name, m.group_name
		FROM muscle m
		JOIN exercise_muscle em ON em.muscle_id = m.muscle_id
		WHERE em.exercise_id = $1
	`
	listExerciseEquipmentSQL = `
		SELECT e.equipment_id, e.equipment_name, e.group_name
		FROM equipment e
		JOIN exercise_equipment ee ON ee.equipment_id = e.equipment_id
		WHERE ee.exercise_id = $1
	`
)

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

func scanExercise(row pgx.Row) (Exercise, error) {
	var (
		exercise Exercise
		ownerID  *int
	)
	err := row.Scan(
		&exercise.ID,
		&ownerID,
		&exercise.Name,
		&exercise.Description,
		&exercise.Active,
	)
	if err != nil {
		return Exercise{}, err
	}
	exercise.Owner = store.OwnerFromNullable(ownerID)
	return exercise, nil
}

func (r *Repo) Create(ctx context.Context, params CreateParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", params.Owner.String()))

	var id int
	err = r.db.QueryRow(
		ctx,
		insertExerciseSQL,
		params.Owner.Nullable(),
		params.Name,
		params.Description,
		params.Active,
	).Scan(&id)
	if err != nil {
		return 0, store.Translate(store.OpCreate, exerciseEntity, err)
	}
	return id, nil
}

// Update rewrites an exercise owned by params.OwnerID. Renaming onto an
// existing exercise name is a conflict.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", params.ID))
	span.SetAttributes(attribute.Int("owner.id", params.OwnerID))

	var id int
	err = r.db.QueryRow(
		ctx,
		updateExerciseSQL,
		params.Name,
		params.Description,
		params.Active,
		params.ID,
		params.OwnerID,
	).Scan(&id)
	if err != nil {
		return 0, store.Translate(store.OpUpdate, exerciseEntity, err)
	}
	return id, nil
}

func (r *Repo) Get(ctx context.Context, id, ownerID int) (_ Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", id))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	exercise, err := scanExercise(r.db.QueryRow(ctx, getExerciseByIDSQL, id, ownerID))
	if err != nil {
		return Exercise{}, store.Translate(store.OpRead, exerciseEntity, err)
	}
	return exercise, nil
}

func (r *Repo) GetByName(ctx context.Context, name string, ownerID int) (_ Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get_by_name")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	exercise, err := scanExercise(r.db.QueryRow(ctx, getExerciseByNameSQL, name, ownerID))
	if err != nil {
		return Exercise{}, store.Translate(store.OpRead, exerciseEntity, err)
	}
	return exercise, nil
}

func (r *Repo) ListByUser(ctx context.Context, ownerID int, page store.Page) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list_by_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	limit, offset := page.Bounds(store.DefaultCatalogLimit)
	span.SetAttributes(attribute.Int("owner.id", ownerID))
	span.SetAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset))

	return r.list(ctx, listExercisesByUserSQL, ownerID, limit, offset)
}

func (r *Repo) ListDefaults(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list_defaults")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.list(ctx, listDefaultExercisesSQL)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Exercise, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, store.Translate(store.OpRead, exerciseEntity, err)
	}

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Exercise, error) {
		return scanExercise(row)
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, exerciseEntity, err)
	}
	return exercises, nil
}

func (r *Repo) Delete(ctx context.Context, id, ownerID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", id))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var deletedID int
	if err := r.db.QueryRow(ctx, deleteExerciseSQL, id, ownerID).Scan(&deletedID); err != nil {
		return 0, store.Translate(store.OpDelete, exerciseEntity, err)
	}
	return deletedID, nil
}

// BindMuscle associates a muscle with an exercise. Binding the same pair
// twice is a conflict.
func (r *Repo) BindMuscle(ctx context.Context, exerciseID, muscleID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.bind_muscle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))
	span.SetAttributes(attribute.Int("muscle.id", muscleID))

	var id int
	if err := r.db.QueryRow(ctx, bindMuscleSQL, muscleID, exerciseID).Scan(&id); err != nil {
		return 0, store.Translate(store.OpCreate, muscleBindingEntity, err)
	}
	return id, nil
}

// BindEquipment associates a piece of equipment with an exercise. Binding
// the same pair twice is a conflict.
func (r *Repo) BindEquipment(ctx context.Context, exerciseID, equipmentID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.bind_equipment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))
	span.SetAttributes(attribute.Int("equipment.id", equipmentID))

	var id int
	if err := r.db.QueryRow(ctx, bindEquipmentSQL, equipmentID, exerciseID).Scan(&id); err != nil {
		return 0, store.Translate(store.OpCreate, equipmentBindingEntity, err)
	}
	return id, nil
}

// ListMuscles returns the muscles bound to an exercise. Exercise ownership
// is checked by whoever resolved exerciseID.
func (r *Repo) ListMuscles(ctx context.Context, exerciseID int) (_ []BoundMuscle, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list_muscles")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	rows, err := r.db.Query(ctx, listExerciseMusclesSQL, exerciseID)
	if err != nil {
		return nil, store.Translate(store.OpRead, muscleBindingEntity, err)
	}

	muscles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (BoundMuscle, error) {
		var m BoundMuscle
		err := row.Scan(&m.MuscleID, &m.Name, &m.GroupName)
		return m, err
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, muscleBindingEntity, err)
	}
	return muscles, nil
}

// ListEquipment returns the equipment bound to an exercise.
func (r *Repo) ListEquipment(ctx context.Context, exerciseID int) (_ []BoundEquipment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list_equipment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	rows, err := r.db.Query(ctx, listExerciseEquipmentSQL, exerciseID)
	if err != nil {
		return nil, store.Translate(store.OpRead, equipmentBindingEntity, err)
	}

	equipment, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (BoundEquipment, error) {
		var e BoundEquipment
		err := row.Scan(&e.EquipmentID, &e.Name, &e.GroupName)
		return e, err
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, equipmentBindingEntity, err)
	}
	return equipment, nil
}
