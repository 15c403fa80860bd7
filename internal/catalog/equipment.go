package catalog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const (
	insertEquipmentSQL = `
		INSERT INTO equipment (user_id, group_name, equipment_name, active)
		VALUES ($1, $2, $3, $4)
		RETURNING equipment_id
	`
	updateEquipmentSQL = `
		UPDATE equipment
		SET group_name = $1, equipment_name = $2, active = $3
		WHERE equipment_id = $4 AND user_id = $5
		RETURNING equipment_id
	`
	getEquipmentByIDSQL = `
		SELECT equipment_id, user_id, group_name, equipment_name, active
		FROM equipment
		WHERE equipment_id = $1 AND user_id = $2
	`
	getEquipmentByNameSQL = `
		SELECT equipment_id, user_id, group_name, equipment_name, active
		FROM equipment
		WHERE equipment_name = $1 AND user_id = $2
	`
	listEquipmentByUserSQL = `
		SELECT equipment_id, user_id, group_name, equipment_name, active
		FROM equipment
		WHERE user_id = $1
		LIMIT $2 OFFSET $3
	`
	listDefaultEquipmentSQL = `
		SELECT equipment_id, user_id, group_name, equipment_name, active
		FROM equipment
		WHERE active = true AND user_id IS NULL
	`
	deleteEquipmentSQL = `
		DELETE FROM equipment
		WHERE equipment_id = $1 AND user_id = $2
		RETURNING equipment_id
	`
)

var equipmentTable = itemTable{
	entity:       "equipment",
	insert:       insertEquipmentSQL,
	update:       updateEquipmentSQL,
	getByID:      getEquipmentByIDSQL,
	getByName:    getEquipmentByNameSQL,
	listByUser:   listEquipmentByUserSQL,
	listDefaults: listDefaultEquipmentSQL,
	delete:       deleteEquipmentSQL,
}

func toEquipment(it item) Equipment {
	return Equipment{
		ID:        it.id,
		Owner:     store.OwnerFromNullable(it.ownerID),
		GroupName: it.groupName,
		Name:      it.name,
		Active:    it.active,
	}
}

func toEquipmentList(items []item) []Equipment {
	list := make([]Equipment, 0, len(items))
	for _, it := range items {
		list = append(list, toEquipment(it))
	}
	return list
}

func (r *Repo) CreateEquipment(ctx context.Context, params CreateItemParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", params.Owner.String()))

	return r.createItem(ctx, equipmentTable, params)
}

func (r *Repo) UpdateEquipment(ctx context.Context, params UpdateItemParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("equipment.id", params.ID))
	span.SetAttributes(attribute.Int("owner.id", params.OwnerID))

	return r.updateItem(ctx, equipmentTable, params)
}

func (r *Repo) GetEquipment(ctx context.Context, id, ownerID int) (_ Equipment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("equipment.id", id))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	it, err := r.getItem(ctx, equipmentTable, equipmentTable.getByID, id, ownerID)
	if err != nil {
		return Equipment{}, err
	}
	return toEquipment(it), nil
}

func (r *Repo) GetEquipmentByName(ctx context.Context, name string, ownerID int) (_ Equipment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.get_by_name")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	it, err := r.getItem(ctx, equipmentTable, equipmentTable.getByName, name, ownerID)
	if err != nil {
		return Equipment{}, err
	}
	return toEquipment(it), nil
}

func (r *Repo) ListEquipmentByUser(ctx context.Context, ownerID int, page store.Page) (_ []Equipment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.list_by_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	limit, offset := page.Bounds(store.DefaultCatalogLimit)
	span.SetAttributes(attribute.Int("owner.id", ownerID))
	span.SetAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset))

	items, err := r.listItems(ctx, equipmentTable, equipmentTable.listByUser, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toEquipmentList(items), nil
}

// ListDefaultEquipment returns the active shared-default equipment.
func (r *Repo) ListDefaultEquipment(ctx context.Context) (_ []Equipment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.list_defaults")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	items, err := r.listItems(ctx, equipmentTable, equipmentTable.listDefaults)
	if err != nil {
		return nil, err
	}
	return toEquipmentList(items), nil
}

func (r *Repo) DeleteEquipment(ctx context.Context, id, ownerID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.equipment.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("equipment.id", id))
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	return r.deleteItem(ctx, equipmentTable, id, ownerID)
}
