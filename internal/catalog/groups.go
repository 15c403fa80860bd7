package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const groupEntity = "muscle group"

const (
	insertGroupSQL = `
		INSERT INTO muscle_group (group_name, user_id, active)
		VALUES ($1, $2, $3)
		RETURNING group_name
	`
	updateGroupActiveSQL = `
		UPDATE muscle_group
		SET active = $1
		WHERE group_name = $2 AND user_id = $3
		RETURNING group_name
	`
	getGroupSQL = `
		SELECT group_name, user_id, active
		FROM muscle_group
		WHERE group_name = $1 AND user_id = $2
	`
	listGroupsByUserSQL = `
		SELECT group_name, user_id, active
		FROM muscle_group
		WHERE user_id = $1
		LIMIT $2 OFFSET $3
	`
	listDefaultGroupsSQL = `
		SELECT group_name, user_id, active
		FROM muscle_group
		WHERE active = true AND user_id IS NULL
	`
	deleteGroupSQL = `
		DELETE FROM muscle_group
		WHERE group_name = $1 AND user_id = $2
		RETURNING group_name
	`
)

func scanGroup(row pgx.Row) (Group, error) {
	var (
		group   Group
		ownerID *int
	)
	if err := row.Scan(&group.Name, &ownerID, &group.Active); err != nil {
		return Group{}, err
	}
	group.Owner = store.OwnerFromNullable(ownerID)
	return group, nil
}

func (r *Repo) CreateGroup(ctx context.Context, params CreateGroupParams) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.groups.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner", params.Owner.String()))

	var name string
	err = r.db.QueryRow(
		ctx,
		insertGroupSQL,
		params.Name,
		params.Owner.Nullable(),
		params.Active,
	).Scan(&name)
	if err != nil {
		return "", store.Translate(store.OpCreate, groupEntity, err)
	}
	return name, nil
}

func (r *Repo) UpdateGroupActive(ctx context.Context, name string, ownerID int, active bool) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.groups.update_active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner.id", ownerID))
	span.SetAttributes(attribute.Bool("active", active))

	var updated string
	if err := r.db.QueryRow(ctx, updateGroupActiveSQL, active, name, ownerID).Scan(&updated); err != nil {
		return "", store.Translate(store.OpUpdate, groupEntity, err)
	}
	return updated, nil
}

func (r *Repo) GetGroup(ctx context.Context, name string, ownerID int) (_ Group, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.groups.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	group, err := scanGroup(r.db.QueryRow(ctx, getGroupSQL, name, ownerID))
	if err != nil {
		return Group{}, store.Translate(store.OpRead, groupEntity, err)
	}
	return group, nil
}

func (r *Repo) ListGroupsByUser(ctx context.Context, ownerID int, page store.Page) (_ []Group, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.groups.list_by_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	limit, offset := page.Bounds(store.DefaultCatalogLimit)
	span.SetAttributes(attribute.Int("owner.id", ownerID))
	span.SetAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset))

	return r.listGroups(ctx, listGroupsByUserSQL, ownerID, limit, offset)
}

func (r *Repo) ListDefaultGroups(ctx context.Context) (_ []Group, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.groups.list_defaults")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.listGroups(ctx, listDefaultGroupsSQL)
}

func (r *Repo) listGroups(ctx context.Context, query string, args ...any) ([]Group, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, store.Translate(store.OpRead, groupEntity, err)
	}

	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Group, error) {
		return scanGroup(row)
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, groupEntity, err)
	}
	return groups, nil
}

func (r *Repo) DeleteGroup(ctx context.Context, name string, ownerID int) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.groups.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("owner.id", ownerID))

	var deleted string
	if err := r.db.QueryRow(ctx, deleteGroupSQL, name, ownerID).Scan(&deleted); err != nil {
		return "", store.Translate(store.OpDelete, groupEntity, err)
	}
	return deleted, nil
}
