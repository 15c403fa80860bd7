package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
)

// item is the row shape shared by muscle and equipment.
type item struct {
	id        int
	ownerID   *int
	groupName string
	name      string
	active    bool
}

// itemTable holds the statements of one item relation.
type itemTable struct {
	entity       string
	insert       string
	update       string
	getByID      string
	getByName    string
	listByUser   string
	listDefaults string
	delete       string
}

func scanItem(row pgx.Row) (item, error) {
	var it item
	err := row.Scan(
		&it.id,
		&it.ownerID,
		&it.groupName,
		&it.name,
		&it.active,
	)
	return it, err
}

func (r *Repo) createItem(ctx context.Context, t itemTable, params CreateItemParams) (int, error) {
	var id int
	err := r.db.QueryRow(
		ctx,
		t.insert,
		params.Owner.Nullable(),
		params.GroupName,
		params.Name,
		params.Active,
	).Scan(&id)
	if err != nil {
		return 0, store.Translate(store.OpCreate, t.entity, err)
	}
	return id, nil
}

func (r *Repo) updateItem(ctx context.Context, t itemTable, params UpdateItemParams) (int, error) {
	var id int
	err := r.db.QueryRow(
		ctx,
		t.update,
		params.GroupName,
		params.Name,
		params.Active,
		params.ID,
		params.OwnerID,
	).Scan(&id)
	if err != nil {
		return 0, store.Translate(store.OpUpdate, t.entity, err)
	}
	return id, nil
}

func (r *Repo) getItem(ctx context.Context, t itemTable, query string, key any, ownerID int) (item, error) {
	it, err := scanItem(r.db.QueryRow(ctx, query, key, ownerID))
	if err != nil {
		return item{}, store.Translate(store.OpRead, t.entity, err)
	}
	return it, nil
}

func (r *Repo) listItems(ctx context.Context, t itemTable, query string, args ...any) ([]item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, store.Translate(store.OpRead, t.entity, err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (item, error) {
		return scanItem(row)
	})
	if err != nil {
		return nil, store.Translate(store.OpRead, t.entity, err)
	}
	return items, nil
}

func (r *Repo) deleteItem(ctx context.Context, t itemTable, id, ownerID int) (int, error) {
	var deletedID int
	if err := r.db.QueryRow(ctx, t.delete, id, ownerID).Scan(&deletedID); err != nil {
		return 0, store.Translate(store.OpDelete, t.entity, err)
	}
	return deletedID, nil
}
