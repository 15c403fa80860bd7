package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lcsouza2/fittude-data-repo/internal/db"
	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const ownedPlanIDsSQL = `
	SELECT workout_plan_id
	FROM workout_plan
	WHERE user_id = $1
`

var errNothingDeleted = errors.New("no rows deleted")

// nothingDeleted is what reporting deletes return when no row matched,
// unlike the other stores which report not found.
func nothingDeleted(entity string) error {
	return store.Internal(fmt.Sprintf("failed to delete %s", entity), errNothingDeleted)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// OwnedPlanIDs resolves the plans owned by ownerID. Reporting rows carry no
// owner, every reporting delete is scoped to this set.
func (r *Repo) OwnedPlanIDs(ctx context.Context, ownerID int) (_ []int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.reports.owned_plan_ids")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return ownedPlanIDs(ctx, r.db, ownerID)
}

func ownedPlanIDs(ctx context.Context, q db.Querier, ownerID int) ([]int, error) {
	rows, err := q.Query(ctx, ownedPlanIDsSQL, ownerID)
	if err != nil {
		return nil, store.Translate(store.OpRead, "workout plan", err)
	}

	planIDs, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, store.Translate(store.OpRead, "workout plan", err)
	}
	return planIDs, nil
}

// inTx runs fn in a transaction, committed when fn succeeds and rolled back
// otherwise.
func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return store.Translate(store.OpDelete, "transaction", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else if commitErr := tx.Commit(ctx); commitErr != nil {
			err = store.Translate(store.OpDelete, "transaction", commitErr)
		}
	}()

	return fn(tx)
}

var _ db.Querier = pgx.Tx(nil)
