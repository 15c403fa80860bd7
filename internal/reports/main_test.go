package reports

import (
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return NewRepo(mock), mock
}

func ptr[T any](v T) *T {
	return &v
}

func planIDRows(ids ...int) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"workout_plan_id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}
