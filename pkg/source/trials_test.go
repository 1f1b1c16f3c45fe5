package source

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lance6716/percolation-estimator/pkg/stats"
	"github.com/lance6716/percolation-estimator/pkg/util"
	"github.com/stretchr/testify/require"
)

var selectTrialsRe = regexp.QuoteMeta(
	"SELECT grid_size, trial, open_sites, threshold FROM `percolation`.`percolation_trials` WHERE task = ? ORDER BY trial")

func TestReadTrials(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(selectTrialsRe).WithArgs("task-1").WillReturnRows(
		sqlmock.NewRows([]string{"grid_size", "trial", "open_sites", "threshold"}).
			AddRow(2, 0, 2, 0.5).
			AddRow(2, 1, 3, 0.75),
	)
	got, err := ReadTrials(context.Background(), db, "percolation", "task-1")
	require.NoError(t, err)
	require.Equal(t, &TaskTrials{
		Task:     "task-1",
		GridSize: 2,
		Trials: []stats.Trial{
			{Index: 0, OpenSites: 2, Threshold: 0.5},
			{Index: 1, OpenSites: 3, Threshold: 0.75},
		},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadTrialsErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	columns := []string{"grid_size", "trial", "open_sites", "threshold"}

	mock.ExpectQuery(selectTrialsRe).WillReturnRows(sqlmock.NewRows(columns))
	_, err = ReadTrials(ctx, db, "percolation", "missing")
	require.ErrorContains(t, err, "no trials found for task missing")

	mock.ExpectQuery(selectTrialsRe).WillReturnRows(
		sqlmock.NewRows(columns).AddRow(2, 0, 2, 0.5).AddRow(3, 1, 5, 5.0/9))
	_, err = ReadTrials(ctx, db, "percolation", "mixed")
	require.ErrorContains(t, err, "different grid sizes 2 and 3")

	mock.ExpectQuery(selectTrialsRe).WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"})
	_, err = ReadTrials(ctx, db, "percolation", "task")
	require.True(t, util.IsUnretryableError(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadTasks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT task, COUNT(*) FROM `percolation`.`percolation_trials` GROUP BY task")).
		WillReturnRows(sqlmock.NewRows([]string{"task", "count"}).AddRow("a", 100).AddRow("b", 3))
	got, err := ReadTasks(context.Background(), db, "percolation")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 100, "b": 3}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
