package source

import (
	"context"
	"database/sql"

	"github.com/lance6716/percolation-estimator/pkg/sink"
	"github.com/lance6716/percolation-estimator/pkg/stats"
	"github.com/lance6716/percolation-estimator/pkg/util"
	"github.com/pingcap/errors"
)

// TaskTrials is what the result database holds for one task.
type TaskTrials struct {
	Task     string
	GridSize int
	Trials   []stats.Trial
}

// ReadTrials reads the trials of task saved by sink.Sink, ordered by trial
// index.
func ReadTrials(ctx context.Context, db *sql.DB, dbName, task string) (*TaskTrials, error) {
	query := "SELECT grid_size, trial, open_sites, threshold FROM " +
		util.QualifiedName(dbName, sink.TableName) +
		" WHERE task = ? ORDER BY trial"
	rows, err := db.QueryContext(ctx, query, task)
	if err != nil {
		return nil, errors.Annotatef(util.ClassifySQLError(err), "failed to execute query: %s", query)
	}
	defer rows.Close()

	ret := &TaskTrials{Task: task}
	for rows.Next() {
		var (
			t        stats.Trial
			gridSize int
		)
		if err = rows.Scan(&gridSize, &t.Index, &t.OpenSites, &t.Threshold); err != nil {
			return nil, errors.Trace(err)
		}
		if ret.GridSize != 0 && ret.GridSize != gridSize {
			return nil, errors.Errorf("task %s has trials of different grid sizes %d and %d", task, ret.GridSize, gridSize)
		}
		ret.GridSize = gridSize
		ret.Trials = append(ret.Trials, t)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	if len(ret.Trials) == 0 {
		return nil, errors.Errorf("no trials found for task %s", task)
	}
	return ret, nil
}

// ReadTasks lists the saved task names with their trial count.
func ReadTasks(ctx context.Context, db *sql.DB, dbName string) (map[string]int, error) {
	query := "SELECT task, COUNT(*) FROM " +
		util.QualifiedName(dbName, sink.TableName) +
		" GROUP BY task"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Annotatef(util.ClassifySQLError(err), "failed to execute query: %s", query)
	}
	defer rows.Close()

	ret := make(map[string]int)
	for rows.Next() {
		var (
			task  string
			count int
		)
		if err = rows.Scan(&task, &count); err != nil {
			return nil, errors.Trace(err)
		}
		ret[task] = count
	}
	return ret, errors.Trace(rows.Err())
}
