package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lance6716/percolation-estimator/pkg/stats"
	"github.com/lance6716/percolation-estimator/pkg/util"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// TableName is the table holding one row per trial.
const TableName = "percolation_trials"

const (
	insertBatchSize     = 500
	defaultMaxAttempts  = 3
	defaultRetryBackoff = 500 * time.Millisecond
)

const createTableTpl = `CREATE TABLE IF NOT EXISTS %s (
	task VARCHAR(255) NOT NULL,
	grid_size INT NOT NULL,
	trial INT NOT NULL,
	open_sites INT NOT NULL,
	threshold DOUBLE NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (task, trial)
)`

// Sink saves trials into a MySQL compatible database. It's concurrent safe and
// the same database / table will only be created once.
type Sink struct {
	db *sql.DB

	databaseOnce sync.Map // dbName -> sync.Once
	databaseErr  sync.Map // dbName -> execution error
	tableOnce    sync.Map // dbName -> sync.Once
	tableErr     sync.Map // dbName -> execution error

	maxAttempts  int
	retryBackoff time.Duration
}

func NewSink(db *sql.DB) *Sink {
	return &Sink{
		db:           db,
		maxAttempts:  defaultMaxAttempts,
		retryBackoff: defaultRetryBackoff,
	}
}

// onceErr runs fn at most once per key and returns its error to every caller.
func onceErr(onceMap, errMap *sync.Map, key string, fn func() error) error {
	o := new(sync.Once)
	once, _ := onceMap.LoadOrStore(key, o)
	once.(*sync.Once).Do(func() {
		if err := fn(); err != nil {
			errMap.Store(key, err)
		}
	})
	errLoaded, ok := errMap.Load(key)
	if !ok {
		return nil
	}
	return errLoaded.(error)
}

func (s *Sink) CreateDatabase(ctx context.Context, dbName string) error {
	return onceErr(&s.databaseOnce, &s.databaseErr, dbName, func() error {
		query := "CREATE DATABASE IF NOT EXISTS " + util.EscapeIdentifier(dbName)
		_, err := s.db.ExecContext(ctx, query)
		return errors.Annotatef(err, "create database %s", dbName)
	})
}

func (s *Sink) CreateTable(ctx context.Context, dbName string) error {
	return onceErr(&s.tableOnce, &s.tableErr, dbName, func() error {
		query := fmt.Sprintf(createTableTpl, util.QualifiedName(dbName, TableName))
		_, err := s.db.ExecContext(ctx, query)
		return errors.Annotatef(err, "create table %s.%s", dbName, TableName)
	})
}

// SaveTrials replaces the rows of task with trials. Retryable failures are
// retried with a linear backoff.
func (s *Sink) SaveTrials(
	ctx context.Context,
	dbName, task string,
	gridSize int,
	trials []stats.Trial,
) error {
	if err := s.CreateDatabase(ctx, dbName); err != nil {
		return errors.Trace(err)
	}
	if err := s.CreateTable(ctx, dbName); err != nil {
		return errors.Trace(err)
	}

	for attempt := 1; ; attempt++ {
		err := util.ClassifySQLError(s.saveTrials(ctx, dbName, task, gridSize, trials))
		if err == nil {
			return nil
		}
		if util.IsUnretryableError(err) || attempt >= s.maxAttempts {
			return errors.Annotatef(err, "save %d trials of task %s after %d attempt(s)", len(trials), task, attempt)
		}
		util.Logger.Warn(
			"save trials failed, will retry",
			zap.String("task", task),
			zap.Int("attempt", attempt),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return errors.Trace(ctx.Err())
		case <-time.After(time.Duration(attempt) * s.retryBackoff):
		}
	}
}

func (s *Sink) saveTrials(
	ctx context.Context,
	dbName, task string,
	gridSize int,
	trials []stats.Trial,
) (err error) {
	table := util.QualifiedName(dbName, TableName)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE task = ?", task)
	if err != nil {
		return errors.Annotatef(err, "delete previous trials of task %s", task)
	}

	for start := 0; start < len(trials); start += insertBatchSize {
		batch := trials[start:min(start+insertBatchSize, len(trials))]
		query, args := insertTrialsQuery(table, task, gridSize, batch)
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Annotatef(err, "insert trials [%d, %d) of task %s", start, start+len(batch), task)
		}
	}
	return errors.Trace(tx.Commit())
}

func insertTrialsQuery(table, task string, gridSize int, trials []stats.Trial) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (task, grid_size, trial, open_sites, threshold) VALUES ")
	args := make([]any, 0, len(trials)*5)
	for i, t := range trials {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, task, gridSize, t.Index, t.OpenSites, t.Threshold)
	}
	return sb.String(), args
}
