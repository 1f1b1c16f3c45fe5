package perc

import (
	"context"
	"strconv"
	"time"

	"github.com/lance6716/percolation-estimator/pkg/filemgr"
	"github.com/lance6716/percolation-estimator/pkg/report"
	"github.com/lance6716/percolation-estimator/pkg/sink"
	"github.com/lance6716/percolation-estimator/pkg/stats"
	"github.com/lance6716/percolation-estimator/pkg/util"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// InitLogger applies the log section of cfg to util.Logger.
func InitLogger(cfg *Log) error {
	level := cfg.Level
	if level == "" {
		level = defaultLogLevel
	}
	return util.InitLogger(level, cfg.Filename)
}

// Run is the main entry function of an estimation task. It runs the trials,
// writes them to the work directory, optionally renders the report and saves
// the trials to the result database.
func Run(ctx context.Context, cfg *Config) (*stats.Estimator, error) {
	cfg.ensureDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	util.Logger.Info("start estimation",
		zap.String("task", cfg.TaskName),
		zap.Int("gridSize", cfg.GridSize),
		zap.Int("trials", cfg.Trials),
		zap.Int("workers", cfg.Workers),
		zap.Int64("seed", cfg.Seed),
		zap.String("impl", string(cfg.Impl)))
	start := time.Now()
	e, err := stats.NewEstimator(ctx, cfg.GridSize, cfg.Trials, stats.Options{
		Impl:    cfg.Impl,
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	elapsed := time.Since(start)
	util.Logger.Info("estimation finished",
		zap.String("task", cfg.TaskName),
		zap.Duration("elapsed", elapsed),
		zap.Float64("mean", e.Mean()),
		zap.Float64("stddev", e.Stddev()))

	mgr := filemgr.NewManager(cfg.WorkDir)
	err = mgr.WriteTrials(&filemgr.TrialsFile{
		Task:     cfg.TaskName,
		GridSize: cfg.GridSize,
		Impl:     string(cfg.Impl),
		Seed:     cfg.Seed,
		Trials:   e.Trials(),
	})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if cfg.Report {
		path, err2 := mgr.GetReportPath(cfg.TaskName)
		if err2 != nil {
			return nil, errors.Trace(err2)
		}
		r := report.NewReport(e)
		r.TaskInfoItems = [][2]string{
			{"Task", cfg.TaskName},
			{"Grid Size", strconv.Itoa(cfg.GridSize) + " x " + strconv.Itoa(cfg.GridSize)},
			{"Trials", strconv.Itoa(cfg.Trials)},
			{"Model", string(cfg.Impl)},
			{"Seed", strconv.FormatInt(cfg.Seed, 10)},
		}
		r.ExecutionInfoItems = [][2]string{
			{"Workers", strconv.Itoa(cfg.Workers)},
			{"Start Time", start.Format(time.RFC3339)},
			{"Elapsed", elapsed.String()},
		}
		if err2 = report.Render(r, path); err2 != nil {
			return nil, errors.Trace(err2)
		}
		util.Logger.Info("report rendered", zap.String("path", path))
	}

	if cfg.ResultDB.Enabled() {
		if err = saveToDB(ctx, cfg, e); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return e, nil
}

func saveToDB(ctx context.Context, cfg *Config, e *stats.Estimator) error {
	dbCfg := &cfg.ResultDB
	db, err := util.ConnectDB(dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password)
	if err != nil {
		return errors.Trace(err)
	}
	defer db.Close()

	err = sink.NewSink(db).SaveTrials(ctx, dbCfg.DBName, cfg.TaskName, e.GridSize(), e.Trials())
	if err != nil {
		return errors.Trace(err)
	}
	util.Logger.Info("trials saved",
		zap.String("task", cfg.TaskName),
		zap.String("database", dbCfg.DBName),
		zap.Int("rows", len(e.Trials())))
	return nil
}
