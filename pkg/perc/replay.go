package perc

import (
	"context"
	"io"

	"github.com/lance6716/percolation-estimator/pkg/filemgr"
	"github.com/lance6716/percolation-estimator/pkg/parse"
	"github.com/lance6716/percolation-estimator/pkg/percolation"
	"github.com/lance6716/percolation-estimator/pkg/source"
	"github.com/lance6716/percolation-estimator/pkg/stats"
	"github.com/lance6716/percolation-estimator/pkg/util"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// Replay builds a model from an input stream: the grid size followed by the
// sites to open, applied in stream order. The first invalid site aborts the
// replay.
func Replay(r io.Reader, impl percolation.Impl) (percolation.Model, error) {
	if impl == "" {
		impl = percolation.ImplUnionFind
	}
	sites, err := parse.ReadSites(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	m, err := percolation.NewModel(impl, sites.N)
	if err != nil {
		return nil, errors.Trace(err)
	}
	for i, s := range sites.Opens {
		if err = m.Open(s.Row, s.Col); err != nil {
			return nil, errors.Annotatef(err, "open site #%d", i+1)
		}
	}
	fields := []zap.Field{
		zap.Int("gridSize", sites.N),
		zap.Int("opens", len(sites.Opens)),
		zap.Int("openSites", m.NumberOfOpenSites()),
	}
	if s, ok := m.(*percolation.System); ok {
		fields = append(fields, zap.Int("clusters", s.Clusters()))
	}
	util.Logger.Debug("replay finished", fields...)
	return m, nil
}

// Show loads the trials of a finished task, from the result database when
// cfg configures one and from the work directory otherwise.
func Show(ctx context.Context, cfg *Config, task string) (*stats.Estimator, error) {
	cfg.ensureDefaults()

	if !cfg.ResultDB.Enabled() {
		f, err := filemgr.NewManager(cfg.WorkDir).ReadTrials(task)
		if err != nil {
			return nil, errors.Trace(err)
		}
		return stats.Summarize(f.GridSize, f.Trials)
	}

	dbCfg := &cfg.ResultDB
	db, err := util.ConnectDB(dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer db.Close()

	t, err := source.ReadTrials(ctx, db, dbCfg.DBName, task)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return stats.Summarize(t.GridSize, t.Trials)
}

// ListTasks returns the finished tasks with their trial count, from the result
// database when cfg configures one and from the work directory otherwise.
func ListTasks(ctx context.Context, cfg *Config) (map[string]int, error) {
	cfg.ensureDefaults()

	if !cfg.ResultDB.Enabled() {
		tasks, err := filemgr.NewManager(cfg.WorkDir).ListTasks()
		return tasks, errors.Trace(err)
	}

	dbCfg := &cfg.ResultDB
	db, err := util.ConnectDB(dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer db.Close()

	tasks, err := source.ReadTasks(ctx, db, dbCfg.DBName)
	return tasks, errors.Trace(err)
}
