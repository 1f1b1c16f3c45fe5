package perc

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/lance6716/percolation-estimator/pkg/percolation"
	"github.com/pingcap/errors"
)

// Config is a static struct for an estimation task.
type Config struct {
	TaskName string

	GridSize int
	Trials   int
	Workers  int
	Seed     int64
	Impl     percolation.Impl

	WorkDir string
	// Report controls whether an HTML report is written under WorkDir.
	Report bool
	// ResultDB is optional, trials are saved into it when Host is set.
	ResultDB MySQL
	Log      Log
}

type MySQL struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// Enabled reports whether a result database is configured.
func (m *MySQL) Enabled() bool {
	return m.Host != ""
}

type Log struct {
	Level    string
	Filename string
}

const (
	defaultWorkSubDir = "percolation-estimator"
	defaultDBName     = "percolation"
	defaultLogLevel   = "info"
)

func (c *Config) ensureDefaults() {
	if c.TaskName == "" {
		c.TaskName = time.Now().Format(time.RFC3339)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Impl == "" {
		c.Impl = percolation.ImplUnionFind
	}
	if c.WorkDir == "" {
		c.WorkDir = filepath.Join(os.TempDir(), defaultWorkSubDir)
	}
	if c.ResultDB.DBName == "" {
		c.ResultDB.DBName = defaultDBName
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

func (c *Config) validate() error {
	if c.GridSize <= 0 {
		return errors.Annotatef(percolation.ErrInvalidArgument, "grid size must be positive, got %d", c.GridSize)
	}
	if c.Trials <= 0 {
		return errors.Annotatef(percolation.ErrInvalidArgument, "trials must be positive, got %d", c.Trials)
	}
	switch c.Impl {
	case percolation.ImplUnionFind, percolation.ImplBruteForce:
	default:
		return errors.Annotatef(percolation.ErrInvalidArgument, "unknown model implementation %q", c.Impl)
	}
	return nil
}
