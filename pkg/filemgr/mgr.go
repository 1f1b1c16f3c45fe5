package filemgr

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lance6716/percolation-estimator/pkg/stats"
	"github.com/lance6716/percolation-estimator/pkg/util"
	"github.com/pingcap/errors"
)

const (
	trialsDir  = "trials"
	trialsExt  = ".json"
	reportDir  = "report"
	reportExt  = ".html"
	dirPerm    = 0776
	fileFormat = 1
)

// Manager owns a folder and organizes the files produced by estimation tasks.
// The hierarchy is
//
//	{workDir}/trials/{task}.json
//	{workDir}/report/{task}.html
//
// where {task} is escaped by util.EscapePath.
type Manager struct {
	workDir string
}

// NewManager creates a new Manager instance on the given work directory.
func NewManager(workDir string) *Manager {
	return &Manager{workDir: workDir}
}

// TrialsFile is the on-disk form of one estimation task.
type TrialsFile struct {
	Format   int           `json:"format"`
	Task     string        `json:"task"`
	GridSize int           `json:"grid_size"`
	Impl     string        `json:"impl"`
	Seed     int64         `json:"seed"`
	Trials   []stats.Trial `json:"trials"`
}

// WriteTrials writes the trials of a task.
func (m *Manager) WriteTrials(f *TrialsFile) error {
	f.Format = fileFormat
	content, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}
	return util.AtomicWrite(m.GetTrialsPath(f.Task), content)
}

// ReadTrials reads the trials written by WriteTrials.
func (m *Manager) ReadTrials(task string) (*TrialsFile, error) {
	path := m.GetTrialsPath(task)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "read trials file %s", path)
	}
	f := &TrialsFile{}
	if err = json.Unmarshal(content, f); err != nil {
		return nil, errors.Annotatef(err, "decode trials file %s", path)
	}
	if f.Format != fileFormat {
		return nil, errors.Errorf("unsupported trials file format %d in %s", f.Format, path)
	}
	return f, nil
}

// ListTasks returns the tasks found in the work directory with their trial
// count. A work directory without trials gives an empty map.
func (m *Manager) ListTasks() (map[string]int, error) {
	ret := make(map[string]int)
	entries, err := os.ReadDir(filepath.Join(m.workDir, trialsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return ret, nil
		}
		return nil, errors.Trace(err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != trialsExt {
			continue
		}
		path := filepath.Join(m.workDir, trialsDir, entry.Name())
		content, err2 := os.ReadFile(path)
		if err2 != nil {
			return nil, errors.Annotatef(err2, "read trials file %s", path)
		}
		f := &TrialsFile{}
		if err2 = json.Unmarshal(content, f); err2 != nil {
			return nil, errors.Annotatef(err2, "decode trials file %s", path)
		}
		ret[f.Task] = len(f.Trials)
	}
	return ret, nil
}

// GetTrialsPath returns the path of the trials file of a task.
func (m *Manager) GetTrialsPath(task string) string {
	return filepath.Join(m.workDir, trialsDir, util.EscapePath(task)+trialsExt)
}

// GetReportPath returns the path of the HTML report of a task and makes sure
// its directory exists.
func (m *Manager) GetReportPath(task string) (string, error) {
	dir := filepath.Join(m.workDir, reportDir)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", errors.Trace(err)
	}
	return filepath.Join(dir, util.EscapePath(task)+reportExt), nil
}
