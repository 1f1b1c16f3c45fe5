package report

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lance6716/percolation-estimator/pkg/stats"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	e, err := stats.Summarize(2, []stats.Trial{
		{Index: 0, OpenSites: 2, Threshold: 0.5},
		{Index: 1, OpenSites: 3, Threshold: 0.75},
		{Index: 2, OpenSites: 2, Threshold: 0.5},
		{Index: 3, OpenSites: 4, Threshold: 1},
	})
	require.NoError(t, err)

	r := NewReport(e)
	r.TaskInfoItems = [][2]string{
		{"Task", "<unit-test>"},
		{"Grid Size", "2 x 2"},
	}
	r.ExecutionInfoItems = [][2]string{
		{"Workers", "4"},
	}
	require.Equal(t, "0.6875", r.Summary.Mean)
	require.Len(t, r.Trials.Data, 4)
	require.Equal(t, []string{"3", "4", "1.0000"}, r.Trials.Data[3])

	var buf bytes.Buffer
	require.NoError(t, render(r, &buf))
	html := buf.String()
	require.Contains(t, html, "<td>0.6875</td>")
	// html/template escapes values
	require.Contains(t, html, "&lt;unit-test&gt;")
	require.NotContains(t, html, "<unit-test>")

	out := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, Render(r, out))
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, html, string(content))
}

func TestRenderSingleTrial(t *testing.T) {
	e, err := stats.Summarize(3, []stats.Trial{{Index: 0, OpenSites: 6, Threshold: 6.0 / 9}})
	require.NoError(t, err)
	r := NewReport(e)
	require.Equal(t, "undefined", r.Summary.Stddev)
	require.Equal(t, "undefined", r.Summary.ConfidenceLow)
	require.Len(t, r.Histogram.Data, 1)
	require.Equal(t, "1", r.Histogram.Data[0][1])
}

func TestHistogram(t *testing.T) {
	h := histogram([]float64{0.5, 0.75, 0.5, 1}, 2)
	require.Equal(t, [][]string{
		{"[0.5000, 0.7500]", "2", "########################################"},
		{"[0.7500, 1.0000]", "2", "########################################"},
	}, h.Data)

	require.Empty(t, histogram(nil, 10).Data)
}

type failingCloser struct {
	bytes.Buffer
}

func (*failingCloser) Close() error {
	return errors.New("no space left on device")
}

func TestRenderReportsCloseError(t *testing.T) {
	e, err := stats.Summarize(2, []stats.Trial{{Index: 0, OpenSites: 2, Threshold: 0.5}})
	require.NoError(t, err)

	origin := createFile
	t.Cleanup(func() { createFile = origin })
	w := &failingCloser{}
	createFile = func(string) (io.WriteCloser, error) { return w, nil }

	err = Render(NewReport(e), "report.html")
	require.ErrorContains(t, err, "no space left on device")
	require.Contains(t, w.String(), "<html")
}
