package report

import (
	"html/template"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lance6716/percolation-estimator/pkg/stats"
	"github.com/pingcap/errors"
)

var t = template.Must(template.New("report").Parse(tpl))

type Report struct {
	TaskInfoItems      [][2]string // [key, value]
	ExecutionInfoItems [][2]string
	Summary            Summary
	Histogram          Table
	Trials             Table
}

// Summary holds the formatted statistics of an estimation.
type Summary struct {
	Mean           string
	Stddev         string
	ConfidenceLow  string
	ConfidenceHigh string
}

type Table struct {
	Header []string
	Data   [][]string
}

const (
	histogramBuckets = 10
	histogramBarMax  = 40
)

// NewReport fills the statistics, distribution and trials sections from e.
// The information sections are left to the caller.
func NewReport(e *stats.Estimator) *Report {
	r := &Report{
		Summary: Summary{
			Mean:           formatFloat(e.Mean()),
			Stddev:         formatFloat(e.Stddev()),
			ConfidenceLow:  formatFloat(e.ConfidenceLow()),
			ConfidenceHigh: formatFloat(e.ConfidenceHigh()),
		},
		Histogram: histogram(e.Thresholds(), histogramBuckets),
		Trials: Table{
			Header: []string{"Trial", "Open Sites", "Threshold"},
		},
	}
	for _, trial := range e.Trials() {
		r.Trials.Data = append(r.Trials.Data, []string{
			strconv.Itoa(trial.Index),
			strconv.Itoa(trial.OpenSites),
			formatFloat(trial.Threshold),
		})
	}
	return r
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "undefined"
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// histogram counts xs in equal width buckets over [min(xs), max(xs)]. When
// all values are equal there is a single bucket.
func histogram(xs []float64, buckets int) Table {
	ret := Table{Header: []string{"Range", "Count", ""}}
	if len(xs) == 0 {
		return ret
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo == hi {
		buckets = 1
	}
	width := (hi - lo) / float64(buckets)
	counts := make([]int, buckets)
	for _, x := range xs {
		i := buckets - 1
		if width > 0 {
			i = min(int((x-lo)/width), buckets-1)
		}
		counts[i]++
	}
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}
	for i, c := range counts {
		left := lo + float64(i)*width
		right := left + width
		if i == buckets-1 {
			right = hi
		}
		bar := strings.Repeat("#", c*histogramBarMax/maxCount)
		ret.Data = append(ret.Data, []string{
			"[" + formatFloat(left) + ", " + formatFloat(right) + "]",
			strconv.Itoa(c),
			bar,
		})
	}
	return ret
}

var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// Render writes the report as an HTML file.
func Render(r *Report, outFilename string) error {
	file, err := createFile(outFilename)
	if err != nil {
		return errors.Trace(err)
	}
	if err = render(r, file); err != nil {
		file.Close()
		return err
	}
	return errors.Trace(file.Close())
}

func render(r *Report, w io.Writer) error {
	return errors.Trace(t.Execute(w, r))
}
