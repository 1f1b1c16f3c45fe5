package stats

import (
	"context"
	"math"
	"math/rand"
	"runtime"

	"github.com/lance6716/percolation-estimator/pkg/percolation"
	"github.com/pingcap/errors"
	"golang.org/x/sync/errgroup"
)

// z95 is the standard normal quantile of a two-sided 95% interval.
const z95 = 1.96

// Trial is the outcome of one experiment.
type Trial struct {
	Index     int     `json:"index"`
	OpenSites int     `json:"open_sites"`
	Threshold float64 `json:"threshold"`
}

// Options tunes how the trials are run. Zero values select defaults.
type Options struct {
	// Impl is the model implementation, percolation.ImplUnionFind by default.
	Impl percolation.Impl
	// Workers is the number of trials run at the same time, GOMAXPROCS by
	// default.
	Workers int
	// Seed of trial i is Seed+i, so the results do not depend on Workers.
	Seed int64
}

// Estimator estimates the percolation threshold of an n×n grid from
// independent Monte-Carlo trials.
type Estimator struct {
	n      int
	trials []Trial
}

// NewEstimator runs trials experiments on fresh n×n models and returns the
// estimator holding their results.
func NewEstimator(ctx context.Context, n, trials int, opts Options) (*Estimator, error) {
	if n <= 0 || trials <= 0 {
		return nil, errors.Annotatef(percolation.ErrInvalidArgument, "n = %d, trials = %d, both must be positive", n, trials)
	}
	if opts.Impl == "" {
		opts.Impl = percolation.ImplUnionFind
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	// fail fast on an unknown implementation before spawning workers
	if _, err := percolation.NewModel(opts.Impl, n); err != nil {
		return nil, err
	}

	results := make([]Trial, trials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range results {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rnd := rand.New(rand.NewSource(opts.Seed + int64(i)))
			openSites, err := runTrial(ctx, opts.Impl, n, rnd)
			if err != nil {
				return err
			}
			results[i] = Trial{
				Index:     i,
				OpenSites: openSites,
				Threshold: float64(openSites) / float64(n*n),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Estimator{n: n, trials: results}, nil
}

// checkCtxEvery is how many draws a trial makes between two context checks.
const checkCtxEvery = 1 << 12

// runTrial opens uniformly drawn sites, with replacement, until the model
// percolates and returns the number of open sites. It also stops when every
// site is open, which only matters for n == 1 where Percolates is always
// false.
func runTrial(ctx context.Context, impl percolation.Impl, n int, rnd *rand.Rand) (int, error) {
	m, err := percolation.NewModel(impl, n)
	if err != nil {
		return 0, err
	}
	total := n * n
	for draws := 1; !m.Percolates() && m.NumberOfOpenSites() < total; draws++ {
		if draws%checkCtxEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if err := m.Open(rnd.Intn(n), rnd.Intn(n)); err != nil {
			return 0, err
		}
	}
	return m.NumberOfOpenSites(), nil
}

// Summarize builds an Estimator from trials recorded earlier, for example
// read back from the result database.
func Summarize(n int, trials []Trial) (*Estimator, error) {
	if n <= 0 || len(trials) == 0 {
		return nil, errors.Annotatef(percolation.ErrInvalidArgument, "n = %d, trials = %d, both must be positive", n, len(trials))
	}
	return &Estimator{n: n, trials: trials}, nil
}

// GridSize returns n.
func (e *Estimator) GridSize() int { return e.n }

// Trials returns the recorded trials ordered by index.
func (e *Estimator) Trials() []Trial { return e.trials }

// Thresholds returns the threshold estimate of every trial.
func (e *Estimator) Thresholds() []float64 {
	ret := make([]float64, len(e.trials))
	for i, t := range e.trials {
		ret[i] = t.Threshold
	}
	return ret
}

// Mean returns the sample mean of the thresholds.
func (e *Estimator) Mean() float64 {
	return mean(e.Thresholds())
}

// Stddev returns the sample standard deviation of the thresholds. It is NaN
// when there is a single trial.
func (e *Estimator) Stddev() float64 {
	return stddev(e.Thresholds())
}

// ConfidenceLow returns the low endpoint of the 95% confidence interval,
// assuming the mean is normally distributed.
func (e *Estimator) ConfidenceLow() float64 {
	return e.Mean() - e.halfWidth()
}

// ConfidenceHigh returns the high endpoint of the 95% confidence interval.
func (e *Estimator) ConfidenceHigh() float64 {
	return e.Mean() + e.halfWidth()
}

func (e *Estimator) halfWidth() float64 {
	return z95 * e.Stddev() / math.Sqrt(float64(len(e.trials)))
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	mu := mean(xs)
	sum := 0.0
	for _, x := range xs {
		sum += (x - mu) * (x - mu)
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}
