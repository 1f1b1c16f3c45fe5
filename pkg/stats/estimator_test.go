package stats

import (
	"context"
	"math"
	"testing"

	"github.com/lance6716/percolation-estimator/pkg/percolation"
	"github.com/stretchr/testify/require"
)

func TestNewEstimatorInvalidArgument(t *testing.T) {
	ctx := context.Background()
	for _, c := range [][2]int{{0, 10}, {-3, 10}, {10, 0}, {10, -1}} {
		e, err := NewEstimator(ctx, c[0], c[1], Options{})
		require.ErrorIs(t, err, percolation.ErrInvalidArgument, "n %d, trials %d", c[0], c[1])
		require.Nil(t, e)
	}
	_, err := NewEstimator(ctx, 3, 3, Options{Impl: "quick-find"})
	require.ErrorIs(t, err, percolation.ErrInvalidArgument)
}

func TestThresholdOf20x20(t *testing.T) {
	e, err := NewEstimator(context.Background(), 20, 200, Options{Seed: 20261019})
	require.NoError(t, err)
	require.Len(t, e.Trials(), 200)
	require.GreaterOrEqual(t, e.Mean(), 0.55)
	require.LessOrEqual(t, e.Mean(), 0.65)
	require.Greater(t, e.Stddev(), 0.0)
	require.Less(t, e.ConfidenceLow(), e.Mean())
	require.Greater(t, e.ConfidenceHigh(), e.Mean())
	require.InDelta(t, e.Mean(), (e.ConfidenceLow()+e.ConfidenceHigh())/2, 1e-12)

	for i, trial := range e.Trials() {
		require.Equal(t, i, trial.Index)
		require.InDelta(t, float64(trial.OpenSites)/400, trial.Threshold, 1e-12)
		// at least one site per row is needed to span the grid
		require.GreaterOrEqual(t, trial.OpenSites, 20)
	}
}

func TestResultsIndependentOfWorkers(t *testing.T) {
	ctx := context.Background()
	var prev []Trial
	for _, workers := range []int{1, 3, 8} {
		e, err := NewEstimator(ctx, 10, 40, Options{Seed: 7, Workers: workers})
		require.NoError(t, err)
		if prev != nil {
			require.Equal(t, prev, e.Trials(), "workers %d", workers)
		}
		prev = e.Trials()
	}
}

func TestImplementationsAgree(t *testing.T) {
	ctx := context.Background()
	uf, err := NewEstimator(ctx, 6, 20, Options{Seed: 99, Impl: percolation.ImplUnionFind})
	require.NoError(t, err)
	bf, err := NewEstimator(ctx, 6, 20, Options{Seed: 99, Impl: percolation.ImplBruteForce})
	require.NoError(t, err)
	require.Equal(t, uf.Trials(), bf.Trials())
}

func TestSingleSiteGrid(t *testing.T) {
	e, err := NewEstimator(context.Background(), 1, 5, Options{})
	require.NoError(t, err)
	for _, trial := range e.Trials() {
		require.Equal(t, 1, trial.OpenSites)
		require.Equal(t, 1.0, trial.Threshold)
	}
	require.Equal(t, 1.0, e.Mean())
	require.Equal(t, 0.0, e.Stddev())
}

func TestSingleTrial(t *testing.T) {
	e, err := NewEstimator(context.Background(), 5, 1, Options{})
	require.NoError(t, err)
	require.Len(t, e.Thresholds(), 1)
	require.Equal(t, e.Thresholds()[0], e.Mean())
	require.True(t, math.IsNaN(e.Stddev()))
	require.True(t, math.IsNaN(e.ConfidenceLow()))
	require.True(t, math.IsNaN(e.ConfidenceHigh()))
}

func TestSummarize(t *testing.T) {
	trials := []Trial{
		{Index: 0, OpenSites: 2, Threshold: 0.5},
		{Index: 1, OpenSites: 3, Threshold: 0.75},
		{Index: 2, OpenSites: 2, Threshold: 0.5},
		{Index: 3, OpenSites: 4, Threshold: 1},
	}
	e, err := Summarize(2, trials)
	require.NoError(t, err)
	require.Equal(t, 2, e.GridSize())
	require.InDelta(t, 0.6875, e.Mean(), 1e-12)
	// squared deviations: 0.03515625*2 + 0.00390625 + 0.09765625 = 0.171875
	wantStddev := math.Sqrt(0.171875 / 3)
	require.InDelta(t, wantStddev, e.Stddev(), 1e-12)
	require.InDelta(t, 0.6875-1.96*wantStddev/2, e.ConfidenceLow(), 1e-12)
	require.InDelta(t, 0.6875+1.96*wantStddev/2, e.ConfidenceHigh(), 1e-12)

	_, err = Summarize(2, nil)
	require.ErrorIs(t, err, percolation.ErrInvalidArgument)
	_, err = Summarize(0, trials)
	require.ErrorIs(t, err, percolation.ErrInvalidArgument)
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEstimator(ctx, 50, 10, Options{Workers: 2})
	require.ErrorIs(t, err, context.Canceled)
}
