package percolation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSystemMatchesBruteForce opens random sites on both implementations and
// compares every observable after each step.
func TestSystemMatchesBruteForce(t *testing.T) {
	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))
	t.Logf("seed: %d", seed)

	for _, n := range []int{1, 2, 3, 5, 8, 13} {
		for round := 0; round < 5; round++ {
			uf, err := NewSystem(n)
			require.NoError(t, err)
			bf, err := NewBruteForce(n)
			require.NoError(t, err)

			for step := 0; step < n*n*2; step++ {
				row, col := rnd.Intn(n), rnd.Intn(n)
				require.NoError(t, uf.Open(row, col))
				require.NoError(t, bf.Open(row, col))

				require.Equal(t, bf.NumberOfOpenSites(), uf.NumberOfOpenSites())
				require.Equal(t, bf.Percolates(), uf.Percolates(),
					"n %d, step %d, seed %d", n, step, seed)
				for r := 0; r < n; r++ {
					for c := 0; c < n; c++ {
						want, err := bf.IsFull(r, c)
						require.NoError(t, err)
						got, err := uf.IsFull(r, c)
						require.NoError(t, err)
						require.Equal(t, want, got, "isFull(%d, %d), n %d, step %d, seed %d", r, c, n, step, seed)
					}
				}
			}
		}
	}
}
