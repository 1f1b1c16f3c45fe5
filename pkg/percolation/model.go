package percolation

import "github.com/pingcap/errors"

// Model is an n×n percolation system. Sites are addressed by (row, col) with
// 0 <= row, col < n; any other coordinate yields ErrOutOfRange.
type Model interface {
	// Open opens the site if it is blocked. Opening an open site is a no-op.
	Open(row, col int) error
	IsOpen(row, col int) (bool, error)
	// IsFull reports whether the site is open and joined to the top row by a
	// path of open sites.
	IsFull(row, col int) (bool, error)
	NumberOfOpenSites() int
	// Percolates is always false for n == 1 because there are no two rows to
	// span.
	Percolates() bool
	Size() int
}

// Impl names a Model implementation.
type Impl string

const (
	ImplUnionFind  Impl = "uf"
	ImplBruteForce Impl = "bruteforce"
)

// NewModel creates an n×n Model of the given implementation with every site
// blocked.
func NewModel(impl Impl, n int) (Model, error) {
	switch impl {
	case ImplUnionFind:
		return NewSystem(n)
	case ImplBruteForce:
		return NewBruteForce(n)
	}
	return nil, errors.Annotatef(ErrInvalidArgument, "unknown model implementation %q", impl)
}

// sites holds the open/blocked state shared by the implementations.
type sites struct {
	n         int
	open      []bool // row-major
	openSites int
}

func newSites(n int) (sites, error) {
	if n <= 0 {
		return sites{}, errors.Annotatef(ErrInvalidArgument, "grid size must be positive, got %d", n)
	}
	return sites{n: n, open: make([]bool, n*n)}, nil
}

func (s *sites) check(row, col int) error {
	if row < 0 || row >= s.n || col < 0 || col >= s.n {
		return errors.Annotatef(ErrOutOfRange, "site (%d, %d) outside %d x %d grid", row, col, s.n, s.n)
	}
	return nil
}

func (s *sites) index(row, col int) int {
	return row*s.n + col
}

func (s *sites) isOpen(row, col int) bool {
	return s.open[s.index(row, col)]
}

// IsOpen implements Model.
func (s *sites) IsOpen(row, col int) (bool, error) {
	if err := s.check(row, col); err != nil {
		return false, err
	}
	return s.isOpen(row, col), nil
}

// NumberOfOpenSites implements Model.
func (s *sites) NumberOfOpenSites() int {
	return s.openSites
}

// Size implements Model.
func (s *sites) Size() int {
	return s.n
}

// markOpen opens a valid site and reports whether it was blocked before.
func (s *sites) markOpen(row, col int) bool {
	i := s.index(row, col)
	if s.open[i] {
		return false
	}
	s.open[i] = true
	s.openSites++
	return true
}

// neighbors are the orthogonal offsets as (dRow, dCol).
var neighbors = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
